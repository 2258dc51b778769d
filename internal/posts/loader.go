package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// LoaderConfig configures how markdown posts are discovered within a
// content directory.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// TemplateFile names the designated template/example file excluded from
	// processing (defaults to "_template.md").
	TemplateFile string
	// DefaultAuthor is applied when frontmatter carries no author.
	DefaultAuthor string
	// Clock supplies the timestamp used when a post has no date. Defaults to
	// time.Now; tests inject a fixed clock.
	Clock func() time.Time
}

// Loader turns a flat directory of markdown files into Post records.
type Loader struct {
	fs            fs.FS
	pattern       string
	templateFile  string
	defaultAuthor string
	clock         func() time.Time
	logger        interfaces.Logger
}

// SkippedFile records a source file that failed to parse and was excluded
// from the batch.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadResult carries the parsed posts along with any per-file failures. The
// posts are in directory order; callers sort before serializing.
type LoadResult struct {
	Posts   []*Post
	Skipped []SkippedFile
}

// NewLoader constructs a Loader using the provided filesystem and
// configuration. A nil logger falls back to the no-op implementation.
func NewLoader(filesystem fs.FS, cfg LoaderConfig, logger interfaces.Logger) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	templateFile := strings.TrimSpace(cfg.TemplateFile)
	if templateFile == "" {
		templateFile = "_template.md"
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Loader{
		fs:            filesystem,
		pattern:       pattern,
		templateFile:  templateFile,
		defaultAuthor: strings.TrimSpace(cfg.DefaultAuthor),
		clock:         clock,
		logger:        logger,
	}
}

// LoadFile reads and parses a single markdown post. The slug is derived from
// the filename; missing metadata fields are defaulted per the content
// contract (title, date, excerpt, tags, author).
func (l *Loader) LoadFile(ctx context.Context, name string) (*Post, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("post loader read %s: %w", name, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("post loader parse %s: %w", name, err)
	}

	slugValue, err := SlugFromFilename(name)
	if err != nil {
		return nil, fmt.Errorf("post loader slug %s: %w", name, err)
	}

	post := &Post{
		Slug:    slugValue,
		Title:   meta.Title,
		Date:    meta.Date,
		Excerpt: meta.Excerpt,
		Tags:    meta.Tags,
		Author:  meta.Author,
		Content: strings.TrimSpace(string(body)),
	}

	if post.Title == "" {
		post.Title = DefaultTitle
	}
	if !meta.HasDate {
		// Missing dates are a data-quality problem: the fallback keeps the
		// build going but the post will float to the top of the feed.
		post.Date = l.clock().UTC()
		logging.WithPostContext(l.logger, name, slugValue, "parse").
			Warn("post.date.missing", "fallback", post.Date)
	}
	if post.Author == "" {
		post.Author = l.defaultAuthor
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.ReadingTime = ComputeReadingTime(post.Content)

	return post, nil
}

// LoadDirectory discovers markdown files in the content directory root and
// returns parsed posts. The directory is not traversed recursively. A missing
// directory is not an error: the result is empty and a warning is logged so
// the overall build can still produce (empty) artifacts.
//
// Malformed files fail individually and are reported in LoadResult.Skipped;
// slug collisions fail the whole batch.
func (l *Loader) LoadDirectory(ctx context.Context) (*LoadResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("post.content_dir.missing")
			return &LoadResult{}, nil
		}
		return nil, fmt.Errorf("post loader read dir: %w", err)
	}

	result := &LoadResult{}
	sources := map[string]string{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if name == l.templateFile {
			continue
		}
		if match, matchErr := filepath.Match(l.pattern, name); matchErr != nil || !match {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		post, loadErr := l.LoadFile(ctx, name)
		if loadErr != nil {
			if errors.Is(loadErr, context.Canceled) || errors.Is(loadErr, context.DeadlineExceeded) {
				return nil, loadErr
			}
			logging.WithPostContext(l.logger, name, "", "parse").
				Warn("post.parse.failed", "error", loadErr)
			result.Skipped = append(result.Skipped, SkippedFile{Path: name, Err: loadErr})
			continue
		}

		if existing, ok := sources[post.Slug]; ok {
			return nil, &DuplicateSlugError{
				Slug:         post.Slug,
				Path:         name,
				ExistingPath: existing,
			}
		}
		sources[post.Slug] = name
		result.Posts = append(result.Posts, post)
	}

	return result, nil
}
