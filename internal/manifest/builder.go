package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config configures artifact generation.
type Config struct {
	Site Site
	// OutputDir is where artifacts land (defaults to "public").
	OutputDir string
	// ManifestFile is the JSON artifact filename (defaults to "posts.json").
	ManifestFile string
	// FeedFile is the RSS artifact filename (defaults to "feed.xml").
	FeedFile string
	// FeedLimit caps the number of feed items (defaults to 100).
	FeedLimit int
}

// BuildOptions are per-invocation overrides.
type BuildOptions struct {
	// DryRun skips artifact writes while still exercising the full parse and
	// serialization path.
	DryRun bool
}

// BuildResult summarises one build pass.
type BuildResult struct {
	Posts        int
	Skipped      int
	ManifestPath string
	FeedPath     string
	GeneratedAt  time.Time
}

// Service runs the parse-aggregate-serialize pipeline: loader output is
// installed into the store, then serialized into the JSON manifest and the
// RSS feed. One build fully replaces both artifacts or neither.
type Service struct {
	cfg      Config
	loader   *posts.Loader
	store    *posts.Store
	renderer *posts.Renderer
	writer   ArtifactWriter
	logger   interfaces.Logger
	clock    func() time.Time
}

// Option configures a Service instance.
type Option func(*Service)

// WithWriter overrides the artifact writer (tests capture writes in memory).
func WithWriter(writer ArtifactWriter) Option {
	return func(s *Service) {
		if writer != nil {
			s.writer = writer
		}
	}
}

// WithLogger injects the build logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the build timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a builder over the supplied loader and store.
func NewService(cfg Config, loader *posts.Loader, store *posts.Store, opts ...Option) *Service {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = "public"
	}
	if strings.TrimSpace(cfg.ManifestFile) == "" {
		cfg.ManifestFile = "posts.json"
	}
	if strings.TrimSpace(cfg.FeedFile) == "" {
		cfg.FeedFile = "feed.xml"
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = defaultFeedLimit
	}

	s := &Service{
		cfg:      cfg,
		loader:   loader,
		store:    store,
		renderer: posts.NewRenderer(),
		writer:   NewFSWriter(),
		logger:   logging.NoOp(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build parses the content directory, refreshes the store, and writes both
// artifacts. An empty or missing content directory is not a failure: the
// manifest is an empty array and the feed has zero items.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if s.loader == nil || s.store == nil {
		return nil, fmt.Errorf("manifest: service requires loader and store")
	}

	s.store.BeginLoad()

	loaded, err := s.loader.LoadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Load(loaded.Posts)

	sorted, err := s.store.All()
	if err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		s.logger.Warn("manifest.build.empty")
	}

	manifestData, err := marshalManifest(sorted)
	if err != nil {
		return nil, err
	}

	htmlBodies, err := s.renderBodies(sorted)
	if err != nil {
		return nil, err
	}
	feedData := buildRSSFeed(s.cfg.Site, sorted, htmlBodies, s.cfg.FeedLimit)

	result := &BuildResult{
		Posts:        len(sorted),
		Skipped:      len(loaded.Skipped),
		ManifestPath: filepath.Join(s.cfg.OutputDir, s.cfg.ManifestFile),
		FeedPath:     filepath.Join(s.cfg.OutputDir, s.cfg.FeedFile),
		GeneratedAt:  s.clock().UTC(),
	}

	if opts.DryRun {
		s.logger.Info("manifest.build.dry_run", "posts", result.Posts, "skipped", result.Skipped)
		return result, nil
	}

	if err := s.writer.WriteFile(ctx, result.ManifestPath, manifestData); err != nil {
		return nil, err
	}
	if err := s.writer.WriteFile(ctx, result.FeedPath, []byte(feedData)); err != nil {
		return nil, err
	}

	s.logger.Info("manifest.build.done",
		"posts", result.Posts,
		"skipped", result.Skipped,
		"manifest", result.ManifestPath,
		"feed", result.FeedPath,
	)
	return result, nil
}

// Clean removes both artifacts from the output directory. Missing files are
// not errors.
func (s *Service) Clean(ctx context.Context) error {
	manifestPath := filepath.Join(s.cfg.OutputDir, s.cfg.ManifestFile)
	feedPath := filepath.Join(s.cfg.OutputDir, s.cfg.FeedFile)
	if err := s.writer.Remove(ctx, manifestPath); err != nil {
		return err
	}
	if err := s.writer.Remove(ctx, feedPath); err != nil {
		return err
	}
	s.logger.Info("manifest.clean.done", "manifest", manifestPath, "feed", feedPath)
	return nil
}

func (s *Service) renderBodies(sorted []*posts.Post) (map[string]string, error) {
	bodies := make(map[string]string, len(sorted))
	for _, post := range sorted {
		if strings.TrimSpace(post.Content) == "" {
			continue
		}
		rendered, err := s.renderer.Render([]byte(post.Content))
		if err != nil {
			return nil, fmt.Errorf("manifest: render %s: %w", post.Slug, err)
		}
		bodies[post.Slug] = string(rendered)
	}
	return bodies, nil
}

// marshalManifest serializes the sorted posts as the client-facing JSON
// array. Output is deterministic: two-space indent, trailing newline, field
// order fixed by the Post struct.
func marshalManifest(sorted []*posts.Post) ([]byte, error) {
	if sorted == nil {
		sorted = []*posts.Post{}
	}
	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("manifest: marshal: %w", err)
	}
	return append(data, '\n'), nil
}
