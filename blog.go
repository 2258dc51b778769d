// Package blog wires the content pipeline together: markdown posts with YAML
// frontmatter are parsed into an in-memory collection, serialized into the
// JSON manifest and RSS feed the site serves, and kept fresh by a debounced
// watch-rebuild loop.
package blog

import (
	"context"
	"os"

	"github.com/goliatone/go-blog/internal/commands"
	buildcmd "github.com/goliatone/go-blog/internal/commands/build"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/manifest"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/watcher"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// Post is the manifest entry for a single markdown source file.
type Post = posts.Post

// Navigation carries a post's neighbours in the date-descending order.
type Navigation = posts.Navigation

// BuildResult summarises one build pass.
type BuildResult = manifest.BuildResult

var (
	ErrStoreNotReady = posts.ErrStoreNotReady
	ErrPostNotFound  = posts.ErrPostNotFound
	ErrDuplicateSlug = posts.ErrDuplicateSlug
)

// Pipeline is the assembled build-and-serve pipeline for one site.
type Pipeline struct {
	cfg          runtimeconfig.Config
	provider     interfaces.LoggerProvider
	store        *posts.Store
	service      *manifest.Service
	buildHandler *buildcmd.BuildSiteHandler
	cleanHandler *buildcmd.CleanSiteHandler
}

// Option configures a Pipeline instance.
type Option func(*Pipeline)

// WithLoggerProvider injects the logging provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(p *Pipeline) {
		p.provider = provider
	}
}

// New validates the configuration and assembles the pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	postsLogger := logging.PostsLogger(p.provider)
	p.store = posts.NewStore(postsLogger)

	loader := posts.NewLoader(os.DirFS(cfg.Content.Dir), posts.LoaderConfig{
		TemplateFile:  cfg.Content.TemplateFile,
		DefaultAuthor: cfg.Site.DefaultAuthor,
	}, postsLogger)

	p.service = manifest.NewService(manifest.Config{
		Site: manifest.Site{
			Title:       cfg.Site.Title,
			BaseURL:     cfg.Site.BaseURL,
			Description: cfg.Site.Description,
			Language:    cfg.Site.Language,
		},
		OutputDir:    cfg.Pipeline.OutputDir,
		ManifestFile: cfg.Pipeline.ManifestFile,
		FeedFile:     cfg.Pipeline.FeedFile,
		FeedLimit:    cfg.Pipeline.FeedLimit,
	}, loader, p.store, manifest.WithLogger(logging.ManifestLogger(p.provider)))

	commandsLogger := logging.CommandsLogger(p.provider)
	p.buildHandler = buildcmd.NewBuildSiteHandler(p.service, commandsLogger,
		commands.WithTimeout[buildcmd.BuildSiteCommand](cfg.Watch.BuildTimeout))
	p.cleanHandler = buildcmd.NewCleanSiteHandler(p.service, commandsLogger)

	return p, nil
}

// Build runs one full build pass and returns its result.
func (p *Pipeline) Build(ctx context.Context) (*BuildResult, error) {
	return p.build(ctx, false)
}

// DryRun exercises the full parse and serialization path without writing
// artifacts.
func (p *Pipeline) DryRun(ctx context.Context) (*BuildResult, error) {
	return p.build(ctx, true)
}

func (p *Pipeline) build(ctx context.Context, dryRun bool) (*BuildResult, error) {
	var result *BuildResult
	msg := buildcmd.BuildSiteCommand{
		RunID:  uuid.New(),
		DryRun: dryRun,
		ResultCallback: func(r *manifest.BuildResult) {
			result = r
		},
	}
	if err := p.buildHandler.Execute(ctx, msg); err != nil {
		return nil, err
	}
	return result, nil
}

// Clean removes the generated artifacts.
func (p *Pipeline) Clean(ctx context.Context) error {
	return p.cleanHandler.Execute(ctx, buildcmd.CleanSiteCommand{})
}

// Watch runs the watch-rebuild loop until the context is cancelled. Each
// settled change triggers a manifest build followed by the configured site
// build command.
func (p *Pipeline) Watch(ctx context.Context) error {
	runner := watcher.NewExecRunner(p.cfg.Watch.BuildCommand, p.cfg.Watch.BuildDir)
	builder := watcher.NewPipelineBuilder(p.buildHandler, runner)

	loop, err := watcher.New(watcher.Config{
		ContentDir:    p.cfg.Content.Dir,
		QuietInterval: p.cfg.Watch.QuietInterval,
	}, builder, watcher.WithLogger(logging.WatcherLogger(p.provider)))
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}

// GetAllPosts returns every post, sorted descending by date.
func (p *Pipeline) GetAllPosts() ([]*Post, error) {
	return p.store.All()
}

// GetPostBySlug returns the post with the given slug.
func (p *Pipeline) GetPostBySlug(slug string) (*Post, error) {
	return p.store.BySlug(slug)
}

// GetAllTags returns every tag in use, deduplicated and alphabetically sorted.
func (p *Pipeline) GetAllTags() ([]string, error) {
	return p.store.Tags()
}

// GetPostsByTag returns the posts carrying the given tag.
func (p *Pipeline) GetPostsByTag(tag string) ([]*Post, error) {
	return p.store.ByTag(tag)
}

// GetRecentPosts returns the n most recent posts. A non-positive n falls
// back to the configured recent-post count.
func (p *Pipeline) GetRecentPosts(n int) ([]*Post, error) {
	if n <= 0 {
		n = p.cfg.Pipeline.RecentCount
	}
	return p.store.Recent(n)
}

// SearchPosts returns the posts matching the query across title, excerpt,
// content, and tags.
func (p *Pipeline) SearchPosts(query string) ([]*Post, error) {
	return p.store.Search(query)
}

// GetPostNavigation returns the neighbours of the post with the given slug.
func (p *Pipeline) GetPostNavigation(slug string) (Navigation, error) {
	return p.store.Navigation(slug)
}
