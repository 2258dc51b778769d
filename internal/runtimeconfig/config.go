package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSiteTitleRequired = errors.New("blog config: site title is required")
var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrOutputDirRequired = errors.New("blog config: output directory is required")
var ErrQuietIntervalInvalid = errors.New("blog config: watch quiet interval must be positive")
var ErrBuildTimeoutInvalid = errors.New("blog config: watch build timeout must be zero or positive")
var ErrRecentCountInvalid = errors.New("blog config: recent post count must be positive")
var ErrFeedLimitInvalid = errors.New("blog config: feed item limit must be positive")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates the settings for the whole pipeline. Fields intentionally
// use simple types so host applications can extend them later.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Content  ContentConfig  `yaml:"content"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig carries the channel-level metadata for the manifest and feed.
type SiteConfig struct {
	Title         string `yaml:"title"`
	BaseURL       string `yaml:"base_url"`
	Description   string `yaml:"description"`
	Language      string `yaml:"language"`
	DefaultAuthor string `yaml:"default_author"`
}

// ContentConfig locates the markdown sources.
type ContentConfig struct {
	Dir          string `yaml:"dir"`
	TemplateFile string `yaml:"template_file"`
}

// PipelineConfig controls artifact generation.
type PipelineConfig struct {
	OutputDir    string `yaml:"output_dir"`
	ManifestFile string `yaml:"manifest_file"`
	FeedFile     string `yaml:"feed_file"`
	RecentCount  int    `yaml:"recent_count"`
	FeedLimit    int    `yaml:"feed_limit"`
}

// WatchConfig controls the watch-rebuild loop.
type WatchConfig struct {
	QuietInterval time.Duration `yaml:"quiet_interval"`
	// BuildCommand is the downstream site build as an argv array, e.g.
	// ["npm", "run", "build"]. Empty means the manifest build is the whole
	// pipeline.
	BuildCommand []string `yaml:"build_command"`
	// BuildDir is the working directory for the build command (defaults to
	// the process working directory).
	BuildDir     string        `yaml:"build_dir"`
	BuildTimeout time.Duration `yaml:"build_timeout"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig returns the baseline configuration the CLIs start from.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Language: "en",
		},
		Content: ContentConfig{
			Dir:          "content/posts",
			TemplateFile: "_template.md",
		},
		Pipeline: PipelineConfig{
			OutputDir:    "public",
			ManifestFile: "posts.json",
			FeedFile:     "feed.xml",
			RecentCount:  5,
			FeedLimit:    100,
		},
		Watch: WatchConfig{
			QuietInterval: 5 * time.Second,
			BuildTimeout:  10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Title) == "" {
		return ErrSiteTitleRequired
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Pipeline.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Pipeline.RecentCount <= 0 {
		return ErrRecentCountInvalid
	}
	if cfg.Pipeline.FeedLimit <= 0 {
		return ErrFeedLimitInvalid
	}
	if cfg.Watch.QuietInterval <= 0 {
		return ErrQuietIntervalInvalid
	}
	if cfg.Watch.BuildTimeout < 0 {
		return ErrBuildTimeoutInvalid
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
