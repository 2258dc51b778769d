package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteTitleRequired    = runtimeconfig.ErrSiteTitleRequired
	ErrContentDirRequired   = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired    = runtimeconfig.ErrOutputDirRequired
	ErrQuietIntervalInvalid = runtimeconfig.ErrQuietIntervalInvalid
	ErrBuildTimeoutInvalid  = runtimeconfig.ErrBuildTimeoutInvalid
	ErrRecentCountInvalid   = runtimeconfig.ErrRecentCountInvalid
	ErrFeedLimitInvalid     = runtimeconfig.ErrFeedLimitInvalid
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	ContentConfig  = runtimeconfig.ContentConfig
	PipelineConfig = runtimeconfig.PipelineConfig
	WatchConfig    = runtimeconfig.WatchConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig produces the effective configuration from defaults, an optional
// YAML file, and BLOG_* environment variables.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
