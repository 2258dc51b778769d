package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Env var names recognised by ApplyEnv. Environment always wins over the
// config file so deployments can override without editing YAML.
const (
	envContentDir    = "BLOG_CONTENT_DIR"
	envOutputDir     = "BLOG_OUTPUT_DIR"
	envBaseURL       = "BLOG_BASE_URL"
	envQuietInterval = "BLOG_QUIET_INTERVAL"
	envLogLevel      = "BLOG_LOG_LEVEL"
)

// Load produces the effective configuration: defaults, overlaid with the
// optional YAML file at path, overlaid with environment variables. An empty
// path skips the file step; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if trimmed := strings.TrimSpace(path); trimmed != "" {
		data, err := os.ReadFile(trimmed)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("blog config: file %s not found: %w", trimmed, err)
			}
			return cfg, fmt.Errorf("blog config: read %s: %w", trimmed, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("blog config: parse %s: %w", trimmed, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays recognised BLOG_* environment variables onto the config.
func (cfg *Config) ApplyEnv() error {
	if value := strings.TrimSpace(os.Getenv(envContentDir)); value != "" {
		cfg.Content.Dir = value
	}
	if value := strings.TrimSpace(os.Getenv(envOutputDir)); value != "" {
		cfg.Pipeline.OutputDir = value
	}
	if value := strings.TrimSpace(os.Getenv(envBaseURL)); value != "" {
		cfg.Site.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(envQuietInterval)); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("blog config: parse %s: %w", envQuietInterval, err)
		}
		cfg.Watch.QuietInterval = interval
	}
	if value := strings.TrimSpace(os.Getenv(envLogLevel)); value != "" {
		cfg.Logging.Level = value
	}
	return nil
}
