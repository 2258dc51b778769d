package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/logging/gologger"
)

func main() {
	if err := runWatch(os.Args[1:]); err != nil {
		log.Fatalf("blog watch: %v", err)
	}
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("blog-watch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file (optional)")
	contentDir := fs.String("content-dir", "", "Override the markdown content directory")
	quietInterval := fs.Duration("quiet-interval", 0, "Override the debounce quiet interval")
	skipInitial := fs.Bool("skip-initial-build", false, "Do not build before watching")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := blog.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *quietInterval > 0 {
		cfg.Watch.QuietInterval = *quietInterval
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return err
	}

	pipeline, err := blog.New(cfg, blog.WithLoggerProvider(provider))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*skipInitial {
		// A failed initial build is not fatal: the previous artifacts stay
		// live and the next content change retriggers the pipeline.
		if _, err := pipeline.Build(ctx); err != nil {
			log.Printf("blog watch: initial build failed: %v", err)
		}
	}

	return pipeline.Watch(ctx)
}
