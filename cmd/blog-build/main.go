package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/logging/gologger"
)

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file (optional)")
	contentDir := fs.String("content-dir", "", "Override the markdown content directory")
	outputDir := fs.String("output-dir", "", "Override the artifact output directory")
	siteTitle := fs.String("site-title", "", "Override the site title")
	dryRun := fs.Bool("dry-run", false, "Parse and serialize without writing artifacts")

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
	if *outputDir != "" {
		cfg.Pipeline.OutputDir = *outputDir
	}
	if *siteTitle != "" {
		cfg.Site.Title = *siteTitle
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

	ctx := context.Background()
	var result *blog.BuildResult
	if *dryRun {
		result, err = pipeline.DryRun(ctx)
	} else {
		result, err = pipeline.Build(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Printf("built %d posts (%d skipped) -> %s, %s\n",
		result.Posts, result.Skipped, result.ManifestPath, result.FeedPath)
	return nil
}
