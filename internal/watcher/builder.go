package watcher

import (
	"context"

	buildcmd "github.com/goliatone/go-blog/internal/commands/build"
	"github.com/google/uuid"
)

// Builder is the rebuild operation the loop triggers once changes settle.
type Builder interface {
	Build(ctx context.Context) error
}

// BuildFunc adapts a function to the Builder interface.
type BuildFunc func(ctx context.Context) error

// Build implements Builder.
func (f BuildFunc) Build(ctx context.Context) error { return f(ctx) }

// PipelineBuilder performs a full rebuild: the manifest artifacts are
// regenerated through the build command boundary, then the downstream site
// build runs as a child process. The loop sends a command and receives a
// structured result rather than interpolating shell strings.
type PipelineBuilder struct {
	handler *buildcmd.BuildSiteHandler
	runner  Runner
}

// NewPipelineBuilder wires the manifest build handler and the site build
// runner. Either may be nil; the remaining stage still runs.
func NewPipelineBuilder(handler *buildcmd.BuildSiteHandler, runner Runner) *PipelineBuilder {
	return &PipelineBuilder{
		handler: handler,
		runner:  runner,
	}
}

// Build implements Builder.
func (b *PipelineBuilder) Build(ctx context.Context) error {
	if b.handler != nil {
		msg := buildcmd.BuildSiteCommand{RunID: uuid.New()}
		if err := b.handler.Execute(ctx, msg); err != nil {
			return err
		}
	}
	if b.runner != nil {
		if _, err := b.runner.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
