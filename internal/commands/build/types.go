package buildcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/manifest"
	"github.com/google/uuid"
)

const (
	buildSiteMessageType = "blog.manifest.build"
	cleanSiteMessageType = "blog.manifest.clean"
)

// ResultCallback receives the build result produced by a manifest build. The
// callback is optional and is invoked synchronously from the handler.
type ResultCallback func(*manifest.BuildResult)

// BuildSiteCommand regenerates the JSON manifest and RSS feed from the
// content directory. RunID correlates log entries across one build pass.
type BuildSiteCommand struct {
	RunID          uuid.UUID      `json:"run_id"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the run identifier is present.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if m.RunID == uuid.Nil {
		errs["run_id"] = validation.NewError("blog.manifest.build.run_id_required", "run_id must be a valid identifier")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand removes the generated artifacts from the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }
