package watcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrBuildFailed is the sentinel wrapped by BuildFailedError.
var ErrBuildFailed = errors.New("watcher: site build failed")

// BuildFailedError carries the exit code and captured stderr of a failed
// site build child process.
type BuildFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *BuildFailedError) Error() string {
	if e == nil {
		return ErrBuildFailed.Error()
	}
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s: exit=%d", ErrBuildFailed.Error(), e.ExitCode)
	}
	return fmt.Sprintf("%s: exit=%d stderr=%s", ErrBuildFailed.Error(), e.ExitCode, stderr)
}

func (e *BuildFailedError) Unwrap() error {
	return ErrBuildFailed
}

// RunResult captures the outcome of one site build child process.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes the downstream static-site build (the React compile) as an
// opaque blocking operation. The loop observes completion, never polls.
type Runner interface {
	Run(ctx context.Context) (*RunResult, error)
}

// ExecRunner invokes the configured build command as a child process. The
// command is an argv array passed directly to the OS, never a shell string,
// so content paths and filenames cannot reach a shell interpolation surface.
type ExecRunner struct {
	argv []string
	dir  string
}

// NewExecRunner constructs a runner for the given argv. An empty argv yields
// a no-op runner: the manifest build alone is the whole pipeline.
func NewExecRunner(argv []string, dir string) *ExecRunner {
	return &ExecRunner{
		argv: append([]string(nil), argv...),
		dir:  strings.TrimSpace(dir),
	}
}

// Run executes the build command, capturing stdout and stderr. Context
// cancellation kills the child process.
func (r *ExecRunner) Run(ctx context.Context) (*RunResult, error) {
	if len(r.argv) == 0 {
		return &RunResult{}, nil
	}

	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	if r.dir != "" {
		cmd.Dir = r.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	result := &RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, &BuildFailedError{
				ExitCode: result.ExitCode,
				Stderr:   result.Stderr,
			}
		}
		return result, fmt.Errorf("watcher: run build command: %w", err)
	}
	return result, nil
}
