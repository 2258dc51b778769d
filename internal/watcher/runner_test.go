package watcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerEmptyArgvIsNoOp(t *testing.T) {
	result, err := NewExecRunner(nil, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	runner := NewExecRunner([]string{"sh", "-c", "echo built"}, "")

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "built")
}

func TestExecRunnerRunsInConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	runner := NewExecRunner([]string{"pwd"}, dir)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	runner := NewExecRunner([]string{"sh", "-c", "echo broken 1>&2; exit 3"}, "")

	_, err := runner.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBuildFailed)

	var buildErr *BuildFailedError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, 3, buildErr.ExitCode)
	assert.Contains(t, buildErr.Stderr, "broken")
}

func TestExecRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewExecRunner([]string{"sh", "-c", "sleep 10"}, "")
	_, err := runner.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
