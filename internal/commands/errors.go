package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so callers can branch on the
// failure kind without matching message strings.
const (
	codeValidationFailed = "BLOG_COMMAND_VALIDATION_FAILED"
	codeCanceled         = "BLOG_COMMAND_CANCELED"
	codeTimedOut         = "BLOG_COMMAND_TIMED_OUT"
	codeContextError     = "BLOG_COMMAND_CONTEXT_ERROR"
	codeExecutionFailed  = "BLOG_COMMAND_EXECUTION_FAILED"
)

// alreadyTagged reports whether err has been wrapped by an earlier handler in
// the chain. Nested handlers must not re-tag: the first wrap wins.
func alreadyTagged(err error) bool {
	return goerrors.IsWrapped(err)
}

func wrapValidationError(err error) error {
	if err == nil || alreadyTagged(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "blog command validation failed").
		WithTextCode(codeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil || alreadyTagged(err) {
		return err
	}

	message, code := "blog command context error", codeContextError
	switch err {
	case context.Canceled:
		message, code = "blog command cancelled", codeCanceled
	case context.DeadlineExceeded:
		message, code = "blog command timed out", codeTimedOut
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || alreadyTagged(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "blog command execution failed").
		WithTextCode(codeExecutionFailed)
}
