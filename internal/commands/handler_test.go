package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "blog.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "blog.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !strings.Contains(err.Error(), "blog command validation failed") {
		t.Fatalf("expected blog-scoped validation message, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerExecuteErrorIsCategorised(t *testing.T) {
	boom := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return boom
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !strings.Contains(err.Error(), "blog command execution failed") {
		t.Fatalf("expected blog-scoped execution message, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestHandlerDoesNotReTagWrappedErrors(t *testing.T) {
	inner := goerrors.Wrap(errors.New("bad field"), goerrors.CategoryValidation, "payload rejected")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return inner
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	// The inner wrap wins: the handler must not stack a command category on
	// top of an error that already carries one.
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected the original validation category, got %v", err)
	}
	if strings.Contains(err.Error(), "blog command execution failed") {
		t.Fatalf("expected pass-through without re-wrap, got %v", err)
	}
}

func TestHandlerTimeoutCancelsContext(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return errors.New("handler outlived its deadline")
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerNilContextDefaultsToBackground(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if ctx == nil {
			return errors.New("context must never be nil")
		}
		return nil
	})

	//nolint:staticcheck // exercising the nil-context guard on purpose
	if err := h.Execute(nil, testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestHandlerTelemetryObservesOutcome(t *testing.T) {
	var observed []TelemetryInfo
	capture := func(ctx context.Context, msg testMessage, info TelemetryInfo) {
		observed = append(observed, info)
	}

	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	}, WithTelemetry[testMessage](capture), WithOperation[testMessage]("test.op"))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(observed) != 1 {
		t.Fatalf("expected one telemetry emission, got %d", len(observed))
	}
	if observed[0].Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %s", observed[0].Status)
	}
	if observed[0].Operation != "test.op" {
		t.Fatalf("expected operation to carry through, got %q", observed[0].Operation)
	}

	failing := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithTelemetry[testMessage](capture))

	if err := failing.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected execution error")
	}
	if len(observed) != 2 || observed[1].Status != TelemetryStatusFailed {
		t.Fatalf("expected failed telemetry emission, got %+v", observed)
	}
}
