package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingLogger struct {
	fields map[string]any
}

func (l *recordingLogger) Trace(string, ...any) {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}
func (l *recordingLogger) Fatal(string, ...any) {}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{fields: merged}
}

type recordingProvider struct {
	requested []string
	logger    *recordingLogger
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.requested = append(p.requested, name)
	return p.logger
}

func TestModuleLoggerDefaultsToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "blog.posts")
	if logger == nil {
		t.Fatal("expected a logger even without a provider")
	}
	// Must be safe to use.
	logger.Info("hello")
}

func TestModuleLoggerScopesByName(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}

	logger := PostsLogger(provider)
	if len(provider.requested) != 1 || provider.requested[0] != "blog.posts" {
		t.Fatalf("unexpected provider requests: %v", provider.requested)
	}

	rec, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected fields-capable logger, got %T", logger)
	}
	if rec.fields["module"] != "blog.posts" {
		t.Fatalf("expected module field, got %v", rec.fields)
	}
}

func TestWithPostContextSkipsEmptyValues(t *testing.T) {
	base := &recordingLogger{}

	logger := WithPostContext(base, "posts/a.md", "", "parse")
	rec := logger.(*recordingLogger)

	if rec.fields["post_path"] != "posts/a.md" {
		t.Fatalf("expected post_path field, got %v", rec.fields)
	}
	if _, ok := rec.fields["slug"]; ok {
		t.Fatalf("empty slug must be omitted, got %v", rec.fields)
	}
	if rec.fields["action"] != "parse" {
		t.Fatalf("expected action field, got %v", rec.fields)
	}
}

func TestWithFieldsOnPlainLoggerIsPassthrough(t *testing.T) {
	plain := NoOp()
	if got := WithFields(plain, map[string]any{"k": "v"}); got == nil {
		t.Fatal("expected logger back")
	}
}
