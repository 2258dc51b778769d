package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blog/internal/posts"
)

var fixedNow = time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)

type memWriter struct {
	files map[string][]byte
}

func newMemWriter() *memWriter {
	return &memWriter{files: map[string][]byte{}}
}

func (w *memWriter) WriteFile(_ context.Context, path string, data []byte) error {
	w.files[path] = append([]byte(nil), data...)
	return nil
}

func (w *memWriter) Remove(_ context.Context, path string) error {
	delete(w.files, path)
	return nil
}

func newTestService(t *testing.T, files map[string]string, writer ArtifactWriter) *Service {
	t.Helper()
	mapFS := fstest.MapFS{}
	for name, content := range files {
		mapFS[name] = &fstest.MapFile{Data: []byte(content)}
	}
	loader := posts.NewLoader(mapFS, posts.LoaderConfig{
		DefaultAuthor: "Site Author",
		Clock:         func() time.Time { return fixedNow },
	}, nil)
	store := posts.NewStore(nil)
	return NewService(Config{
		Site: Site{
			Title:       "Example Blog",
			BaseURL:     "https://example.com/",
			Description: "Notes on things",
			Language:    "en",
		},
	}, loader, store,
		WithWriter(writer),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestBuildTwoFileScenario(t *testing.T) {
	writer := newMemWriter()
	service := newTestService(t, map[string]string{
		"a.md": `---
title: "Post A"
date: "2025-01-02"
tags: [x]
---
Body A
`,
		"b.md": "Body B\n",
	}, writer)

	result, err := service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Posts != 2 || result.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	data, ok := writer.files[result.ManifestPath]
	if !ok {
		t.Fatalf("manifest artifact missing, wrote %v", writer.files)
	}

	var manifest []*posts.Post
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(manifest) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(manifest))
	}

	// b has no frontmatter date: it falls back to the (later) build clock and
	// therefore sorts first.
	if manifest[0].Slug != "b" || manifest[1].Slug != "a" {
		t.Fatalf("unexpected order: %s, %s", manifest[0].Slug, manifest[1].Slug)
	}
	if manifest[0].Title != posts.DefaultTitle {
		t.Fatalf("expected default title for b, got %q", manifest[0].Title)
	}
	if manifest[0].Author != "Site Author" {
		t.Fatalf("expected default author for b, got %q", manifest[0].Author)
	}
	if manifest[0].Tags == nil {
		t.Fatal("tags must serialize as an array, not null")
	}
	if manifest[1].Title != "Post A" {
		t.Fatalf("unexpected title for a: %q", manifest[1].Title)
	}

	feed, ok := writer.files[result.FeedPath]
	if !ok {
		t.Fatal("feed artifact missing")
	}
	if !strings.Contains(string(feed), "<title>Example Blog</title>") {
		t.Fatalf("feed missing channel title:\n%s", feed)
	}
	if !strings.Contains(string(feed), "<link>https://example.com/blog/a</link>") {
		t.Fatalf("feed missing item link:\n%s", feed)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	files := map[string]string{
		"one.md": "---\ntitle: One\ndate: \"2026-01-01\"\n---\nfirst\n",
		"two.md": "---\ntitle: Two\ndate: \"2026-02-01\"\n---\nsecond\n",
	}

	writer := newMemWriter()
	service := newTestService(t, files, writer)

	first, err := service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	manifestOne := writer.files[first.ManifestPath]
	feedOne := writer.files[first.FeedPath]

	second, err := service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(manifestOne, writer.files[second.ManifestPath]) {
		t.Fatal("manifest changed across rebuilds over unchanged input")
	}
	if !bytes.Equal(feedOne, writer.files[second.FeedPath]) {
		t.Fatal("feed changed across rebuilds over unchanged input")
	}
}

func TestBuildEmptyDirectoryProducesEmptyArtifacts(t *testing.T) {
	writer := newMemWriter()
	service := newTestService(t, map[string]string{}, writer)

	result, err := service.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("empty directory must not fail the build: %v", err)
	}
	if result.Posts != 0 {
		t.Fatalf("expected zero posts, got %d", result.Posts)
	}

	manifest := strings.TrimSpace(string(writer.files[result.ManifestPath]))
	if manifest != "[]" {
		t.Fatalf("expected empty JSON array, got %q", manifest)
	}

	feed := string(writer.files[result.FeedPath])
	if strings.Contains(feed, "<item>") {
		t.Fatalf("expected zero feed items:\n%s", feed)
	}
	if strings.Contains(feed, "<lastBuildDate>") {
		t.Fatalf("empty feed must omit lastBuildDate:\n%s", feed)
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	writer := newMemWriter()
	service := newTestService(t, map[string]string{"one.md": "hello\n"}, writer)

	result, err := service.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Posts != 1 {
		t.Fatalf("dry run must still parse, got %d posts", result.Posts)
	}
	if len(writer.files) != 0 {
		t.Fatalf("dry run must not write artifacts, wrote %v", writer.files)
	}
}

func TestBuildDuplicateSlugFails(t *testing.T) {
	writer := newMemWriter()
	service := newTestService(t, map[string]string{
		"My Post.md": "one\n",
		"my-post.md": "two\n",
	}, writer)

	_, err := service.Build(context.Background(), BuildOptions{})
	if !errors.Is(err, posts.ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
	if len(writer.files) != 0 {
		t.Fatalf("failed build must not write artifacts, wrote %v", writer.files)
	}
}

func TestCleanRemovesArtifacts(t *testing.T) {
	writer := newMemWriter()
	service := newTestService(t, map[string]string{"one.md": "hello\n"}, writer)

	if _, err := service.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.files) != 2 {
		t.Fatalf("expected both artifacts, got %v", writer.files)
	}

	if err := service.Clean(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.files) != 0 {
		t.Fatalf("expected artifacts removed, got %v", writer.files)
	}
}
