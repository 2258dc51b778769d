package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactWriter abstracts how build outputs reach disk so tests can capture
// writes without touching the filesystem.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
}

// NewFSWriter returns a writer that performs atomic replace-on-write: content
// lands in a temporary file next to the target and is renamed into place only
// once fully written. Readers (nginx, the client fetch) never observe a
// partial artifact.
func NewFSWriter() ArtifactWriter {
	return fsWriter{}
}

type fsWriter struct{}

func (fsWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("manifest: write requires path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("manifest: ensure dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("manifest: create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("manifest: write temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("manifest: close temp for %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("manifest: replace %s: %w", path, err)
	}
	return nil
}

func (fsWriter) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("manifest: remove %s: %w", path, err)
	}
	return nil
}
