package posts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStoreNotReady = errors.New("posts: store is not ready")
	ErrPostNotFound  = errors.New("posts: post not found")
	ErrSlugInvalid   = errors.New("posts: slug contains invalid characters")
	ErrDuplicateSlug = errors.New("posts: duplicate slug")
)

// DuplicateSlugError reports two source files resolving to the same slug.
// Slug collisions fail the build: letting the last file win would silently
// corrupt post URLs and prev/next navigation.
type DuplicateSlugError struct {
	Slug         string
	Path         string
	ExistingPath string
}

func (e *DuplicateSlugError) Error() string {
	if e == nil {
		return ErrDuplicateSlug.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug == "" {
		return ErrDuplicateSlug.Error()
	}
	return fmt.Sprintf("%s: slug=%s files=[%s %s]", ErrDuplicateSlug.Error(), slug, e.ExistingPath, e.Path)
}

func (e *DuplicateSlugError) Unwrap() error {
	return ErrDuplicateSlug
}
