package posts

import (
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default slug normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// SlugFromFilename derives the canonical slug for a post from its source
// filename: the base name without extension, normalized to URL-safe form.
// The slug is immutable once created; renaming the file changes the slug.
func SlugFromFilename(name string) (string, error) {
	base := path.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." {
		return "", ErrSlugInvalid
	}

	if normalized, err := slug.Normalize(base); err == nil && normalized != "" {
		return normalized, nil
	}
	if slug.IsValid(base) {
		return base, nil
	}
	return "", ErrSlugInvalid
}
