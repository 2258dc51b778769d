package posts

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the structured metadata recognised at the head of a post.
// Unrecognised keys in the YAML block are ignored, not errors.
type FrontMatter struct {
	Title   string
	Date    time.Time
	HasDate bool
	Excerpt string
	Tags    []string
	Author  string
}

// dateLayouts are the accepted shapes of the frontmatter date value, most
// specific first. Calendar dates without a time component are common in
// hand-written posts.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. A file without a leading delimited block is treated
// as all body with zero-valued metadata. It returns the structured
// frontmatter, the body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm, err := envelopeToFrontMatter(meta)
	if err != nil {
		return FrontMatter{}, nil, err
	}
	return fm, body, nil
}

type frontMatterEnvelope struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Excerpt string   `yaml:"excerpt"`
	Tags    []string `yaml:"tags"`
	Author  string   `yaml:"author"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) (FrontMatter, error) {
	fm := FrontMatter{
		Title:   strings.TrimSpace(env.Title),
		Excerpt: strings.TrimSpace(env.Excerpt),
		Tags:    normalizeTags(env.Tags),
		Author:  strings.TrimSpace(env.Author),
	}

	if raw := strings.TrimSpace(env.Date); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return FrontMatter{}, err
		}
		fm.Date = parsed
		fm.HasDate = true
	}

	return fm, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse frontmatter date %q: unrecognised format", raw)
}
