// Package posts parses markdown blog posts with YAML frontmatter and exposes
// the queryable in-memory collection the manifest artifacts are built from.
package posts
