package posts

import (
	"math"
	"sort"
	"strings"
	"time"
)

// wordsPerMinute is the reading speed assumed when deriving reading time.
const wordsPerMinute = 200

// DefaultTitle is applied when frontmatter carries no title.
const DefaultTitle = "Untitled Post"

// Post is the sole domain entity of the pipeline: one markdown source file
// parsed into its metadata and body. ReadingTime is derived from Content on
// every build and never stored independently.
type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Excerpt     string    `json:"excerpt"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	ReadingTime int       `json:"readingTime"`
}

// Navigation carries the neighbours of a post in the date-descending order.
// Previous is the next-most-recent post, Next the next-least-recent; terminal
// posts have a nil neighbour on the missing side.
type Navigation struct {
	Previous *Post `json:"previous"`
	Next     *Post `json:"next"`
}

// ComputeReadingTime returns the estimated reading time in whole minutes,
// ceiling(words / 200). Empty content yields zero.
func ComputeReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(wordsPerMinute)))
}

// normalizeTags collapses duplicate tags while preserving first-seen order,
// which is the order the UI displays them in.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// sortPosts orders posts descending by date. Ties break ascending by slug so
// repeated builds over unchanged input produce byte-identical artifacts.
func sortPosts(list []*Post) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].Slug < list[j].Slug
		}
		return list[i].Date.After(list[j].Date)
	})
}
