package manifest

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/posts"
)

func feedPosts() []*posts.Post {
	return []*posts.Post{
		{
			Slug:    "cats-and-dogs",
			Title:   "Cats & Dogs <3",
			Date:    time.Date(2026, time.April, 9, 8, 0, 0, 0, time.UTC),
			Excerpt: `A "summary" with 'quotes'`,
			Tags:    []string{"pets & care"},
		},
		{
			Slug:  "second",
			Title: "Second",
			Date:  time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestFeedEscapesSpecialCharacters(t *testing.T) {
	feed := buildRSSFeed(Site{Title: "Blog"}, feedPosts(), nil, 0)

	if !strings.Contains(feed, "<title>Cats &amp; Dogs &lt;3</title>") {
		t.Fatalf("title not escaped:\n%s", feed)
	}
	if strings.Contains(feed, "Cats & Dogs <3") {
		t.Fatalf("raw special characters leaked into feed:\n%s", feed)
	}
	if !strings.Contains(feed, "&#34;summary&#34;") {
		t.Fatalf("quotes not escaped:\n%s", feed)
	}
	if !strings.Contains(feed, "<category>pets &amp; care</category>") {
		t.Fatalf("category not escaped:\n%s", feed)
	}
}

func TestFeedStructure(t *testing.T) {
	site := Site{
		Title:       "Example Blog",
		BaseURL:     "https://example.com",
		Description: "Notes",
		Language:    "en",
	}
	bodies := map[string]string{"cats-and-dogs": "<p>hello</p>"}
	feed := buildRSSFeed(site, feedPosts(), bodies, 0)

	for _, fragment := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">`,
		"<language>en</language>",
		"<lastBuildDate>Thu, 09 Apr 2026 08:00:00 +0000</lastBuildDate>",
		"<link>https://example.com/blog/cats-and-dogs</link>",
		"<pubDate>Thu, 09 Apr 2026 08:00:00 +0000</pubDate>",
		"<content:encoded>&lt;p&gt;hello&lt;/p&gt;</content:encoded>",
		`<guid isPermaLink="false">`,
	} {
		if !strings.Contains(feed, fragment) {
			t.Fatalf("feed missing %q:\n%s", fragment, feed)
		}
	}
}

func TestFeedRespectsItemLimit(t *testing.T) {
	feed := buildRSSFeed(Site{Title: "Blog"}, feedPosts(), nil, 1)
	if got := strings.Count(feed, "<item>"); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
}

func TestFeedGUIDStableAcrossBuilds(t *testing.T) {
	one := itemGUID("cats-and-dogs")
	two := itemGUID("cats-and-dogs")
	if one == "" || one != two {
		t.Fatalf("guid not deterministic: %q vs %q", one, two)
	}
	if other := itemGUID("different"); other == one {
		t.Fatal("distinct slugs must get distinct guids")
	}
}

func TestFeedBaseURLFallback(t *testing.T) {
	feed := buildRSSFeed(Site{Title: "Blog"}, feedPosts(), nil, 0)
	if !strings.Contains(feed, "<link>http://localhost</link>") {
		t.Fatalf("expected localhost fallback link:\n%s", feed)
	}
}
