package manifest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/posts"
)

const defaultFeedLimit = 100

// Site carries the channel-level metadata emitted into the feed envelope.
type Site struct {
	Title       string
	BaseURL     string
	Description string
	Language    string
}

// buildRSSFeed serializes the date-descending post list into an RSS 2.0
// document. Every text field passes through escapeXML. The lastBuildDate
// derives from the newest post rather than the wall clock so rebuilding an
// unchanged content directory produces byte-identical output.
func buildRSSFeed(site Site, list []*posts.Post, htmlBodies map[string]string, limit int) string {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}

	baseLink := baseURLWithFallback(site.BaseURL)
	language := strings.TrimSpace(site.Language)
	if language == "" {
		language = "en"
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Description)))
	builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(language)))
	if len(list) > 0 {
		builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", list[0].Date.UTC().Format(time.RFC1123Z)))
	}
	for _, post := range list {
		link := absoluteURL(baseLink, "/blog/"+post.Slug)
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(post.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(link)))
		builder.WriteString(fmt.Sprintf(`      <guid isPermaLink="false">%s</guid>`+"\n", escapeXML(itemGUID(post.Slug))))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", post.Date.UTC().Format(time.RFC1123Z)))
		if post.Excerpt != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(post.Excerpt)))
		}
		if body := htmlBodies[post.Slug]; body != "" {
			builder.WriteString(fmt.Sprintf("      <content:encoded>%s</content:encoded>\n", escapeXML(body)))
		}
		for _, tag := range post.Tags {
			builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(tag)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return base
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return base + normalized
}

// escapeXML escapes &, <, >, ", and ' for element and attribute content.
func escapeXML(value string) string {
	return html.EscapeString(value)
}
