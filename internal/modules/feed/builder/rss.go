package builder

import (
	"strconv"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
)

// RSSRenderer renders RSS 2.0 with the content and atom extensions.
type RSSRenderer struct{}

func (RSSRenderer) Format() domain.Format { return domain.FormatRss }

func (RSSRenderer) ContentType() string { return "application/rss+xml; charset=utf-8" }

func (r RSSRenderer) Render(ch Channel, entries []Entry) (string, error) {
	return r.render(ch, entries), nil
}

func (RSSRenderer) render(ch Channel, entries []Entry) string {
	w := &xmlWriter{}
	w.sb.WriteString(xmlHeader)
	w.line(0, `<rss version="2.0" xmlns:content="%s" xmlns:atom="%s">`, contentNamespace, atomNamespace)
	w.line(1, "<channel>")

	w.text(2, "title", ch.Title)
	w.text(2, "link", ch.SiteURL)
	w.text(2, "description", ch.Description)
	w.text(2, "language", ch.Language)
	w.text(2, "lastBuildDate", formatRFC1123(ch.BuiltAt))
	w.line(2, `<atom:link href="%s" rel="self" type="application/rss+xml"/>`, Escape(ch.FeedURL))
	w.text(2, "copyright", ch.Copyright)
	w.text(2, "ttl", strconv.Itoa(ch.TTL))
	w.optional(2, "managingEditor", ch.ManagingEditor)
	w.optional(2, "webMaster", ch.WebMaster)

	if ch.ImageURL != "" {
		w.line(2, "<image>")
		w.text(3, "url", ch.ImageURL)
		w.text(3, "title", ch.Title)
		w.text(3, "link", ch.SiteURL)
		w.line(2, "</image>")
	}

	for _, e := range entries {
		w.line(2, "<item>")
		w.text(3, "title", e.Title)
		w.text(3, "link", e.Link)
		w.text(3, "description", e.Description)
		w.text(3, "pubDate", formatRFC1123(e.Published))
		w.line(3, `<guid isPermaLink="true">%s</guid>`, Escape(e.Link))
		w.optional(3, "author", e.Author)
		w.optional(3, "category", e.Category)
		if e.Content != "" {
			w.line(3, "<content:encoded>%s</content:encoded>", cdata(e.Content))
		}
		if e.ImageURL != "" {
			// Length and type are fixed; the image is never fetched.
			w.line(3, `<enclosure url="%s" length="0" type="image/jpeg"/>`, Escape(e.ImageURL))
		}
		w.line(2, "</item>")
	}

	w.line(1, "</channel>")
	w.line(0, "</rss>")
	return w.String()
}
