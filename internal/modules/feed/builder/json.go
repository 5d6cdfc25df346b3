package builder

import (
	"encoding/json"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// JSONRenderer renders a JSON Feed document through gorilla/feeds.
// Unlike Atom it keeps the entry image.
type JSONRenderer struct{}

func (JSONRenderer) Format() domain.Format { return domain.FormatJson }

func (JSONRenderer) ContentType() string { return "application/feed+json; charset=utf-8" }

func (JSONRenderer) Render(ch Channel, entries []Entry) (string, error) {
	feed := &feeds.Feed{
		Title:       ch.Title,
		Link:        &feeds.Link{Href: ch.SiteURL},
		Description: ch.Description,
		Copyright:   ch.Copyright,
		Updated:     ch.BuiltAt,
	}
	if ch.ManagingEditor != "" {
		feed.Author = &feeds.Author{Name: ch.ManagingEditor}
	}
	feed.Items = lo.Map(entries, func(e Entry, _ int) *feeds.Item {
		item := &feeds.Item{
			Id:          e.Link,
			Title:       e.Title,
			Link:        &feeds.Link{Href: e.Link},
			Description: e.Description,
			Content:     e.Content,
			Created:     e.Published,
		}
		if e.Author != "" {
			item.Author = &feeds.Author{Name: e.Author}
		}
		if e.ImageURL != "" {
			item.Enclosure = &feeds.Enclosure{Url: e.ImageURL, Length: "0", Type: "image/jpeg"}
		}
		return item
	})

	doc := (&feeds.JSON{Feed: feed}).JSONFeed()
	doc.FeedUrl = ch.FeedURL
	doc.Icon = ch.ImageURL
	for i, e := range entries {
		if e.Category != "" {
			doc.Items[i].Tags = []string{e.Category}
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", oops.With("feed_url", ch.FeedURL, "context", "failed to marshal json feed").Wrap(err)
	}
	return string(data), nil
}
