package builder

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	"github.com/samber/lo"
)

const (
	DefaultLanguage = "en-us"
	DefaultTTL      = 60
)

// Channel is the format-neutral feed header every renderer works from.
// Defaults are already applied.
type Channel struct {
	Title          string
	Description    string
	SiteURL        string
	FeedURL        string
	Language       string
	Copyright      string
	ManagingEditor string
	WebMaster      string
	TTL            int
	ImageURL       string
	BuiltAt        time.Time
}

// Entry is the format-neutral form of a feed item.
type Entry struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
	Author      string
	Category    string
	Content     string
	ImageURL    string
}

func newChannel(opts domain.ChannelOptions, now time.Time) Channel {
	ch := Channel{
		Title:          opts.Title,
		Description:    opts.Description,
		SiteURL:        opts.SiteURL,
		FeedURL:        opts.FeedURL,
		Language:       lo.Ternary(opts.Language != "", opts.Language, DefaultLanguage),
		Copyright:      opts.Copyright,
		ManagingEditor: opts.ManagingEditor,
		WebMaster:      opts.WebMaster,
		TTL:            lo.Ternary(opts.TTL > 0, opts.TTL, DefaultTTL),
		ImageURL:       opts.ImageURL,
		BuiltAt:        now,
	}
	if ch.Copyright == "" {
		ch.Copyright = fmt.Sprintf("© %d %s", now.Year(), opts.Title)
	}
	return ch
}

func newEntries(items []domain.Item, siteURL string) []Entry {
	return lo.Map(items, func(item domain.Item, _ int) Entry {
		return Entry{
			Title:       item.Title,
			Link:        itemLink(item, siteURL),
			Description: item.Description,
			Published:   item.PublicationDate,
			Author:      item.Author,
			Category:    item.Category,
			Content:     item.Content,
			ImageURL:    item.ImageURL,
		}
	})
}

// itemLink falls back to a link derived from the item ID.
func itemLink(item domain.Item, siteURL string) string {
	if item.Link != "" || item.ID == "" {
		return item.Link
	}
	return strings.TrimRight(siteURL, "/") + "/" + url.PathEscape(item.ID)
}
