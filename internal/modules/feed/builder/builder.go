package builder

import (
	"strings"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Renderer turns a neutral channel and its entries into a finished document.
type Renderer interface {
	Format() domain.Format
	ContentType() string
	Render(ch Channel, entries []Entry) (string, error)
}

// Builder holds the renderers and the clock used for build timestamps.
// It has no mutable state and is safe for concurrent use.
type Builder struct {
	now       func() time.Time
	renderers map[domain.Format]Renderer
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock replaces time.Now for lastBuildDate and updated stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithRenderer registers or replaces the renderer for its format.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) {
		b.renderers[r.Format()] = r
	}
}

// New creates a builder with the RSS, Atom and JSON renderers registered.
func New(opts ...Option) *Builder {
	b := &Builder{
		now: time.Now,
		renderers: map[domain.Format]Renderer{
			domain.FormatRss:  RSSRenderer{},
			domain.FormatAtom: AtomRenderer{},
			domain.FormatJson: JSONRenderer{},
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = New()

// ToRss renders items as an RSS 2.0 document using the wall clock.
func ToRss(items []domain.Item, opts domain.ChannelOptions) string {
	return defaultBuilder.ToRss(items, opts)
}

// ToAtom renders items as an Atom 1.0 document using the wall clock.
func ToAtom(items []domain.Item, opts domain.ChannelOptions) string {
	return defaultBuilder.ToAtom(items, opts)
}

// ToRss renders without validating the input.
func (b *Builder) ToRss(items []domain.Item, opts domain.ChannelOptions) string {
	return RSSRenderer{}.render(newChannel(opts, b.now()), newEntries(items, opts.SiteURL))
}

// ToAtom renders without validating the input.
func (b *Builder) ToAtom(items []domain.Item, opts domain.ChannelOptions) string {
	return AtomRenderer{}.render(newChannel(opts, b.now()), newEntries(items, opts.SiteURL))
}

// ContentType returns the response media type for format.
func (b *Builder) ContentType(format domain.Format) (string, error) {
	r, ok := b.renderers[format]
	if !ok {
		return "", oops.With("format", format).Wrap(errors.ErrUnsupportedFormat)
	}
	return r.ContentType(), nil
}

// Render validates the input and renders it in the requested format.
func (b *Builder) Render(format domain.Format, items []domain.Item, opts domain.ChannelOptions) (string, error) {
	r, ok := b.renderers[format]
	if !ok {
		return "", oops.With("format", format).Wrap(errors.ErrUnsupportedFormat)
	}
	if err := Validate(items, opts); err != nil {
		return "", err
	}
	return r.Render(newChannel(opts, b.now()), newEntries(items, opts.SiteURL))
}

// Validate reports missing required channel options and incomplete items.
func Validate(items []domain.Item, opts domain.ChannelOptions) error {
	required := []lo.Entry[string, string]{
		{Key: "title", Value: opts.Title},
		{Key: "description", Value: opts.Description},
		{Key: "site_url", Value: opts.SiteURL},
		{Key: "feed_url", Value: opts.FeedURL},
	}
	missing := lo.FilterMap(required, func(e lo.Entry[string, string], _ int) (string, bool) {
		return e.Key, e.Value == ""
	})
	if len(missing) > 0 {
		return oops.
			Code("feed_invalid_channel").
			With("missing", missing).
			Wrapf(errors.ErrInvalidChannel, "missing %s", strings.Join(missing, ", "))
	}

	for i, item := range items {
		if err := ValidateItem(item); err != nil {
			return oops.
				Code("feed_invalid_item").
				With("index", i).
				Wrapf(err, "item %d", i)
		}
	}
	return nil
}

// ValidateItem reports the required fields item is missing.
func ValidateItem(item domain.Item) error {
	var fields []string
	if item.Title == "" {
		fields = append(fields, "title")
	}
	if item.Link == "" && item.ID == "" {
		fields = append(fields, "link")
	}
	if item.PublicationDate.IsZero() {
		fields = append(fields, "publication_date")
	}
	if len(fields) == 0 {
		return nil
	}
	return oops.
		Code("feed_invalid_item").
		With("missing", fields).
		Wrapf(errors.ErrInvalidItem, "missing %s", strings.Join(fields, ", "))
}
