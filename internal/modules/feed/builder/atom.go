package builder

import (
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
)

// AtomRenderer renders Atom 1.0. Images have no Atom mapping and are dropped.
type AtomRenderer struct{}

func (AtomRenderer) Format() domain.Format { return domain.FormatAtom }

func (AtomRenderer) ContentType() string { return "application/atom+xml; charset=utf-8" }

func (r AtomRenderer) Render(ch Channel, entries []Entry) (string, error) {
	return r.render(ch, entries), nil
}

func (AtomRenderer) render(ch Channel, entries []Entry) string {
	w := &xmlWriter{}
	w.sb.WriteString(xmlHeader)
	w.line(0, `<feed xmlns="%s">`, atomNamespace)

	w.text(1, "title", ch.Title)
	w.text(1, "subtitle", ch.Description)
	w.line(1, `<link href="%s" rel="self" type="application/atom+xml"/>`, Escape(ch.FeedURL))
	w.line(1, `<link href="%s" rel="alternate" type="text/html"/>`, Escape(ch.SiteURL))
	w.text(1, "id", ch.SiteURL)
	w.text(1, "updated", formatISO8601(ch.BuiltAt))
	w.text(1, "rights", ch.Copyright)
	if ch.ManagingEditor != "" {
		w.line(1, "<author>")
		w.text(2, "name", ch.ManagingEditor)
		w.line(1, "</author>")
	}

	for _, e := range entries {
		w.line(1, "<entry>")
		w.text(2, "title", e.Title)
		w.line(2, `<link href="%s" rel="alternate"/>`, Escape(e.Link))
		w.text(2, "id", e.Link)
		w.text(2, "updated", formatISO8601(e.Published))
		w.text(2, "summary", e.Description)
		if e.Content != "" {
			w.line(2, `<content type="html">%s</content>`, cdata(e.Content))
		}
		if e.Author != "" {
			w.line(2, "<author>")
			w.text(3, "name", e.Author)
			w.line(2, "</author>")
		}
		if e.Category != "" {
			w.line(2, `<category term="%s"/>`, Escape(e.Category))
		}
		w.line(1, "</entry>")
	}

	w.line(0, "</feed>")
	return w.String()
}
