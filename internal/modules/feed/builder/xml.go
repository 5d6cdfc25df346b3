package builder

import (
	"fmt"
	"strings"
	"time"
)

const (
	xmlHeader        = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	atomNamespace    = "http://www.w3.org/2005/Atom"
	contentNamespace = "http://purl.org/rss/1.0/modules/content/"

	// rfc1123 is RFC 1123 with the literal GMT zone RSS readers expect.
	rfc1123 = "Mon, 02 Jan 2006 15:04:05 GMT"
	iso8601 = "2006-01-02T15:04:05.000Z"
)

func formatRFC1123(t time.Time) string {
	return t.UTC().Format(rfc1123)
}

func formatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601)
}

// xmlWriter accumulates an indented document.
type xmlWriter struct {
	sb strings.Builder
}

func (w *xmlWriter) line(depth int, format string, args ...any) {
	w.sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// text writes <name>escaped value</name>.
func (w *xmlWriter) text(depth int, name, value string) {
	w.line(depth, "<%s>%s</%s>", name, Escape(value), name)
}

// optional writes the element only when value is non-empty.
func (w *xmlWriter) optional(depth int, name, value string) {
	if value == "" {
		return
	}
	w.text(depth, name, value)
}

func (w *xmlWriter) String() string {
	return w.sb.String()
}
