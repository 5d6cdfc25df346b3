package builder

import (
	"strings"
	"unicode/utf8"
)

// Escape replaces the five XML special characters in plain text.
// The ampersand goes first so the entities introduced later are not escaped twice.
// Characters XML 1.0 cannot carry are dropped first.
func Escape(s string) string {
	s = xmlChars(s)
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// cdata wraps raw markup in a CDATA section. A literal "]]>" in the markup is
// split across two sections so it cannot close the container early.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(xmlChars(s), "]]>", "]]]]><![CDATA[>") + "]]>"
}

// xmlChars drops invalid UTF-8 and every rune outside the XML 1.0 Char production.
func xmlChars(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
