package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/oops"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md     goldmark.Markdown
	policy *bluemonday.Policy
)

func init() {
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML is allowed here and stripped by the policy below.
			html.WithUnsafe(),
		),
	)

	policy = bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
}

// ToHTML renders Markdown to sanitized HTML suitable for feed content.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", oops.With("context", "failed to render markdown").Wrap(err)
	}
	return policy.Sanitize(buf.String()), nil
}
