package markdown_test

import (
	"testing"

	"github.com/reshetovitsme/portfolio-feed/internal/shared/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis",
			in:       "Hello **world**",
			contains: []string{"<p>Hello <strong>world</strong></p>"},
		},
		{
			name:     "heading id",
			in:       "# Intro",
			contains: []string{`<h1 id="intro">Intro</h1>`},
		},
		{
			name:     "script stripped",
			in:       "ok <script>alert(1)</script>",
			contains: []string{"ok"},
			absent:   []string{"<script>", "alert(1)"},
		},
		{
			name:     "strikethrough",
			in:       "~~old~~",
			contains: []string{"<del>old</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := markdown.ToHTML(tt.in)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}
