package render

import (
	"context"
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yosssi/gohtml"
)

// ToString renders a templ component into a string.
func ToString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Pretty re-indents an HTML document.
func Pretty(html string) string {
	if strings.TrimSpace(html) == "" {
		return html
	}
	return gohtml.Format(html)
}

var lineBreakTags = regexp.MustCompile(`(?i)<\s*(br|hr|/p|/div|/h[1-6]|/li|/tr|/table|/blockquote|/title)\b[^>]*>`)

// PlainText converts an HTML document into readable text: markup, styles and
// scripts are dropped, entities decoded, and block elements end a line.
func PlainText(html string) string {
	marked := lineBreakTags.ReplaceAllString(html, "$0\n")
	stripped := stdhtml.UnescapeString(bluemonday.StrictPolicy().Sanitize(marked))

	lines := strings.Split(stripped, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
