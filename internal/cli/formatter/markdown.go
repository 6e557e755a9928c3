package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders agent markdown for the terminal, wrapped at
// width. Rendering failures fall back to the raw text.
func RenderMarkdown(src string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
