package render

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word wrap used when the terminal width is unknown
const DefaultWidth = 120

// Markdown renders markdown for the terminal with Glamour. On renderer
// failure the source is returned as-is.
func Markdown(source string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}

	rendered, err := renderer.Render(source)
	if err != nil {
		return source
	}

	return rendered
}

// Plain renders markdown with the no-color style, for logs and tests
func Plain(source string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	return renderer.Render(source)
}
