package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps a glamour renderer that is rebuilt when the wrap
// width changes.
type MarkdownRenderer struct {
	width    int
	style    string
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer that picks a style from the
// terminal background.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	r := &MarkdownRenderer{}
	r.setWidth(width)
	return r
}

// NewMarkdownRendererWithTheme picks the dark or light glamour style to
// match the theme's renderer.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	r := &MarkdownRenderer{}
	r.setWidthWithTheme(width, theme)
	return r
}

// setWidth rebuilds the renderer with auto style detection.
func (r *MarkdownRenderer) setWidth(width int) {
	r.rebuild(width, "")
}

// setWidthWithTheme rebuilds the renderer for width using the theme's
// background.
func (r *MarkdownRenderer) setWidthWithTheme(width int, theme Theme) {
	style := "light"
	if theme.Renderer == nil || theme.Renderer.HasDarkBackground() {
		style = "dark"
	}
	r.rebuild(width, style)
}

func (r *MarkdownRenderer) rebuild(width int, style string) {
	if width <= 0 {
		width = 80
	}
	if r.renderer != nil && width == r.width && style == r.style {
		return
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		r.renderer = nil
		return
	}
	r.width, r.style, r.renderer = width, style, tr
}

// Render renders md, returning md unchanged if no renderer could be built.
func (r *MarkdownRenderer) Render(md string) (string, error) {
	if r == nil || r.renderer == nil {
		return md, nil
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md, err
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, " \n\r\t"), nil
}

