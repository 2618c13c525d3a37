// Package render turns markdown content payloads into HTML for the web view and into
// styled text for the terminal browser.
package render

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// HTMLRenderer converts markdown to HTML. Raw HTML in the source is omitted.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates a GitHub-flavoured markdown renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render returns the HTML for src.
func (r *HTMLRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal styles accepted by NewTerminalRenderer.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

// TerminalRenderer converts markdown to ANSI-styled text wrapped to a fixed width.
type TerminalRenderer struct {
	tr    *glamour.TermRenderer
	width int
}

// NewTerminalRenderer creates a renderer for the given glamour style and wrap width.
func NewTerminalRenderer(style string, width int) (*TerminalRenderer, error) {
	if width < 20 {
		width = 20
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}
	return &TerminalRenderer{tr: tr, width: width}, nil
}

// Width returns the wrap width the renderer was built with.
func (r *TerminalRenderer) Width() int { return r.width }

// Render returns the styled text for src.
func (r *TerminalRenderer) Render(src string) (string, error) {
	out, err := r.tr.Render(src)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
