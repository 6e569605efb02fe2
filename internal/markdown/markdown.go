// Package markdown converts composer source text into the HTML that is
// both previewed and published.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns Markdown into HTML.
type Renderer interface {
	Render(src string) (string, error)
}

// HTMLRenderer is the goldmark-backed Renderer. GFM tables and
// strikethrough are on, single newlines are not hard breaks, raw HTML passes
// through untouched and typographic substitution is off.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// New builds the renderer with the fixed publishing option set.
func New() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts src to HTML.
func (r *HTMLRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(src string) (string, error)

// Render calls f.
func (f RendererFunc) Render(src string) (string, error) {
	return f(src)
}
