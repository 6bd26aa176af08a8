// Package markdown renders the markdown written by the AI model as HTML.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// ToHTML renders text. Raw HTML in text is omitted.
// Text that cannot be rendered is returned escaped.
func ToHTML(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var out bytes.Buffer
	if err := engine.Convert([]byte(text), &out); err != nil {
		return template.HTMLEscapeString(text)
	}
	return out.String()
}

// ListToHTML renders every item of a list.
func ListToHTML(items []string) []string {
	rendered := make([]string, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, ToHTML(item))
	}
	return rendered
}
