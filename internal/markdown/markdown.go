// Package markdown converts document bodies into HTML fragments.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Options controls how bodies are converted.
type Options struct {
	// HardWraps renders single newlines inside a paragraph as <br>.
	HardWraps bool
	// Unsafe passes raw HTML embedded in the body through unchanged.
	Unsafe bool
}

// Renderer converts Markdown bodies to HTML. It holds no per-call state and
// is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer with GitHub-flavoured Markdown and
// automatic heading ids enabled.
func NewRenderer(opts Options) *Renderer {
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
	}
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, gmhtml.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &Renderer{md: md}
}

// Render converts body into an HTML fragment.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
