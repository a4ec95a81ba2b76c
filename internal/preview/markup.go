// Package preview resolves renderable content for the selected entry:
// image decoding, markup rendering, and icon fallback, with debounced
// selection tracking and cancellation on re-selection.
package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// maxTextPreviewBytes caps how much of a text file is read for preview.
// Anything longer is cut at the cap with a trailing notice line.
const maxTextPreviewBytes = 256 * 1024

// newMarkdownRenderer creates a configured goldmark renderer.
func newMarkdownRenderer() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// RenderMarkdownHTML converts markdown source to an HTML fragment.
func RenderMarkdownHTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := newMarkdownRenderer().Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return buf.String(), nil
}

// fenceLanguage guesses the fenced-code-block language tag for a filename
// using chroma's lexer registry. Empty when nothing matches.
func fenceLanguage(name string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// isMarkdownName reports whether the file renders as markdown directly
// rather than being wrapped in a code fence.
func isMarkdownName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// MarkdownForFile produces the markdown shown in the preview pane for a
// text-like file: markdown sources pass through, everything else is wrapped
// in a fenced code block tagged with the guessed language.
func MarkdownForFile(name string, data []byte) string {
	truncated := false
	if len(data) > maxTextPreviewBytes {
		data = data[:maxTextPreviewBytes]
		truncated = true
	}

	var md string
	if isMarkdownName(name) {
		md = string(data)
	} else {
		// A fence longer than any backtick run in the content keeps
		// embedded code blocks from breaking out.
		fence := "````"
		md = fence + fenceLanguage(name) + "\n" + string(data) + "\n" + fence
	}

	if truncated {
		md += "\n\n*(preview truncated)*"
	}
	return md
}

// RenderFile reads a text-like file and returns both the pane markdown and
// the standalone HTML rendering. Used by the single-item preview path and
// the render subcommand.
func RenderFile(path string) (markdown, htmlOut string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	markdown = MarkdownForFile(filepath.Base(path), data)

	var source []byte
	if isMarkdownName(path) {
		source = data
		if len(source) > maxTextPreviewBytes {
			source = source[:maxTextPreviewBytes]
		}
	} else {
		source = []byte(markdown)
	}
	htmlOut, err = RenderMarkdownHTML(source)
	if err != nil {
		return "", "", err
	}
	return markdown, htmlOut, nil
}
