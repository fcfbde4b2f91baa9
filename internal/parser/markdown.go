package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"ingestd/internal/document"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser extracts flat text from Markdown using goldmark, then pages
// it with the same fixed windows as HTML.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(ctx context.Context, r io.Reader) ([]document.Page, error) {
	src, err := readAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		t := blockText(n, src)
		if t == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(t)
	}

	flat := strings.TrimSpace(buf.String())
	if flat == "" {
		return nil, fmt.Errorf("%w: no text content in markdown", ErrFormatParse)
	}
	return paginate(flat), nil
}

// blockText returns the source text of a block node. Leaf blocks (headings,
// paragraphs, code blocks) carry their own line segments; container blocks
// (lists, quotes) collect from their children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
			buf.WriteByte('\n')
		}
	} else {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := blockText(c, src); t != "" {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(t)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func (p *MarkdownParser) SupportedExtensions() []string {
	return []string{"md", "markdown"}
}

func (p *MarkdownParser) SupportedMIMETypes() []string {
	return []string{"text/markdown"}
}
