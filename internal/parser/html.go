package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"ingestd/internal/document"

	"golang.org/x/net/html"
)

// HTMLParser extracts visible text from HTML documents. Script and style
// content is dropped, text comes from the <body> subtree (or every text node
// when there is no body), interior whitespace collapses to single spaces, and
// the flat result is sliced into fixed-size synthetic pages.
type HTMLParser struct{}

func (p *HTMLParser) Parse(ctx context.Context, r io.Reader) ([]document.Page, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid utf-8", ErrFormatParse)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrFormatParse, err)
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}

	var buf strings.Builder
	collectText(root, &buf)
	text := buf.String()
	if text == "" {
		return nil, fmt.Errorf("%w: no text content in html", ErrFormatParse)
	}

	return paginate(text), nil
}

// collectText appends whitespace-normalized text node content under n,
// skipping script and style subtrees.
func collectText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		}
	}
	if n.Type == html.TextNode {
		for _, word := range strings.Fields(n.Data) {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(word)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func (p *HTMLParser) SupportedExtensions() []string {
	return []string{"html", "htm"}
}

func (p *HTMLParser) SupportedMIMETypes() []string {
	return []string{"text/html"}
}
