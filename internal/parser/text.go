package parser

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"ingestd/internal/document"
)

// TextParser handles plain text. Blank-line separated paragraphs are joined
// back with double newlines, then paged with fixed windows.
type TextParser struct{}

func (p *TextParser) Parse(ctx context.Context, r io.Reader) ([]document.Page, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid utf-8", ErrFormatParse)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan text: %v", ErrFormatParse, err)
	}

	flat := strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
	if flat == "" {
		return nil, fmt.Errorf("%w: no text content", ErrFormatParse)
	}
	return paginate(flat), nil
}

func (p *TextParser) SupportedExtensions() []string {
	return []string{"txt"}
}

func (p *TextParser) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}
