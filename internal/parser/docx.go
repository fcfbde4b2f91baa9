package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"ingestd/internal/document"

	"github.com/fumiama/go-docx"
)

// DOCXParser extracts text from Word documents. DOCX has no intrinsic page
// boundaries, so pagination is synthetic: the paragraph buffer is flushed as
// a Page whenever it grows past pageCharLimit.
type DOCXParser struct{}

func (p *DOCXParser) Parse(ctx context.Context, r io.Reader) ([]document.Page, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open docx container: %v", ErrFormatParse, err)
	}

	var pages []document.Page
	var buf strings.Builder
	pageNum := uint(1)

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			pages = append(pages, document.Page{PageNum: pageNum, Text: text})
			pageNum++
		}
		buf.Reset()
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
		if buf.Len() > pageCharLimit {
			flush()
		}
	}
	flush()

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no text content in docx", ErrFormatParse)
	}
	return pages, nil
}

// paragraphText concatenates the run text of a paragraph.
func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func (p *DOCXParser) SupportedExtensions() []string {
	return []string{"docx"}
}

func (p *DOCXParser) SupportedMIMETypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}
