package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"ingestd/internal/document"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts text from PDF documents with ledongthuc/pdf. The
// library addresses pages individually, so text is attributed to its true
// 1-based page ordinal.
type PDFParser struct{}

func (p *PDFParser) Parse(ctx context.Context, r io.Reader) ([]document.Page, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf container: %v", ErrFormatParse, err)
	}

	var pages []document.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: extract text from page %d: %v", ErrFormatParse, i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, document.Page{PageNum: uint(i), Text: text})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no text content in pdf", ErrFormatParse)
	}
	return pages, nil
}

func (p *PDFParser) SupportedExtensions() []string {
	return []string{"pdf"}
}

func (p *PDFParser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}
