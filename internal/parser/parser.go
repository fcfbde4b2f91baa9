package parser

import (
	"context"
	"fmt"
	"io"

	"ingestd/internal/document"
)

// Parser converts raw document bytes into an ordered sequence of Pages.
// Implementations drain the reader completely before parsing begins; none of
// them parse incrementally.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) ([]document.Page, error)

	// SupportedExtensions lists lowercase file extensions without the
	// leading dot, e.g. "pdf".
	SupportedExtensions() []string

	// SupportedMIMETypes lists canonical MIME strings, e.g. "application/pdf".
	SupportedMIMETypes() []string
}

// readAll drains r to exhaustion, mapping read failures to ErrIO.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read document bytes: %v", ErrIO, err)
	}
	return data, nil
}

// pageCharLimit is the synthetic page size for formats without real page
// boundaries (DOCX, HTML, Markdown, plain text).
const pageCharLimit = 2000

// paginate slices flat extracted text into fixed-size synthetic pages.
// Windows are measured in runes so a boundary never splits a UTF-8 sequence.
func paginate(text string) []document.Page {
	runes := []rune(text)
	var pages []document.Page
	num := uint(1)
	for start := 0; start < len(runes); start += pageCharLimit {
		end := min(start+pageCharLimit, len(runes))
		pages = append(pages, document.Page{PageNum: num, Text: string(runes[start:end])})
		num++
	}
	return pages
}
