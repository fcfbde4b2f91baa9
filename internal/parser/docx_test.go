package parser

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

// buildDocx produces an in-memory .docx with one paragraph per entry.
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, text := range paragraphs {
		w.AddParagraph().AddText(text)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return buf.Bytes()
}

func TestDOCXParser_ShortDocumentIsOnePage(t *testing.T) {
	data := buildDocx(t, []string{
		"First paragraph of the document.",
		"Second paragraph, still well under the page threshold.",
	})

	p := &DOCXParser{}
	pages, err := p.Parse(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected exactly 1 page for short document, got %d", len(pages))
	}
	if pages[0].PageNum != 1 {
		t.Errorf("expected page_num 1, got %d", pages[0].PageNum)
	}
	if !strings.Contains(pages[0].Text, "First paragraph of the document.") {
		t.Errorf("missing first paragraph in %q", pages[0].Text)
	}
	if !strings.Contains(pages[0].Text, "Second paragraph") {
		t.Errorf("missing second paragraph in %q", pages[0].Text)
	}
}

func TestDOCXParser_ParagraphsJoinedWithNewlines(t *testing.T) {
	data := buildDocx(t, []string{"alpha", "beta"})

	p := &DOCXParser{}
	pages, err := p.Parse(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "alpha\nbeta"; pages[0].Text != want {
		t.Errorf("expected %q, got %q", want, pages[0].Text)
	}
}

func TestDOCXParser_LongDocumentPaginates(t *testing.T) {
	para := strings.Repeat("sentence content ", 10) // ~170 chars per paragraph
	var paragraphs []string
	for i := 0; i < 30; i++ {
		paragraphs = append(paragraphs, para)
	}
	data := buildDocx(t, paragraphs)

	p := &DOCXParser{}
	pages, err := p.Parse(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) < 2 {
		t.Fatalf("expected multiple synthetic pages, got %d", len(pages))
	}
	var last uint
	for i, pg := range pages {
		if pg.PageNum < 1 || pg.PageNum < last {
			t.Errorf("page %d: ordinal %d not non-decreasing from 1", i, pg.PageNum)
		}
		last = pg.PageNum
		if strings.TrimSpace(pg.Text) == "" {
			t.Errorf("page %d: empty text", i)
		}
	}
}

func TestDOCXParser_MalformedContainer(t *testing.T) {
	p := &DOCXParser{}
	_, err := p.Parse(context.Background(), strings.NewReader("this is not a zip container"))
	if !errors.Is(err, ErrFormatParse) {
		t.Errorf("expected ErrFormatParse, got %v", err)
	}
}

func TestDOCXParser_NoTextIsFailure(t *testing.T) {
	data := buildDocx(t, nil)

	p := &DOCXParser{}
	_, err := p.Parse(context.Background(), bytes.NewReader(data))
	if !errors.Is(err, ErrFormatParse) {
		t.Errorf("expected ErrFormatParse for text-free document, got %v", err)
	}
}
