package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const completedResult = `{
	"status": "succeeded",
	"analyzeResult": {
		"content": "full text",
		"pages": [
			{"pageNumber": 1, "lines": [{"content": "first line"}, {"content": "second line"}]},
			{"pageNumber": 2, "lines": [{"content": "   "}]},
			{"pageNumber": 3, "lines": [{"content": "third page"}]}
		]
	}
}`

// newOCRBackend simulates the analyze/poll flow: pollsBeforeDone polls
// return a running status, then the analysis completes.
func newOCRBackend(t *testing.T, pollsBeforeDone int32) *httptest.Server {
	t.Helper()
	var polls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") == "" {
			t.Error("missing subscription key header")
		}
		switch {
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "prebuilt-read:analyze"):
			w.Header().Set("Operation-Location", srv.URL+"/operations/1")
			w.WriteHeader(http.StatusAccepted)
		case r.Method == http.MethodGet && r.URL.Path == "/operations/1":
			if polls.Add(1) <= pollsBeforeDone {
				fmt.Fprint(w, `{"status": "running"}`)
				return
			}
			fmt.Fprint(w, completedResult)
		default:
			http.NotFound(w, r)
		}
	}))
	return srv
}

func fastOCRParser(url string) *OCRParser {
	p := NewOCRParser(url, "test-key")
	p.pollInterval = time.Millisecond
	return p
}

func TestOCRParser_ConvertsRemotePages(t *testing.T) {
	srv := newOCRBackend(t, 2)
	defer srv.Close()

	p := fastOCRParser(srv.URL)
	pages, err := p.Parse(context.Background(), bytes.NewReader([]byte("scan bytes")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Page 2 is blank after trimming and must be dropped.
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].PageNum != 1 || pages[1].PageNum != 3 {
		t.Errorf("expected page ordinals 1 and 3, got %d and %d", pages[0].PageNum, pages[1].PageNum)
	}
	if want := "first line\nsecond line"; pages[0].Text != want {
		t.Errorf("expected %q, got %q", want, pages[0].Text)
	}
}

func TestOCRParser_SubmitFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	p := fastOCRParser(srv.URL)
	_, err := p.Parse(context.Background(), strings.NewReader("scan"))
	if !errors.Is(err, ErrRemoteProtocol) {
		t.Errorf("expected ErrRemoteProtocol, got %v", err)
	}
}

func TestOCRParser_MissingOperationLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := fastOCRParser(srv.URL)
	_, err := p.Parse(context.Background(), strings.NewReader("scan"))
	if !errors.Is(err, ErrRemoteProtocol) {
		t.Errorf("expected ErrRemoteProtocol, got %v", err)
	}
}

func TestOCRParser_PollBudgetExhausted(t *testing.T) {
	srv := newOCRBackend(t, 1000) // never completes within the budget
	defer srv.Close()

	p := fastOCRParser(srv.URL)
	p.maxPolls = 3
	_, err := p.Parse(context.Background(), strings.NewReader("scan"))
	if !errors.Is(err, ErrRemoteTimeout) {
		t.Errorf("expected ErrRemoteTimeout, got %v", err)
	}
}

func TestOCRParser_MalformedPollResponse(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Operation-Location", srv.URL+"/operations/1")
			w.WriteHeader(http.StatusAccepted)
			return
		}
		fmt.Fprint(w, `{"status": not json`)
	}))
	defer srv.Close()

	p := fastOCRParser(srv.URL)
	_, err := p.Parse(context.Background(), strings.NewReader("scan"))
	if !errors.Is(err, ErrRemoteProtocol) {
		t.Errorf("expected ErrRemoteProtocol for malformed response, got %v", err)
	}
}

func TestOCRParser_ContextCancellation(t *testing.T) {
	srv := newOCRBackend(t, 1000)
	defer srv.Close()

	p := NewOCRParser(srv.URL, "test-key")
	p.pollInterval = 500 * time.Millisecond

	// The deadline expires while waiting between polls, well before the
	// 30-attempt budget would run out.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.Parse(ctx, strings.NewReader("scan"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
}

func TestOCRParser_Capabilities(t *testing.T) {
	p := NewOCRParser("https://example.invalid", "key")
	exts := p.SupportedExtensions()
	for _, want := range []string{"pdf", "jpg", "jpeg", "png", "bmp", "tiff"} {
		found := false
		for _, e := range exts {
			if e == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing extension %q in %v", want, exts)
		}
	}
}
