package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ingestd/internal/document"
)

const (
	analyzePath    = "/formrecognizer/documentModels/prebuilt-read:analyze?api-version=2023-07-31"
	defaultPollGap = 2 * time.Second
	defaultBudget  = 30
)

// OCRParser sends raw bytes to an Azure Document Intelligence style backend
// and polls the returned operation until the analysis completes. Scanned
// images go through this parser; digital PDFs stay local.
//
// The poll budget is fixed: once exhausted the parse fails with
// ErrRemoteTimeout and is not retried. Context cancellation is the only way
// to stop earlier.
type OCRParser struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client

	pollInterval time.Duration
	maxPolls     int
}

func NewOCRParser(endpoint, apiKey string) *OCRParser {
	return &OCRParser{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: defaultPollGap,
		maxPolls:     defaultBudget,
	}
}

// analyzeResponse is the poll response envelope. A present analyzeResult
// means the operation completed.
type analyzeResponse struct {
	Status        string         `json:"status"`
	AnalyzeResult *analyzeResult `json:"analyzeResult"`
}

type analyzeResult struct {
	Content string       `json:"content"`
	Pages   []remotePage `json:"pages"`
}

type remotePage struct {
	PageNumber int          `json:"pageNumber"`
	Lines      []remoteLine `json:"lines"`
}

type remoteLine struct {
	Content string `json:"content"`
}

func (p *OCRParser) Parse(ctx context.Context, r io.Reader) ([]document.Page, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	operationURL, err := p.submit(ctx, data)
	if err != nil {
		return nil, err
	}

	result, err := p.pollResult(ctx, operationURL)
	if err != nil {
		return nil, err
	}

	var pages []document.Page
	for _, rp := range result.Pages {
		var text strings.Builder
		for _, line := range rp.Lines {
			text.WriteString(line.Content)
			text.WriteByte('\n')
		}
		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}
		pages = append(pages, document.Page{PageNum: uint(rp.PageNumber), Text: trimmed})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages in analysis result", ErrFormatParse)
	}
	return pages, nil
}

// submit posts the document and returns the operation URL to poll.
func (p *OCRParser) submit(ctx context.Context, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+analyzePath, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: create submit request: %v", ErrRemoteProtocol, err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: submit document: %v", ErrRemoteProtocol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: submit status %d: %s", ErrRemoteProtocol, resp.StatusCode, string(body))
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("%w: no Operation-Location header in submit response", ErrRemoteProtocol)
	}
	return operationURL, nil
}

// pollResult polls the operation at a fixed interval until a completed
// analysis arrives or the attempt budget runs out.
func (p *OCRParser) pollResult(ctx context.Context, operationURL string) (*analyzeResult, error) {
	timer := time.NewTimer(p.pollInterval)
	defer timer.Stop()

	for attempt := 0; attempt < p.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("remote analysis canceled: %w", ctx.Err())
		case <-timer.C:
		}
		timer.Reset(p.pollInterval)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: create poll request: %v", ErrRemoteProtocol, err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: poll operation: %v", ErrRemoteProtocol, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Transient backend hiccup; the attempt still counts.
			io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			continue
		}

		var ar analyzeResponse
		err = json.NewDecoder(resp.Body).Decode(&ar)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: decode poll response: %v", ErrRemoteProtocol, err)
		}

		if ar.AnalyzeResult != nil {
			return ar.AnalyzeResult, nil
		}
	}

	return nil, fmt.Errorf("%w: no completion after %d attempts", ErrRemoteTimeout, p.maxPolls)
}

func (p *OCRParser) SupportedExtensions() []string {
	return []string{"pdf", "jpg", "jpeg", "png", "bmp", "tiff"}
}

func (p *OCRParser) SupportedMIMETypes() []string {
	return []string{"application/pdf", "image/jpeg", "image/png", "image/bmp", "image/tiff"}
}
