package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ingestd/internal/document"
	"ingestd/internal/parser"
	"ingestd/internal/splitter"
)

type parseResponse struct {
	Chunks   []document.Chunk `json:"chunks"`
	Metadata docMetadata      `json:"metadata"`
	Stats    processingStats  `json:"stats"`
}

type docMetadata struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	PageCount   int    `json:"page_count"`
}

type processingStats struct {
	ProcessingTimeMS int64 `json:"processing_time_ms"`
	TotalChunks      int   `json:"total_chunks"`
	TotalTokens      int   `json:"total_tokens"`
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	extensions, mimeTypes := s.registry.Formats()
	writeJSON(w, http.StatusOK, map[string][]string{
		"extensions": extensions,
		"mime_types": mimeTypes,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	contentType := header.Header.Get("Content-Type")

	// Route by extension first, Content-Type second.
	p, err := s.registry.ForExtension(filepath.Ext(filename))
	if err != nil {
		p, err = s.registry.ForMIMEType(contentType)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	maxTokens := s.cfg.MaxTokens
	if v := r.FormValue("max_tokens"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTokens = n
		}
	}
	overlapPercent := s.cfg.OverlapPercent
	if v := r.FormValue("overlap_percent"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			overlapPercent = n
		}
	}

	split, err := splitter.NewSentenceSplitter(maxTokens, overlapPercent)
	if err != nil {
		jsonError(w, "invalid chunking parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	pages, err := p.Parse(r.Context(), bytes.NewReader(data))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, parser.ErrRemoteTimeout) {
			status = http.StatusGatewayTimeout
		}
		jsonError(w, err.Error(), status)
		return
	}

	chunks := split.Split(pages)
	if chunks == nil {
		chunks = []document.Chunk{}
	}
	totalTokens := 0
	for _, c := range chunks {
		totalTokens += c.TokenCount
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Chunks: chunks,
		Metadata: docMetadata{
			Filename:    filename,
			ContentType: contentType,
			SizeBytes:   len(data),
			PageCount:   len(pages),
		},
		Stats: processingStats{
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			TotalChunks:      len(chunks),
			TotalTokens:      totalTokens,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
