package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ingestd/internal/api"
	"ingestd/internal/config"
	"ingestd/internal/parser"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Local parsers first: the registry is first-wins, so digital PDFs stay
	// local and the OCR parser only picks up the image formats.
	registry := parser.NewRegistry()
	registry.Register(&parser.PDFParser{})
	registry.Register(&parser.DOCXParser{})
	registry.Register(&parser.HTMLParser{})
	registry.Register(&parser.MarkdownParser{})
	registry.Register(&parser.TextParser{})
	if cfg.OCREnabled() {
		registry.Register(parser.NewOCRParser(cfg.OCREndpoint, cfg.OCRAPIKey))
	}

	srv := api.NewServer(registry, log, cfg)

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		// Remote OCR can hold a request for up to a minute of polling.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting ingestd", "port", cfg.Port, "ocr_enabled", cfg.OCREnabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
