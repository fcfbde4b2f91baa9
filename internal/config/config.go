package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8090"`

	// Chunking defaults, overridable per request.
	MaxTokens      int `env:"MAX_TOKENS" envDefault:"500"`
	OverlapPercent int `env:"OVERLAP_PERCENT" envDefault:"10"`

	// Upload limit in bytes.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Remote OCR backend. The OCR parser is only registered when both
	// values are set.
	OCREndpoint string `env:"AZURE_DI_ENDPOINT"`
	OCRAPIKey   string `env:"AZURE_DI_API_KEY"`

	// Optional bearer token required on API routes. Empty disables auth.
	APIKey string `env:"API_KEY"`
}

// Load reads a .env file if one exists, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects parameters the splitter cannot accept. This runs before
// the server starts so a zero token budget is never discovered mid-request.
func (c Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.OverlapPercent < 0 || c.OverlapPercent > 100 {
		return fmt.Errorf("OVERLAP_PERCENT must be between 0 and 100, got %d", c.OverlapPercent)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// OCREnabled reports whether the remote OCR backend is configured.
func (c Config) OCREnabled() bool {
	return c.OCREndpoint != "" && c.OCRAPIKey != ""
}
