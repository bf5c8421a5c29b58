// Package config reads the ORCAMENTOS_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the PocketBase defaults do not cover.
type Config struct {
	// PDFRenderURL is the HTML-to-PDF service. When empty, PDFs are drawn
	// locally with maroto.
	PDFRenderURL     string        `env:"ORCAMENTOS_PDF_RENDER_URL"`
	PDFRenderToken   string        `env:"ORCAMENTOS_PDF_RENDER_TOKEN"`
	PDFRenderTimeout time.Duration `env:"ORCAMENTOS_PDF_RENDER_TIMEOUT" envDefault:"30s"`

	CompanyName string `env:"ORCAMENTOS_COMPANY_NAME" envDefault:"Hybriun"`
	LogoURL     string `env:"ORCAMENTOS_LOGO_URL"`

	// SeedFile names a TOML catalog imported on every start: functions are
	// matched by name, costs updated and missing ones created on top of the
	// embedded defaults.
	SeedFile string `env:"ORCAMENTOS_SEED_FILE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PDFRenderTimeout <= 0 {
		cfg.PDFRenderTimeout = 30 * time.Second
	}
	return cfg, nil
}
