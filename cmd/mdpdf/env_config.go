package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MDPDF_CONFIG: config file name or path
	Theme      string        // MDPDF_THEME: theme name or path
	Timeout    time.Duration // MDPDF_TIMEOUT: per-document timeout

	// Tier 2 - I/O and fonts
	InputDir  string // MDPDF_INPUT_DIR: default input directory
	OutputDir string // MDPDF_OUTPUT_DIR: default output directory
	FontDir   string // MDPDF_FONT_DIR: TrueType font directory
	AssetPath string // MDPDF_ASSET_PATH: custom theme directory

	// Tier 3 - Extended
	PageSize string // MDPDF_PAGE_SIZE: a4, letter, legal
	Author   string // MDPDF_AUTHOR: PDF author metadata
	Workers  int    // MDPDF_WORKERS: parallel workers
	Addr     string // MDPDF_ADDR: serve listen address
}

// knownEnvVars lists valid MDPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MDPDF_CONFIG":  true,
	"MDPDF_THEME":   true,
	"MDPDF_TIMEOUT": true,
	// Tier 2 - I/O and fonts
	"MDPDF_INPUT_DIR":  true,
	"MDPDF_OUTPUT_DIR": true,
	"MDPDF_FONT_DIR":   true,
	"MDPDF_ASSET_PATH": true,
	// Tier 3 - Extended
	"MDPDF_PAGE_SIZE": true,
	"MDPDF_AUTHOR":    true,
	"MDPDF_WORKERS":   true,
	"MDPDF_ADDR":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MDPDF_* values.
// Unparsable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MDPDF_CONFIG"),
		Theme:      os.Getenv("MDPDF_THEME"),
		// Tier 2
		InputDir:  os.Getenv("MDPDF_INPUT_DIR"),
		OutputDir: os.Getenv("MDPDF_OUTPUT_DIR"),
		FontDir:   os.Getenv("MDPDF_FONT_DIR"),
		AssetPath: os.Getenv("MDPDF_ASSET_PATH"),
		// Tier 3
		PageSize: os.Getenv("MDPDF_PAGE_SIZE"),
		Author:   os.Getenv("MDPDF_AUTHOR"),
		Addr:     os.Getenv("MDPDF_ADDR"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MDPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("MDPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPDF_* variables.
// Helps catch typos like MDPDF_FONTDIR instead of MDPDF_FONT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file, giving the precedence
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Theme (timeout handled separately in resolveTimeoutWithEnv)
	if env.Theme != "" {
		cfg.Theme.Name = env.Theme
	}

	// Tier 2 - I/O and fonts
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.FontDir != "" {
		cfg.Fonts.Dir = env.FontDir
	}
	if env.AssetPath != "" {
		cfg.Theme.AssetPath = env.AssetPath
	}

	// Tier 3 - Page and metadata
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Author != "" {
		cfg.Document.Author = env.Author
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}
