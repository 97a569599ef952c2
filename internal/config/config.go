// Package config loads the YAML configuration file of the mdpdf command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched for config names.
const appDir = "go-mdpdf"

// Field length limits for multi-tenant safety.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxNameLength        = 100  // Theme name, author name
	MaxTitleLength       = 200  // Document title
	MaxTextLength        = 500  // Footer free-form text
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxAddrLength        = 256  // host:port
)

// Margin bounds in millimetres, mirrored from the library.
const (
	minMargin = 5.0
	maxMargin = 50.0
)

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Page     PageConfig     `yaml:"page"`
	Footer   FooterConfig   `yaml:"footer"`
	Theme    ThemeConfig    `yaml:"theme"`
	Fonts    FontsConfig    `yaml:"fonts"`
	Limits   LimitsConfig   `yaml:"limits"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines PDF metadata.
type DocumentConfig struct {
	Title  string `yaml:"title"` // Empty = first H1
	Author string `yaml:"author"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // millimetres (default: 10)
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "center")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Text           string `yaml:"text"` // Optional free-form text
}

// ThemeConfig selects the theme.
type ThemeConfig struct {
	Name      string `yaml:"name"`      // Built-in or custom theme name, or YAML file path
	AssetPath string `yaml:"assetPath"` // Directory holding themes/{name}.yaml (empty = built-in only)
}

// FontsConfig defines TrueType font loading.
type FontsConfig struct {
	Dir string `yaml:"dir"` // Directory with {Family}-Regular.ttf etc. (empty = core fonts)
}

// LimitsConfig bounds conversion inputs.
type LimitsConfig struct {
	MaxInputBytes int    `yaml:"maxInputBytes"` // 0 = library default
	Timeout       string `yaml:"timeout"`       // Per-document duration, e.g. "30s" (empty = library default)
}

// RenderConfig toggles layout features.
type RenderConfig struct {
	Highlight  bool `yaml:"highlight"`  // Colour fenced code with a language tag
	SplitWords bool `yaml:"splitWords"` // Wrap between words
}

// ServerConfig defines the HTTP surface of "mdpdf serve".
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"`
}

// Validate checks field lengths and ranges to prevent abuse in multi-tenant
// scenarios. Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"theme.name", c.Theme.Name, MaxPathLength},
		{"theme.assetPath", c.Theme.AssetPath, MaxPathLength},
		{"fonts.dir", c.Fonts.Dir, MaxPathLength},
		{"limits.timeout", c.Limits.Timeout, MaxNameLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
			// valid
		default:
			return fmt.Errorf("%w: footer.position %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}
	if c.Page.Margin != 0 && (c.Page.Margin < minMargin || c.Page.Margin > maxMargin) {
		return fmt.Errorf("%w: page.margin %.1f (must be between %.0f and %.0f mm)", ErrInvalidValue, c.Page.Margin, minMargin, maxMargin)
	}
	if c.Limits.MaxInputBytes < 0 {
		return fmt.Errorf("%w: limits.maxInputBytes %d (must be >= 0)", ErrInvalidValue, c.Limits.MaxInputBytes)
	}
	if c.Limits.Timeout != "" {
		if d, err := time.ParseDuration(c.Limits.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("%w: limits.timeout %q (must be a positive duration)", ErrInvalidValue, c.Limits.Timeout)
		}
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("%w: server.maxUploadBytes %d (must be >= 0)", ErrInvalidValue, c.Server.MaxUploadBytes)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file: A4
// portrait, centred page numbers, default theme, highlighting and word
// wrapping on.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{
			Size:        "a4",
			Orientation: "portrait",
			Margin:      10,
		},
		Footer: FooterConfig{
			Enabled:        true,
			Position:       "center",
			ShowPageNumber: true,
		},
		Theme:  ThemeConfig{Name: "default"},
		Render: RenderConfig{Highlight: true, SplitWords: true},
		Server: ServerConfig{Addr: "127.0.0.1:8080", MaxUploadBytes: 16 << 20},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the files tried for a config name, in order:
// the current directory, then the user config directory
// ($XDG_CONFIG_HOME/go-mdpdf on Linux), each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
