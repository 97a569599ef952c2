package mdpdf

import (
	"time"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Default converter limits.
const (
	defaultTimeout = 30 * time.Second

	// DefaultMaxInputSize bounds the markdown accepted by Convert.
	DefaultMaxInputSize = 10 << 20
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	themeInput   string // name or file path
	themeData    []byte // raw YAML, wins over themeInput
	assetPath    string
	fontDir      string
	maxInputSize int
	highlighting bool
	splitWords   bool
	localImages  bool
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme selects the theme by name ("default", "compact", or a theme in
// the asset path) or by YAML file path. A value containing a path separator
// is read as a file.
func WithTheme(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.themeInput = nameOrPath
	}
}

// WithThemeData uses a YAML theme document. Fields it omits keep their
// default values.
func WithThemeData(data []byte) Option {
	return func(c *Converter) {
		c.cfg.themeData = data
	}
}

// WithAssetPath loads themes from {path}/themes/{name}.yaml, falling back to
// the built-in themes.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader loads themes through a custom backend. It takes
// precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.loader = loader
	}
}

// WithFontDir loads the theme's font families as UTF-8 TrueType fonts from
// dir ({Family}-Regular.ttf, -Bold, -Italic, -BoldItalic). Without it the
// families must be PDF core fonts and text is limited to Windows-1252.
func WithFontDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.fontDir = dir
	}
}

// WithMaxInputSize bounds the markdown size in bytes. Values <= 0 restore
// DefaultMaxInputSize.
func WithMaxInputSize(n int) Option {
	return func(c *Converter) {
		if n <= 0 {
			n = DefaultMaxInputSize
		}
		c.cfg.maxInputSize = n
	}
}

// WithHighlighting toggles syntax colouring of fenced code blocks that name
// a language. Enabled by default.
func WithHighlighting(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlighting = enabled
	}
}

// WithSplitWords toggles wrapping between words. When disabled, lines wrap
// only between emphasis spans. Enabled by default.
func WithSplitWords(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.splitWords = enabled
	}
}

// WithLocalImages toggles loading images from the local filesystem. Disable
// it when converting untrusted markdown, so image paths cannot read files
// from the host. Enabled by default.
func WithLocalImages(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.localImages = enabled
	}
}

// withPreprocessor replaces the markdown cleaner (tests only).
func withPreprocessor(p pipeline.MarkdownPreprocessor) Option {
	return func(c *Converter) {
		c.preprocessor = p
	}
}
