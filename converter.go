package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdpdf/internal/canvas"
	"github.com/alnah/go-mdpdf/internal/document"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Cleaner)(nil)
	_ layout.Canvas                 = (*canvas.PDF)(nil)
)

// Converter orchestrates the markdown-to-PDF conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
//
// A Converter may be shared between goroutines: every Convert call builds
// its own document and canvas.
type Converter struct {
	cfg          converterConfig
	loader       AssetLoader
	theme        *theme.Theme
	families     []string
	preprocessor pipeline.MarkdownPreprocessor
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTheme, WithFontDir, WithTimeout).
// Returns error if the theme cannot be loaded or its fonts are unavailable.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			maxInputSize: DefaultMaxInputSize,
			highlighting: true,
			splitWords:   true,
			localImages:  true,
		},
		preprocessor: &pipeline.Cleaner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	if err := c.resolveTheme(); err != nil {
		return nil, err
	}
	c.families = fontFamilies(c.theme)

	// Fail on missing fonts now rather than on the first document.
	if _, err := c.newCanvas(DefaultPageSettings(), nil, "", ""); err != nil {
		return nil, err
	}

	return c, nil
}

// Theme returns the theme documents are drawn with.
func (c *Converter) Theme() *Theme {
	return c.theme
}

// Convert runs the full pipeline and returns the PDF with the warnings
// raised along the way. The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	// Clean and parse
	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	doc := document.Parse(md)
	pipeline.ExpandTabs(doc, pipeline.DefaultTabWidth)

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	title := input.Title
	if title == "" {
		title = FirstHeading(doc)
	}

	pdf, err := c.newCanvas(page, input.Footer, title, input.Author)
	if err != nil {
		return nil, err
	}

	warnings, err := c.render(ctx, doc, pdf, input.SourceDir)
	if err != nil {
		return nil, err
	}

	data, err := pdf.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return &ConvertResult{
		PDF:      data,
		Pages:    pdf.Pages(),
		Title:    title,
		Warnings: append(doc.Warnings, warnings...),
	}, nil
}

// Close implements io.Closer. A Converter holds no external resources.
func (c *Converter) Close() error {
	return nil
}

// render draws doc onto pdf and maps layout failures to public errors.
func (c *Converter) render(ctx context.Context, doc *document.Document, pdf *canvas.PDF, sourceDir string) ([]Warning, error) {
	r := layout.NewRenderer(pdf, c.theme,
		layout.WithSplitWords(c.cfg.splitWords),
		layout.WithHighlighting(c.cfg.highlighting),
		layout.WithImageDir(sourceDir),
		layout.WithLocalImages(c.cfg.localImages),
	)
	warnings, err := r.Render(ctx, doc)
	switch {
	case err == nil:
		return warnings, nil
	case errors.Is(err, layout.ErrDispatchGap):
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	case errors.Is(err, layout.ErrCanvas):
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	default:
		return nil, fmt.Errorf("rendering: %w", err)
	}
}

// newCanvas creates the PDF a single document is drawn on.
func (c *Converter) newCanvas(page *PageSettings, footer *Footer, title, author string) (*canvas.PDF, error) {
	cfg := canvas.Config{
		Size:        page.canvasSize(),
		Orientation: page.canvasOrientation(),
		Margin:      page.Margin,
		FontDir:     c.cfg.fontDir,
		Families:    c.families,
		Title:       title,
		Author:      author,
	}
	if c.theme.Header.Width > 0 {
		header := c.theme.Header
		cfg.Header = &header
	}
	if footer != nil {
		cfg.Footer = &canvas.Footer{
			Style:       c.theme.Footer,
			Align:       footer.align(),
			Text:        footer.Text,
			PageNumbers: footer.ShowPageNumber,
		}
	}

	return openCanvas(cfg)
}

// openCanvas creates a PDF canvas, mapping failures to public sentinels.
func openCanvas(cfg canvas.Config) (*canvas.PDF, error) {
	pdf, err := canvas.New(cfg)
	switch {
	case err == nil:
		return pdf, nil
	case errors.Is(err, canvas.ErrFontNotFound):
		return nil, wrapError(ErrFontNotFound, err)
	default:
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
}

// resolveTheme resolves the theme input (data, path, or name) to a Theme.
// Called during NewConverter after options are applied and the loader is configured.
func (c *Converter) resolveTheme() error {
	if c.cfg.themeData != nil {
		t, err := ParseTheme(c.cfg.themeData)
		if err != nil {
			return err
		}
		c.theme = t
		return nil
	}

	input := c.cfg.themeInput
	if input == "" {
		input = DefaultTheme
	}

	var data []byte
	var err error
	if fileutil.IsFilePath(input) {
		data, err = os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading theme file %q: %w", input, err)
		}
	} else {
		data, err = c.loader.LoadTheme(input)
		if err != nil {
			return fmt.Errorf("loading theme %q: %w", input, err)
		}
	}

	t, err := ParseTheme(data)
	if err != nil {
		return fmt.Errorf("theme %q: %w", input, err)
	}
	c.theme = t
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if len(input.Markdown) > c.cfg.maxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(input.Markdown), c.cfg.maxInputSize)
	}
	return input.Validate()
}

// fontFamilies lists the distinct font families t draws with, in first-use order.
func fontFamilies(t *theme.Theme) []string {
	seen := map[string]bool{}
	var families []string
	for _, s := range []theme.TextStyle{t.Body, t.H1, t.H2, t.H3, t.Code.TextStyle, t.Quote, t.Link, t.Footer} {
		key := strings.ToLower(s.Family)
		if seen[key] {
			continue
		}
		seen[key] = true
		families = append(families, s.Family)
	}
	return families
}

// FirstHeading returns the delimiter-free title of the first level-1
// heading in doc, or "" when there is none.
func FirstHeading(doc *Document) string {
	if doc == nil {
		return ""
	}
	for _, b := range doc.Blocks {
		if b.Kind == document.Heading && b.Level == 1 {
			return inline.Strip(b.Title)
		}
	}
	return ""
}
