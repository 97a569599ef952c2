package mdpdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdpdf/internal/canvas"
	"github.com/alnah/go-mdpdf/internal/document"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Document is the parsed form of one markdown text: an ordered list of
// blocks plus the warnings raised while parsing.
type Document = document.Document

// Block is a top-level structural unit of a Document.
type Block = document.Block

// Canvas is the drawing surface RenderDocument lays a document out on.
// Implement it to render onto something other than the built-in PDF.
type Canvas = layout.Canvas

// CellOptions controls how Canvas.Cell draws a single-line cell.
type CellOptions = layout.CellOptions

// Color is a "#rrggbb" colour as used by themes and Canvas.
type Color = theme.Color

// DispatchError reports a block or line the renderer has no drawing
// routine for. Errors wrapping it also match ErrRender; use errors.As to
// reach the block index and line.
type DispatchError = layout.DispatchError

// ParseDocument splits text into blocks. It never fails: malformed
// constructs degrade to plain text, and an unterminated code fence is kept
// as a code block with a warning on the Document.
func ParseDocument(text string) *Document {
	return document.Parse(text)
}

// PDFCanvas is the built-in Canvas: an in-memory PDF document.
type PDFCanvas = canvas.PDF

// NewPDFCanvas creates a PDF canvas for RenderDocument. A nil page means
// DefaultPageSettings and a nil theme means the default theme. The theme's
// families must be PDF core fonts; use a Converter with WithFontDir for
// TrueType faces.
func NewPDFCanvas(page *PageSettings, t *Theme) (*PDFCanvas, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page == nil {
		page = DefaultPageSettings()
	}
	if t == nil {
		t = theme.Default()
	}
	cfg := canvas.Config{
		Size:        page.canvasSize(),
		Orientation: page.canvasOrientation(),
		Margin:      page.Margin,
		Families:    fontFamilies(t),
	}
	if t.Header.Width > 0 {
		header := t.Header
		cfg.Header = &header
	}
	return openCanvas(cfg)
}

// RenderDocument draws doc onto c using t (nil means the default theme),
// wrapping between words and colouring fenced code, then returns the
// serialized document from c.Bytes along with the warnings raised while
// drawing. Unknown blocks fail with ErrRender; drawing and serialization
// failures fail with ErrPDFGeneration.
func RenderDocument(ctx context.Context, doc *Document, c Canvas, t *Theme) ([]byte, []Warning, error) {
	r := layout.NewRenderer(c, t, layout.WithSplitWords(true), layout.WithHighlighting(true))
	warnings, err := r.Render(ctx, doc)
	switch {
	case err == nil:
	case errors.Is(err, layout.ErrDispatchGap):
		return nil, warnings, fmt.Errorf("%w: %w", ErrRender, err)
	case errors.Is(err, layout.ErrCanvas):
		return nil, warnings, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	default:
		return nil, warnings, err
	}

	data, err := c.Bytes()
	if err != nil {
		return nil, warnings, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return data, warnings, nil
}
