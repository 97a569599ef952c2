package layout

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpdf/internal/document"
	"github.com/alnah/go-mdpdf/internal/highlight"
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/markup"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithSplitWords breaks runs at word boundaries before wrapping, so prose
// wraps between words instead of between emphasis spans.
func WithSplitWords(enabled bool) Option {
	return func(r *Renderer) { r.splitWords = enabled }
}

// WithHighlighting colours fenced code blocks whose language chroma knows,
// using the theme's highlight style.
func WithHighlighting(enabled bool) Option {
	return func(r *Renderer) { r.highlighting = enabled }
}

// WithImageDir resolves relative image paths against dir.
func WithImageDir(dir string) Option {
	return func(r *Renderer) { r.imageDir = dir }
}

// WithLocalImages toggles loading images from the local filesystem. When
// disabled, local images degrade to their alt text like remote ones.
func WithLocalImages(enabled bool) Option {
	return func(r *Renderer) { r.localImages = enabled }
}

// Renderer draws documents onto one canvas. A Renderer is single-use state
// for a single document and must not be shared between goroutines.
type Renderer struct {
	c     Canvas
	theme *theme.Theme
	ctx   *Context

	splitWords   bool
	highlighting bool
	imageDir     string
	localImages  bool
	hl           *highlight.Highlighter

	warnings []document.Warning
}

// NewRenderer creates a Renderer drawing onto c with t. A nil theme means
// theme.Default.
func NewRenderer(c Canvas, t *theme.Theme, opts ...Option) *Renderer {
	if t == nil {
		t = theme.Default()
	}
	r := &Renderer{c: c, theme: t, localImages: true}
	for _, opt := range opts {
		opt(r)
	}
	if r.highlighting && t.Code.Highlight != "" {
		r.hl = highlight.New(t.Code.Highlight)
	}
	r.ctx = NewContext(c, t.Body.LineHeight)
	return r
}

// Context exposes the cursor state.
func (r *Renderer) Context() *Context { return r.ctx }

// Render draws every block of doc in order. It returns the warnings raised
// while drawing; warnings already on doc are not repeated. The first canvas
// failure or dispatch gap stops rendering.
func (r *Renderer) Render(ctx context.Context, doc *document.Document) ([]document.Warning, error) {
	if doc == nil {
		return nil, nil
	}
	r.warnings = nil
	for i, b := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return r.warnings, err
		}
		before := r.c.MissingGlyphs()
		if err := r.block(i, b); err != nil {
			return r.warnings, err
		}
		if err := r.c.Err(); err != nil {
			return r.warnings, fmt.Errorf("%w: block %d (%s, line %d): %v", ErrCanvas, i, b.Kind, b.Line, err)
		}
		if n := r.c.MissingGlyphs() - before; n > 0 {
			r.warn(document.MissingGlyph, b.Line, fmt.Sprintf("%d character(s) not available in the font were replaced", n))
		}
	}
	return r.warnings, nil
}

func (r *Renderer) warn(kind document.WarningKind, line int, msg string) {
	r.warnings = append(r.warnings, document.Warning{Kind: kind, Line: line, Message: msg})
}

func (r *Renderer) block(i int, b document.Block) error {
	switch b.Kind {
	case document.Heading:
		r.heading(b.Level, b.Title)
		if len(b.Lines) == 0 {
			return nil
		}
		if err := r.lines(i, b, b.Line+1); err != nil {
			return err
		}
		r.ctx.Advance(r.theme.ParagraphGap)
	case document.Paragraph:
		if err := r.lines(i, b, b.Line); err != nil {
			return err
		}
		r.ctx.Advance(r.theme.ParagraphGap)
	case document.Code:
		r.code(b)
	case document.Rule:
		r.rule()
	case document.Table:
		r.table(b.Lines)
	default:
		return &DispatchError{Block: i, Kind: b.Kind, Line: b.Line}
	}
	return nil
}

// use selects a text style and makes its line height current.
func (r *Renderer) use(s theme.TextStyle) {
	r.c.SetFont(s.Family, s.FontStyle(), s.Size)
	r.c.SetTextColor(s.Color)
	r.ctx.SetLineHeight(s.LineHeight)
}

// heading draws a full-width title cell. Delimiters in the title are
// resolved and dropped; the title is drawn in the heading style only.
func (r *Renderer) heading(level int, title string) {
	st := r.theme.Heading(level)
	r.use(st)
	r.c.EnsureSpace(st.LineHeight)
	r.c.Cell(r.ctx.Width(), st.LineHeight, inline.Strip(title), CellOptions{NewLine: true})
	if level == 1 {
		_, y := r.ctx.Cursor()
		r.c.SetDrawColor(st.Color)
		r.c.SetLineWidth(r.theme.Rule.Width)
		r.c.Line(r.ctx.Left(), y, r.ctx.Right(), y)
	}
	r.ctx.Advance(r.theme.HeadingGap)
}

func (r *Renderer) rule() {
	rs := r.theme.Rule
	r.ctx.Advance(rs.SpaceBefore)
	r.c.EnsureSpace(rs.SpaceAfter)
	_, y := r.ctx.Cursor()
	r.c.SetLineWidth(rs.Width)
	r.c.SetDrawColor(rs.Color)
	r.c.Line(r.ctx.Left(), y, r.ctx.Right(), y)
	r.ctx.Advance(rs.SpaceAfter)
}

// lines draws the body lines of a generic block. first is the source line
// number of Lines[0].
func (r *Renderer) lines(i int, b document.Block, first int) error {
	for j, raw := range b.Lines {
		r.use(r.theme.Body)
		if strings.TrimSpace(raw) == "" {
			r.ctx.Advance(r.theme.Body.LineHeight / 2)
			continue
		}
		line := strings.ReplaceAll(raw, "***", "**")
		if !r.line(markup.Classify(line), first+j) {
			return &DispatchError{Block: i, Kind: b.Kind, Line: first + j, Text: raw}
		}
	}
	return nil
}
