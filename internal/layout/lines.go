package layout

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alnah/go-mdpdf/internal/document"
	"github.com/alnah/go-mdpdf/internal/inline"
	"github.com/alnah/go-mdpdf/internal/markup"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// quoteIndent is the gap between a quote's bar and its text.
const quoteIndent = 4.0

// line draws one classified line and reports whether a routine exists for it.
func (r *Renderer) line(l markup.Line, n int) bool {
	body := r.theme.Body
	switch l := l.(type) {
	case markup.Bullet:
		r.listItem(l.Indent, r.theme.List.Bullet, r.theme.List.BulletWidth, l.Text)
	case markup.Numbered:
		marker := l.Number + ". "
		r.listItem(l.Indent, marker, r.c.StringWidth(marker), l.Text)
	case markup.TableRow:
		r.table([]string{l.Raw})
	case markup.PlainHeading:
		r.flat(r.theme.Heading(l.Level), l.Text)
	case markup.Link:
		r.link(l.Text, l.URL)
	case markup.Image:
		r.image(l.Path, l.Alt, n)
	case markup.Bold:
		body.Bold = true
		r.flat(body, l.Text)
	case markup.Italic:
		body.Italic = true
		r.flat(body, l.Text)
	case markup.Strikethrough:
		r.strike(l.Text)
	case markup.InlineCode:
		r.inlineCode(l.Text)
	case markup.Quote:
		r.quote(l.Text)
	case markup.Rule:
		r.rule()
	case markup.Plain:
		r.runs(inline.Tokenize(l.Text))
	default:
		return false
	}
	return true
}

// listItem draws a marker at the item's indent and wraps the styled body
// between words in the column right of it.
func (r *Renderer) listItem(level int, marker string, markerWidth float64, text string) {
	ls := r.theme.List
	lh := r.ctx.LineHeight()
	indent := ls.BaseIndent + float64(level)*ls.IndentStep
	r.c.EnsureSpace(lh)
	r.ctx.Indent(indent)
	r.c.Cell(markerWidth, lh, marker, CellOptions{})
	r.runsAt(inline.Tokenize(text), indent+markerWidth, true)
}

// flat draws text in a single style, wrapped to the content width.
func (r *Renderer) flat(st theme.TextStyle, text string) {
	r.use(st)
	r.c.MultiCell(r.ctx.Width(), st.LineHeight, text, false)
}

// pieces draws text one wrapped line at a time, calling draw for each piece
// with the cursor at the start of the line. indent shifts every piece.
func (r *Renderer) pieces(text string, indent float64, draw func(piece string, w float64)) {
	lh := r.ctx.LineHeight()
	for _, piece := range r.c.SplitText(text, r.ctx.Width()-indent) {
		r.c.EnsureSpace(lh)
		r.ctx.Indent(indent)
		draw(piece, r.c.StringWidth(piece))
		r.ctx.Break()
	}
}

func (r *Renderer) link(text, url string) {
	r.use(r.theme.Link)
	lh := r.ctx.LineHeight()
	r.pieces(text, 0, func(piece string, w float64) {
		r.c.Cell(w, lh, piece, CellOptions{Link: url})
	})
}

func (r *Renderer) strike(text string) {
	lh := r.ctx.LineHeight()
	r.c.SetDrawColor(r.theme.Body.Color)
	r.c.SetLineWidth(r.theme.Rule.Width)
	r.pieces(text, 0, func(piece string, w float64) {
		x, y := r.ctx.Cursor()
		r.c.Cell(w, lh, piece, CellOptions{})
		r.c.Line(x, y+lh/2, x+w, y+lh/2)
	})
}

func (r *Renderer) inlineCode(text string) {
	cs := r.theme.Code
	r.use(cs.TextStyle)
	r.c.SetFillColor(cs.Fill)
	lh := r.ctx.LineHeight()
	r.pieces(text, 0, func(piece string, w float64) {
		r.c.Cell(w, lh, piece, CellOptions{Fill: true})
	})
}

func (r *Renderer) quote(text string) {
	qs := r.theme.Quote
	r.use(qs)
	lh := r.ctx.LineHeight()
	r.c.SetDrawColor(r.theme.Rule.Color)
	r.c.SetLineWidth(r.theme.Rule.Width * 2)
	r.pieces(text, quoteIndent, func(piece string, w float64) {
		_, y := r.ctx.Cursor()
		bar := r.ctx.Left() + quoteIndent/4
		r.c.Line(bar, y, bar, y+lh)
		r.c.Cell(w, lh, piece, CellOptions{})
	})
}

// image draws a local image, or its alt text with a warning when the image
// cannot be placed. Remote images are never fetched.
func (r *Renderer) image(path, alt string, n int) {
	if strings.Contains(path, "://") {
		r.warn(document.MissingImage, n, fmt.Sprintf("remote image %q not fetched", path))
		r.imageAlt(alt, path)
		return
	}
	if !r.localImages {
		r.warn(document.MissingImage, n, fmt.Sprintf("local image %q not loaded", path))
		r.imageAlt(alt, path)
		return
	}
	if !filepath.IsAbs(path) && r.imageDir != "" {
		path = filepath.Join(r.imageDir, path)
	}
	r.c.EnsureSpace(r.ctx.LineHeight())
	if err := r.c.Image(path, r.ctx.Width()); err != nil {
		r.warn(document.MissingImage, n, fmt.Sprintf("image %q: %v", path, err))
		r.imageAlt(alt, path)
		return
	}
	r.ctx.Advance(r.theme.ParagraphGap)
}

func (r *Renderer) imageAlt(alt, path string) {
	if alt == "" {
		alt = filepath.Base(path)
	}
	st := r.theme.Body
	st.Italic = true
	r.flat(st, "[image: "+alt+"]")
}

// runs draws styled runs left to right, moving a run to the next line when
// its visible text would cross the right edge. A run is never split; an
// over-wide run at the start of a line is drawn where it stands.
func (r *Renderer) runs(runs []inline.Run) {
	r.c.EnsureSpace(r.theme.Body.LineHeight)
	r.runsAt(runs, 0, r.splitWords)
}

// runsAt draws runs from the cursor like runs, starting every wrapped line
// indent past the left edge. With split set, runs are cut between words.
func (r *Renderer) runsAt(runs []inline.Run, indent float64, split bool) {
	if split {
		runs = splitWords(runs)
	}
	body := r.theme.Body
	lh := body.LineHeight
	for _, run := range runs {
		r.c.SetFont(body.Family, fontStyle(run.Style), body.Size)
		text := run.Text
		w := r.c.StringWidth(text)
		// trailing whitespace may hang past the right edge
		visible := r.c.StringWidth(strings.TrimRightFunc(text, unicode.IsSpace))
		if !r.ctx.Fits(visible) && !r.ctx.AtIndent(indent) {
			r.ctx.Break()
			r.ctx.Indent(indent)
			if split {
				text = strings.TrimLeftFunc(text, unicode.IsSpace)
				if text == "" {
					continue
				}
				w = r.c.StringWidth(text)
			}
		}
		r.c.Cell(w, lh, text, CellOptions{})
	}
	r.ctx.Break()
}

func fontStyle(s inline.Style) string {
	switch s {
	case inline.Bold:
		return "B"
	case inline.Italic:
		return "I"
	case inline.BoldItalic:
		return "BI"
	}
	return ""
}

// splitWords cuts every run after each whitespace sequence, keeping styles.
// "to be" becomes "to " and "be".
func splitWords(runs []inline.Run) []inline.Run {
	out := make([]inline.Run, 0, len(runs))
	for _, run := range runs {
		start := 0
		inSpace := false
		for i, c := range run.Text {
			space := unicode.IsSpace(c)
			if inSpace && !space {
				out = append(out, inline.Run{Style: run.Style, Text: run.Text[start:i]})
				start = i
			}
			inSpace = space
		}
		if start < len(run.Text) {
			out = append(out, inline.Run{Style: run.Style, Text: run.Text[start:]})
		}
	}
	return out
}
