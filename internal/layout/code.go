package layout

import (
	"strings"

	"github.com/alnah/go-mdpdf/internal/document"
	"github.com/alnah/go-mdpdf/internal/highlight"
)

// code draws a fenced block on a filled background. Blocks in a language
// chroma knows are coloured token by token when highlighting is on and every
// line fits the content width; everything else is one filled multi-line cell.
func (r *Renderer) code(b document.Block) {
	cs := r.theme.Code
	r.use(cs.TextStyle)
	r.c.SetFillColor(cs.Fill)

	if tokens, ok := r.highlighted(b); ok {
		r.drawTokens(tokens)
	} else {
		r.c.MultiCell(r.ctx.Width(), cs.LineHeight, strings.Join(b.Lines, "\n"), true)
	}
	r.ctx.Advance(cs.SpaceAfter)
	r.use(r.theme.Body)
}

func (r *Renderer) highlighted(b document.Block) ([][]highlight.Token, bool) {
	if r.hl == nil || len(b.Lines) == 0 || !highlight.Supports(b.Lang) {
		return nil, false
	}
	for _, l := range b.Lines {
		if r.c.StringWidth(l) > r.ctx.Width() {
			return nil, false
		}
	}
	tokens, err := r.hl.Lines(b.Lang, b.Lines)
	if err != nil {
		return nil, false
	}
	return tokens, true
}

// drawTokens paints each line's background first, then the coloured tokens
// on top of it.
func (r *Renderer) drawTokens(lines [][]highlight.Token) {
	cs := r.theme.Code
	lh := cs.LineHeight
	for _, line := range lines {
		r.c.EnsureSpace(lh)
		_, y := r.ctx.Cursor()
		r.c.Cell(r.ctx.Width(), lh, "", CellOptions{Fill: true})
		r.ctx.MoveTo(r.ctx.Left(), y)
		for _, tok := range line {
			st := cs.TextStyle
			st.Bold, st.Italic = tok.Bold, tok.Italic
			if tok.Color != "" {
				st.Color = tok.Color
			}
			r.c.SetFont(st.Family, st.FontStyle(), st.Size)
			r.c.SetTextColor(st.Color)
			r.c.Cell(r.c.StringWidth(tok.Text), lh, tok.Text, CellOptions{})
		}
		r.ctx.Break()
	}
}
