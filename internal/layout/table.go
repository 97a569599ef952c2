package layout

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdpdf/internal/inline"
)

// separatorCell matches the cells of a header separator row: ---, :--, --:.
var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// parseRow splits a pipe row into trimmed cells with inline delimiters removed.
func parseRow(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	cells := strings.Split(s, "|")
	for i, c := range cells {
		cells[i] = inline.Strip(strings.TrimSpace(c))
	}
	return cells
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return len(cells) > 0
}

// table draws rows as a grid of equal-width columns. When the second row is
// a separator the first row is a header: bold on a filled background. A row
// moves to the next page when it does not fit; a row taller than the room
// left is cut between lines, each page getting its own slice of the cells.
func (r *Renderer) table(rows []string) {
	var (
		grid   [][]string
		header bool
		cols   int
	)
	for i, raw := range rows {
		cells := parseRow(raw)
		if isSeparator(cells) {
			header = header || i == 1
			continue
		}
		grid = append(grid, cells)
		cols = max(cols, len(cells))
	}
	if len(grid) == 0 {
		return
	}

	ts := r.theme.Table
	body := r.theme.Body
	lh := body.LineHeight
	colW := r.ctx.Width() / float64(cols)
	textW := max(colW-2*ts.CellPadding, 1)

	r.c.SetDrawColor(ts.Border)
	r.c.SetFillColor(ts.HeaderFill)
	r.c.SetLineWidth(r.theme.Rule.Width)
	for i, row := range grid {
		st := body
		st.Bold = header && i == 0
		r.use(st)

		wrapped := make([][]string, cols)
		lines := 1
		for j := range cols {
			if j < len(row) && row[j] != "" {
				wrapped[j] = r.c.SplitText(row[j], textW)
			}
			lines = max(lines, len(wrapped[j]))
		}
		style := "D"
		if st.Bold {
			style = "FD"
		}
		for first := 0; first < lines; {
			r.c.EnsureSpace(float64(lines-first)*lh + 2*ts.CellPadding)
			n := lines - first
			if room := int((r.c.SpaceLeft() - 2*ts.CellPadding + wrapSlack) / lh); room < n {
				n = max(room, 1)
			}
			r.rowSlice(wrapped, first, n, colW, style)
			first += n
		}
	}
	r.ctx.Advance(r.theme.ParagraphGap)
}

// rowSlice draws lines [first, first+n) of every wrapped cell in one band of
// bordered cells and leaves the cursor at the left edge below it.
func (r *Renderer) rowSlice(wrapped [][]string, first, n int, colW float64, style string) {
	ts := r.theme.Table
	lh := r.theme.Body.LineHeight
	h := float64(n)*lh + 2*ts.CellPadding
	textW := max(colW-2*ts.CellPadding, 1)
	_, y := r.ctx.Cursor()
	for j, cell := range wrapped {
		x := r.ctx.Left() + float64(j)*colW
		r.c.Rect(x, y, colW, h, style)
		for k := first; k < min(first+n, len(cell)); k++ {
			r.ctx.MoveTo(x+ts.CellPadding, y+ts.CellPadding+float64(k-first)*lh)
			r.c.Cell(textW, lh, cell[k], CellOptions{})
		}
	}
	r.ctx.MoveTo(r.ctx.Left(), y+h)
}
