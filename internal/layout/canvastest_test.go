package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdpdf/internal/theme"
)

// op is one recorded drawing call.
type op struct {
	Name  string // cell, multicell, line, rect, image, ln, page
	X, Y  float64
	W, H  float64
	Text  string
	Style string // font style for text ops, rect style for rects
	Color theme.Color
	Fill  bool
	Link  string
}

// recorder is a Canvas that tracks the cursor the way fpdf does and records
// every drawing call. Every rune measures charW millimetres regardless of
// font. Pages start at y=10; with bottom unset there is a single endless
// page, otherwise EnsureSpace records a "page" op and returns to the top.
type recorder struct {
	pageW, left, right float64
	charW              float64
	bottom             float64

	x, y  float64
	style string
	color theme.Color

	ops      []op
	missing  int
	err      error
	imageErr error
}

func newRecorder() *recorder {
	return &recorder{pageW: 210, left: 10, right: 10, charW: 2, x: 10, y: 10}
}

func (r *recorder) PageWidth() float64 { return r.pageW }
func (r *recorder) Margins() (float64, float64) { return r.left, r.right }
func (r *recorder) XY() (float64, float64) { return r.x, r.y }
func (r *recorder) SetXY(x, y float64) { r.x, r.y = x, y }

func (r *recorder) EnsureSpace(h float64) {
	if h > r.SpaceLeft() && r.y > 10 {
		r.ops = append(r.ops, op{Name: "page"})
		r.x, r.y = r.left, 10
	}
}

func (r *recorder) SpaceLeft() float64 {
	if r.bottom == 0 {
		return 1e6
	}
	return r.bottom - r.y
}

func (r *recorder) SetTextColor(c theme.Color) { r.color = c }
func (r *recorder) SetFillColor(theme.Color) {}
func (r *recorder) SetDrawColor(theme.Color) {}
func (r *recorder) SetLineWidth(float64) {}
func (r *recorder) MissingGlyphs() int { return r.missing }
func (r *recorder) Err() error { return r.err }

func (r *recorder) Bytes() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	var b strings.Builder
	for _, o := range r.ops {
		if o.Text != "" {
			b.WriteString(o.Text)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}
func (r *recorder) SetFont(_, style string, _ float64) { r.style = style }

func (r *recorder) NewLine(h float64) {
	r.ops = append(r.ops, op{Name: "ln", X: r.x, Y: r.y, H: h})
	r.x = r.left
	r.y += h
}

func (r *recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.charW
}

func (r *recorder) SplitText(s string, w float64) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur != "" && r.StringWidth(next) > w {
			lines = append(lines, cur)
			next = word
		}
		cur = next
	}
	return append(lines, cur)
}

func (r *recorder) count(s string) {
	for _, c := range s {
		if c > 0xff {
			r.missing++
		}
	}
}

func (r *recorder) Cell(w, h float64, text string, o CellOptions) {
	r.count(text)
	r.ops = append(r.ops, op{
		Name: "cell", X: r.x, Y: r.y, W: w, H: h, Text: text,
		Style: r.style, Color: r.color, Fill: o.Fill, Link: o.Link,
	})
	if o.NewLine {
		r.x = r.left
		r.y += h
		return
	}
	r.x += w
}

func (r *recorder) MultiCell(w, h float64, text string, fill bool) {
	r.count(text)
	r.ops = append(r.ops, op{
		Name: "multicell", X: r.x, Y: r.y, W: w, H: h, Text: text,
		Style: r.style, Color: r.color, Fill: fill,
	})
	n := 0
	for _, para := range strings.Split(text, "\n") {
		n += len(r.SplitText(para, w))
	}
	r.x = r.left
	r.y += float64(n) * h
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, op{Name: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *recorder) Rect(x, y, w, h float64, style string) {
	r.ops = append(r.ops, op{Name: "rect", X: x, Y: y, W: w, H: h, Style: style})
}

func (r *recorder) Image(path string, maxWidth float64) error {
	if r.imageErr != nil {
		return r.imageErr
	}
	r.ops = append(r.ops, op{Name: "image", X: r.x, Y: r.y, W: maxWidth, H: 20, Text: path})
	r.x = r.left
	r.y += 20
	return nil
}

// named returns the recorded ops with the given name.
func (r *recorder) named(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out
}

var _ Canvas = (*recorder)(nil)
