package canvas

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// placeholder replaces characters the core fonts cannot draw.
const placeholder = '?'

// footerOffset is the distance of the footer cell from the page bottom.
const footerOffset = 15.0

// Footer describes the text drawn at the bottom of every page.
type Footer struct {
	Style       theme.TextStyle
	Align       string // "L", "C" or "R"
	Text        string
	PageNumbers bool
}

// Config describes the document a PDF draws.
type Config struct {
	Size        string  // "A4", "Letter" or "Legal"; empty means A4
	Orientation string  // "P" or "L"; empty means portrait
	Margin      float64 // millimetres on every side; 0 means 10

	// FontDir holds UTF-8 TrueType faces named {Family}-{Regular,Bold,Italic,BoldItalic}.ttf.
	// Empty means core fonts only.
	FontDir  string
	Families []string

	Title        string
	Author       string
	CreationDate time.Time

	Header *theme.RuleStyle
	Footer *Footer
}

// PDF is a layout.Canvas drawing into an in-memory fpdf document.
// A PDF serves one document and is not safe for concurrent use.
type PDF struct {
	pdf     *fpdf.Fpdf
	utf8    map[string]bool
	current bool // current font is UTF-8
	missing int
	top     float64 // cursor y at the start of a page, below the header
}

// New creates a PDF with its first page started.
func New(cfg Config) (*PDF, error) {
	size := cfg.Size
	if size == "" {
		size = "A4"
	}
	switch strings.ToLower(size) {
	case "a4", "letter", "legal":
	default:
		return nil, fmt.Errorf("%w: page size %q", ErrInvalidConfig, cfg.Size)
	}
	orientation := cfg.Orientation
	if orientation == "" {
		orientation = "P"
	}
	if orientation != "P" && orientation != "L" {
		return nil, fmt.Errorf("%w: orientation %q", ErrInvalidConfig, cfg.Orientation)
	}
	margin := cfg.Margin
	if margin == 0 {
		margin = 10
	}

	p := &PDF{
		pdf:  fpdf.New(orientation, "mm", size, ""),
		utf8: map[string]bool{},
	}
	if cfg.FontDir != "" {
		if err := p.loadFonts(cfg.FontDir, cfg.Families); err != nil {
			return nil, err
		}
	} else if err := checkCoreFonts(cfg.Families); err != nil {
		return nil, err
	}

	p.pdf.SetMargins(margin, margin, margin)
	p.pdf.SetCellMargin(0)
	p.pdf.SetAutoPageBreak(true, max(margin, footerOffset)+5)
	p.pdf.SetCreator("go-mdpdf", false)
	if cfg.Title != "" {
		p.pdf.SetTitle(cfg.Title, true)
	}
	if cfg.Author != "" {
		p.pdf.SetAuthor(cfg.Author, true)
	}
	if !cfg.CreationDate.IsZero() {
		p.pdf.SetCreationDate(cfg.CreationDate)
		p.pdf.SetModificationDate(cfg.CreationDate)
	}
	if cfg.Header != nil {
		p.pdf.SetHeaderFunc(p.header(*cfg.Header))
	}
	if cfg.Footer != nil {
		p.pdf.SetFooterFunc(p.footer(*cfg.Footer))
	}

	p.pdf.AddPage()
	if err := p.pdf.Error(); err != nil {
		return nil, err
	}
	p.top = p.pdf.GetY()
	return p, nil
}

func (p *PDF) header(rs theme.RuleStyle) func() {
	return func() {
		left, _, right, _ := p.pdf.GetMargins()
		w, _ := p.pdf.GetPageSize()
		y := p.pdf.GetY()
		p.SetDrawColor(rs.Color)
		p.pdf.SetLineWidth(rs.Width)
		p.pdf.Line(left, y, w-right, y)
		p.pdf.Ln(rs.SpaceAfter)
	}
}

func (p *PDF) footer(f Footer) func() {
	return func() {
		text := f.Text
		if f.PageNumbers {
			page := fmt.Sprintf("Page %d", p.pdf.PageNo())
			if text != "" {
				text += "  ·  " + page
			} else {
				text = page
			}
		}
		if text == "" {
			return
		}
		wasUTF8 := p.current
		p.pdf.SetY(-footerOffset)
		p.SetFont(f.Style.Family, f.Style.FontStyle(), f.Style.Size)
		p.SetTextColor(f.Style.Color)
		p.pdf.CellFormat(0, f.Style.LineHeight, p.encode(text, false), "", 0, f.Align, false, 0, "")
		p.current = wasUTF8
	}
}

// encode converts s for the current font. Core fonts take Windows-1252
// bytes; unrepresentable runes become the placeholder and, when count is
// set, are added to the missing glyph count.
func (p *PDF) encode(s string, count bool) string {
	if p.current {
		return s
	}
	b := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = placeholder
			if count {
				p.missing++
			}
		}
		b = append(b, c)
	}
	return string(b)
}

func decode(s []byte) string {
	var b strings.Builder
	for _, c := range s {
		b.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return b.String()
}

// PageWidth implements layout.Canvas.
func (p *PDF) PageWidth() float64 {
	w, _ := p.pdf.GetPageSize()
	return w
}

// Margins implements layout.Canvas.
func (p *PDF) Margins() (left, right float64) {
	left, _, right, _ = p.pdf.GetMargins()
	return left, right
}

func (p *PDF) XY() (x, y float64) { return p.pdf.GetXY() }

func (p *PDF) SetXY(x, y float64) { p.pdf.SetXY(x, y) }

func (p *PDF) NewLine(h float64) { p.pdf.Ln(h) }

// EnsureSpace starts a new page when h does not fit above the bottom margin
// and the cursor is below the top of the page.
func (p *PDF) EnsureSpace(h float64) {
	if h > p.SpaceLeft() && p.pdf.GetY() > p.top+0.01 {
		p.pdf.AddPage()
	}
}

// SpaceLeft returns the room between the cursor and the bottom margin.
func (p *PDF) SpaceLeft() float64 {
	_, pageH := p.pdf.GetPageSize()
	_, bottom := p.pdf.GetAutoPageBreak()
	return pageH - bottom - p.pdf.GetY()
}

func (p *PDF) SetFont(family, style string, size float64) {
	p.current = p.utf8[strings.ToLower(family)]
	p.pdf.SetFont(family, style, size)
}

func (p *PDF) SetTextColor(c theme.Color) { p.pdf.SetTextColor(c.RGB()) }

func (p *PDF) SetFillColor(c theme.Color) { p.pdf.SetFillColor(c.RGB()) }

func (p *PDF) SetDrawColor(c theme.Color) { p.pdf.SetDrawColor(c.RGB()) }

func (p *PDF) SetLineWidth(w float64) { p.pdf.SetLineWidth(w) }

func (p *PDF) StringWidth(s string) float64 {
	return p.pdf.GetStringWidth(p.encode(s, false))
}

// SplitText wraps s to width w in the current font.
func (p *PDF) SplitText(s string, w float64) []string {
	if p.current {
		return p.pdf.SplitText(s, w)
	}
	lines := p.pdf.SplitLines([]byte(p.encode(s, false)), w)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = decode(l)
	}
	return out
}

func (p *PDF) Cell(w, h float64, text string, o layout.CellOptions) {
	border := ""
	if o.Border {
		border = "1"
	}
	ln := 0
	if o.NewLine {
		ln = 1
	}
	p.pdf.CellFormat(w, h, p.encode(text, true), border, ln, o.Align, o.Fill, 0, o.Link)
}

func (p *PDF) MultiCell(w, h float64, text string, fill bool) {
	p.pdf.MultiCell(w, h, p.encode(text, true), "", "L", fill)
}

func (p *PDF) Line(x1, y1, x2, y2 float64) { p.pdf.Line(x1, y1, x2, y2) }

func (p *PDF) Rect(x, y, w, h float64, style string) { p.pdf.Rect(x, y, w, h, style) }

// Image places a JPEG, PNG or GIF file at the cursor, no wider than
// maxWidth. Failures wrap ErrImage and leave the document usable.
func (p *PDF) Image(path string, maxWidth float64) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "jpg", "jpeg", "png", "gif":
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrImage, ext)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %v", ErrImage, err)
	}

	opts := fpdf.ImageOptions{ReadDpi: true}
	info := p.pdf.RegisterImageOptions(path, opts)
	if err := p.pdf.Error(); err != nil || info == nil {
		p.pdf.ClearError()
		return fmt.Errorf("%w: %s: %v", ErrImage, path, err)
	}

	w := min(info.Width(), maxWidth)
	p.pdf.ImageOptions(path, -1, 0, w, 0, true, opts, 0, "")
	left, _ := p.Margins()
	p.pdf.SetX(left)
	return p.pdf.Error()
}

func (p *PDF) MissingGlyphs() int { return p.missing }

func (p *PDF) Err() error { return p.pdf.Error() }

// Pages returns the number of pages drawn so far.
func (p *PDF) Pages() int { return p.pdf.PageCount() }

// WriteTo closes the document and writes it to w.
func (p *PDF) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Bytes closes the document and returns it.
func (p *PDF) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ layout.Canvas = (*PDF)(nil)
