package layout

import "github.com/alnah/go-mdpdf/internal/theme"

// Canvas is the drawing surface the renderer needs. Units are millimetres,
// font sizes are points. Cursor-moving methods behave like fpdf: Cell
// advances x by its width, NewLine returns x to the left margin, and drawing
// past the bottom margin starts a new page.
type Canvas interface {
	PageWidth() float64
	Margins() (left, right float64)
	XY() (x, y float64)
	SetXY(x, y float64)
	// NewLine moves the cursor to the left margin, h below the current line.
	NewLine(h float64)
	// EnsureSpace starts a new page when h does not fit below the cursor.
	// A cursor already at the top of a page stays there.
	EnsureSpace(h float64)
	// SpaceLeft returns the room between the cursor and the bottom margin.
	SpaceLeft() float64

	SetFont(family, style string, size float64)
	SetTextColor(c theme.Color)
	SetFillColor(c theme.Color)
	SetDrawColor(c theme.Color)
	SetLineWidth(w float64)
	StringWidth(s string) float64
	// SplitText breaks s into lines no wider than w in the current font.
	SplitText(s string, w float64) []string

	Cell(w, h float64, text string, opts CellOptions)
	// MultiCell draws wrapped text in a column of width w starting at the
	// cursor and leaves the cursor at the left margin below it.
	MultiCell(w, h float64, text string, fill bool)
	Line(x1, y1, x2, y2 float64)
	// Rect draws a rectangle; style is "D" (outline), "F" (fill) or "FD".
	Rect(x, y, w, h float64, style string)
	// Image places the image at the cursor, scaled down to maxWidth, and
	// moves the cursor below it.
	Image(path string, maxWidth float64) error

	// MissingGlyphs counts characters replaced because the active font could
	// not represent them, since the canvas was created.
	MissingGlyphs() int
	// Err returns the first unrecoverable drawing error.
	Err() error
	// Bytes finishes the document and returns its serialized form.
	Bytes() ([]byte, error)
}

// CellOptions tune a single Cell call.
type CellOptions struct {
	Align   string // "L" (default), "C" or "R"
	Fill    bool
	Border  bool
	NewLine bool   // move to the next line after drawing
	Link    string // external URL
}
