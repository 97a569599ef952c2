package mdpdf

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpdf/internal/document"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in millimetres.
const (
	MinMargin     = 5.0
	MaxMargin     = 50.0
	DefaultMargin = 10.0
)

// Footer position constants.
const (
	FooterLeft   = "left"
	FooterCenter = "center"
	FooterRight  = "right"
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // millimetres, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 10 mm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.1f (must be between %.0f and %.0f mm)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// canvasSize returns the page size name fpdf expects.
func (p *PageSettings) canvasSize() string {
	switch strings.ToLower(p.Size) {
	case PageSizeLetter:
		return "Letter"
	case PageSizeLegal:
		return "Legal"
	}
	return "A4"
}

// canvasOrientation returns "P" or "L".
func (p *PageSettings) canvasOrientation() string {
	if strings.ToLower(p.Orientation) == OrientationLandscape {
		return "L"
	}
	return "P"
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Footer configures the text drawn at the bottom of every page.
type Footer struct {
	Position       string // "left", "center", "right" (default: "center")
	ShowPageNumber bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", FooterLeft, FooterCenter, FooterRight:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// align returns the fpdf alignment for the footer position.
func (f *Footer) align() string {
	switch strings.ToLower(f.Position) {
	case FooterLeft:
		return "L"
	case FooterRight:
		return "R"
	}
	return "C"
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string        // Markdown content (required)
	SourceDir string        // Directory relative image paths resolve against (optional)
	Page      *PageSettings // Page settings (optional, nil = defaults)
	Footer    *Footer       // Footer config (optional, nil = no footer)
	Title     string        // PDF title metadata (optional, "" = first H1)
	Author    string        // PDF author metadata (optional)
}

// Validate checks the per-conversion settings.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if err := in.Page.Validate(); err != nil {
		return err
	}
	return in.Footer.Validate()
}

// Warning describes a condition recovered from during conversion, such as an
// unterminated code fence or a character the font cannot draw.
type Warning = document.Warning

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	PDF      []byte
	Pages    int
	Title    string // title written to the PDF metadata
	Warnings []Warning
}
