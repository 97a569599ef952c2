// Package theme describes the visual parameters the layout renderer draws
// with: fonts, sizes, colours, spacing and list geometry. Themes are YAML
// documents decoded on top of Default, so a theme file only needs the keys it
// changes.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// ErrInvalidTheme indicates a theme document that decodes but holds values the
// renderer cannot draw with.
var ErrInvalidTheme = errors.New("invalid theme")

// Size bounds for fonts and spacing, in points and millimetres respectively.
const (
	MinFontSize = 4.0
	MaxFontSize = 72.0
	MaxSpacing  = 50.0
)

// Color is a "#rrggbb" hex colour.
type Color string

// RGB returns the colour components. A malformed colour yields black; Validate
// reports malformed colours before rendering starts.
func (c Color) RGB() (r, g, b int) {
	v, ok := c.parse()
	if !ok {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func (c Color) parse() (uint64, bool) {
	s, ok := strings.CutPrefix(string(c), "#")
	if !ok || len(s) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TextStyle is the font and colour used for one kind of text.
type TextStyle struct {
	Family     string  `yaml:"family"`
	Size       float64 `yaml:"size"`
	Color      Color   `yaml:"color"`
	LineHeight float64 `yaml:"lineHeight"`
	Bold       bool    `yaml:"bold"`
	Italic     bool    `yaml:"italic"`
}

// FontStyle returns the style string fpdf-like canvases expect ("", "B", "I", "BI").
func (s TextStyle) FontStyle() string {
	var b strings.Builder
	if s.Bold {
		b.WriteByte('B')
	}
	if s.Italic {
		b.WriteByte('I')
	}
	return b.String()
}

// CodeStyle draws fenced code blocks and inline code spans.
type CodeStyle struct {
	TextStyle  `yaml:",inline"`
	Fill       Color   `yaml:"fill"`
	SpaceAfter float64 `yaml:"spaceAfter"`
	// Highlight names a chroma style; empty disables syntax colouring.
	Highlight string `yaml:"highlight"`
}

// ListStyle sets the geometry of bullet and numbered items.
type ListStyle struct {
	BaseIndent  float64 `yaml:"baseIndent"`
	IndentStep  float64 `yaml:"indentStep"`
	BulletWidth float64 `yaml:"bulletWidth"`
	Bullet      string  `yaml:"bullet"`
}

// RuleStyle draws horizontal rules.
type RuleStyle struct {
	Color       Color   `yaml:"color"`
	Width       float64 `yaml:"width"`
	SpaceBefore float64 `yaml:"spaceBefore"`
	SpaceAfter  float64 `yaml:"spaceAfter"`
}

// TableStyle draws pipe tables.
type TableStyle struct {
	HeaderFill  Color   `yaml:"headerFill"`
	Border      Color   `yaml:"border"`
	CellPadding float64 `yaml:"cellPadding"`
}

// Theme is the complete set of drawing parameters.
type Theme struct {
	Name       string     `yaml:"name"`
	Body       TextStyle  `yaml:"body"`
	H1         TextStyle  `yaml:"h1"`
	H2         TextStyle  `yaml:"h2"`
	H3         TextStyle  `yaml:"h3"`
	HeadingGap float64    `yaml:"headingGap"`
	Code       CodeStyle  `yaml:"code"`
	Quote      TextStyle  `yaml:"quote"`
	Link       TextStyle  `yaml:"link"`
	List       ListStyle  `yaml:"list"`
	Rule       RuleStyle  `yaml:"rule"`
	Table      TableStyle `yaml:"table"`

	// Header is the banner rule drawn at the top of every page.
	Header       RuleStyle `yaml:"header"`
	Footer       TextStyle `yaml:"footer"`
	ParagraphGap float64   `yaml:"paragraphGap"`
}

// Heading returns the style for a heading level. Levels 3 and deeper share
// one tier.
func (t *Theme) Heading(level int) TextStyle {
	switch level {
	case 1:
		return t.H1
	case 2:
		return t.H2
	default:
		return t.H3
	}
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{
		Name:       "default",
		Body:       TextStyle{Family: "Helvetica", Size: 10, Color: "#000000", LineHeight: 6},
		H1:         TextStyle{Family: "Helvetica", Size: 14, Color: "#003366", LineHeight: 10, Bold: true},
		H2:         TextStyle{Family: "Helvetica", Size: 12, Color: "#333333", LineHeight: 10, Bold: true},
		H3:         TextStyle{Family: "Helvetica", Size: 11, Color: "#333333", LineHeight: 10, Bold: true},
		HeadingGap: 5,
		Code: CodeStyle{
			TextStyle:  TextStyle{Family: "Courier", Size: 9, Color: "#000000", LineHeight: 6},
			Fill:       "#f0f0f0",
			SpaceAfter: 5,
			Highlight:  "github",
		},
		Quote:        TextStyle{Family: "Helvetica", Size: 10, Color: "#555555", LineHeight: 6, Italic: true},
		Link:         TextStyle{Family: "Helvetica", Size: 10, Color: "#0645ad", LineHeight: 6},
		List:         ListStyle{BaseIndent: 5, IndentStep: 5, BulletWidth: 5, Bullet: "•"},
		Rule:         RuleStyle{Color: "#c8c8c8", Width: 0.3, SpaceBefore: 2, SpaceAfter: 5},
		Table:        TableStyle{HeaderFill: "#e6e6e6", Border: "#999999", CellPadding: 1.5},
		Header:       RuleStyle{Color: "#003366", Width: 0.5, SpaceAfter: 10},
		Footer:       TextStyle{Family: "Helvetica", Size: 8, Color: "#808080", LineHeight: 10, Italic: true},
		ParagraphGap: 3,
	}
}

// Parse decodes a theme document on top of Default and validates the result.
func Parse(data []byte) (*Theme, error) {
	t := Default()
	if err := yamlutil.Decode(data, t, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that every style can be drawn.
func (t *Theme) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil theme", ErrInvalidTheme)
	}
	styles := []struct {
		name  string
		style TextStyle
	}{
		{"body", t.Body},
		{"h1", t.H1},
		{"h2", t.H2},
		{"h3", t.H3},
		{"code", t.Code.TextStyle},
		{"quote", t.Quote},
		{"link", t.Link},
		{"footer", t.Footer},
	}
	for _, s := range styles {
		if err := validateText(s.name, s.style); err != nil {
			return err
		}
	}

	colors := map[string]Color{
		"code.fill":        t.Code.Fill,
		"rule.color":       t.Rule.Color,
		"header.color":     t.Header.Color,
		"table.headerFill": t.Table.HeaderFill,
		"table.border":     t.Table.Border,
	}
	for name, c := range colors {
		if _, ok := c.parse(); !ok {
			return fmt.Errorf("%w: %s: malformed colour %q", ErrInvalidTheme, name, c)
		}
	}

	spacing := map[string]float64{
		"headingGap":        t.HeadingGap,
		"paragraphGap":      t.ParagraphGap,
		"code.spaceAfter":   t.Code.SpaceAfter,
		"list.baseIndent":   t.List.BaseIndent,
		"list.indentStep":   t.List.IndentStep,
		"list.bulletWidth":  t.List.BulletWidth,
		"rule.spaceBefore":  t.Rule.SpaceBefore,
		"rule.spaceAfter":   t.Rule.SpaceAfter,
		"rule.width":        t.Rule.Width,
		"header.width":      t.Header.Width,
		"header.spaceAfter": t.Header.SpaceAfter,
		"table.cellPadding": t.Table.CellPadding,
	}
	for name, v := range spacing {
		if v < 0 || v > MaxSpacing {
			return fmt.Errorf("%w: %s: %g out of range [0, %g]", ErrInvalidTheme, name, v, MaxSpacing)
		}
	}

	if t.List.Bullet == "" {
		return fmt.Errorf("%w: list.bullet: empty", ErrInvalidTheme)
	}
	return nil
}

func validateText(name string, s TextStyle) error {
	if s.Family == "" {
		return fmt.Errorf("%w: %s.family: empty", ErrInvalidTheme, name)
	}
	if s.Size < MinFontSize || s.Size > MaxFontSize {
		return fmt.Errorf("%w: %s.size: %g out of range [%g, %g]", ErrInvalidTheme, name, s.Size, MinFontSize, MaxFontSize)
	}
	if s.LineHeight <= 0 || s.LineHeight > MaxSpacing {
		return fmt.Errorf("%w: %s.lineHeight: %g out of range (0, %g]", ErrInvalidTheme, name, s.LineHeight, MaxSpacing)
	}
	if _, ok := s.Color.parse(); !ok {
		return fmt.Errorf("%w: %s.color: malformed colour %q", ErrInvalidTheme, name, s.Color)
	}
	return nil
}
