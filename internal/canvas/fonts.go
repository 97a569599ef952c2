package canvas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// coreFonts are the families fpdf can draw without font files.
var coreFonts = map[string]bool{
	"arial":        true,
	"courier":      true,
	"helvetica":    true,
	"symbol":       true,
	"times":        true,
	"zapfdingbats": true,
}

// fontVariants maps fpdf style strings to the file name suffix of each face.
var fontVariants = []struct {
	style, suffix string
}{
	{"", "Regular"},
	{"B", "Bold"},
	{"I", "Italic"},
	{"BI", "BoldItalic"},
}

// FontFile returns the path of one face of family in dir.
func FontFile(dir, family, style string) string {
	suffix := "Regular"
	for _, v := range fontVariants {
		if v.style == style {
			suffix = v.suffix
		}
	}
	return filepath.Join(dir, family+"-"+suffix+".ttf")
}

// loadFonts registers every family from dir as a UTF-8 font. A family needs
// at least its Regular face; missing Bold or Italic faces reuse Regular.
func (p *PDF) loadFonts(dir string, families []string) error {
	for _, family := range families {
		key := strings.ToLower(family)
		if p.utf8[key] {
			continue
		}
		regular, err := os.ReadFile(FontFile(dir, family, "")) // #nosec G304 -- configured font dir
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s (looked for %s)", ErrFontNotFound, family, FontFile(dir, family, ""))
			}
			return fmt.Errorf("%w: %s: %v", ErrFontNotFound, family, err)
		}
		for _, v := range fontVariants {
			data := regular
			if v.style != "" {
				if face, err := os.ReadFile(FontFile(dir, family, v.style)); err == nil { // #nosec G304
					data = face
				}
			}
			p.pdf.AddUTF8FontFromBytes(family, v.style, data)
		}
		if err := p.pdf.Error(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFontNotFound, family, err)
		}
		p.utf8[key] = true
	}
	return nil
}

// checkCoreFonts fails for families fpdf has no built-in metrics for.
func checkCoreFonts(families []string) error {
	for _, family := range families {
		if !coreFonts[strings.ToLower(family)] {
			return fmt.Errorf("%w: %s is not a built-in font; set a font directory", ErrFontNotFound, family)
		}
	}
	return nil
}
