package mdpdf

// Notes:
// - ParseDocument and RenderDocument are thin entry points; block and layout
//   behavior is covered in internal/document and internal/layout. Here we
//   check the wiring, the returned bytes and the public error mapping.
// - failingCanvas wraps a real PDF canvas so only Err or Bytes misbehave.

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/alnah/go-mdpdf/internal/document"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/theme"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	doc := ParseDocument("# A\ntext\n---\n```\ncode\n```\n")

	var kinds []document.Kind
	for _, b := range doc.Blocks {
		kinds = append(kinds, b.Kind)
	}
	want := []document.Kind{document.Heading, document.Rule, document.Code}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

// failingCanvas is a PDF canvas whose drawing or serialization fails.
type failingCanvas struct {
	*PDFCanvas
	drawErr  error
	bytesErr error
}

func (f *failingCanvas) Err() error { return f.drawErr }

func (f *failingCanvas) Bytes() ([]byte, error) {
	if f.bytesErr != nil {
		return nil, f.bytesErr
	}
	return f.PDFCanvas.Bytes()
}

func newPDFCanvas(t *testing.T) *PDFCanvas {
	t.Helper()
	pdf, err := NewPDFCanvas(nil, nil)
	if err != nil {
		t.Fatalf("NewPDFCanvas() error = %v", err)
	}
	return pdf
}

// ---------------------------------------------------------------------------
// TestRenderDocument - Output and error mapping
// ---------------------------------------------------------------------------

func TestRenderDocument(t *testing.T) {
	t.Parallel()

	t.Run("returns the PDF", func(t *testing.T) {
		t.Parallel()

		doc := ParseDocument("# Title\n\n- item\n\n```\nx := 1\n")
		data, warnings, err := RenderDocument(context.Background(), doc, newPDFCanvas(t), nil)
		if err != nil {
			t.Fatalf("RenderDocument() unexpected error: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("RenderDocument() output starts with %q, want a PDF header", data[:min(len(data), 8)])
		}
		if len(warnings) != 0 {
			t.Errorf("RenderDocument() warnings = %v, want none (parse warnings stay on the document)", warnings)
		}
		if len(doc.Warnings) != 1 || doc.Warnings[0].Kind != document.MalformedFence {
			t.Errorf("doc.Warnings = %v, want one malformed fence", doc.Warnings)
		}
	})

	t.Run("unknown block kind", func(t *testing.T) {
		t.Parallel()

		doc := &Document{Blocks: []Block{{Kind: 99, Line: 7}}}
		data, _, err := RenderDocument(context.Background(), doc, newPDFCanvas(t), nil)
		if !errors.Is(err, ErrRender) {
			t.Fatalf("RenderDocument() error = %v, want ErrRender", err)
		}
		if data != nil {
			t.Error("RenderDocument() returned output with an error")
		}
		var de *DispatchError
		if !errors.As(err, &de) {
			t.Fatalf("error %v should carry a DispatchError", err)
		}
		if de.Block != 0 || de.Line != 7 {
			t.Errorf("DispatchError = %+v, want block 0 line 7", de)
		}
	})

	t.Run("drawing failure", func(t *testing.T) {
		t.Parallel()

		c := &failingCanvas{PDFCanvas: newPDFCanvas(t), drawErr: errors.New("disk full")}
		data, _, err := RenderDocument(context.Background(), ParseDocument("text"), c, nil)
		if !errors.Is(err, ErrPDFGeneration) {
			t.Fatalf("RenderDocument() error = %v, want ErrPDFGeneration", err)
		}
		if !errors.Is(err, layout.ErrCanvas) {
			t.Errorf("error %v should keep the canvas cause", err)
		}
		if errors.Is(err, ErrRender) {
			t.Errorf("error %v should not match ErrRender", err)
		}
		if data != nil {
			t.Error("RenderDocument() returned output with an error")
		}
	})

	t.Run("serialization failure", func(t *testing.T) {
		t.Parallel()

		c := &failingCanvas{PDFCanvas: newPDFCanvas(t), bytesErr: errors.New("closed")}
		data, _, err := RenderDocument(context.Background(), ParseDocument("text"), c, nil)
		if !errors.Is(err, ErrPDFGeneration) {
			t.Fatalf("RenderDocument() error = %v, want ErrPDFGeneration", err)
		}
		if data != nil {
			t.Error("RenderDocument() returned output with an error")
		}
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := RenderDocument(ctx, ParseDocument("text"), newPDFCanvas(t), nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RenderDocument() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewPDFCanvas - Page settings and fonts
// ---------------------------------------------------------------------------

func TestNewPDFCanvas(t *testing.T) {
	t.Parallel()

	nonCore := theme.Default()
	nonCore.Body.Family = "Roboto"

	tests := []struct {
		name      string
		page      *PageSettings
		theme     *Theme
		wantWidth float64
		wantErr   error
	}{
		{name: "defaults", wantWidth: 210},
		{name: "landscape letter", page: &PageSettings{Size: PageSizeLetter, Orientation: OrientationLandscape, Margin: 15}, wantWidth: 279.4},
		{name: "invalid page size", page: &PageSettings{Size: "A5", Orientation: OrientationPortrait, Margin: 10}, wantErr: ErrInvalidPageSize},
		{name: "non-core font", theme: nonCore, wantErr: ErrFontNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pdf, err := NewPDFCanvas(tt.page, tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewPDFCanvas() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPDFCanvas() unexpected error: %v", err)
			}
			if w := pdf.PageWidth(); math.Abs(w-tt.wantWidth) > 0.01 {
				t.Errorf("PageWidth() = %g, want %g", w, tt.wantWidth)
			}
		})
	}
}
