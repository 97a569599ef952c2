package layout

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdpdf/internal/document"
)

var (
	// ErrDispatchGap indicates a block kind or line variant with no drawing routine.
	ErrDispatchGap = errors.New("no drawing routine")

	// ErrCanvas indicates the canvas failed while drawing.
	ErrCanvas = errors.New("canvas failure")
)

// DispatchError identifies the block and line that could not be drawn.
type DispatchError struct {
	Block int // index in Document.Blocks
	Kind  document.Kind
	Line  int    // 1-based source line
	Text  string // offending line, empty for block-level gaps
}

func (e *DispatchError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("layout: block %d (%s, line %d): %v for %q", e.Block, e.Kind, e.Line, ErrDispatchGap, e.Text)
	}
	return fmt.Sprintf("layout: block %d (%s, line %d): %v", e.Block, e.Kind, e.Line, ErrDispatchGap)
}

func (e *DispatchError) Unwrap() error { return ErrDispatchGap }
