package document

import "fmt"

// Kind identifies the structural type of a Block.
type Kind int

// Block kinds.
const (
	Paragraph Kind = iota
	Heading
	Code
	Rule
	Table
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Rule:
		return "rule"
	case Table:
		return "table"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Block is a top-level structural unit of a document.
//
// Rule blocks always have an empty Title and no Lines. Code blocks hold the
// raw fence content with no inline formatting applied.
type Block struct {
	Title string
	Level int // 1-6 for headings, 0 otherwise
	Kind  Kind
	Lines []string
	Lang  string // fence info string, Code only
	Line  int    // 1-based source line that opened the block
}

// empty reports whether the block carries nothing worth emitting.
func (b *Block) empty() bool {
	return b.Title == "" && len(b.Lines) == 0
}

// WarningKind classifies a recoverable parse or render condition.
type WarningKind int

// Warning kinds.
const (
	MalformedFence WarningKind = iota + 1
	MissingGlyph
	MissingImage
)

// String returns a short name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case MalformedFence:
		return "malformed fence"
	case MissingGlyph:
		return "missing glyph"
	case MissingImage:
		return "missing image"
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// Warning describes a condition that was recovered from without failing.
type Warning struct {
	Kind    WarningKind
	Line    int // 1-based source line, 0 when not tied to a line
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Document is the parsed form of one input text. It is built once per
// conversion, rendered once and then discarded.
type Document struct {
	Blocks   []Block
	Warnings []Warning
}
