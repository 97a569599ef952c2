// Package markup classifies the lines of generic (paragraph and heading)
// blocks into tagged variants.
//
// Classification is a fixed-priority cascade; the first matching variant wins:
//
//	bullet, numbered, table row, heading, link, image, bold, italic,
//	strikethrough, inline code, quote, rule, plain
//
// A bullet line whose body contains emphasis is still a Bullet: inline
// formatting is resolved later, inside the body only.
package markup

// Line is a classified line. The set of variants is closed; renderers switch
// over the concrete types.
type Line interface {
	isLine()
}

// Bullet is an unordered list item.
type Bullet struct {
	Indent int
	Text   string
}

// Numbered is an ordered list item. Number is the literal digits as written.
type Numbered struct {
	Indent int
	Number string
	Text   string
}

// TableRow is a pipe-delimited table row kept unparsed.
type TableRow struct {
	Raw string
}

// PlainHeading is a heading-shaped line that reached the renderer inside a
// generic block.
type PlainHeading struct {
	Level int
	Text  string
}

// Link is a line consisting of a single inline link.
type Link struct {
	Text string
	URL  string
}

// Image is a line consisting of a single inline image.
type Image struct {
	Path string
	Alt  string
}

// Bold is a line wrapped entirely in **.
type Bold struct {
	Text string
}

// Italic is a line wrapped entirely in * or _.
type Italic struct {
	Text string
}

// Strikethrough is a line wrapped entirely in ~~.
type Strikethrough struct {
	Text string
}

// InlineCode is a line wrapped entirely in backticks.
type InlineCode struct {
	Text string
}

// Quote is a line starting with >.
type Quote struct {
	Text string
}

// Rule is a horizontal rule line.
type Rule struct{}

// Plain is any other line; its emphasis is resolved by the inline package.
type Plain struct {
	Text string
}

func (Bullet) isLine()        {}
func (Numbered) isLine()      {}
func (TableRow) isLine()      {}
func (PlainHeading) isLine()  {}
func (Link) isLine()          {}
func (Image) isLine()         {}
func (Bold) isLine()          {}
func (Italic) isLine()        {}
func (Strikethrough) isLine() {}
func (InlineCode) isLine()    {}
func (Quote) isLine()         {}
func (Rule) isLine()          {}
func (Plain) isLine()         {}
