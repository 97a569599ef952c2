package layout

// wrapSlack absorbs floating point drift when comparing positions.
const wrapSlack = 1e-6

// Context owns the cursor of one render: the content bounds and the current
// line height. It is never shared between renders.
type Context struct {
	c           Canvas
	left, right float64
	lineHeight  float64
}

// NewContext binds a context to c, taking the bounds from its margins.
func NewContext(c Canvas, lineHeight float64) *Context {
	left, right := c.Margins()
	return &Context{
		c:          c,
		left:       left,
		right:      c.PageWidth() - right,
		lineHeight: lineHeight,
	}
}

// Left returns the x of the left content edge.
func (x *Context) Left() float64 { return x.left }

// Right returns the x of the right content edge.
func (x *Context) Right() float64 { return x.right }

// Width returns the content width.
func (x *Context) Width() float64 { return x.right - x.left }

// LineHeight returns the current line height.
func (x *Context) LineHeight() float64 { return x.lineHeight }

// SetLineHeight changes the height used by Break.
func (x *Context) SetLineHeight(h float64) { x.lineHeight = h }

// Cursor returns the current position.
func (x *Context) Cursor() (float64, float64) { return x.c.XY() }

// MoveTo places the cursor.
func (x *Context) MoveTo(px, py float64) { x.c.SetXY(px, py) }

// Indent places the cursor dx from the left edge on the current line.
func (x *Context) Indent(dx float64) {
	_, y := x.c.XY()
	x.c.SetXY(x.left+dx, y)
}

// Break ends the current line.
func (x *Context) Break() { x.c.NewLine(x.lineHeight) }

// Advance moves to the left edge, h below the current line.
func (x *Context) Advance(h float64) { x.c.NewLine(h) }

// AtLineStart reports whether nothing has been drawn on the current line.
func (x *Context) AtLineStart() bool { return x.AtIndent(0) }

// AtIndent reports whether the cursor is no further than dx past the left
// edge, where lines of an indented body begin.
func (x *Context) AtIndent(dx float64) bool {
	px, _ := x.c.XY()
	return px <= x.left+dx+wrapSlack
}

// Fits reports whether a run of width w can be drawn at the cursor without
// crossing the right edge.
func (x *Context) Fits(w float64) bool {
	px, _ := x.c.XY()
	return px+w <= x.right+wrapSlack
}
