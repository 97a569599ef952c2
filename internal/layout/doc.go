// Package layout draws a parsed document onto a Canvas.
//
// The renderer walks blocks in order and, inside generic blocks, classifies
// each line and switches over the closed set of markup variants. Every cursor
// read and write goes through a Context, so wrapping can be tested against a
// recording canvas without producing a PDF.
//
// Wrapping is measured per run: a run that does not fit on the current line
// moves to the next line whole. A single run wider than the content area is
// drawn as is and overflows the right margin. Vertical overflow is left to
// the canvas's automatic page breaks.
package layout
