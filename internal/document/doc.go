// Package document segments raw Markdown text into an ordered sequence of
// typed blocks.
//
// The parser is deliberately small: it tracks only fence state and the block
// under construction. List markers, quotes, emphasis and the other inline
// constructs are left untouched in Block.Lines and resolved at render time by
// the markup and inline packages.
//
// A block is sealed when a heading, a fence boundary, a horizontal rule or a
// table boundary is reached, and at end of input. Code block lines are stored
// verbatim and never reinterpreted.
package document
