// Package canvas implements the layout drawing surface on top of fpdf.
//
// Text is drawn either with fpdf's core fonts, which only cover Windows-1252,
// or with UTF-8 TrueType fonts loaded from a directory. With core fonts every
// character outside Windows-1252 is replaced by '?' and counted, so callers
// can report the substitution instead of silently losing text.
package canvas
