// Package inline resolves emphasis markers inside a single line of text into
// styled runs.
//
// Supported spans are **bold** and single-delimiter *italic* / _italic_.
// Nesting is not composed: BoldItalic exists for renderers that combine two
// passes, the tokenizer itself never produces it. An opening delimiter with no
// matching close is kept as literal text.
package inline

import (
	"strings"
	"unicode/utf8"
)

// Style is the emphasis style of a run.
type Style int

// Run styles.
const (
	None Style = iota
	Bold
	Italic
	BoldItalic
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	}
	return "none"
}

// Run is a contiguous span of text sharing one style.
type Run struct {
	Style Style
	Text  string
}

const boldDelim = "**"

// Tokenize splits text into styled runs in a single left-to-right scan.
// Concatenating the Text of every run yields text with the resolved
// delimiters removed. Invalid UTF-8 is replaced rather than rejected.
func Tokenize(text string) []Run {
	text = strings.ToValidUTF8(text, string(utf8.RuneError))

	var runs []Run
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], boldDelim) {
			if end := strings.Index(text[i+2:], boldDelim); end >= 0 {
				runs = append(runs, Run{Style: Bold, Text: text[i+2 : i+2+end]})
				i += 2 + end + 2
				continue
			}
		} else if c := text[i]; c == '*' || c == '_' {
			if end := strings.IndexByte(text[i+1:], c); end >= 0 {
				runs = append(runs, Run{Style: Italic, Text: text[i+1 : i+1+end]})
				i += 1 + end + 1
				continue
			}
		}

		// Plain text up to the next delimiter that can actually open a span.
		start := i
		i++
		for i < len(text) && !opensSpan(text, i) {
			i++
		}
		runs = append(runs, Run{Style: None, Text: text[start:i]})
	}
	return mergePlain(runs)
}

// opensSpan reports whether a delimiter at i has a matching close later on.
func opensSpan(text string, i int) bool {
	if strings.HasPrefix(text[i:], boldDelim) {
		return strings.Contains(text[i+2:], boldDelim)
	}
	c := text[i]
	if c != '*' && c != '_' {
		return false
	}
	return strings.IndexByte(text[i+1:], c) >= 0
}

// mergePlain joins adjacent None runs, which appear when an unmatched
// delimiter is consumed as literal text.
func mergePlain(runs []Run) []Run {
	out := runs[:0]
	for _, r := range runs {
		if n := len(out); n > 0 && r.Style == None && out[n-1].Style == None {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// Plain concatenates the run texts, dropping styles.
func Plain(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Strip returns text with its emphasis delimiters removed.
func Strip(text string) string {
	return Plain(Tokenize(text))
}
