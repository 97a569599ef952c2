// Package highlight colours fenced code blocks with chroma. It only produces
// coloured text runs per source line; drawing them is the layout package's job.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdpdf/internal/theme"
)

// Token is a run of source text sharing one colour. Color is empty when the
// style leaves the token type uncoloured.
type Token struct {
	Text   string
	Color  theme.Color
	Bold   bool
	Italic bool
}

// Highlighter turns code lines into coloured tokens with one chroma style.
type Highlighter struct {
	style *chroma.Style
}

// New returns a Highlighter for the named chroma style. Unknown names fall
// back to chroma's default style.
func New(style string) *Highlighter {
	return &Highlighter{style: styles.Get(style)}
}

// Supports reports whether lang names a lexer chroma knows.
func Supports(lang string) bool {
	return lang != "" && lexers.Get(lang) != nil
}

// Lines tokenises source as one program in lang and returns exactly
// len(source) token lines. Line i holds the tokens of source[i] without the
// newline. An unknown language is an error; callers fall back to plain text.
func (h *Highlighter) Lines(lang string, source []string) ([][]Token, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, fmt.Errorf("highlight: no lexer for %q", lang)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, strings.Join(source, "\n")+"\n")
	if err != nil {
		return nil, fmt.Errorf("highlight: tokenising %s: %w", lang, err)
	}

	out := make([][]Token, len(source))
	row := 0
	for _, tok := range it.Tokens() {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
			}
			if part == "" || row >= len(out) {
				continue
			}
			out[row] = appendToken(out[row], h.token(tok.Type, part))
		}
	}
	return out, nil
}

func (h *Highlighter) token(tt chroma.TokenType, text string) Token {
	entry := h.style.Get(tt)
	t := Token{
		Text:   text,
		Bold:   entry.Bold == chroma.Yes,
		Italic: entry.Italic == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		t.Color = theme.Color(fmt.Sprintf("#%02x%02x%02x", entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
	}
	return t
}

// appendToken merges tok into the previous token when they look the same.
func appendToken(line []Token, tok Token) []Token {
	if n := len(line); n > 0 {
		last := &line[n-1]
		if last.Color == tok.Color && last.Bold == tok.Bold && last.Italic == tok.Italic {
			last.Text += tok.Text
			return line
		}
	}
	return append(line, tok)
}

// Plain joins a token line back into its source text.
func Plain(line []Token) string {
	var b strings.Builder
	for _, t := range line {
		b.WriteString(t.Text)
	}
	return b.String()
}
