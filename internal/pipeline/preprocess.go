package pipeline

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/alnah/go-mdpdf/internal/document"
)

// DefaultTabWidth is the number of columns a tab advances in code blocks.
const DefaultTabWidth = 4

// byteOrderMark is stripped from the start of input.
const byteOrderMark = "\uFEFF"

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// controlChars matches Unicode category C (control, format, private use,
// surrogate, unassigned) except the tab and newline that carry structure.
var controlChars = runes.Predicate(func(r rune) bool {
	return r != '\n' && r != '\t' && unicode.In(r, unicode.C)
})

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// Cleaner normalises line endings and removes characters no font can draw.
type Cleaner struct{}

// PreprocessMarkdown returns content with \r\n and \r turned into \n, a
// leading byte order mark removed and control characters dropped. Line
// structure is preserved, so source line numbers stay valid.
func (c *Cleaner) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	return stripControl(content)
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

func stripControl(content string) string {
	out, _, err := transform.String(runes.Remove(controlChars), content)
	if err != nil {
		return content
	}
	return out
}

// ExpandTabs replaces tabs in code block lines with spaces up to the next
// multiple of width. Other blocks keep their tabs: list indentation is
// measured in whitespace characters.
func ExpandTabs(doc *document.Document, width int) {
	if doc == nil || width <= 0 {
		return
	}
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		if b.Kind != document.Code {
			continue
		}
		for j, line := range b.Lines {
			b.Lines[j] = expandLine(line, width)
		}
	}
}

func expandLine(line string, width int) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
