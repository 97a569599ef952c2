package document

import (
	"regexp"
	"strings"
)

// Fence is the code fence delimiter.
const Fence = "```"

// Precompiled patterns.
var (
	// ATX heading: 1-6 hashes, whitespace, text
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

	// Horizontal rule on a trimmed line: 3+ homogeneous -, * or _
	rulePattern = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

// IsRule reports whether line is a horizontal rule.
func IsRule(line string) bool {
	return rulePattern.MatchString(strings.TrimSpace(line))
}

// IsTableRow reports whether line looks like a pipe table row.
func IsTableRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// parser holds the line-local state of a single Parse call.
type parser struct {
	doc *Document
	cur Block

	inFence   bool
	fenceBuf  []string
	fenceLang string
	fenceLine int
}

// Parse splits text into blocks. It never fails: an unterminated fence is
// recovered as a Code block and reported as a MalformedFence warning.
func Parse(text string) *Document {
	p := &parser{
		doc: &Document{},
		cur: Block{Kind: Paragraph},
	}
	if text == "" {
		return p.doc
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		p.feed(i+1, line)
	}
	p.finish()
	return p.doc
}

func (p *parser) feed(n int, line string) {
	// Tables end at the first line that is not a row.
	if p.cur.Kind == Table && !IsTableRow(line) {
		p.flush(n)
	}

	switch {
	case IsRule(line):
		p.flush(n)
		p.doc.Blocks = append(p.doc.Blocks, Block{Kind: Rule, Line: n})

	case p.inFence:
		if strings.TrimSpace(line) == Fence {
			p.closeFence(n)
			return
		}
		p.fenceBuf = append(p.fenceBuf, line)

	case strings.HasPrefix(strings.TrimSpace(line), Fence):
		p.flush(n)
		p.inFence = true
		p.fenceBuf = nil
		p.fenceLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), Fence))
		p.fenceLine = n

	case headingPattern.MatchString(line):
		m := headingPattern.FindStringSubmatch(line)
		p.flush(n)
		p.cur = Block{
			Title: strings.TrimRight(m[2], " \t"),
			Level: len(m[1]),
			Kind:  Heading,
			Line:  n,
		}

	case IsTableRow(line):
		if p.cur.Kind != Table {
			p.flush(n)
			p.cur = Block{Kind: Table, Line: n}
		}
		p.cur.Lines = append(p.cur.Lines, line)

	default:
		if p.cur.empty() {
			p.cur.Line = n
		}
		p.cur.Lines = append(p.cur.Lines, line)
	}
}

// flush seals the current block if it holds anything and starts an empty
// paragraph at line n.
func (p *parser) flush(n int) {
	if !p.cur.empty() {
		p.doc.Blocks = append(p.doc.Blocks, p.cur)
	}
	p.cur = Block{Kind: Paragraph, Line: n}
}

func (p *parser) closeFence(n int) {
	p.doc.Blocks = append(p.doc.Blocks, Block{
		Kind:  Code,
		Lines: p.fenceBuf,
		Lang:  p.fenceLang,
		Line:  p.fenceLine,
	})
	p.inFence = false
	p.fenceBuf = nil
	p.fenceLang = ""
	p.cur = Block{Kind: Paragraph, Line: n + 1}
}

func (p *parser) finish() {
	if p.inFence {
		p.doc.Warnings = append(p.doc.Warnings, Warning{
			Kind:    MalformedFence,
			Line:    p.fenceLine,
			Message: "code fence is never closed; content kept as a code block",
		})
		p.closeFence(p.fenceLine)
	}
	if !p.cur.empty() {
		p.doc.Blocks = append(p.doc.Blocks, p.cur)
	}
}
