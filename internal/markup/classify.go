package markup

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdpdf/internal/document"
)

// Precompiled patterns.
var (
	bulletPattern   = regexp.MustCompile(`^(\s*)[-*+]\s+(.+)$`)
	numberedPattern = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.+)$`)
	headingPattern  = regexp.MustCompile(`^\s*(#{1,6})\s+(.+)$`)
)

// linkParser parses single lines to recognise [text](url) and ![alt](path).
// goldmark parsers are safe for concurrent use.
var linkParser = goldmark.New().Parser()

// Classify returns the variant for one line of a generic block.
func Classify(line string) Line {
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Bullet{Indent: max(len(m[1])-1, 0), Text: m[2]}
	}
	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		return Numbered{Indent: len(m[1]), Number: m[2], Text: m[3]}
	}
	if document.IsTableRow(line) {
		return TableRow{Raw: line}
	}
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return PlainHeading{Level: len(m[1]), Text: strings.TrimSpace(m[2])}
	}

	trimmed := strings.TrimSpace(line)
	if l, ok := classifyLinkOrImage(trimmed); ok {
		return l
	}
	if s, ok := enclosed(trimmed, "**"); ok {
		return Bold{Text: s}
	}
	if !strings.HasPrefix(trimmed, "**") {
		if s, ok := enclosed(trimmed, "*"); ok {
			return Italic{Text: s}
		}
		if s, ok := enclosed(trimmed, "_"); ok {
			return Italic{Text: s}
		}
	}
	if s, ok := enclosed(trimmed, "~~"); ok {
		return Strikethrough{Text: s}
	}
	if s, ok := enclosed(trimmed, "`"); ok {
		return InlineCode{Text: s}
	}
	if rest, ok := strings.CutPrefix(trimmed, ">"); ok {
		return Quote{Text: strings.TrimSpace(rest)}
	}
	if document.IsRule(line) {
		return Rule{}
	}
	return Plain{Text: line}
}

// enclosed reports whether s is exactly delim + non-empty body + delim with
// no further delim inside, and returns the body.
func enclosed(s, delim string) (string, bool) {
	if len(s) <= 2*len(delim) || !strings.HasPrefix(s, delim) || !strings.HasSuffix(s, delim) {
		return "", false
	}
	body := s[len(delim) : len(s)-len(delim)]
	if strings.Contains(body, delim) {
		return "", false
	}
	return body, true
}

// classifyLinkOrImage recognises a line made of exactly one inline link or
// image.
func classifyLinkOrImage(s string) (Line, bool) {
	if !strings.HasSuffix(s, ")") || !(strings.HasPrefix(s, "[") || strings.HasPrefix(s, "![")) {
		return nil, false
	}

	src := []byte(s)
	doc := linkParser.Parse(text.NewReader(src))
	para := doc.FirstChild()
	if para == nil || para.NextSibling() != nil || para.Kind() != ast.KindParagraph {
		return nil, false
	}
	only := para.FirstChild()
	if only == nil || only.NextSibling() != nil {
		return nil, false
	}

	switch n := only.(type) {
	case *ast.Link:
		return Link{Text: nodeText(n, src), URL: string(n.Destination)}, true
	case *ast.Image:
		return Image{Path: string(n.Destination), Alt: nodeText(n, src)}, true
	}
	return nil, false
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
