// Package render turns a lesson body into a flat list of display nodes,
// one per input line.
//
// Each line is classified on its own, first match wins:
//
//	"# "   prefix          Heading1
//	"## "  prefix          Heading2
//	contains "**"          BoldParagraph (or Paragraph if the pairs don't balance)
//	"..." after trimming   Quote
//	blank                  Spacer
//	anything else          Paragraph
package render

import (
	"regexp"
	"strings"
)

// Kind tags a Node.
type Kind int

const (
	Paragraph Kind = iota
	Heading1
	Heading2
	BoldParagraph
	Quote
	Spacer
)

func (k Kind) String() string {
	switch k {
	case Heading1:
		return "heading1"
	case Heading2:
		return "heading2"
	case BoldParagraph:
		return "bold"
	case Quote:
		return "quote"
	case Spacer:
		return "spacer"
	default:
		return "paragraph"
	}
}

// Span is a run of text inside a node.
type Span struct {
	Text string
	Bold bool
}

// Node is one rendered line. Spacers have no spans.
type Node struct {
	Kind  Kind
	Spans []Span
}

// PlainText joins the node's spans without emphasis markers.
func (n Node) PlainText() string {
	var b strings.Builder
	for _, s := range n.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

var boldPattern = regexp.MustCompile(`\*\*[^*]+\*\*`)

// Render classifies every line of content. The result always has exactly
// one node per line, so len(Render(c)) == strings.Count(c, "\n")+1.
func Render(content string) []Node {
	lines := strings.Split(content, "\n")
	nodes := make([]Node, len(lines))
	for i, line := range lines {
		nodes[i] = Line(strings.TrimSuffix(line, "\r"))
	}
	return nodes
}

// Line classifies a single line.
func Line(line string) Node {
	switch {
	case strings.HasPrefix(line, "# "):
		return text(Heading1, line[2:])
	case strings.HasPrefix(line, "## "):
		return text(Heading2, line[3:])
	case strings.Contains(line, "**"):
		return bold(line)
	case isQuote(line):
		return text(Quote, line)
	case strings.TrimSpace(line) == "":
		return Node{Kind: Spacer}
	default:
		return text(Paragraph, line)
	}
}

func text(k Kind, s string) Node {
	return Node{Kind: k, Spans: []Span{{Text: s}}}
}

func isQuote(line string) bool {
	t := strings.TrimSpace(line)
	return t != "" && strings.HasPrefix(t, `"`) && strings.HasSuffix(t, `"`)
}

// bold splits line into plain and bold spans. Any "**" left outside a
// matched pair makes the whole line a plain paragraph.
func bold(line string) Node {
	matches := boldPattern.FindAllStringIndex(line, -1)
	var spans []Span
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			spans = append(spans, Span{Text: line[pos:m[0]]})
		}
		spans = append(spans, Span{Text: line[m[0]+2 : m[1]-2], Bold: true})
		pos = m[1]
	}
	if pos < len(line) {
		spans = append(spans, Span{Text: line[pos:]})
	}

	for _, s := range spans {
		if !s.Bold && strings.Contains(s.Text, "**") {
			return text(Paragraph, line)
		}
	}
	if len(matches) == 0 {
		return text(Paragraph, line)
	}
	return Node{Kind: BoldParagraph, Spans: spans}
}
