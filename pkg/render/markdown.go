package render

import "strings"

// ToMarkdown re-emits nodes as Markdown, one line per node.
func ToMarkdown(nodes []Node) string {
	lines := make([]string, len(nodes))
	for i, n := range nodes {
		switch n.Kind {
		case Heading1:
			lines[i] = "# " + n.PlainText()
		case Heading2:
			lines[i] = "## " + n.PlainText()
		case BoldParagraph:
			var b strings.Builder
			for _, s := range n.Spans {
				if s.Bold {
					b.WriteString("**" + s.Text + "**")
				} else {
					b.WriteString(s.Text)
				}
			}
			lines[i] = b.String()
		case Quote:
			lines[i] = "> " + n.PlainText()
		case Spacer:
			lines[i] = ""
		default:
			lines[i] = n.PlainText()
		}
	}
	return strings.Join(lines, "\n")
}
