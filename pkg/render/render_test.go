package render

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
		text string
	}{
		{"heading1", "# Title", Heading1, "Title"},
		{"heading2", "## Section", Heading2, "Section"},
		{"heading3 is paragraph", "### Deep", Paragraph, "### Deep"},
		{"hash without space", "#tag", Paragraph, "#tag"},
		{"heading wins over bold", "# **Big**", Heading1, "**Big**"},
		{"bold", "Use **three tiers** today", BoldParagraph, "Use three tiers today"},
		{"bold wins over quote", `"**quoted**"`, BoldParagraph, `"quoted"`},
		{"quote", `"A plan invites commitment."`, Quote, `"A plan invites commitment."`},
		{"indented quote", `  "spaced"  `, Quote, `  "spaced"  `},
		{"lone quote char", `"`, Quote, `"`},
		{"indented lone quote", "  \"", Quote, "  \""},
		{"unbalanced bold", "a ** b", Paragraph, "a ** b"},
		{"trailing unpaired", "**ok** and **", Paragraph, "**ok** and **"},
		{"empty bold pair", "****", Paragraph, "****"},
		{"blank", "", Spacer, ""},
		{"whitespace", " \t ", Spacer, ""},
		{"plain", "Just text.", Paragraph, "Just text."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Line(tt.line)
			if n.Kind != tt.kind {
				t.Errorf("Line(%q).Kind = %s, want %s", tt.line, n.Kind, tt.kind)
			}
			if got := n.PlainText(); got != tt.text {
				t.Errorf("Line(%q).PlainText() = %q, want %q", tt.line, got, tt.text)
			}
		})
	}
}

func TestBoldSpans(t *testing.T) {
	n := Line("**76% of patients** return after **three** visits")
	want := []Span{
		{Text: "76% of patients", Bold: true},
		{Text: " return after "},
		{Text: "three", Bold: true},
		{Text: " visits"},
	}
	if len(n.Spans) != len(want) {
		t.Fatalf("spans = %+v", n.Spans)
	}
	for i := range want {
		if n.Spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, n.Spans[i], want[i])
		}
	}
}

func TestRenderNoCrossLineState(t *testing.T) {
	nodes := Render("# Title\nbody\r\n\n\"quote\"")
	kinds := []Kind{Heading1, Paragraph, Spacer, Quote}
	if len(nodes) != len(kinds) {
		t.Fatalf("got %d nodes", len(nodes))
	}
	for i, k := range kinds {
		if nodes[i].Kind != k {
			t.Errorf("node %d = %s, want %s", i, nodes[i].Kind, k)
		}
	}
	if nodes[1].PlainText() != "body" {
		t.Errorf("carriage return not stripped: %q", nodes[1].PlainText())
	}
}

func TestToMarkdown(t *testing.T) {
	in := "# Title\n## Sub\nsome **bold** text\n\"quoted\"\n\nplain"
	want := "# Title\n## Sub\nsome **bold** text\n> \"quoted\"\n\nplain"
	if got := ToMarkdown(Render(in)); got != want {
		t.Errorf("ToMarkdown =\n%s\nwant\n%s", got, want)
	}
}

func TestLineCountPreserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := rapid.StringMatching(`(?s)[#* "a\n\r]{0,60}`).Draw(t, "content")
		nodes := Render(content)
		if want := strings.Count(content, "\n") + 1; len(nodes) != want {
			t.Fatalf("Render produced %d nodes for %d lines", len(nodes), want)
		}
	})
}

// A line built from plain runs and **bold** runs splits back into exactly
// those runs.
func TestBoldRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.IntRange(1, 6).Draw(t, "parts")
		var line, plain strings.Builder
		hasBold := false
		for i := 0; i < parts; i++ {
			if rapid.Bool().Draw(t, "bold") {
				w := rapid.StringMatching(`[a-z ]{1,8}`).Draw(t, "boldText")
				line.WriteString("**" + w + "**")
				plain.WriteString(w)
				hasBold = true
			} else {
				w := rapid.StringMatching(`[a-z .]{0,8}`).Draw(t, "plainText")
				line.WriteString(w)
				plain.WriteString(w)
			}
		}
		if !hasBold {
			line.WriteString("**x**")
			plain.WriteString("x")
		}
		src := "x" + line.String()

		n := Line(src)
		if n.Kind != BoldParagraph {
			t.Fatalf("Line(%q).Kind = %s", src, n.Kind)
		}
		if got := n.PlainText(); got != "x"+plain.String() {
			t.Fatalf("PlainText = %q, want %q", got, "x"+plain.String())
		}
		if got := ToMarkdown([]Node{n}); got != src {
			t.Fatalf("ToMarkdown = %q, want %q", got, src)
		}
	})
}
