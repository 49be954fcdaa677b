package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/model"
	"github.com/vanderheijden86/academy/pkg/render"
)

// lessonBody is the scrollable part of the detail screen.
type lessonBody struct {
	content string
	// itemLines[i] is the first line of checklist item i within content.
	itemLines []int
}

// renderNodes draws renderer output with the theme's text styles, wrapping
// each node to width.
func renderNodes(nodes []render.Node, width int, t Theme) string {
	if width < 10 {
		width = 10
	}
	wrap := t.Renderer.NewStyle().Width(width)

	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case render.Heading1:
			lines = append(lines, t.Heading1.Width(width).Render(n.PlainText()))
		case render.Heading2:
			lines = append(lines, t.Heading2.Width(width).Render(n.PlainText()))
		case render.BoldParagraph:
			var sb strings.Builder
			for _, s := range n.Spans {
				if s.Bold {
					sb.WriteString(t.BoldText.Render(s.Text))
				} else {
					sb.WriteString(s.Text)
				}
			}
			lines = append(lines, wrap.Render(sb.String()))
		case render.Quote:
			lines = append(lines, t.QuoteText.Width(width-2).Render(n.PlainText()))
		case render.Spacer:
			lines = append(lines, "")
		default:
			lines = append(lines, wrap.Render(n.PlainText()))
		}
	}
	return strings.Join(lines, "\n")
}

// renderLessonBody lays out title, description, content, checklist and
// quick insight. cursor highlights a checklist item; -1 for none.
func renderLessonBody(lesson model.Lesson, entry model.ProgressEntry, cursor, width int, t Theme) lessonBody {
	var blocks []string
	lineCount := 0
	add := func(s string) {
		blocks = append(blocks, s)
		lineCount += strings.Count(s, "\n") + 1
	}

	status := t.MutedText.Render("[c] Mark Complete")
	if entry.Completed {
		status = t.CompleteText.Render("✓ Completed")
	}
	add(fmt.Sprintf("%s %s  %s", RenderStars(lesson.StarRating, t), RenderStarBadge(lesson.StarRating, t), status))
	add("")
	add(t.Heading1.Width(width).Render(lesson.Title))
	if d := strings.TrimSpace(lesson.Description); d != "" {
		add(t.MutedText.Width(width).Render(d))
	}
	add(RenderDivider(width))
	add(renderNodes(render.Render(lesson.Content), width, t))

	body := lessonBody{}
	if n := len(lesson.ImplementationChecklist); n > 0 {
		pct := analysis.ChecklistProgress(lesson, model.ProgressMap{lesson.ID: entry})
		add("")
		add(RenderDivider(width))
		add(t.Heading2.Render("Implementation Checklist"))
		add(RenderProgressBar(pct, min(20, width-6), t) + t.MutedText.Render(fmt.Sprintf("  %d of %d", entry.CheckedCount(n), n)))
		add("")

		itemWidth := width - 6
		if itemWidth < 10 {
			itemWidth = 10
		}
		body.itemLines = make([]int, n)
		for i, item := range lesson.ImplementationChecklist {
			marker := "  "
			textStyle := t.Base
			if i == cursor {
				marker = t.PrimaryBold.Render("▸ ")
				textStyle = t.PrimaryBold
			}
			if entry.Checked(i) {
				textStyle = textStyle.Strikethrough(true).Foreground(t.Subtext)
			}
			body.itemLines[i] = lineCount
			add(lipgloss.JoinHorizontal(lipgloss.Top,
				marker+RenderCheckbox(entry.Checked(i), t)+" ",
				textStyle.Width(itemWidth).Render(item)))
		}
	}

	if q := strings.TrimSpace(lesson.QuickInsight); q != "" {
		add("")
		add(t.InsightBox.Width(width - 2).Render(t.StarText.Bold(true).Render("💡 Quick Insight") + "\n" + q))
	}

	body.content = strings.Join(blocks, "\n")
	return body
}

// navTitle formats a previous/next link title.
func navTitle(title string) string {
	return truncate(title, navTitleMax)
}
