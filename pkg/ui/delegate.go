package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LessonDelegate renders lesson items in the list
type LessonDelegate struct {
	Theme Theme
}

func (d LessonDelegate) Height() int {
	return 1
}

func (d LessonDelegate) Spacing() int {
	return 0
}

func (d LessonDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render draws one row:
// [sel] [done] [stars] [badge] [title...] [checklist]
func (d LessonDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(LessonItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	isSelected := index == m.Index()

	var rightSide string
	if checked, total := i.ChecklistCounts(); total > 0 && width > 50 {
		style := t.MutedText
		if checked == total {
			style = t.CompleteText
		}
		rightSide = style.Render(fmt.Sprintf("☑ %d/%d", checked, total))
	}

	var leftSide strings.Builder
	if isSelected {
		leftSide.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		leftSide.WriteString("  ")
	}
	leftSide.WriteString(RenderCheckbox(i.Entry.Completed, t))
	leftSide.WriteString(" ")
	leftSide.WriteString(RenderStars(i.Lesson.StarRating, t))
	leftSide.WriteString(" ")
	if width > 70 {
		leftSide.WriteString(RenderStarBadge(i.Lesson.StarRating, t))
		leftSide.WriteString(" ")
	}

	titleWidth := width - lipgloss.Width(leftSide.String()) - lipgloss.Width(rightSide) - 1
	if titleWidth < 5 {
		titleWidth = 5
	}
	title := padRight(truncateRunesHelper(i.Lesson.Title, titleWidth, "…"), titleWidth)

	titleStyle := t.Renderer.NewStyle()
	switch {
	case isSelected:
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	case i.Entry.Completed:
		titleStyle = titleStyle.Foreground(t.Subtext)
	default:
		titleStyle = titleStyle.Foreground(ColorText)
	}
	leftSide.WriteString(titleStyle.Render(title))

	padding := width - lipgloss.Width(leftSide.String()) - lipgloss.Width(rightSide)
	if padding < 0 {
		padding = 0
	}
	row := leftSide.String() + strings.Repeat(" ", padding) + rightSide

	rowStyle := t.Renderer.NewStyle().Width(width).MaxWidth(width)
	if isSelected {
		row = rowStyle.Background(t.Highlight).Render(row)
	} else {
		row = rowStyle.Render(row)
	}

	fmt.Fprint(w, row)
}
