package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/model"
)

// QuickInsights are the fixed course takeaways shown under the category
// breakdown.
var QuickInsights = []string{
	"Confused mind doesn't buy - simplify your offerings",
	"76% of patients become lifetime patients after 3rd visit",
	"Monthly recurring revenue creates 2-3x valuation multipliers",
}

// renderSidebar draws the category breakdown, marking the active filter,
// followed by the quick insights.
func renderSidebar(lessons []model.Lesson, progress model.ProgressMap, active model.StarRating, width, height int, t Theme) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var sb strings.Builder
	sb.WriteString(t.PrimaryBold.Render("Categories"))
	sb.WriteString("\n\n")

	for _, row := range analysis.CategoryBreakdown(lessons, progress) {
		marker := "  "
		label := t.Renderer.NewStyle().Foreground(t.CategoryColor(row.Rating))
		if row.Rating == active {
			marker = t.PrimaryBold.Render("▸ ")
			label = label.Bold(true)
		}
		sb.WriteString(marker)
		sb.WriteString(RenderStars(row.Rating, t))
		sb.WriteString(" ")
		sb.WriteString(label.Render(truncateRunesHelper(row.Label, inner-9, "…")))
		sb.WriteString("\n  ")
		sb.WriteString(RenderProgressBar(row.Percent, inner-12, t))
		sb.WriteString(t.MutedText.Render(fmt.Sprintf(" %d/%d", row.Completed, row.Lessons)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(t.PrimaryBold.Render("Quick Insights"))
	sb.WriteString("\n")
	for _, insight := range QuickInsights {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			t.StarText.Render("💡 "),
			t.Renderer.NewStyle().Foreground(t.Subtext).Width(inner-3).Render(insight)))
		sb.WriteString("\n")
	}

	panelHeight := height - 2
	if panelHeight < 1 {
		panelHeight = 1
	}
	return PanelStyle.
		Width(width-2).
		Height(panelHeight).
		Padding(0, 1).
		Render(strings.TrimRight(sb.String(), "\n"))
}
