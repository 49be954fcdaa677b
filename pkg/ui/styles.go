package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/academy/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// Layout thresholds.
const (
	// SidebarThreshold is the minimum width at which the category sidebar
	// fits next to the lesson list.
	SidebarThreshold = 100
	SidebarWidth     = 34
)

var (
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary     = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSuccess     = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}

	// Badge backgrounds, by star rating
	ColorStarBadgeBg = [model.MaxStarRating + 1]lipgloss.AdaptiveColor{
		{Light: "#E2E3E5", Dark: "#2A2A3D"},
		{Light: "#E2E3E5", Dark: "#2A2A3D"},
		{Light: "#D1ECF1", Dark: "#1A3344"},
		{Light: "#D4EDDA", Dark: "#1A3D2A"},
		{Light: "#FFE8CC", Dark: "#3D2A1A"},
		{Light: "#F8D7DA", Dark: "#3D1A1A"},
	}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderStarBadge returns the colored category tag for a lesson, e.g.
// "NON-OPTIONAL" or "3-Star".
func RenderStarBadge(r model.StarRating, t Theme) string {
	bg := ColorBgSubtle
	if r.Valid() {
		bg = ColorStarBadgeBg[r]
	}
	return t.Renderer.NewStyle().
		Foreground(t.CategoryColor(r)).
		Background(bg).
		Bold(r == model.MaxStarRating).
		Padding(0, 1).
		Render(r.Badge())
}

// RenderStars renders the star glyphs for r in the star color.
func RenderStars(r model.StarRating, t Theme) string {
	return t.StarText.Render(r.Stars())
}

// RenderCheckbox renders a checklist or completion box.
func RenderCheckbox(checked bool, t Theme) string {
	if checked {
		return t.CompleteText.Render("[✓]")
	}
	return t.MutedText.Render("[ ]")
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderProgressBar renders a horizontal bar for a 0-100 percentage
// followed by the number.
func RenderProgressBar(percent, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100

	barColor := t.Secondary
	switch {
	case percent == 100:
		barColor = t.Complete
	case percent >= 50:
		barColor = t.Primary
	case percent > 0:
		barColor = t.Star
	}

	bar := t.Renderer.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled)) +
		t.Renderer.NewStyle().Foreground(t.Incomplete).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
