package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/academy/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Progress
	Complete   lipgloss.AdaptiveColor
	Incomplete lipgloss.AdaptiveColor
	Danger     lipgloss.AdaptiveColor

	// Categories, 5 stars first
	Star  lipgloss.AdaptiveColor
	Stars [model.MaxStarRating + 1]lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Pre-computed delegate and detail styles, created once at startup
	// instead of per frame.
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	StarText      lipgloss.Style
	CompleteText  lipgloss.Style
	ErrorText     lipgloss.Style
	Heading1      lipgloss.Style
	Heading2      lipgloss.Style
	BoldText      lipgloss.Style
	QuoteText     lipgloss.Style
	InsightBox    lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Complete:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Incomplete: lipgloss.AdaptiveColor{Light: "#888888", Dark: "#44475A"},
		Danger:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},

		Star: lipgloss.AdaptiveColor{Light: "#B08800", Dark: "#F1FA8C"},
		Stars: [model.MaxStarRating + 1]lipgloss.AdaptiveColor{
			{Light: "#888888", Dark: "#6272A4"}, // unused
			{Light: "#555555", Dark: "#6272A4"}, // nice-to-have
			{Light: "#006080", Dark: "#8BE9FD"}, // supporting
			{Light: "#007700", Dark: "#50FA7B"}, // operational
			{Light: "#B06800", Dark: "#FFB86C"}, // high impact
			{Light: "#CC0000", Dark: "#FF5555"}, // non-optional
		},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.StarText = r.NewStyle().Foreground(t.Star)
	t.CompleteText = r.NewStyle().Foreground(t.Complete).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.Heading1 = r.NewStyle().Foreground(t.Primary).Bold(true).Underline(true)
	t.Heading2 = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.BoldText = r.NewStyle().Bold(true)
	t.QuoteText = r.NewStyle().
		Foreground(t.Subtext).
		Italic(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1)
	t.InsightBox = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Star).
		Padding(0, 1)

	return t
}

// CategoryColor returns the accent color for a star rating.
func (t Theme) CategoryColor(r model.StarRating) lipgloss.AdaptiveColor {
	if !r.Valid() {
		return t.Subtext
	}
	return t.Stars[r]
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
