// Package styles holds the viewer palette and pre-built lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles of the viewer.
type Theme struct {
	// Accent colors, also the ends of the title gradient
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Bars
	BgBar lipgloss.Color

	// Status colors
	Playing lipgloss.Color // Slideshow running
	Error   lipgloss.Color // Slide failed to load

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the viewer chrome.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style
	Subtle      lipgloss.Style
	Bar         lipgloss.Style // Header and footer background
	Counter     lipgloss.Style // "3/12"
	Arrow       lipgloss.Style // Previous/next buttons
	Playing     lipgloss.Style
	Placeholder lipgloss.Style // Loading and empty slides
	Error       lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBar: lipgloss.Color("#1a1a1a"),

	Playing: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Bar:     lipgloss.NewStyle().Background(t.BgBar),
		Counter: lipgloss.NewStyle().Foreground(t.FgMuted).Bold(true),
		Arrow: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Playing:     lipgloss.NewStyle().Foreground(t.Playing).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(t.FgSubtle).Italic(true),
		Error:       lipgloss.NewStyle().Foreground(t.Error),
	}
}

// Title renders a slide title with the theme's accent gradient.
func (t *Theme) Title(text string) string {
	return ApplyBoldGradient(text, t.Primary, t.Secondary)
}
