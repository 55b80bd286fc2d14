package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type theme struct {
	Card     lipgloss.Style
	Question lipgloss.Style
	Answer   lipgloss.Style
	Gloss    lipgloss.Style
	Badge    lipgloss.Style
	Counter  lipgloss.Style
	Button   lipgloss.Style
	Active   lipgloss.Style
	Disabled lipgloss.Style
	Track    lipgloss.Style

	progress []lipgloss.Color
}

const (
	gradientFrom = "#5A56E0"
	gradientTo   = "#EE6FF8"
)

func defaultTheme(barWidth int) theme {
	subtle := lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}

	return theme{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center),
		Question: lipgloss.NewStyle().Bold(true),
		Answer:   lipgloss.NewStyle().Foreground(accent),
		Gloss:    lipgloss.NewStyle().Faint(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(accent).
			Padding(0, 1),
		Counter:  lipgloss.NewStyle().Faint(true),
		Button:   lipgloss.NewStyle().Padding(0, 1).Background(subtle),
		Active:   lipgloss.NewStyle().Padding(0, 1).Background(accent).Foreground(lipgloss.Color("#FFFDF5")),
		Disabled: lipgloss.NewStyle().Padding(0, 1).Faint(true).Strikethrough(true),
		Track:    lipgloss.NewStyle().Foreground(subtle),
		progress: gradient(gradientFrom, gradientTo, barWidth),
	}
}

// gradient returns n colours blended from one hex colour to another.
func gradient(from, to string, n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	a, err := colorful.Hex(from)
	if err != nil {
		return nil
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return nil
	}

	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(a.BlendLab(b, t).Hex())
	}
	return out
}
