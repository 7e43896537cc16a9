// Package theme holds the terminal color palette.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme maps UI roles to colors. Gains use Success, losses Error and open
// positions Info.
type Theme struct {
	Surface lipgloss.Color // dialogs and cards
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Default is the CharmTone dark palette.
var Default = Theme{
	Surface: "#2D2C35",
	Border:  "#4D4C57",
	Muted:   "#858392",
	Text:    "#DFDBDD",
	Subtext: "#BFBCC8",
	Primary: "#6B50FF",
	Accent:  "#FF60FF",
	Success: "#00FFB2",
	Warning: "#FFD300",
	Error:   "#E94090",
	Info:    "#00CED1",
}

// GradientText colors each line of text from one end color to the other,
// one rune at a time.
func GradientText(text string, from, to lipgloss.Color) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		runes := []rune(line)
		var b strings.Builder
		for j, r := range runes {
			pos := 0.0
			if len(runes) > 1 {
				pos = float64(j) / float64(len(runes)-1)
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(blend(from, to, pos)))
			b.WriteString(style.Render(string(r)))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// blend mixes two hex colors in RGB space. An unparsable color reads as black.
func blend(from, to lipgloss.Color, pos float64) string {
	a, _ := colorful.Hex(string(from))
	b, _ := colorful.Hex(string(to))
	return a.BlendRgb(b, pos).Clamped().Hex()
}
