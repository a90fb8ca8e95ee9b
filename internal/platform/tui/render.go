package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake3d/internal/core"
)

// paletteStyles is indexed by core.Color; unknown colors render unstyled.
var paletteStyles = [...]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(paletteStyles) {
		return paletteStyles[c]
	}
	return paletteStyles[core.ColorDefault]
}

// RenderScreen turns the screen buffer into terminal output. Each row is
// split into same-color spans so a span costs one escape sequence.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	span := make([]rune, 0, s.Width())

	for y := range rows {
		var line strings.Builder
		span = span[:0]
		color := s.GetCell(0, y).Color

		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				line.WriteString(styleFor(color).Render(string(span)))
				span, color = span[:0], cell.Color
			}
			span = append(span, cell.Rune)
		}
		if len(span) > 0 {
			line.WriteString(styleFor(color).Render(string(span)))
		}
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}
