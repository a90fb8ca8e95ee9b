package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake3d/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(1, 0, "SCORE", core.ColorHUD)
	s.SetColored(4, 1, '@', core.ColorSnakeHead)
	s.SetColored(5, 1, 'o', core.ColorSnakeBody)
	s.SetColored(9, 2, '*', core.ColorFood)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderScreen produced %d lines, expected 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d width = %d, expected 12", i, w)
		}
	}
	for _, want := range []string{"SCORE", "@", "o", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output missing %q", want)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(200)).Render("x")
	if got != "x" {
		t.Errorf("styleFor(unknown).Render = %q, expected plain text", got)
	}
}
