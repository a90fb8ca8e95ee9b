package core

import (
	"strings"
	"testing"
)

func blankRows(s *Screen) bool {
	for y := range s.Height() {
		if strings.TrimSpace(s.Row(y)) != "" {
			return false
		}
	}
	return true
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(40, 12)
	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("size = %dx%d, expected 40x12", s.Width(), s.Height())
	}
	if !blankRows(s) {
		t.Error("new screen is not blank")
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.SetColored(p[0], p[1], '#', ColorFood)
		if got := s.GetCell(p[0], p[1]); got != blank {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], got)
		}
	}
	if !blankRows(s) {
		t.Error("out-of-bounds writes changed the screen")
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Screen)
		rows []string
	}{
		{
			name: "text clipped at the edge",
			draw: func(s *Screen) { s.DrawText(4, 0, "snake") },
			rows: []string{"    sna", "       ", "       "},
		},
		{
			name: "centered text",
			draw: func(s *Screen) { s.DrawTextCentered(1, "go", ColorHUD) },
			rows: []string{"       ", "  go   ", "       "},
		},
		{
			name: "filled rect",
			draw: func(s *Screen) { s.DrawRect(NewRect(1, 1, 2, 2), '.') },
			rows: []string{"       ", " ..    ", " ..    "},
		},
		{
			name: "box",
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 4, 3), ColorGrid) },
			rows: []string{"┌──┐   ", "│  │   ", "└──┘   "},
		},
		{
			name: "horizontal line",
			draw: func(s *Screen) { s.DrawHLine(2, 2, 3, '=', ColorGrid) },
			rows: []string{"       ", "       ", "  ===  "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(7, 3)
			tc.draw(s)
			if got, want := s.String(), strings.Join(tc.rows, "\n"); got != want {
				t.Errorf("screen =\n%s\nexpected\n%s", got, want)
			}
		})
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '@', ColorSnakeHead)
	s.DrawTextColored(3, 1, "ab", ColorFood)
	s.Set(6, 1, 'x')

	tests := []struct {
		x    int
		want Cell
	}{
		{1, Cell{'@', ColorSnakeHead}},
		{4, Cell{'b', ColorFood}},
		{6, Cell{'x', ColorDefault}},
	}
	for _, tc := range tests {
		if got := s.GetCell(tc.x, 1); got != tc.want {
			t.Errorf("GetCell(%d, 1) = %+v, expected %+v", tc.x, got, tc.want)
		}
	}

	s.Clear()
	if !blankRows(s) || s.GetCell(1, 1) != blank {
		t.Error("Clear left content behind")
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "head")
	s.DrawText(0, 8, "tail")

	s.Resize(6, 4)
	if s.Width() != 6 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 6x4", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "head  " {
		t.Errorf("Row(0) = %q after shrink", got)
	}

	s.Resize(12, 9)
	if got := s.Row(0); !strings.HasPrefix(got, "head") || len(got) != 12 {
		t.Errorf("Row(0) = %q after grow", got)
	}
	if got := strings.TrimSpace(s.Row(8)); got != "" {
		t.Errorf("Row(8) = %q, rows cut by the shrink should stay blank", got)
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(5, 2)
	if got := s.Row(-1); got != "     " {
		t.Errorf("Row(-1) = %q, expected 5 spaces", got)
	}
	if got := s.Row(2); got != "     " {
		t.Errorf("Row(2) = %q, expected 5 spaces", got)
	}
}
