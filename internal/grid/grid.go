// Package grid holds the snake's geometry on a bounded square board: the
// ordered segment list, the food cell, and occupancy queries. It knows
// nothing about timing, scoring or rendering.
package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoSpaceAvailable is returned when food cannot be placed because the
// snake covers every cell of the board.
var ErrNoSpaceAvailable = errors.New("grid: no space available")

// Cell is an integer coordinate on the board. The board lies in the x/z
// plane; renderers lift it into 3D.
type Cell struct {
	X, Z int
}

// Add returns the cell one step away in direction d.
func (c Cell) Add(d Direction) Cell {
	dx, dz := d.Delta()
	return Cell{X: c.X + dx, Z: c.Z + dz}
}

// Direction is one of the four axis-aligned unit moves.
type Direction int

const (
	PosX Direction = iota
	NegX
	PosZ
	NegZ
)

// Delta returns the unit vector for the direction.
func (d Direction) Delta() (dx, dz int) {
	switch d {
	case PosX:
		return 1, 0
	case NegX:
		return -1, 0
	case PosZ:
		return 0, 1
	case NegZ:
		return 0, -1
	}
	return 0, 0
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case PosX:
		return NegX
	case NegX:
		return PosX
	case PosZ:
		return NegZ
	default:
		return PosZ
	}
}

func (d Direction) String() string {
	switch d {
	case PosX:
		return "+x"
	case NegX:
		return "-x"
	case PosZ:
		return "+z"
	case NegZ:
		return "-z"
	default:
		return "unknown"
	}
}

// ParseDirection converts "+x", "-x", "+z" or "-z" into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "+x", "x":
		return PosX, true
	case "-x":
		return NegX, true
	case "+z", "z":
		return PosZ, true
	case "-z":
		return NegZ, true
	}
	return 0, false
}

// AdvanceResult describes what changed in one Advance call.
type AdvanceResult struct {
	NewHead     Cell
	RemovedTail *Cell // nil when the snake grew
}

// Model is the snake and food state for one run.
type Model struct {
	size  int
	snake []Cell // head at index 0
	food  Cell
}

// New builds a board of the given size with a straight snake of
// initialLength cells whose head sits at (size/4, size/2), facing +X.
func New(size, initialLength int) *Model {
	if initialLength < 1 {
		initialLength = 1
	}
	startX := size / 4
	startZ := size / 2

	snake := make([]Cell, 0, initialLength)
	for i := range initialLength {
		snake = append(snake, Cell{X: startX - i, Z: startZ})
	}

	return &Model{
		size:  size,
		snake: snake,
		food:  Cell{X: -1, Z: -1},
	}
}

// Size returns the side length of the board.
func (m *Model) Size() int {
	return m.size
}

// Len returns the number of snake segments.
func (m *Model) Len() int {
	return len(m.snake)
}

// Head returns the first segment.
func (m *Model) Head() Cell {
	return m.snake[0]
}

// Tail returns the last segment.
func (m *Model) Tail() Cell {
	return m.snake[len(m.snake)-1]
}

// Segments returns a copy of the snake, head first.
func (m *Model) Segments() []Cell {
	out := make([]Cell, len(m.snake))
	copy(out, m.snake)
	return out
}

// Food returns the current food cell, or (-1,-1) before the first placement.
func (m *Model) Food() Cell {
	return m.food
}

// InBounds reports whether c lies on the board.
func (m *Model) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < m.size && c.Z >= 0 && c.Z < m.size
}

// IsOccupied reports whether any snake segment is on c.
func (m *Model) IsOccupied(c Cell) bool {
	for _, seg := range m.snake {
		if seg == c {
			return true
		}
	}
	return false
}

// Collides reports whether moving the head onto c would hit the body.
// When the snake is not growing its tail leaves this tick, so the tail
// cell is not an obstacle.
func (m *Model) Collides(c Cell, grow bool) bool {
	checkLen := len(m.snake)
	if !grow {
		checkLen--
	}
	for i := range checkLen {
		if m.snake[i] == c {
			return true
		}
	}
	return false
}

// PlaceFood picks a random free cell and makes it the food cell.
// Sampling is capped at size² draws; after that the free cells are
// enumerated and one is chosen uniformly.
func (m *Model) PlaceFood(rng *rand.Rand) (Cell, error) {
	for range m.size * m.size {
		c := Cell{X: rng.Intn(m.size), Z: rng.Intn(m.size)}
		if !m.IsOccupied(c) {
			m.food = c
			return c, nil
		}
	}

	free := m.freeCells()
	if len(free) == 0 {
		m.food = Cell{X: -1, Z: -1}
		return m.food, ErrNoSpaceAvailable
	}
	m.food = free[rng.Intn(len(free))]
	return m.food, nil
}

// SetFood puts the food on a specific free cell. Used for replays and tests.
func (m *Model) SetFood(c Cell) error {
	if !m.InBounds(c) {
		return fmt.Errorf("grid: food cell %v out of bounds", c)
	}
	if m.IsOccupied(c) {
		return fmt.Errorf("grid: food cell %v is occupied", c)
	}
	m.food = c
	return nil
}

func (m *Model) freeCells() []Cell {
	occupied := make(map[Cell]bool, len(m.snake))
	for _, seg := range m.snake {
		occupied[seg] = true
	}
	free := make([]Cell, 0, m.size*m.size-len(occupied))
	for z := range m.size {
		for x := range m.size {
			c := Cell{X: x, Z: z}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	return free
}

// Advance moves the head one cell in direction d. The tail is dropped and
// returned unless grew is set. Bounds and collisions are the caller's
// concern and must be checked before calling.
func (m *Model) Advance(d Direction, grew bool) AdvanceResult {
	newHead := m.snake[0].Add(d)
	m.snake = append([]Cell{newHead}, m.snake...)

	res := AdvanceResult{NewHead: newHead}
	if !grew {
		tail := m.snake[len(m.snake)-1]
		m.snake = m.snake[:len(m.snake)-1]
		res.RemovedTail = &tail
	}
	return res
}
