// Package game implements the snake session: direction buffering, the
// frame-driven tick clock, collisions, scoring and speed scaling. It talks
// to the outside world only through a Renderer.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/grid"
)

// Status is the lifecycle state of the current run.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Reason explains why a run ended.
type Reason int

const (
	ReasonNone      Reason = iota
	ReasonWall             // head left the board
	ReasonSelf             // head ran into the body
	ReasonBoardFull        // no free cell left for food
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWall:
		return "wall"
	case ReasonSelf:
		return "self"
	case ReasonBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// State is a read-only view of the score panel values.
type State struct {
	Score           int
	SpeedMultiplier float64
	Paused          bool
	Over            bool
	Reason          Reason
	Length          int
}

// Options configures a Session.
type Options struct {
	Config   config.SnakeConfig
	Seed     int64
	Renderer Renderer    // nil means NopRenderer
	Logger   *log.Logger // nil discards
}

// Session runs consecutive snake games on one board. It is not safe for
// concurrent use; callers serialize input and frames.
type Session struct {
	cfg      config.SnakeConfig
	speed    config.SpeedSchedule
	rng      *rand.Rand
	renderer Renderer
	logger   *log.Logger

	run *run
	// runs counts started runs, including the current one.
	runs int
}

// run is the state of a single game from spawn to game over. Restart
// replaces it wholesale.
type run struct {
	grid       *grid.Model
	direction  grid.Direction
	pending    grid.Direction
	score      int
	speedLevel int
	foodEaten  int
	ticks      uint64
	status     Status
	reason     Reason

	lastMove time.Time
	armed    bool // lastMove holds a real frame time
}

// NewSession creates a session, starts the first run and draws it.
func NewSession(opts Options) *Session {
	r := opts.Renderer
	if r == nil {
		r = NopRenderer{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:      opts.Config,
		speed:    config.NewSpeedSchedule(opts.Config),
		rng:      rand.New(rand.NewSource(opts.Seed)), //#nosec G404 -- game RNG, not crypto
		renderer: r,
		logger:   logger,
	}
	s.startRun()
	return s
}

// startRun builds a fresh run and pushes its initial picture to the renderer.
func (s *Session) startRun() {
	g := grid.New(s.cfg.Grid.Size, s.cfg.Grid.InitialLength)
	s.run = &run{
		grid:      g,
		direction: grid.PosX,
		pending:   grid.PosX,
		status:    StatusRunning,
	}
	s.runs++

	segs := g.Segments()
	for i := len(segs) - 1; i >= 0; i-- {
		s.renderer.PlaceSegment(segs[i], i == 0)
	}
	s.renderer.SetScoreDisplay(0)

	food, err := g.PlaceFood(s.rng)
	if err != nil {
		s.endRun(ReasonBoardFull)
		return
	}
	s.renderer.PlaceFood(food)

	s.logger.Debug("run started", "run", s.runs, "grid", s.cfg.Grid.Size, "head", g.Head())
}

// OnFrame is the per-frame entry point. It advances the snake by at most
// one cell when more than the current move interval has passed since the
// last move, and reports whether a move was attempted. The first frame of a
// run, and the first after a resume, only starts the clock.
func (s *Session) OnFrame(now time.Time) bool {
	r := s.run
	if r.status != StatusRunning {
		return false
	}
	if !r.armed {
		r.lastMove = now
		r.armed = true
		return false
	}
	if now.Sub(r.lastMove) <= s.Interval() {
		return false
	}
	s.tick(now)
	return true
}

func (s *Session) tick(now time.Time) {
	r := s.run
	r.direction = r.pending
	r.lastMove = now

	head := r.grid.Head()
	next := head.Add(r.direction)
	if !r.grid.InBounds(next) {
		s.endRun(ReasonWall)
		return
	}

	grow := next == r.grid.Food()
	if r.grid.Collides(next, grow) {
		s.endRun(ReasonSelf)
		return
	}

	res := r.grid.Advance(r.direction, grow)
	r.ticks++

	// Tail first so a head entering the vacated cell is not erased.
	if res.RemovedTail != nil {
		s.renderer.RemoveSegment(*res.RemovedTail)
	}
	if r.grid.Len() > 1 {
		s.renderer.PlaceSegment(head, false)
	}
	s.renderer.PlaceSegment(res.NewHead, true)

	if grow {
		s.eat()
	}
}

func (s *Session) eat() {
	r := s.run
	r.foodEaten++
	r.score += s.cfg.Scoring.PointsPerFood
	s.renderer.SetScoreDisplay(r.score)

	if s.speed.Crossed(r.score) {
		r.speedLevel++
		s.logger.Debug("speed increased", "multiplier", s.speed.Multiplier(r.speedLevel), "score", r.score)
	}

	s.renderer.RemoveFood()
	food, err := r.grid.PlaceFood(s.rng)
	if err != nil {
		s.endRun(ReasonBoardFull)
		return
	}
	s.renderer.PlaceFood(food)
}

func (s *Session) endRun(reason Reason) {
	r := s.run
	r.status = StatusGameOver
	r.reason = reason
	s.renderer.SetGameOverVisible(true, r.score)
	s.logger.Info("game over", "score", r.score, "length", r.grid.Len(), "reason", reason)
}

// RequestDirection buffers d for the next tick. Requests are ignored while
// paused or over, and rejected when d reverses the committed direction.
// It reports whether the pending direction changed.
func (s *Session) RequestDirection(d grid.Direction) bool {
	r := s.run
	if r.status != StatusRunning {
		return false
	}
	if d == r.direction.Reverse() {
		return false
	}
	if d == r.pending {
		return false
	}
	r.pending = d
	return true
}

// TogglePause switches between running and paused. It does nothing once
// the run is over. Resuming restarts the clock so the snake waits a full
// interval before moving again.
func (s *Session) TogglePause() {
	r := s.run
	switch r.status {
	case StatusRunning:
		r.status = StatusPaused
		s.renderer.SetPauseVisible(true)
	case StatusPaused:
		r.status = StatusRunning
		r.armed = false
		s.renderer.SetPauseVisible(false)
	}
}

// Restart begins a fresh run after game over. It reports whether a new
// run was started; calls in any other state are ignored.
func (s *Session) Restart() bool {
	if s.run.status != StatusGameOver {
		return false
	}

	for _, c := range s.run.grid.Segments() {
		s.renderer.RemoveSegment(c)
	}
	s.renderer.RemoveFood()
	s.renderer.SetGameOverVisible(false, 0)

	s.startRun()
	return true
}

// actionDirections maps steering actions onto the board: Up and Down move
// along Z, Left and Right along X.
var actionDirections = map[core.Action]grid.Direction{
	core.ActionUp:    grid.NegZ,
	core.ActionDown:  grid.PosZ,
	core.ActionLeft:  grid.NegX,
	core.ActionRight: grid.PosX,
}

// HandleAction maps a platform action onto the session.
func (s *Session) HandleAction(a core.Action) {
	if a.IsMove() {
		s.RequestDirection(actionDirections[a])
		return
	}
	switch a {
	case core.ActionPause:
		s.TogglePause()
	case core.ActionRestart:
		s.Restart()
	}
}

// State returns the current score panel values.
func (s *Session) State() State {
	r := s.run
	return State{
		Score:           r.score,
		SpeedMultiplier: s.SpeedMultiplier(),
		Paused:          r.status == StatusPaused,
		Over:            r.status == StatusGameOver,
		Reason:          r.reason,
		Length:          r.grid.Len(),
	}
}

// Status returns the lifecycle state of the current run.
func (s *Session) Status() Status {
	return s.run.status
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.run.score
}

// Snake returns a copy of the snake, head first.
func (s *Session) Snake() []grid.Cell {
	return s.run.grid.Segments()
}

// Food returns the current food cell.
func (s *Session) Food() grid.Cell {
	return s.run.grid.Food()
}

// Direction returns the committed direction.
func (s *Session) Direction() grid.Direction {
	return s.run.direction
}

// Pending returns the direction the next tick will use.
func (s *Session) Pending() grid.Direction {
	return s.run.pending
}

// SpeedMultiplier returns the current speed multiplier.
func (s *Session) SpeedMultiplier() float64 {
	return s.speed.Multiplier(s.run.speedLevel)
}

// Interval returns the minimum time between moves at the current speed.
func (s *Session) Interval() time.Duration {
	return s.speed.Interval(s.run.speedLevel)
}

// GridSize returns the side length of the board.
func (s *Session) GridSize() int {
	return s.cfg.Grid.Size
}

// Runs returns how many runs this session has started.
func (s *Session) Runs() int {
	return s.runs
}
