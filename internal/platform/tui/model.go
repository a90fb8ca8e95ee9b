package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/game"
	"github.com/vovakirdan/snake3d/internal/render"
	"github.com/vovakirdan/snake3d/internal/storage"
)

// GameOptions configures a game screen.
type GameOptions struct {
	Snake   config.SnakeConfig // preset already applied
	Preset  config.DifficultyPreset
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables score saving
	Source  string         // recorded with saved runs: "tui" or "ssh"
	Logger  *log.Logger

	// ExitOnBack ends the Bubble Tea program when the player goes back to
	// the menu. Used when the menu runs as a separate program.
	ExitOnBack bool
}

// GameModel is the Bubble Tea model for one game screen. It feeds key
// presses and frame ticks into a game.Session and draws the board.
type GameModel struct {
	session    *game.Session
	board      *render.Board
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	preset     config.DifficultyPreset
	source     string
	highScore  int
	exitOnBack bool
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run has been saved
}

// NewGameModel creates a game screen with a fresh session.
func NewGameModel(opts GameOptions) GameModel {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	board := render.NewBoard(opts.Snake.Grid.Size)
	session := game.NewSession(game.Options{
		Config:   opts.Snake,
		Seed:     cfg.Seed,
		Renderer: board,
		Logger:   logger,
	})

	m := GameModel{
		session:    session,
		board:      board,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		preset:     opts.Preset,
		source:     opts.Source,
		exitOnBack: opts.ExitOnBack,
		keyMapper:  NewKeyMapper(),
	}
	if m.store != nil {
		if high, err := m.store.HighScore(string(m.preset)); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board has a fixed size, so only the screen buffer changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Game.Snapshot) {
		if path, err := m.writeSnapshot(); err != nil {
			m.logger.Warn("snapshot failed", "error", err)
		} else {
			m.logger.Info("snapshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		// Back to menu (B or Esc when game over or paused)
		status := m.session.Status()
		if status == game.StatusGameOver || status == game.StatusPaused {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil

	case core.ActionRestart:
		if m.session.Restart() {
			m.scoreSaved = false
		}
		return m, nil
	}

	m.session.HandleAction(action)
	return m, nil
}

// handleTick advances the session to the frame time.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.session.OnFrame(now)

	// Save score on game over (once)
	if m.session.Status() == game.StatusGameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.FrameInterval())
}

// saveScore records the finished run. Best effort: the game continues
// without storage.
func (m *GameModel) saveScore() {
	st := m.session.State()
	if st.Score > m.highScore {
		m.highScore = st.Score
	}
	if m.store == nil || st.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.RunRecord{
		Preset: string(m.preset),
		Score:  st.Score,
		Length: st.Length,
		Reason: st.Reason.String(),
		Source: m.source,
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// writeSnapshot dumps the current board as plain text under
// ~/.snake3d/screenshots and returns the file path.
func (m *GameModel) writeSnapshot() (string, error) {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: snapshot: %w", err)
	}
	dir := filepath.Join(home, ".snake3d", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: snapshot: %w", err)
	}

	name := fmt.Sprintf("snake3d_%s_%s_score%d.txt", m.preset, time.Now().Format("20060102_150405"), m.session.Score())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("tui: snapshot: %w", err)
	}
	return path, nil
}

func (m *GameModel) draw() {
	m.board.Draw(m.screen, render.HUD{
		Title:     fmt.Sprintf("Snake 3D [%s]", m.preset),
		Speed:     m.session.SpeedMultiplier(),
		HighScore: m.highScore,
	})
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen)
}

// Session exposes the running session.
func (m GameModel) Session() *game.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone game program. It reports whether the player
// asked to go back to the menu rather than quit.
func Run(opts GameOptions) (backToMenu bool, err error) {
	opts.ExitOnBack = true
	model := NewGameModel(opts)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}
