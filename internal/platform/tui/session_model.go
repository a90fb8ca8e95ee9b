package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/storage"
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Snake   config.SnakeConfig // base config; the chosen preset is applied per game
	Preset  config.DifficultyPreset
	User    string
	Logger  *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel runs menu, scoreboard and game inside one program, which is
// what an SSH connection needs. The child models end their own programs
// with tea.Quit; here that only switches screens.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	preset   config.DifficultyPreset
	screen   sessionScreen
	quitting bool

	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel
}

// NewSessionModel starts a session on the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := SessionModel{opts: opts, config: opts.Runtime, preset: opts.Preset}
	return m.toMenu()
}

// toMenu rebuilds the menu so its high scores include the latest runs.
func (m SessionModel) toMenu() SessionModel {
	m.screen = screenMenu
	m.scoreboard, m.gameModel = nil, nil
	m.menu = NewMenuModel(MenuOptions{
		Store:   m.opts.Store,
		Runtime: m.config,
		Snake:   m.opts.Snake,
		Initial: m.preset,
	})
	return m
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.preset)
		m.scoreboard, m.screen = &sb, screenScores
		return m, sb.Init()

	case m.menu.Selected() != nil:
		m.preset = m.menu.Selected().Preset
		m.config = m.menu.Config()

		snake := m.opts.Snake
		config.ApplySnakePreset(&snake, m.preset)
		rt := m.config
		rt.Seed = time.Now().UnixNano()

		gm := NewGameModel(GameOptions{
			Snake:   snake,
			Preset:  m.preset,
			Runtime: rt,
			Store:   m.opts.Store,
			Source:  "ssh",
			Logger:  m.opts.Logger,
		})
		m.gameModel, m.screen = &gm, screenGame
		m.opts.Logger.Info("game started", "preset", m.preset)
		return m, gm.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb := next.(ScoreboardModel)
	m.scoreboard = &sb

	switch {
	case sb.IsQuitting():
		return m.quit()
	case sb.IsGoingBack():
		m = m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(GameModel)
	m.gameModel = &gm

	switch {
	case gm.BackToMenu():
		m.opts.Logger.Info("game left", "preset", m.preset, "score", gm.Session().Score())
		m = m.toMenu()
		return m, m.menu.Init()
	case gm.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
