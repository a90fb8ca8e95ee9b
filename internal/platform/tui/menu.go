package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one difficulty row.
type MenuItem struct {
	Preset      config.DifficultyPreset
	Description string
	Interval    time.Duration // base move interval with the preset applied
	HighScore   int
}

// MenuOptions configures the difficulty menu.
type MenuOptions struct {
	Store   *storage.Store // nil hides high scores
	Runtime core.RuntimeConfig
	Snake   config.SnakeConfig // base config the presets are applied to
	Initial config.DifficultyPreset
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel builds the menu with the cursor on opts.Initial.
func NewMenuModel(opts MenuOptions) MenuModel {
	m := MenuModel{
		config:    opts.Runtime,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}

	for i, p := range config.Presets() {
		cfg := opts.Snake
		config.ApplySnakePreset(&cfg, p)

		item := MenuItem{
			Preset:      p,
			Description: p.Description(),
			Interval:    cfg.BaseInterval(),
		}
		if opts.Store != nil {
			if high, err := opts.Store.HighScore(string(p)); err == nil {
				item.HighScore = high
			}
		}
		if p == opts.Initial {
			m.cursor = i
		}
		m.items = append(m.items, item)
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu. Leaving the menu in any way ends
// its program with tea.Quit; the caller inspects the result.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case MenuActionSelect:
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S N A K E   3 D"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Select difficulty"), width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%-7s %5dms  %s", item.Preset, item.Interval.Milliseconds(), item.Description)
		if item.HighScore > 0 {
			line += fmt.Sprintf("  (best %d)", item.HighScore)
		}
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keyMapper.Menu), width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen item, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by any resize.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to the middle of width, measuring printable cells
// so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu as its own program and reports the choice.
func RunMenu(opts MenuOptions) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(opts), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: opts.Runtime}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: opts.Runtime, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Preset = m.Selected().Preset
	default:
		result.Quit = true
	}
	return result, nil
}
