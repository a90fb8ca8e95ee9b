package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game directly with the chosen difficulty.

Controls:
  W/A/S/D, Arrows  - Steer
  P/Space          - Pause
  R                - Restart (after game over)
  B/Esc            - Leave (when paused or after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Slower base speed
  normal  - Configured base speed
  hard    - Faster base speed
  fixed   - Configured base speed, never speeds up

Examples:
  snake3d play
  snake3d play --difficulty easy
  snake3d play --seed 42
  snake3d play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	snake, preset := loadGameConfig()
	config.ApplySnakePreset(&snake, preset)

	store := openStore()

	// The alternate screen owns the terminal, so logs are dropped.
	_, runErr := tui.Run(tui.GameOptions{
		Snake:   snake,
		Preset:  preset,
		Runtime: runtimeConfig(),
		Store:   store,
		Source:  "tui",
		Logger:  log.New(io.Discard),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
