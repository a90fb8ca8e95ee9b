// snake3d is a tick-based snake game on a square board, playable in the
// terminal, over SSH or from a browser over WebSocket.
//
// Usage:
//
//	snake3d play             - Play in this terminal
//	snake3d menu             - Pick a difficulty interactively
//	snake3d serve            - Start SSH server for remote play
//	snake3d web              - Start WebSocket server for browser play
//	snake3d scores [preset]  - Show high scores
//	snake3d presets          - List difficulty presets
//
// Global flags:
//
//	--fps <rate>           - Set frame rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible food placement
//	--db <path>            - Set database path (default: ~/.snake3d/scores.db)
//	--config <path>        - Load game config from a YAML file
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake3d",
	Short: "Snake 3D - grid snake for the terminal, SSH and the browser",
	Long: `Snake 3D is a tick-based snake game. The snake moves one cell per
tick, grows when it eats food and speeds up as the score climbs.

Available commands:
  play     - Play directly in this terminal
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser clients
  scores   - View high scores
  presets  - List difficulty presets

Examples:
  snake3d play
  snake3d play --difficulty hard
  snake3d menu
  snake3d serve --ssh :2222
  snake3d web --addr :8080
  snake3d scores normal`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake3d/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
}

// fail prints the error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadGameConfig reads the base config and the requested preset. The
// preset is not applied yet; callers that let the player pick one apply
// it later.
func loadGameConfig() (config.SnakeConfig, config.DifficultyPreset) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	return cfg, preset
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
