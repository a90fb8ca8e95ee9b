package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake3d/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server for browser clients",
	Long: `Start an HTTP server with a WebSocket endpoint at /ws.

Each connection plays its own game. The server streams renderer events
(place_segment, remove_segment, place_food, remove_food, score,
game_over, pause) and accepts direction, pause and restart requests:

  {"type":"direction","dir":"+x"}
  {"type":"pause"}
  {"type":"restart"}

Query parameters:
  codec=msgpack       - Binary msgpack frames instead of JSON
  difficulty=<name>   - Preset for this connection

Examples:
  snake3d web
  snake3d web --addr :9000 --fps 30
  snake3d web --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	snake, preset := loadGameConfig()
	logger := newLogger("snake3d-web")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Addr = flagWebAddr
	cfg.FPS = flagFPS
	cfg.Snake = snake
	cfg.Preset = preset
	cfg.Seed = flagSeed
	cfg.Store = store
	cfg.Logger = logger
	server := web.NewServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting snake3d web server on %s (ws endpoint /ws)\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		stop()
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
