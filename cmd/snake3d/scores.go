package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores",
	Long: `Display the top 10 runs for a difficulty preset. Without an argument,
shows a summary line for every preset that has been played.

Examples:
  snake3d scores
  snake3d scores normal
  snake3d scores hard
  snake3d scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all runs for the given preset")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearScores {
			store.Close()
			fail("--clear needs a preset")
		}
		printSummary(store)
		return
	}

	preset, err := config.ParsePreset(args[0])
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	if flagClearScores {
		if err := store.ClearScores(string(preset)); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", preset)
		return
	}

	scores, err := store.TopScores(string(preset), 10)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", preset)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake3d play --difficulty %s' to set the first high score!\n", preset)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-6s  %s\n", "Rank", "Score", "Length", "Reason", "Source", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-6s  %s\n", "----", "-----", "------", "------", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-10s  %-6s  %s\n",
			i+1, entry.Score, entry.Length, entry.Reason, entry.Source, dateStr)
	}

	if stats, err := store.Stats(string(preset)); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f  Longest snake: %d\n",
			stats.HighScore, stats.RunsCount, stats.AvgScore, stats.MaxLength)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-7s  %-5s  %-6s  %s\n", "Preset", "Runs", "Best", "Last played")
	fmt.Printf("  %-7s  %-5s  %-6s  %s\n", "------", "----", "----", "-----------")
	for _, p := range config.Presets() {
		stats, ok := all[string(p)]
		if !ok {
			continue
		}
		fmt.Printf("  %-7s  %-5d  %-6d  %s\n",
			p, stats.RunsCount, stats.HighScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
