package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake3d/internal/config"
)

var flagShowDefaults bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long: `Shows each difficulty preset with its move interval and speed-up rule, based on the loaded config.

Use --defaults to print the built-in config file as a starting point for --config.`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func init() {
	presetsCmd.Flags().BoolVar(&flagShowDefaults, "defaults", false, "Print the built-in config YAML")
}

func runPresets(_ *cobra.Command, _ []string) {
	if flagShowDefaults {
		fmt.Print(string(config.GetDefaultYAML()))
		return
	}

	base, _ := loadGameConfig()

	fmt.Println("Difficulty presets:")
	fmt.Println()

	fmt.Printf("  %-7s  %-9s  %-12s  %s\n", "Preset", "Interval", "Speed-up", "Description")
	fmt.Printf("  %-7s  %-9s  %-12s  %s\n", "------", "--------", "--------", "-----------")

	for _, p := range config.Presets() {
		cfg := base
		config.ApplySnakePreset(&cfg, p)

		speedUp := "none"
		if schedule := config.NewSpeedSchedule(cfg); schedule.IsEnabled() {
			speedUp = fmt.Sprintf("+%.1f/%d pts", cfg.Scoring.SpeedStep, cfg.Scoring.SpeedThreshold)
		}
		fmt.Printf("  %-7s  %-9s  %-12s  %s\n", p, cfg.BaseInterval(), speedUp, p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'snake3d play --difficulty <preset>' to play.")
}
