package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start Lane Runner in menu mode. After a run you return to the menu.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit

Examples:
  lanerunner menu
  lanerunner menu --fps 30 --difficulty easy`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureGames(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	return tui.RunSession(store, cfg, cfg.Username, logger)
}
