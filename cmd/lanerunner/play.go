package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/lanerunner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Lane Runner",
	Long: `Start a run of the given variant. "lanerunner" opens with mode
selection (casual or leaderboard); "lanerunner_classic" goes straight to
the start screen.

Controls:
  Left/Right/A/D  - Change lanes
  Enter/Space     - Start
  P               - Pause/Resume
  R               - Restart (after game over)
  Esc             - Back
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Extra life, gentle progression
  normal - Default tuning
  hard   - Fewer lives, starts at a higher tier
  fixed  - No progression

Examples:
  lanerunner play
  lanerunner play lanerunner_classic --difficulty hard
  lanerunner play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// configureGames passes --config and --difficulty to the variants.
func configureGames() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	lanerunner.SetConfigPath(flagConfig)
	lanerunner.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	cfg.Username = localUser()
	return cfg
}

// localUser names the owner of usernames registered from this machine.
func localUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// openStore opens the runs database; the game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := lanerunner.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'lanerunner list' to see them", gameID)
	}
	if err := configureGames(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	return tui.Run(game, store, cfg, cfg.Username, logger)
}
