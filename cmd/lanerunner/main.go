// lanerunner is a lane-based arcade runner for the terminal.
//
// Usage:
//
//	lanerunner list              - List game variants
//	lanerunner play [variant]    - Play a variant (default: lanerunner)
//	lanerunner menu              - Pick variants and view scores interactively
//	lanerunner serve             - Start SSH server for remote play
//	lanerunner scores [variant]  - Show high scores for a variant
//	lanerunner simulate          - Run the engine headless with an autopilot
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.lanerunner/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/games/lanerunner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanerunner",
	Short: "Lane Runner - dodge traffic in your terminal",
	Long: `Lane Runner is a terminal arcade game: switch lanes to dodge oncoming
traffic, grab pickups and power-ups, and survive as the road speeds up.

Available commands:
  list      - Show game variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Headless run for tuning and testing

Examples:
  lanerunner play
  lanerunner play lanerunner_classic --difficulty hard
  lanerunner serve --ssh :2222
  lanerunner simulate --frames 7200 --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lanerunner",
			Level:           level,
		})
		lanerunner.SetLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanerunner/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
