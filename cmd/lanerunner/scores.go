package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/lanerunner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the best runs of a variant (default: lanerunner).

Examples:
  lanerunner scores
  lanerunner scores lanerunner_classic --limit 20
  lanerunner scores --mode leaderboard
  lanerunner scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show runs of this mode: casual, leaderboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all variants in an interactive table")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := lanerunner.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'lanerunner list' to see them", gameID)
	}
	if flagScoresMode != "" {
		mode, ok := core.ParseMode(flagScoresMode)
		if !ok {
			return fmt.Errorf("unknown mode %q (want casual or leaderboard)", flagScoresMode)
		}
		flagScoresMode = mode.String()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	}

	runs, err := store.TopRuns(storage.RunFilter{GameID: gameID, Mode: flagScoresMode, Limit: flagScoresLimit})
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lanerunner play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-16s  %-12s  %-4s  %-6s  %s\n", "Rank", "Score", "Player", "Mode", "Tier", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-16s  %-12s  %-4s  %-6s  %s\n", "----", "-----", "------", "----", "----", "----", "----")
	for i, r := range runs {
		player := r.Username
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-16s  %-12s  %-4d  %-6s  %s\n",
			i+1, r.Score, player, r.Mode, r.Tier, formatSurvival(r.DurationMs), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Best tier: %d  Longest: %s\n",
		stats.Runs, stats.HighScore, stats.AvgScore, stats.BestTier, formatSurvival(stats.LongestMs))
	return nil
}

func formatSurvival(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
