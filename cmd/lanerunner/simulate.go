package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/sim"
)

var (
	flagSimFrames    int
	flagSimWidth     float64
	flagSimHeight    float64
	flagSimAutopilot bool
	flagSimYAML      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the engine headless",
	Long: `Play one classic run without a terminal, on synthetic time.
The autopilot dodges traffic and chases tokens; with --autopilot=false the
player never moves. Useful for checking config and difficulty changes.

Examples:
  lanerunner simulate
  lanerunner simulate --seed 42 --frames 7200 --yaml
  lanerunner simulate --difficulty hard --log-level info
  lanerunner simulate --config ./my-runner.yaml`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", sim.DefaultFrames, "Maximum number of frames to simulate")
	simulateCmd.Flags().Float64Var(&flagSimWidth, "width", sim.DefaultWidth, "Road width in cells")
	simulateCmd.Flags().Float64Var(&flagSimHeight, "height", sim.DefaultHeight, "Road height in cells")
	simulateCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", true, "Steer the player automatically")
	simulateCmd.Flags().BoolVar(&flagSimYAML, "yaml", false, "Print the summary as YAML")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyRunnerPreset(&cfg, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}

	res, err := sim.Run(cmd.Context(), sim.Options{
		Config:        &cfg,
		Seed:          seed,
		Frames:        flagSimFrames,
		FrameDuration: time.Second / time.Duration(fps),
		Width:         flagSimWidth,
		Height:        flagSimHeight,
		Autopilot:     flagSimAutopilot,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if flagSimYAML {
		out, err := res.YAML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	fmt.Printf("Seed:      %d\n", res.Seed)
	fmt.Printf("Frames:    %d\n", res.Frames)
	fmt.Printf("State:     %s\n", res.State)
	fmt.Printf("Score:     %d\n", res.Score)
	fmt.Printf("Tier:      %d\n", res.Tier)
	fmt.Printf("Lives:     %d\n", res.Lives)
	fmt.Printf("Survived:  %s\n", time.Duration(res.SurvivedMs*float64(time.Millisecond)).Round(time.Millisecond))
	fmt.Printf("Moves:     %d\n", res.LaneChanges)
	return nil
}
