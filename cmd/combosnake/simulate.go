package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"combosnake/internal/game"
	"combosnake/internal/platform/headless"
	"combosnake/internal/registry"
	"combosnake/internal/storage"
)

var (
	flagDuration time.Duration
	flagSave     string
	flagResume   string
	flagPerf     bool
	flagJSON     bool
	flagVerbose  bool
	flagNoRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Run an autopiloted game to completion",
	Long: `Runs a full game without a display. An autopilot steers the snake
toward the next food until the snake dies, the time limit is reached or the
process is interrupted. The final score and timing are printed when the run
ends.

Examples:
  combosnake simulate
  combosnake simulate classic
  combosnake simulate --duration 2m --perf
  combosnake simulate --seed 42 --save ./session.json
  combosnake simulate --resume ./session.json --json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Simulated time limit (0 = until game over)")
	simulateCmd.Flags().StringVar(&flagSave, "save", "", "Write the session snapshot here when the run ends")
	simulateCmd.Flags().StringVar(&flagResume, "resume", "", "Resume from a session snapshot")
	simulateCmd.Flags().BoolVar(&flagPerf, "perf", false, "Log scheduler performance reports")
	simulateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the run report as JSON")
	simulateCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log debug detail")
	simulateCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Skip writing the run to the database")
}

func runSimulate(cmd *cobra.Command, args []string) {
	mode := game.ModeCombo
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'combosnake modes' to see available modes.")
		os.Exit(1)
	}

	gameCfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "combosnake",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	runner, err := headless.New(headless.RunnerConfig{
		Mode:         mode,
		Seed:         seed,
		MaxDuration:  flagDuration,
		SnapshotPath: flagSave,
		ResumePath:   flagResume,
		LogPerf:      flagPerf,
	}, gameCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagNoRecord {
		recordRun(logger, report, seed)
	}

	if flagJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}
	printReport(report)
}

// recordRun stores the finished run in the history database. Failures are
// logged but never abort the command; the run report is still printed.
func recordRun(logger *log.Logger, r headless.RunReport, seed int64) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		return
	}
	defer store.Close()

	rec := storage.RunRecord{
		SessionID:   r.SessionID,
		Mode:        r.Mode,
		Score:       r.Score.CurrentScore,
		Combos:      r.Score.TotalCombos,
		BasePoints:  r.Score.BasePointsEarned,
		BonusPoints: r.Score.ComboBonusEarned,
		SpeedLevel:  r.Level,
		ElapsedMS:   r.Elapsed.Milliseconds(),
		Ticks:       int64(r.Ticks),
		Seed:        seed,
		EndedBy:     r.EndedBy,
	}
	if _, err := store.SaveRun(rec); err != nil {
		logger.Warn("could not record run", "error", err)
	}
}

func printReport(r headless.RunReport) {
	fmt.Println()
	fmt.Printf("Session    %s\n", r.SessionID)
	fmt.Printf("Mode       %s\n", r.Mode)
	fmt.Printf("Score      %d (%d base + %d combo bonus)\n",
		r.Score.CurrentScore, r.Score.BasePointsEarned, r.Score.ComboBonusEarned)
	fmt.Printf("Combos     %d", r.Score.TotalCombos)
	if r.Score.TotalCombos > 0 {
		fmt.Printf(" (average length %.1f)", r.Score.AverageComboLength)
	}
	fmt.Println()
	fmt.Printf("Pace       %v per step, level %d\n", r.Speed, r.Level)
	fmt.Printf("Time       %v simulated in %v (%d ticks)\n", r.Elapsed.Round(time.Millisecond), r.Wall.Round(time.Millisecond), r.Ticks)
	if r.GameOver {
		ended := r.EndedBy
		if ended == "" {
			ended = "collision"
		}
		fmt.Printf("Ended by   %s\n", ended)
	} else {
		fmt.Println("Ended by   time limit")
	}
}
