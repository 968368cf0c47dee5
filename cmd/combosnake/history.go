package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"combosnake/internal/game"
	"combosnake/internal/registry"
	"combosnake/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryRecent bool
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show recorded runs for a mode",
	Long: `Display the best runs recorded for the specified mode.

Examples:
  combosnake history
  combosnake history classic
  combosnake history --recent --limit 20
  combosnake history combo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "How many runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryRecent, "recent", false, "Order by date instead of score")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs for the mode")
}

func runHistory(cmd *cobra.Command, args []string) {
	mode := game.ModeCombo
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'combosnake modes' to see available modes.")
		os.Exit(1)
	}

	m, err := registry.Lookup(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	title := m.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared recorded runs for %s.\n", title)
		return
	}

	var runs []storage.RunRecord
	if flagHistoryRecent {
		runs, err = store.RecentRuns(mode, flagHistoryLimit)
	} else {
		runs, err = store.TopRuns(mode, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run History - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'combosnake simulate %s' to record the first one!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-6s  %-10s  %s\n",
		"Rank", "Score", "Combos", "Level", "Duration", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-6s  %-10s  %s\n",
		"----", "-----", "------", "-----", "--------", "----")

	for i, r := range runs {
		elapsed := (time.Duration(r.ElapsedMS) * time.Millisecond).Round(time.Second)
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-7d  %-6d  %-10v  %s\n",
			i+1, r.Score, r.Combos, r.SpeedLevel, elapsed, dateStr)
	}

	fmt.Println()
	if high, err := store.HighScore(mode); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}
