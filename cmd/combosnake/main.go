// combosnake is a combo-driven snake simulation that runs headless in the
// terminal.
//
// Usage:
//
//	combosnake modes               - List available game modes
//	combosnake simulate [mode]     - Run a simulated game to completion
//	combosnake history [mode]      - Show recorded runs for a mode
//	combosnake config show         - Print the effective configuration
//	combosnake config init <path>  - Write a starter config file
//
// Global flags:
//
//	--config <path>       - Path to a config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--seed <value>        - RNG seed for reproducible food placement
//	--db <path>           - Path to the run database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"combosnake/internal/config"

	// Import the game package to register its modes.
	_ "combosnake/internal/game"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "combosnake",
	Short: "Combo Snake - a combo-driven snake simulation",
	Long: `Combo Snake is a snake variant built around numbered food: eating
1..N in order completes a combo, pays a score bonus and permanently speeds
the game up, while eating out of order resets the pace to base.

Available commands:
  modes     - Show all registered game modes
  simulate  - Run an autopiloted game to completion
  history   - Show recorded runs
  config    - Inspect or create configuration files

Examples:
  combosnake modes
  combosnake simulate
  combosnake simulate classic --duration 2m
  combosnake simulate --difficulty hard --seed 42
  combosnake history --recent
  combosnake config show
  combosnake config init ./configs/config.yaml`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.combosnake/scores.db", "Path to run database")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveConfig loads the config file and applies the difficulty preset.
func resolveConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, err
	}
	if err := config.ApplyPreset(&cfg, config.Preset(flagDifficulty)); err != nil {
		return config.GameConfig{}, err
	}
	return cfg, nil
}
