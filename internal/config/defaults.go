package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/config.yaml and is the fallback when the embedded copy cannot
// be parsed.
func DefaultConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Width:    400,
			Height:   400,
			CellSize: 20,
		},
		Speed: SpeedConfig{
			BaseSpeed:          150,
			SpeedIncrement:     15,
			MaxSpeed:           80,
			MinSpeed:           200,
			TransitionDuration: 500,
			Easing:             "linear",
		},
		Combo: ComboConfig{
			SequenceLength: 5,
			Bonus:          5,
		},
		Score: ScoreConfig{
			BasePoints:   10,
			HistoryLimit: 100,
		},
		Scheduler: SchedulerConfig{
			MaxDelta:     100,
			PerfInterval: 1000,
			RenderFPS:    0,
		},
		Clock: ClockConfig{
			TargetFPS:         60,
			MinFPS:            30,
			MaxFPS:            120,
			FPSStep:           5,
			SustainedTicks:    90,
			FPSTolerance:      5,
			HistorySize:       60,
			StabilityVariance: 25,
		},
	}
}

// DefaultYAML returns the embedded default configuration file, used by the
// CLI to write a starter config.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
