// Package config provides YAML-based configuration loading and difficulty
// presets for the simulation engine. Validation lives here so the engine
// can reject invalid settings at the call site instead of silently clamping
// them.
package config

import (
	"errors"
	"fmt"
)

// GameConfig is the root configuration for a game session.
type GameConfig struct {
	Board     BoardConfig     `yaml:"board" json:"board"`
	Speed     SpeedConfig     `yaml:"speed" json:"speed"`
	Combo     ComboConfig     `yaml:"combo" json:"combo"`
	Score     ScoreConfig     `yaml:"score" json:"score"`
	Scheduler SchedulerConfig `yaml:"scheduler" json:"scheduler"`
	Clock     ClockConfig     `yaml:"clock" json:"clock"`
}

// BoardConfig describes the play field in pixels.
type BoardConfig struct {
	Width    int `yaml:"width" json:"width"`
	Height   int `yaml:"height" json:"height"`
	CellSize int `yaml:"cell_size" json:"cell_size"`
}

// SpeedConfig drives the combo-reactive speed curve. All speeds are
// milliseconds per simulation step, so smaller means faster.
type SpeedConfig struct {
	BaseSpeed          int    `yaml:"base_speed" json:"base_speed"`
	SpeedIncrement     int    `yaml:"speed_increment" json:"speed_increment"`
	MaxSpeed           int    `yaml:"max_speed" json:"max_speed"`
	MinSpeed           int    `yaml:"min_speed" json:"min_speed"`
	TransitionDuration int    `yaml:"transition_duration" json:"transition_duration"`
	Easing             string `yaml:"easing" json:"easing"`
}

// ComboConfig describes the numbered-food sequence.
type ComboConfig struct {
	SequenceLength int `yaml:"sequence_length" json:"sequence_length"`
	Bonus          int `yaml:"bonus" json:"bonus"`
}

// ScoreConfig describes scoring and score-history retention.
type ScoreConfig struct {
	BasePoints int `yaml:"base_points" json:"base_points"`
	// HistoryLimit caps the per-session breakdown history. Oldest entries
	// are evicted first; 0 falls back to the built-in default of 100.
	HistoryLimit int `yaml:"history_limit" json:"history_limit"`
}

// SchedulerConfig tunes the frame scheduler.
type SchedulerConfig struct {
	// MaxDelta caps a single frame delta in milliseconds. Protects the
	// simulation from catch-up storms after the host process is suspended.
	MaxDelta int `yaml:"max_delta" json:"max_delta"`
	// PerfInterval is how often performance stats are published, in
	// milliseconds.
	PerfInterval int `yaml:"perf_interval" json:"perf_interval"`
	// RenderFPS caps render callbacks independently of the update cadence.
	// 0 renders on every update.
	RenderFPS int `yaml:"render_fps" json:"render_fps"`
}

// ClockConfig tunes frame timing measurement and adaptive FPS control.
type ClockConfig struct {
	TargetFPS int `yaml:"target_fps" json:"target_fps"`
	MinFPS    int `yaml:"min_fps" json:"min_fps"`
	MaxFPS    int `yaml:"max_fps" json:"max_fps"`
	// FPSStep is how far the adaptive target drops per downgrade.
	FPSStep int `yaml:"fps_step" json:"fps_step"`
	// SustainedTicks is how many consecutive below-target samples trigger
	// a downgrade.
	SustainedTicks int `yaml:"sustained_ticks" json:"sustained_ticks"`
	// FPSTolerance is how far below target a sample may sit before it
	// counts toward a downgrade.
	FPSTolerance float64 `yaml:"fps_tolerance" json:"fps_tolerance"`
	// HistorySize bounds the delta history used for smoothing.
	HistorySize int `yaml:"history_size" json:"history_size"`
	// StabilityVariance is the delta variance (ms^2) under which the frame
	// rate counts as stable.
	StabilityVariance float64 `yaml:"stability_variance" json:"stability_variance"`
}

// Validation errors returned by the Validate methods.
var (
	ErrSpeedOrder    = errors.New("config: speed order must satisfy max_speed < base_speed <= min_speed")
	ErrSpeedStep     = errors.New("config: speed_increment must be positive")
	ErrSpeedEase     = errors.New("config: transition_duration must not be negative")
	ErrBoardGeometry = errors.New("config: board dimensions must hold at least one cell")
)

// Validate checks the speed ordering rules. An invalid config must be
// rejected by the caller, never clamped into shape.
func (c SpeedConfig) Validate() error {
	if !(c.MaxSpeed < c.BaseSpeed && c.BaseSpeed <= c.MinSpeed) {
		return fmt.Errorf("%w (max=%d base=%d min=%d)", ErrSpeedOrder, c.MaxSpeed, c.BaseSpeed, c.MinSpeed)
	}
	if c.SpeedIncrement <= 0 {
		return fmt.Errorf("%w (increment=%d)", ErrSpeedStep, c.SpeedIncrement)
	}
	if c.TransitionDuration < 0 {
		return fmt.Errorf("%w (duration=%d)", ErrSpeedEase, c.TransitionDuration)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("config: max_speed must be positive (max=%d)", c.MaxSpeed)
	}
	return nil
}

// Validate checks board geometry.
func (c BoardConfig) Validate() error {
	if c.CellSize <= 0 || c.Width < c.CellSize || c.Height < c.CellSize {
		return fmt.Errorf("%w (width=%d height=%d cell=%d)", ErrBoardGeometry, c.Width, c.Height, c.CellSize)
	}
	return nil
}

// Validate checks the combo sequence settings.
func (c ComboConfig) Validate() error {
	if c.SequenceLength < 1 {
		return fmt.Errorf("config: sequence_length must be at least 1 (got %d)", c.SequenceLength)
	}
	if c.Bonus < 0 {
		return fmt.Errorf("config: combo bonus must not be negative (got %d)", c.Bonus)
	}
	return nil
}

// Validate checks scoring settings.
func (c ScoreConfig) Validate() error {
	if c.BasePoints < 0 {
		return fmt.Errorf("config: base_points must not be negative (got %d)", c.BasePoints)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative (got %d)", c.HistoryLimit)
	}
	return nil
}

// Validate checks scheduler settings.
func (c SchedulerConfig) Validate() error {
	if c.MaxDelta <= 0 {
		return fmt.Errorf("config: max_delta must be positive (got %d)", c.MaxDelta)
	}
	if c.PerfInterval <= 0 {
		return fmt.Errorf("config: perf_interval must be positive (got %d)", c.PerfInterval)
	}
	if c.RenderFPS < 0 {
		return fmt.Errorf("config: render_fps must not be negative (got %d)", c.RenderFPS)
	}
	return nil
}

// Validate checks clock settings.
func (c ClockConfig) Validate() error {
	if c.MinFPS <= 0 || c.MaxFPS < c.MinFPS {
		return fmt.Errorf("config: fps range must satisfy 0 < min_fps <= max_fps (min=%d max=%d)", c.MinFPS, c.MaxFPS)
	}
	if c.TargetFPS < c.MinFPS || c.TargetFPS > c.MaxFPS {
		return fmt.Errorf("config: target_fps %d outside [%d, %d]", c.TargetFPS, c.MinFPS, c.MaxFPS)
	}
	if c.FPSStep <= 0 {
		return fmt.Errorf("config: fps_step must be positive (got %d)", c.FPSStep)
	}
	if c.SustainedTicks <= 0 {
		return fmt.Errorf("config: sustained_ticks must be positive (got %d)", c.SustainedTicks)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("config: history_size must be positive (got %d)", c.HistorySize)
	}
	if c.StabilityVariance < 0 {
		return fmt.Errorf("config: stability_variance must not be negative (got %G)", c.StabilityVariance)
	}
	return nil
}

// Validate checks every section of the game config.
func (c GameConfig) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if err := c.Speed.Validate(); err != nil {
		return err
	}
	if err := c.Combo.Validate(); err != nil {
		return err
	}
	if err := c.Score.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return c.Clock.Validate()
}
