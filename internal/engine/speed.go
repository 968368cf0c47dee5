package engine

import (
	"fmt"
	"time"

	"combosnake/internal/config"
	"combosnake/internal/core"
)

// SpeedChangeReason says why the controller retargeted.
type SpeedChangeReason string

const (
	SpeedComboCompleted SpeedChangeReason = "combo_completed"
	SpeedComboBroken    SpeedChangeReason = "combo_broken"
	SpeedReset          SpeedChangeReason = "reset"
	SpeedConfigUpdated  SpeedChangeReason = "config_updated"
	SpeedImported       SpeedChangeReason = "imported"
)

// SpeedChangeEvent announces a retarget. Speeds are step intervals: smaller
// means faster.
type SpeedChangeEvent struct {
	Reason       SpeedChangeReason `json:"reason"`
	SpeedLevel   int               `json:"speed_level"`
	CurrentSpeed time.Duration     `json:"current_speed"`
	TargetSpeed  time.Duration     `json:"target_speed"`
	Timestamp    time.Time         `json:"timestamp"`
}

// SpeedStats counts level movement over the controller's lifetime.
type SpeedStats struct {
	CurrentLevel    int `json:"current_level"`
	MaxLevelReached int `json:"max_level_reached"`
	TotalIncreases  int `json:"total_increases"`
	TotalResets     int `json:"total_resets"`
}

// CalculateSpeedCurve returns the step interval for a combo level: each
// level subtracts SpeedIncrement from BaseSpeed, floored at MaxSpeed.
// Negative levels are treated as zero.
func CalculateSpeedCurve(level int, cfg config.SpeedConfig) time.Duration {
	if level < 0 {
		level = 0
	}
	ms := cfg.BaseSpeed - level*cfg.SpeedIncrement
	if ms < cfg.MaxSpeed {
		ms = cfg.MaxSpeed
	}
	return time.Duration(ms) * time.Millisecond
}

// SpeedController owns the snake's pace. Completed combos raise the level
// and ease the step interval toward the curve value for that level; broken
// combos drop back to the base interval. The controller never reads the
// clock for transitions: Update feeds it the tick delta.
type SpeedController struct {
	cfg  config.SpeedConfig
	ease Easing
	now  TimeSource

	level   int
	current float64 // ms per step, live value while transitioning
	target  float64 // ms per step

	transitioning bool
	transFrom     float64
	transElapsed  time.Duration

	stats SpeedStats
	subs  subscribers[SpeedChangeEvent]
}

// NewSpeedController builds a controller pinned at the base interval.
// The config must validate and its easing must be registered. A nil time
// source means time.Now.
func NewSpeedController(cfg config.SpeedConfig, now TimeSource) (*SpeedController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ease, err := LookupEasing(cfg.Easing)
	if err != nil {
		return nil, fmt.Errorf("engine: speed config: %w", err)
	}
	base := float64(cfg.BaseSpeed)
	return &SpeedController{
		cfg:     cfg,
		ease:    ease,
		now:     orSystemTime(now),
		current: base,
		target:  base,
	}, nil
}

// HandleComboEvent adjusts the level from a combo lifecycle event. Wire it
// to ComboTracker.OnCombo.
func (s *SpeedController) HandleComboEvent(ev ComboEvent) {
	switch ev.Type {
	case ComboCompleted:
		s.LevelUp()
	case ComboBroken:
		s.resetLevel(SpeedComboBroken)
	}
}

// LevelUp raises the combo level by one and begins easing toward the curve
// value for the new level.
func (s *SpeedController) LevelUp() {
	s.level++
	if s.level > s.stats.MaxLevelReached {
		s.stats.MaxLevelReached = s.level
	}
	s.stats.TotalIncreases++
	s.retarget(SpeedComboCompleted)
}

// ResetLevel drops back to level zero and eases toward the base interval.
// It is a no-op when the level is already zero.
func (s *SpeedController) ResetLevel() {
	s.resetLevel(SpeedReset)
}

func (s *SpeedController) resetLevel(reason SpeedChangeReason) {
	if s.level == 0 {
		return
	}
	s.level = 0
	s.stats.TotalResets++
	s.retarget(reason)
}

func (s *SpeedController) retarget(reason SpeedChangeReason) {
	s.target = msFloat(CalculateSpeedCurve(s.level, s.cfg))
	s.beginTransition()
	s.notify(reason)
}

func (s *SpeedController) beginTransition() {
	s.transElapsed = 0
	if s.current == s.target {
		s.transitioning = false
		return
	}
	if s.cfg.TransitionDuration <= 0 {
		s.current = s.target
		s.transitioning = false
		return
	}
	s.transFrom = s.current
	s.transitioning = true
}

// Update advances an in-flight transition by the tick delta. Deltas of zero
// or less are ignored, so a misbehaving caller cannot move the interpolation
// backward.
func (s *SpeedController) Update(delta time.Duration) {
	if !s.transitioning || delta <= 0 {
		return
	}
	s.transElapsed += delta
	dur := time.Duration(s.cfg.TransitionDuration) * time.Millisecond
	if s.transElapsed >= dur {
		s.current = s.target
		s.transitioning = false
		return
	}
	t := float64(s.transElapsed) / float64(dur)
	s.current = s.ease(s.transFrom, s.target, t)
}

// CurrentSpeed reports the live step interval.
func (s *SpeedController) CurrentSpeed() time.Duration {
	return time.Duration(s.current * float64(time.Millisecond))
}

// TargetSpeed reports the interval the controller is easing toward.
func (s *SpeedController) TargetSpeed() time.Duration {
	return time.Duration(s.target * float64(time.Millisecond))
}

// Level reports the current combo level.
func (s *SpeedController) Level() int { return s.level }

// IsTransitioning reports whether a speed change is still interpolating.
func (s *SpeedController) IsTransitioning() bool { return s.transitioning }

// IsAtMaxSpeed reports whether the target interval has saturated at the
// configured floor.
func (s *SpeedController) IsAtMaxSpeed() bool {
	return s.target == float64(s.cfg.MaxSpeed)
}

// Progress reports how far the level has climbed toward saturation, in
// [0,1].
func (s *SpeedController) Progress() float64 {
	span := s.cfg.BaseSpeed - s.cfg.MaxSpeed
	if span <= 0 {
		return 1
	}
	saturation := (span + s.cfg.SpeedIncrement - 1) / s.cfg.SpeedIncrement
	return core.ClampF(float64(s.level)/float64(saturation), 0, 1)
}

// Config returns the speed configuration in effect.
func (s *SpeedController) Config() config.SpeedConfig { return s.cfg }

// Stats returns the accumulated level statistics.
func (s *SpeedController) Stats() SpeedStats {
	st := s.stats
	st.CurrentLevel = s.level
	return st
}

// OnSpeedChange subscribes to retarget events and returns an unsubscribe
// func.
func (s *SpeedController) OnSpeedChange(fn func(SpeedChangeEvent)) func() {
	return s.subs.add(fn)
}

// UpdateConfig replaces the speed configuration. An invalid config is
// rejected and the previous one stays in effect. On success the target is
// recomputed for the current level and a transition begins.
func (s *SpeedController) UpdateConfig(cfg config.SpeedConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ease, err := LookupEasing(cfg.Easing)
	if err != nil {
		return fmt.Errorf("engine: speed config: %w", err)
	}
	s.cfg = cfg
	s.ease = ease
	s.retarget(SpeedConfigUpdated)
	return nil
}

// Reset returns the controller to its construction state: level zero, speed
// pinned at the base interval, statistics cleared. Subscribers stay
// registered. Gameplay resets that should count in the statistics go through
// ResetLevel instead.
func (s *SpeedController) Reset() {
	s.level = 0
	s.current = float64(s.cfg.BaseSpeed)
	s.target = s.current
	s.transitioning = false
	s.transElapsed = 0
	s.stats = SpeedStats{}
}

func (s *SpeedController) notify(reason SpeedChangeReason) {
	s.subs.notify(SpeedChangeEvent{
		Reason:       reason,
		SpeedLevel:   s.level,
		CurrentSpeed: s.CurrentSpeed(),
		TargetSpeed:  s.TargetSpeed(),
		Timestamp:    s.now(),
	})
}

func msFloat(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
