package engine

import (
	"fmt"
	"time"

	"combosnake/internal/config"
	"combosnake/internal/core"
)

// SpeedState is the dynamic half of a speed snapshot. Speeds are plain
// milliseconds so exported files stay readable and hand-editable.
type SpeedState struct {
	CurrentSpeed    float64 `json:"current_speed"`
	TargetSpeed     float64 `json:"target_speed"`
	SpeedLevel      int     `json:"speed_level"`
	IsTransitioning bool    `json:"is_transitioning"`
}

// SpeedSnapshot is the exportable form of a SpeedController.
type SpeedSnapshot struct {
	State     SpeedState         `json:"state"`
	Config    config.SpeedConfig `json:"config"`
	Stats     SpeedStats         `json:"statistics"`
	Timestamp time.Time          `json:"timestamp"`
}

// Export captures the controller's state, config and statistics.
func (s *SpeedController) Export() SpeedSnapshot {
	return SpeedSnapshot{
		State: SpeedState{
			CurrentSpeed:    s.current,
			TargetSpeed:     s.target,
			SpeedLevel:      s.level,
			IsTransitioning: s.transitioning,
		},
		Config:    s.cfg,
		Stats:     s.Stats(),
		Timestamp: s.now(),
	}
}

// Validate reports whether the snapshot could be imported: the embedded
// config must pass validation and name a registered easing.
func (s SpeedSnapshot) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	if _, err := LookupEasing(s.Config.Easing); err != nil {
		return err
	}
	return nil
}

// Import restores an exported snapshot. A snapshot whose embedded config
// does not validate is rejected as a whole: the controller keeps its
// current state, config and statistics. On success the target interval is
// recomputed from the curve, so a hand-edited level cannot smuggle in an
// off-curve target, and any gap between current and target speed starts a
// fresh transition.
func (s *SpeedController) Import(snap SpeedSnapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("engine: speed import rejected: %w", err)
	}
	ease, err := LookupEasing(snap.Config.Easing)
	if err != nil {
		return fmt.Errorf("engine: speed import rejected: %w", err)
	}

	s.cfg = snap.Config
	s.ease = ease
	s.level = snap.State.SpeedLevel
	if s.level < 0 {
		s.level = 0
	}
	s.stats = snap.Stats

	s.target = msFloat(CalculateSpeedCurve(s.level, s.cfg))
	s.current = core.ClampF(snap.State.CurrentSpeed, float64(s.cfg.MaxSpeed), float64(s.cfg.MinSpeed))
	if snap.State.CurrentSpeed <= 0 {
		s.current = s.target
	}

	s.transitioning = s.current != s.target
	s.transElapsed = 0
	if s.transitioning {
		s.transFrom = s.current
	}

	s.notify(SpeedImported)
	return nil
}

// ScoreSnapshot is the exportable form of a ScoreAggregator.
type ScoreSnapshot struct {
	Score     GameScore        `json:"score"`
	History   []ScoreBreakdown `json:"history"`
	Timestamp time.Time        `json:"timestamp"`
}

// Export captures the aggregator's summary and history.
func (a *ScoreAggregator) Export() ScoreSnapshot {
	return ScoreSnapshot{
		Score:     a.score,
		History:   a.History(),
		Timestamp: a.now(),
	}
}

// Validate reports whether the snapshot's totals are internally consistent.
func (s ScoreSnapshot) Validate() error {
	sc := s.Score
	if sc.CurrentScore < 0 || sc.TotalCombos < 0 || sc.BasePointsEarned < 0 || sc.ComboBonusEarned < 0 {
		return fmt.Errorf("engine: score snapshot has negative totals")
	}
	if sc.CurrentScore != sc.BasePointsEarned+sc.ComboBonusEarned {
		return fmt.Errorf("engine: score snapshot totals do not add up")
	}
	return nil
}

// Import restores an exported snapshot. Snapshots that fail the internal
// consistency checks are rejected as a whole and the aggregator keeps its
// current state. History beyond the retention cap is truncated oldest-first.
func (a *ScoreAggregator) Import(snap ScoreSnapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("engine: score import rejected: %w", err)
	}
	sc := snap.Score

	history := make([]ScoreBreakdown, len(snap.History))
	copy(history, snap.History)
	if len(history) > a.historyLimit {
		history = history[len(history)-a.historyLimit:]
	}

	a.score = sc
	a.history = history
	a.lengthEarned = int(sc.AverageComboLength*float64(sc.TotalCombos) + 0.5)
	return nil
}
