package engine

import (
	"time"

	"combosnake/internal/config"
)

// ScoreBreakdown itemizes a single scoring event.
type ScoreBreakdown struct {
	BasePoints  int       `json:"base_points"`
	ComboBonus  int       `json:"combo_bonus"`
	TotalPoints int       `json:"total_points"`
	Timestamp   time.Time `json:"timestamp"`
}

// GameScore is the running score summary pushed to subscribers after every
// scoring event.
type GameScore struct {
	CurrentScore       int     `json:"current_score"`
	TotalCombos        int     `json:"total_combos"`
	BasePointsEarned   int     `json:"base_points_earned"`
	ComboBonusEarned   int     `json:"combo_bonus_earned"`
	AverageComboLength float64 `json:"average_combo_length"`
}

// ScoreAggregator accumulates points and keeps a bounded FIFO history of
// scoring events. A scoring event with a positive combo bonus counts as one
// completed combo.
type ScoreAggregator struct {
	historyLimit int
	comboLength  int
	now          TimeSource

	score        GameScore
	history      []ScoreBreakdown
	lengthEarned int // summed lengths of completed combos

	subs subscribers[GameScore]
}

// defaultHistoryLimit caps the scoring history when the config leaves it
// unset.
const defaultHistoryLimit = 100

// NewScoreAggregator builds an aggregator. comboLength is the configured
// sequence length credited per completed combo, used for the average. A nil
// time source means time.Now.
func NewScoreAggregator(cfg config.ScoreConfig, comboLength int, now TimeSource) *ScoreAggregator {
	limit := cfg.HistoryLimit
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if comboLength < 1 {
		comboLength = 1
	}
	return &ScoreAggregator{
		historyLimit: limit,
		comboLength:  comboLength,
		now:          orSystemTime(now),
	}
}

// AddScore records one scoring event, updates the summary, appends to the
// history (evicting the oldest entry past the limit) and notifies
// subscribers synchronously before returning.
func (a *ScoreAggregator) AddScore(basePoints, comboBonus int) ScoreBreakdown {
	b := ScoreBreakdown{
		BasePoints:  basePoints,
		ComboBonus:  comboBonus,
		TotalPoints: basePoints + comboBonus,
		Timestamp:   a.now(),
	}

	a.score.CurrentScore += b.TotalPoints
	a.score.BasePointsEarned += basePoints
	a.score.ComboBonusEarned += comboBonus
	if comboBonus > 0 {
		a.score.TotalCombos++
		a.lengthEarned += a.comboLength
		a.score.AverageComboLength = float64(a.lengthEarned) / float64(a.score.TotalCombos)
	}

	a.history = append(a.history, b)
	if len(a.history) > a.historyLimit {
		a.history = a.history[1:]
	}

	a.subs.notify(a.score)
	return b
}

// Score returns the current summary.
func (a *ScoreAggregator) Score() GameScore { return a.score }

// History returns a copy of the retained scoring events, oldest first.
func (a *ScoreAggregator) History() []ScoreBreakdown {
	h := make([]ScoreBreakdown, len(a.history))
	copy(h, a.history)
	return h
}

// HistoryLimit reports the retention cap.
func (a *ScoreAggregator) HistoryLimit() int { return a.historyLimit }

// OnScoreUpdate subscribes to summary updates and returns an unsubscribe
// func.
func (a *ScoreAggregator) OnScoreUpdate(fn func(GameScore)) func() {
	return a.subs.add(fn)
}

// Reset clears the summary and history. Subscribers stay registered.
func (a *ScoreAggregator) Reset() {
	a.score = GameScore{}
	a.history = nil
	a.lengthEarned = 0
}
