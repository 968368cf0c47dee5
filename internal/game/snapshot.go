package game

import (
	"encoding/json"
	"fmt"
	"time"

	"combosnake/internal/config"
	"combosnake/internal/engine"
)

// SessionSnapshot is the exported form of a run: identity, pace and score.
// Board state is deliberately not part of it; importing resumes the pace and
// score on a fresh board.
type SessionSnapshot struct {
	SessionID string               `json:"session_id"`
	Mode      string               `json:"mode"`
	CreatedAt time.Time            `json:"created_at"`
	ElapsedMS int64                `json:"elapsed_ms"`
	Config    config.GameConfig    `json:"config"`
	Speed     engine.SpeedSnapshot `json:"speed"`
	Score     engine.ScoreSnapshot `json:"score"`
}

// Validate checks the snapshot before it is applied. Every component
// snapshot must pass so that an import either applies fully or not at all.
func (s SessionSnapshot) Validate() error {
	if s.SessionID == "" {
		return fmt.Errorf("game: snapshot has no session id")
	}
	if s.Mode == "" {
		return fmt.Errorf("game: snapshot has no mode")
	}
	if s.ElapsedMS < 0 {
		return fmt.Errorf("game: snapshot elapsed time is negative")
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("game: snapshot config: %w", err)
	}
	if err := s.Speed.Validate(); err != nil {
		return fmt.Errorf("game: snapshot speed: %w", err)
	}
	if err := s.Score.Validate(); err != nil {
		return fmt.Errorf("game: snapshot score: %w", err)
	}
	return nil
}

// Export serializes the session for persistence.
func (s *Session) Export() ([]byte, error) {
	snap := SessionSnapshot{
		SessionID: s.id,
		Mode:      s.mode,
		CreatedAt: s.createdAt,
		ElapsedMS: s.elapsed.Milliseconds(),
		Config:    s.cfg,
		Speed:     s.speed.Export(),
		Score:     s.score.Export(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("game: session export: %w", err)
	}
	return data, nil
}

// Import restores an exported session onto this one. The snapshot must be
// for the same mode and the same board geometry; pace and score state are
// restored while the board itself restarts fresh. An invalid snapshot is
// rejected as a whole and the session keeps its current state.
func (s *Session) Import(data []byte) error {
	var snap SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("game: session import: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("game: session import: %w", err)
	}
	if snap.Mode != s.mode {
		return fmt.Errorf("game: session import: snapshot mode %q does not match %q", snap.Mode, s.mode)
	}
	if snap.Config.Board != s.cfg.Board {
		return fmt.Errorf("game: session import: board geometry differs")
	}
	if snap.Config.Combo != s.cfg.Combo {
		return fmt.Errorf("game: session import: combo settings differ")
	}

	if err := s.speed.Import(snap.Speed); err != nil {
		return fmt.Errorf("game: session import: %w", err)
	}
	if err := s.score.Import(snap.Score); err != nil {
		return fmt.Errorf("game: session import: %w", err)
	}

	s.id = snap.SessionID
	s.createdAt = snap.CreatedAt
	s.elapsed = time.Duration(snap.ElapsedMS) * time.Millisecond
	s.cfg.Speed = snap.Speed.Config
	s.cfg.Score = snap.Config.Score

	s.combo.Reset()
	s.stepAcc = 0
	s.foodsEaten = 0
	s.over = false
	s.endedBy = engine.CollisionResult{}
	s.spawnSnake()
	s.foods.Reset(s.snake)
	return nil
}
