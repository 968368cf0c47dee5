// Package game implements the snake simulation on top of the engine
// components: board state, steering, numbered food and the combo wiring. A
// Session is pure logic driven by tick deltas; the platform layer owns the
// scheduler and the wall clock.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"combosnake/internal/config"
	"combosnake/internal/core"
	"combosnake/internal/engine"
	"combosnake/internal/registry"
)

// initialSnakeLen is how many segments a fresh snake has.
const initialSnakeLen = 3

// classicLevelFoods is how many foods raise the speed level in modes that
// play without combos.
const classicLevelFoods = 5

// Session is one run of the game. It advances in fixed simulation steps
// whose duration comes from the speed controller, so a faster pace means
// more steps per wall second.
type Session struct {
	id        string
	mode      string
	cfg       config.GameConfig
	bounds    core.Bounds
	createdAt time.Time
	now       engine.TimeSource

	snake   *core.Snake
	dir     core.Direction
	pending core.Direction
	grow    int

	foods        FoodSpawner
	comboEnabled bool
	foodsEaten   int

	collider *engine.CachedCollisionDetector
	combo    *engine.ComboTracker
	speed    *engine.SpeedController
	score    *engine.ScoreAggregator

	stepAcc time.Duration
	elapsed time.Duration
	over    bool
	endedBy engine.CollisionResult
}

var _ registry.Session = (*Session)(nil)

// NewSession builds a session for the given mode. comboEnabled selects
// whether eaten food feeds the combo tracker or plays classic rules where
// every fifth food raises the pace. A nil time source means time.Now.
func NewSession(mode string, cfg config.GameConfig, foods FoodSpawner, comboEnabled bool, now engine.TimeSource) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	speed, err := engine.NewSpeedController(cfg.Speed, now)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	bounds := boundsOf(cfg.Board)
	s := &Session{
		id:           uuid.NewString(),
		mode:         mode,
		cfg:          cfg,
		bounds:       bounds,
		createdAt:    now(),
		now:          now,
		foods:        foods,
		comboEnabled: comboEnabled,
		collider:     engine.NewCachedCollisionDetector(bounds),
		combo:        engine.NewComboTracker(cfg.Combo, now),
		speed:        speed,
		score:        engine.NewScoreAggregator(cfg.Score, cfg.Combo.SequenceLength, now),
	}
	// Combo outcomes drive the speed curve.
	s.combo.OnCombo(s.speed.HandleComboEvent)
	s.spawnSnake()
	s.foods.Reset(s.snake)
	return s, nil
}

func boundsOf(b config.BoardConfig) core.Bounds {
	return core.Bounds{Width: b.Width, Height: b.Height, Cell: b.CellSize}
}

// spawnSnake places the snake near the board center heading right.
func (s *Session) spawnSnake() {
	cell := s.bounds.Cell
	head := core.Position{
		X: (s.bounds.Cols() / 2) * cell,
		Y: (s.bounds.Rows() / 2) * cell,
	}
	positions := []core.Position{head}
	for i := 1; i < initialSnakeLen; i++ {
		p := head.Add(-i*cell, 0)
		if p.X < 0 {
			break
		}
		positions = append(positions, p)
	}
	s.snake = core.NewSnake(positions...)
	s.dir = core.DirRight
	s.pending = core.DirRight
	s.grow = 0
	s.collider.Invalidate()
}

// SetDirection buffers a steering input for the next simulation step.
// Reversals are ignored so the snake cannot fold onto its own neck.
func (s *Session) SetDirection(d core.Direction) {
	if s.over {
		return
	}
	if d.IsOpposite(s.dir) {
		return
	}
	s.pending = d
}

// Tick advances the session by a frame delta. A single delta can cover
// several simulation steps when the pace is faster than the frame rate;
// the speed transition is advanced once per frame with the raw delta.
func (s *Session) Tick(delta time.Duration) {
	if s.over || delta <= 0 {
		return
	}
	s.elapsed += delta
	s.stepAcc += delta
	for !s.over {
		step := s.speed.CurrentSpeed()
		if step <= 0 || s.stepAcc < step {
			break
		}
		s.stepAcc -= step
		s.step()
	}
	s.speed.Update(delta)
}

// step moves the snake one cell and resolves what it finds there.
func (s *Session) step() {
	s.dir = s.pending
	dx, dy := s.dir.Offset()
	next := s.snake.Head().Add(dx*s.bounds.Cell, dy*s.bounds.Cell)

	grow := s.grow > 0
	if grow {
		s.grow--
	}
	s.snake.Advance(next, grow)

	res, err := s.collider.Check(s.snake)
	if err != nil {
		s.over = true
		return
	}
	if res.HasCollision {
		s.over = true
		s.endedBy = res
		return
	}

	if number, ok := s.foods.At(next); ok {
		s.eat(number, next)
	}
}

// eat consumes the food at p and routes it through combo, score and pace.
func (s *Session) eat(number int, p core.Position) {
	s.grow++
	s.foodsEaten++

	bonus := 0
	if s.comboEnabled {
		for _, ev := range s.combo.ProcessFood(number) {
			if ev.Type == engine.ComboCompleted {
				bonus += ev.TotalPoints
			}
		}
	} else if s.foodsEaten%classicLevelFoods == 0 {
		s.speed.LevelUp()
	}
	s.score.AddScore(s.cfg.Score.BasePoints, bonus)
	s.foods.Consume(p, s.snake)
}

// SessionID returns the unique id assigned at construction.
func (s *Session) SessionID() string { return s.id }

// Mode returns the mode id this session was built for.
func (s *Session) Mode() string { return s.mode }

// Config returns the session configuration.
func (s *Session) Config() config.GameConfig { return s.cfg }

// Bounds returns the board geometry.
func (s *Session) Bounds() core.Bounds { return s.bounds }

// Snake returns the live snake. Callers must not mutate it.
func (s *Session) Snake() *core.Snake { return s.snake }

// Direction returns the direction the snake is currently moving.
func (s *Session) Direction() core.Direction { return s.dir }

// Foods lists the food currently on the board.
func (s *Session) Foods() []Food { return s.foods.Items() }

// TargetFood returns the food the player should eat next: the expected
// sequence number in combo play, otherwise the single classic food.
func (s *Session) TargetFood() (Food, bool) {
	if s.comboEnabled {
		want := s.combo.ExpectedNext()
		for _, f := range s.foods.Items() {
			if f.Number == want {
				return f, true
			}
		}
		return Food{}, false
	}
	items := s.foods.Items()
	if len(items) == 0 {
		return Food{}, false
	}
	return items[0], true
}

// IsOver reports whether the run has ended.
func (s *Session) IsOver() bool { return s.over }

// EndedBy returns the collision that ended the run, if any.
func (s *Session) EndedBy() engine.CollisionResult { return s.endedBy }

// Score returns the current score summary.
func (s *Session) Score() engine.GameScore { return s.score.Score() }

// ScoreHistory returns the per-event score breakdowns, oldest first.
func (s *Session) ScoreHistory() []engine.ScoreBreakdown { return s.score.History() }

// CurrentSpeed returns the live step duration.
func (s *Session) CurrentSpeed() time.Duration { return s.speed.CurrentSpeed() }

// TargetSpeed returns the step duration the pace is easing toward.
func (s *Session) TargetSpeed() time.Duration { return s.speed.TargetSpeed() }

// SpeedLevel returns how many speed-ups are in effect.
func (s *Session) SpeedLevel() int { return s.speed.Level() }

// SpeedStats returns counters describing the pace so far.
func (s *Session) SpeedStats() engine.SpeedStats { return s.speed.Stats() }

// ComboSequence returns a copy of the numbers eaten toward the next combo.
func (s *Session) ComboSequence() []int { return s.combo.Sequence() }

// ExpectedNext returns the number that continues the combo sequence.
func (s *Session) ExpectedNext() int { return s.combo.ExpectedNext() }

// FoodsEaten returns how many foods the snake has eaten this run.
func (s *Session) FoodsEaten() int { return s.foodsEaten }

// Elapsed returns accumulated simulation time.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// CreatedAt returns when the session was constructed.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// CollisionStats returns detector counters for diagnostics.
func (s *Session) CollisionStats() (bodyScans, cacheHits uint64) {
	return s.collider.BodyScans(), s.collider.CacheHits()
}

// OnCombo subscribes to combo lifecycle events. The returned function
// removes the subscription.
func (s *Session) OnCombo(fn func(engine.ComboEvent)) func() {
	return s.combo.OnCombo(fn)
}

// OnScoreUpdate subscribes to score changes.
func (s *Session) OnScoreUpdate(fn func(engine.GameScore)) func() {
	return s.score.OnScoreUpdate(fn)
}

// OnSpeedChange subscribes to pace changes.
func (s *Session) OnSpeedChange(fn func(engine.SpeedChangeEvent)) func() {
	return s.speed.OnSpeedChange(fn)
}

// Restart rewinds the session to a fresh board with the same configuration
// and mode. Scores, combos and pace all reset; the session id is kept.
func (s *Session) Restart() {
	s.combo.Reset()
	s.speed.Reset()
	s.score.Reset()
	s.stepAcc = 0
	s.elapsed = 0
	s.foodsEaten = 0
	s.over = false
	s.endedBy = engine.CollisionResult{}
	s.spawnSnake()
	s.foods.Reset(s.snake)
}
