package game

import (
	"math/rand"
	"sort"

	"combosnake/internal/core"
)

// Food is one edible item on the board.
type Food struct {
	Number int           `json:"number"`
	Pos    core.Position `json:"position"`
}

// FoodSpawner owns the food on the board. Implementations are driven by the
// session: Reset at the start of a run, At/Consume as the snake moves.
type FoodSpawner interface {
	// Reset places the initial food for a new run.
	Reset(snake *core.Snake)
	// At returns the food number at p, if any.
	At(p core.Position) (int, bool)
	// Consume removes the food at p and spawns its replacement.
	Consume(p core.Position, snake *core.Snake)
	// Items lists the food currently on the board, ordered by number.
	Items() []Food
}

// pickFreeCell returns a uniformly random cell-aligned position that is
// neither on the snake nor rejected by taken. It collects every empty cell
// first so the choice stays uniform even on crowded boards.
func pickFreeCell(bounds core.Bounds, rng *rand.Rand, snake *core.Snake, taken func(core.Position) bool) (core.Position, bool) {
	var empty []core.Position
	for row := 0; row < bounds.Rows(); row++ {
		for col := 0; col < bounds.Cols(); col++ {
			p := core.Position{X: col * bounds.Cell, Y: row * bounds.Cell}
			if snake != nil && snake.Occupies(p) {
				continue
			}
			if taken != nil && taken(p) {
				continue
			}
			empty = append(empty, p)
		}
	}
	if len(empty) == 0 {
		return core.Position{}, false
	}
	return empty[rng.Intn(len(empty))], true
}

// NumberedSpawner keeps one food of every number 1..count on the board at
// all times. Eating a number respawns that same number somewhere else, so
// the player can always continue or restart a sequence.
type NumberedSpawner struct {
	count  int
	bounds core.Bounds
	rng    *rand.Rand
	foods  map[int]core.Position
}

// NewNumberedSpawner builds a spawner for numbers 1..count.
func NewNumberedSpawner(count int, bounds core.Bounds, rng *rand.Rand) *NumberedSpawner {
	if count < 1 {
		count = 1
	}
	return &NumberedSpawner{
		count:  count,
		bounds: bounds,
		rng:    rng,
		foods:  make(map[int]core.Position, count),
	}
}

// Reset places every number on a free cell.
func (s *NumberedSpawner) Reset(snake *core.Snake) {
	s.foods = make(map[int]core.Position, s.count)
	for n := 1; n <= s.count; n++ {
		if p, ok := pickFreeCell(s.bounds, s.rng, snake, s.occupied); ok {
			s.foods[n] = p
		}
	}
}

func (s *NumberedSpawner) occupied(p core.Position) bool {
	for _, fp := range s.foods {
		if fp == p {
			return true
		}
	}
	return false
}

// At returns the number sitting at p, if any.
func (s *NumberedSpawner) At(p core.Position) (int, bool) {
	for n, fp := range s.foods {
		if fp == p {
			return n, true
		}
	}
	return 0, false
}

// Consume removes the food at p and respawns the same number elsewhere.
func (s *NumberedSpawner) Consume(p core.Position, snake *core.Snake) {
	n, ok := s.At(p)
	if !ok {
		return
	}
	delete(s.foods, n)
	if next, ok := pickFreeCell(s.bounds, s.rng, snake, s.occupied); ok {
		s.foods[n] = next
	}
}

// Items lists the food on the board, ordered by number.
func (s *NumberedSpawner) Items() []Food {
	items := make([]Food, 0, len(s.foods))
	for n, p := range s.foods {
		items = append(items, Food{Number: n, Pos: p})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items
}

// Position returns where a given number currently sits.
func (s *NumberedSpawner) Position(number int) (core.Position, bool) {
	p, ok := s.foods[number]
	return p, ok
}

// SingleSpawner keeps exactly one unnumbered food on the board, the classic
// rules. Its food always reports number 1.
type SingleSpawner struct {
	bounds  core.Bounds
	rng     *rand.Rand
	food    core.Position
	present bool
}

// NewSingleSpawner builds a classic one-food spawner.
func NewSingleSpawner(bounds core.Bounds, rng *rand.Rand) *SingleSpawner {
	return &SingleSpawner{bounds: bounds, rng: rng}
}

// Reset places the food on a free cell.
func (s *SingleSpawner) Reset(snake *core.Snake) {
	s.food, s.present = pickFreeCell(s.bounds, s.rng, snake, nil)
}

// At reports the food if p matches it.
func (s *SingleSpawner) At(p core.Position) (int, bool) {
	if s.present && p == s.food {
		return 1, true
	}
	return 0, false
}

// Consume respawns the food elsewhere.
func (s *SingleSpawner) Consume(p core.Position, snake *core.Snake) {
	if !s.present || p != s.food {
		return
	}
	s.food, s.present = pickFreeCell(s.bounds, s.rng, snake, nil)
}

// Items lists the single food, if present.
func (s *SingleSpawner) Items() []Food {
	if !s.present {
		return nil
	}
	return []Food{{Number: 1, Pos: s.food}}
}

var (
	_ FoodSpawner = (*NumberedSpawner)(nil)
	_ FoodSpawner = (*SingleSpawner)(nil)
)
