package game

import "combosnake/internal/core"

// AutoPilot steers a session toward its next food. The headless runner uses
// it to exercise full games without a human player. Steering is greedy: it
// closes the larger axis gap first and falls back to any move that does not
// hit a wall or the snake's own body on the very next step.
type AutoPilot struct{}

// Steer buffers at most one direction change for the coming step.
func (AutoPilot) Steer(s *Session) {
	target, ok := s.TargetFood()
	if !ok {
		return
	}
	head := s.Snake().Head()
	dir := s.Direction()

	dx := target.Pos.X - head.X
	dy := target.Pos.Y - head.Y

	var wants []core.Direction
	if abs(dx) >= abs(dy) {
		wants = append(wants, horizontal(dx), vertical(dy))
	} else {
		wants = append(wants, vertical(dy), horizontal(dx))
	}
	// Fallbacks keep the bot alive when the direct route is blocked.
	wants = append(wants, dir, core.DirUp, core.DirDown, core.DirLeft, core.DirRight)

	for _, d := range wants {
		if d < 0 {
			continue
		}
		if d.IsOpposite(dir) {
			continue
		}
		if !s.safe(d) {
			continue
		}
		s.SetDirection(d)
		return
	}
}

// safe reports whether moving one cell in d stays on the board and off the
// snake's body.
func (s *Session) safe(d core.Direction) bool {
	dx, dy := d.Offset()
	next := s.snake.Head().Add(dx*s.bounds.Cell, dy*s.bounds.Cell)
	if !s.bounds.Contains(next) {
		return false
	}
	// The tail cell frees up on the same step unless the snake is growing.
	if s.grow == 0 && s.snake.Len() > 0 {
		tail := s.snake.Positions()[s.snake.Len()-1]
		if next == tail {
			return true
		}
	}
	return !s.snake.Occupies(next)
}

func horizontal(dx int) core.Direction {
	switch {
	case dx > 0:
		return core.DirRight
	case dx < 0:
		return core.DirLeft
	default:
		return -1
	}
}

func vertical(dy int) core.Direction {
	switch {
	case dy > 0:
		return core.DirDown
	case dy < 0:
		return core.DirUp
	default:
		return -1
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
