// Package core provides fundamental types shared by the simulation engine
// and the game layer. It contains no external dependencies to keep the
// simulation logic pure and testable.
package core

// Position represents a point on the play field in pixel coordinates.
// Snake segments and food advance in whole-cell steps, so positions are
// always multiples of the cell size.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position translated by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Direction represents a movement direction on the grid.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Offset returns the unit grid offset for the direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	default:
		return d
	}
}

// IsOpposite reports whether moving in d immediately after other would
// reverse the snake into itself.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Opposite() == other
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Bounds describes the playable area in pixels together with the cell size.
// The valid range for a cell-aligned position is [0, Width-Cell] on X and
// [0, Height-Cell] on Y: the last full cell starts one cell before the edge.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Cell   int `json:"cell"`
}

// MaxX returns the largest valid X for a cell-aligned position.
func (b Bounds) MaxX() int {
	return b.Width - b.Cell
}

// MaxY returns the largest valid Y for a cell-aligned position.
func (b Bounds) MaxY() int {
	return b.Height - b.Cell
}

// Contains reports whether the position lies fully inside the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X <= b.MaxX() && p.Y >= 0 && p.Y <= b.MaxY()
}

// Cols returns the number of whole cells that fit horizontally.
func (b Bounds) Cols() int {
	if b.Cell <= 0 {
		return 0
	}
	return b.Width / b.Cell
}

// Rows returns the number of whole cells that fit vertically.
func (b Bounds) Rows() int {
	if b.Cell <= 0 {
		return 0
	}
	return b.Height / b.Cell
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
