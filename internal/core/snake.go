package core

import "strconv"

// Segment is one cell of the snake body with a stable identity, so
// consumers can track individual segments across moves.
type Segment struct {
	ID  string   `json:"id"`
	Pos Position `json:"position"`
}

// Snake is the ordered body of the snake. The head is always Segments[0].
// The snake is owned and mutated by the game simulation; the collision
// detector only reads it.
type Snake struct {
	Segments []Segment `json:"segments"`

	nextID int
}

// NewSnake builds a snake from head to tail along the given positions.
func NewSnake(positions ...Position) *Snake {
	s := &Snake{Segments: make([]Segment, 0, len(positions))}
	for _, p := range positions {
		s.Segments = append(s.Segments, Segment{ID: s.newSegmentID(), Pos: p})
	}
	return s
}

func (s *Snake) newSegmentID() string {
	id := "seg-" + strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

// Len returns the number of body segments.
func (s *Snake) Len() int {
	return len(s.Segments)
}

// Head returns the leading segment position. The snake must not be empty.
func (s *Snake) Head() Position {
	return s.Segments[0].Pos
}

// Advance moves the snake so its new head is at next. When grow is true the
// tail is kept, lengthening the body by one segment.
func (s *Snake) Advance(next Position, grow bool) {
	head := Segment{ID: s.newSegmentID(), Pos: next}
	if grow {
		s.Segments = append([]Segment{head}, s.Segments...)
		return
	}
	// Shift everything back one slot, reusing the slice.
	copy(s.Segments[1:], s.Segments[:len(s.Segments)-1])
	s.Segments[0] = head
}

// Occupies reports whether any segment sits at the given position.
func (s *Snake) Occupies(p Position) bool {
	for _, seg := range s.Segments {
		if seg.Pos == p {
			return true
		}
	}
	return false
}

// Positions returns a copy of all segment positions, head first.
func (s *Snake) Positions() []Position {
	out := make([]Position, len(s.Segments))
	for i, seg := range s.Segments {
		out[i] = seg.Pos
	}
	return out
}
