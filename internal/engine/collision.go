package engine

import (
	"errors"
	"fmt"

	"combosnake/internal/core"
)

// ErrEmptySnake is returned when a collision check is asked about a snake
// with no segments.
var ErrEmptySnake = errors.New("engine: collision check on empty snake")

// CollisionType classifies what the head ran into.
type CollisionType string

const (
	CollisionNone     CollisionType = "none"
	CollisionBoundary CollisionType = "boundary"
	CollisionSelf     CollisionType = "self"
)

// CollisionResult describes the outcome of a check. Position is the head
// position at the moment of impact and Details names the edge or segment hit.
type CollisionResult struct {
	HasCollision bool           `json:"has_collision"`
	Type         CollisionType  `json:"type"`
	Position     *core.Position `json:"position,omitempty"`
	Details      string         `json:"details,omitempty"`
}

// CollisionChecker is the contract shared by the plain and the cached
// detector, so callers can swap one for the other.
type CollisionChecker interface {
	Check(snake *core.Snake) (CollisionResult, error)
}

var (
	_ CollisionChecker = (*CollisionDetector)(nil)
	_ CollisionChecker = (*CachedCollisionDetector)(nil)
)

// CollisionDetector checks a snake against the board edges and against its
// own body. Boundary checks run first and short-circuit the body scan.
type CollisionDetector struct {
	bounds core.Bounds

	boundaryChecks uint64
	bodyScans      uint64
}

// NewCollisionDetector builds a detector for the given board.
func NewCollisionDetector(bounds core.Bounds) *CollisionDetector {
	return &CollisionDetector{bounds: bounds}
}

// SetBounds swaps the board geometry.
func (d *CollisionDetector) SetBounds(b core.Bounds) { d.bounds = b }

// Bounds reports the board geometry in use.
func (d *CollisionDetector) Bounds() core.Bounds { return d.bounds }

// Check runs the boundary test and, only if it passes, the body scan.
func (d *CollisionDetector) Check(snake *core.Snake) (CollisionResult, error) {
	if snake == nil || snake.Len() == 0 {
		return CollisionResult{}, ErrEmptySnake
	}
	head := snake.Head()
	if res := d.checkBoundary(head); res.HasCollision {
		return res, nil
	}
	return d.checkBody(snake, head), nil
}

func (d *CollisionDetector) checkBoundary(head core.Position) CollisionResult {
	d.boundaryChecks++
	edge := ""
	switch {
	case head.X < 0:
		edge = "left"
	case head.X > d.bounds.MaxX():
		edge = "right"
	case head.Y < 0:
		edge = "top"
	case head.Y > d.bounds.MaxY():
		edge = "bottom"
	}
	if edge == "" {
		return CollisionResult{Type: CollisionNone}
	}
	at := head
	return CollisionResult{
		HasCollision: true,
		Type:         CollisionBoundary,
		Position:     &at,
		Details:      edge + " edge",
	}
}

func (d *CollisionDetector) checkBody(snake *core.Snake, head core.Position) CollisionResult {
	d.bodyScans++
	for i, seg := range snake.Segments[1:] {
		if seg.Pos == head {
			at := head
			return CollisionResult{
				HasCollision: true,
				Type:         CollisionSelf,
				Position:     &at,
				Details:      fmt.Sprintf("segment %d", i+1),
			}
		}
	}
	return CollisionResult{Type: CollisionNone}
}

// BodyScans reports how many full body scans have run.
func (d *CollisionDetector) BodyScans() uint64 { return d.bodyScans }

// BoundaryChecks reports how many boundary tests have run.
func (d *CollisionDetector) BoundaryChecks() uint64 { return d.boundaryChecks }

// CachedCollisionDetector wraps a CollisionDetector with a single-slot cache
// keyed by head position: repeated checks within the same tick, where the
// head has not moved, reuse the previous result instead of rescanning the
// body. Any head movement, bounds change or explicit Invalidate evicts the
// slot.
type CachedCollisionDetector struct {
	inner *CollisionDetector

	cached   bool
	lastHead core.Position
	lastRes  CollisionResult
	hits     uint64
}

// NewCachedCollisionDetector builds a caching detector for the given board.
func NewCachedCollisionDetector(bounds core.Bounds) *CachedCollisionDetector {
	return &CachedCollisionDetector{inner: NewCollisionDetector(bounds)}
}

// Check returns the cached result when the head is unchanged, otherwise
// delegates and refills the slot.
func (c *CachedCollisionDetector) Check(snake *core.Snake) (CollisionResult, error) {
	if snake == nil || snake.Len() == 0 {
		return CollisionResult{}, ErrEmptySnake
	}
	head := snake.Head()
	if c.cached && head == c.lastHead {
		c.hits++
		return c.lastRes, nil
	}
	res, err := c.inner.Check(snake)
	if err != nil {
		return res, err
	}
	c.cached = true
	c.lastHead = head
	c.lastRes = res
	return res, nil
}

// SetBounds swaps the board geometry and evicts the cache.
func (c *CachedCollisionDetector) SetBounds(b core.Bounds) {
	c.inner.SetBounds(b)
	c.Invalidate()
}

// Bounds reports the board geometry in use.
func (c *CachedCollisionDetector) Bounds() core.Bounds { return c.inner.Bounds() }

// Invalidate evicts the cached result.
func (c *CachedCollisionDetector) Invalidate() { c.cached = false }

// CacheHits reports how many checks were answered from the cache.
func (c *CachedCollisionDetector) CacheHits() uint64 { return c.hits }

// BodyScans reports how many full body scans reached the inner detector.
func (c *CachedCollisionDetector) BodyScans() uint64 { return c.inner.BodyScans() }
