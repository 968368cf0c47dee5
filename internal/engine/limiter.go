package engine

import "time"

// RenderLimiter decouples the render rate from the simulation rate by
// deadline accounting: each allowed frame schedules the next deadline one
// interval later, so average throughput matches the cap even when ticks
// land slightly early or late. After a hitch longer than one interval the
// deadline resynchronizes to the present instead of bursting to catch up.
//
// A zero FPS cap disables limiting and every frame is allowed.
type RenderLimiter struct {
	interval time.Duration
	next     time.Time
	primed   bool
}

// NewRenderLimiter caps rendering at fps frames per second. fps <= 0 means
// unlimited.
func NewRenderLimiter(fps int) *RenderLimiter {
	l := &RenderLimiter{}
	l.SetFPS(fps)
	return l
}

// SetFPS changes the cap and resynchronizes on the next frame.
func (l *RenderLimiter) SetFPS(fps int) {
	if fps <= 0 {
		l.interval = 0
	} else {
		l.interval = time.Second / time.Duration(fps)
	}
	l.primed = false
}

// Allow reports whether a frame may render at the given instant and, when it
// may, reserves the slot.
func (l *RenderLimiter) Allow(now time.Time) bool {
	if l.interval == 0 {
		return true
	}
	if !l.primed {
		l.primed = true
		l.next = now.Add(l.interval)
		return true
	}
	if now.Before(l.next) {
		return false
	}
	l.next = l.next.Add(l.interval)
	if now.After(l.next) {
		// Hitch: drop the backlog instead of rendering a burst.
		l.next = now.Add(l.interval)
	}
	return true
}

// Interval reports the configured minimum spacing between frames.
func (l *RenderLimiter) Interval() time.Duration { return l.interval }

// Reset forgets the schedule; the next Allow passes immediately.
func (l *RenderLimiter) Reset() { l.primed = false }
