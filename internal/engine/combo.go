package engine

import (
	"time"

	"combosnake/internal/config"
)

// ComboEventType is the lifecycle phase a combo event announces.
type ComboEventType string

const (
	ComboStarted   ComboEventType = "started"
	ComboProgress  ComboEventType = "progress"
	ComboCompleted ComboEventType = "completed"
	ComboBroken    ComboEventType = "broken"
)

// ComboEvent announces a change in the combo sequence. Sequence is a copy of
// the numbers eaten so far (for broken events, the numbers eaten before the
// break). TotalPoints carries the bonus on completion and is zero otherwise.
type ComboEvent struct {
	Type        ComboEventType `json:"type"`
	Sequence    []int          `json:"sequence"`
	Progress    int            `json:"progress"`
	TotalPoints int            `json:"total_points"`
	Timestamp   time.Time      `json:"timestamp"`
}

// ComboTracker watches the order in which numbered food is eaten. Eating
// 1..N in order completes a combo; eating out of order breaks it. The food
// that broke a combo does not seed the next one unless it is a 1, which
// starts a fresh sequence immediately.
type ComboTracker struct {
	seqLen int
	bonus  int
	now    TimeSource

	expectedNext int
	sequence     []int

	completed int
	broken    int

	subs subscribers[ComboEvent]
}

// NewComboTracker builds a tracker for cfg. A nil time source means time.Now.
func NewComboTracker(cfg config.ComboConfig, now TimeSource) *ComboTracker {
	seqLen := cfg.SequenceLength
	if seqLen < 1 {
		seqLen = 1
	}
	return &ComboTracker{
		seqLen:       seqLen,
		bonus:        cfg.Bonus,
		now:          orSystemTime(now),
		expectedNext: 1,
	}
}

// ProcessFood feeds one eaten food number into the tracker and returns the
// events it produced, in the order they were published to subscribers. A
// break followed by a re-seed on 1 yields two events.
func (t *ComboTracker) ProcessFood(number int) []ComboEvent {
	var events []ComboEvent
	if number != t.expectedNext {
		events = append(events, t.breakSequence())
		if number != 1 {
			return events
		}
		// A 1 restarts the sequence even when it arrived as the breaker.
	}

	t.sequence = append(t.sequence, number)
	t.expectedNext = number + 1

	switch {
	case t.expectedNext > t.seqLen:
		t.completed++
		events = append(events, t.publish(ComboCompleted, t.bonus))
		t.resetSequence()
	case len(t.sequence) == 1:
		events = append(events, t.publish(ComboStarted, 0))
	default:
		events = append(events, t.publish(ComboProgress, 0))
	}
	return events
}

func (t *ComboTracker) breakSequence() ComboEvent {
	t.broken++
	ev := t.publish(ComboBroken, 0)
	t.resetSequence()
	return ev
}

func (t *ComboTracker) publish(typ ComboEventType, points int) ComboEvent {
	seq := make([]int, len(t.sequence))
	copy(seq, t.sequence)
	ev := ComboEvent{
		Type:        typ,
		Sequence:    seq,
		Progress:    len(t.sequence),
		TotalPoints: points,
		Timestamp:   t.now(),
	}
	t.subs.notify(ev)
	return ev
}

func (t *ComboTracker) resetSequence() {
	t.sequence = t.sequence[:0]
	t.expectedNext = 1
}

// ExpectedNext reports the number that continues the current sequence.
func (t *ComboTracker) ExpectedNext() int { return t.expectedNext }

// Sequence returns a copy of the numbers eaten so far.
func (t *ComboTracker) Sequence() []int {
	seq := make([]int, len(t.sequence))
	copy(seq, t.sequence)
	return seq
}

// InProgress reports whether a sequence has been started and not resolved.
func (t *ComboTracker) InProgress() bool { return len(t.sequence) > 0 }

// SequenceLength reports the configured combo length.
func (t *ComboTracker) SequenceLength() int { return t.seqLen }

// Completed reports how many combos finished since construction or Reset.
func (t *ComboTracker) Completed() int { return t.completed }

// Broken reports how many combos broke since construction or Reset.
func (t *ComboTracker) Broken() int { return t.broken }

// OnCombo subscribes to combo events and returns an unsubscribe func.
func (t *ComboTracker) OnCombo(fn func(ComboEvent)) func() {
	return t.subs.add(fn)
}

// Reset returns the tracker to its construction state without emitting a
// broken event. Subscribers stay registered.
func (t *ComboTracker) Reset() {
	t.resetSequence()
	t.completed = 0
	t.broken = 0
}
