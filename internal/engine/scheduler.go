package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"combosnake/internal/config"
)

// SchedulerState tracks the scheduler lifecycle.
type SchedulerState int32

const (
	StateStopped SchedulerState = iota
	StateRunning
	StatePaused
)

func (s SchedulerState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Callbacks bundles the hooks a Scheduler drives each tick. Any of them may
// be nil. OnUpdate receives the clamped simulation delta; OnRender fires only
// when the render limiter admits the frame; OnPerf fires once per configured
// reporting interval.
type Callbacks struct {
	OnUpdate func(delta time.Duration)
	OnRender func(delta time.Duration)
	OnPerf   func(stats PerfStats)
}

// Scheduler drives the simulation loop. It owns the adaptive clock and the
// render limiter and is the only place wall-clock time enters the engine:
// everything below it receives instants or deltas as arguments.
//
// The state machine is Stopped -> Running <-> Paused -> Stopped, and a
// stopped scheduler can be started again. Start, Stop, Pause and Resume are
// safe to call from any goroutine; Stop and Pause may also be called from
// inside a callback. Start must not be called from a callback.
type Scheduler struct {
	clock   *AdaptiveClock
	limiter *RenderLimiter
	cb      Callbacks

	maxDelta     time.Duration
	perfInterval time.Duration

	state atomic.Int32

	mu        sync.Mutex // guards stop, done
	stop      chan struct{}
	done      chan struct{}
	startedAt time.Time

	// Tick bookkeeping, touched only by the goroutine driving Advance.
	ticks       uint64
	perfElapsed time.Duration
	winUpdates  int
	winRenders  int
	winSkipped  int
}

// NewScheduler builds a scheduler from the loop and clock configuration.
func NewScheduler(cfg config.SchedulerConfig, clockCfg config.ClockConfig, cb Callbacks) *Scheduler {
	maxDelta := time.Duration(cfg.MaxDelta) * time.Millisecond
	if maxDelta <= 0 {
		maxDelta = 100 * time.Millisecond
	}
	return &Scheduler{
		clock:        NewAdaptiveClock(clockCfg),
		limiter:      NewRenderLimiter(cfg.RenderFPS),
		cb:           cb,
		maxDelta:     maxDelta,
		perfInterval: time.Duration(cfg.PerfInterval) * time.Millisecond,
	}
}

// Start launches the tick loop. Calling Start on a scheduler that is already
// running or paused is a no-op, so double starts never produce a second loop.
func (s *Scheduler) Start() {
	if !s.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return
	}

	s.mu.Lock()
	prev := s.done
	s.mu.Unlock()
	if prev != nil {
		// Let the previous loop drain before reusing the clock.
		<-prev
	}

	s.clock.Reset()
	s.limiter.Reset()
	s.ticks = 0
	s.perfElapsed = 0
	s.winUpdates, s.winRenders, s.winSkipped = 0, 0, 0

	stop := make(chan struct{})
	done := make(chan struct{})
	s.mu.Lock()
	s.stop = stop
	s.done = done
	s.startedAt = time.Now()
	s.mu.Unlock()

	go s.run(stop, done)
}

// Stop terminates the loop from any state. It does not wait for the loop
// goroutine to exit; use Done for that.
func (s *Scheduler) Stop() {
	if SchedulerState(s.state.Swap(int32(StateStopped))) == StateStopped {
		return
	}
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.mu.Unlock()
}

// Pause suspends update and render callbacks. The loop keeps ticking the
// clock so frame measurements stay continuous and resume sees no delta spike.
func (s *Scheduler) Pause() {
	s.state.CompareAndSwap(int32(StateRunning), int32(StatePaused))
}

// Resume continues callback delivery after a Pause.
func (s *Scheduler) Resume() {
	s.state.CompareAndSwap(int32(StatePaused), int32(StateRunning))
}

// State reports the current lifecycle state.
func (s *Scheduler) State() SchedulerState {
	return SchedulerState(s.state.Load())
}

// IsActive reports whether the scheduler is running or paused.
func (s *Scheduler) IsActive() bool {
	return s.State() != StateStopped
}

// Done returns a channel closed when the loop goroutine exits. For a
// scheduler that was never started the channel is already closed.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.done
}

// TargetFPS exposes the adaptive clock's current target rate.
func (s *Scheduler) TargetFPS() float64 { return s.clock.TargetFPS() }

func (s *Scheduler) run(stop, done chan struct{}) {
	defer close(done)
	timer := time.NewTimer(s.clock.Interval())
	defer timer.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-timer.C:
			s.Advance(now)
			if s.State() == StateStopped {
				return
			}
			timer.Reset(s.clock.Interval())
		}
	}
}

// Advance performs one tick at the given instant: measure, clamp, update,
// render, report. The internal loop calls it with timer fire times; hosts
// that own their own frame source (and tests) may drive it directly instead
// of calling Start.
//
// A stopped scheduler ignores Advance. A paused one only feeds the clock.
func (s *Scheduler) Advance(now time.Time) {
	switch s.State() {
	case StateStopped:
		return
	case StatePaused:
		s.clock.Tick(now)
		return
	}

	sample := s.clock.Tick(now)
	delta := sample.Delta
	if delta > s.maxDelta {
		// A hitch (GC pause, suspended host) must not turn into a huge
		// simulation step.
		delta = s.maxDelta
	}

	s.ticks++
	if s.cb.OnUpdate != nil {
		s.cb.OnUpdate(delta)
	}
	s.winUpdates++

	// OnUpdate may have stopped or paused the scheduler.
	if s.State() != StateRunning {
		return
	}

	if s.cb.OnRender != nil {
		if s.limiter.Allow(now) {
			s.cb.OnRender(delta)
			s.winRenders++
		} else {
			s.winSkipped++
		}
	}

	if s.perfInterval <= 0 || s.cb.OnPerf == nil {
		return
	}
	s.perfElapsed += sample.Delta
	if s.perfElapsed >= s.perfInterval {
		s.cb.OnPerf(PerfStats{
			FPS:            sample.FPS,
			TargetFPS:      s.clock.TargetFPS(),
			SmoothedDelta:  sample.Smoothed,
			Stable:         sample.Stable,
			Updates:        s.winUpdates,
			Renders:        s.winRenders,
			SkippedRenders: s.winSkipped,
			Ticks:          s.ticks,
			Uptime:         now.Sub(s.startedAt),
		})
		s.perfElapsed = 0
		s.winUpdates, s.winRenders, s.winSkipped = 0, 0, 0
	}
}
