package engine

import (
	"time"

	"combosnake/internal/config"
)

// Stopwatch measures elapsed session time with pause support. Every method
// takes the current instant from the caller, so the type holds no timer and
// never reads the wall clock itself.
//
// The lifecycle is Start -> (Pause <-> Resume)* -> Stop. Stopping freezes
// the accumulated time; a later Start continues from it. Reset returns to
// zero.
type Stopwatch struct {
	running     bool
	paused      bool
	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	accumulated time.Duration
}

// Start begins or continues timing. It is a no-op while already running.
func (w *Stopwatch) Start(now time.Time) {
	if w.running {
		return
	}
	w.running = true
	w.paused = false
	w.startedAt = now
	w.pausedTotal = 0
}

// Stop freezes the elapsed time. It is a no-op while stopped.
func (w *Stopwatch) Stop(now time.Time) {
	if !w.running {
		return
	}
	w.accumulated = w.Elapsed(now)
	w.running = false
	w.paused = false
}

// Pause suspends timing; paused intervals are excluded from Elapsed.
func (w *Stopwatch) Pause(now time.Time) {
	if !w.running || w.paused {
		return
	}
	w.paused = true
	w.pausedAt = now
}

// Resume continues timing after a Pause.
func (w *Stopwatch) Resume(now time.Time) {
	if !w.running || !w.paused {
		return
	}
	w.pausedTotal += now.Sub(w.pausedAt)
	w.paused = false
}

// Elapsed reports the running time excluding paused intervals.
func (w *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !w.running {
		return w.accumulated
	}
	end := now
	if w.paused {
		end = w.pausedAt
	}
	return w.accumulated + end.Sub(w.startedAt) - w.pausedTotal
}

// Running reports whether the stopwatch is started and not stopped.
func (w *Stopwatch) Running() bool { return w.running }

// Paused reports whether the stopwatch is currently paused.
func (w *Stopwatch) Paused() bool { return w.paused }

// Reset returns the stopwatch to its zero state.
func (w *Stopwatch) Reset() {
	*w = Stopwatch{}
}

// FrameSample is the measurement produced by one clock tick.
type FrameSample struct {
	// Delta is the raw time since the previous tick, zero on the first.
	Delta time.Duration
	// Smoothed is the mean delta over the recent history window.
	Smoothed time.Duration
	// FPS is derived from the smoothed delta, zero until samples exist.
	FPS float64
	// Stable is set once the variance of recent deltas sits below the
	// configured threshold.
	Stable bool
}

// stableMinSamples is the fewest recorded deltas before the stability flag
// may be raised; shorter histories use their full length instead.
const stableMinSamples = 10

// FrameClock measures per-tick deltas and keeps a bounded history for
// smoothing, FPS estimation and stability detection. Like Stopwatch it is
// fed the current instant by its caller.
type FrameClock struct {
	historySize int
	varianceMax float64 // milliseconds squared

	last    time.Time
	hasLast bool

	history []float64 // delta milliseconds, ring buffer
	next    int
	filled  int
}

// NewFrameClock returns a clock keeping historySize deltas. stabilityVariance
// is the variance ceiling, in milliseconds squared, under which the frame
// rate counts as stable.
func NewFrameClock(historySize int, stabilityVariance float64) *FrameClock {
	if historySize < 1 {
		historySize = 1
	}
	return &FrameClock{
		historySize: historySize,
		varianceMax: stabilityVariance,
		history:     make([]float64, historySize),
	}
}

// Tick records the instant and returns the resulting sample. The first tick
// measures nothing and reports a zero delta.
func (c *FrameClock) Tick(now time.Time) FrameSample {
	if !c.hasLast {
		c.last = now
		c.hasLast = true
		return FrameSample{}
	}
	delta := now.Sub(c.last)
	c.last = now
	c.record(float64(delta) / float64(time.Millisecond))
	return c.sample(delta)
}

func (c *FrameClock) record(deltaMs float64) {
	c.history[c.next] = deltaMs
	c.next = (c.next + 1) % c.historySize
	if c.filled < c.historySize {
		c.filled++
	}
}

func (c *FrameClock) sample(delta time.Duration) FrameSample {
	mean := c.meanMs()
	return FrameSample{
		Delta:    delta,
		Smoothed: time.Duration(mean * float64(time.Millisecond)),
		FPS:      fpsFromMean(mean),
		Stable:   c.stable(mean),
	}
}

func (c *FrameClock) meanMs() float64 {
	if c.filled == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < c.filled; i++ {
		sum += c.history[i]
	}
	return sum / float64(c.filled)
}

func (c *FrameClock) varianceMs(mean float64) float64 {
	if c.filled == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < c.filled; i++ {
		d := c.history[i] - mean
		sum += d * d
	}
	return sum / float64(c.filled)
}

func (c *FrameClock) stable(mean float64) bool {
	min := stableMinSamples
	if c.historySize < min {
		min = c.historySize
	}
	if c.filled < min {
		return false
	}
	return c.varianceMs(mean) <= c.varianceMax
}

// FPS reports the current smoothed frame rate.
func (c *FrameClock) FPS() float64 {
	return fpsFromMean(c.meanMs())
}

// SmoothedDelta reports the mean of the recorded deltas.
func (c *FrameClock) SmoothedDelta() time.Duration {
	return time.Duration(c.meanMs() * float64(time.Millisecond))
}

// Stable reports whether recent deltas sit within the variance threshold.
func (c *FrameClock) Stable() bool {
	return c.stable(c.meanMs())
}

// Reset clears the measurement history; the next tick measures nothing.
func (c *FrameClock) Reset() {
	c.hasLast = false
	c.next = 0
	c.filled = 0
}

func fpsFromMean(meanMs float64) float64 {
	if meanMs <= 0 {
		return 0
	}
	return 1000 / meanMs
}

// AdaptiveClock wraps a FrameClock with a target frame rate that steps down
// when the measured rate stays below target for a sustained stretch, and
// steps back up once headroom returns. The scheduler paces its timer off
// Interval.
type AdaptiveClock struct {
	frame *FrameClock
	cfg   config.ClockConfig

	target     float64
	belowTicks int // sustained ticks below target
	aboveTicks int // sustained ticks with headroom
}

// NewAdaptiveClock builds a clock from cfg. Out-of-range values are clamped
// rather than rejected; config validation happens at load time.
func NewAdaptiveClock(cfg config.ClockConfig) *AdaptiveClock {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 60
	}
	if cfg.MinFPS <= 0 || cfg.MinFPS > cfg.TargetFPS {
		cfg.MinFPS = cfg.TargetFPS
	}
	if cfg.MaxFPS < cfg.TargetFPS {
		cfg.MaxFPS = cfg.TargetFPS
	}
	if cfg.FPSStep <= 0 {
		cfg.FPSStep = 5
	}
	if cfg.SustainedTicks <= 0 {
		cfg.SustainedTicks = 1
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 60
	}
	return &AdaptiveClock{
		frame:  NewFrameClock(cfg.HistorySize, cfg.StabilityVariance),
		cfg:    cfg,
		target: float64(cfg.TargetFPS),
	}
}

// Tick records the instant, adapts the target rate and returns the sample.
func (a *AdaptiveClock) Tick(now time.Time) FrameSample {
	s := a.frame.Tick(now)
	if s.FPS > 0 {
		a.adapt(s.FPS)
	}
	return s
}

func (a *AdaptiveClock) adapt(fps float64) {
	switch {
	case fps < a.target-a.cfg.FPSTolerance:
		a.aboveTicks = 0
		a.belowTicks++
		if a.belowTicks >= a.cfg.SustainedTicks {
			a.belowTicks = 0
			a.target = maxFloat(a.target-float64(a.cfg.FPSStep), float64(a.cfg.MinFPS))
		}
	case fps > a.target+a.cfg.FPSTolerance:
		a.belowTicks = 0
		a.aboveTicks++
		if a.aboveTicks >= a.cfg.SustainedTicks {
			a.aboveTicks = 0
			ceiling := float64(a.cfg.TargetFPS)
			if float64(a.cfg.MaxFPS) < ceiling {
				ceiling = float64(a.cfg.MaxFPS)
			}
			a.target = minFloat(a.target+float64(a.cfg.FPSStep), ceiling)
		}
	default:
		a.belowTicks = 0
		a.aboveTicks = 0
	}
}

// TargetFPS reports the current adapted target rate.
func (a *AdaptiveClock) TargetFPS() float64 { return a.target }

// Interval is the tick period corresponding to the current target rate.
func (a *AdaptiveClock) Interval() time.Duration {
	return time.Duration(float64(time.Second) / a.target)
}

// FPS reports the measured smoothed frame rate.
func (a *AdaptiveClock) FPS() float64 { return a.frame.FPS() }

// Stable reports the underlying frame clock stability flag.
func (a *AdaptiveClock) Stable() bool { return a.frame.Stable() }

// Reset clears measurements and restores the configured target rate.
func (a *AdaptiveClock) Reset() {
	a.frame.Reset()
	a.target = float64(a.cfg.TargetFPS)
	a.belowTicks = 0
	a.aboveTicks = 0
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
