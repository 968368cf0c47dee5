package engine

import (
	"testing"
	"time"

	"combosnake/internal/config"
)

// fakeClock hands out instants that tests advance by hand.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) time.Time {
	f.t = f.t.Add(d)
	return f.t
}

func testClockConfig() config.ClockConfig {
	return config.ClockConfig{
		TargetFPS:         60,
		MinFPS:            30,
		MaxFPS:            120,
		FPSStep:           5,
		SustainedTicks:    10,
		FPSTolerance:      5,
		HistorySize:       10,
		StabilityVariance: 25,
	}
}

func TestStopwatchExcludesPausedTime(t *testing.T) {
	fc := newFakeClock()
	var w Stopwatch

	w.Start(fc.now())
	fc.advance(100 * time.Millisecond)
	w.Pause(fc.now())
	fc.advance(500 * time.Millisecond) // must not count
	w.Resume(fc.now())
	fc.advance(150 * time.Millisecond)

	if got := w.Elapsed(fc.now()); got != 250*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 250ms", got)
	}
}

func TestStopwatchElapsedWhilePaused(t *testing.T) {
	fc := newFakeClock()
	var w Stopwatch

	w.Start(fc.now())
	fc.advance(60 * time.Millisecond)
	w.Pause(fc.now())
	fc.advance(40 * time.Millisecond)

	if got := w.Elapsed(fc.now()); got != 60*time.Millisecond {
		t.Errorf("Elapsed while paused = %v, expected 60ms", got)
	}
	if !w.Paused() {
		t.Error("Stopwatch should report paused")
	}
}

func TestStopwatchStopFreezesAndStartContinues(t *testing.T) {
	fc := newFakeClock()
	var w Stopwatch

	w.Start(fc.now())
	fc.advance(80 * time.Millisecond)
	w.Stop(fc.now())
	fc.advance(time.Second)

	if got := w.Elapsed(fc.now()); got != 80*time.Millisecond {
		t.Errorf("Elapsed after stop = %v, expected 80ms", got)
	}

	w.Start(fc.now())
	fc.advance(20 * time.Millisecond)
	if got := w.Elapsed(fc.now()); got != 100*time.Millisecond {
		t.Errorf("Elapsed after restart = %v, expected 100ms", got)
	}
}

func TestStopwatchIdempotentTransitions(t *testing.T) {
	fc := newFakeClock()
	var w Stopwatch

	w.Start(fc.now())
	fc.advance(50 * time.Millisecond)
	w.Start(fc.now()) // no-op while running
	fc.advance(50 * time.Millisecond)

	if got := w.Elapsed(fc.now()); got != 100*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 100ms", got)
	}

	w.Resume(fc.now()) // no-op while not paused
	w.Pause(fc.now())
	w.Pause(fc.advance(30 * time.Millisecond)) // no-op while paused
	w.Resume(fc.now())
	fc.advance(10 * time.Millisecond)

	if got := w.Elapsed(fc.now()); got != 110*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 110ms", got)
	}
}

func TestStopwatchReset(t *testing.T) {
	fc := newFakeClock()
	var w Stopwatch

	w.Start(fc.now())
	fc.advance(75 * time.Millisecond)
	w.Reset()

	if w.Running() {
		t.Error("Stopwatch should not be running after reset")
	}
	if got := w.Elapsed(fc.now()); got != 0 {
		t.Errorf("Elapsed after reset = %v, expected 0", got)
	}
}

func TestFrameClockFirstTickMeasuresNothing(t *testing.T) {
	fc := newFakeClock()
	c := NewFrameClock(10, 25)

	s := c.Tick(fc.now())
	if s.Delta != 0 {
		t.Errorf("First delta = %v, expected 0", s.Delta)
	}
	if s.FPS != 0 {
		t.Errorf("First FPS = %v, expected 0", s.FPS)
	}
}

func TestFrameClockMeasuresDeltas(t *testing.T) {
	fc := newFakeClock()
	c := NewFrameClock(10, 25)

	c.Tick(fc.now())
	var s FrameSample
	for i := 0; i < 12; i++ {
		s = c.Tick(fc.advance(16 * time.Millisecond))
	}

	if s.Delta != 16*time.Millisecond {
		t.Errorf("Delta = %v, expected 16ms", s.Delta)
	}
	if s.Smoothed != 16*time.Millisecond {
		t.Errorf("Smoothed = %v, expected 16ms", s.Smoothed)
	}
	want := 1000.0 / 16.0
	if s.FPS < want-0.01 || s.FPS > want+0.01 {
		t.Errorf("FPS = %v, expected ~%v", s.FPS, want)
	}
}

func TestFrameClockStability(t *testing.T) {
	fc := newFakeClock()
	c := NewFrameClock(10, 25)

	c.Tick(fc.now())
	var s FrameSample
	for i := 0; i < 10; i++ {
		s = c.Tick(fc.advance(16 * time.Millisecond))
	}
	if !s.Stable {
		t.Error("Uniform deltas should be stable")
	}

	// One hitch blows the variance well past the threshold.
	s = c.Tick(fc.advance(200 * time.Millisecond))
	if s.Stable {
		t.Error("A 200ms hitch should break stability")
	}
}

func TestFrameClockNotStableWithFewSamples(t *testing.T) {
	fc := newFakeClock()
	c := NewFrameClock(60, 25)

	c.Tick(fc.now())
	for i := 0; i < 5; i++ {
		if s := c.Tick(fc.advance(16 * time.Millisecond)); s.Stable {
			t.Fatal("Stability should require a minimum number of samples")
		}
	}
}

func TestFrameClockReset(t *testing.T) {
	fc := newFakeClock()
	c := NewFrameClock(10, 25)

	c.Tick(fc.now())
	c.Tick(fc.advance(16 * time.Millisecond))
	c.Reset()

	s := c.Tick(fc.advance(16 * time.Millisecond))
	if s.Delta != 0 {
		t.Errorf("Delta after reset = %v, expected 0 (first tick again)", s.Delta)
	}
	if c.FPS() != 0 {
		t.Errorf("FPS after reset = %v, expected 0", c.FPS())
	}
}

func TestAdaptiveClockDegradesUnderSustainedLoad(t *testing.T) {
	fc := newFakeClock()
	a := NewAdaptiveClock(testClockConfig())

	if a.TargetFPS() != 60 {
		t.Fatalf("Initial target = %v, expected 60", a.TargetFPS())
	}

	// ~20 FPS frames, far below every possible target.
	for i := 0; i < 200; i++ {
		a.Tick(fc.advance(50 * time.Millisecond))
	}

	if a.TargetFPS() != 30 {
		t.Errorf("Target after sustained load = %v, expected to bottom out at MinFPS 30", a.TargetFPS())
	}
}

func TestAdaptiveClockRecovers(t *testing.T) {
	fc := newFakeClock()
	a := NewAdaptiveClock(testClockConfig())

	for i := 0; i < 200; i++ {
		a.Tick(fc.advance(50 * time.Millisecond))
	}
	if a.TargetFPS() >= 60 {
		t.Fatal("Expected degraded target before recovery")
	}

	// Fast frames again: the target climbs back, capped at the configured
	// starting rate.
	for i := 0; i < 300; i++ {
		a.Tick(fc.advance(10 * time.Millisecond))
	}

	if a.TargetFPS() != 60 {
		t.Errorf("Target after recovery = %v, expected 60", a.TargetFPS())
	}
}

func TestAdaptiveClockReset(t *testing.T) {
	fc := newFakeClock()
	a := NewAdaptiveClock(testClockConfig())

	for i := 0; i < 200; i++ {
		a.Tick(fc.advance(50 * time.Millisecond))
	}
	a.Reset()

	if a.TargetFPS() != 60 {
		t.Errorf("Target after reset = %v, expected 60", a.TargetFPS())
	}
	if a.FPS() != 0 {
		t.Errorf("Measured FPS after reset = %v, expected 0", a.FPS())
	}
}

func TestAdaptiveClockInterval(t *testing.T) {
	a := NewAdaptiveClock(testClockConfig())

	got := a.Interval()
	if got < 16*time.Millisecond || got > 17*time.Millisecond {
		t.Errorf("Interval = %v, expected ~16.7ms for a 60 FPS target", got)
	}
}
