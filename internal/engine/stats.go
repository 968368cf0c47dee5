package engine

import "time"

// PerfStats is the periodic performance report emitted through the
// scheduler's OnPerf callback. Window counters cover the interval since the
// previous report; the rest reflect the instant of emission.
type PerfStats struct {
	FPS            float64       `json:"fps"`
	TargetFPS      float64       `json:"target_fps"`
	SmoothedDelta  time.Duration `json:"smoothed_delta"`
	Stable         bool          `json:"stable"`
	Updates        int           `json:"updates"`
	Renders        int           `json:"renders"`
	SkippedRenders int           `json:"skipped_renders"`
	Ticks          uint64        `json:"ticks"`
	Uptime         time.Duration `json:"uptime"`
}
