package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Easing interpolates between start and end for a normalized progress t in
// [0,1]. Implementations must return start at t=0 and end at t=1.
type Easing func(start, end, t float64) float64

var (
	easings  = make(map[string]Easing)
	easingMu sync.RWMutex
)

// RegisterEasing adds a named easing curve. Speed transitions look curves up
// by the name carried in the speed configuration.
// Panics if the name is already registered.
func RegisterEasing(name string, fn Easing) {
	easingMu.Lock()
	defer easingMu.Unlock()

	if _, exists := easings[name]; exists {
		panic(fmt.Sprintf("engine: easing %q already registered", name))
	}
	easings[name] = fn
}

// LookupEasing resolves a curve by name. An empty name resolves to linear.
func LookupEasing(name string) (Easing, error) {
	if name == "" {
		name = "linear"
	}

	easingMu.RLock()
	defer easingMu.RUnlock()

	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown easing %q", name)
	}
	return fn, nil
}

// EasingNames returns all registered curve names, sorted.
func EasingNames() []string {
	easingMu.RLock()
	defer easingMu.RUnlock()

	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterEasing("linear", func(start, end, t float64) float64 {
		return start + (end-start)*t
	})
	RegisterEasing("ease-in-quad", func(start, end, t float64) float64 {
		return start + (end-start)*t*t
	})
	RegisterEasing("ease-out-quad", func(start, end, t float64) float64 {
		u := 1 - t
		return start + (end-start)*(1-u*u)
	})
	RegisterEasing("ease-in-out-quad", func(start, end, t float64) float64 {
		if t < 0.5 {
			return start + (end-start)*2*t*t
		}
		u := -2*t + 2
		return start + (end-start)*(1-u*u/2)
	})
	RegisterEasing("ease-out-cubic", func(start, end, t float64) float64 {
		u := 1 - t
		return start + (end-start)*(1-u*u*u)
	})
}
