// Package registry provides a global registry for game modes. Modes register
// themselves in init() functions, allowing the platform and the CLI to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"combosnake/internal/config"
	"combosnake/internal/engine"
)

// Session is the running-game contract the platform drives. The platform
// owns the scheduler; the session receives the clamped tick delta and
// advances its simulation.
type Session interface {
	// SessionID returns the unique identifier of this run.
	SessionID() string

	// Tick advances the simulation by the given delta.
	Tick(delta time.Duration)

	// IsOver reports whether the run has ended.
	IsOver() bool

	// Score returns the running score summary.
	Score() engine.GameScore

	// CurrentSpeed returns the live step interval. Smaller is faster.
	CurrentSpeed() time.Duration

	// Elapsed returns the accumulated simulation time.
	Elapsed() time.Duration

	// Export serializes the resumable part of the run.
	Export() ([]byte, error)

	// Import restores a previously exported run. Invalid data is rejected
	// without touching the session.
	Import(data []byte) error
}

// Mode is a playable rule set that can mint sessions.
type Mode interface {
	// ID returns a unique identifier for this mode (e.g. "combo").
	// Used for CLI commands and exported session files.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// NewSession builds a fresh run of this mode. The seed drives food
	// placement, so equal seeds give reproducible runs.
	NewSession(cfg config.GameConfig, seed int64) (Session, error)
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID()]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID()))
	}

	modes[m.ID()] = m
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for id, m := range modes {
		result = append(result, ModeInfo{
			ID:    id,
			Title: m.Title(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a mode by its ID.
// Returns an error if the mode ID is not registered.
func Lookup(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
