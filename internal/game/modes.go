package game

import (
	"math/rand"

	"combosnake/internal/config"
	"combosnake/internal/registry"
)

// Mode ids as registered with the registry.
const (
	ModeCombo   = "combo"
	ModeClassic = "classic"
)

func init() {
	registry.Register(comboMode{})
	registry.Register(classicMode{})
}

// comboMode plays with numbered food: eating 1..N in order completes a
// combo, pays a bonus and speeds the game up.
type comboMode struct{}

func (comboMode) ID() string    { return ModeCombo }
func (comboMode) Title() string { return "Combo Snake" }

func (comboMode) NewSession(cfg config.GameConfig, seed int64) (registry.Session, error) {
	rng := rand.New(rand.NewSource(seed))
	foods := NewNumberedSpawner(cfg.Combo.SequenceLength, boundsOf(cfg.Board), rng)
	return NewSession(ModeCombo, cfg, foods, true, nil)
}

// classicMode plays with a single food and no combos. The pace still climbs,
// one level for every few foods eaten.
type classicMode struct{}

func (classicMode) ID() string    { return ModeClassic }
func (classicMode) Title() string { return "Classic Snake" }

func (classicMode) NewSession(cfg config.GameConfig, seed int64) (registry.Session, error) {
	rng := rand.New(rand.NewSource(seed))
	foods := NewSingleSpawner(boundsOf(cfg.Board), rng)
	return NewSession(ModeClassic, cfg, foods, false, nil)
}
