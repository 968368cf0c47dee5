package config

import "fmt"

// Preset represents a named difficulty level. Presets only reshape the
// speed curve; board geometry and scoring are unaffected.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists the known difficulty presets in ascending order.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}

// speedForPreset returns the speed curve for a preset. The normal preset
// matches the embedded default config.
func speedForPreset(p Preset) (SpeedConfig, bool) {
	switch p {
	case PresetEasy:
		return SpeedConfig{
			BaseSpeed:          180,
			SpeedIncrement:     10,
			MaxSpeed:           110,
			MinSpeed:           240,
			TransitionDuration: 700,
			Easing:             "ease-out-quad",
		}, true
	case PresetNormal:
		return SpeedConfig{
			BaseSpeed:          150,
			SpeedIncrement:     15,
			MaxSpeed:           80,
			MinSpeed:           200,
			TransitionDuration: 500,
			Easing:             "linear",
		}, true
	case PresetHard:
		return SpeedConfig{
			BaseSpeed:          120,
			SpeedIncrement:     20,
			MaxSpeed:           60,
			MinSpeed:           160,
			TransitionDuration: 300,
			Easing:             "ease-in-quad",
		}, true
	default:
		return SpeedConfig{}, false
	}
}

// ApplyPreset overwrites the speed section with the preset's curve.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset Preset) error {
	if preset == "" {
		return nil
	}
	speed, ok := speedForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown difficulty preset %q", preset)
	}
	cfg.Speed = speed
	return nil
}
