package config

import "fmt"

// Preset is a named match length.
type Preset string

const (
	PresetCasual   Preset = "casual"
	PresetStandard Preset = "standard"
	PresetSudden   Preset = "sudden"
)

// Presets lists every known preset.
func Presets() []Preset {
	return []Preset{PresetCasual, PresetStandard, PresetSudden}
}

// ScoreTargetForPreset returns the score target of a preset.
func ScoreTargetForPreset(p Preset) uint8 {
	switch p {
	case PresetCasual:
		return 3
	case PresetSudden:
		return 1
	default:
		return 7
	}
}

// ParsePreset validates a preset name. The empty name means no preset.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return "", nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q (want casual, standard or sudden)", name)
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *Game, p Preset) {
	if p == "" {
		return
	}
	cfg.Flow.ScoreTarget = ScoreTargetForPreset(p)

	// Short matches also get a snappier countdown
	if p == PresetSudden {
		cfg.Flow.Countdown = 3
	}
}
