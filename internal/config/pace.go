package config

import "fmt"

// PacePreset represents a named economy pace.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceGrind   PacePreset = "grind"
)

// CostMultiplierForPreset returns the cost multiplier for a pace preset.
// Normal keeps the configured value and reports ok=false.
func CostMultiplierForPreset(preset PacePreset) (mult float64, ok bool) {
	switch preset {
	case PaceRelaxed:
		return 1.10, true
	case PaceGrind:
		return 1.25, true
	default:
		return 0, false
	}
}

// ParsePacePreset validates a --pace flag value; empty means normal.
func ParsePacePreset(s string) (PacePreset, error) {
	switch PacePreset(s) {
	case "", PaceNormal:
		return PaceNormal, nil
	case PaceRelaxed, PaceGrind:
		return PacePreset(s), nil
	default:
		return "", fmt.Errorf("unknown pace %q (want relaxed, normal or grind)", s)
	}
}

// ApplyPacePreset modifies the config based on a pace preset.
func ApplyPacePreset(cfg *ClickerConfig, preset PacePreset) {
	if mult, ok := CostMultiplierForPreset(preset); ok {
		cfg.Economy.CostMultiplier = mult
	}

	// Slower economies get more offline credit
	switch preset {
	case PaceRelaxed:
		cfg.Save.MaxOfflineHours = 12
	case PaceGrind:
		cfg.Save.MaxOfflineHours = 48
	}
}
