package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// DifficultyPresets lists every preset in order.
var DifficultyPresets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty resolves a preset name. An empty name means no preset.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}
	for _, p := range DifficultyPresets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// ApplyTetrisPreset modifies the timing based on a difficulty preset.
// Fixed keeps the configured base interval and disables the per-level step.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseInterval = 1.0
	case DifficultyNormal:
		cfg.Timing.BaseInterval = 0.8
	case DifficultyHard:
		cfg.Timing.BaseInterval = 0.5
	case DifficultyFixed:
		cfg.Timing.IntervalStep = 0
	}
	if cfg.Timing.MinInterval > cfg.Timing.BaseInterval {
		cfg.Timing.MinInterval = cfg.Timing.BaseInterval
	}
}
