package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			MinWidth:      10,
			MinHeight:     20,
			WidthFraction: 0.4,
		},
		Timing: TimingConfig{
			BaseInterval: 0.8,
			IntervalStep: 0.05,
			MinInterval:  0.1,
		},
		Display: DisplayConfig{
			EmptyChar:  ".",
			BlockChar:  "■",
			BorderChar: "#",
			Orange:     OrangeAuto,
			Colors: map[string]string{
				"I":      "cyan",
				"O":      "yellow",
				"T":      "magenta",
				"S":      "green",
				"Z":      "red",
				"J":      "blue",
				"L":      "white",
				"border": "white",
				"info":   "white",
				"error":  "red",
			},
		},
	}
}

// DefaultTetrisYAML returns the embedded default configuration file.
func DefaultTetrisYAML() []byte {
	return defaultTetrisYAML
}
