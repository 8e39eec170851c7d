// Package config provides YAML-based configuration loading and difficulty
// presets for the tetris game.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Display DisplayConfig `yaml:"display"`
}

// BoardConfig controls how the board is sized from the terminal.
type BoardConfig struct {
	MinWidth      int     `yaml:"min_width"`
	MinHeight     int     `yaml:"min_height"`
	WidthFraction float64 `yaml:"width_fraction"` // share of terminal width used by board + preview
}

// TimingConfig defines gravity speed in seconds.
type TimingConfig struct {
	BaseInterval float64 `yaml:"base_interval"` // fall interval at level 1
	IntervalStep float64 `yaml:"interval_step"` // reduction per level
	MinInterval  float64 `yaml:"min_interval"`  // floor
}

// Durations converts the configured seconds to durations, rounded to the millisecond.
func (t TimingConfig) Durations() (base, step, minimum time.Duration) {
	return seconds(t.BaseInterval), seconds(t.IntervalStep), seconds(t.MinInterval)
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s*1000)) * time.Millisecond
}

// OrangeMode selects whether the L piece uses orange.
type OrangeMode string

const (
	OrangeAuto OrangeMode = "auto" // orange when the terminal supports 256 colors
	OrangeOn   OrangeMode = "on"
	OrangeOff  OrangeMode = "off"
)

// DisplayConfig defines characters and colors used to paint the game.
type DisplayConfig struct {
	EmptyChar  string            `yaml:"empty_char"`
	BlockChar  string            `yaml:"block_char"`
	BorderChar string            `yaml:"border_char"`
	Orange     OrangeMode        `yaml:"orange"`
	Colors     map[string]string `yaml:"colors"` // piece letter or border/info/error -> color name
}

// Validate reports the first problem found in the configuration.
func (c TetrisConfig) Validate() error {
	if c.Board.MinWidth <= 0 || c.Board.MinHeight <= 0 {
		return fmt.Errorf("board: min_width and min_height must be positive, got %dx%d",
			c.Board.MinWidth, c.Board.MinHeight)
	}
	if c.Board.WidthFraction <= 0 || c.Board.WidthFraction > 1 {
		return fmt.Errorf("board: width_fraction must be in (0, 1], got %g", c.Board.WidthFraction)
	}

	base, step, minimum := c.Timing.Durations()
	if base <= 0 || minimum <= 0 {
		return errors.New("timing: base_interval and min_interval must be positive")
	}
	if step < 0 {
		return fmt.Errorf("timing: interval_step must not be negative, got %g", c.Timing.IntervalStep)
	}
	if minimum > base {
		return fmt.Errorf("timing: min_interval %v exceeds base_interval %v", minimum, base)
	}

	for name, ch := range map[string]string{
		"empty_char":  c.Display.EmptyChar,
		"block_char":  c.Display.BlockChar,
		"border_char": c.Display.BorderChar,
	} {
		if len([]rune(ch)) != 1 {
			return fmt.Errorf("display: %s must be a single character, got %q", name, ch)
		}
	}

	switch c.Display.Orange {
	case OrangeAuto, OrangeOn, OrangeOff:
	default:
		return fmt.Errorf("display: orange must be auto, on or off, got %q", c.Display.Orange)
	}
	return nil
}
