package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Palette holds the characters and colors used to paint the game.
// It is built once from the display config and handed to the game.
type Palette struct {
	Empty  rune
	Block  rune
	Border rune

	Pieces      [core.KindL + 1]platformcore.Color
	BorderColor platformcore.Color
	InfoColor   platformcore.Color
	ErrorColor  platformcore.Color
}

// DefaultPalette returns the palette of the default display config
// without orange.
func DefaultPalette() Palette {
	p, err := NewPalette(config.DefaultTetrisConfig().Display, false)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPalette builds a palette from display settings. orangeSupported tells
// whether the terminal can show orange; it only matters in auto mode.
func NewPalette(d config.DisplayConfig, orangeSupported bool) (Palette, error) {
	var p Palette
	var err error

	if p.Empty, err = singleRune("empty_char", d.EmptyChar); err != nil {
		return p, err
	}
	if p.Block, err = singleRune("block_char", d.BlockChar); err != nil {
		return p, err
	}
	if p.Border, err = singleRune("border_char", d.BorderChar); err != nil {
		return p, err
	}

	for _, k := range core.Kinds {
		if p.Pieces[k], err = lookupColor(d.Colors, k.String(), platformcore.ColorWhite); err != nil {
			return p, err
		}
	}
	if p.BorderColor, err = lookupColor(d.Colors, "border", platformcore.ColorWhite); err != nil {
		return p, err
	}
	if p.InfoColor, err = lookupColor(d.Colors, "info", platformcore.ColorWhite); err != nil {
		return p, err
	}
	if p.ErrorColor, err = lookupColor(d.Colors, "error", platformcore.ColorRed); err != nil {
		return p, err
	}

	switch d.Orange {
	case config.OrangeOn:
		p.Pieces[core.KindL] = platformcore.ColorOrange
	case config.OrangeAuto, "":
		if orangeSupported {
			p.Pieces[core.KindL] = platformcore.ColorOrange
		}
	}
	return p, nil
}

// PieceColor returns the color of a kind. Empty cells use the default color.
func (p Palette) PieceColor(k core.Kind) platformcore.Color {
	if !k.Valid() {
		return platformcore.ColorDefault
	}
	return p.Pieces[k]
}

func singleRune(name, s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("display: %s must be a single character, got %q", name, s)
	}
	return r[0], nil
}

func lookupColor(colors map[string]string, key string, fallback platformcore.Color) (platformcore.Color, error) {
	name, ok := colors[key]
	if !ok {
		return fallback, nil
	}
	c, err := platformcore.ParseColor(name)
	if err != nil {
		return fallback, fmt.Errorf("display: colors.%s: %w", key, err)
	}
	return c, nil
}
