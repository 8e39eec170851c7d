package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Show the seven pieces and their rotation states",
	Long:  `Prints every piece in each of its rotation states, colored as in the game.`,
	Args:  cobra.NoArgs,
	RunE:  runPieces,
}

// attributes maps platform colors to terminal attributes for stdout.
var attributes = map[platformcore.Color][]color.Attribute{
	platformcore.ColorRed:           {color.FgRed},
	platformcore.ColorGreen:         {color.FgGreen},
	platformcore.ColorYellow:        {color.FgYellow},
	platformcore.ColorBlue:          {color.FgBlue},
	platformcore.ColorMagenta:       {color.FgMagenta},
	platformcore.ColorCyan:          {color.FgCyan},
	platformcore.ColorWhite:         {color.FgWhite},
	platformcore.ColorBrightRed:     {color.FgHiRed},
	platformcore.ColorBrightGreen:   {color.FgHiGreen},
	platformcore.ColorBrightYellow:  {color.FgHiYellow},
	platformcore.ColorBrightBlue:    {color.FgHiBlue},
	platformcore.ColorBrightMagenta: {color.FgHiMagenta},
	platformcore.ColorBrightCyan:    {color.FgHiCyan},
	platformcore.ColorBrightWhite:   {color.FgHiWhite},
	platformcore.ColorOrange:        {38, 5, 208},
	platformcore.ColorGray:          {color.FgHiBlack},
}

func runPieces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	palette, err := tetris.NewPalette(cfg.Display, false)
	if err != nil {
		return fmt.Errorf("invalid display config: %w", err)
	}

	fmt.Println("Pieces:")
	fmt.Println()
	for _, k := range core.Kinds {
		paint := color.New(attributes[palette.PieceColor(k)]...).SprintFunc()
		fmt.Printf("  %s  (%d rotation states)\n", paint(k.String()), core.RotationCount(k))

		grids := make([][]string, 0, core.RotationCount(k))
		for _, shape := range core.Shapes(k) {
			grids = append(grids, shapeGrid(shape, palette.Block, palette.Empty))
		}
		for _, line := range joinGrids(grids, 4) {
			fmt.Println("    " + paint(line))
		}
		fmt.Println()
	}

	fmt.Println("Run 'tetris play' to start a game.")
	return nil
}

// shapeGrid draws a shape in a fixed 4x4 box anchored at its top-left cell.
func shapeGrid(s core.Shape, block, empty rune) []string {
	minRow, minCol, _, _ := s.Bounds()
	grid := make([][]rune, 4)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(empty), 4))
	}
	for _, o := range s {
		grid[o.Row-minRow][o.Col-minCol] = block
	}

	lines := make([]string, len(grid))
	for r, row := range grid {
		lines[r] = string(row)
	}
	return lines
}

// joinGrids places equally tall grids side by side.
func joinGrids(grids [][]string, gap int) []string {
	if len(grids) == 0 {
		return nil
	}
	sep := strings.Repeat(" ", gap)
	lines := make([]string, len(grids[0]))
	for r := range lines {
		parts := make([]string, len(grids))
		for i, g := range grids {
			parts[i] = g[r]
		}
		lines[r] = strings.Join(parts, sep)
	}
	return lines
}
