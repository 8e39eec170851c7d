package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game on a board sized to the terminal.

Controls:
  Left/A     - Move left
  Right/D    - Move right
  Down/S     - Soft drop
  Up/W       - Rotate
  Space      - Hard drop
  R          - Restart (after game over)
  Ctrl+S     - Save a text screenshot
  Q/Esc      - Quit

Difficulty options:
  easy   - 1.0s initial fall interval
  normal - 0.8s initial fall interval
  hard   - 0.5s initial fall interval
  fixed  - No speed-up as the level rises

Examples:
  tetris play
  tetris play --difficulty easy
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	orange := tui.SupportsOrange()
	palette, err := tetris.NewPalette(cfg.Display, orange)
	if err != nil {
		return fmt.Errorf("invalid display config: %w", err)
	}

	// Get terminal size early so the board is sized before the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtimeCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if runtimeCfg.TickRate <= 0 {
		runtimeCfg.TickRate = core.DefaultConfig().TickRate
	}

	preset := flagDifficulty
	if preset == "" {
		preset = string(config.DifficultyNormal)
	}
	logger.Debug("config loaded", "difficulty", preset, "fps", runtimeCfg.TickRate,
		"base_interval", cfg.Timing.BaseInterval, "orange", cfg.Display.Orange, "orange_supported", orange)

	game := tetris.New(cfg, palette)
	state, err := tui.Run(game, runtimeCfg, logger)
	if err != nil {
		logger.Error("game loop failed", "err", err)
		return err
	}

	fmt.Printf("%s score %s  level %d  lines %d\n",
		color.New(color.Bold).Sprint("Final"),
		color.GreenString("%d", state.Score), state.Level, state.Lines)
	return nil
}
