// Package tetris adapts the falling-block engine to the terminal platform:
// it owns the session, maps input frames to engine commands and paints
// the board into a screen buffer.
package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// actionOrder maps frame actions to commands. A frame applies at most one,
// the first present in this order.
var actionOrder = [...]struct {
	action platformcore.Action
	cmd    core.Command
}{
	{platformcore.ActionRotate, core.CmdRotate},
	{platformcore.ActionLeft, core.CmdMoveLeft},
	{platformcore.ActionRight, core.CmdMoveRight},
	{platformcore.ActionSoftDrop, core.CmdSoftDrop},
	{platformcore.ActionHardDrop, core.CmdHardDrop},
}

// Game implements platformcore.Game for tetris.
type Game struct {
	cfg     config.TetrisConfig
	palette Palette
	timing  core.Timing

	session *core.Session
	seed    int64

	// Screen dimensions
	screenW int
	screenH int

	layout   Layout
	tooSmall bool
	// resumed is set when a resize unfreezes a live session; the next Step
	// restarts the fall timer.
	resumed bool

	// newGenerator builds the piece source for a session. Tests replace it.
	newGenerator func(seed int64) core.PieceGenerator
}

// New creates a game. The board is sized on Reset.
func New(cfg config.TetrisConfig, palette Palette) *Game {
	base, step, minimum := cfg.Timing.Durations()
	return &Game{
		cfg:     cfg,
		palette: palette,
		timing:  core.Timing{Base: base, Step: step, Min: minimum},
		newGenerator: func(seed int64) core.PieceGenerator {
			return core.NewUniformGenerator(seed)
		},
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset sizes a board from the screen and starts a brand-new session.
// If the screen is too small no session is started until a Resize makes room.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.session = nil
	g.start()
}

// start creates a session sized for the current screen.
func (g *Game) start() {
	layout, err := ComputeLayout(g.screenW, g.screenH, g.cfg.Board)
	if err != nil {
		g.tooSmall = true
		return
	}

	session, err := core.NewSession(core.Options{
		Width:     layout.BoardW,
		Height:    layout.BoardH,
		Generator: g.newGenerator(g.seed),
		Timing:    g.timing,
	})
	if err != nil {
		g.tooSmall = true
		return
	}

	g.session = session
	g.layout = layout
	g.tooSmall = false
	g.resumed = false
}

// Resize recenters the board. The session keeps its board size; if it no
// longer fits the game freezes until the screen grows again.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height

	if g.session == nil {
		g.start()
		return
	}

	board := g.session.Board()
	layout, ok := PlaceBoard(width, height, board.Width(), board.Height())
	if ok {
		g.layout = layout
		if g.tooSmall {
			g.resumed = true
		}
	}
	g.tooSmall = !ok
}

// Step applies at most one command from the frame, then runs the gravity check.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.session == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	if g.resumed {
		g.session.ResetFallTimer(now)
		g.resumed = false
	}

	for _, a := range actionOrder {
		if in.Has(a.action) {
			g.session.Apply(a.cmd, now)
			break
		}
	}
	g.session.Tick(now)

	return platformcore.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{Level: 1}
	}
	return platformcore.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		GameOver: g.session.GameOver(),
	}
}

// Session returns the running session, or nil before one could start.
func (g *Game) Session() *core.Session {
	return g.session
}

// TooSmall reports whether the screen is currently too small to play.
func (g *Game) TooSmall() bool {
	return g.tooSmall
}

// Layout returns the current board placement.
func (g *Game) Layout() Layout {
	return g.layout
}

// DebugString summarizes the session for debug logs.
func (g *Game) DebugString() string {
	if g.session == nil {
		return "no session"
	}
	snap := g.session.Snapshot()
	return fmt.Sprintf("board=%dx%d phase=%s end=%s next=%s score=%d level=%d lines=%d interval=%v",
		snap.Width, snap.Height, snap.Phase, snap.EndReason, snap.Next,
		snap.Score, snap.Level, snap.Lines, snap.FallInterval)
}
