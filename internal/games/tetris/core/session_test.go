package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqGenerator hands out kinds from a fixed cycle.
type seqGenerator struct {
	kinds []Kind
	i     int
}

func (g *seqGenerator) Next() Kind {
	k := g.kinds[g.i%len(g.kinds)]
	g.i++
	return k
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, kinds ...Kind) *Session {
	t.Helper()
	s, err := NewSession(Options{
		Width:     10,
		Height:    20,
		Generator: &seqGenerator{kinds: kinds},
		Now:       t0,
	})
	require.NoError(t, err)
	return s
}

func fillRowExcept(b *Board, row int, skip ...int) {
	skipped := make(map[int]bool)
	for _, c := range skip {
		skipped[c] = true
	}
	for c := 0; c < b.Width(); c++ {
		if !skipped[c] {
			b.Set(row, c, KindZ)
		}
	}
}

func TestNewSessionRejectsBadSize(t *testing.T) {
	_, err := NewSession(Options{Width: 0, Height: 20})
	assert.ErrorIs(t, err, ErrInvalidBoardSize)

	_, err = NewSession(Options{Width: 10, Height: -1})
	assert.ErrorIs(t, err, ErrInvalidBoardSize)
}

func TestNewSessionInitialState(t *testing.T) {
	s := newTestSession(t, KindI, KindO, KindT)

	p, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, KindI, p.Kind)
	assert.Equal(t, KindO, s.Next())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 0, s.Lines())
	assert.Equal(t, 800*time.Millisecond, s.FallInterval())
	assert.Equal(t, PhaseFalling, s.Phase())
	assert.False(t, s.GameOver())
	assert.Equal(t, EndNone, s.EndReason())
}

func TestSpawnAnchorsTopRowAtZero(t *testing.T) {
	for _, k := range Kinds {
		s := newTestSession(t, k)
		p, ok := s.Current()
		require.True(t, ok, "%v", k)
		assert.Equal(t, 5, p.Pos.Col, "%v column", k)

		top := p.Cells()[0].Row
		for _, c := range p.Cells() {
			top = min(top, c.Row)
		}
		assert.Equal(t, 0, top, "%v top row", k)
	}
}

func TestIsValid(t *testing.T) {
	s := newTestSession(t, KindO)
	s.board.Set(10, 3, KindT)

	tests := []struct {
		name string
		p    Piece
		want bool
	}{
		{"inside", Piece{Kind: KindO, Pos: Position{Row: 5, Col: 5}}, true},
		{"left wall", Piece{Kind: KindO, Pos: Position{Row: 5, Col: -1}}, false},
		{"right wall", Piece{Kind: KindO, Pos: Position{Row: 5, Col: 9}}, false},
		{"floor", Piece{Kind: KindO, Pos: Position{Row: 19, Col: 5}}, false},
		{"resting on floor", Piece{Kind: KindO, Pos: Position{Row: 18, Col: 5}}, true},
		{"above board", Piece{Kind: KindO, Pos: Position{Row: -2, Col: 5}}, true},
		{"partly above", Piece{Kind: KindO, Pos: Position{Row: -1, Col: 0}}, true},
		{"above board outside columns", Piece{Kind: KindO, Pos: Position{Row: -5, Col: -1}}, false},
		{"overlaps stack", Piece{Kind: KindO, Pos: Position{Row: 9, Col: 2}}, false},
		{"next to stack", Piece{Kind: KindO, Pos: Position{Row: 9, Col: 4}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsValid(tt.p))
		})
	}
}

func TestMoveBlockedByWall(t *testing.T) {
	s := newTestSession(t, KindO)
	for i := 0; i < 20; i++ {
		s.MoveLeft()
	}
	p, _ := s.Current()
	assert.Equal(t, 0, p.Pos.Col)
	assert.False(t, s.MoveLeft())

	for i := 0; i < 20; i++ {
		s.MoveRight()
	}
	p, _ = s.Current()
	assert.Equal(t, 8, p.Pos.Col)
	assert.False(t, s.MoveRight())
}

func TestHardDropOPiece(t *testing.T) {
	s := newTestSession(t, KindO)
	p, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 5}, p.Pos)

	assert.True(t, s.HardDrop(t0))

	for _, c := range []Position{{18, 5}, {18, 6}, {19, 5}, {19, 6}} {
		assert.Equal(t, KindO, s.board.Cell(c.Row, c.Col), "cell %v", c)
	}
	assert.Equal(t, 0, s.Score())

	p, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 5}, p.Pos)
}

func TestHardDropLocksWhenResting(t *testing.T) {
	s := newTestSession(t, KindO, KindT)
	for s.SoftDrop(t0) {
	}
	p, _ := s.Current()
	require.Equal(t, 18, p.Pos.Row)
	assert.False(t, s.SoftDrop(t0), "blocked soft drop must not lock")
	assert.Equal(t, KindO, mustCurrent(t, s).Kind)

	assert.True(t, s.HardDrop(t0))
	assert.Equal(t, KindO, s.board.Cell(19, 5))
	assert.Equal(t, KindT, mustCurrent(t, s).Kind)
}

func mustCurrent(t *testing.T, s *Session) Piece {
	t.Helper()
	p, ok := s.Current()
	require.True(t, ok)
	return p
}

func TestSingleLineClear(t *testing.T) {
	s := newTestSession(t, KindI)
	// I spawns horizontally over columns 4..7.
	fillRowExcept(s.board, 19, 4, 5, 6, 7)
	s.board.Set(18, 0, KindT)

	s.HardDrop(t0)

	assert.Equal(t, 40, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, KindT, s.board.Cell(19, 0), "row above shifts down")
	for c := 0; c < 10; c++ {
		assert.True(t, s.board.IsEmpty(0, c), "top row must be empty")
	}
}

func setupTetrisWell(t *testing.T, s *Session) {
	t.Helper()
	for r := 16; r < 20; r++ {
		fillRowExcept(s.board, r, 5)
	}
	require.True(t, s.Rotate())
	p := mustCurrent(t, s)
	require.Equal(t, 1, p.Rotation)
	require.Equal(t, 5, p.Pos.Col)
}

func TestFourLineClearScores(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 1200},
		{3, 3600},
	}
	for _, tt := range tests {
		s := newTestSession(t, KindI)
		s.level = tt.level
		setupTetrisWell(t, s)

		s.HardDrop(t0)

		assert.Equal(t, tt.want, s.Score(), "level %d", tt.level)
		assert.Equal(t, 4, s.Lines())
		for r := 16; r < 20; r++ {
			for c := 0; c < 10; c++ {
				assert.True(t, s.board.IsEmpty(r, c), "cell (%d,%d)", r, c)
			}
		}
	}
}

func TestLevelUpShortensInterval(t *testing.T) {
	s := newTestSession(t, KindI)
	s.lines = 8
	setupTetrisWell(t, s)

	s.HardDrop(t0)

	assert.Equal(t, 12, s.Lines())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 1200, s.Score(), "points use the level before the clear")
	assert.Equal(t, 750*time.Millisecond, s.FallInterval())
}

func TestLevelUpAtExactBoundary(t *testing.T) {
	s := newTestSession(t, KindI)
	s.lines = 9
	fillRowExcept(s.board, 19, 4, 5, 6, 7)

	s.HardDrop(t0)

	assert.Equal(t, 10, s.Lines())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 40, s.Score())
	assert.Equal(t, 750*time.Millisecond, s.FallInterval())
}

func TestRotationCycleReturnsToStart(t *testing.T) {
	for _, k := range Kinds {
		s := newTestSession(t, k)
		s.current = &Piece{Kind: k, Pos: Position{Row: 5, Col: 5}}

		for i := 0; i < RotationCount(k); i++ {
			require.True(t, s.Rotate(), "%v rotation %d", k, i+1)
		}

		p := mustCurrent(t, s)
		assert.Equal(t, 0, p.Rotation, "%v", k)
		assert.Equal(t, Position{Row: 5, Col: 5}, p.Pos, "%v", k)
	}
}

func TestRotateKicks(t *testing.T) {
	tests := []struct {
		name    string
		col     int
		wantCol int
	}{
		{"in place", 5, 5},
		{"left wall kicks right", 0, 1},
		{"right wall kicks left twice", 9, 7},
		{"near right wall kicks left", 8, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, KindI)
			s.current = &Piece{Kind: KindI, Rotation: 1, Pos: Position{Row: 5, Col: tt.col}}

			require.True(t, s.Rotate())
			p := mustCurrent(t, s)
			assert.Equal(t, 0, p.Rotation)
			assert.Equal(t, Position{Row: 5, Col: tt.wantCol}, p.Pos)
		})
	}
}

func TestRotateBlocked(t *testing.T) {
	s := newTestSession(t, KindI)
	s.board.Set(5, 4, KindT)
	s.board.Set(5, 6, KindT)
	before := Piece{Kind: KindI, Rotation: 1, Pos: Position{Row: 5, Col: 5}}
	s.current = &before

	assert.False(t, s.Rotate())
	assert.Equal(t, before, mustCurrent(t, s))
}

func TestRotateOIsNoOpMove(t *testing.T) {
	s := newTestSession(t, KindO)
	before := mustCurrent(t, s)
	assert.True(t, s.Rotate())
	assert.Equal(t, before, mustCurrent(t, s))
}

func TestBlockOut(t *testing.T) {
	s := newTestSession(t, KindO)
	for i := 0; i < 4; i++ {
		s.MoveLeft()
	}
	s.board.Set(0, 5, KindT)

	s.HardDrop(t0)

	assert.True(t, s.GameOver())
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, EndBlockOut, s.EndReason())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLockOut(t *testing.T) {
	s := newTestSession(t, KindT)
	s.current = &Piece{Kind: KindT, Pos: Position{Row: 0, Col: 5}}
	s.board.Set(1, 5, KindI)

	assert.False(t, s.Drop(t0))

	assert.True(t, s.GameOver())
	assert.Equal(t, EndLockOut, s.EndReason())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, KindT, s.board.Cell(0, 5), "visible cells are still written")
}

func TestTopOut(t *testing.T) {
	s := newTestSession(t, KindO)
	s.current = &Piece{Kind: KindO, Pos: Position{Row: -2, Col: 5}}
	s.board.Set(0, 5, KindI)
	before := s.board.String()

	assert.False(t, s.Drop(t0))

	assert.True(t, s.GameOver())
	assert.Equal(t, EndTopOut, s.EndReason())
	assert.Equal(t, before, s.board.String(), "nothing is locked")
}

func TestCommandsIgnoredAfterGameOver(t *testing.T) {
	s := newTestSession(t, KindO)
	s.end(EndBlockOut)
	snap := s.Snapshot()

	assert.False(t, s.MoveLeft())
	assert.False(t, s.MoveRight())
	assert.False(t, s.Rotate())
	assert.False(t, s.SoftDrop(t0))
	assert.False(t, s.HardDrop(t0))
	assert.False(t, s.Drop(t0))
	assert.False(t, s.Tick(t0.Add(time.Hour)))
	assert.Equal(t, snap, s.Snapshot())
}

func TestApply(t *testing.T) {
	s := newTestSession(t, KindT)
	start := mustCurrent(t, s)

	assert.True(t, s.Apply(CmdMoveLeft, t0))
	assert.Equal(t, start.Pos.Col-1, mustCurrent(t, s).Pos.Col)

	assert.True(t, s.Apply(CmdMoveRight, t0))
	assert.True(t, s.Apply(CmdRotate, t0))
	assert.Equal(t, 1, mustCurrent(t, s).Rotation)

	assert.True(t, s.Apply(CmdSoftDrop, t0))
	assert.Equal(t, start.Pos.Row+1, mustCurrent(t, s).Pos.Row)

	snap := s.Snapshot()
	assert.False(t, s.Apply(CmdQuit, t0))
	assert.Equal(t, snap, s.Snapshot())

	assert.True(t, s.Apply(CmdHardDrop, t0))
	assert.Equal(t, start.Pos, mustCurrent(t, s).Pos, "next piece spawned")
}

func TestTickGravity(t *testing.T) {
	s := newTestSession(t, KindO)

	assert.False(t, s.Tick(t0.Add(800*time.Millisecond)), "interval must be exceeded")
	assert.Equal(t, 0, mustCurrent(t, s).Pos.Row)

	assert.True(t, s.Tick(t0.Add(801*time.Millisecond)))
	assert.Equal(t, 1, mustCurrent(t, s).Pos.Row)

	assert.False(t, s.Tick(t0.Add(1601*time.Millisecond)))
	assert.True(t, s.Tick(t0.Add(1602*time.Millisecond)))
	assert.Equal(t, 2, mustCurrent(t, s).Pos.Row)
}

func TestTickStartsTimerWhenUnset(t *testing.T) {
	s, err := NewSession(Options{Width: 10, Height: 20, Generator: &seqGenerator{kinds: []Kind{KindO}}})
	require.NoError(t, err)

	assert.False(t, s.Tick(t0))
	assert.Equal(t, 0, mustCurrent(t, s).Pos.Row)
	assert.True(t, s.Tick(t0.Add(time.Second)))
	assert.Equal(t, 1, mustCurrent(t, s).Pos.Row)
}

func TestSoftDropResetsTimer(t *testing.T) {
	s := newTestSession(t, KindO)

	require.True(t, s.SoftDrop(t0.Add(500*time.Millisecond)))
	assert.False(t, s.Tick(t0.Add(900*time.Millisecond)))
	assert.True(t, s.Tick(t0.Add(1301*time.Millisecond)))
	assert.Equal(t, 2, mustCurrent(t, s).Pos.Row)
}

func TestResetFallTimer(t *testing.T) {
	s := newTestSession(t, KindO)

	s.ResetFallTimer(t0.Add(5 * time.Second))
	assert.False(t, s.Tick(t0.Add(5*time.Second+800*time.Millisecond)))
	assert.Equal(t, 0, mustCurrent(t, s).Pos.Row)
	assert.True(t, s.Tick(t0.Add(5*time.Second+801*time.Millisecond)))
	assert.Equal(t, 1, mustCurrent(t, s).Pos.Row)
}

func TestTickLocksAtFloor(t *testing.T) {
	s := newTestSession(t, KindO, KindI)
	for s.SoftDrop(t0) {
	}

	assert.True(t, s.Tick(t0.Add(time.Second)))
	assert.Equal(t, KindO, s.board.Cell(19, 5))
	assert.Equal(t, KindI, mustCurrent(t, s).Kind)
}

func TestDeterminism(t *testing.T) {
	script := []Command{CmdRotate, CmdMoveLeft, CmdHardDrop, CmdMoveRight, CmdMoveRight, CmdHardDrop, CmdSoftDrop, CmdHardDrop}

	run := func() Snapshot {
		s, err := NewSession(Options{Width: 10, Height: 20, Seed: 42, Now: t0})
		require.NoError(t, err)
		now := t0
		for i := 0; i < 200; i++ {
			now = now.Add(100 * time.Millisecond)
			s.Apply(script[i%len(script)], now)
			s.Tick(now)
		}
		return s.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestUniformGeneratorProducesValidKinds(t *testing.T) {
	g := NewUniformGenerator(7)
	seen := make(map[Kind]bool)
	for i := 0; i < 500; i++ {
		k := g.Next()
		require.True(t, k.Valid())
		seen[k] = true
	}
	assert.Len(t, seen, len(Kinds))
}

func TestTimingInterval(t *testing.T) {
	tm := DefaultTiming()
	assert.Equal(t, 800*time.Millisecond, tm.Interval(1))
	assert.Equal(t, 750*time.Millisecond, tm.Interval(2))
	assert.Equal(t, 100*time.Millisecond, tm.Interval(15))
	assert.Equal(t, 100*time.Millisecond, tm.Interval(100))
	assert.Equal(t, 800*time.Millisecond, tm.Interval(0))
}

func TestLinePoints(t *testing.T) {
	assert.Equal(t, []int{0, 40, 100, 300, 1200, 0}, []int{
		LinePoints(0), LinePoints(1), LinePoints(2), LinePoints(3), LinePoints(4), LinePoints(5),
	})
	assert.Equal(t, 1, LevelFor(9))
	assert.Equal(t, 2, LevelFor(10))
	assert.Equal(t, 3, LevelFor(25))
}
