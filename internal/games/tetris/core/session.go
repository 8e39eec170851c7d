package core

import (
	"errors"
	"math/rand"
	"time"
)

// Phase is the observable state of a session. Spawning, locking and
// clearing happen inside a single call and are never observed.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason records which rule ended the session.
type EndReason int

const (
	EndNone EndReason = iota
	// EndBlockOut: a freshly spawned piece overlapped the stack.
	EndBlockOut
	// EndLockOut: a piece locked with cells still above the board.
	EndLockOut
	// EndTopOut: a piece could not fall and had no visible cell at all.
	EndTopOut
)

// String returns a human-readable reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndBlockOut:
		return "block_out"
	case EndLockOut:
		return "lock_out"
	case EndTopOut:
		return "top_out"
	default:
		return "unknown"
	}
}

// Command is a discrete player command accepted by a session.
type Command int

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdSoftDrop
	CmdRotate
	CmdHardDrop
	CmdQuit
)

// kicks are the horizontal shifts tried, in order, when a rotation does not
// fit in place. There are no vertical kicks.
var kicks = [...]Offset{{0, 0}, {0, -1}, {0, 1}, {0, -2}, {0, 2}}

// PieceGenerator supplies the kind of each upcoming piece.
type PieceGenerator interface {
	Next() Kind
}

// UniformGenerator draws every kind independently with equal probability.
// It is not a bag randomizer: repeats and droughts are possible.
type UniformGenerator struct {
	rng *rand.Rand
}

// NewUniformGenerator creates a generator seeded with seed.
func NewUniformGenerator(seed int64) *UniformGenerator {
	return &UniformGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly random kind.
func (g *UniformGenerator) Next() Kind {
	return Kinds[g.rng.Intn(len(Kinds))]
}

// Options configures a new session.
type Options struct {
	Width  int
	Height int

	// Generator picks upcoming kinds. Defaults to a UniformGenerator seeded with Seed.
	Generator PieceGenerator
	Seed      int64

	Timing Timing

	// Now starts the fall timer. When zero the timer starts on the first Tick.
	Now time.Time
}

// ErrInvalidBoardSize is returned when a session is created with a
// non-positive board dimension.
var ErrInvalidBoardSize = errors.New("tetris: board width and height must be positive")

// Session is a single game: board, falling piece, next piece, score and
// level. It is not safe for concurrent use; the game loop owns it.
type Session struct {
	board  *Board
	gen    PieceGenerator
	timing Timing

	current *Piece // nil only once the game is over
	next    Kind

	score        int
	level        int
	lines        int
	fallInterval time.Duration
	lastFall     time.Time

	gameOver  bool
	endReason EndReason
}

// NewSession creates a session, pre-seeds the next piece and spawns the first one.
func NewSession(opts Options) (*Session, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrInvalidBoardSize
	}

	gen := opts.Generator
	if gen == nil {
		gen = NewUniformGenerator(opts.Seed)
	}

	timing := opts.Timing
	if timing == (Timing{}) {
		timing = DefaultTiming()
	}
	timing = timing.normalized()

	s := &Session{
		board:        NewBoard(opts.Width, opts.Height),
		gen:          gen,
		timing:       timing,
		level:        1,
		fallInterval: timing.Interval(1),
		lastFall:     opts.Now,
	}
	s.next = s.gen.Next()
	s.spawn()
	return s, nil
}

// Board returns read-only access to the locked cells.
func (s *Session) Board() BoardView {
	return s.board
}

// Current returns the falling piece. ok is false once the game is over.
func (s *Session) Current() (p Piece, ok bool) {
	if s.current == nil {
		return Piece{}, false
	}
	return *s.current, true
}

// Next returns the kind that will spawn after the current piece locks.
func (s *Session) Next() Kind {
	return s.next
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level, starting at 1.
func (s *Session) Level() int {
	return s.level
}

// Lines returns the total number of cleared lines.
func (s *Session) Lines() int {
	return s.lines
}

// FallInterval returns the current gravity interval.
func (s *Session) FallInterval() time.Duration {
	return s.fallInterval
}

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// EndReason returns why the session ended, or EndNone while playing.
func (s *Session) EndReason() EndReason {
	return s.endReason
}

// Phase returns the observable state.
func (s *Session) Phase() Phase {
	if s.gameOver {
		return PhaseGameOver
	}
	return PhaseFalling
}

// IsValid reports whether p fits on the board. Cells must lie within the
// columns and above the floor; cells above row 0 are allowed and are not
// checked against the board, all others must be empty.
func (s *Session) IsValid(p Piece) bool {
	for _, c := range p.Cells() {
		if c.Col < 0 || c.Col >= s.board.Width() {
			return false
		}
		if c.Row >= s.board.Height() {
			return false
		}
		if c.Row < 0 {
			continue
		}
		if !s.board.IsEmpty(c.Row, c.Col) {
			return false
		}
	}
	return true
}

// active reports whether commands may change the session.
func (s *Session) active() bool {
	return !s.gameOver && s.current != nil
}

// spawn promotes next to current and draws a fresh next kind. The piece is
// centered horizontally with its top row on board row 0.
func (s *Session) spawn() {
	kind := s.next
	s.next = s.gen.Next()

	minRow, _, _, _ := ShapeAt(kind, 0).Bounds()
	p := Piece{
		Kind: kind,
		Pos:  Position{Row: -minRow, Col: s.board.Width() / 2},
	}
	if !s.IsValid(p) {
		s.end(EndBlockOut)
		return
	}
	s.current = &p
}

// end makes the session terminal and clears the falling piece.
func (s *Session) end(reason EndReason) {
	s.gameOver = true
	s.endReason = reason
	s.current = nil
}

// Move shifts the falling piece by (dRow, dCol) if the target fits.
func (s *Session) Move(dRow, dCol int) bool {
	if !s.active() {
		return false
	}
	moved := s.current.Moved(dRow, dCol)
	if !s.IsValid(moved) {
		return false
	}
	*s.current = moved
	return true
}

// MoveLeft shifts the piece one column left.
func (s *Session) MoveLeft() bool {
	return s.Move(0, -1)
}

// MoveRight shifts the piece one column right.
func (s *Session) MoveRight() bool {
	return s.Move(0, 1)
}

// SoftDrop moves the piece one row down. A successful soft drop restarts
// the fall timer at now; a blocked one does not lock the piece.
func (s *Session) SoftDrop(now time.Time) bool {
	if !s.Move(1, 0) {
		return false
	}
	s.lastFall = now
	return true
}

// Rotate turns the piece clockwise, trying each kick in order and keeping
// the first placement that fits.
func (s *Session) Rotate() bool {
	if !s.active() {
		return false
	}
	rotated := *s.current
	rotated.Rotation = (s.current.Rotation + 1) % RotationCount(s.current.Kind)
	for _, k := range kicks {
		candidate := rotated.Moved(k.Row, k.Col)
		if s.IsValid(candidate) {
			*s.current = candidate
			return true
		}
	}
	return false
}

// Drop performs one gravity step: the piece falls a row or, when it can't,
// locks. A piece that cannot fall while entirely above the board ends the
// game without locking. Returns true if the piece moved down.
func (s *Session) Drop(now time.Time) bool {
	if !s.active() {
		return false
	}
	if s.Move(1, 0) {
		return true
	}

	for _, c := range s.current.Cells() {
		if c.Row >= 0 {
			s.lock(now)
			return false
		}
	}
	s.end(EndTopOut)
	return false
}

// HardDrop drops the piece as far as it can fall and locks it, even when
// it could not fall at all.
func (s *Session) HardDrop(now time.Time) bool {
	if !s.active() {
		return false
	}
	rows := 0
	for s.IsValid(s.current.Moved(rows+1, 0)) {
		rows++
	}
	s.current.Pos.Row += rows
	s.lock(now)
	return true
}

// lock writes the piece into the board. Cells above row 0 mean the stack
// overflowed and the game ends; otherwise full rows are cleared, scored
// and the next piece spawns. The fall timer restarts either way.
func (s *Session) lock(now time.Time) {
	p := *s.current
	visible := true
	for _, c := range p.Cells() {
		switch {
		case c.Row < 0:
			visible = false
		case c.Row < s.board.Height():
			s.board.Set(c.Row, c.Col, p.Kind)
		}
	}

	if !visible {
		s.end(EndLockOut)
	} else {
		s.award(s.board.ClearFullRows())
		s.spawn()
	}
	s.lastFall = now
}

// award applies line-clear points at the current level and advances the
// level when the cleared total crosses a threshold. Levels never drop.
func (s *Session) award(cleared int) {
	s.score += LinePoints(cleared) * s.level
	s.lines += cleared
	if lvl := LevelFor(s.lines); lvl > s.level {
		s.level = lvl
		s.fallInterval = s.timing.Interval(s.level)
	}
}

// Tick is the timed gravity check. When more than the fall interval has
// passed since the last fall it performs one Drop and, if a piece is still
// falling, restarts the timer at now. Returns true if a drop happened.
func (s *Session) Tick(now time.Time) bool {
	if !s.active() {
		return false
	}
	if s.lastFall.IsZero() {
		s.lastFall = now
		return false
	}
	if now.Sub(s.lastFall) <= s.fallInterval {
		return false
	}
	s.Drop(now)
	if s.active() {
		s.lastFall = now
	}
	return true
}

// ResetFallTimer restarts the gravity interval at now. Callers use it after
// a pause so the frozen time does not count toward the next fall.
func (s *Session) ResetFallTimer(now time.Time) {
	if s.active() {
		s.lastFall = now
	}
}

// Apply runs a single command. Quit never changes the session; ending the
// loop is the caller's job. Returns true if the state changed.
func (s *Session) Apply(cmd Command, now time.Time) bool {
	switch cmd {
	case CmdMoveLeft:
		return s.MoveLeft()
	case CmdMoveRight:
		return s.MoveRight()
	case CmdSoftDrop:
		return s.SoftDrop(now)
	case CmdRotate:
		return s.Rotate()
	case CmdHardDrop:
		return s.HardDrop(now)
	default:
		return false
	}
}
