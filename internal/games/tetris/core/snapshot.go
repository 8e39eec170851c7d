package core

import "time"

// Snapshot captures the complete session state for determinism testing
// and debug logging.
type Snapshot struct {
	Width        int
	Height       int
	Board        [][]Kind
	Piece        Piece
	HasPiece     bool
	Next         Kind
	Score        int
	Level        int
	Lines        int
	FallInterval time.Duration
	Phase        Phase
	EndReason    EndReason
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() Snapshot {
	p, ok := s.Current()
	return Snapshot{
		Width:        s.board.Width(),
		Height:       s.board.Height(),
		Board:        s.board.Rows(),
		Piece:        p,
		HasPiece:     ok,
		Next:         s.next,
		Score:        s.score,
		Level:        s.level,
		Lines:        s.lines,
		FallInterval: s.fallInterval,
		Phase:        s.Phase(),
		EndReason:    s.endReason,
	}
}
