// Package core provides the falling-block engine: piece geometry, the board
// and the session state machine. This package is UI-agnostic and
// deterministic for a given piece generator and clock input.
package core

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven tetrominoes.
// The zero value KindNone marks an empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every playable kind in table order.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "."
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// ParseKind resolves a letter such as "T" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("tetris: unknown piece kind %q", s)
}

// Offset is a (row, col) displacement from a piece's anchor.
type Offset struct {
	Row, Col int
}

// Shape is one rotation state: exactly four cells relative to the anchor.
type Shape [4]Offset

// shapes holds the rotation states of every kind, clockwise order.
// O has one state, I/S/Z two, T/J/L four.
var shapes = [...][]Shape{
	KindI: {
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	},
	KindO: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	KindT: {
		{{0, -1}, {0, 0}, {0, 1}, {-1, 0}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 0}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, -1}},
	},
	KindS: {
		{{0, 0}, {0, 1}, {-1, 1}, {-1, 2}},
		{{0, 1}, {1, 1}, {1, 0}, {2, 0}},
	},
	KindZ: {
		{{0, -1}, {0, 0}, {-1, 0}, {-1, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	KindJ: {
		{{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, -1}},
		{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
	},
	KindL: {
		{{0, -1}, {0, 0}, {0, 1}, {-1, -1}},
		{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		{{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
	},
}

// Shapes returns the rotation states of k. Returns nil for KindNone.
func Shapes(k Kind) []Shape {
	if !k.Valid() {
		return nil
	}
	return shapes[k]
}

// RotationCount returns how many distinct rotation states k has.
func RotationCount(k Kind) int {
	return len(Shapes(k))
}

// ShapeAt returns the shape of k at the given rotation index.
// The index wraps modulo the kind's rotation count, negatives included.
func ShapeAt(k Kind, rotation int) Shape {
	states := Shapes(k)
	if len(states) == 0 {
		return Shape{}
	}
	n := len(states)
	return states[((rotation%n)+n)%n]
}

// Bounds returns the extent of a shape's offsets.
func (s Shape) Bounds() (minRow, minCol, maxRow, maxCol int) {
	minRow, minCol = s[0].Row, s[0].Col
	maxRow, maxCol = minRow, minCol
	for _, o := range s[1:] {
		minRow = min(minRow, o.Row)
		minCol = min(minCol, o.Col)
		maxRow = max(maxRow, o.Row)
		maxCol = max(maxCol, o.Col)
	}
	return minRow, minCol, maxRow, maxCol
}

// Position is an anchor in board coordinates. Row grows downward.
type Position struct {
	Row, Col int
}

// Add returns p displaced by o.
func (p Position) Add(o Offset) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Piece is a placed tetromino: kind, rotation index and anchor.
type Piece struct {
	Kind     Kind
	Rotation int
	Pos      Position
}

// Shape returns the piece's current rotation state.
func (p Piece) Shape() Shape {
	return ShapeAt(p.Kind, p.Rotation)
}

// Cells returns the four absolute cells the piece occupies.
func (p Piece) Cells() [4]Position {
	var cells [4]Position
	for i, o := range p.Shape() {
		cells[i] = p.Pos.Add(o)
	}
	return cells
}

// Moved returns a copy of the piece shifted by (dRow, dCol).
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Pos = Position{Row: p.Pos.Row + dRow, Col: p.Pos.Col + dCol}
	return p
}
