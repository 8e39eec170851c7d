package core

import "strings"

// Board is a fixed-size grid of locked cells. Row 0 is the top visible row.
// A cell holds KindNone when empty or the kind of the piece locked there.
type Board struct {
	width  int
	height int
	cells  [][]Kind
}

// BoardView is read-only access to a board, handed to renderers.
type BoardView interface {
	Width() int
	Height() int
	Cell(row, col int) Kind
	IsEmpty(row, col int) bool
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]Kind, height)
	for r := range b.cells {
		b.cells[r] = make([]Kind, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether (row, col) is a cell of the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Cell returns the occupant of (row, col). Out-of-range cells read as empty.
func (b *Board) Cell(row, col int) Kind {
	if !b.InBounds(row, col) {
		return KindNone
	}
	return b.cells[row][col]
}

// IsEmpty reports whether (row, col) holds no locked block.
func (b *Board) IsEmpty(row, col int) bool {
	return b.Cell(row, col) == KindNone
}

// Set writes kind into (row, col). Out-of-range writes are ignored.
func (b *Board) Set(row, col int, kind Kind) {
	if !b.InBounds(row, col) {
		return
	}
	b.cells[row][col] = kind
}

// RowFull reports whether every cell of the row is occupied.
func (b *Board) RowFull(row int) bool {
	if row < 0 || row >= b.height {
		return false
	}
	for _, k := range b.cells[row] {
		if k == KindNone {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row found in one scan of the board and
// compacts the rest downward, inserting empty rows at the top. Surviving
// rows keep their relative order. Returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]Kind, 0, b.height)
	for r := range b.cells {
		if !b.RowFull(r) {
			kept = append(kept, b.cells[r])
		}
	}

	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]Kind, 0, b.height)
	for i := 0; i < cleared; i++ {
		rows = append(rows, make([]Kind, b.width))
	}
	b.cells = append(rows, kept...)
	return cleared
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.width, b.height)
	for r := range b.cells {
		copy(c.cells[r], b.cells[r])
	}
	return c
}

// Rows returns a copy of the grid, top row first.
func (b *Board) Rows() [][]Kind {
	return b.Clone().cells
}

// String renders the board with '.' for empty cells and kind letters.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for r, row := range b.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, k := range row {
			sb.WriteString(k.String())
		}
	}
	return sb.String()
}
