package tetris

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Fixed chrome around the board, in terminal cells.
const (
	infoHeight     = 1
	borderHeight   = 2
	borderWidth    = 2
	previewWidth   = 6
	previewSpacing = 2
)

// ErrTerminalTooSmall is returned when the terminal cannot hold the
// minimum board plus its border, info line and preview column.
var ErrTerminalTooSmall = errors.New("terminal too small")

// Layout places the board on the screen. Top and Left are the origin of the
// info line; the bordered board starts one row below it.
type Layout struct {
	BoardW int
	BoardH int
	Top    int
	Left   int
}

// ContentWidth returns the total width of board, border and preview.
func (l Layout) ContentWidth() int {
	return l.BoardW + borderWidth + previewSpacing + previewWidth
}

// ContentHeight returns the total height of info line, board and border.
func (l Layout) ContentHeight() int {
	return l.BoardH + infoHeight + borderHeight
}

// ComputeLayout sizes a new board from the terminal. The board aims for
// WidthFraction of the terminal width and all of its height, never below
// the configured minimum. When the target does not fit, the whole terminal
// is used instead; when even the minimum does not fit it fails with
// ErrTerminalTooSmall.
func ComputeLayout(termW, termH int, bc config.BoardConfig) (Layout, error) {
	chromeW := borderWidth + previewSpacing + previewWidth
	chromeH := infoHeight + borderHeight

	targetW := int(math.Floor(float64(termW)*bc.WidthFraction)) - chromeW
	l := Layout{
		BoardW: max(bc.MinWidth, targetW),
		BoardH: max(bc.MinHeight, termH-chromeH),
	}

	if l.ContentHeight() > termH || l.ContentWidth() > termW {
		fallbackW := termW - chromeW
		fallbackH := termH - chromeH
		if fallbackH < bc.MinHeight || fallbackW < bc.MinWidth {
			return Layout{}, ErrTerminalTooSmall
		}
		l.BoardW = max(bc.MinWidth, fallbackW)
		l.BoardH = max(bc.MinHeight, fallbackH)
	}

	l.center(termW, termH)
	return l, nil
}

// PlaceBoard centers an existing board of fixed size. ok is false when the
// board no longer fits, in which case the layout is unusable.
func PlaceBoard(termW, termH, boardW, boardH int) (l Layout, ok bool) {
	l = Layout{BoardW: boardW, BoardH: boardH}
	if l.ContentWidth() > termW || l.ContentHeight() > termH {
		return l, false
	}
	l.center(termW, termH)
	return l, true
}

func (l *Layout) center(termW, termH int) {
	l.Top = max(0, (termH-l.ContentHeight())/2)
	l.Left = max(0, (termW-l.ContentWidth())/2)
}
