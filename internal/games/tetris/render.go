package tetris

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

const tooSmallMessage = "Terminal too small!"

// Render draws the info line, bordered board, falling piece, next-piece
// preview and, once the game is over, the game over overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.session == nil || g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, tooSmallMessage, g.palette.ErrorColor)
		return
	}

	l := g.layout
	s := g.session
	board := s.Board()

	// Info line, padded to the bordered board width
	info := fmt.Sprintf("Score:%-6d Lvl:%-3d Lines:%d", s.Score(), s.Level(), s.Lines())
	dst.DrawTextColor(l.Left, l.Top, fmt.Sprintf("%-*s", l.BoardW+borderWidth, info), g.palette.InfoColor)

	boardTop := l.Top + infoHeight
	dst.DrawFrame(platformcore.NewRect(l.Left, boardTop, l.BoardW+borderWidth, l.BoardH+borderHeight),
		g.palette.Border, g.palette.BorderColor)

	originX, originY := l.Left+1, boardTop+1
	for r, rows := 0, board.Height(); r < rows; r++ {
		for c, cols := 0, board.Width(); c < cols; c++ {
			k := board.Cell(r, c)
			if k == core.KindNone {
				dst.SetCell(originX+c, originY+r, g.palette.Empty, platformcore.ColorDefault)
				continue
			}
			dst.SetCell(originX+c, originY+r, g.palette.Block, g.palette.PieceColor(k))
		}
	}

	if p, ok := s.Current(); ok {
		color := g.palette.PieceColor(p.Kind)
		for _, cell := range p.Cells() {
			if cell.Row < 0 || cell.Row >= board.Height() || cell.Col < 0 || cell.Col >= board.Width() {
				continue
			}
			dst.SetCell(originX+cell.Col, originY+cell.Row, g.palette.Block, color)
		}
	}

	g.renderPreview(dst, s.Next(), l.Left+l.BoardW+borderWidth+previewSpacing, boardTop)

	if s.GameOver() {
		g.renderGameOver(dst, originX, originY, board.Width(), board.Height())
	}
}

// renderPreview draws "Next:" with the base shape of k below it.
func (g *Game) renderPreview(dst *platformcore.Screen, k core.Kind, x, y int) {
	dst.DrawTextColor(x, y, "Next:", g.palette.InfoColor)
	if !k.Valid() {
		return
	}

	shape := core.ShapeAt(k, 0)
	minRow, minCol, _, _ := shape.Bounds()
	color := g.palette.PieceColor(k)
	for _, o := range shape {
		dst.SetCell(x+o.Col-minCol, y+1+o.Row-minRow, g.palette.Block, color)
	}
}

// renderGameOver centers the overlay lines within the board area.
func (g *Game) renderGameOver(dst *platformcore.Screen, originX, originY, w, h int) {
	lines := []struct {
		text  string
		color platformcore.Color
	}{
		{"GAME OVER", g.palette.ErrorColor},
		{fmt.Sprintf("Score: %d", g.session.Score()), g.palette.InfoColor},
		{"Exit: q", g.palette.InfoColor},
		{"Restart: r", g.palette.InfoColor},
	}

	row := originY + h/2 - 1
	for i, line := range lines {
		col := originX + max(0, (w-len(line.text))/2)
		dst.DrawTextColor(col, row+i, line.text, line.color)
	}
}
