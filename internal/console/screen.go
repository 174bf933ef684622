package console

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
)

type screen interface {
	Clear(fg, bg termbox.Attribute) error
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	Flush() error
}

type termboxScreen struct{}

func (termboxScreen) Clear(fg, bg termbox.Attribute) error { return termbox.Clear(fg, bg) }
func (termboxScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}
func (termboxScreen) Flush() error { return termbox.Flush() }

const (
	// Each board cell is two terminal columns wide so blocks look square.
	cellWidth = 2
	originX   = 1
	originY   = 1
)

var colorAttributes = [...]termbox.Attribute{
	tetris.Blue:    termbox.ColorBlue,
	tetris.Red:     termbox.ColorRed,
	tetris.Green:   termbox.ColorGreen,
	tetris.Magenta: termbox.ColorMagenta,
	tetris.Cyan:    termbox.ColorCyan,
	tetris.Yellow:  termbox.ColorYellow,
}

func attributeFor(c tetris.Color) termbox.Attribute {
	if int(c) < len(colorAttributes) {
		return colorAttributes[c]
	}
	return termbox.ColorWhite
}

func draw(scr screen, v game.View) {
	_ = scr.Clear(termbox.ColorDefault, termbox.ColorDefault)

	rows := len(v.Cells)
	cols := 0
	if rows > 0 {
		cols = len(v.Cells[0])
	}

	drawBorder(scr, rows, cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			switch {
			case v.ActiveAt(r, c):
				drawBlock(scr, r, c, attributeFor(v.Active.Color()))
			case v.Cells[r][c] == tetris.Occupied:
				drawBlock(scr, r, c, attributeFor(v.Colors[r][c]))
			}
		}
	}

	panelX := originX + cols*cellWidth + 3
	drawText(scr, panelX, originY, fmt.Sprintf("SCORE %d", v.Score))
	drawText(scr, panelX, originY+2, fmt.Sprintf("LINES %d", v.Lines))
	drawText(scr, panelX, originY+4, fmt.Sprintf("LEVEL %d", v.Level))
	if v.GameOver {
		drawText(scr, panelX, originY+7, "GAME OVER")
		drawText(scr, panelX, originY+8, "r restart, q quit")
	}
}

func drawBlock(scr screen, row, col int, fg termbox.Attribute) {
	x := originX + 1 + col*cellWidth
	y := originY + row
	scr.SetCell(x, y, '[', fg, termbox.ColorDefault)
	scr.SetCell(x+1, y, ']', fg, termbox.ColorDefault)
}

func drawBorder(scr screen, rows, cols int) {
	left := originX
	right := originX + 1 + cols*cellWidth
	bottom := originY + rows

	for y := originY; y < bottom; y++ {
		scr.SetCell(left, y, '|', termbox.ColorWhite, termbox.ColorDefault)
		scr.SetCell(right, y, '|', termbox.ColorWhite, termbox.ColorDefault)
	}
	for x := left; x <= right; x++ {
		scr.SetCell(x, bottom, '-', termbox.ColorWhite, termbox.ColorDefault)
	}
}

func drawText(scr screen, x, y int, text string) {
	for i, ch := range []rune(text) {
		scr.SetCell(x+i, y, ch, termbox.ColorWhite, termbox.ColorDefault)
	}
}
