package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
)

var keyButtons = map[ebiten.Key]game.Button{
	ebiten.KeyArrowLeft:  game.MoveLeft,
	ebiten.KeyArrowRight: game.MoveRight,
	ebiten.KeyArrowDown:  game.SoftDrop,
	ebiten.KeyArrowUp:    game.Rotate,
	ebiten.KeyA:          game.Rotate,
	ebiten.KeyS:          game.RotateBack,
	ebiten.KeySpace:      game.HardDrop,
	ebiten.KeyR:          game.Restart,
}

var shapeColors = [...]color.RGBA{
	tetris.Blue:    {0x33, 0x66, 0xff, 0xff},
	tetris.Red:     {0xe6, 0x29, 0x37, 0xff},
	tetris.Green:   {0x00, 0xe4, 0x30, 0xff},
	tetris.Magenta: {0xc8, 0x7a, 0xff, 0xff},
	tetris.Cyan:    {0x66, 0xbf, 0xff, 0xff},
	tetris.Yellow:  {0xff, 0xcb, 0x00, 0xff},
}

var (
	borderColor = color.RGBA{0x82, 0x82, 0x82, 0xff}
	gridColor   = color.RGBA{0x20, 0x20, 0x20, 0xff}
	ghostColor  = color.RGBA{0xff, 0xff, 0xff, 0x50}
)

func colorFor(c tetris.Color) color.RGBA {
	if int(c) < len(shapeColors) {
		return shapeColors[c]
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}

// ghostRow returns the row the active shape would lock at.
func ghostRow(v game.View) int {
	row := v.Anchor.Row
	for row+v.Active.NumRows() < len(v.Cells) && !overlaps(v, row+1) {
		row++
	}
	return row
}

// overlaps reports whether the active shape anchored at row would cover a settled cell.
func overlaps(v game.View, row int) bool {
	for r := 0; r < v.Active.NumRows(); r++ {
		for c := 0; c < v.Active.NumCols(); c++ {
			if !v.Active.IsOccupied(r, c) {
				continue
			}
			br, bc := row+r, v.Anchor.Col+c
			if br >= len(v.Cells) || v.Cells[br][bc] == tetris.Occupied {
				return true
			}
		}
	}
	return false
}

func drawCell(screen *ebiten.Image, row, col int, clr color.Color) {
	x := float32(offsetX + col*cellSize)
	y := float32(offsetY + row*cellSize)
	vector.DrawFilledRect(screen, x+1, y+1, cellSize-2, cellSize-2, clr, false)
}

func drawView(screen *ebiten.Image, v game.View) {
	rows := len(v.Cells)
	if rows == 0 {
		return
	}
	cols := len(v.Cells[0])

	vector.StrokeRect(screen, offsetX-2, offsetY-2, float32(cols*cellSize+4), float32(rows*cellSize+4), 2, borderColor, false)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v.Cells[r][c] == tetris.Occupied {
				drawCell(screen, r, c, colorFor(v.Colors[r][c]))
			} else {
				drawCell(screen, r, c, gridColor)
			}
		}
	}

	if v.Active != nil && !v.GameOver {
		ghost := ghostRow(v)
		activeColor := colorFor(v.Active.Color())
		for r := 0; r < v.Active.NumRows(); r++ {
			for c := 0; c < v.Active.NumCols(); c++ {
				if !v.Active.IsOccupied(r, c) {
					continue
				}
				drawCell(screen, ghost+r, v.Anchor.Col+c, ghostColor)
				drawCell(screen, v.Anchor.Row+r, v.Anchor.Col+c, activeColor)
			}
		}
	}

	textX := offsetX + cols*cellSize + 20
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE\n%d", v.Score), textX, offsetY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES\n%d", v.Lines), textX, offsetY+40)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL\n%d", v.Level), textX, offsetY+80)
	ebitenutil.DebugPrintAt(screen, "F1 debug  R restart", textX, offsetY+140)

	if v.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", offsetX+20, offsetY+rows*cellSize/2-10)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", offsetX+10, offsetY+rows*cellSize/2+10)
	}
}
