package tetris

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Cell is the occupancy state of one board or shape cell.
type Cell uint8

const (
	Empty Cell = iota
	Occupied
)

func (c Cell) String() string {
	if c == Occupied {
		return "Occupied"
	}
	return "Empty"
}

// Direction is a single-step translation requested by the game loop.
type Direction uint8

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Down:
		return "Down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Point is a board coordinate. As an anchor it names the cell under a shape's
// bounding-box top-left corner.
type Point struct {
	Row, Col int
}

// Board is a fixed-size row-major grid of settled cells.
type Board struct {
	rows   int
	cols   int
	cells  []Cell
	colors *intmap.Map[int, Color]
}

// NewBoard returns an empty rows×cols board.
func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("new board %dx%d: %w", rows, cols, ErrInvalidDimensions)
	}
	return &Board{
		rows:   rows,
		cols:   cols,
		cells:  make([]Cell, rows*cols),
		colors: intmap.New[int, Color](rows * cols),
	}, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) inside(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) boundsError(row, col int) *BoundsError {
	return &BoundsError{Grid: "board", Row: row, Col: col, Rows: b.rows, Cols: b.cols}
}

// Cell returns the state at (row, col). It panics with *BoundsError outside the board.
func (b *Board) Cell(row, col int) Cell {
	if !b.inside(row, col) {
		panic(b.boundsError(row, col))
	}
	return b.cells[b.index(row, col)]
}

// IsOccupied is shorthand for Cell(row, col) == Occupied.
func (b *Board) IsOccupied(row, col int) bool {
	return b.Cell(row, col) == Occupied
}

// CellColor returns the color of the shape that locked (row, col), if any.
// It panics with *BoundsError outside the board.
func (b *Board) CellColor(row, col int) (Color, bool) {
	if !b.inside(row, col) {
		panic(b.boundsError(row, col))
	}
	return b.colors.Get(b.index(row, col))
}

// Snapshot returns a copy of the grid, indexed [row][col].
func (b *Board) Snapshot() [][]Cell {
	out := make([][]Cell, b.rows)
	for r := range out {
		out[r] = make([]Cell, b.cols)
		copy(out[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return out
}

// CanMove reports whether shape, anchored at anchor, can translate one cell in
// dir. It never mutates the board. Only occupied shape cells are tested, and
// only against board cells outside the shape's own footprint.
func (b *Board) CanMove(shape *Shape, anchor Point, dir Direction) bool {
	switch dir {
	case Down:
		if anchor.Row+shape.NumRows() >= b.rows {
			return false
		}
		return !b.blocked(shape, anchor, 1, 0)
	case Left:
		if anchor.Col <= 0 {
			return false
		}
		return !b.blocked(shape, anchor, 0, -1)
	case Right:
		if anchor.Col+shape.NumCols() >= b.cols {
			return false
		}
		return !b.blocked(shape, anchor, 0, 1)
	default:
		return false
	}
}

func (b *Board) blocked(shape *Shape, anchor Point, dr, dc int) bool {
	blocked := false
	shape.cells(func(r, c int) {
		if blocked {
			return
		}
		nr, nc := r+dr, c+dc
		if nr >= 0 && nr < shape.NumRows() && nc >= 0 && nc < shape.NumCols() && shape.IsOccupied(nr, nc) {
			return
		}
		row, col := anchor.Row+nr, anchor.Col+nc
		if !b.inside(row, col) || b.cells[b.index(row, col)] == Occupied {
			blocked = true
		}
	})
	return blocked
}

// Fits reports whether every occupied cell of shape at anchor lies on the board
// over an empty cell.
func (b *Board) Fits(shape *Shape, anchor Point) bool {
	fits := true
	shape.cells(func(r, c int) {
		row, col := anchor.Row+r, anchor.Col+c
		if !b.inside(row, col) || b.cells[b.index(row, col)] == Occupied {
			fits = false
		}
	})
	return fits
}

// Place copies the occupied cells of shape at anchor into the board. If any
// target cell is off the board it returns *BoundsError and leaves the board
// untouched.
func (b *Board) Place(shape *Shape, anchor Point) error {
	var err error
	shape.cells(func(r, c int) {
		row, col := anchor.Row+r, anchor.Col+c
		if err == nil && !b.inside(row, col) {
			err = b.boundsError(row, col)
		}
	})
	if err != nil {
		return fmt.Errorf("place %s at (%d, %d): %w", shape.Kind(), anchor.Row, anchor.Col, err)
	}

	color := shape.Color()
	shape.cells(func(r, c int) {
		idx := b.index(anchor.Row+r, anchor.Col+c)
		b.cells[idx] = Occupied
		b.colors.Put(idx, color)
	})
	return nil
}

// ClearFullRows removes every fully occupied row, shifts the rows above down
// and fills the top with empty rows. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	colors := intmap.New[int, Color](len(b.cells))

	write := b.rows - 1
	for read := b.rows - 1; read >= 0; read-- {
		if b.rowFull(read) {
			cleared++
			continue
		}
		for col := 0; col < b.cols; col++ {
			from, to := b.index(read, col), b.index(write, col)
			b.cells[to] = b.cells[from]
			if color, ok := b.colors.Get(from); ok {
				colors.Put(to, color)
			}
		}
		write--
	}

	if cleared == 0 {
		return 0
	}

	for i := 0; i < cleared*b.cols; i++ {
		b.cells[i] = Empty
	}
	b.colors = colors
	return cleared
}

func (b *Board) rowFull(row int) bool {
	for _, cell := range b.cells[row*b.cols : (row+1)*b.cols] {
		if cell != Occupied {
			return false
		}
	}
	return true
}

// String renders the board as rows of '#' and '.' separated by newlines.
func (b *Board) String() string {
	buf := make([]byte, 0, b.rows*(b.cols+1))
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.cells[b.index(r, c)] == Occupied {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
