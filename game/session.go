package game

import (
	"fmt"
	"log/slog"

	"github.com/plus3/blockfall/tetris"
)

const (
	// MinRows and MinCols are the smallest board that can hold every kind.
	MinRows = 2
	MinCols = 4

	PointsPerLine = 100
	LinesPerLevel = 10
)

// ShapeSource supplies the next active shape. *tetris.Factory implements it.
type ShapeSource interface {
	RandomShape() *tetris.Shape
}

// Session owns the board and the active shape and drives the falling-piece
// state machine. It is not safe for concurrent use.
type Session struct {
	rows   int
	cols   int
	board  *tetris.Board
	shapes ShapeSource
	logger *slog.Logger

	active *tetris.Shape
	anchor tetris.Point

	score  int
	lines  int
	pieces int
	over   bool
}

// NewSession creates a rows×cols board and spawns the first shape.
func NewSession(rows, cols int, shapes ShapeSource, logger *slog.Logger) (*Session, error) {
	if rows < MinRows || cols < MinCols {
		return nil, fmt.Errorf("board %dx%d is smaller than %dx%d", rows, cols, MinRows, MinCols)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		rows:   rows,
		cols:   cols,
		shapes: shapes,
		logger: logger,
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) reset() error {
	board, err := tetris.NewBoard(s.rows, s.cols)
	if err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.board = board
	s.score, s.lines, s.pieces = 0, 0, 0
	s.over = false
	s.spawn()
	return nil
}

// Restart clears the board and counters and spawns a new shape.
func (s *Session) Restart() {
	if err := s.reset(); err != nil {
		// Dimensions were validated by NewSession.
		panic(err)
	}
	s.logger.Info("Session restarted.")
}

func (s *Session) spawn() {
	shape := s.shapes.RandomShape()
	anchor := tetris.Point{Row: 0, Col: (s.cols - shape.NumCols()) / 2}

	s.active = shape
	s.anchor = anchor

	if !s.board.Fits(shape, anchor) {
		s.over = true
		s.logger.Info("Game over.", "score", s.score, "lines", s.lines, "pieces", s.pieces)
		return
	}
	s.logger.Debug("Spawned shape.", "kind", shape.Kind(), "anchor", anchor)
}

// Step applies one gravity tick. The active shape falls one row, or locks
// into the board when it cannot. It reports whether a lock-in happened.
func (s *Session) Step() bool {
	if s.over {
		return false
	}
	if s.board.CanMove(s.active, s.anchor, tetris.Down) {
		s.anchor.Row++
		return false
	}
	s.lock()
	return true
}

func (s *Session) lock() {
	if err := s.board.Place(s.active, s.anchor); err != nil {
		// The active shape always fits where the session put it.
		panic(fmt.Errorf("lock active shape: %w", err))
	}
	s.pieces++

	cleared := s.board.ClearFullRows()
	if cleared > 0 {
		s.lines += cleared
		s.score += cleared * PointsPerLine
		s.logger.Debug("Cleared rows.", "rows", cleared, "lines", s.lines, "score", s.score)
	}
	s.logger.Debug("Locked shape.", "kind", s.active.Kind(), "anchor", s.anchor)

	s.spawn()
}

func (s *Session) move(dir tetris.Direction, dc int) bool {
	if s.over || !s.board.CanMove(s.active, s.anchor, dir) {
		return false
	}
	s.anchor.Col += dc
	return true
}

// MoveLeft shifts the active shape one column left if the board allows it.
func (s *Session) MoveLeft() bool { return s.move(tetris.Left, -1) }

// MoveRight shifts the active shape one column right if the board allows it.
func (s *Session) MoveRight() bool { return s.move(tetris.Right, 1) }

// SoftDrop moves the active shape one row down if possible. It never locks;
// lock-in only happens on a gravity tick.
func (s *Session) SoftDrop() bool {
	if s.over || !s.board.CanMove(s.active, s.anchor, tetris.Down) {
		return false
	}
	s.anchor.Row++
	return true
}

// HardDrop drops the active shape as far as it goes and locks it. It returns
// the number of rows fallen.
func (s *Session) HardDrop() int {
	if s.over {
		return 0
	}
	fallen := 0
	for s.board.CanMove(s.active, s.anchor, tetris.Down) {
		s.anchor.Row++
		fallen++
	}
	s.lock()
	return fallen
}

// Rotate turns the active shape a quarter clockwise. The rotation is rejected
// when the new footprint overlaps settled cells.
func (s *Session) Rotate() bool { return s.rotate(1) }

// RotateBack turns the active shape a quarter counter-clockwise, with the
// same rejection rule as Rotate.
func (s *Session) RotateBack() bool { return s.rotate(3) }

func (s *Session) rotate(quarters int) bool {
	if s.over {
		return false
	}
	rotated := s.active.Clone()
	for i := 0; i < quarters; i++ {
		rotated.Rotate90()
	}
	if !s.board.Fits(rotated, s.anchor) {
		return false
	}
	s.active = rotated
	return true
}

func (s *Session) Board() *tetris.Board  { return s.board }
func (s *Session) Active() *tetris.Shape { return s.active }
func (s *Session) Anchor() tetris.Point  { return s.anchor }
func (s *Session) Score() int            { return s.score }
func (s *Session) Lines() int            { return s.lines }
func (s *Session) Pieces() int           { return s.pieces }
func (s *Session) GameOver() bool        { return s.over }

// Level starts at 1 and rises every LinesPerLevel cleared lines.
func (s *Session) Level() int {
	return s.lines/LinesPerLevel + 1
}

// View is a read-only frame of session state for renderers.
type View struct {
	Cells    [][]tetris.Cell
	Colors   [][]tetris.Color
	Active   *tetris.Shape
	Anchor   tetris.Point
	Score    int
	Lines    int
	Level    int
	GameOver bool
}

// View copies the current state. Colors is only meaningful where Cells is Occupied.
func (s *Session) View() View {
	cells := s.board.Snapshot()
	colors := make([][]tetris.Color, len(cells))
	for r := range cells {
		colors[r] = make([]tetris.Color, s.cols)
		for c := range cells[r] {
			if color, ok := s.board.CellColor(r, c); ok {
				colors[r][c] = color
			}
		}
	}

	return View{
		Cells:    cells,
		Colors:   colors,
		Active:   s.active.Clone(),
		Anchor:   s.anchor,
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.Level(),
		GameOver: s.over,
	}
}

// ActiveAt reports whether the active shape covers board cell (row, col).
func (v View) ActiveAt(row, col int) bool {
	if v.Active == nil {
		return false
	}
	r, c := row-v.Anchor.Row, col-v.Anchor.Col
	if r < 0 || r >= v.Active.NumRows() || c < 0 || c >= v.Active.NumCols() {
		return false
	}
	return v.Active.IsOccupied(r, c)
}
