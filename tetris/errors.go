package tetris

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a board is created with a non-positive extent.
var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// BoundsError reports a coordinate outside a grid's valid range. It is always a
// caller contract violation: accessors panic with it and Board.Place returns it.
type BoundsError struct {
	Grid string
	Row  int
	Col  int
	Rows int
	Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: cell (%d, %d) outside %dx%d grid", e.Grid, e.Row, e.Col, e.Rows, e.Cols)
}

// InvalidKindError reports a Kind with no silhouette.
type InvalidKindError struct {
	Kind Kind
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid tetrimino kind %d", uint8(e.Kind))
}
