// Package tetris implements the falling-block puzzle core: a fixed-size Board
// of settled cells and rotatable Shapes that move across it under collision
// constraints.
package tetris

// Orientation is a clockwise quarter-turn count applied when reading a shape.
type Orientation uint8

const (
	Deg0 Orientation = iota
	Deg90
	Deg180
	Deg270
)

// Degrees returns the clockwise rotation angle.
func (o Orientation) Degrees() int {
	return int(o%4) * 90
}

// Shape is a single piece. Its silhouette and bounding box are fixed at
// construction; only the orientation used to read it changes.
type Shape struct {
	kind        Kind
	pattern     *silhouette
	orientation Orientation
}

// NewShape returns a shape of the given kind at orientation Deg0.
func NewShape(kind Kind) (*Shape, error) {
	if !kind.Valid() {
		return nil, &InvalidKindError{Kind: kind}
	}
	return &Shape{
		kind:    kind,
		pattern: silhouettes[kind],
	}, nil
}

// MustNewShape is NewShape for kinds known to be valid. It panics otherwise.
func MustNewShape(kind Kind) *Shape {
	s, err := NewShape(kind)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Shape) Kind() Kind               { return s.kind }
func (s *Shape) Color() Color             { return s.pattern.color }
func (s *Shape) Orientation() Orientation { return s.orientation }
func (s *Shape) NumRows() int             { return s.pattern.rows }
func (s *Shape) NumCols() int             { return s.pattern.cols }

// Rotate90 advances the orientation a quarter turn clockwise, wrapping at Deg270.
func (s *Shape) Rotate90() {
	s.orientation = (s.orientation + 1) % 4
}

// Clone returns an independent shape with the same kind and orientation.
func (s *Shape) Clone() *Shape {
	c := *s
	return &c
}

// IsOccupied reports whether the bounding-box cell (row, col), read through the
// current orientation, is occupied. It panics with *BoundsError outside the box.
func (s *Shape) IsOccupied(row, col int) bool {
	occupied, err := s.Occupied(row, col)
	if err != nil {
		panic(err)
	}
	return occupied
}

// Occupied is the checked form of IsOccupied.
func (s *Shape) Occupied(row, col int) (bool, error) {
	if row < 0 || row >= s.pattern.rows || col < 0 || col >= s.pattern.cols {
		return false, &BoundsError{Grid: s.kind.String(), Row: row, Col: col, Rows: s.pattern.rows, Cols: s.pattern.cols}
	}
	return s.pattern.cells[s.storedIndex(row, col)], nil
}

// CellCount returns the number of occupied cells.
func (s *Shape) CellCount() int {
	n := 0
	for _, occupied := range s.pattern.cells {
		if occupied {
			n++
		}
	}
	return n
}

// storedIndex maps a logical coordinate under the current orientation to an
// index into the stored R×C pattern. Quarter turns produce a C×R matrix; it is
// addressed row-major by the logical linear index so that every orientation is
// a bijection on [0, R*C) and the extents stay fixed.
func (s *Shape) storedIndex(row, col int) int {
	rows, cols := s.pattern.rows, s.pattern.cols
	k := row*cols + col

	var sr, sc int
	switch s.orientation {
	case Deg0:
		sr, sc = row, col
	case Deg90:
		a, b := k/rows, k%rows
		sr, sc = rows-1-b, a
	case Deg180:
		sr, sc = rows-1-row, cols-1-col
	case Deg270:
		a, b := k/rows, k%rows
		sr, sc = b, cols-1-a
	}
	return sr*cols + sc
}

// cells calls fn for every occupied logical cell in row-major order.
func (s *Shape) cells(fn func(row, col int)) {
	for r := 0; r < s.pattern.rows; r++ {
		for c := 0; c < s.pattern.cols; c++ {
			if s.pattern.cells[s.storedIndex(r, c)] {
				fn(r, c)
			}
		}
	}
}

// String renders the current orientation as rows of '#' and '.' separated by '/'.
func (s *Shape) String() string {
	buf := make([]byte, 0, s.pattern.rows*(s.pattern.cols+1))
	for r := 0; r < s.pattern.rows; r++ {
		if r > 0 {
			buf = append(buf, '/')
		}
		for c := 0; c < s.pattern.cols; c++ {
			if s.pattern.cells[s.storedIndex(r, c)] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}
