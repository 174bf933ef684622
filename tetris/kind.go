package tetris

import "fmt"

// Kind identifies one of the piece silhouettes a Factory can produce.
type Kind uint8

const (
	LongLine Kind = iota
	ShortLine
	Box
	BigL
	LittleL
	ZigZag

	// NumKinds is the number of kinds the Factory selects from.
	NumKinds = int(ZigZag) + 1
)

var kindNames = [...]string{
	LongLine:  "LongLine",
	ShortLine: "ShortLine",
	Box:       "Box",
	BigL:      "BigL",
	LittleL:   "LittleL",
	ZigZag:    "ZigZag",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a known silhouette.
func (k Kind) Valid() bool {
	return int(k) < NumKinds
}

// Color is a rendering tag carried by every shape. Collision logic never reads it.
type Color uint8

const (
	Blue Color = iota
	Red
	Green
	Magenta
	Cyan
	Yellow

	NumColors = int(Yellow) + 1
)

var colorNames = [...]string{
	Blue:    "Blue",
	Red:     "Red",
	Green:   "Green",
	Magenta: "Magenta",
	Cyan:    "Cyan",
	Yellow:  "Yellow",
}

func (c Color) String() string {
	if int(c) >= NumColors {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// silhouette is the immutable orientation-0 pattern of a kind.
type silhouette struct {
	rows  int
	cols  int
	cells []bool
	color Color
}

func newSilhouette(color Color, rows ...string) *silhouette {
	s := &silhouette{
		rows:  len(rows),
		cols:  len(rows[0]),
		color: color,
	}
	s.cells = make([]bool, 0, s.rows*s.cols)
	for _, row := range rows {
		if len(row) != s.cols {
			panic("silhouette rows must have equal width")
		}
		for _, ch := range row {
			s.cells = append(s.cells, ch == '#')
		}
	}
	return s
}

// silhouettes is indexed by Kind.
var silhouettes = [...]*silhouette{
	LongLine:  newSilhouette(Blue, "####"),
	ShortLine: newSilhouette(Red, "##"),
	Box:       newSilhouette(Green, "##", "##"),
	BigL:      newSilhouette(Magenta, "###", "#.."),
	LittleL:   newSilhouette(Cyan, "##", "#."),
	ZigZag:    newSilhouette(Yellow, "##.", ".##"),
}
