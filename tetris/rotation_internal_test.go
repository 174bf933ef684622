package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// On a 4x4 box the generic mapping reduces to the classic square rotation
// offsets.
func TestStoredIndexSquareOffsets(t *testing.T) {
	s := &Shape{kind: Box, pattern: newSilhouette(Green, "....", "....", "....", "....")}

	legacy := map[Orientation]func(r, c int) int{
		Deg0:   func(r, c int) int { return 4*r + c },
		Deg90:  func(r, c int) int { return 12 + r - 4*c },
		Deg180: func(r, c int) int { return 15 - 4*r - c },
		Deg270: func(r, c int) int { return 3 - r + 4*c },
	}

	for o, want := range legacy {
		s.orientation = o
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				assert.Equal(t, want(r, c), s.storedIndex(r, c), "orientation %d° at (%d, %d)", o.Degrees(), r, c)
			}
		}
	}
}

func TestStoredIndexIsPermutation(t *testing.T) {
	dims := [][2]int{{1, 4}, {4, 1}, {1, 2}, {2, 2}, {2, 3}, {3, 2}, {3, 5}}

	for _, d := range dims {
		rows, cols := d[0], d[1]
		s := &Shape{pattern: &silhouette{rows: rows, cols: cols, cells: make([]bool, rows*cols)}}

		for o := Deg0; o <= Deg270; o++ {
			s.orientation = o
			seen := make(map[int]bool, rows*cols)
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					idx := s.storedIndex(r, c)
					assert.GreaterOrEqual(t, idx, 0)
					assert.Less(t, idx, rows*cols)
					assert.False(t, seen[idx], "%dx%d orientation %d° aliases index %d", rows, cols, o.Degrees(), idx)
					seen[idx] = true
				}
			}
			assert.Len(t, seen, rows*cols)
		}
	}
}
