package gui

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource tetris.Kind

func (f fixedSource) RandomShape() *tetris.Shape {
	return tetris.MustNewShape(tetris.Kind(f))
}

func newSession(t *testing.T, rows, cols int, kind tetris.Kind) *game.Session {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := game.NewSession(rows, cols, fixedSource(kind), logger)
	require.NoError(t, err)
	return s
}

func TestKeyButtonsCoverEveryButton(t *testing.T) {
	seen := make(map[game.Button]bool)
	for _, button := range keyButtons {
		seen[button] = true
	}
	for i := range game.NumButtons {
		assert.True(t, seen[game.Button(i)], "button %s has no key", game.Button(i))
	}
}

func TestColorFor(t *testing.T) {
	for i := range tetris.NumColors {
		c := tetris.Color(i)
		assert.NotEqual(t, color.RGBA{}, colorFor(c), c.String())
	}
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, colorFor(tetris.Color(tetris.NumColors)))
}

func TestGhostRow(t *testing.T) {
	s := newSession(t, 6, 4, tetris.Box)
	assert.Equal(t, 4, ghostRow(s.View()))

	require.NoError(t, s.Board().Place(tetris.MustNewShape(tetris.LongLine), tetris.Point{Row: 5, Col: 0}))
	assert.Equal(t, 3, ghostRow(s.View()))
}

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Zero(t, h.average())

	h.add(10)
	h.add(20)
	assert.InDelta(t, 15, h.average(), 1e-6)

	h.add(30)
	h.add(40)
	assert.InDelta(t, 30, h.average(), 1e-6)
}

func TestWindowSize(t *testing.T) {
	w, h := WindowSize(20, 10)
	assert.Equal(t, offsetX*2+10*cellSize+panelW, w)
	assert.Equal(t, offsetY*2+20*cellSize, h)
}
