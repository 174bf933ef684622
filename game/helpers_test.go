package game_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/require"
)

// sequence hands out shapes of the listed kinds in order, repeating the last one.
type sequence struct {
	kinds []tetris.Kind
	next  int
}

func (s *sequence) RandomShape() *tetris.Shape {
	kind := s.kinds[min(s.next, len(s.kinds)-1)]
	s.next++
	return tetris.MustNewShape(kind)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(t *testing.T, rows, cols int, kinds ...tetris.Kind) *game.Session {
	t.Helper()
	s, err := game.NewSession(rows, cols, &sequence{kinds: kinds}, discardLogger())
	require.NoError(t, err)
	return s
}
