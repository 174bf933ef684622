package game_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays one Buttons sample per poll and then reports nothing held.
type scripted struct {
	frames []game.Buttons
}

func (s *scripted) Poll() game.Buttons {
	if len(s.frames) == 0 {
		return game.Buttons{}
	}
	b := s.frames[0]
	s.frames = s.frames[1:]
	return b
}

func TestInputSystem(t *testing.T) {
	held := game.Buttons{}

	t.Run("held buttons fire once", func(t *testing.T) {
		session := newSession(t, 20, 10, tetris.Box)
		left := held.Press(game.MoveLeft)
		input := &scripted{frames: []game.Buttons{left, left, left, {}, left}}

		scheduler := game.NewScheduler(session, input, 0)
		scheduler.Register(&game.InputSystem{})

		for i := 0; i < 3; i++ {
			scheduler.Once(0.016)
		}
		assert.Equal(t, 3, session.Anchor().Col)

		scheduler.Once(0.016)
		scheduler.Once(0.016)
		assert.Equal(t, 2, session.Anchor().Col, "release and press again")
	})

	t.Run("rotate buttons", func(t *testing.T) {
		session := newSession(t, 20, 10, tetris.LittleL)
		input := &scripted{frames: []game.Buttons{
			held.Press(game.Rotate),
			{},
			held.Press(game.Rotate),
			held.Press(game.RotateBack),
		}}

		scheduler := game.NewScheduler(session, input, 0)
		scheduler.Register(&game.InputSystem{})

		scheduler.Once(0.016)
		assert.Equal(t, tetris.Deg90, session.Active().Orientation())
		scheduler.Once(0.016)
		scheduler.Once(0.016)
		assert.Equal(t, tetris.Deg180, session.Active().Orientation())
		scheduler.Once(0.016)
		assert.Equal(t, tetris.Deg90, session.Active().Orientation())
	})

	t.Run("soft drop repeats while held", func(t *testing.T) {
		session := newSession(t, 20, 10, tetris.Box)
		down := held.Press(game.SoftDrop)
		input := &scripted{frames: []game.Buttons{down, down, down}}

		scheduler := game.NewScheduler(session, input, 0)
		scheduler.Register(&game.InputSystem{RepeatRate: 100 * time.Millisecond})

		scheduler.Once(0.05)
		assert.Equal(t, 1, session.Anchor().Row, "press moves immediately")
		scheduler.Once(0.05)
		assert.Equal(t, 1, session.Anchor().Row)
		scheduler.Once(0.27)
		assert.Equal(t, 4, session.Anchor().Row, "three repeats accumulated")
	})

	t.Run("restart", func(t *testing.T) {
		session := newSession(t, 2, 4, tetris.Box)
		session.HardDrop()
		assert.True(t, session.GameOver())

		scheduler := game.NewScheduler(session, &scripted{frames: []game.Buttons{held.Press(game.Restart)}}, 0)
		scheduler.Register(&game.InputSystem{})
		scheduler.Once(0.016)

		assert.False(t, session.GameOver())
	})
}

func TestGravitySystem(t *testing.T) {
	t.Run("steps and locks", func(t *testing.T) {
		session := newSession(t, 4, 4, tetris.LongLine)
		gravity := &game.GravitySystem{}

		scheduler := game.NewScheduler(session, nil, time.Second)
		scheduler.Register(gravity)

		scheduler.Once(0.5)
		assert.Equal(t, 0, session.Anchor().Row)
		scheduler.Once(0.5)
		assert.Equal(t, 1, session.Anchor().Row)

		for i := 0; i < 2; i++ {
			scheduler.Once(1.0)
		}
		assert.Equal(t, 3, session.Anchor().Row)
		assert.Zero(t, gravity.Locks())

		scheduler.Once(1.0)
		assert.Equal(t, 1, gravity.Locks())
		assert.Equal(t, 1, session.Lines())
	})

	t.Run("higher levels fall faster", func(t *testing.T) {
		slow := newSession(t, 6, 4, tetris.LongLine)
		fast := newSession(t, 6, 4, tetris.LongLine)
		for range game.LinesPerLevel {
			fast.HardDrop()
		}
		require.Equal(t, game.LinesPerLevel, fast.Lines())
		require.Equal(t, 2, fast.Level())
		require.Equal(t, 0, fast.Anchor().Row)

		for _, session := range []*game.Session{slow, fast} {
			scheduler := game.NewScheduler(session, nil, time.Second)
			scheduler.Register(&game.GravitySystem{})
			scheduler.Once(0.95)
		}

		assert.Equal(t, 0, slow.Anchor().Row, "level 1 waits the full interval")
		assert.Equal(t, 1, fast.Anchor().Row, "level 2 steps after a second divided by 1.1")
	})

	t.Run("idle after game over", func(t *testing.T) {
		session := newSession(t, 2, 4, tetris.Box)
		session.HardDrop()
		require.True(t, session.GameOver())

		gravity := &game.GravitySystem{}
		scheduler := game.NewScheduler(session, nil, time.Second)
		scheduler.Register(gravity)
		scheduler.Once(5)

		assert.Zero(t, gravity.Locks())
	})
}

func TestRenderSystem(t *testing.T) {
	session := newSession(t, 20, 10, tetris.Box)

	var views []game.View
	scheduler := game.NewScheduler(session, &scripted{frames: []game.Buttons{game.Buttons{}.Press(game.MoveLeft)}}, 0)
	scheduler.Register(&game.InputSystem{})
	scheduler.Register(&game.RenderSystem{Renderer: game.RenderFunc(func(v game.View) {
		views = append(views, v)
	})})

	scheduler.Once(0.016)

	if assert.Len(t, views, 1) {
		assert.Equal(t, tetris.Point{Row: 0, Col: 3}, views[0].Anchor)
		assert.Len(t, views[0].Cells, 20)
	}
}
