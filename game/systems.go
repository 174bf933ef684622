package game

import "time"

const (
	DefaultGravityInterval = 500 * time.Millisecond
	DefaultRepeatRate      = 50 * time.Millisecond
)

// InputSystem turns button samples into session moves. Every button fires
// once per press except SoftDrop, which repeats every RepeatRate while held.
type InputSystem struct {
	RepeatRate time.Duration

	edges    [NumButtons]edge
	downTime float64
}

func (s *InputSystem) Execute(frame *Frame) {
	session := frame.Session
	input := frame.Input

	if s.edges[Restart].fire(input.Pressed(Restart)) {
		session.Restart()
	}
	if s.edges[MoveLeft].fire(input.Pressed(MoveLeft)) {
		session.MoveLeft()
	}
	if s.edges[MoveRight].fire(input.Pressed(MoveRight)) {
		session.MoveRight()
	}
	if s.edges[Rotate].fire(input.Pressed(Rotate)) {
		session.Rotate()
	}
	if s.edges[RotateBack].fire(input.Pressed(RotateBack)) {
		session.RotateBack()
	}
	if s.edges[HardDrop].fire(input.Pressed(HardDrop)) {
		session.HardDrop()
	}

	if !input.Pressed(SoftDrop) {
		s.edges[SoftDrop].fire(false)
		s.downTime = 0
		return
	}

	if s.edges[SoftDrop].fire(true) {
		s.downTime = 0
		session.SoftDrop()
		return
	}

	rate := s.RepeatRate.Seconds()
	if rate <= 0 {
		rate = DefaultRepeatRate.Seconds()
	}
	s.downTime += frame.DeltaTime
	for s.downTime >= rate {
		s.downTime -= rate
		session.SoftDrop()
	}
}

// GravitySystem steps the session once every Frame.Gravity of accumulated time.
type GravitySystem struct {
	accumulator float64
	locks       int
}

func (s *GravitySystem) Execute(frame *Frame) {
	session := frame.Session
	if session.GameOver() {
		s.accumulator = 0
		return
	}

	s.accumulator += frame.DeltaTime
	if s.accumulator < frame.Gravity.Seconds() {
		return
	}
	s.accumulator = 0

	if session.Step() {
		s.locks++
	}
}

// Locks returns how many shapes gravity has locked into the board.
func (s *GravitySystem) Locks() int {
	return s.locks
}

// Renderer draws one frame of session state.
type Renderer interface {
	Render(view View)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

// RenderSystem hands a View to its Renderer after all other systems have run.
type RenderSystem struct {
	Renderer Renderer
}

func (s *RenderSystem) Execute(frame *Frame) {
	if s.Renderer == nil {
		return
	}
	view := frame.Session.View()
	frame.Commands.Defer(func() {
		s.Renderer.Render(view)
	})
}
