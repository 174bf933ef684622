package game

import "fmt"

// Button is one logical control consumed by the game loop.
type Button uint8

const (
	MoveLeft Button = iota
	MoveRight
	SoftDrop
	Rotate
	RotateBack
	HardDrop
	Restart

	NumButtons = int(Restart) + 1
)

var buttonNames = [...]string{
	MoveLeft:   "MoveLeft",
	MoveRight:  "MoveRight",
	SoftDrop:   "SoftDrop",
	Rotate:     "Rotate",
	RotateBack: "RotateBack",
	HardDrop:   "HardDrop",
	Restart:    "Restart",
}

func (b Button) String() string {
	if int(b) >= NumButtons {
		return fmt.Sprintf("Button(%d)", uint8(b))
	}
	return buttonNames[b]
}

// Buttons is a point-in-time sample of which buttons are held.
type Buttons [NumButtons]bool

// Press returns a copy of bs with the given buttons held.
func (bs Buttons) Press(buttons ...Button) Buttons {
	for _, b := range buttons {
		bs[b] = true
	}
	return bs
}

// Pressed reports whether b is held in this sample.
func (bs Buttons) Pressed(b Button) bool {
	return bs[b]
}

// InputSource supplies one Buttons sample per tick. Poll must not block.
type InputSource interface {
	Poll() Buttons
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Buttons

func (f InputFunc) Poll() Buttons { return f() }

// edge fires once per press: a held button does not fire again until it has
// been released.
type edge struct {
	wasDown bool
}

func (e *edge) fire(down bool) bool {
	fired := down && !e.wasDown
	e.wasDown = down
	return fired
}
