package game

import "time"

// Frame is shared by every system during one scheduler tick. The scheduler
// reuses it between ticks, so systems must not keep it.
type Frame struct {
	Number    int64 // ticks since the scheduler was created, from 1
	DeltaTime float64
	Input     Buttons
	Gravity   time.Duration // interval between gravity steps at the current level
	Session   *Session
	Commands  *Commands
}

// Commands buffers work that must run after every system has executed.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs queued functions in order and resets the buffer.
func (c *Commands) Flush() {
	for i, fn := range c.defers {
		fn()
		c.defers[i] = nil
	}
	c.defers = c.defers[:0]
}
