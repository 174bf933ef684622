// Package console runs the game in a terminal using termbox-go.
package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/plus3/blockfall/game"
)

// eventSource is the blocking half of the terminal. Interrupt wakes a pending
// PollEvent with an EventInterrupt and blocks until it is delivered.
type eventSource interface {
	PollEvent() termbox.Event
	Interrupt()
}

type termboxEvents struct{}

func (termboxEvents) PollEvent() termbox.Event { return termbox.PollEvent() }
func (termboxEvents) Interrupt()               { termbox.Interrupt() }

// Console is both the input source and the renderer for a terminal session.
// Key events are read on a background goroutine and drained on the loop
// goroutine by Poll, so the session is only touched from one goroutine.
type Console struct {
	screen screen
	source eventSource
	events chan termbox.Event
	logger *slog.Logger

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{} // closed when pollEvents returns
}

func newConsole(scr screen, source eventSource, logger *slog.Logger) *Console {
	return &Console{
		screen: scr,
		source: source,
		events: make(chan termbox.Event, 64),
		logger: logger,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Poll drains the key events received since the previous call. Every key
// seen counts as held for this tick; termbox reports no key releases.
func (c *Console) Poll() game.Buttons {
	var buttons game.Buttons
	for {
		select {
		case ev := <-c.events:
			if isQuit(ev) {
				c.requestQuit()
				continue
			}
			if b, ok := buttonFor(ev); ok {
				buttons[b] = true
			}
		default:
			return buttons
		}
	}
}

func (c *Console) requestQuit() {
	c.quitOnce.Do(func() { close(c.quit) })
}

// Render draws one frame.
func (c *Console) Render(v game.View) {
	draw(c.screen, v)
	if err := c.screen.Flush(); err != nil {
		c.logger.Warn("Failed to flush terminal.", "error", err)
	}
}

func (c *Console) pollEvents() {
	defer close(c.done)
	for {
		ev := c.source.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			c.logger.Error("Terminal input failed.", "error", ev.Err)
			c.requestQuit()
			return
		case termbox.EventKey:
			select {
			case c.events <- ev:
			default:
				// The loop is behind; dropping a key is better than blocking input.
			}
		}
	}
}

// stopPolling ends pollEvents and waits for it. Interrupt blocks forever once
// the poller is gone, so it is only sent while the poller is still running.
func (c *Console) stopPolling() {
	select {
	case <-c.done:
		return
	default:
	}
	go c.source.Interrupt()
	<-c.done
}

// Run takes over the terminal and plays session until ctx is cancelled or the
// player quits.
func Run(ctx context.Context, session *game.Session, gravity, tick time.Duration, logger *slog.Logger) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	c := newConsole(termboxScreen{}, termboxEvents{}, logger)
	go c.pollEvents()
	defer c.stopPolling()

	scheduler := game.NewScheduler(session, c, gravity)
	scheduler.Register(&game.InputSystem{})
	scheduler.Register(&game.GravitySystem{})
	scheduler.Register(&game.RenderSystem{Renderer: c})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("Console frontend started.", "rows", session.Board().Rows(), "cols", session.Board().Cols())
	scheduler.Run(ctx, tick)
	logger.Info("Console frontend stopped.", "score", session.Score(), "lines", session.Lines())
	return nil
}
