// Package gui runs the game in an ebiten window with a Dear ImGui debug overlay.
package gui

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/game"
)

const (
	cellSize = 30
	offsetX  = 40
	offsetY  = 40
	panelW   = 200
)

// Game implements ebiten.Game around a session scheduler.
type Game struct {
	session   *game.Session
	scheduler *game.Scheduler
	backend   *ebitenbackend.EbitenBackend
	gravity   *game.GravitySystem
	debug     *DebugSystem
	logger    *slog.Logger

	view game.View
}

// New builds the scheduler pipeline for session. backend may be nil to run
// without the debug overlay.
func New(session *game.Session, gravity time.Duration, backend *ebitenbackend.EbitenBackend, logger *slog.Logger) *Game {
	g := &Game{
		session: session,
		backend: backend,
		gravity: &game.GravitySystem{},
		logger:  logger,
	}

	g.scheduler = game.NewScheduler(session, g, gravity)
	g.scheduler.Register(&game.InputSystem{})
	g.scheduler.Register(g.gravity)
	if backend != nil {
		g.debug = &DebugSystem{Scheduler: g.scheduler, Gravity: g.gravity, History: newFrameHistory(120)}
		g.scheduler.Register(g.debug)
	}
	g.scheduler.Register(&game.RenderSystem{Renderer: game.RenderFunc(func(v game.View) {
		g.view = v
	})})

	g.view = session.View()
	return g
}

// Poll samples the keyboard. Keys are ignored while ImGui has keyboard focus.
func (g *Game) Poll() game.Buttons {
	var buttons game.Buttons
	if g.debug != nil && g.debug.WantCaptureKeyboard {
		return buttons
	}
	for key, button := range keyButtons {
		if ebiten.IsKeyPressed(key) {
			buttons[button] = true
		}
	}
	return buttons
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.debug != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.Visible = !g.debug.Visible
	}

	if g.backend != nil {
		g.backend.BeginFrame()
	}
	g.scheduler.Once(1.0 / float64(ebiten.TPS()))
	if g.backend != nil {
		g.backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	drawView(screen, g.view)

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// WindowSize returns the window size needed for a rows×cols board.
func WindowSize(rows, cols int) (int, int) {
	return offsetX*2 + cols*cellSize + panelW, offsetY*2 + rows*cellSize
}

// Run opens the window and blocks until it is closed.
func Run(session *game.Session, gravity time.Duration, logger *slog.Logger) error {
	width, height := WindowSize(session.Board().Rows(), session.Board().Cols())

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("blockfall", width, height)
	imgui.CurrentIO().SetIniFilename("")

	g := New(session, gravity, backend, logger)

	logger.Info("GUI frontend started.", "width", width, "height", height)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	logger.Info("GUI frontend stopped.", "score", session.Score(), "lines", session.Lines())
	return err
}
