package gui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// frameHistory is a fixed ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(size int) *frameHistory {
	return &frameHistory{samples: make([]float32, size)}
}

func (h *frameHistory) add(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// average over the samples recorded so far.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// DebugSystem tracks ImGui input capture and, when visible, draws a window
// with frame timing, session counters and per-system scheduler stats.
type DebugSystem struct {
	Scheduler *game.Scheduler
	Gravity   *game.GravitySystem
	History   *frameHistory
	Visible   bool

	WantCaptureKeyboard bool
}

func (d *DebugSystem) Execute(frame *game.Frame) {
	d.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	d.History.add(float32(frame.DeltaTime * 1000))

	if !d.Visible {
		return
	}
	session, interval := frame.Session, frame.Gravity
	frame.Commands.Defer(func() {
		d.render(session, interval)
	})
}

func (d *DebugSystem) render(session *game.Session, interval time.Duration) {
	if !imgui.BeginV("Debug", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := d.History.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &d.History.samples[0], int32(len(d.History.samples)))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Score: %d", session.Score()))
	imgui.Text(fmt.Sprintf("Lines: %d  Level: %d", session.Lines(), session.Level()))
	imgui.Text(fmt.Sprintf("Pieces: %d  Gravity locks: %d", session.Pieces(), d.Gravity.Locks()))
	imgui.Text(fmt.Sprintf("Gravity interval: %s", interval))
	if active := session.Active(); active != nil {
		anchor := session.Anchor()
		imgui.Text(fmt.Sprintf("Active: %s %d° at (%d, %d)", active.Kind(), active.Orientation().Degrees(), anchor.Row, anchor.Col))
	}

	if imgui.TreeNodeStr("Systems") {
		stats := d.Scheduler.GetStats()
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
