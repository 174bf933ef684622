package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
)

// simulated frame length, independent of wall time so runs are reproducible.
const frameDelta = time.Second / 60

type options struct {
	Duration time.Duration
	Games    int
	Seed     uint64
	Rows     int
	Cols     int
}

func main() {
	var opts options
	flag.DurationVar(&opts.Duration, "duration", 10*time.Second, "The total duration the soak should run for.")
	flag.IntVar(&opts.Games, "games", 0, "Stop after this many finished games (0 means no limit).")
	flag.Uint64Var(&opts.Seed, "seed", 1, "Seed for shapes and input.")
	flag.IntVar(&opts.Rows, "rows", 20, "Board rows.")
	flag.IntVar(&opts.Cols, "cols", 10, "Board columns.")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), opts.Duration)
	defer cancel()

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("Soak failed.", "error", err)
		os.Exit(1)
	}
}

// randomInput holds each button with a fixed probability per frame.
// Restart is never pressed; finished games are restarted by the tracker.
type randomInput struct {
	rng *rand.Rand
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, ^seed))
}

func (r *randomInput) Poll() game.Buttons {
	var buttons game.Buttons
	for i := range game.NumButtons {
		if game.Button(i) == game.Restart {
			continue
		}
		buttons[i] = r.rng.IntN(4) == 0
	}
	return buttons
}

// gameTracker restarts finished games and keeps totals across them.
type gameTracker struct {
	games     int
	pieces    int
	lines     int
	bestScore int
}

func (g *gameTracker) Execute(frame *game.Frame) {
	s := frame.Session
	if !s.GameOver() {
		return
	}
	g.games++
	g.pieces += s.Pieces()
	g.lines += s.Lines()
	g.bestScore = max(g.bestScore, s.Score())
	frame.Commands.Defer(s.Restart)
}

func run(ctx context.Context, opts options, out io.Writer, logger *slog.Logger) error {
	session, err := game.NewSession(opts.Rows, opts.Cols, tetris.NewSeededFactory(opts.Seed), logger)
	if err != nil {
		return err
	}

	tracker := &gameTracker{}
	gravity := &game.GravitySystem{}
	scheduler := game.NewScheduler(session, &randomInput{rng: newRNG(opts.Seed)}, 4*frameDelta)
	scheduler.Register(&game.InputSystem{})
	scheduler.Register(gravity)
	scheduler.Register(tracker)

	report := &Report{
		Duration: opts.Duration,
		Seed:     opts.Seed,
		Rows:     opts.Rows,
		Cols:     opts.Cols,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("Running soak.", "duration", opts.Duration, "games", opts.Games, "seed", opts.Seed)
	startTime := time.Now()

Loop:
	for opts.Games == 0 || tracker.games < opts.Games {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(frameDelta.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Games = tracker.games
	report.Pieces = tracker.pieces + session.Pieces()
	report.Lines = tracker.lines + session.Lines()
	report.BestScore = max(tracker.bestScore, session.Score())
	report.GravityLocks = gravity.Locks()
	report.Systems = scheduler.GetStats().Systems

	logger.Info("Soak finished.", "games", report.Games, "updates", report.TotalUpdates)

	fmt.Fprintln(out, "--- Soak Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}
