package game

import (
	"context"
	"reflect"
	"time"
)

// System is one stage of the per-tick pipeline.
type System interface {
	Execute(frame *Frame)
}

// maxFrameDelta caps the time a single Run tick reports, so a stalled process
// does not replay a burst of soft-drop repeats when it wakes up.
const maxFrameDelta = 250 * time.Millisecond

// SchedulerStats describes the pipeline since it was created.
type SchedulerStats struct {
	Frames  int64
	Systems []SystemStats
}

// SystemStats provides execution statistics for a single system.
// MinDuration and AvgDuration are zero until the system has run.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stage struct {
	system System
	stats  SystemStats
}

func (st *stage) run(frame *Frame) {
	start := time.Now()
	st.system.Execute(frame)
	d := time.Since(start)

	s := &st.stats
	if s.ExecutionCount == 0 || d < s.MinDuration {
		s.MinDuration = d
	}
	s.MaxDuration = max(s.MaxDuration, d)
	s.ExecutionCount++
	s.LastDuration = d
	s.TotalDuration += d
	s.AvgDuration = s.TotalDuration / time.Duration(s.ExecutionCount)
}

// Scheduler runs one session's tick pipeline. Each tick it samples the input
// source once, works out the gravity interval for the session's level, hands
// both to every system in registration order on a shared Frame, and finally
// flushes the frame's deferred commands.
type Scheduler struct {
	session *Session
	input   InputSource
	gravity time.Duration

	stages []*stage
	frame  Frame
	frames int64
}

// NewScheduler creates a pipeline for session. input may be nil, in which
// case every frame sees no buttons held. gravity is the level-1 interval
// between gravity steps; zero selects DefaultGravityInterval.
func NewScheduler(session *Session, input InputSource, gravity time.Duration) *Scheduler {
	if gravity <= 0 {
		gravity = DefaultGravityInterval
	}
	return &Scheduler{
		session: session,
		input:   input,
		gravity: gravity,
		frame:   Frame{Session: session, Commands: newCommands()},
	}
}

// Register appends a system to the pipeline. Its stats are reported under
// the system's type name.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.stages = append(s.stages, &stage{
		system: system,
		stats:  SystemStats{Name: t.Name()},
	})
}

// Once runs a single tick that advances the game by dt seconds.
func (s *Scheduler) Once(dt float64) {
	s.frames++

	f := &s.frame
	f.Number = s.frames
	f.DeltaTime = dt
	f.Input = Buttons{}
	if s.input != nil {
		f.Input = s.input.Poll()
	}
	f.Gravity = GravityInterval(s.gravity, s.session.Level())

	for _, st := range s.stages {
		st.run(f)
	}
	f.Commands.Flush()
}

// Run ticks every interval until ctx is cancelled. Each tick reports the wall
// time since the previous one, capped at maxFrameDelta.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrameDelta)
			last = now
			s.Once(dt.Seconds())
		}
	}
}

// GetStats returns a copy of the pipeline statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames:  s.frames,
		Systems: make([]SystemStats, len(s.stages)),
	}
	for i, st := range s.stages {
		stats.Systems[i] = st.stats
	}
	return stats
}

// GravityInterval returns the time between gravity steps at level. Every level
// above the first shortens base by a further tenth of the level-1 speed.
func GravityInterval(base time.Duration, level int) time.Duration {
	if level < 1 {
		level = 1
	}
	return time.Duration(float64(base) / (1 + 0.1*float64(level-1)))
}
