package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/parameter"
)

// Command mutates the simulation on the loop goroutine
type Command func(*Simulation)

// FrameFunc observes the simulation after a tick, read-only
type FrameFunc func(*Simulation)

// Loop drives a Simulation at a fixed tick rate
// It is the single writer: other goroutines reach the simulation only through Post,
// and commands run at tick boundaries before the next step
type Loop struct {
	sim      *Simulation
	interval time.Duration
	clock    Clock
	logger   zerolog.Logger

	inbox   chan Command
	frames  []FrameFunc
	dropped atomic.Uint64
	running atomic.Bool
}

// NewLoop creates a loop stepping sim tickRate times per second (TickRate when ≤ 0)
func NewLoop(sim *Simulation, tickRate int, logger zerolog.Logger) *Loop {
	if tickRate <= 0 {
		tickRate = parameter.TickRate
	}
	return &Loop{
		sim:      sim,
		interval: time.Second / time.Duration(tickRate),
		clock:    sim.clock,
		logger:   logger.With().Str("component", "loop").Logger(),
		inbox:    make(chan Command, parameter.CommandQueueSize),
	}
}

// OnFrame registers fn to run after every tick, must be called before Run
func (l *Loop) OnFrame(fn FrameFunc) {
	l.frames = append(l.frames, fn)
}

// Post queues cmd for the next tick boundary without blocking
// Returns false and drops cmd when the inbox is full
func (l *Loop) Post(cmd Command) bool {
	select {
	case l.inbox <- cmd:
		return true
	default:
		if n := l.dropped.Add(1); n&(n-1) == 0 {
			l.logger.Warn().Uint64("dropped", n).Msg("command inbox full")
		}
		return false
	}
}

// Dropped returns the number of commands rejected by a full inbox
func (l *Loop) Dropped() uint64 { return l.dropped.Load() }

// Interval returns the tick period
func (l *Loop) Interval() time.Duration { return l.interval }

// Running reports whether Run is active
func (l *Loop) Running() bool { return l.running.Load() }

// Step drains pending commands, advances the simulation by dt and runs frame hooks
// Run calls it once per tick; hosts without a real-time clock may call it directly
func (l *Loop) Step(dt time.Duration) {
	l.drain()
	l.sim.Tick(dt)
	for _, fn := range l.frames {
		fn(l.sim)
	}
}

func (l *Loop) drain() {
	for {
		select {
		case cmd := <-l.inbox:
			cmd(l.sim)
		default:
			return
		}
	}
}

// Run ticks until ctx is cancelled, then returns at the next boundary
// In-flight state is discarded, queued commands are not drained
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.clock.Now()
	l.logger.Debug().Dur("interval", l.interval).Msg("loop started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug().Uint64("ticks", l.sim.Ticks()).Msg("loop stopped")
			return nil
		case <-ticker.C:
			now := l.clock.Now()
			dt := now.Sub(last)
			last = now
			l.Step(dt)
		}
	}
}
