package sim

import (
	"context"
	"sync/atomic"
	"time"

	"hollowvale/server/internal/telemetry"
)

// LoopConfig tunes the command buffer and tick cadence.
type LoopConfig struct {
	TickRate        int
	CatchupMaxTicks int
	CommandCapacity int
	PerActorLimit   int
}

// Normalized applies the documented defaults.
func (cfg LoopConfig) Normalized() LoopConfig {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 15
	}
	if cfg.CatchupMaxTicks <= 0 {
		cfg.CatchupMaxTicks = 4
	}
	if cfg.CommandCapacity <= 0 {
		cfg.CommandCapacity = 512
	}
	if cfg.PerActorLimit <= 0 {
		cfg.PerActorLimit = 8
	}
	return cfg
}

// LoopHooks observe the loop without participating in simulation state.
type LoopHooks struct {
	// AfterTick runs after a tick completes, before the next begins.
	AfterTick func(tick uint64, dt float64)
}

// Loop drives a Stepper at a fixed timestep. Each tick drains the
// command buffer and completes fully before the next tick begins; when
// the loop falls behind it catches up a bounded number of ticks rather
// than spiraling.
type Loop struct {
	stepper Stepper
	buffer  *CommandBuffer
	hooks   LoopHooks
	config  LoopConfig
	logger  telemetry.Logger
	metrics telemetry.Metrics

	tick atomic.Uint64
}

// NewLoop wraps a stepper with a command queue and fixed-tick runner.
func NewLoop(stepper Stepper, cfg LoopConfig, hooks LoopHooks, logger telemetry.Logger, metrics telemetry.Metrics) *Loop {
	if stepper == nil {
		return nil
	}
	cfg = cfg.Normalized()
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &Loop{
		stepper: stepper,
		buffer:  NewCommandBuffer(cfg.CommandCapacity, cfg.PerActorLimit, metrics),
		hooks:   hooks,
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Enqueue queues a command for the next tick.
func (l *Loop) Enqueue(cmd Command) (string, bool) {
	if l == nil {
		return CommandRejectQueueFull, false
	}
	return l.buffer.Enqueue(cmd)
}

// Tick reports the last completed tick. Safe to call from session
// goroutines while the loop runs.
func (l *Loop) Tick() uint64 {
	if l == nil {
		return 0
	}
	return l.tick.Load()
}

// Dt returns the fixed per-tick delta in seconds.
func (l *Loop) Dt() float64 {
	if l == nil {
		return 0
	}
	return 1.0 / float64(l.config.TickRate)
}

// Advance runs exactly one tick. Tests and the runner share this path.
func (l *Loop) Advance() {
	if l == nil {
		return
	}
	tick := l.tick.Add(1)
	dt := l.Dt()
	start := time.Now()
	l.stepper.Step(tick, dt, l.buffer.Drain())
	l.metrics.Store("sim.tick_duration_micros", uint64(time.Since(start).Microseconds()))
	l.metrics.Store("sim.tick", tick)
	if l.hooks.AfterTick != nil {
		l.hooks.AfterTick(tick, dt)
	}
}

// Run drives the loop until the context is canceled.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil {
		return nil
	}
	interval := time.Second / time.Duration(l.config.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pending := 0
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			pending += int(elapsed / interval)
			if pending < 1 {
				pending = 1
			}
			if pending > l.config.CatchupMaxTicks {
				if l.logger != nil {
					l.logger.Printf("tick loop behind, dropping %d ticks", pending-l.config.CatchupMaxTicks)
				}
				l.metrics.Add("sim.ticks_dropped", uint64(pending-l.config.CatchupMaxTicks))
				pending = l.config.CatchupMaxTicks
			}
			for ; pending > 0; pending-- {
				l.Advance()
			}
		}
	}
}
