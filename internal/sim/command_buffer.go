package sim

import (
	"sync"

	"hollowvale/server/internal/telemetry"
)

// CommandBuffer collects commands between ticks behind a global
// capacity and a per-actor limit, so one chatty client cannot starve
// the rest of a tick's budget.
type CommandBuffer struct {
	mu            sync.Mutex
	pending       []Command
	capacity      int
	perActorLimit int
	perActorCount map[string]int
	metrics       telemetry.Metrics
}

// NewCommandBuffer builds a buffer with the given global capacity and
// per-actor limit. Non-positive values fall back to defaults.
func NewCommandBuffer(capacity, perActorLimit int, metrics telemetry.Metrics) *CommandBuffer {
	if capacity <= 0 {
		capacity = 512
	}
	if perActorLimit <= 0 {
		perActorLimit = 8
	}
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &CommandBuffer{
		pending:       make([]Command, 0, capacity),
		capacity:      capacity,
		perActorLimit: perActorLimit,
		perActorCount: make(map[string]int),
		metrics:       metrics,
	}
}

// Enqueue appends a command for the next tick. The returned reason is
// empty on success or one of the CommandReject constants.
func (b *CommandBuffer) Enqueue(cmd Command) (string, bool) {
	if b == nil || cmd.ActorID == "" {
		return CommandRejectQueueFull, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) >= b.capacity {
		b.metrics.Add("sim.command_reject_full", 1)
		return CommandRejectQueueFull, false
	}
	if b.perActorCount[cmd.ActorID] >= b.perActorLimit {
		b.metrics.Add("sim.command_reject_limit", 1)
		return CommandRejectQueueLimit, false
	}
	b.pending = append(b.pending, cmd)
	b.perActorCount[cmd.ActorID]++
	return "", true
}

// Drain returns every pending command in arrival order and resets the
// buffer for the next tick.
func (b *CommandBuffer) Drain() []Command {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return nil
	}
	drained := make([]Command, len(b.pending))
	copy(drained, b.pending)
	b.pending = b.pending[:0]
	for id := range b.perActorCount {
		delete(b.perActorCount, id)
	}
	return drained
}

// Len reports how many commands await the next tick.
func (b *CommandBuffer) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
