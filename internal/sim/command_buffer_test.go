package sim

import (
	"fmt"
	"testing"

	"hollowvale/server/internal/telemetry"
)

func TestCommandBufferPreservesArrivalOrder(t *testing.T) {
	buffer := NewCommandBuffer(16, 8, nil)
	for seq := uint64(1); seq <= 3; seq++ {
		if reason, ok := buffer.Enqueue(Command{ActorID: "player", Seq: seq}); !ok {
			t.Fatalf("enqueue %d rejected: %s", seq, reason)
		}
	}

	drained := buffer.Drain()
	if len(drained) != 3 {
		t.Fatalf("drained %d commands, want 3", len(drained))
	}
	for i, cmd := range drained {
		if cmd.Seq != uint64(i+1) {
			t.Fatalf("command %d has seq %d", i, cmd.Seq)
		}
	}
	if buffer.Len() != 0 {
		t.Fatalf("buffer not reset after drain: %d pending", buffer.Len())
	}
}

func TestCommandBufferPerActorLimit(t *testing.T) {
	counters := telemetry.NewCounters()
	buffer := NewCommandBuffer(64, 2, counters)

	for i := 0; i < 2; i++ {
		if _, ok := buffer.Enqueue(Command{ActorID: "chatty"}); !ok {
			t.Fatalf("enqueue %d rejected under limit", i)
		}
	}
	reason, ok := buffer.Enqueue(Command{ActorID: "chatty"})
	if ok || reason != CommandRejectQueueLimit {
		t.Fatalf("expected queue_limit reject, got ok=%v reason=%s", ok, reason)
	}
	// Other actors still have budget.
	if _, ok := buffer.Enqueue(Command{ActorID: "quiet"}); !ok {
		t.Fatalf("limit leaked across actors")
	}
	if counters.Value("sim.command_reject_limit") != 1 {
		t.Fatalf("reject counter = %d", counters.Value("sim.command_reject_limit"))
	}

	// Drain resets per-actor budgets.
	buffer.Drain()
	if _, ok := buffer.Enqueue(Command{ActorID: "chatty"}); !ok {
		t.Fatalf("per-actor budget not reset by drain")
	}
}

func TestCommandBufferGlobalCapacity(t *testing.T) {
	counters := telemetry.NewCounters()
	buffer := NewCommandBuffer(4, 8, counters)

	for i := 0; i < 4; i++ {
		actor := fmt.Sprintf("actor-%d", i)
		if _, ok := buffer.Enqueue(Command{ActorID: actor}); !ok {
			t.Fatalf("enqueue %d rejected under capacity", i)
		}
	}
	reason, ok := buffer.Enqueue(Command{ActorID: "late"})
	if ok || reason != CommandRejectQueueFull {
		t.Fatalf("expected queue_full reject, got ok=%v reason=%s", ok, reason)
	}
	if counters.Value("sim.command_reject_full") != 1 {
		t.Fatalf("reject counter = %d", counters.Value("sim.command_reject_full"))
	}
}

func TestCommandBufferRejectsAnonymousCommands(t *testing.T) {
	buffer := NewCommandBuffer(4, 8, nil)
	if _, ok := buffer.Enqueue(Command{}); ok {
		t.Fatalf("command without actor accepted")
	}
}
