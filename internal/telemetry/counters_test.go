package telemetry

import (
	"sync"
	"testing"
)

func TestCountersAddAndStore(t *testing.T) {
	counters := NewCounters()
	counters.Add("steering.pool_fallback", 2)
	counters.Add("steering.pool_fallback", 3)
	counters.Store("sim.tick", 17)

	if got := counters.Value("steering.pool_fallback"); got != 5 {
		t.Fatalf("accumulated value = %d, want 5", got)
	}
	if got := counters.Value("sim.tick"); got != 17 {
		t.Fatalf("stored value = %d, want 17", got)
	}
	if got := counters.Value("missing"); got != 0 {
		t.Fatalf("absent key = %d, want 0", got)
	}
}

func TestCountersSnapshotIsCopy(t *testing.T) {
	counters := NewCounters()
	counters.Add("a", 1)

	snap := counters.Snapshot()
	snap["a"] = 99
	if counters.Value("a") != 1 {
		t.Fatalf("snapshot mutation reached live counters")
	}
}

func TestCountersIgnoreEmptyKeysAndNil(t *testing.T) {
	counters := NewCounters()
	counters.Add("", 1)
	if len(counters.Snapshot()) != 0 {
		t.Fatalf("empty key recorded")
	}

	var nilCounters *Counters
	nilCounters.Add("a", 1)
	nilCounters.Store("a", 1)
	if nilCounters.Value("a") != 0 || nilCounters.Snapshot() != nil {
		t.Fatalf("nil counters not inert")
	}
}

func TestCountersConcurrentAdds(t *testing.T) {
	counters := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				counters.Add("races", 1)
			}
		}()
	}
	wg.Wait()
	if got := counters.Value("races"); got != 800 {
		t.Fatalf("concurrent total = %d, want 800", got)
	}
}
