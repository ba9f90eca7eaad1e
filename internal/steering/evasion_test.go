package steering

import (
	"math"
	"testing"
)

type probeFunc func(origin, dir Vec2, maxDist float64) bool

func (f probeFunc) Probe(origin, dir Vec2, maxDist float64) bool {
	return f(origin, dir, maxDist)
}

var probeBlocked = probeFunc(func(Vec2, Vec2, float64) bool { return true })
var probeClear = probeFunc(func(Vec2, Vec2, float64) bool { return false })

func TestLinearEvasionVectorStableWhileActive(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewStream(7)

	var ev Evasion
	started := false
	tick := uint64(0)
	// A "none" draw defers the state; keep ticking until a side starts.
	for !started && tick < 100 {
		started = ev.ActivateLinear(Vec2{}, Vec2{X: 1}, probeClear, rng, cfg, tick)
		tick++
	}
	if !started {
		t.Fatalf("linear dodge never started")
	}
	chosen := ev.Vector
	if chosen.IsZero() {
		t.Fatalf("active dodge has zero vector")
	}

	dt := cfg.LinearDuration / 6
	for ev.Active() {
		got := ev.Contribution(Vec2{X: 1}, cfg)
		if got != chosen {
			t.Fatalf("dodge vector drifted mid-activation: got %+v want %+v", got, chosen)
		}
		// Re-activation attempts while active must be rejected.
		if ev.ActivateLinear(Vec2{}, Vec2{X: 1}, probeClear, rng, cfg, tick) {
			t.Fatalf("dodge re-activated before timer expired")
		}
		ev.Advance(dt)
		tick++
	}
	if got := ev.Contribution(Vec2{X: 1}, cfg); !got.IsZero() {
		t.Fatalf("expired dodge still contributes %+v", got)
	}
}

func TestLinearEvasionInvertsBlockedPick(t *testing.T) {
	cfg := DefaultConfig()
	heading := Vec2{X: 1}

	for seed := uint64(1); seed <= 32; seed++ {
		clearSide := sideOfFirstLinearPick(seed, heading, cfg)
		if clearSide == 0 {
			continue
		}

		rng := NewStream(seed)
		var ev Evasion
		started := false
		for tick := uint64(0); !started && tick < 100; tick++ {
			started = ev.ActivateLinear(Vec2{}, heading, probeBlocked, rng, cfg, tick)
		}
		if !started {
			t.Fatalf("seed %d: dodge never started", seed)
		}
		if ev.Sign != -clearSide {
			t.Fatalf("seed %d: blocked probe kept sign %d, want inverted %d", seed, ev.Sign, -clearSide)
		}
		want := heading.Perp().Scale(float64(-clearSide))
		if ev.Vector != want {
			t.Fatalf("seed %d: blocked dodge vector %+v, want %+v", seed, ev.Vector, want)
		}
		return
	}
	t.Fatalf("no seed produced a sided first pick")
}

// sideOfFirstLinearPick replays the draw sequence with a clear probe and
// returns the sign of the first dodge that starts.
func sideOfFirstLinearPick(seed uint64, heading Vec2, cfg Config) int8 {
	rng := NewStream(seed)
	var ev Evasion
	for tick := uint64(0); tick < 100; tick++ {
		if ev.ActivateLinear(Vec2{}, heading, probeClear, rng, cfg, tick) {
			return ev.Sign
		}
	}
	return 0
}

func TestLinearNonePickDefersNextDraw(t *testing.T) {
	cfg := DefaultConfig()
	heading := Vec2{X: 1}

	for seed := uint64(1); seed <= 64; seed++ {
		rng := NewStream(seed)
		replica := NewStream(seed)
		if pickLateral(replica, 0) != 0 {
			continue
		}
		var ev Evasion
		if ev.ActivateLinear(Vec2{}, heading, probeClear, rng, cfg, 0) {
			t.Fatalf("seed %d: none draw started a dodge", seed)
		}
		if ev.NextPickAt != cfg.RepickDelay {
			t.Fatalf("seed %d: next pick at %d, want %d", seed, ev.NextPickAt, cfg.RepickDelay)
		}
		// Attempts before the delay elapses are rejected without
		// consuming a draw.
		before := *rng
		if ev.ActivateLinear(Vec2{}, heading, probeClear, rng, cfg, cfg.RepickDelay-1) {
			t.Fatalf("seed %d: dodge started during repick delay", seed)
		}
		if *rng != before {
			t.Fatalf("seed %d: deferred attempt consumed a draw", seed)
		}
		return
	}
	t.Fatalf("no seed produced a none first pick")
}

func TestCircularEvasionFlipsBlockedTangent(t *testing.T) {
	cfg := DefaultConfig()
	toTarget := Vec2{X: 0, Y: 1}

	rng := NewStream(3)
	coin := NewStream(3)
	drawn := coin.Sign()

	var ev Evasion
	blockDrawnTangent := probeFunc(func(_, dir Vec2, _ float64) bool {
		drawnTangent := toTarget.Normalized().Perp().Scale(float64(drawn))
		return dir.Dot(drawnTangent) > 0
	})
	if !ev.ActivateCircular(Vec2{}, toTarget, blockDrawnTangent, rng, cfg) {
		t.Fatalf("circular dodge did not start")
	}
	if ev.Sign != -drawn {
		t.Fatalf("blocked tangent kept sign %d, want %d", ev.Sign, -drawn)
	}
}

// Each activation flips its own drawn rotation when that tangent is
// blocked, including activations after an earlier strafe has expired.
func TestCircularEvasionFlipsBlockedTangentEachActivation(t *testing.T) {
	cfg := DefaultConfig()
	toTarget := Vec2{X: 0, Y: 1}

	rng := NewStream(9)
	coin := NewStream(9)

	var ev Evasion
	for activation := 0; activation < 2; activation++ {
		drawn := coin.Sign()
		blockDrawnTangent := probeFunc(func(_, dir Vec2, _ float64) bool {
			drawnTangent := toTarget.Normalized().Perp().Scale(float64(drawn))
			return dir.Dot(drawnTangent) > 0
		})
		if !ev.ActivateCircular(Vec2{}, toTarget, blockDrawnTangent, rng, cfg) {
			t.Fatalf("activation %d did not start", activation)
		}
		if ev.Sign != -drawn {
			t.Fatalf("activation %d kept sign %d, want %d", activation, ev.Sign, -drawn)
		}
		for ev.Active() {
			ev.Advance(cfg.CircularDuration / 4)
		}
	}
}

func TestCircularContributionOrbitGeometry(t *testing.T) {
	cfg := DefaultConfig()
	toTarget := Vec2{X: 0, Y: 1}

	ev := Evasion{
		Mode:  EvasionCircular,
		Sign:  1,
		Timer: 1,
	}
	got := ev.Contribution(toTarget, cfg)
	want := toTarget.Rotated(math.Pi/2 + cfg.TangentOffset).Add(toTarget.Scale(cfg.RadialCorrection))
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Fatalf("circular contribution %+v, want %+v", got, want)
	}

	ev.Sign = -1
	mirrored := ev.Contribution(toTarget, cfg)
	// Opposite rotation mirrors the tangent across the target axis.
	if math.Abs(mirrored.Dot(toTarget.Perp())+got.Dot(toTarget.Perp())) > 1e-12 {
		t.Fatalf("mirrored tangent components do not cancel: %+v vs %+v", mirrored, got)
	}
}

func TestPickLateralAvoidsRepeats(t *testing.T) {
	rng := NewStream(11)
	const draws = 3000
	repeats := 0
	previous := int8(0)
	for i := 0; i < draws; i++ {
		pick := pickLateral(rng, previous)
		if pick < -1 || pick > 1 {
			t.Fatalf("draw %d out of range: %d", i, pick)
		}
		if pick == previous {
			repeats++
		}
		previous = pick
	}
	// Uniform draws repeat one third of the time; the biased draw
	// should land well under a quarter.
	if ratio := float64(repeats) / draws; ratio > 0.25 {
		t.Fatalf("repeat ratio %.3f exceeds biased bound", ratio)
	}
}
