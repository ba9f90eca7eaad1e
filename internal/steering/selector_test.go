package steering

import (
	"math"
	"testing"

	"hollowvale/server/internal/telemetry"
)

type stubTargets map[TargetRef]Vec2

func (s stubTargets) PositionOf(ref TargetRef) (Vec2, bool) {
	pos, ok := s[ref]
	return pos, ok
}

type stubPaths map[string]Vec2

func (s stubPaths) PathDirection(agentID string) (Vec2, bool) {
	dir, ok := s[agentID]
	return dir, ok
}

func newTestAgent(id string, pos Vec2, mode PrimaryMode) *AgentState {
	return &AgentState{
		ID:      id,
		Pos:     pos,
		Profile: NewProfile(mode, DefaultConfig()),
		Memory:  NewStore(8),
		Sensors: NewSchedule(),
		RNG:     NewStream(42),
	}
}

func assertUnit(t *testing.T, v Vec2) {
	t.Helper()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Fatalf("expected unit vector, got %+v (len %v)", v, v.Len())
	}
}

func assertHeading(t *testing.T, got, want Vec2, tol float64) {
	t.Helper()
	assertUnit(t, got)
	if got.Dot(want.Normalized()) < math.Cos(tol) {
		t.Fatalf("heading %+v deviates from %+v beyond %v rad", got, want, tol)
	}
}

func TestPathModeFollowsOracle(t *testing.T) {
	agent := newTestAgent("walker", Vec2{X: 10, Y: 10}, PathMode())
	engine := NewEngine(Deps{Paths: stubPaths{"walker": {X: 0.6, Y: 0.8}}})

	out := engine.DesiredDirection(agent, 1, 1.0/15)
	assertHeading(t, out, Vec2{X: 0.6, Y: 0.8}, 1e-9)
}

func TestPathModeWithoutPathIsIdle(t *testing.T) {
	agent := newTestAgent("walker", Vec2{}, PathMode())
	engine := NewEngine(Deps{Paths: stubPaths{}})

	if out := engine.DesiredDirection(agent, 1, 1.0/15); !out.IsZero() {
		t.Fatalf("expected idle agent, got %+v", out)
	}
}

func TestPursuitApproachesBeyondThreatRadius(t *testing.T) {
	agent := newTestAgent("stalker", Vec2{}, PursuitMode("prey", 90, 220))
	engine := NewEngine(Deps{Targets: stubTargets{"prey": {X: 300, Y: 0}}})

	out := engine.DesiredDirection(agent, 1, 1.0/15)
	assertHeading(t, out, Vec2{X: 1}, 1e-9)
}

func TestFleeAntiparallelWhenClear(t *testing.T) {
	agent := newTestAgent("stalker", Vec2{}, PursuitMode("prey", 90, 220))
	engine := NewEngine(Deps{
		Targets: stubTargets{"prey": {X: 0, Y: 60}},
		Probes:  probeClear,
	})

	out := engine.DesiredDirection(agent, 1, 1.0/15)
	assertHeading(t, out, Vec2{Y: -1}, 1e-9)
}

func TestFleeDeflectedByBiasWhenBlocked(t *testing.T) {
	agent := newTestAgent("stalker", Vec2{}, PursuitMode("prey", 90, 220))
	engine := NewEngine(Deps{
		Targets: stubTargets{"prey": {X: 0, Y: 60}},
		Probes:  probeBlocked,
	})

	out := engine.DesiredDirection(agent, 1, 1.0/15)
	assertUnit(t, out)
	bias := agent.Profile.Config.FleeBias
	angle := math.Acos(geomClamp(out.Dot(Vec2{Y: -1}), -1, 1))
	if math.Abs(angle-bias) > 1e-9 {
		t.Fatalf("blocked retreat deflected by %v rad, want %v", angle, bias)
	}
}

func TestThreatBandDelegatesToCircularEvasion(t *testing.T) {
	agent := newTestAgent("stalker", Vec2{}, PursuitMode("prey", 90, 220))
	engine := NewEngine(Deps{Targets: stubTargets{"prey": {X: 150, Y: 0}}})

	out := engine.DesiredDirection(agent, 1, 1.0/15)
	if !agent.Profile.Evasion.Active() {
		t.Fatalf("threat band did not activate circular evasion")
	}
	if agent.Profile.Evasion.Mode != EvasionCircular {
		t.Fatalf("evasion mode %d, want circular", agent.Profile.Evasion.Mode)
	}
	if !agent.Profile.LastPrimary.IsZero() {
		t.Fatalf("threat band produced independent primary %+v", agent.Profile.LastPrimary)
	}
	assertUnit(t, out)
}

func TestMissingTargetYieldsIdleAndCounts(t *testing.T) {
	counters := telemetry.NewCounters()
	agent := newTestAgent("stalker", Vec2{}, PursuitMode("ghost", 90, 220))
	engine := NewEngine(Deps{Targets: stubTargets{}, Metrics: counters})

	if out := engine.DesiredDirection(agent, 1, 1.0/15); !out.IsZero() {
		t.Fatalf("missing target still produced direction %+v", out)
	}
	if got := counters.Value(MetricMissingTarget); got != 1 {
		t.Fatalf("missing-target counter = %d, want 1", got)
	}
}

func TestDegenerateOverlapEscapesWithoutNaN(t *testing.T) {
	counters := telemetry.NewCounters()
	agent := newTestAgent("stalker", Vec2{X: 5, Y: 5}, PursuitMode("prey", 90, 220))
	engine := NewEngine(Deps{
		Targets: stubTargets{"prey": {X: 5, Y: 5}},
		Metrics: counters,
	})

	out := engine.DesiredDirection(agent, 1, 1.0/15)
	if math.IsNaN(out.X) || math.IsNaN(out.Y) {
		t.Fatalf("degenerate overlap produced NaN: %+v", out)
	}
	assertUnit(t, out)
	if got := counters.Value(MetricDegenerate); got != 1 {
		t.Fatalf("degenerate counter = %d, want 1", got)
	}
}
