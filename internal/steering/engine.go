package steering

import (
	"context"
	"math"

	"hollowvale/server/internal/geom"
	"hollowvale/server/internal/telemetry"
	"hollowvale/server/logging"
)

// Metric keys bumped by the engine. They are diagnostics only and never
// affect steering output.
const (
	MetricPoolFallback  = "steering.pool_fallback"
	MetricMissingTarget = "steering.missing_target"
	MetricDegenerate    = "steering.degenerate_input"
)

const (
	// EventPoolExhausted is published when a memory store overflows its
	// payload pool and falls back to a heap allocation.
	EventPoolExhausted logging.EventType = "steering.pool_exhausted"
	// EventMissingTarget is published when a referenced target or threat
	// no longer resolves and is skipped for the tick.
	EventMissingTarget logging.EventType = "steering.missing_target"
)

// Deps carries the collaborators the engine consumes. Oracles may be
// nil in tests; every nil is treated as "no answer" rather than a fault.
type Deps struct {
	Paths     PathOracle
	Probes    ObstacleOracle
	Targets   TargetProvider
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
}

// Engine runs the per-agent steering pipeline: sensors populate threat
// memory, the selector produces the primary direction, evasion layers a
// dodge on top, and the blender folds in memory-derived avoidance. The
// engine itself holds no per-agent state, so agents can be stepped in
// any order or in parallel.
type Engine struct {
	paths     PathOracle
	probes    ObstacleOracle
	targets   TargetProvider
	publisher logging.Publisher
	metrics   telemetry.Metrics
}

// NewEngine wires an engine from its dependencies.
func NewEngine(deps Deps) *Engine {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &Engine{
		paths:     deps.Paths,
		probes:    deps.Probes,
		targets:   deps.Targets,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Step runs one full tick for an agent: sensor pass, memory cleanup,
// then DesiredDirection. dt is the fixed per-tick delta in seconds.
func (e *Engine) Step(a *AgentState, tick uint64, dt float64) Vec2 {
	if e == nil || a == nil || a.Profile == nil {
		return Vec2{}
	}
	fallbacksBefore := a.Memory.Fallbacks()
	a.Sensors.Tick(a, tick)
	if delta := a.Memory.Fallbacks() - fallbacksBefore; delta > 0 {
		e.countPoolFallback(a, tick, delta)
	}
	a.Memory.Cleanup(tick)
	return e.DesiredDirection(a, tick, dt)
}

// DesiredDirection produces the agent's movement direction for this
// tick: always the zero vector or a unit vector. It consumes only
// tick-start state and the agent's own stream, so results are
// order-independent across agents.
func (e *Engine) DesiredDirection(a *AgentState, tick uint64, dt float64) Vec2 {
	if e == nil || a == nil || a.Profile == nil {
		return Vec2{}
	}
	prof := a.Profile

	primary := e.computePrimary(a, tick)
	evasion := e.evasionContribution(a)
	prof.Evasion.Advance(dt)

	prof.LastPrimary = primary
	prof.LastEvasion = evasion

	out := e.blend(a, primary.Add(evasion), tick)
	prof.Output = out
	return out
}

// TriggerLinearEvasion starts a linear dodge lateral to heading, used
// by sensors when a threat is perceived outside the threat band.
// Reports whether a dodge started.
func (e *Engine) TriggerLinearEvasion(a *AgentState, heading Vec2, tick uint64) bool {
	if e == nil || a == nil || a.Profile == nil {
		return false
	}
	prof := a.Profile
	return prof.Evasion.ActivateLinear(a.Pos, heading, e.probes, a.RNG, prof.Config, tick)
}

// evasionContribution resolves the active dodge vector, recomputing the
// circular tangent against the live target direction.
func (e *Engine) evasionContribution(a *AgentState) Vec2 {
	prof := a.Profile
	if !prof.Evasion.Active() {
		return Vec2{}
	}
	toTarget := Vec2{}
	if prof.Mode.Kind == ModePursuit && e.targets != nil {
		if pos, ok := e.targets.PositionOf(prof.Mode.Target); ok {
			toTarget = pos.Sub(a.Pos)
		}
	}
	return prof.Evasion.Contribution(toTarget, prof.Config)
}

func (e *Engine) countPoolFallback(a *AgentState, tick uint64, delta uint64) {
	e.metrics.Add(MetricPoolFallback, delta)
	e.publisher.Publish(context.Background(), logging.Event{
		Type:     EventPoolExhausted,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: a.ID, Kind: logging.EntityKindAgent},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySteering,
		Payload:  map[string]any{"fallbacks": a.Memory.Fallbacks()},
	})
}

func (e *Engine) countMissing(a *AgentState, ref TargetRef, tick uint64) {
	e.metrics.Add(MetricMissingTarget, 1)
	e.publisher.Publish(context.Background(), logging.Event{
		Type:     EventMissingTarget,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: a.ID, Kind: logging.EntityKindAgent},
		Severity: logging.SeverityDebug,
		Category: logging.CategorySteering,
		Payload:  map[string]any{"target": string(ref)},
	})
}

func (e *Engine) countDegenerate(a *AgentState) {
	e.metrics.Add(MetricDegenerate, 1)
}

// geomClamp narrows the shared clamp helper for local use.
func geomClamp(value, min, max float64) float64 {
	return geom.Clamp(value, min, max)
}

// randomUnit draws a unit vector from the agent stream.
func randomUnit(rng *Stream) Vec2 {
	if rng == nil {
		return Vec2{}
	}
	angle := rng.Float64() * 2 * math.Pi
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}
