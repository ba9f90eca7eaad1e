// Package steering produces per-tick desired-movement directions for
// simulation agents. It blends a primary navigation signal with
// time-bounded avoidance influences remembered from perceived threats,
// and is deterministic: the same world seed and inputs yield the same
// directions on every machine.
package steering

import "hollowvale/server/internal/geom"

// Vec2 aliases the shared vector type for steering bookkeeping.
type Vec2 = geom.Vec2

// TargetRef identifies an entity owned elsewhere in the simulation.
// References may go stale; consumers resolve them through a
// TargetProvider every tick and soft-skip on failure.
type TargetRef string

// PathOracle supplies the precomputed navigation direction for agents in
// path mode. The second return is false when no path is available.
type PathOracle interface {
	PathDirection(agentID string) (Vec2, bool)
}

// ObstacleOracle answers segment probes against blocking geometry.
// Probe reports whether anything blocks the segment from origin along
// dir (which need not be unit length) within maxDist.
type ObstacleOracle interface {
	Probe(origin, dir Vec2, maxDist float64) bool
}

// TargetProvider resolves target references to world positions. The
// second return is false when the reference no longer exists.
type TargetProvider interface {
	PositionOf(ref TargetRef) (Vec2, bool)
}

// AgentState is the per-agent view the engine steers. Each agent
// exclusively owns its profile, memory store, sensor schedule and
// random stream; nothing here is shared across agents.
type AgentState struct {
	ID      string
	Pos     Vec2
	Profile *Profile
	Memory  *Store
	Sensors *Schedule
	RNG     *Stream
}
