package world

import "hollowvale/server/internal/geom"

// DefaultArriveRadius is the waypoint arrival fallback.
const DefaultArriveRadius = 12.0

// PathDirection implements steering.PathOracle: agents with waypoints
// follow them in a loop, advancing when inside the arrive radius. The
// direction is the precomputed navigation signal the engine consumes
// unchanged.
func (w *World) PathDirection(agentID string) (geom.Vec2, bool) {
	if w == nil {
		return geom.Vec2{}, false
	}
	agent, ok := w.agents[agentID]
	if !ok || len(agent.Waypoints) == 0 {
		return geom.Vec2{}, false
	}

	radius := agent.ArriveRadius
	if radius <= 0 {
		radius = DefaultArriveRadius
	}
	if agent.WaypointIndex < 0 || agent.WaypointIndex >= len(agent.Waypoints) {
		agent.WaypointIndex = 0
	}

	// Advance past any waypoints already reached; bounded by the loop
	// length so a degenerate all-reached list cannot spin.
	for i := 0; i < len(agent.Waypoints); i++ {
		waypoint := agent.Waypoints[agent.WaypointIndex]
		if geom.Dist(agent.Pos, waypoint) > radius {
			break
		}
		agent.WaypointIndex = (agent.WaypointIndex + 1) % len(agent.Waypoints)
	}

	waypoint := agent.Waypoints[agent.WaypointIndex]
	dir := waypoint.Sub(agent.Pos).Normalized()
	if dir.IsZero() {
		return geom.Vec2{}, false
	}
	return dir, true
}
