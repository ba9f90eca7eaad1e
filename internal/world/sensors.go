package world

import (
	"hollowvale/server/catalog"
	"hollowvale/server/internal/geom"
	"hollowvale/server/internal/steering"
)

// attachSensors wires the perception routines for a bot. Each sensor
// runs on its own cadence from the archetype, decoupling perception
// cost from the movement tick rate.
func attachSensors(w *World, agent *Agent, arch catalog.Archetype) {
	agent.Sensors.Attach(steering.SensorFunc{
		SensorName: "threat-scan",
		Fn:         w.threatScan(arch),
	}, arch.ThreatScanTicks)
	agent.Sensors.Attach(steering.SensorFunc{
		SensorName: "hazard-scan",
		Fn:         w.hazardScan(arch),
	}, arch.HazardScanTicks)
}

// threatScan remembers threatening agents inside the scan radius as
// area-avoidance entries and jinks laterally when a threat appears
// outside the strafing band.
func (w *World) threatScan(arch catalog.Archetype) func(a *steering.AgentState, tick uint64) {
	return func(a *steering.AgentState, tick uint64) {
		if w == nil || a == nil {
			return
		}
		radiusSq := arch.ThreatScanRadius * arch.ThreatScanRadius
		for _, id := range w.AgentIDs() {
			other := w.agents[id]
			if other.ID == a.ID || !other.Threatening {
				continue
			}
			offset := a.Pos.Sub(other.Pos)
			distSq := offset.Dot(offset)
			if distSq > radiusSq {
				continue
			}
			ref := steering.TargetRef(other.ID)
			if hasThreat(a.Memory, tick, ref) {
				continue
			}
			a.Memory.Add(steering.EntryAreaAvoidance, steering.Payload{
				Threat:        ref,
				Point:         other.Pos,
				TriggerRadius: arch.ThreatScanRadius,
				Weight:        arch.AvoidWeight,
			}, tick, arch.ThreatMemoryTicks)
			if jinkAllowed(a, other.Pos) {
				w.engine.TriggerLinearEvasion(a, offset, tick)
			}
		}
	}
}

// hazardScan remembers nearby moving line threats as line-avoidance
// entries keyed by hazard id.
func (w *World) hazardScan(arch catalog.Archetype) func(a *steering.AgentState, tick uint64) {
	return func(a *steering.AgentState, tick uint64) {
		if w == nil || a == nil {
			return
		}
		radiusSq := arch.ThreatScanRadius * arch.ThreatScanRadius
		for _, hazard := range w.hazards {
			offset := a.Pos.Sub(hazard.Pos)
			if offset.Dot(offset) > radiusSq {
				continue
			}
			ref := steering.TargetRef(hazard.ID)
			if hasThreat(a.Memory, tick, ref) {
				continue
			}
			a.Memory.Add(steering.EntryLineAvoidance, steering.Payload{
				Threat:  ref,
				Point:   hazard.Pos,
				Heading: hazard.Heading,
				Weight:  arch.HazardWeight,
			}, tick, arch.ThreatMemoryTicks)
		}
	}
}

// hasThreat reports whether an active entry already references ref,
// keeping scan cadences from flooding the pool with duplicates.
func hasThreat(store *steering.Store, now uint64, ref steering.TargetRef) bool {
	found := false
	store.ForEachActive(now, func(entry *steering.Entry) {
		if entry.Payload().Threat == ref {
			found = true
		}
	})
	return found
}

// jinkAllowed reports whether a newly perceived threat may start a
// linear dodge. For pursuit agents the threat radius bounds the dodge:
// inside the flee radius the retreat vector stays exact, and inside
// the strafing band circular evasion owns lateral movement. Other
// modes always dodge.
func jinkAllowed(a *steering.AgentState, pos geom.Vec2) bool {
	if a == nil || a.Profile == nil || a.Profile.Mode.Kind != steering.ModePursuit {
		return true
	}
	return geom.Dist(a.Pos, pos) > a.Profile.Mode.ThreatRadius
}
