package steering

// blend combines the weighted primary signal with every active memory
// contribution and normalizes the sum. A zero-magnitude sum yields the
// zero vector rather than a division by zero.
func (e *Engine) blend(a *AgentState, primary Vec2, now uint64) Vec2 {
	cfg := a.Profile.Config
	sum := primary.Scale(cfg.PrimaryWeight)
	a.Memory.ForEachActive(now, func(entry *Entry) {
		sum = sum.Add(e.entryContribution(a, entry, now))
	})
	return sum.Normalized()
}

// entryContribution computes the avoidance vector for one memory entry.
// The switch over the entry kind is exhaustive; unknown kinds contribute
// nothing.
func (e *Engine) entryContribution(a *AgentState, entry *Entry, now uint64) Vec2 {
	payload := entry.Payload()
	cfg := a.Profile.Config
	switch entry.Kind {
	case EntryAreaAvoidance:
		threat := payload.Point
		if payload.Threat != "" {
			if e.targets == nil {
				return Vec2{}
			}
			resolved, ok := e.targets.PositionOf(payload.Threat)
			if !ok {
				// Stale reference: skip this tick, the entry still
				// expires on its own schedule.
				e.countMissing(a, payload.Threat, now)
				return Vec2{}
			}
			threat = resolved
		}
		away := a.Pos.Sub(threat)
		dist := away.Len()
		if dist == 0 {
			e.countDegenerate(a)
			return Vec2{}
		}
		if payload.TriggerRadius <= 0 || dist >= payload.TriggerRadius {
			return Vec2{}
		}
		scale := payload.Weight * geomClamp(payload.TriggerRadius/dist-1, 0, cfg.MaxAvoidGain)
		if e.probes != nil && e.probes.Probe(a.Pos, away, cfg.ProbeDistance) {
			away = away.Rotated(cfg.FleeBias)
		}
		return away.Normalized().Scale(scale)
	case EntryLineAvoidance:
		axis := payload.Heading.Normalized()
		if axis.IsZero() {
			e.countDegenerate(a)
			return Vec2{}
		}
		perp := axis.Perp()
		rel := a.Pos.Sub(payload.Point)
		if rel.Dot(perp) < 0 {
			perp = perp.Scale(-1)
		}
		return perp.Scale(payload.Weight)
	default:
		return Vec2{}
	}
}
