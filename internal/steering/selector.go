package steering

// computePrimary produces the dominant navigation signal for one agent.
// Path mode passes the oracle direction through unchanged. Pursuit mode
// bands by distance to the target: inside the flee radius the agent
// retreats with inverse-distance urgency, inside the threat band lateral
// motion is delegated entirely to circular evasion, and beyond the
// threat radius a small pull closes toward the target.
func (e *Engine) computePrimary(a *AgentState, tick uint64) Vec2 {
	prof := a.Profile
	cfg := prof.Config
	switch prof.Mode.Kind {
	case ModePath:
		if e.paths == nil {
			return Vec2{}
		}
		dir, ok := e.paths.PathDirection(a.ID)
		if !ok {
			return Vec2{}
		}
		return dir
	case ModePursuit:
		target, ok := e.resolveTarget(prof.Mode.Target, a, tick)
		if !ok {
			return Vec2{}
		}
		toTarget := target.Sub(a.Pos)
		dist := toTarget.Len()
		switch {
		case dist <= prof.Mode.FleeRadius:
			return e.fleeDirection(a, target, dist)
		case dist <= prof.Mode.ThreatRadius:
			// Threat band: circular evasion supplies all lateral
			// movement, no independent primary contribution.
			prof.Evasion.ActivateCircular(a.Pos, toTarget, e.probes, a.RNG, cfg)
			return Vec2{}
		default:
			return toTarget.Normalized().Scale(cfg.ApproachGain)
		}
	default:
		return Vec2{}
	}
}

// fleeDirection points from the target to the agent, scaled up as the
// distance shrinks. When the retreat line is blocked the vector is
// deflected onto a tangent by the configured bias angle.
func (e *Engine) fleeDirection(a *AgentState, target Vec2, dist float64) Vec2 {
	cfg := a.Profile.Config
	away := a.Pos.Sub(target)
	if dist == 0 || away.IsZero() {
		// Degenerate overlap: pick a stable escape heading from the
		// agent's own stream rather than emitting NaN.
		e.countDegenerate(a)
		away = randomUnit(a.RNG)
		if away.IsZero() {
			return Vec2{}
		}
		dist = a.Profile.Mode.FleeRadius
	}
	scale := 1.0
	if dist > 0 {
		scale = geomClamp(a.Profile.Mode.FleeRadius/dist, 1, cfg.MaxFleeGain)
	}
	if e.probes != nil && e.probes.Probe(a.Pos, away, cfg.ProbeDistance) {
		away = away.Rotated(cfg.FleeBias)
	}
	return away.Normalized().Scale(scale)
}

// resolveTarget maps a target reference to a position, counting and
// soft-skipping references that no longer exist.
func (e *Engine) resolveTarget(ref TargetRef, a *AgentState, tick uint64) (Vec2, bool) {
	if ref == "" || e.targets == nil {
		return Vec2{}, false
	}
	pos, ok := e.targets.PositionOf(ref)
	if !ok {
		e.countMissing(a, ref, tick)
		return Vec2{}, false
	}
	return pos, true
}
