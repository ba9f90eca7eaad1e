package steering

import "math"

// EvasionMode selects how an active dodge contributes to steering.
type EvasionMode uint8

const (
	// EvasionLinear holds a fixed lateral vector for the timer duration.
	EvasionLinear EvasionMode = iota + 1
	// EvasionCircular strafes around the pursuit target inside the
	// threat band.
	EvasionCircular
)

// Evasion is the dodge state layered onto the primary signal. It is
// Idle when Timer is zero and Active while the timer runs; the chosen
// vector or rotation sign is stable for the whole activation and
// re-drawn only after the timer reaches zero.
type Evasion struct {
	Timer       float64
	MaxDuration float64
	Mode        EvasionMode
	Vector      Vec2
	Sign        int8
	LastPick    int8
	NextPickAt  uint64
}

// Active reports whether a dodge is currently running.
func (e *Evasion) Active() bool {
	return e != nil && e.Timer > 0
}

// Advance decrements the timer by the tick delta, clamping at zero.
func (e *Evasion) Advance(dt float64) {
	if e == nil || e.Timer <= 0 {
		return
	}
	e.Timer -= dt
	if e.Timer < 0 {
		e.Timer = 0
	}
}

// pickLateral draws among left (-1), right (+1) and none (0), weighted
// against repeating the previous pick.
func pickLateral(rng *Stream, previous int8) int8 {
	const repeatWeight = 0.25
	weights := [3]float64{1, 1, 1} // index 0: left, 1: none, 2: right
	weights[previous+1] = repeatWeight
	total := weights[0] + weights[1] + weights[2]
	draw := rng.Float64() * total
	for i, w := range weights {
		if draw < w {
			return int8(i - 1)
		}
		draw -= w
	}
	return 0
}

// ActivateLinear starts a linear dodge lateral to heading: a biased
// draw picks a side, the chosen direction is probed, and a blocked
// probe inverts the pick. A "none" draw leaves the state idle and
// defers the next draw by the repick delay. Reports whether a dodge
// started.
func (e *Evasion) ActivateLinear(origin, heading Vec2, probe ObstacleOracle, rng *Stream, cfg Config, tick uint64) bool {
	if e == nil || rng == nil || e.Active() || tick < e.NextPickAt {
		return false
	}
	unit := heading.Normalized()
	if unit.IsZero() {
		return false
	}
	pick := pickLateral(rng, e.LastPick)
	e.LastPick = pick
	if pick == 0 {
		e.NextPickAt = tick + cfg.RepickDelay
		return false
	}
	lateral := unit.Perp().Scale(float64(pick))
	if probe != nil && probe.Probe(origin, lateral, cfg.ProbeDistance) {
		pick = -pick
		lateral = lateral.Scale(-1)
		e.LastPick = pick
	}
	e.Mode = EvasionLinear
	e.Vector = lateral
	e.Sign = pick
	e.Timer = cfg.LinearDuration
	e.MaxDuration = cfg.LinearDuration
	return true
}

// ActivateCircular starts a circular strafe around the target: a coin
// flip picks the rotation, the resulting tangent is probed, and a
// blocked probe flips the rotation. Circular mode never picks "none";
// an agent in the threat band keeps moving laterally. Reports whether
// a dodge started.
func (e *Evasion) ActivateCircular(origin, toTarget Vec2, probe ObstacleOracle, rng *Stream, cfg Config) bool {
	if e == nil || rng == nil || e.Active() {
		return false
	}
	unit := toTarget.Normalized()
	if unit.IsZero() {
		return false
	}
	sign := rng.Sign()
	tangent := unit.Perp().Scale(float64(sign))
	if probe != nil && probe.Probe(origin, tangent, cfg.ProbeDistance) {
		sign = -sign
		tangent = tangent.Scale(-1)
	}
	e.Mode = EvasionCircular
	e.Sign = sign
	e.Vector = tangent
	e.Timer = cfg.CircularDuration
	e.MaxDuration = cfg.CircularDuration
	return true
}

// Contribution returns the dodge vector for this tick. Linear mode
// replays the fixed chosen vector; circular mode recomputes a tangent
// at a fixed angular offset from the target direction plus a radial
// correction keyed to the rotation sign, so the strafe orbit neither
// spirals in nor drifts out.
func (e *Evasion) Contribution(toTarget Vec2, cfg Config) Vec2 {
	if !e.Active() {
		return Vec2{}
	}
	switch e.Mode {
	case EvasionLinear:
		return e.Vector
	case EvasionCircular:
		unit := toTarget.Normalized()
		if unit.IsZero() {
			return Vec2{}
		}
		s := float64(e.Sign)
		tangent := unit.Rotated(s * (math.Pi/2 + cfg.TangentOffset))
		radial := unit.Scale(cfg.RadialCorrection * s)
		return tangent.Add(radial)
	default:
		return Vec2{}
	}
}
