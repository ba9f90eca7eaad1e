package steering

import "math"

// Config tunes the steering pipeline for one agent archetype. Values are
// typically resolved from the behavior catalog; zero values fall back to
// the defaults below via Normalized.
type Config struct {
	// PrimaryWeight scales the primary navigation signal before blending.
	PrimaryWeight float64
	// ApproachGain scales the pull toward a pursuit target beyond the
	// threat radius.
	ApproachGain float64
	// FleeBias is the deflection angle, in radians, applied when the
	// direct retreat vector is blocked.
	FleeBias float64
	// MaxFleeGain caps the inverse-distance flee magnitude.
	MaxFleeGain float64
	// MaxAvoidGain caps the inverse-distance area-avoidance magnitude.
	MaxAvoidGain float64
	// ProbeDistance is how far obstacle probes look ahead.
	ProbeDistance float64
	// LinearDuration is the evasion timer, in seconds, for linear dodges.
	LinearDuration float64
	// CircularDuration is the evasion timer, in seconds, for circular
	// strafing inside the threat band.
	CircularDuration float64
	// TangentOffset tilts the circular tangent off the perpendicular, in
	// radians.
	TangentOffset float64
	// RadialCorrection scales the radial term that keeps circular
	// strafing from spiraling in or out.
	RadialCorrection float64
	// RepickDelay is the minimum number of ticks between linear draws
	// after a draw picked no lateral movement.
	RepickDelay uint64
}

// DefaultConfig returns the documented baseline tuning.
func DefaultConfig() Config {
	return Config{
		PrimaryWeight:    1.0,
		ApproachGain:     0.25,
		FleeBias:         35 * math.Pi / 180,
		MaxFleeGain:      3.0,
		MaxAvoidGain:     3.0,
		ProbeDistance:    48.0,
		LinearDuration:   0.6,
		CircularDuration: 1.2,
		TangentOffset:    10 * math.Pi / 180,
		RadialCorrection: 0.35,
		RepickDelay:      8,
	}
}

// Normalized replaces non-positive fields with their defaults.
// TangentOffset and RadialCorrection are the exception: zero is a valid
// tuning for both (a perpendicular tangent, no radial correction), so
// only negative values fall back.
func (c Config) Normalized() Config {
	def := DefaultConfig()
	if c.PrimaryWeight <= 0 {
		c.PrimaryWeight = def.PrimaryWeight
	}
	if c.ApproachGain <= 0 {
		c.ApproachGain = def.ApproachGain
	}
	if c.FleeBias <= 0 {
		c.FleeBias = def.FleeBias
	}
	if c.MaxFleeGain <= 0 {
		c.MaxFleeGain = def.MaxFleeGain
	}
	if c.MaxAvoidGain <= 0 {
		c.MaxAvoidGain = def.MaxAvoidGain
	}
	if c.ProbeDistance <= 0 {
		c.ProbeDistance = def.ProbeDistance
	}
	if c.LinearDuration <= 0 {
		c.LinearDuration = def.LinearDuration
	}
	if c.CircularDuration <= 0 {
		c.CircularDuration = def.CircularDuration
	}
	if c.TangentOffset < 0 {
		c.TangentOffset = def.TangentOffset
	}
	if c.RadialCorrection < 0 {
		c.RadialCorrection = def.RadialCorrection
	}
	if c.RepickDelay == 0 {
		c.RepickDelay = def.RepickDelay
	}
	return c
}
