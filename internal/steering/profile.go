package steering

// ModeKind discriminates the primary navigation mode.
type ModeKind uint8

const (
	// ModePath follows an externally computed path direction.
	ModePath ModeKind = iota + 1
	// ModePursuit follows or flees a live target by distance band.
	ModePursuit
)

// PrimaryMode describes the dominant navigation signal. It is a closed
// tagged variant: the pursuit fields are meaningful only when Kind is
// ModePursuit.
type PrimaryMode struct {
	Kind         ModeKind
	Target       TargetRef
	FleeRadius   float64
	ThreatRadius float64
}

// PathMode returns a descriptor that follows the path oracle.
func PathMode() PrimaryMode {
	return PrimaryMode{Kind: ModePath}
}

// PursuitMode returns a descriptor that pursues or flees target by
// distance band. Inside fleeRadius the agent retreats; between the radii
// it strafes; beyond threatRadius it closes in.
func PursuitMode(target TargetRef, fleeRadius, threatRadius float64) PrimaryMode {
	if threatRadius < fleeRadius {
		threatRadius = fleeRadius
	}
	return PrimaryMode{
		Kind:         ModePursuit,
		Target:       target,
		FleeRadius:   fleeRadius,
		ThreatRadius: threatRadius,
	}
}

// Profile is the steering state an agent exclusively owns. It is created
// with the agent and destroyed with it.
type Profile struct {
	// Output is the latest blended direction: zero or unit length.
	Output Vec2
	// Mode selects the primary navigation signal.
	Mode PrimaryMode
	// Evasion layers a short-lived dodge onto the primary signal.
	Evasion Evasion
	// Config is the archetype tuning for this agent.
	Config Config

	// LastPrimary and LastEvasion record the most recent pipeline stages
	// for the debug hooks; they never feed back into steering.
	LastPrimary Vec2
	LastEvasion Vec2
}

// NewProfile builds a profile with normalized tuning.
func NewProfile(mode PrimaryMode, cfg Config) *Profile {
	return &Profile{
		Mode:   mode,
		Config: cfg.Normalized(),
	}
}
