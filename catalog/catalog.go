// Package catalog loads designer-authored steering archetypes: named
// tuning bundles (radii, evasion durations, sensor cadences, memory
// pool sizes) resolved once at world construction.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"hollowvale/server/internal/steering"
)

// Archetype is a single steering tuning bundle as it appears on disk.
// The struct is exported so tooling (the schema generator) can reflect
// over the configuration contract shared with designers.
type Archetype struct {
	ID                string  `json:"id" jsonschema:"title=Archetype ID,description=Designer-facing identifier assigned to spawned agents.,pattern=^[a-z0-9-]+$,minLength=1,required"`
	PrimaryWeight     float64 `json:"primaryWeight,omitempty" jsonschema:"title=Primary Weight,description=Scale applied to the primary navigation signal before blending.,minimum=0"`
	ApproachGain      float64 `json:"approachGain,omitempty" jsonschema:"title=Approach Gain,description=Pull toward a pursuit target beyond the threat radius.,minimum=0"`
	FleeRadius        float64 `json:"fleeRadius,omitempty" jsonschema:"title=Flee Radius,description=Distance under which the agent retreats from its target.,minimum=0"`
	ThreatRadius      float64 `json:"threatRadius,omitempty" jsonschema:"title=Threat Radius,description=Outer edge of the strafing band around the target.,minimum=0"`
	FleeBiasDegrees   float64 `json:"fleeBiasDegrees,omitempty" jsonschema:"title=Flee Bias,description=Deflection angle in degrees when direct retreat is blocked.,minimum=0,maximum=90"`
	LinearDuration    float64 `json:"linearDurationSeconds,omitempty" jsonschema:"title=Linear Dodge Duration,description=Seconds a linear dodge holds its vector.,minimum=0"`
	CircularDuration  float64 `json:"circularDurationSeconds,omitempty" jsonschema:"title=Circular Dodge Duration,description=Seconds a circular strafe holds its rotation.,minimum=0"`
	// TangentOffsetDeg and RadialCorrection are pointers so an author
	// can pin either to zero; absent fields fall back to the engine
	// defaults.
	TangentOffsetDeg *float64 `json:"tangentOffsetDegrees,omitempty" jsonschema:"title=Tangent Offset,description=Degrees the strafing tangent tilts off the perpendicular. Omit for the default tilt; an explicit 0 keeps the tangent exactly perpendicular.,minimum=0,maximum=45"`
	RadialCorrection *float64 `json:"radialCorrection,omitempty" jsonschema:"title=Radial Correction,description=Radial term keeping circular strafing from spiraling. Omit for the default correction; an explicit 0 disables it.,minimum=0,maximum=1"`
	RepickDelayTicks  uint64  `json:"repickDelayTicks,omitempty" jsonschema:"title=Repick Delay,description=Minimum ticks between linear dodge draws after a none pick.,minimum=0"`
	MemoryPoolSize    int     `json:"memoryPoolSize,omitempty" jsonschema:"title=Memory Pool Size,description=Preallocated threat-memory payload slots per agent.,minimum=1"`
	ThreatScanTicks   uint32  `json:"threatScanTicks,omitempty" jsonschema:"title=Threat Scan Cadence,description=Ticks between proximity threat scans.,minimum=1"`
	HazardScanTicks   uint32  `json:"hazardScanTicks,omitempty" jsonschema:"title=Hazard Scan Cadence,description=Ticks between hazard line scans.,minimum=1"`
	ThreatScanRadius  float64 `json:"threatScanRadius,omitempty" jsonschema:"title=Threat Scan Radius,description=Distance within which proximity threats are remembered.,minimum=0"`
	ThreatMemoryTicks uint64  `json:"threatMemoryTicks,omitempty" jsonschema:"title=Threat Memory Duration,description=Ticks a remembered threat keeps influencing movement.,minimum=1"`
	AvoidWeight       float64 `json:"avoidWeight,omitempty" jsonschema:"title=Avoidance Weight,description=Weight of area-avoidance memory contributions.,minimum=0"`
	HazardWeight      float64 `json:"hazardWeight,omitempty" jsonschema:"title=Hazard Weight,description=Weight of line-avoidance memory contributions.,minimum=0"`
}

// Document is the on-disk catalog file shape.
type Document struct {
	Archetypes []Archetype `json:"archetypes" jsonschema:"title=Archetypes,description=Every steering archetype available to the spawner.,required"`
}

// Defaults used when an archetype omits sensor or memory fields.
const (
	DefaultMemoryPoolSize    = 8
	DefaultThreatScanTicks   = 5
	DefaultHazardScanTicks   = 3
	DefaultThreatScanRadius  = 180.0
	DefaultThreatMemoryTicks = 45
	DefaultAvoidWeight       = 1.0
	DefaultHazardWeight      = 0.8
)

// Normalized fills zero-valued tuning with the documented defaults.
func (a Archetype) Normalized() Archetype {
	if a.MemoryPoolSize <= 0 {
		a.MemoryPoolSize = DefaultMemoryPoolSize
	}
	if a.ThreatScanTicks == 0 {
		a.ThreatScanTicks = DefaultThreatScanTicks
	}
	if a.HazardScanTicks == 0 {
		a.HazardScanTicks = DefaultHazardScanTicks
	}
	if a.ThreatScanRadius <= 0 {
		a.ThreatScanRadius = DefaultThreatScanRadius
	}
	if a.ThreatMemoryTicks == 0 {
		a.ThreatMemoryTicks = DefaultThreatMemoryTicks
	}
	if a.AvoidWeight <= 0 {
		a.AvoidWeight = DefaultAvoidWeight
	}
	if a.HazardWeight <= 0 {
		a.HazardWeight = DefaultHazardWeight
	}
	return a
}

// SteeringConfig maps the archetype onto engine tuning. Zero fields
// fall through to the engine defaults via Normalized; the orbit fields
// use a negative sentinel when absent so an authored zero survives.
func (a Archetype) SteeringConfig() steering.Config {
	cfg := steering.Config{
		PrimaryWeight:    a.PrimaryWeight,
		ApproachGain:     a.ApproachGain,
		FleeBias:         a.FleeBiasDegrees * math.Pi / 180,
		LinearDuration:   a.LinearDuration,
		CircularDuration: a.CircularDuration,
		TangentOffset:    -1,
		RadialCorrection: -1,
		RepickDelay:      a.RepickDelayTicks,
	}
	if a.TangentOffsetDeg != nil {
		cfg.TangentOffset = *a.TangentOffsetDeg * math.Pi / 180
	}
	if a.RadialCorrection != nil {
		cfg.RadialCorrection = *a.RadialCorrection
	}
	return cfg.Normalized()
}

type source interface {
	Load() ([]byte, error)
	Path() string
}

type fileSource struct {
	path string
}

func (f fileSource) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f fileSource) Path() string {
	return f.path
}

// MemorySource feeds the resolver from bytes; tests use it in place of
// files.
type MemorySource struct {
	Name string
	Data []byte
}

func (m MemorySource) Load() ([]byte, error) {
	return m.Data, nil
}

func (m MemorySource) Path() string {
	return m.Name
}

// Resolver merges one or more catalog sources into a stable lookup
// table. Later sources override earlier ones to support local overlays.
type Resolver struct {
	mu      sync.RWMutex
	sources []source
	entries map[string]Archetype
}

// Load constructs a resolver from catalog file paths.
func Load(paths ...string) (*Resolver, error) {
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		sources = append(sources, fileSource{path: trimmed})
	}
	return NewResolver(sources...)
}

// NewResolver constructs a resolver from arbitrary sources.
func NewResolver(sources ...source) (*Resolver, error) {
	r := &Resolver{
		sources: append([]source(nil), sources...),
		entries: make(map[string]Archetype),
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewResolverFromSources is the exported seam for MemorySource callers.
func NewResolverFromSources(sources ...MemorySource) (*Resolver, error) {
	wrapped := make([]source, 0, len(sources))
	for _, s := range sources {
		wrapped = append(wrapped, s)
	}
	return NewResolver(wrapped...)
}

// Reload re-parses all catalog sources.
func (r *Resolver) Reload() error {
	if r == nil {
		return nil
	}
	merged := make(map[string]Archetype)
	for _, src := range r.sources {
		data, err := src.Load()
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", src.Path(), err)
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("catalog: parse %s: %w", src.Path(), err)
		}
		for _, arch := range doc.Archetypes {
			if err := validate(arch); err != nil {
				return fmt.Errorf("catalog: %s: %w", src.Path(), err)
			}
			merged[arch.ID] = arch.Normalized()
		}
	}
	r.mu.Lock()
	r.entries = merged
	r.mu.Unlock()
	return nil
}

func validate(a Archetype) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("archetype missing id")
	}
	if a.ThreatRadius > 0 && a.FleeRadius > a.ThreatRadius {
		return fmt.Errorf("archetype %s: fleeRadius %.1f exceeds threatRadius %.1f", a.ID, a.FleeRadius, a.ThreatRadius)
	}
	return nil
}

// Archetype returns the resolved archetype for id.
func (r *Resolver) Archetype(id string) (Archetype, bool) {
	if r == nil {
		return Archetype{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	arch, ok := r.entries[id]
	return arch, ok
}

// IDs lists known archetypes in sorted order for deterministic
// iteration.
func (r *Resolver) IDs() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
