package world

import (
	"fmt"
	"sort"

	"hollowvale/server/catalog"
	"hollowvale/server/internal/geom"
	"hollowvale/server/internal/sim"
	"hollowvale/server/internal/steering"
	"hollowvale/server/internal/telemetry"
	"hollowvale/server/logging"
)

const (
	// AgentHalf is the half-extent of an agent's collision square.
	AgentHalf = 14.0
	// MoveSpeed is the base movement speed in units per second.
	MoveSpeed = 160.0
)

// Agent is one simulated actor. Bots exclusively own their steering
// profile, memory store, sensor schedule and random stream; controlled
// agents carry only an intent set by their client.
type Agent struct {
	steering.AgentState

	Bot         bool
	Threatening bool
	Speed       float64
	Intent      geom.Vec2
	Archetype   string

	Waypoints     []geom.Vec2
	WaypointIndex int
	ArriveRadius  float64
}

// Hazard is a moving line threat (a projectile or sweep) that hazard
// sensors turn into line-avoidance memory.
type Hazard struct {
	ID      string
	Pos     geom.Vec2
	Heading geom.Vec2
	Speed   float64
}

// Deps carries the world's ambient collaborators.
type Deps struct {
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
}

// World owns every agent and the static geometry, implements the
// steering oracles over them, and advances the whole population one
// deterministic tick at a time.
type World struct {
	cfg       Config
	width     float64
	height    float64
	obstacles []Obstacle
	agents    map[string]*Agent
	hazards   []Hazard
	engine    *steering.Engine
	publisher logging.Publisher
	metrics   telemetry.Metrics
	archs     *catalog.Resolver
	botSerial uint64
}

// NewWorld builds a world from config. The archetype resolver may be
// nil when every bot is spawned with explicit tuning.
func NewWorld(cfg Config, archs *catalog.Resolver, deps Deps) *World {
	cfg = cfg.Normalized()
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	w := &World{
		cfg:       cfg,
		width:     cfg.Width,
		height:    cfg.Height,
		agents:    make(map[string]*Agent),
		publisher: publisher,
		metrics:   metrics,
		archs:     archs,
	}
	if cfg.Obstacles {
		rng := NewDeterministicRNG(cfg.Seed, "obstacles")
		w.obstacles = GenerateObstacles(rng, cfg.ObstaclesCount, cfg.Width, cfg.Height)
	}
	w.engine = steering.NewEngine(steering.Deps{
		Paths:     w,
		Probes:    w,
		Targets:   w,
		Publisher: publisher,
		Metrics:   metrics,
	})
	return w
}

// Config returns the normalized world configuration.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.cfg
}

// Dimensions returns the playable area.
func (w *World) Dimensions() (float64, float64) {
	if w == nil {
		return 0, 0
	}
	return w.width, w.height
}

// Obstacles returns the static blocking geometry.
func (w *World) Obstacles() []Obstacle {
	if w == nil {
		return nil
	}
	return w.obstacles
}

// Engine exposes the steering engine for tests and diagnostics.
func (w *World) Engine() *steering.Engine {
	if w == nil {
		return nil
	}
	return w.engine
}

// SpawnBot creates a bot agent with the named archetype and mode. The
// archetype resolves through the catalog; unknown IDs fall back to
// defaults and are counted.
func (w *World) SpawnBot(id, archetypeID string, pos geom.Vec2, mode steering.PrimaryMode) *Agent {
	if w == nil {
		return nil
	}
	if id == "" {
		w.botSerial++
		id = fmt.Sprintf("bot-%d", w.botSerial)
	}
	arch := catalog.Archetype{}.Normalized()
	if w.archs != nil {
		if resolved, ok := w.archs.Archetype(archetypeID); ok {
			arch = resolved
		} else {
			w.metrics.Add("world.unknown_archetype", 1)
		}
	}
	agent := &Agent{
		AgentState: steering.AgentState{
			ID:      id,
			Pos:     pos,
			Profile: steering.NewProfile(mode, arch.SteeringConfig()),
			Memory:  steering.NewStore(arch.MemoryPoolSize),
			Sensors: steering.NewSchedule(),
			RNG:     steering.NewStream(StreamSeed(w.cfg.Seed, "agent."+id)),
		},
		Bot:       true,
		Speed:     MoveSpeed,
		Archetype: archetypeID,
	}
	attachSensors(w, agent, arch)
	w.agents[id] = agent
	return agent
}

// SpawnControlled creates a human-driven agent. Controlled agents are
// threatening to bots by default.
func (w *World) SpawnControlled(id string, pos geom.Vec2) *Agent {
	if w == nil || id == "" {
		return nil
	}
	agent := &Agent{
		AgentState: steering.AgentState{
			ID:  id,
			Pos: pos,
		},
		Threatening: true,
		Speed:       MoveSpeed,
	}
	w.agents[id] = agent
	return agent
}

// RemoveAgent destroys an agent together with its steering state.
func (w *World) RemoveAgent(id string) {
	if w == nil {
		return
	}
	delete(w.agents, id)
}

// Agent returns the agent with the given id.
func (w *World) Agent(id string) (*Agent, bool) {
	if w == nil {
		return nil, false
	}
	agent, ok := w.agents[id]
	return agent, ok
}

// AgentIDs returns every agent id in sorted order.
func (w *World) AgentIDs() []string {
	if w == nil {
		return nil
	}
	ids := make([]string, 0, len(w.agents))
	for id := range w.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddHazard registers a moving line threat.
func (w *World) AddHazard(hazard Hazard) {
	if w == nil || hazard.ID == "" {
		return
	}
	w.hazards = append(w.hazards, hazard)
}

// Hazards returns the live hazards.
func (w *World) Hazards() []Hazard {
	if w == nil {
		return nil
	}
	return w.hazards
}

// PositionOf implements steering.TargetProvider over live agents.
func (w *World) PositionOf(ref steering.TargetRef) (geom.Vec2, bool) {
	if w == nil {
		return geom.Vec2{}, false
	}
	agent, ok := w.agents[string(ref)]
	if !ok {
		return geom.Vec2{}, false
	}
	return agent.Pos, true
}

// Probe implements steering.ObstacleOracle: it reports whether any
// obstacle blocks the segment, inflated by the agent half-extent.
func (w *World) Probe(origin, dir geom.Vec2, maxDist float64) bool {
	if w == nil {
		return false
	}
	for _, obs := range w.obstacles {
		if segmentHitsRect(origin, dir, maxDist, obs, AgentHalf) {
			return true
		}
	}
	return false
}

// Step advances the world one tick: commands set controlled intents,
// every bot steers against tick-start state, then movement and hazards
// apply. Bot outputs cannot observe each other's same-tick movement, so
// processing order never changes the result.
func (w *World) Step(tick uint64, dt float64, commands []sim.Command) {
	if w == nil {
		return
	}
	for _, cmd := range commands {
		w.applyCommand(cmd)
	}

	ids := w.AgentIDs()
	directions := make([]geom.Vec2, len(ids))
	for i, id := range ids {
		agent := w.agents[id]
		if agent.Bot {
			directions[i] = w.engine.Step(&agent.AgentState, tick, dt)
			continue
		}
		directions[i] = agent.Intent.Normalized()
	}
	for i, id := range ids {
		w.moveAgent(w.agents[id], directions[i], dt)
	}
	w.advanceHazards(dt)
}

func (w *World) applyCommand(cmd sim.Command) {
	agent, ok := w.agents[cmd.ActorID]
	if !ok || agent.Bot {
		return
	}
	agent.Intent = geom.Vec2{X: cmd.DX, Y: cmd.DY}
}

func (w *World) advanceHazards(dt float64) {
	kept := w.hazards[:0]
	for _, hazard := range w.hazards {
		hazard.Pos = hazard.Pos.Add(hazard.Heading.Normalized().Scale(hazard.Speed * dt))
		if hazard.Pos.X < -obstacleSpawnMargin || hazard.Pos.X > w.width+obstacleSpawnMargin ||
			hazard.Pos.Y < -obstacleSpawnMargin || hazard.Pos.Y > w.height+obstacleSpawnMargin {
			continue
		}
		kept = append(kept, hazard)
	}
	w.hazards = kept
}

// DebugSnapshots captures the steering debug view of every bot, in
// sorted agent order.
func (w *World) DebugSnapshots(tick uint64) []steering.DebugSnapshot {
	if w == nil {
		return nil
	}
	snaps := make([]steering.DebugSnapshot, 0, len(w.agents))
	for _, id := range w.AgentIDs() {
		agent := w.agents[id]
		if !agent.Bot {
			continue
		}
		snaps = append(snaps, steering.Snapshot(&agent.AgentState, tick))
	}
	return snaps
}
