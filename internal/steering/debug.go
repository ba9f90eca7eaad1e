package steering

// DebugEntry mirrors one active memory entry for debug consumers.
type DebugEntry struct {
	Kind      string  `json:"kind"`
	ExpiresAt uint64  `json:"expiresAt"`
	Point     Vec2    `json:"point"`
	Threat    string  `json:"threat,omitempty"`
	Weight    float64 `json:"weight"`
}

// DebugSnapshot captures the last pipeline stages for one agent. It is
// emitted to observers only and never feeds back into steering.
type DebugSnapshot struct {
	AgentID string       `json:"agentId"`
	Tick    uint64       `json:"tick"`
	Pos     Vec2         `json:"pos"`
	Primary Vec2         `json:"primary"`
	Evasion Vec2         `json:"evasion"`
	Output  Vec2         `json:"output"`
	Entries []DebugEntry `json:"entries,omitempty"`
}

func kindName(kind EntryKind) string {
	switch kind {
	case EntryAreaAvoidance:
		return "area"
	case EntryLineAvoidance:
		return "line"
	default:
		return "unknown"
	}
}

// Snapshot builds the debug view of an agent after its step.
func Snapshot(a *AgentState, tick uint64) DebugSnapshot {
	if a == nil || a.Profile == nil {
		return DebugSnapshot{Tick: tick}
	}
	snap := DebugSnapshot{
		AgentID: a.ID,
		Tick:    tick,
		Pos:     a.Pos,
		Primary: a.Profile.LastPrimary,
		Evasion: a.Profile.LastEvasion,
		Output:  a.Profile.Output,
	}
	a.Memory.ForEachActive(tick, func(entry *Entry) {
		payload := entry.Payload()
		snap.Entries = append(snap.Entries, DebugEntry{
			Kind:      kindName(entry.Kind),
			ExpiresAt: entry.ExpiresAt,
			Point:     payload.Point,
			Threat:    string(payload.Threat),
			Weight:    payload.Weight,
		})
	})
	return snap
}
