package steering

// EntryKind discriminates the threat-memory payload variant.
type EntryKind uint8

const (
	// EntryAreaAvoidance biases movement away from a point or tracked
	// threat while the agent is within the trigger radius.
	EntryAreaAvoidance EntryKind = iota + 1
	// EntryLineAvoidance biases movement perpendicular to a threat's
	// heading, away from its forward axis.
	EntryLineAvoidance
)

// Payload carries the threat data for one memory entry. For area
// entries, Threat takes precedence over Point when it still resolves;
// for line entries Point is the threat origin and Heading its axis.
type Payload struct {
	Threat        TargetRef
	Point         Vec2
	Heading       Vec2
	TriggerRadius float64
	Weight        float64
}

// Entry is one time-bounded threat record. The expiration tick is set
// exactly once at creation; the payload is valid strictly between Add
// and the cleanup pass that removes the entry.
type Entry struct {
	Kind      EntryKind
	ExpiresAt uint64

	slot    int
	payload *Payload
}

// Payload exposes a read-only view of the entry's threat data.
func (e *Entry) Payload() Payload {
	if e == nil || e.payload == nil {
		return Payload{}
	}
	return *e.payload
}

// Active reports whether the entry applies at the given tick.
func (e *Entry) Active(now uint64) bool {
	return e != nil && now < e.ExpiresAt
}

// Store is a per-agent ordered collection of expiring threat entries
// backed by a pooled allocator. Sensors add entries, the blender reads
// them, and the per-tick cleanup pass removes them once expired.
type Store struct {
	entries []Entry
	pool    *Pool
}

// NewStore builds a store over a dedicated payload pool of the given
// size.
func NewStore(poolSize int) *Store {
	return &Store{
		entries: make([]Entry, 0, poolSize),
		pool:    NewPool(poolSize),
	}
}

// Add records a threat observed now that expires after duration ticks.
// It reports whether the payload came from the pool; false means the
// pool was exhausted and a one-off heap allocation was used.
func (s *Store) Add(kind EntryKind, payload Payload, now, duration uint64) bool {
	if s == nil || kind == 0 {
		return true
	}
	slotPayload, idx := s.pool.Acquire()
	*slotPayload = payload
	s.entries = append(s.entries, Entry{
		Kind:      kind,
		ExpiresAt: now + duration,
		slot:      idx,
		payload:   slotPayload,
	})
	return idx >= 0
}

// Cleanup removes every entry expired at now, returning pooled payload
// slots. It scans in reverse index order so removals cannot skip or
// double-process neighbors.
func (s *Store) Cleanup(now uint64) int {
	if s == nil {
		return 0
	}
	removed := 0
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Active(now) {
			continue
		}
		s.pool.Release(s.entries[i].slot)
		s.entries[i].payload = nil
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		removed++
	}
	return removed
}

// ForEachActive yields every non-expired entry in insertion order.
func (s *Store) ForEachActive(now uint64, fn func(*Entry)) {
	if s == nil || fn == nil {
		return
	}
	for i := range s.entries {
		if s.entries[i].Active(now) {
			fn(&s.entries[i])
		}
	}
}

// Len reports how many entries are held, expired or not.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Fallbacks reports how many payloads overflowed the pool.
func (s *Store) Fallbacks() uint64 {
	if s == nil {
		return 0
	}
	return s.pool.Fallbacks()
}

// PoolFree reports how many pooled slots are currently available.
func (s *Store) PoolFree() int {
	if s == nil {
		return 0
	}
	return s.pool.Free()
}
