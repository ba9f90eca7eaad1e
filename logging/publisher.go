package logging

import (
	"context"
	"time"
)

// EventType names a structured simulation event, e.g. "steering.pool_exhausted".
type EventType string

// Severity orders events from diagnostic chatter to faults.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// EntityKind tags the originator of an event.
type EntityKind string

const (
	EntityKindUnknown EntityKind = "unknown"
	EntityKindAgent   EntityKind = "agent"
	EntityKindClient  EntityKind = "client"
	EntityKindWorld   EntityKind = "world"
)

// EntityRef identifies a simulation entity in an event record.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Event is a single structured record emitted by the simulation.
type Event struct {
	Type     EventType      `json:"type"`
	Tick     uint64         `json:"tick"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

const (
	CategorySteering = "steering"
	CategorySim      = "sim"
	CategoryNetwork  = "network"
)

// Publisher accepts events from simulation code. Implementations must be
// safe for concurrent use and must never block the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function into a Publisher.
type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a Publisher that discards everything.
func NopPublisher() Publisher {
	return nopPublisher{}
}
