package net

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"hollowvale/server/internal/telemetry"
)

const (
	writeWait     = 10 * time.Second
	sendQueueSize = 16
)

// Hub fans per-tick debug frames out to subscribed websocket clients.
// Slow subscribers drop frames instead of stalling the tick loop.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*Subscriber
	logger      telemetry.Logger
	metrics     telemetry.Metrics
}

// Subscriber is one connected debug client.
type Subscriber struct {
	ID      string
	ActorID string

	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewHub builds an empty hub.
func NewHub(logger telemetry.Logger, metrics telemetry.Metrics) *Hub {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		logger:      logger,
		metrics:     metrics,
	}
}

// Subscribe registers a connection and starts its write pump. actorID
// names the controlled agent this client may steer; it can be empty
// for observe-only sessions.
func (h *Hub) Subscribe(conn *websocket.Conn, actorID string) *Subscriber {
	if h == nil || conn == nil {
		return nil
	}
	sub := &Subscriber{
		ID:      uuid.NewString(),
		ActorID: actorID,
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
	}
	h.mu.Lock()
	h.subscribers[sub.ID] = sub
	h.mu.Unlock()
	h.metrics.Add("net.subscribers_total", 1)
	go h.writePump(sub)
	return sub
}

// Unsubscribe removes a subscriber and closes its connection.
func (h *Hub) Unsubscribe(id string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.close()
	}
}

// Count reports the live subscriber count.
func (h *Hub) Count() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Broadcast queues a frame for every subscriber, dropping it for any
// subscriber whose queue is full.
func (h *Hub) Broadcast(data []byte) {
	if h == nil || len(data) == 0 {
		return
	}
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()
	for _, sub := range subs {
		if !sub.Send(data) {
			h.metrics.Add("net.frames_dropped", 1)
		}
	}
}

// Send queues data for the subscriber's write pump, reporting false when
// the queue is full or the subscriber is closed. The pump is the only
// goroutine that writes the connection, so session code must never call
// the connection's write methods directly.
func (s *Subscriber) Send(data []byte) bool {
	if s == nil || len(data) == 0 {
		return false
	}
	select {
	case <-s.done:
		return false
	case s.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) writePump(sub *Subscriber) {
	for {
		select {
		case <-sub.done:
			return
		case data := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if h.logger != nil {
					h.logger.Printf("subscriber %s write failed: %v", sub.ID, err)
				}
				h.Unsubscribe(sub.ID)
				return
			}
		}
	}
}

func (s *Subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}
