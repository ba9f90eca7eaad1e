// Package ws hosts the websocket session protocol: clients join with an
// optional actor id, receive per-tick steering debug frames, and may
// submit move commands for their actor.
package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	hubpkg "hollowvale/server/internal/net"
	"hollowvale/server/internal/sim"
)

type clientMessage struct {
	Type string  `json:"type"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Seq  uint64  `json:"seq,omitempty"`
}

type commandRejectMessage struct {
	Type   string `json:"type"`
	Seq    uint64 `json:"seq"`
	Reason string `json:"reason"`
}

// Handler coordinates one websocket session per connection.
type Handler struct {
	hub    *hubpkg.Hub
	loop   *sim.Loop
	logger *log.Logger
}

// NewHandler constructs a session handler over the hub and tick loop.
func NewHandler(hub *hubpkg.Hub, loop *sim.Loop, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{hub: hub, loop: loop, logger: logger}
}

// Serve subscribes the connection and pumps client messages until the
// peer disconnects. Move commands are queued for the next tick; any
// reject reason is echoed back.
func (h *Handler) Serve(conn *websocket.Conn, actorID string) {
	if h == nil || conn == nil {
		return
	}
	sub := h.hub.Subscribe(conn, actorID)
	if sub == nil {
		return
	}
	defer h.hub.Unsubscribe(sub.ID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Printf("session %s: bad message: %v", sub.ID, err)
			continue
		}
		switch msg.Type {
		case "move":
			if sub.ActorID == "" || h.loop == nil {
				continue
			}
			reason, ok := h.loop.Enqueue(sim.Command{
				ActorID:    sub.ActorID,
				DX:         msg.DX,
				DY:         msg.DY,
				Seq:        msg.Seq,
				OriginTick: h.loop.Tick(),
			})
			if !ok {
				h.reject(sub, msg.Seq, reason)
			}
		default:
			// Unknown message types are ignored; the protocol is
			// forward-compatible for observer-only tooling.
		}
	}
}

// reject queues the echo on the subscriber's write pump rather than
// writing the connection here: the pump owns all connection writes, and
// a broadcast racing a direct write would corrupt the stream.
func (h *Handler) reject(sub *hubpkg.Subscriber, seq uint64, reason string) {
	payload, err := json.Marshal(commandRejectMessage{
		Type:   "commandReject",
		Seq:    seq,
		Reason: reason,
	})
	if err != nil {
		return
	}
	if !sub.Send(payload) {
		h.logger.Printf("session %s: reject echo dropped", sub.ID)
	}
}
