// Package net exposes the HTTP surface: websocket upgrades for the
// debug stream and JSON diagnostics endpoints.
package net

import (
	"encoding/json"
	"log"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	"hollowvale/server/internal/telemetry"
	"hollowvale/server/logging"
)

// SessionServer serves one websocket session per upgraded connection.
type SessionServer interface {
	Serve(conn *websocket.Conn, actorID string)
}

// MuxConfig wires the HTTP handlers.
type MuxConfig struct {
	Hub      *Hub
	Sessions SessionServer
	Counters *telemetry.Counters
	Router   *logging.Router
	Logger   *log.Logger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*nethttp.Request) bool { return true },
}

// NewMux builds the server routes.
func NewMux(cfg MuxConfig) *nethttp.ServeMux {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	mux := nethttp.NewServeMux()

	mux.HandleFunc("/ws", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if cfg.Sessions == nil {
			nethttp.Error(w, "sessions unavailable", nethttp.StatusServiceUnavailable)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("upgrade failed: %v", err)
			return
		}
		cfg.Sessions.Serve(conn, r.URL.Query().Get("actor"))
	})

	mux.HandleFunc("/healthz", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		response := struct {
			Counters    map[string]uint64 `json:"counters,omitempty"`
			Subscribers int               `json:"subscribers"`
			Events      uint64            `json:"eventsTotal"`
			Dropped     uint64            `json:"eventsDropped"`
		}{
			Subscribers: cfg.Hub.Count(),
		}
		if cfg.Counters != nil {
			response.Counters = cfg.Counters.Snapshot()
		}
		if cfg.Router != nil {
			stats := cfg.Router.Stats()
			response.Events = stats.EventsTotal
			response.Dropped = stats.DroppedTotal
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Printf("diagnostics encode failed: %v", err)
		}
	})

	return mux
}
