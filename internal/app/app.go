// Package app wires configuration, logging, the world, the tick loop
// and the HTTP surface into a runnable server.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"hollowvale/server/catalog"
	"hollowvale/server/internal/geom"
	netpkg "hollowvale/server/internal/net"
	"hollowvale/server/internal/net/ws"
	"hollowvale/server/internal/sim"
	"hollowvale/server/internal/steering"
	"hollowvale/server/internal/telemetry"
	"hollowvale/server/internal/world"
	"hollowvale/server/logging"
	"hollowvale/server/logging/sinks"
)

type debugFrame struct {
	Type   string                   `json:"type"`
	Tick   uint64                   `json:"tick"`
	Agents []steering.DebugSnapshot `json:"agents"`
}

// Run boots the server and blocks until ctx is canceled or a component
// fails.
func Run(ctx context.Context, cfg Config) error {
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)
	counters := telemetry.NewCounters()

	router, err := buildRouter(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		router.Close(closeCtx)
	}()

	resolver, err := catalog.Load(cfg.CatalogPaths...)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	w := world.NewWorld(cfg.World, resolver, world.Deps{
		Publisher: router,
		Metrics:   counters,
	})
	if err := spawnAll(w, resolver, cfg); err != nil {
		return err
	}

	hub := netpkg.NewHub(telemetry.WrapLogger(logger), counters)
	loop := sim.NewLoop(w, sim.LoopConfig{TickRate: cfg.TickRate}, sim.LoopHooks{
		AfterTick: func(tick uint64, _ float64) {
			frame := debugFrame{Type: "steeringDebug", Tick: tick, Agents: w.DebugSnapshots(tick)}
			data, err := json.Marshal(frame)
			if err != nil {
				logger.Printf("debug frame marshal failed: %v", err)
				return
			}
			hub.Broadcast(data)
		},
	}, telemetry.WrapLogger(logger), counters)

	mux := netpkg.NewMux(netpkg.MuxConfig{
		Hub:      hub,
		Sessions: ws.NewHandler(hub, loop, logger),
		Counters: counters,
		Router:   router,
		Logger:   logger,
	})
	server := &nethttp.Server{Addr: cfg.Addr, Handler: mux}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := loop.Run(groupCtx)
		if err == context.Canceled {
			return nil
		}
		return err
	})
	group.Go(func() error {
		logger.Printf("listening on %s", cfg.Addr)
		err := server.ListenAndServe()
		if err == nethttp.ErrServerClosed {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func buildRouter(spec LoggingSpec) (*logging.Router, error) {
	cfg := logging.DefaultConfig()
	if len(spec.Sinks) > 0 {
		cfg.EnabledSinks = spec.Sinks
	}
	if spec.Debug {
		cfg.MinimumSeverity = logging.SeverityDebug
	}
	if spec.JSONPath != "" {
		cfg.JSON.FilePath = spec.JSONPath
	}

	named := make([]logging.NamedSink, 0, len(cfg.EnabledSinks))
	for _, name := range cfg.EnabledSinks {
		switch name {
		case "console":
			named = append(named, logging.NamedSink{Name: name, Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)})
		case "json":
			if cfg.JSON.FilePath == "" {
				return nil, fmt.Errorf("json sink enabled without a file path")
			}
			sink, err := sinks.NewJSONSink(cfg.JSON)
			if err != nil {
				return nil, err
			}
			named = append(named, logging.NamedSink{Name: name, Sink: sink})
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	return logging.NewRouter(nil, cfg, named), nil
}

func spawnAll(w *world.World, resolver *catalog.Resolver, cfg Config) error {
	width, height := w.Dimensions()
	for _, id := range cfg.Players {
		w.SpawnControlled(id, geom.Vec2{X: width / 2, Y: height / 2})
	}
	for _, spec := range cfg.Bots {
		mode, err := botMode(spec, resolver)
		if err != nil {
			return err
		}
		agent := w.SpawnBot(spec.ID, spec.Archetype, geom.Vec2{X: spec.X, Y: spec.Y}, mode)
		if agent == nil {
			return fmt.Errorf("spawn bot %q failed", spec.ID)
		}
		for _, wp := range spec.Waypoints {
			agent.Waypoints = append(agent.Waypoints, geom.Vec2{X: wp.X, Y: wp.Y})
		}
	}
	return nil
}

func botMode(spec BotSpec, resolver *catalog.Resolver) (steering.PrimaryMode, error) {
	switch spec.Mode {
	case "", "path":
		return steering.PathMode(), nil
	case "pursuit":
		if spec.Target == "" {
			return steering.PrimaryMode{}, fmt.Errorf("bot %q: pursuit mode requires a target", spec.ID)
		}
		arch, ok := resolver.Archetype(spec.Archetype)
		if !ok {
			return steering.PrimaryMode{}, fmt.Errorf("bot %q: unknown archetype %q", spec.ID, spec.Archetype)
		}
		return steering.PursuitMode(steering.TargetRef(spec.Target), arch.FleeRadius, arch.ThreatRadius), nil
	default:
		return steering.PrimaryMode{}, fmt.Errorf("bot %q: unknown mode %q", spec.ID, spec.Mode)
	}
}
