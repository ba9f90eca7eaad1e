package world

import (
	"testing"

	"hollowvale/server/internal/geom"
	"hollowvale/server/internal/steering"
)

func TestPathDirectionPointsAtCurrentWaypoint(t *testing.T) {
	w := newTestWorld(t, Config{Seed: "test"})
	bot := w.SpawnBot("bot-1", "", geom.Vec2{X: 100, Y: 100}, steering.PathMode())
	bot.Waypoints = []geom.Vec2{{X: 200, Y: 100}}

	dir, ok := w.PathDirection("bot-1")
	if !ok {
		t.Fatalf("no path direction")
	}
	if dir != (geom.Vec2{X: 1}) {
		t.Fatalf("direction %+v, want east", dir)
	}
}

func TestPathAdvancesAndLoops(t *testing.T) {
	w := newTestWorld(t, Config{Seed: "test"})
	bot := w.SpawnBot("bot-1", "", geom.Vec2{X: 100, Y: 100}, steering.PathMode())
	bot.Waypoints = []geom.Vec2{{X: 105, Y: 100}, {X: 100, Y: 200}}

	// Inside the arrive radius of the first waypoint: skip to the next.
	dir, ok := w.PathDirection("bot-1")
	if !ok {
		t.Fatalf("no path direction")
	}
	if dir != (geom.Vec2{Y: 1}) {
		t.Fatalf("direction %+v, want south toward second waypoint", dir)
	}
	if bot.WaypointIndex != 1 {
		t.Fatalf("waypoint index %d, want 1", bot.WaypointIndex)
	}

	// Reaching the second waypoint loops back to the first.
	bot.Pos = geom.Vec2{X: 100, Y: 198}
	if _, ok := w.PathDirection("bot-1"); !ok {
		t.Fatalf("no direction after loop")
	}
	if bot.WaypointIndex != 0 {
		t.Fatalf("waypoint loop index %d, want 0", bot.WaypointIndex)
	}
}

func TestPathDirectionWithoutWaypoints(t *testing.T) {
	w := newTestWorld(t, Config{Seed: "test"})
	w.SpawnBot("bot-1", "", geom.Vec2{X: 100, Y: 100}, steering.PathMode())

	if _, ok := w.PathDirection("bot-1"); ok {
		t.Fatalf("waypoint-less bot reported a path")
	}
	if _, ok := w.PathDirection("missing"); ok {
		t.Fatalf("unknown agent reported a path")
	}
}

func TestPathDegenerateAllReachedStops(t *testing.T) {
	w := newTestWorld(t, Config{Seed: "test"})
	bot := w.SpawnBot("bot-1", "", geom.Vec2{X: 100, Y: 100}, steering.PathMode())
	bot.Waypoints = []geom.Vec2{{X: 100, Y: 100}, {X: 102, Y: 100}}

	if _, ok := w.PathDirection("bot-1"); ok {
		t.Fatalf("all-reached waypoint loop still produced a direction")
	}
}
