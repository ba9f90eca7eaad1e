package world

import (
	"testing"

	"hollowvale/server/internal/geom"
)

func TestGenerateObstaclesReplaysFromSeed(t *testing.T) {
	first := GenerateObstacles(NewDeterministicRNG("seed", "obstacles"), 8, 800, 600)
	second := GenerateObstacles(NewDeterministicRNG("seed", "obstacles"), 8, 800, 600)

	if len(first) == 0 {
		t.Fatalf("no obstacles generated")
	}
	if len(first) != len(second) {
		t.Fatalf("counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGeneratedObstaclesKeepClearance(t *testing.T) {
	obstacles := GenerateObstacles(NewDeterministicRNG("seed", "obstacles"), 8, 800, 600)
	for i := range obstacles {
		for j := i + 1; j < len(obstacles); j++ {
			if obstaclesOverlap(obstacles[i], obstacles[j], AgentHalf*2) {
				t.Fatalf("obstacles %d and %d lack agent clearance: %+v %+v", i, j, obstacles[i], obstacles[j])
			}
		}
	}
}

func TestSegmentHitsRect(t *testing.T) {
	obs := Obstacle{X: 100, Y: 100, Width: 50, Height: 50}

	cases := []struct {
		name    string
		origin  geom.Vec2
		dir     geom.Vec2
		maxDist float64
		padding float64
		want    bool
	}{
		{"direct hit", geom.Vec2{X: 50, Y: 125}, geom.Vec2{X: 1}, 100, 0, true},
		{"stops short", geom.Vec2{X: 50, Y: 125}, geom.Vec2{X: 1}, 40, 0, false},
		{"passes beside", geom.Vec2{X: 50, Y: 200}, geom.Vec2{X: 1}, 200, 0, false},
		{"padding catches near miss", geom.Vec2{X: 50, Y: 160}, geom.Vec2{X: 1}, 200, AgentHalf, true},
		{"starts inside", geom.Vec2{X: 125, Y: 125}, geom.Vec2{Y: 1}, 10, 0, true},
		{"points away", geom.Vec2{X: 50, Y: 125}, geom.Vec2{X: -1}, 100, 0, false},
		{"diagonal hit", geom.Vec2{X: 60, Y: 60}, geom.Vec2{X: 1, Y: 1}, 200, 0, true},
		{"zero direction", geom.Vec2{X: 50, Y: 125}, geom.Vec2{}, 100, 0, false},
	}
	for _, tc := range cases {
		if got := segmentHitsRect(tc.origin, tc.dir, tc.maxDist, obs, tc.padding); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCircleRectOverlap(t *testing.T) {
	obs := Obstacle{X: 100, Y: 100, Width: 50, Height: 50}
	if !CircleRectOverlap(90, 125, 15, obs) {
		t.Fatalf("circle touching left edge not detected")
	}
	if CircleRectOverlap(80, 125, 15, obs) {
		t.Fatalf("separated circle reported overlapping")
	}
	if !CircleRectOverlap(125, 125, 5, obs) {
		t.Fatalf("contained circle not detected")
	}
}
