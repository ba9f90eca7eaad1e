package world

import (
	"fmt"
	"math"
	"math/rand"

	"hollowvale/server/internal/geom"
)

// Obstacle is an axis-aligned blocking rectangle.
type Obstacle struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const (
	obstacleMinWidth    = 40.0
	obstacleMaxWidth    = 120.0
	obstacleMinHeight   = 40.0
	obstacleMaxHeight   = 120.0
	obstacleSpawnMargin = 60.0
)

// GenerateObstacles scatters blocking rectangles using the provided
// subsystem RNG. Placement retries keep obstacles from overlapping.
func GenerateObstacles(rng *rand.Rand, count int, worldW, worldH float64) []Obstacle {
	if rng == nil || count <= 0 {
		return nil
	}
	obstacles := make([]Obstacle, 0, count)
	attempts := 0
	maxAttempts := count * 20
	for len(obstacles) < count && attempts < maxAttempts {
		attempts++
		width := obstacleMinWidth + rng.Float64()*(obstacleMaxWidth-obstacleMinWidth)
		height := obstacleMinHeight + rng.Float64()*(obstacleMaxHeight-obstacleMinHeight)
		maxX := worldW - obstacleSpawnMargin - width
		maxY := worldH - obstacleSpawnMargin - height
		if maxX <= obstacleSpawnMargin || maxY <= obstacleSpawnMargin {
			break
		}
		candidate := Obstacle{
			ID:     fmt.Sprintf("obstacle-%d", len(obstacles)+1),
			X:      obstacleSpawnMargin + rng.Float64()*(maxX-obstacleSpawnMargin),
			Y:      obstacleSpawnMargin + rng.Float64()*(maxY-obstacleSpawnMargin),
			Width:  width,
			Height: height,
		}
		overlaps := false
		for _, existing := range obstacles {
			if obstaclesOverlap(existing, candidate, AgentHalf*2) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			obstacles = append(obstacles, candidate)
		}
	}
	return obstacles
}

func obstaclesOverlap(a, b Obstacle, padding float64) bool {
	return a.X-padding < b.X+b.Width+padding &&
		a.X+a.Width+padding > b.X-padding &&
		a.Y-padding < b.Y+b.Height+padding &&
		a.Y+a.Height+padding > b.Y-padding
}

// CircleRectOverlap reports whether a circle intersects an obstacle.
func CircleRectOverlap(cx, cy, radius float64, obs Obstacle) bool {
	closestX := geom.Clamp(cx, obs.X, obs.X+obs.Width)
	closestY := geom.Clamp(cy, obs.Y, obs.Y+obs.Height)
	dx := cx - closestX
	dy := cy - closestY
	return dx*dx+dy*dy < radius*radius
}

// segmentHitsRect runs a slab test for a segment against a rectangle
// inflated by padding.
func segmentHitsRect(origin, dir geom.Vec2, maxDist float64, obs Obstacle, padding float64) bool {
	unit := dir.Normalized()
	if unit.IsZero() || maxDist <= 0 {
		return false
	}
	minX := obs.X - padding
	maxX := obs.X + obs.Width + padding
	minY := obs.Y - padding
	maxY := obs.Y + obs.Height + padding

	tMin := 0.0
	tMax := maxDist

	for axis := 0; axis < 2; axis++ {
		var o, d, lo, hi float64
		if axis == 0 {
			o, d, lo, hi = origin.X, unit.X, minX, maxX
		} else {
			o, d, lo, hi = origin.Y, unit.Y, minY, maxY
		}
		if d == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
