package world

import "hollowvale/server/internal/geom"

// moveAgent advances an agent along dir while clamping speed, bounds
// and obstacle walls. Direction magnitude above one is treated as one;
// the steering engine already emits unit-or-zero vectors.
func (w *World) moveAgent(agent *Agent, dir geom.Vec2, dt float64) {
	if w == nil || agent == nil {
		return
	}
	if dir.Len() > 1 {
		dir = dir.Normalized()
	}
	speed := agent.Speed
	if speed <= 0 {
		speed = MoveSpeed
	}
	deltaX := dir.X * speed * dt
	deltaY := dir.Y * speed * dt

	newX := geom.Clamp(agent.Pos.X+deltaX, AgentHalf, w.width-AgentHalf)
	if deltaX != 0 {
		newX = w.resolveAxisMoveX(agent.Pos.X, agent.Pos.Y, newX, deltaX)
	}

	newY := geom.Clamp(agent.Pos.Y+deltaY, AgentHalf, w.height-AgentHalf)
	if deltaY != 0 {
		newY = w.resolveAxisMoveY(newX, agent.Pos.Y, newY, deltaY)
	}

	agent.Pos = geom.Vec2{X: newX, Y: newY}
}

// resolveAxisMoveX applies horizontal movement while stopping at
// obstacle edges.
func (w *World) resolveAxisMoveX(oldX, oldY, proposedX, deltaX float64) float64 {
	newX := proposedX
	for _, obs := range w.obstacles {
		minY := obs.Y - AgentHalf
		maxY := obs.Y + obs.Height + AgentHalf
		if oldY < minY || oldY > maxY {
			continue
		}
		if deltaX > 0 {
			boundary := obs.X - AgentHalf
			if oldX <= boundary && newX > boundary {
				newX = boundary
			}
		} else if deltaX < 0 {
			boundary := obs.X + obs.Width + AgentHalf
			if oldX >= boundary && newX < boundary {
				newX = boundary
			}
		}
	}
	return geom.Clamp(newX, AgentHalf, w.width-AgentHalf)
}

// resolveAxisMoveY applies vertical movement while stopping at obstacle
// edges.
func (w *World) resolveAxisMoveY(oldX, oldY, proposedY, deltaY float64) float64 {
	newY := proposedY
	for _, obs := range w.obstacles {
		minX := obs.X - AgentHalf
		maxX := obs.X + obs.Width + AgentHalf
		if oldX < minX || oldX > maxX {
			continue
		}
		if deltaY > 0 {
			boundary := obs.Y - AgentHalf
			if oldY <= boundary && newY > boundary {
				newY = boundary
			}
		} else if deltaY < 0 {
			boundary := obs.Y + obs.Height + AgentHalf
			if oldY >= boundary && newY < boundary {
				newY = boundary
			}
		}
	}
	return geom.Clamp(newY, AgentHalf, w.height-AgentHalf)
}
