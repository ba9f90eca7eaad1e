package steering

// Sensor performs one perception pass for an agent, typically running
// spatial queries and recording threats into the agent's memory store.
type Sensor interface {
	Name() string
	Sense(a *AgentState, tick uint64)
}

// SensorFunc adapts a named function into a Sensor.
type SensorFunc struct {
	SensorName string
	Fn         func(a *AgentState, tick uint64)
}

func (s SensorFunc) Name() string {
	return s.SensorName
}

func (s SensorFunc) Sense(a *AgentState, tick uint64) {
	if s.Fn == nil {
		return
	}
	s.Fn(a, tick)
}

type sensorSlot struct {
	sensor    Sensor
	interval  uint32
	countdown uint32
}

// Schedule throttles an agent's perception routines to per-sensor tick
// intervals, decoupling perception cost from the movement tick rate.
// Each agent owns its own schedule.
type Schedule struct {
	slots []sensorSlot
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Attach registers a sensor that fires every interval ticks. Intervals
// below 1 are clamped to 1. The first firing happens on the next tick.
func (s *Schedule) Attach(sensor Sensor, interval uint32) {
	if s == nil || sensor == nil {
		return
	}
	if interval < 1 {
		interval = 1
	}
	s.slots = append(s.slots, sensorSlot{sensor: sensor, interval: interval})
}

// Tick decrements every countdown and runs the sensors that reach zero,
// resetting their countdowns.
func (s *Schedule) Tick(a *AgentState, tick uint64) {
	if s == nil {
		return
	}
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.countdown > 0 {
			slot.countdown--
			continue
		}
		slot.sensor.Sense(a, tick)
		slot.countdown = slot.interval - 1
	}
}

// Len reports how many sensors are attached.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}
