package sim

// Command is a movement intent applied at the start of a tick. Human
// clients and bots feed the same pipeline; bots simply bypass the
// buffer because their intents are computed inside the tick.
type Command struct {
	ActorID    string
	DX         float64
	DY         float64
	Seq        uint64
	OriginTick uint64
}

// Stepper advances the simulation by one fixed tick with the commands
// collected since the previous tick.
type Stepper interface {
	Step(tick uint64, dt float64, commands []Command)
}

// Reject reasons recorded when a command is dropped before the tick.
const (
	CommandRejectQueueLimit = "queue_limit"
	CommandRejectQueueFull  = "queue_full"
)
