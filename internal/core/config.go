package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frame ticks per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Started  bool // Whether a session has been started from the title overlay
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Running reports whether the platform should keep scheduling ticks.
func (s GameState) Running() bool {
	return s.Started && !s.GameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventStomped
	EventLanded
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventStomped:
		return "stomped"
	case EventLanded:
		return "landed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a notable simulation occurrence, used for logging and tests.
type Event struct {
	Kind   EventKind
	Detail string // Entity kind or other short tag
	Points int    // Points awarded (stomps only)
	Combo  int    // Combo chain after the event
}
