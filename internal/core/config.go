// Package core provides the shared plumbing between minigames and the
// platform: a character screen buffer, semantic input actions, and the
// runtime configuration handed to a minigame when it starts.
package core

// RuntimeConfig is passed to a minigame at reset. Seed makes the run
// reproducible; Energy01 and ShipHealth01 are read-only difficulty
// tuning inputs taken from the current round.
type RuntimeConfig struct {
	ScreenW      int
	ScreenH      int
	TickRate     int // simulation ticks per second
	Seed         int64
	Energy01     float64 // normalized reactor load of the round
	ShipHealth01 float64 // current hull integrity
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     60,
		Energy01:     0.5,
		ShipHealth01: 1,
	}
}

// GameState is the running status a minigame reports after each tick.
type GameState struct {
	Score01 float64 // continuous skill measure so far, in [0,1]
	Done    bool    // the run has produced its outcome
}

// StepResult is returned by a minigame step.
type StepResult struct {
	State GameState
}
