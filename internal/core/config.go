package core

import "time"

// RuntimeConfig is passed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickRate     float64       // Ticks per second, may be fractional
	Seed         int64         // RNG seed; 0 means the platform picks one
	Level        int           // Starting level, 1..20
	Speed        string        // Speed name shown in the HUD
	FallInterval time.Duration // Time between automatic drops
}

// DefaultConfig returns a RuntimeConfig matching the CLI defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     64,
		Seed:         0,
		Level:        10,
		Speed:        "mid",
		FallInterval: time.Second,
	}
}

// GameState is returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level          int
	Mode           string // Name of the current phase
	VirusesTotal   int
	VirusesLeft    int
	VirusesCleared int // Cleared in the current game
	Capsules       int // Capsules spawned in the current game
	GameOver       bool
	Won            bool
	Quit           bool // The player chose to end the session
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State   GameState
	Changed bool // Whether anything visible changed this tick
}
