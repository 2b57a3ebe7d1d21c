// Package registry keeps the set of playable games. Game packages register a
// factory from init(), so the terminal front end and the CLI can create a
// game by ID without importing it directly.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/dr-plumber/internal/core"
)

// ErrUnknownGame is returned by Create for an ID nobody registered.
var ErrUnknownGame = errors.New("unknown game")

// Game is a simulation driven by an external clock.
// Implementations hold no terminal state; the front end maps keys to an
// InputFrame, calls Step once per tick and renders into a Screen.
type Game interface {
	// ID is the stable identifier used on the command line and in history.
	ID() string

	// Title is the human-readable name.
	Title() string

	// Reset starts a fresh session with the given options.
	Reset(cfg core.RuntimeConfig)

	// Step advances the state machine to now. Keys in the frame count as
	// pressed during this tick only.
	Step(now time.Time, in core.InputFrame) core.StepResult

	// Render draws the current state. dst may be any size.
	Render(dst *core.Screen)

	State() core.GameState
}

// Info describes a registered game.
type Info struct {
	ID    string
	Title string
}

// Factory creates a game with default settings.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	titles    = map[string]string{}
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games ordered by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Info, 0, len(factories))
	for id := range factories {
		out = append(out, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
