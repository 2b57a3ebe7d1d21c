package plumber

import "github.com/vovakirdan/dr-plumber/internal/games/plumber/bottle"

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Mode           Mode
	Level          int
	Bottle         string // bottle.String() of the field
	Current        *bottle.Capsule
	Next           [2]bottle.Color
	Pending        int
	VirusesTotal   int
	VirusesLeft    int
	VirusesCleared int
	Capsules       int
	Chains         int
	Cascade        int
	Selection      Selection
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Mode:           g.mode,
		Level:          g.level,
		Next:           g.next,
		Pending:        len(g.pending),
		VirusesTotal:   g.virusesTotal,
		VirusesLeft:    g.VirusesLeft(),
		VirusesCleared: g.virusesCleared,
		Capsules:       g.capsules,
		Chains:         g.chains,
		Cascade:        g.cascade,
		Selection:      g.selection,
	}
	if g.bottle != nil {
		s.Bottle = g.bottle.String()
	}
	if g.current != nil {
		c := *g.current
		s.Current = &c
	}
	return s
}
