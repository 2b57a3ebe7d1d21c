package plumber

import "fmt"

// Mode is a phase of the game state machine.
type Mode int

const (
	ModeInit Mode = iota
	ModePreparing
	ModeReady
	ModePlayingPreparing
	ModePlaying
	ModeLanding
	ModeVanishingPreparing
	ModeVanishingReady
	ModeVanishing
	ModeFalling
	ModeGameOverReady
	ModeGameOver
	ModeWinReady
	ModeWin
)

// String returns the mode name. Panics on an invalid value.
func (m Mode) String() string {
	switch m {
	case ModeInit:
		return "init"
	case ModePreparing:
		return "preparing"
	case ModeReady:
		return "ready"
	case ModePlayingPreparing:
		return "playing-preparing"
	case ModePlaying:
		return "playing"
	case ModeLanding:
		return "landing"
	case ModeVanishingPreparing:
		return "vanishing-preparing"
	case ModeVanishingReady:
		return "vanishing-ready"
	case ModeVanishing:
		return "vanishing"
	case ModeFalling:
		return "falling"
	case ModeGameOverReady:
		return "gameover-ready"
	case ModeGameOver:
		return "gameover"
	case ModeWinReady:
		return "win-ready"
	case ModeWin:
		return "win"
	}
	panic(fmt.Sprintf("plumber: invalid mode %d", int(m)))
}

// Selection is the highlighted answer of the YES/NO prompt.
type Selection int

const (
	SelectYes Selection = iota
	SelectNo
)

// String returns the prompt label. Panics on an invalid value.
func (s Selection) String() string {
	switch s {
	case SelectYes:
		return "YES"
	case SelectNo:
		return "NO"
	}
	panic(fmt.Sprintf("plumber: invalid selection %d", int(s)))
}
