package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dr-plumber/internal/core"
	"github.com/vovakirdan/dr-plumber/internal/storage"
)

// scriptGame replays a fixed sequence of states, one per Step.
type scriptGame struct {
	states []core.GameState
	frames []core.InputFrame
	resets int
}

func (g *scriptGame) ID() string    { return "script" }
func (g *scriptGame) Title() string { return "Script" }

func (g *scriptGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *scriptGame) Step(_ time.Time, in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.State(), Changed: true}
}

func (g *scriptGame) State() core.GameState {
	if len(g.frames) == 0 {
		return core.GameState{Mode: "init"}
	}
	i := min(len(g.frames), len(g.states)) - 1
	return g.states[i]
}

func (g *scriptGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "SCRIPT")
}

type memStore struct {
	saved []storage.GameRecord
	err   error
}

func (s *memStore) SaveGame(r storage.GameRecord) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, r)
	return int64(len(s.saved)), nil
}

var (
	playingState  = core.GameState{Level: 3, Mode: "playing", VirusesTotal: 16, VirusesLeft: 10, VirusesCleared: 6, Capsules: 9}
	gameOverState = core.GameState{Level: 3, Mode: "gameover", VirusesTotal: 16, VirusesLeft: 10, VirusesCleared: 6, Capsules: 12, GameOver: true}
	wonState      = core.GameState{Level: 3, Mode: "win", VirusesTotal: 16, VirusesCleared: 16, Capsules: 30, Won: true}
	initState     = core.GameState{Level: 3, Mode: "init"}
)

var t0 = time.Unix(1_700_000_000, 0)

func newTestModel(g *scriptGame, store HistoryStore) Model {
	return NewModel(g, store, nil, core.RuntimeConfig{
		ScreenW: 40, ScreenH: 12, TickRate: 64, Seed: 7, Level: 3, Speed: "mid",
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModelResetsGame(t *testing.T) {
	g := &scriptGame{}
	m := newTestModel(g, nil)

	assert.Equal(t, 1, g.resets)
	assert.Equal(t, 40, m.screen.Width())
	assert.Equal(t, 12-helpHeight, m.screen.Height())
}

func TestKeysReachNextTickOnly(t *testing.T) {
	g := &scriptGame{states: []core.GameState{playingState}}
	m := newTestModel(g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runeKey('f'))
	m, _ = update(t, m, runeKey('x'))
	m, cmd := update(t, m, TickMsg(t0))
	assert.NotNil(t, cmd, "tick schedules the next tick")

	m, _ = update(t, m, TickMsg(t0.Add(time.Second/64)))

	require.Len(t, g.frames, 2)
	assert.True(t, g.frames[0].Has(core.KeyLeft))
	assert.True(t, g.frames[0].Has(core.KeyRotateRight))
	assert.Len(t, g.frames[0].Keys, 2)
	assert.True(t, g.frames[1].Empty(), "frame is cleared after each tick")
	assert.Equal(t, playingState, m.State())
}

func TestKeyMapLogical(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Key
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.KeyRight},
		{tea.KeyMsg{Type: tea.KeyDown}, core.KeyDown},
		{runeKey('d'), core.KeyRotateLeft},
		{runeKey('f'), core.KeyRotateRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.KeyConfirm},
	}
	for _, tt := range tests {
		got, ok := km.Logical(tt.msg)
		assert.True(t, ok, tt.msg.String())
		assert.Equal(t, tt.want, got, tt.msg.String())
	}

	_, ok := km.Logical(tea.KeyMsg{Type: tea.KeyUp})
	assert.False(t, ok, "up is not bound")

	assert.True(t, km.IsQuit(runeKey('q')))
	assert.True(t, km.IsQuit(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.True(t, km.IsQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.False(t, km.IsQuit(runeKey('d')))
}

func TestQuitKeyRecordsAbandonedGame(t *testing.T) {
	store := &memStore{}
	g := &scriptGame{states: []core.GameState{playingState}}
	m := newTestModel(g, store)

	m, _ = update(t, m, TickMsg(t0))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
	require.Len(t, store.saved, 1)
	assert.Equal(t, storage.OutcomeQuit, store.saved[0].Outcome)
	assert.Equal(t, "script", store.saved[0].GameID)
	assert.Equal(t, int64(7), store.saved[0].Seed)
}

func TestQuitBeforeFirstTickRecordsNothing(t *testing.T) {
	store := &memStore{}
	m := newTestModel(&scriptGame{}, store)

	_, cmd := update(t, m, runeKey('q'))

	assert.True(t, isQuit(cmd))
	assert.Empty(t, store.saved)
}

func TestGameOverRecordedOnce(t *testing.T) {
	store := &memStore{}
	g := &scriptGame{states: []core.GameState{playingState, playingState, gameOverState}}
	m := newTestModel(g, store)

	now := t0
	for i := 0; i < 6; i++ {
		m, _ = update(t, m, TickMsg(now))
		now = now.Add(10 * time.Second)
	}
	// Quitting at the prompt must not add a second record.
	_, cmd := update(t, m, runeKey('q'))
	assert.True(t, isQuit(cmd))

	require.Len(t, store.saved, 1)
	r := store.saved[0]
	assert.Equal(t, storage.OutcomeLost, r.Outcome)
	assert.Equal(t, 3, r.Level)
	assert.Equal(t, "mid", r.Speed)
	assert.Equal(t, 16, r.VirusesTotal)
	assert.Equal(t, 6, r.VirusesCleared)
	assert.Equal(t, 12, r.Capsules)
	assert.Equal(t, 20*time.Second, r.Duration)
}

func TestRestartStartsNewRecord(t *testing.T) {
	store := &memStore{}
	g := &scriptGame{states: []core.GameState{
		playingState, gameOverState, initState, playingState, wonState,
	}}
	m := newTestModel(g, store)

	now := t0
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg(now))
		now = now.Add(time.Second)
	}

	require.Len(t, store.saved, 2)
	assert.Equal(t, storage.OutcomeLost, store.saved[0].Outcome)
	assert.Equal(t, time.Second, store.saved[0].Duration)
	assert.Equal(t, storage.OutcomeWon, store.saved[1].Outcome)
	assert.Equal(t, 2*time.Second, store.saved[1].Duration, "clock restarts with the new game")
}

func TestPromptQuitEndsProgram(t *testing.T) {
	quit := gameOverState
	quit.Quit = true
	g := &scriptGame{states: []core.GameState{gameOverState, quit}}
	m := newTestModel(g, nil)

	m, cmd := update(t, m, TickMsg(t0))
	assert.False(t, isQuit(cmd))

	_, cmd = update(t, m, TickMsg(t0.Add(time.Second)))
	assert.True(t, isQuit(cmd))
}

func TestStoreErrorDoesNotStopGame(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	g := &scriptGame{states: []core.GameState{gameOverState}}
	m := newTestModel(g, store)

	m, cmd := update(t, m, TickMsg(t0))

	assert.False(t, isQuit(cmd))
	assert.True(t, m.recorded)
}

func TestResizeKeepsHelpLine(t *testing.T) {
	m := newTestModel(&scriptGame{}, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height())
	assert.Contains(t, m.View(), "SCRIPT")
	assert.Contains(t, m.View(), "quit")
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, 15625*time.Microsecond, tickInterval(64))
	assert.Equal(t, 40*time.Millisecond, tickInterval(25))
	assert.Equal(t, time.Second, tickInterval(0))
}
