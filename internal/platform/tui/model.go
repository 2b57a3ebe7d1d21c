package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dr-plumber/internal/core"
	"github.com/vovakirdan/dr-plumber/internal/registry"
	"github.com/vovakirdan/dr-plumber/internal/storage"
)

// helpHeight is the number of rows kept free below the game for the help line.
const helpHeight = 1

// HistoryStore receives a record for every finished game.
type HistoryStore interface {
	SaveGame(r storage.GameRecord) (int64, error)
}

// Model drives a registry.Game from Bubble Tea messages.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  HistoryStore
	logger *log.Logger
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	frame    core.InputFrame
	state    core.GameState
	started  time.Time // clock time the current game started, zero before the first tick
	recorded bool      // the current game already has a history record
	quitting bool
}

// NewModel creates a model for game. store may be nil to skip history, and
// logger may be nil to discard logs.
func NewModel(game registry.Game, store HistoryStore, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-helpHeight)),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		frame:  core.NewInputFrame(),
		state:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("game started",
		"game", m.game.ID(), "level", m.config.Level, "speed", m.config.Speed,
		"seed", m.config.Seed, "fps", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		if m.inProgress() {
			m.record(storage.OutcomeQuit, time.Now())
		}
		m.quitting = true
		m.logger.Info("quit by key", "key", msg.String())
		return m, tea.Quit
	}

	if k, ok := m.keys.Logical(msg); ok {
		m.frame.Press(k)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-helpHeight))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = now
	}

	prev := m.state
	res := m.game.Step(now, m.frame)
	m.frame.Clear()
	m.state = res.State

	if m.state.Mode != prev.Mode {
		m.logger.Debug("mode", "from", prev.Mode, "to", m.state.Mode, "level", m.state.Level)
	}

	switch {
	case m.state.GameOver && !prev.GameOver:
		m.record(storage.OutcomeLost, now)
	case m.state.Won && !prev.Won:
		m.record(storage.OutcomeWon, now)
	case (prev.GameOver || prev.Won) && !m.state.GameOver && !m.state.Won:
		// A new game began from the prompt.
		m.started = now
		m.recorded = false
	}

	if m.state.Quit {
		m.quitting = true
		m.logger.Info("quit from prompt")
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// inProgress reports whether quitting now abandons a game that has no record.
func (m Model) inProgress() bool {
	return !m.recorded && !m.started.IsZero() && !m.state.GameOver && !m.state.Won
}

// record saves the current game to the history store once.
func (m *Model) record(outcome storage.Outcome, now time.Time) {
	if m.recorded {
		return
	}
	m.recorded = true

	r := storage.GameRecord{
		GameID:         m.game.ID(),
		Level:          m.state.Level,
		Speed:          m.config.Speed,
		Seed:           m.config.Seed,
		Outcome:        outcome,
		VirusesTotal:   m.state.VirusesTotal,
		VirusesCleared: m.state.VirusesCleared,
		Capsules:       m.state.Capsules,
		Duration:       now.Sub(m.started),
	}
	m.logger.Info("game finished",
		"outcome", outcome, "level", r.Level,
		"cleared", r.VirusesCleared, "total", r.VirusesTotal, "duration", r.Duration)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveGame(r); err != nil {
		m.logger.Warn("cannot save game history", "err", err)
	}
}

// View renders the game and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(game registry.Game, store HistoryStore, logger *log.Logger, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, logger, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
