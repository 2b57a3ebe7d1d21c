package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dr-plumber/internal/storage"
)

// historyChrome is the number of rows taken by the title, totals, table
// border and help line.
const historyChrome = 8

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "close"),
		),
	}
}

// HistoryModel is a read-only table of finished games.
type HistoryModel struct {
	games  []storage.GameRecord
	totals storage.Totals
	table  table.Model
	help   help.Model
	keys   HistoryKeyMap
	width  int
	height int
	done   bool
}

// NewHistoryModel creates a history browser sized to width x height.
func NewHistoryModel(games []storage.GameRecord, totals storage.Totals, width, height int) HistoryModel {
	m := HistoryModel{
		games:  games,
		totals: totals,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(HistoryColumns()),
		table.WithRows(HistoryRows(m.games)),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-historyChrome)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// HistoryColumns are the table columns shared by the browser and plain output.
func HistoryColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Level", Width: 5},
		{Title: "Speed", Width: 5},
		{Title: "Result", Width: 6},
		{Title: "Viruses", Width: 7},
		{Title: "Pills", Width: 5},
		{Title: "Time", Width: 8},
	}
}

// HistoryRows formats records as table rows.
func HistoryRows(games []storage.GameRecord) []table.Row {
	rows := make([]table.Row, len(games))
	for i, g := range games {
		rows[i] = table.Row{
			g.CreatedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", g.Level),
			g.Speed,
			string(g.Outcome),
			fmt.Sprintf("%d/%d", g.VirusesCleared, g.VirusesTotal),
			fmt.Sprintf("%d", g.Capsules),
			formatDuration(g.Duration),
		}
	}
	return rows
}

// TotalsLine summarizes the history in one line.
func TotalsLine(t storage.Totals) string {
	return fmt.Sprintf("games %d  won %d  lost %d  viruses %d  played %s",
		t.Games, t.Wins, t.Losses, t.VirusesCleared, formatDuration(t.PlayTime))
}

// formatDuration prints whole seconds as m:ss, or h:mm:ss past an hour.
func formatDuration(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME HISTORY"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(TotalsLine(m.totals)))
	b.WriteString("\n")

	if len(m.games) == 0 {
		b.WriteString(boxStyle.Render(dimStyle.Italic(true).Render("No games recorded yet.")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunHistory shows the history browser until the user closes it.
func RunHistory(games []storage.GameRecord, totals storage.Totals, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(games, totals, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
