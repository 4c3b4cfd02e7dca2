package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/storage"
)

// maxSessions caps how much history the viewer loads.
const maxSessions = 100

// HistoryKeyMap defines the key bindings for the session history screen.
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
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the session history screen.
type HistoryModel struct {
	store    *storage.Store
	sessions []storage.SessionRecord
	winRate  float64
	total    int
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model and loads recent sessions.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Crew", Width: 5},
		{Title: "Rounds", Width: 7},
		{Title: "Clears", Width: 7},
		{Title: "Overloads", Width: 10},
		{Title: "Hull", Width: 6},
		{Title: "Winner", Width: 10},
	}

	height := m.height - 8
	if height < 4 {
		height = 4
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

func (m *HistoryModel) load() {
	sessions, err := m.store.RecentSessions(maxSessions)
	if err != nil {
		sessions = nil
	}
	m.sessions = sessions

	rate, total, err := m.store.CrewWinRate()
	if err == nil {
		m.winRate = rate
		m.total = total
	}

	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		winner := "saboteur"
		if s.CrewWon {
			winner = "crew"
		}
		rows[i] = table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", s.Players),
			fmt.Sprintf("%d", s.RoundsPlayed),
			fmt.Sprintf("%d", s.Clears),
			fmt.Sprintf("%d", s.Overloads),
			fmt.Sprintf("%.0f%%", s.ShipHealth01*100),
			winner,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("SESSION HISTORY", m.width)))
	b.WriteString("\n\n")

	if len(m.sessions) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(empty.Render("No sessions recorded yet.\nFinish a game to start the log."))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(fmt.Sprintf(
			"crew won %.0f%% of %d sessions", m.winRate*100, m.total)))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunHistory runs the session history screen.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// BestScores returns a formatted line per job with its best recorded
// skill-check score, for the plain-text history summary.
func BestScores(store *storage.Store) []string {
	var lines []string
	for _, job := range engine.Jobs() {
		best, err := store.BestScore(job)
		if err != nil || best == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-8s best %.0f%%", job, best*100))
	}
	return lines
}
