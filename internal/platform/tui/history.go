package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/upball/internal/progress"
	"github.com/vovakirdan/upball/internal/storage"
)

// Runs loaded into the history table.
const maxHistoryRuns = 100

// HistoryReader reads a player's run history. *storage.Store implements it.
type HistoryReader interface {
	RecentRuns(player string, limit int) ([]storage.Run, error)
	LevelStats(player string) ([]storage.LevelStats, error)
}

// HistoryKeyMap defines the key bindings of the history viewer.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
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
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs/levels"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel shows a player's recent runs or per-level statistics.
type HistoryModel struct {
	reader    HistoryReader
	player    string
	runs      []storage.Run
	stats     []storage.LevelStats
	loadErr   error
	byLevel   bool
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history viewer and loads the player's runs.
func NewHistoryModel(reader HistoryReader, player string, width, height int) HistoryModel {
	m := HistoryModel{
		reader: reader,
		player: player,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	m.rebuild()
	return m
}

func (m *HistoryModel) load() {
	if m.reader == nil {
		return
	}
	runs, err := m.reader.RecentRuns(m.player, maxHistoryRuns)
	if err != nil {
		m.loadErr = err
		return
	}
	stats, err := m.reader.LevelStats(m.player)
	if err != nil {
		m.loadErr = err
		return
	}
	m.runs = runs
	m.stats = stats
}

// rebuild recreates the table for the current mode and size.
func (m *HistoryModel) rebuild() {
	var columns []table.Column
	var rows []table.Row

	if m.byLevel {
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Tries", Width: 6},
			{Title: "Wins", Width: 6},
			{Title: "Best", Width: 6},
			{Title: "Best %", Width: 7},
			{Title: "Last played", Width: 14},
		}
		for _, s := range m.stats {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", s.Level),
				fmt.Sprintf("%d", s.Attempts),
				fmt.Sprintf("%d", s.Victories),
				starString(s.BestStars, progress.MaxStars),
				fmt.Sprintf("%.0f%%", s.BestPct*100),
				s.LastPlayed.Format("Jan 02 15:04"),
			})
		}
	} else {
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Result", Width: 9},
			{Title: "Stars", Width: 6},
			{Title: "Got", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 14},
		}
		for _, r := range m.runs {
			result := "lost"
			stars := "-"
			if r.Outcome == storage.OutcomeVictory {
				result = "won"
				stars = starString(r.Stars, progress.MaxStars)
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", r.Level),
				result,
				stars,
				fmt.Sprintf("%d/%d", r.Collected, r.Target),
				fmt.Sprintf("%.1fs", r.Duration.Seconds()),
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
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

	m.table = t
}

func (m *HistoryModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.rebuild()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.byLevel = !m.byLevel
			m.rebuild()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history viewer.
func (m HistoryModel) View() string {
	var b strings.Builder

	title := "RUN HISTORY"
	if m.byLevel {
		title = "LEVEL STATS"
	}
	if m.player != "" {
		title += " - " + m.player
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case m.loadErr != nil:
		content = warnStyle.Render("Could not read history:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		content = dimStyle.Italic(true).Padding(2, 4).Render("No runs recorded yet.\nFinish a level to start your history!")
	default:
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(content)))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if the user wants to leave the viewer.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
