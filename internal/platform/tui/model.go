package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/upball/internal/app"
	"github.com/vovakirdan/upball/internal/core"
	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/progress"
)

// Menu entries.
const (
	menuPlay = iota
	menuLevels
	menuHistory
	menuQuit
)

var menuLabels = map[int]string{
	menuPlay:    "Play",
	menuLevels:  "Select Level",
	menuHistory: "History",
	menuQuit:    "Quit",
}

// Level select grid.
const levelColumns = 4

// Frames a collected-star flash stays on the HUD.
const starFlashFrames = 20

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// eventFeed keeps what the screens need from machine events. It is shared
// by every copy of the Model.
type eventFeed struct {
	victory   game.Event
	starFlash int
}

func (f *eventFeed) HandleEvent(e game.Event) {
	switch e.Kind {
	case game.EventVictory:
		f.victory = e
	case game.EventStarCollected:
		f.starFlash = starFlashFrames
	case game.EventLevelChanged:
		f.starFlash = 0
	}
}

// Model is the Bubble Tea model of one player's game.
type Model struct {
	app     *app.App
	history HistoryReader
	player  string
	keys    KeyMap
	help    help.Model
	screen  *core.Screen
	config  core.RuntimeConfig
	feed    *eventFeed

	menuItems   []int
	menuCursor  int
	levelCursor int
	historyView *HistoryModel
	quitting    bool
}

// NewModel creates the model for a. history may be nil.
func NewModel(a *app.App, history HistoryReader, player string, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalize()

	feed := &eventFeed{}
	a.Subscribe(feed)

	items := []int{menuPlay, menuLevels}
	if history != nil {
		items = append(items, menuHistory)
	}
	items = append(items, menuQuit)

	return Model{
		app:         a,
		history:     history,
		player:      player,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		screen:      core.NewScreen(cfg.ScreenW, canvasHeight(cfg.ScreenH)),
		config:      cfg,
		feed:        feed,
		menuItems:   items,
		levelCursor: a.Machine.Store().HighestUnlocked() - 1,
	}
}

// canvasHeight leaves a row for the HUD and one for the help footer.
func canvasHeight(h int) int {
	if h < 3 {
		return 1
	}
	return h - 2
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, canvasHeight(msg.Height))
		m.help.Width = msg.Width
		if m.historyView != nil {
			m.historyView.resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		m.app.Step(1 / float64(m.config.FPS))
		if m.feed.starFlash > 0 {
			m.feed.starFlash--
		}
		return m, tickCmd(m.config.FPS)

	case tea.KeyMsg:
		if m.historyView != nil {
			return m.updateHistory(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hv, cmd := m.historyView.Update(msg)
	if hv.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if hv.IsGoingBack() {
		m.historyView = nil
		return m, nil
	}
	m.historyView = &hv
	return m, cmd
}

// handleKey dispatches a key press according to the machine state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	mc := m.app.Machine
	switch mc.State() {
	case game.StateMenu:
		return m.handleMenu(action)

	case game.StateLevelSelect:
		m.handleLevelSelect(action)

	case game.StatePlaying:
		switch action {
		case core.ActionLeft:
			m.app.Nudge(-1)
		case core.ActionRight:
			m.app.Nudge(1)
		case core.ActionPause, core.ActionBack:
			mc.PauseGame()
		}

	case game.StatePaused:
		switch action {
		case core.ActionPause, core.ActionConfirm:
			mc.ResumeGame()
		case core.ActionRestart:
			mc.RestartLevel()
		case core.ActionBack:
			m.openLevelSelect()
		}

	case game.StateGameOver:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			mc.RestartLevel()
		case core.ActionBack:
			m.openLevelSelect()
		}

	case game.StateVictory:
		switch action {
		case core.ActionNext, core.ActionConfirm:
			mc.NextLevel()
			if mc.State() == game.StateLevelSelect {
				m.levelCursor = mc.Level() - 1
			}
		case core.ActionRestart:
			mc.RestartLevel()
		case core.ActionBack:
			m.openLevelSelect()
		}
	}
	return m, nil
}

func (m Model) handleMenu(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionUp:
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case core.ActionDown:
		if m.menuCursor < len(m.menuItems)-1 {
			m.menuCursor++
		}
	case core.ActionConfirm:
		switch m.menuItems[m.menuCursor] {
		case menuPlay:
			m.app.Machine.StartLevel(m.app.Machine.Store().HighestUnlocked())
		case menuLevels:
			m.openLevelSelect()
		case menuHistory:
			hv := NewHistoryModel(m.history, m.player, m.config.ScreenW, m.config.ScreenH)
			m.historyView = &hv
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) openLevelSelect() {
	m.levelCursor = m.app.Machine.Level() - 1
	m.app.Machine.GoToLevelSelect()
}

func (m *Model) handleLevelSelect(action core.Action) {
	switch action {
	case core.ActionLeft:
		m.levelCursor--
	case core.ActionRight:
		m.levelCursor++
	case core.ActionUp:
		m.levelCursor -= levelColumns
	case core.ActionDown:
		m.levelCursor += levelColumns
	case core.ActionConfirm:
		// Locked levels are ignored by the machine.
		m.app.Machine.StartLevel(m.levelCursor + 1)
	case core.ActionBack:
		m.app.Machine.GoToMenu()
	}
	m.levelCursor = core.Clamp(m.levelCursor, 0, progress.LevelCount-1)
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.historyView != nil {
		return m.historyView.View()
	}

	state := m.app.Machine.State()
	var body string
	switch state {
	case game.StateMenu:
		body = m.viewMenu()
	case game.StateLevelSelect:
		body = m.viewLevelSelect()
	default:
		body = m.viewHUD() + "\n" + m.viewField(state)
	}
	return body + "\n" + dimStyle.Render(m.help.View(stateHelp{keys: m.keys, state: state}))
}

func (m Model) viewMenu() string {
	var b strings.Builder
	w := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("U P B A L L"), w))
	b.WriteString("\n\n")

	store := m.app.Machine.Store()
	stars := fmt.Sprintf("★ %d/%d   levels %d/%d", store.TotalStars(), progress.LevelCount*progress.MaxStars,
		store.HighestUnlocked(), progress.LevelCount)
	b.WriteString(centerText(starStyle.Render(stars), w))
	b.WriteString("\n\n")

	for i, item := range m.menuItems {
		label := menuLabels[item]
		if i == m.menuCursor {
			label = cursorStyle.Render("> " + label + " ")
		} else {
			label = "  " + label + " "
		}
		b.WriteString(centerText(label, w))
		b.WriteString("\n")
	}

	if err := m.app.LoadError(); err != nil {
		b.WriteString("\n")
		b.WriteString(centerText(warnStyle.Render("Save file unreadable, starting fresh"), w))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewLevelSelect() string {
	store := m.app.Machine.Store()

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(12).
		Align(lipgloss.Center)
	selected := card.BorderForeground(lipgloss.Color("229"))
	locked := card.Foreground(lipgloss.Color("241"))

	var rows []string
	for start := 0; start < progress.LevelCount; start += levelColumns {
		var cards []string
		for i := start; i < start+levelColumns && i < progress.LevelCount; i++ {
			rec, _ := store.Record(i + 1)
			style := card
			var content string
			if rec.Unlocked {
				content = fmt.Sprintf("Level %d\n%s\n%3.0f%%", rec.Level, starString(rec.Stars, progress.MaxStars), rec.BestPercentage*100)
			} else {
				style = locked
				content = fmt.Sprintf("Level %d\nLOCKED\n ", rec.Level)
			}
			if i == m.levelCursor {
				style = selected
				if !rec.Unlocked {
					style = style.Foreground(lipgloss.Color("241"))
				}
			}
			cards = append(cards, style.Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Center, rows...)
	title := titleStyle.Render("SELECT LEVEL")
	return lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, "", title, "", grid))
}

func (m Model) viewHUD() string {
	mc := m.app.Machine
	hud := fmt.Sprintf("Level %d   ★ %d/%d", mc.Level(), mc.StarsCollected(), mc.StarsTarget())
	if rec, ok := mc.LevelRecord(mc.Level()); ok && rec.Stars > 0 {
		hud += "   best " + starString(rec.Stars, progress.MaxStars)
	}
	line := hudStyle.Render(hud)
	if m.feed.starFlash > 0 {
		line += "  " + starStyle.Render("+1 ★")
	}
	return line
}

func (m Model) viewField(state game.State) string {
	m.screen.Clear()
	area := drawField(m.screen, m.app.Field)

	mc := m.app.Machine
	switch state {
	case game.StatePaused:
		drawOverlay(m.screen, area,
			[]string{"PAUSED", "", "p: resume  r: restart", "esc: level select"},
			[]core.Color{core.ColorBrightYellow})

	case game.StateGameOver:
		drawOverlay(m.screen, area,
			[]string{"GAME OVER", "", fmt.Sprintf("★ %d/%d", mc.StarsCollected(), mc.StarsTarget()), "", "r: retry  esc: levels"},
			[]core.Color{core.ColorRed})

	case game.StateVictory:
		v := m.feed.victory
		lines := []string{
			fmt.Sprintf("Level %d Complete!", v.Level),
			starString(v.Stars, progress.MaxStars),
			progress.Tier(v.Stars),
			fmt.Sprintf("Collected %d/%d (%.0f%%)", v.Collected, v.Target, v.Percentage*100),
			"",
			"n: next  r: retry  esc: levels",
		}
		colors := []core.Color{core.ColorGreen, core.ColorBrightYellow, core.ColorBrightYellow}
		if mc.LastSaveError() != nil {
			lines = append(lines, "progress not saved")
		}
		drawOverlay(m.screen, area, lines, colors)
	}
	return RenderScreen(m.screen)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// Run starts the Bubble Tea program for a.
func Run(a *app.App, history HistoryReader, player string, cfg core.RuntimeConfig) error {
	model := NewModel(a, history, player, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
