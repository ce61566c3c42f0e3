package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

// scoreboardRuns caps the runs loaded per level.
const scoreboardRuns = 100

// ScoreboardKeyMap moves through the run table and between levels.
type ScoreboardKeyMap struct {
	Scroll    MenuKeyMap
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevLevel, k.NextLevel, k.Back, k.Scroll.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll.Up, k.Scroll.Down},
		{k.PrevLevel, k.NextLevel},
		{k.Back, k.Scroll.Quit},
	}
}

// DefaultScoreboardKeyMap reuses the menu's scroll and quit keys.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: DefaultMenuKeyMap(),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "levels"),
		),
	}
}

// ScoreboardModel shows the winning runs of one level at a time.
type ScoreboardModel struct {
	levels    []levels.Level
	level     int
	store     *storage.Store
	logger    *log.Logger
	theme     Theme
	runs      table.Model
	count     int
	stats     *storage.LevelStats
	loadErr   error
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on startID, or on the first level
// when startID is unknown. The logger may be nil.
func NewScoreboardModel(cat *levels.Catalog, store *storage.Store, logger *log.Logger, theme Theme, startID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: cat.All(),
		store:  store,
		logger: logger,
		theme:  theme,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	if idx := cat.Index(startID); idx > 0 {
		m.level = idx - 1
	}
	m.runs = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Shooters", Width: 9},
			{Title: "Laps", Width: 5},
			{Title: "Ticks", Width: 7},
			{Title: "Player", Width: 12},
			{Title: "Date", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.PanelDim.GetForeground()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = m.theme.MenuItemActive
	t.SetStyles(styles)
	return t
}

// reload reads the current level's runs and statistics from the store.
// A failed read is kept in loadErr and shown instead of the table.
func (m *ScoreboardModel) reload() {
	var runs []storage.Run
	m.stats = nil
	m.loadErr = nil
	if m.store != nil && len(m.levels) > 0 {
		id := m.levels[m.level].ID
		var err error
		if runs, err = m.store.TopRuns(id, scoreboardRuns); err == nil {
			m.stats, err = m.store.GetLevelStats(id)
		}
		if err != nil {
			runs = nil
			m.loadErr = err
			if m.logger != nil {
				m.logger.Error("cannot load runs", "level", id, "error", err)
			}
		}
	}

	rows := make([]table.Row, 0, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.ShootersDeployed),
			strconv.Itoa(r.LapsCompleted),
			strconv.FormatUint(r.ElapsedTicks, 10),
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.count = len(rows)
	m.runs.SetRows(rows)
	m.runs.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.levels); n > 0 {
		m.level = (m.level + delta + n) % n
		m.reload()
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Scroll.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.NextLevel):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.runs = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.runs, cmd = m.runs.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST RUNS"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("BEST RUNS · %d. %s", m.level+1, m.levels[m.level].Name)
	}

	var b strings.Builder
	b.WriteString(m.theme.MenuTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	body := m.runs.View()
	switch {
	case m.loadErr != nil:
		body = lipgloss.NewStyle().Foreground(m.theme.OverlayLost.GetForeground()).Padding(1, 4).Render("Could not load runs:\n" + m.loadErr.Error())
	case m.count == 0:
		body = m.theme.MenuDescription.Italic(true).Padding(1, 4).
			Render("No winning runs yet.\nClear the level to set a record!")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.PanelDim.GetForeground()).
		Padding(0, 1).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Plays > 0 {
		line := fmt.Sprintf("played %d · won %d · last %s",
			m.stats.Plays, m.stats.Wins, m.stats.LastPlayed.Format("Jan 02 15:04"))
		b.WriteString(m.theme.MenuDescription.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.PanelDim.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack reports whether the player asked to return to the picker.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit from the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
