package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

// sidePanelMinWidth is the extra width needed to show lanes beside the board.
const sidePanelMinWidth = 36

// GameOptions configures one played level.
type GameOptions struct {
	Level    levels.Level
	LevelNum int // 1-based position in the catalog, stored with the run
	Rules    core.Rules
	Gen      core.GenParams
	Seed     uint64 // 0 picks a time-based seed
	Player   string
	Store    *storage.Store // May be nil
	Logger   *log.Logger    // May be nil
	Theme    Theme
}

// GameModel is the Bubble Tea model for playing a PixelFill level.
type GameModel struct {
	id       uint64
	session  *core.Session
	opts     GameOptions
	keys     GameKeyMap
	help     help.Model
	frame    time.Duration
	notice   string
	saved    bool
	width    int
	height   int
	quitting bool
	back     bool
}

// NewGameModel creates a model with a fresh session for the level.
func NewGameModel(opts GameOptions) (GameModel, error) {
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	session, err := core.NewSession(opts.Level.Level, opts.Rules, opts.Gen, core.NewRNG(opts.Seed))
	if err != nil {
		return GameModel{}, fmt.Errorf("level %s: %w", opts.Level.ID, err)
	}

	h := help.New()
	h.ShowAll = false

	return GameModel{
		id:      nextGameID(),
		session: session,
		opts:    opts,
		keys:    DefaultGameKeyMap(len(session.State().Queues), session.State().Holding.Capacity()),
		help:    h,
		frame:   frameInterval(opts.Rules.TickDuration),
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.frame, m.id)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Game != m.id {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Restart):
		if !m.session.State().IsPlaying() {
			m.restart()
		}

	case key.Matches(msg, m.keys.Lane):
		if lane, ok := m.keys.LaneIndex(msg); ok {
			m.session.DeployFromQueue(lane)
		}

	case key.Matches(msg, m.keys.Held):
		if slot, ok := m.keys.SlotIndex(msg); ok {
			if sh := m.session.State().Holding.Get(slot); sh != nil {
				m.session.DeployFromHolding(sh.ID)
			}
		}
	}

	return m, nil
}

// handleTick pumps the session clock and records the run once it ends.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	before := m.session.State()
	if applied := m.session.Pump(now); applied > 0 {
		after := m.session.State()
		if names := exposedSince(before, after); len(names) > 0 {
			m.notice = "Revealed: " + strings.Join(names, ", ")
		}
		if m.opts.Logger != nil {
			m.opts.Logger.Debug("ticks applied",
				"level", m.opts.Level.ID,
				"ticks", applied,
				"tick", after.Stats.ElapsedTicks,
				"solid", after.Stats.CellsSolidified,
			)
		}
	}

	if !m.session.State().IsPlaying() && !m.saved {
		m.saveRun()
	}

	return m, tickCmd(m.frame, m.id)
}

// restart deals a new game on the same level.
func (m *GameModel) restart() {
	if err := m.session.Restart(); err != nil {
		m.notice = "Restart failed: " + err.Error()
		return
	}
	m.saved = false
	m.notice = ""
}

// saveRun stores the finished run. Storage errors are logged, not fatal.
func (m *GameModel) saveRun() {
	m.saved = true
	st := m.session.State()
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run finished",
			"level", m.opts.Level.ID,
			"player", m.opts.Player,
			"status", st.Status,
			"deployed", st.Stats.ShootersDeployed,
			"ticks", st.Stats.ElapsedTicks,
		)
	}
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveRun(RunRecord(st, m.opts.LevelNum, m.opts.Player, m.opts.Seed)); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
	}
}

// RunRecord converts a finished state into a storable run.
func RunRecord(st *core.State, levelNum int, player string, seed uint64) storage.Run {
	status := storage.StatusLost
	if st.Status == core.StatusWon {
		status = storage.StatusWon
	}
	return storage.Run{
		LevelID:          st.Level().ID,
		LevelNum:         levelNum,
		Player:           player,
		Status:           status,
		Seed:             seed,
		ShootersDeployed: st.Stats.ShootersDeployed,
		LapsCompleted:    st.Stats.LapsCompleted,
		ElapsedTicks:     st.Stats.ElapsedTicks,
		Elapsed:          st.Stats.Elapsed,
		CellsSolidified:  st.Stats.CellsSolidified,
		TotalCells:       st.Stats.TotalCells,
	}
}

// exposedSince returns the names of containers exposed in after but not in before.
func exposedSince(before, after *core.State) []string {
	var names []string
	for _, id := range after.ExposedContainers {
		if !before.IsExposed(id) {
			names = append(names, after.Graph().Name(id))
		}
	}
	return names
}

// View renders the current state.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.session.State()
	t := m.opts.Theme

	var b strings.Builder
	b.WriteString(RenderHUD(st, t))
	b.WriteString("\n\n")

	board := RenderBoard(st, t)
	panel := m.renderPanel(st)
	if m.width == 0 || m.width >= lipgloss.Width(board)+sidePanelMinWidth {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "   ", panel))
	} else {
		b.WriteString(board)
		b.WriteString("\n\n")
		b.WriteString(panel)
	}
	b.WriteString("\n\n")

	if overlay := m.renderOverlay(st); overlay != "" {
		b.WriteString(overlay)
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m GameModel) renderPanel(st *core.State) string {
	t := m.opts.Theme
	var b strings.Builder
	b.WriteString(t.PanelLabel.Render("Lanes"))
	b.WriteString("\n")
	b.WriteString(RenderLanes(st, m.keys, t))
	b.WriteString("\n\n")
	b.WriteString(t.PanelLabel.Render(fmt.Sprintf("Holding %d/%d", st.Holding.Count(), st.Holding.Capacity())))
	b.WriteString("\n")
	b.WriteString(RenderHolding(st, m.keys, t))
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(t.Notice.Render(m.notice))
	}
	return b.String()
}

func (m GameModel) renderOverlay(st *core.State) string {
	t := m.opts.Theme
	summary := fmt.Sprintf("%d shooters deployed, %d laps, %d ticks",
		st.Stats.ShootersDeployed, st.Stats.LapsCompleted, st.Stats.ElapsedTicks)
	switch st.Status {
	case core.StatusWon:
		return t.OverlayWon.Render("Picture complete!\n" + t.OverlayText.Render(summary) + "\n" +
			t.OverlayText.Render("r: play again  esc: levels"))
	case core.StatusLost:
		return t.OverlayLost.Render("Holding overflow!\n" + t.OverlayText.Render(summary) + "\n" +
			t.OverlayText.Render("r: play again  esc: levels"))
	default:
		return ""
	}
}

// State returns the current snapshot.
func (m GameModel) State() *core.State {
	return m.session.State()
}

// BackToMenu returns true if the player asked for the level picker.
func (m GameModel) BackToMenu() bool {
	return m.back
}

// IsQuitting returns true if the player wants to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Saved reports whether the finished run has been recorded.
func (m GameModel) Saved() bool {
	return m.saved
}
