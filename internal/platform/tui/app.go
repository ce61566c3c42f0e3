package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

// AppOptions configures a PixelFill front-end session.
type AppOptions struct {
	Catalog *levels.Catalog
	Rules   core.Rules
	Gen     core.GenParams
	Seed    uint64 // Used for the first game only; 0 picks time-based seeds
	Player  string
	Store   *storage.Store // May be nil
	Logger  *log.Logger    // May be nil
	Theme   Theme
	StartID string // Level to start in; empty opens the picker
	Width   int
	Height  int
}

type screen int

const (
	screenPicker screen = iota
	screenGame
	screenScores
)

// AppModel manages the full session flow: picker -> game -> picker.
// It is the top-level model for both local play and SSH sessions.
type AppModel struct {
	opts     AppOptions
	screen   screen
	picker   PickerModel
	game     GameModel
	scores   ScoreboardModel
	lastID   string
	err      string
	quitting bool
}

// NewAppModel creates the top-level model.
func NewAppModel(opts AppOptions) AppModel {
	m := AppModel{opts: opts}
	m.picker = NewPickerModel(opts.Catalog, opts.Store, opts.Theme, opts.Width, opts.Height)
	if opts.StartID != "" {
		if lvl, ok := opts.Catalog.Get(opts.StartID); ok {
			m.startGame(lvl)
		}
	}
	return m
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.picker.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if pm, ok := next.(PickerModel); ok {
		m.picker = pm
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsScores():
		startID := m.lastID
		if sel := m.picker.Selected(); sel != nil {
			startID = sel.ID
		}
		m.scores = NewScoreboardModel(m.opts.Catalog, m.opts.Store, m.opts.Logger, m.opts.Theme, startID, m.opts.Width, m.opts.Height)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.picker.Selected() != nil:
		lvl := *m.picker.Selected()
		m.startGame(lvl)
		if m.screen != screenGame {
			m.picker = m.newPicker()
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.screen = screenPicker
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenPicker
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}
	return m, cmd
}

// startGame switches to the game screen. On error the picker stays and the
// error is shown.
func (m *AppModel) startGame(lvl levels.Level) {
	seed := m.opts.Seed
	m.opts.Seed = 0
	game, err := NewGameModel(GameOptions{
		Level:    lvl,
		LevelNum: m.opts.Catalog.Index(lvl.ID),
		Rules:    m.opts.Rules,
		Gen:      m.opts.Gen,
		Seed:     seed,
		Player:   m.opts.Player,
		Store:    m.opts.Store,
		Logger:   m.opts.Logger,
		Theme:    m.opts.Theme,
	})
	if err != nil {
		m.err = err.Error()
		if m.opts.Logger != nil {
			m.opts.Logger.Error("cannot start level", "level", lvl.ID, "error", err)
		}
		return
	}
	game.width = m.opts.Width
	game.height = m.opts.Height
	game.help.Width = m.opts.Width
	m.game = game
	m.lastID = lvl.ID
	m.err = ""
	m.screen = screenGame
}

func (m AppModel) newPicker() PickerModel {
	p := NewPickerModel(m.opts.Catalog, m.opts.Store, m.opts.Theme, m.opts.Width, m.opts.Height)
	if idx := m.opts.Catalog.Index(m.lastID); idx > 0 {
		p.cursor = idx - 1
		p.updateScroll()
	}
	return p
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		v := m.picker.View()
		if m.err != "" {
			v += "\n" + m.opts.Theme.OverlayLost.Render(m.err)
		}
		return v
	}
}

// RunApp runs the front-end on the local terminal until the player quits.
func RunApp(opts AppOptions) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
