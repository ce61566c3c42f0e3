package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

// PickerModel is the level picker.
type PickerModel struct {
	levels       []levels.Level
	best         map[string]*storage.Run
	highest      int
	cursor       int
	scrollOffset int
	width        int
	height       int
	keys         MenuKeyMap
	help         help.Model
	theme        Theme
	selected     *levels.Level
	wantsScores  bool
	quitting     bool
}

// NewPickerModel creates a level picker. Best runs are read from store when
// it is not nil.
func NewPickerModel(cat *levels.Catalog, store *storage.Store, theme Theme, width, height int) PickerModel {
	m := PickerModel{
		levels: cat.All(),
		best:   make(map[string]*storage.Run),
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		theme:  theme,
	}
	if store != nil {
		for _, lvl := range m.levels {
			if run, err := store.BestRun(lvl.ID); err == nil && run != nil {
				m.best[lvl.ID] = run
			}
		}
		if h, err := store.HighestLevel(); err == nil {
			m.highest = h
		}
	}
	// Start on the first level not yet cleared.
	m.cursor = min(m.highest, max(len(m.levels)-1, 0))
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.levels) > 0 {
			lvl := m.levels[m.cursor]
			m.selected = &lvl
		}
	case key.Matches(msg, m.keys.Scores):
		m.wantsScores = true
	}
	return m, nil
}

// visibleItems is how many level rows fit between header and footer.
func (m PickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("P I X E L F I L L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.levels))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		lvl := m.levels[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %-16s", cursor, i+1, lvl.Name))
		line += " " + m.theme.MenuDescription.Render(m.bestLabel(lvl.ID))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m PickerModel) bestLabel(id string) string {
	run, ok := m.best[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf("best: %d shooters", run.ShootersDeployed)
}

// Selected returns the chosen level, or nil if still choosing.
func (m PickerModel) Selected() *levels.Level {
	return m.selected
}

// WantsScores returns true if the player asked for the best runs table.
func (m PickerModel) WantsScores() bool {
	return m.wantsScores
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within the given width. Styled text is measured
// by its printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
