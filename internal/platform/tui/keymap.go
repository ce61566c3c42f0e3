package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// holdingKeys are the home row keys used to deploy held shooters, one per slot.
var holdingKeys = []string{"a", "s", "d", "f", "g", "h", "j", "k", "l"}

// GameKeyMap defines the key bindings during play.
type GameKeyMap struct {
	Lane    key.Binding // One key per lane, "1" is lane 0
	Held    key.Binding // One key per holding slot
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lane, k.Held, k.Back, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Lane, k.Held},
		{k.Restart, k.Back, k.Quit, k.Help},
	}
}

// DefaultGameKeyMap returns bindings sized for the given number of lanes
// and holding slots. Lanes beyond 9 and slots beyond len(holdingKeys) have
// no key.
func DefaultGameKeyMap(lanes, slots int) GameKeyMap {
	lanes = min(max(lanes, 1), 9)
	slots = min(max(slots, 1), len(holdingKeys))

	laneKeys := make([]string, lanes)
	for i := range laneKeys {
		laneKeys[i] = strconv.Itoa(i + 1)
	}
	laneHelp := "1"
	if lanes > 1 {
		laneHelp = "1-" + laneKeys[lanes-1]
	}
	heldHelp := holdingKeys[0]
	if slots > 1 {
		heldHelp = holdingKeys[0] + "-" + holdingKeys[slots-1]
	}

	return GameKeyMap{
		Lane: key.NewBinding(
			key.WithKeys(laneKeys...),
			key.WithHelp(laneHelp, "deploy lane"),
		),
		Held: key.NewBinding(
			key.WithKeys(holdingKeys[:slots]...),
			key.WithHelp(heldHelp, "deploy held"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "levels"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// LaneIndex returns the lane a key deploys from.
func (k GameKeyMap) LaneIndex(msg tea.KeyMsg) (int, bool) {
	return keyIndex(k.Lane, msg)
}

// SlotIndex returns the holding slot a key deploys from.
func (k GameKeyMap) SlotIndex(msg tea.KeyMsg) (int, bool) {
	return keyIndex(k.Held, msg)
}

// LaneKey returns the key label of a lane, or "" if it has none.
func (k GameKeyMap) LaneKey(lane int) string {
	return keyAt(k.Lane, lane)
}

// SlotKey returns the key label of a holding slot, or "" if it has none.
func (k GameKeyMap) SlotKey(slot int) string {
	return keyAt(k.Held, slot)
}

func keyIndex(b key.Binding, msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	for i, k := range b.Keys() {
		if k == s {
			return i, true
		}
	}
	return 0, false
}

func keyAt(b key.Binding, i int) string {
	keys := b.Keys()
	if i < 0 || i >= len(keys) {
		return ""
	}
	return keys[i]
}

// MenuKeyMap defines the key bindings of the level picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab", "t"),
			key.WithHelp("tab", "best runs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
