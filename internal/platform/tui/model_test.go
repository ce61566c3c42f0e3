package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// dotLevel is a single gold cell; one shooter with one ammo clears it.
func dotLevel() levels.Level {
	return levels.Level{Level: &core.Level{
		ID:       "dot",
		Name:     "Dot",
		Size:     1,
		PixelMap: [][]core.LayerID{{1}},
		Colors:   map[core.LayerID]core.ColorConfig{1: {Layer: 1, Name: "gold", Hex: "#fbbf24"}},
		Capacity: 1,
	}}
}

func newTestGame(t *testing.T, store *storage.Store) GameModel {
	t.Helper()
	gen := core.DefaultGenParams()
	gen.Lanes = 1
	m, err := NewGameModel(GameOptions{
		Level:    dotLevel(),
		LevelNum: 1,
		Rules:    core.DefaultRules(),
		Gen:      gen,
		Seed:     7,
		Player:   "tester",
		Store:    store,
		Theme:    DefaultTheme(),
	})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameKeyMap(t *testing.T) {
	keys := DefaultGameKeyMap(3, 5)

	tests := []struct {
		key    string
		lane   int
		laneOK bool
		slot   int
		slotOK bool
	}{
		{"1", 0, true, 0, false},
		{"3", 2, true, 0, false},
		{"4", 0, false, 0, false},
		{"a", 0, false, 0, true},
		{"g", 0, false, 4, true},
		{"h", 0, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			lane, ok := keys.LaneIndex(keyMsg(tt.key))
			if ok != tt.laneOK || (ok && lane != tt.lane) {
				t.Errorf("LaneIndex = %d, %v; want %d, %v", lane, ok, tt.lane, tt.laneOK)
			}
			slot, ok := keys.SlotIndex(keyMsg(tt.key))
			if ok != tt.slotOK || (ok && slot != tt.slot) {
				t.Errorf("SlotIndex = %d, %v; want %d, %v", slot, ok, tt.slot, tt.slotOK)
			}
		})
	}

	wide := DefaultGameKeyMap(12, 20)
	if got := len(wide.Lane.Keys()); got != 9 {
		t.Errorf("lane keys: got %d, want 9", got)
	}
	if got := len(wide.Held.Keys()); got != len(holdingKeys) {
		t.Errorf("holding keys: got %d, want %d", got, len(holdingKeys))
	}
	if keys.LaneKey(0) != "1" || keys.SlotKey(5) != "" {
		t.Errorf("unexpected key labels %q %q", keys.LaneKey(0), keys.SlotKey(5))
	}
}

func TestGameModelPlaysAndSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	m := newTestGame(t, store)
	m, _ = update(t, m, keyMsg("1"))
	if got := len(m.State().Conveyor); got != 1 {
		t.Fatalf("conveyor: got %d shooters, want 1", got)
	}

	t0 := time.Unix(1000, 0)
	m, cmd := update(t, m, TickMsg{At: t0, Game: m.id})
	if cmd == nil {
		t.Fatal("expected the next frame to be scheduled")
	}
	if m.State().Stats.ElapsedTicks != 0 {
		t.Fatalf("first frame only starts the clock")
	}

	m, _ = update(t, m, TickMsg{At: t0.Add(100 * time.Millisecond), Game: m.id})
	st := m.State()
	if st.Status != core.StatusWon {
		t.Fatalf("status: got %s, want won", st.Status)
	}
	if !m.Saved() {
		t.Fatal("finished run should be saved")
	}

	best, err := store.BestRun("dot")
	if err != nil {
		t.Fatalf("BestRun failed: %v", err)
	}
	if best == nil || best.ShootersDeployed != 1 || best.Player != "tester" || best.Seed != 7 {
		t.Errorf("unexpected best run %+v", best)
	}
	if h, _ := store.HighestLevel(); h != 1 {
		t.Errorf("highest level: got %d, want 1", h)
	}

	if !strings.Contains(m.View(), "Picture complete!") {
		t.Errorf("view should announce the win")
	}
}

func TestGameModelRestartAfterEnd(t *testing.T) {
	m := newTestGame(t, nil)

	// Restart is ignored while playing.
	m, _ = update(t, m, keyMsg("r"))
	if m.State().Status != core.StatusPlaying || m.State().QueueLen(0) != 1 {
		t.Fatalf("restart while playing should be a no-op")
	}

	m, _ = update(t, m, keyMsg("1"))
	t0 := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg{At: t0, Game: m.id})
	m, _ = update(t, m, TickMsg{At: t0.Add(100 * time.Millisecond), Game: m.id})
	if m.State().Status != core.StatusWon || !m.Saved() {
		t.Fatalf("expected a finished run")
	}

	m, _ = update(t, m, keyMsg("r"))
	if m.State().Status != core.StatusPlaying {
		t.Errorf("status after restart: got %s", m.State().Status)
	}
	if m.State().QueueLen(0) != 1 || m.Saved() {
		t.Errorf("restart should deal a fresh game")
	}
}

func TestGameModelDropsStaleFrames(t *testing.T) {
	m := newTestGame(t, nil)
	_, cmd := update(t, m, TickMsg{At: time.Now(), Game: m.id + 1})
	if cmd != nil {
		t.Error("a frame of another game must not schedule more frames")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := newTestGame(t, nil)
	m, _ = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("esc should go back to the picker")
	}

	m = newTestGame(t, nil)
	m, cmd := update(t, m, keyMsg("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestExposedSinceNamesNewContainers(t *testing.T) {
	lvl := &core.Level{
		ID:           "gated",
		Name:         "Gated",
		Size:         2,
		PixelMap:     [][]core.LayerID{{1, 2}, {0, 0}},
		ContainerMap: [][]core.ContainerID{{1, 2}, {0, 0}},
		Containers: []core.ContainerDef{
			{ID: 1, Layer: 1, Name: "Gold"},
			{ID: 2, Layer: 2, Name: "Purple"},
		},
		Deps: map[core.ContainerID][]core.ContainerID{2: {1}},
		Colors: map[core.LayerID]core.ColorConfig{
			1: {Layer: 1, Name: "gold"},
			2: {Layer: 2, Name: "purple"},
		},
		Capacity: 1,
	}
	before, err := core.NewState(lvl, core.DefaultRules(), [][]core.Shooter{{
		{ID: "s0", Color: "gold", Layer: 1, Ammo: 1},
	}})
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	// The shooter reaches the gold row on its second tick.
	after := before.DeployFromQueue(0)
	for i := 0; i < 4; i++ {
		after = after.Tick()
	}

	names := exposedSince(before, after)
	if len(names) != 1 || names[0] != "Purple" {
		t.Errorf("got %v, want [Purple]", names)
	}
	if got := exposedSince(after, after); len(got) != 0 {
		t.Errorf("no change should name nothing, got %v", got)
	}
}

func TestRenderBoardAndPanels(t *testing.T) {
	m := newTestGame(t, nil)
	st := m.State()

	board := RenderBoard(st, DefaultTheme())
	if lines := strings.Split(board, "\n"); len(lines) != 3 {
		t.Fatalf("board of size 1 should have 3 lines, got %d", len(lines))
	}
	if !strings.Contains(board, glyphUnfilled) {
		t.Errorf("board should show the open cell:\n%s", board)
	}

	lanes := RenderLanes(st, m.keys, DefaultTheme())
	if !strings.Contains(lanes, "[1]") || !strings.Contains(lanes, "●1") {
		t.Errorf("unexpected lanes %q", lanes)
	}
	holding := RenderHolding(st, m.keys, DefaultTheme())
	if strings.Count(holding, "--") != st.Holding.Capacity() {
		t.Errorf("all holding slots should be empty: %q", holding)
	}
}

func TestPickerSelectsLevel(t *testing.T) {
	cat, err := levels.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	all := cat.All()
	if len(all) < 2 {
		t.Fatalf("need two builtin levels, got %d", len(all))
	}

	p := NewPickerModel(cat, nil, DefaultTheme(), 80, 24)
	next, _ := p.Update(keyMsg("j"))
	p = next.(PickerModel)
	next, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(PickerModel)

	sel := p.Selected()
	if sel == nil || sel.ID != all[1].ID {
		t.Fatalf("selected %v, want %s", sel, all[1].ID)
	}
}

func TestAppStartsInLevelAndReturnsToPicker(t *testing.T) {
	cat, err := levels.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	app := NewAppModel(AppOptions{
		Catalog: cat,
		Rules:   core.DefaultRules(),
		Gen:     core.DefaultGenParams(),
		Seed:    3,
		Theme:   DefaultTheme(),
		StartID: "02-gem",
		Width:   100,
		Height:  40,
	})
	if app.screen != screenGame {
		t.Fatalf("expected to start in the game")
	}
	if app.Init() == nil {
		t.Fatal("game should start its frame loop")
	}

	next, _ := app.Update(keyMsg("esc"))
	app = next.(AppModel)
	if app.screen != screenPicker {
		t.Fatalf("esc should return to the picker")
	}
	if want := cat.Index("02-gem") - 1; app.picker.cursor != want {
		t.Errorf("picker cursor: got %d, want %d", app.picker.cursor, want)
	}
}

func TestScoreboardShowsRunsPerLevel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	cat, err := levels.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	first := cat.All()[0]
	for _, status := range []string{storage.StatusWon, storage.StatusLost} {
		run := storage.Run{LevelID: first.ID, LevelNum: 1, Player: "ace", Status: status, ShootersDeployed: 9}
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	sb := NewScoreboardModel(cat, store, nil, DefaultTheme(), first.ID, 100, 40)
	view := sb.View()
	for _, want := range []string{first.Name, "ace", "played 2 · won 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := sb.Update(keyMsg("l"))
	sb = next.(ScoreboardModel)
	if !strings.Contains(sb.View(), "No winning runs yet.") {
		t.Errorf("second level should have no runs")
	}

	next, _ = sb.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should return to the picker")
	}
}

func TestScoreboardShowsStoreErrors(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	cat, err := levels.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	store.Close()

	sb := NewScoreboardModel(cat, store, nil, DefaultTheme(), "", 100, 40)
	view := sb.View()
	if !strings.Contains(view, "Could not load runs") {
		t.Errorf("a failed read should be shown:\n%s", view)
	}
	if strings.Contains(view, "No winning runs yet.") {
		t.Errorf("a failed read must not look like an empty level")
	}
}

func TestGameKeyMapFollowsHoldingZone(t *testing.T) {
	gen := core.DefaultGenParams()
	gen.Lanes = 1

	rules := core.DefaultRules()
	rules.HoldingSlots = 2
	m, err := NewGameModel(GameOptions{Level: dotLevel(), Rules: rules, Gen: gen, Seed: 7, Theme: DefaultTheme()})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}
	if got := m.State().Holding.Capacity(); got != 2 {
		t.Fatalf("holding capacity: got %d, want 2", got)
	}
	if _, ok := m.keys.SlotIndex(keyMsg("s")); !ok {
		t.Error("second slot should have a key")
	}
	if _, ok := m.keys.SlotIndex(keyMsg("d")); ok {
		t.Error("a third slot key must not exist")
	}

	rules.HoldingSlots = 0
	if _, err := NewGameModel(GameOptions{Level: dotLevel(), Rules: rules, Gen: gen, Seed: 7, Theme: DefaultTheme()}); err == nil {
		t.Error("zero holding slots should be rejected")
	}
}
