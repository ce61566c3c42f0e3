package core_test

import (
	"testing"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
)

var testColors = map[core.LayerID]core.ColorConfig{
	1: {Layer: 1, Name: "gold", Hex: "#fbbf24"},
	2: {Layer: 2, Name: "purple", Hex: "#8b5cf6"},
	3: {Layer: 3, Name: "red", Hex: "#ff3355"},
}

// makeLevel builds a square level from int maps.
func makeLevel(pixels, containers [][]int, defs []core.ContainerDef, deps map[core.ContainerID][]core.ContainerID, capacity int) *core.Level {
	l := &core.Level{
		ID:       "test",
		Name:     "Test",
		Size:     len(pixels),
		Capacity: capacity,
		Colors:   testColors,
		Deps:     deps,
	}
	for _, row := range pixels {
		r := make([]core.LayerID, len(row))
		for i, v := range row {
			r[i] = core.LayerID(v)
		}
		l.PixelMap = append(l.PixelMap, r)
	}
	for _, row := range containers {
		r := make([]core.ContainerID, len(row))
		for i, v := range row {
			r[i] = core.ContainerID(v)
		}
		l.ContainerMap = append(l.ContainerMap, r)
	}
	l.Containers = defs
	return l
}

// lineLevel is a 2x2 level with one gold container on the top row.
func lineLevel(capacity int) *core.Level {
	return makeLevel(
		[][]int{{1, 1}, {0, 0}},
		[][]int{{1, 1}, {0, 0}},
		[]core.ContainerDef{{ID: 1, Layer: 1, Name: "Top"}},
		nil,
		capacity,
	)
}

// gatedLevel is a 2x2 level where the purple cell waits on the gold one.
func gatedLevel() *core.Level {
	return makeLevel(
		[][]int{{1, 2}, {0, 0}},
		[][]int{{1, 2}, {0, 0}},
		[]core.ContainerDef{
			{ID: 1, Layer: 1, Name: "Gold"},
			{ID: 2, Layer: 2, Name: "Purple"},
		},
		map[core.ContainerID][]core.ContainerID{2: {1}},
		1,
	)
}

func shooter(id string, layer core.LayerID, ammo int) core.Shooter {
	return core.Shooter{ID: id, Color: testColors[layer].Name, Layer: layer, Ammo: ammo}
}

func mustState(t *testing.T, l *core.Level, rules core.Rules, queues ...[]core.Shooter) *core.State {
	t.Helper()
	s, err := core.NewState(l, rules, queues)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return s
}

func heartLevel(t *testing.T) *core.Level {
	t.Helper()
	lvl, err := levels.Builtin().LoadByID("01-heart")
	if err != nil {
		t.Fatalf("loading heart: %v", err)
	}
	return lvl.Level
}

func ticks(s *core.State, n int) *core.State {
	for i := 0; i < n; i++ {
		s = s.Tick()
	}
	return s
}

// chainLevel gates a purple cell behind a cell-less container.
//
//	1 Gold   (0,0)          no dependencies
//	2 Gate   no cells       waits on 1
//	3 Purple (0,1)          waits on 2
//	4 Red    (1,0)          waits on 3 and 1
func chainLevel() *core.Level {
	return makeLevel(
		[][]int{{1, 2}, {3, 0}},
		[][]int{{1, 3}, {4, 0}},
		[]core.ContainerDef{
			{ID: 1, Layer: 1, Name: "Gold"},
			{ID: 2, Layer: 1, Name: "Gate"},
			{ID: 3, Layer: 2, Name: "Purple"},
			{ID: 4, Layer: 3, Name: "Red"},
		},
		map[core.ContainerID][]core.ContainerID{2: {1}, 3: {2}, 4: {3, 1}},
		1,
	)
}
