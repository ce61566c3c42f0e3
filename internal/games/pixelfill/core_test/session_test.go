package core_test

import (
	"testing"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
)

func TestAmmoIsConserved(t *testing.T) {
	l := heartLevel(t)
	budget := make(map[core.LayerID]int)
	for layer, n := range l.CellCounts() {
		budget[layer] = n * l.Capacity
	}

	sess, err := core.NewSession(l, core.DefaultRules(), core.DefaultGenParams(), core.NewRNG(2024))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	prev := sess.State()
	policy := core.Greedy{}
	for i := 0; i < 2000 && sess.State().IsPlaying(); i++ {
		sess.Run(policy, 1)
		cur := sess.State()

		ammo := cur.RemainingAmmo()
		hits := cur.Grid.TotalHits()
		for layer, want := range budget {
			if ammo[layer]+hits[layer] != want {
				t.Fatalf("tick %d layer %d: ammo %d + hits %d != %d",
					cur.Stats.ElapsedTicks, layer, ammo[layer], hits[layer], want)
			}
		}

		for _, id := range prev.ExposedContainers {
			if !cur.IsExposed(id) {
				t.Fatalf("container %d was un-exposed", id)
			}
		}
		if cur.Stats.CellsSolidified != cur.Grid.SolidifiedCount() {
			t.Fatalf("solidified stat %d != grid count %d", cur.Stats.CellsSolidified, cur.Grid.SolidifiedCount())
		}
		prev = cur
	}
}

func TestRestartResetsGame(t *testing.T) {
	sess, err := core.NewSession(heartLevel(t), core.DefaultRules(), core.DefaultGenParams(), core.NewRNG(8))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	sess.Run(core.Greedy{}, 20)
	if sess.State().Stats.ShootersDeployed == 0 {
		t.Fatal("expected the policy to deploy")
	}

	if err := sess.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	s := sess.State()
	if s.Stats != (core.Stats{TotalCells: 108}) {
		t.Errorf("expected fresh stats, got %+v", s.Stats)
	}
	if len(s.Conveyor) != 0 || !s.Holding.IsEmpty() {
		t.Errorf("expected empty conveyor and holding")
	}
	if s.Grid.SolidifiedCount() != 0 {
		t.Errorf("expected fresh grid")
	}

	found := false
	for _, q := range s.Queues {
		for _, sh := range q {
			found = found || sh.ID == "s0"
		}
	}
	if !found {
		t.Errorf("expected ids to restart at s0")
	}
}

func TestReplay(t *testing.T) {
	sess, err := core.NewSession(lineLevel(2), core.DefaultRules(), core.DefaultGenParams(), core.NewRNG(1))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	res := core.Replay(sess, []core.Action{
		{Kind: core.ActionDeployLane, Lane: 2},
		{Kind: core.ActionDeployLane, Lane: 0},
		{Kind: core.ActionTick, Count: 3},
		{Kind: core.ActionDeployHeld, ShooterID: "s0"},
		{Kind: core.ActionTick, Count: 10},
		{Kind: core.ActionDeployLane, Lane: 0},
	})

	if res.Applied != 1 || res.Rejected != 3 {
		t.Errorf("expected 1 applied and 3 rejected, got %d and %d", res.Applied, res.Rejected)
	}
	if res.Ticks != 5 {
		t.Errorf("expected ticks to stop at the win, got %d", res.Ticks)
	}
	if res.Final.Status != core.StatusWon {
		t.Errorf("expected won, got %s", res.Final.Status)
	}
}

func TestParseActionKind(t *testing.T) {
	for _, k := range []core.ActionKind{core.ActionDeployLane, core.ActionDeployHeld, core.ActionTick} {
		got, err := core.ParseActionKind(k.String())
		if err != nil || got != k {
			t.Errorf("round trip of %s failed: %v %v", k, got, err)
		}
	}
	if _, err := core.ParseActionKind("fire"); err == nil {
		t.Error("expected error for unknown action")
	}
}
