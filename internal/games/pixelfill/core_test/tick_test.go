package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
)

func TestTickFillsAndWins(t *testing.T) {
	s := mustState(t, lineLevel(2), core.DefaultRules(), []core.Shooter{shooter("s0", 1, 4)})
	s = s.DeployFromQueue(0)

	// Position 0 scans the empty bottom row.
	s = s.Tick()
	if len(s.RecentHits) != 0 {
		t.Fatalf("expected miss at position 0, got %v", s.RecentHits)
	}
	if s.Conveyor[0].TrackPos != 0 {
		t.Fatalf("expected track position 0, got %d", s.Conveyor[0].TrackPos)
	}

	s = s.Tick()
	if len(s.RecentHits) != 1 || s.RecentHits[0].Coord != core.C(0, 0) || s.RecentHits[0].Side != core.SideLeft {
		t.Fatalf("expected left hit at (0,0), got %v", s.RecentHits)
	}
	if got := s.Grid.At(core.C(0, 0)); got.Hits != 1 || got.Solidified {
		t.Fatalf("expected one unsolidified hit, got %+v", got)
	}

	s = s.Tick()
	if len(s.RecentSolidified) != 1 || s.RecentSolidified[0] != core.C(0, 0) {
		t.Fatalf("expected (0,0) to solidify, got %v", s.RecentSolidified)
	}
	if s.Stats.CellsSolidified != 1 {
		t.Errorf("expected 1 solidified cell, got %d", s.Stats.CellsSolidified)
	}

	s = ticks(s, 2)
	if s.Status != core.StatusWon {
		t.Fatalf("expected won, got %s", s.Status)
	}
	if len(s.Conveyor) != 0 {
		t.Errorf("expected shooter destroyed after last shot, got %d on conveyor", len(s.Conveyor))
	}
	if s.Stats.ElapsedTicks != 5 {
		t.Errorf("expected 5 ticks, got %d", s.Stats.ElapsedTicks)
	}
	if s.Stats.Elapsed != 500*time.Millisecond {
		t.Errorf("expected 500ms elapsed, got %v", s.Stats.Elapsed)
	}
}

func TestTickOnFinishedGameIsNoOp(t *testing.T) {
	s := mustState(t, lineLevel(1), core.DefaultRules(), []core.Shooter{shooter("s0", 1, 2)})
	s = ticks(s.DeployFromQueue(0), 4)
	if s.Status != core.StatusWon {
		t.Fatalf("expected won, got %s", s.Status)
	}

	if next := s.Tick(); next != s {
		t.Error("tick after win should return the same snapshot")
	}
	if next := s.DeployFromQueue(0); next != s {
		t.Error("deploy after win should return the same snapshot")
	}
}

func TestIdleTickAdvancesTimeAndClearsEvents(t *testing.T) {
	s := mustState(t, lineLevel(2), core.DefaultRules(), []core.Shooter{shooter("s0", 1, 1), shooter("s1", 1, 3)})
	s = ticks(s.DeployFromQueue(0), 2)
	if len(s.Conveyor) != 0 || len(s.RecentHits) != 1 {
		t.Fatalf("expected single shot then destruction, conveyor=%d hits=%v", len(s.Conveyor), s.RecentHits)
	}

	idle := s.Tick()
	if idle.Stats.ElapsedTicks != s.Stats.ElapsedTicks+1 {
		t.Errorf("idle tick should advance elapsed ticks")
	}
	if len(idle.RecentHits) != 0 || len(idle.RecentSolidified) != 0 {
		t.Errorf("idle tick should clear events")
	}
	if idle.Grid != s.Grid {
		t.Errorf("idle tick should keep the grid")
	}
}

func TestLapSendsShooterToHolding(t *testing.T) {
	rules := core.DefaultRules()
	s := mustState(t, gatedLevel(), rules, []core.Shooter{shooter("s0", 2, 3)})
	s = s.DeployFromQueue(0)

	// Purple is hidden behind gold, so the shooter can only lap.
	s = ticks(s, 8)
	if len(s.Conveyor) != 1 || s.Conveyor[0].TrackPos != 7 {
		t.Fatalf("expected shooter at last position, got %+v", s.Conveyor)
	}

	s = s.Tick()
	if len(s.Conveyor) != 0 {
		t.Fatalf("expected conveyor empty after lap, got %d", len(s.Conveyor))
	}
	if slot := s.Holding.Find("s0"); slot != 0 {
		t.Fatalf("expected s0 in slot 0, got %d", slot)
	}
	if s.Holding.Get(0).Ammo != 3 {
		t.Errorf("expected ammo kept, got %d", s.Holding.Get(0).Ammo)
	}
	if s.Stats.LapsCompleted != 1 {
		t.Errorf("expected 1 lap, got %d", s.Stats.LapsCompleted)
	}

	// Redeploy from holding.
	s = s.DeployFromHolding("s0")
	if !s.Holding.IsEmpty() || len(s.Conveyor) != 1 || s.Conveyor[0].TrackPos != -1 {
		t.Fatalf("expected s0 staged again, holding=%d conveyor=%+v", s.Holding.Count(), s.Conveyor)
	}
	if s.Stats.ShootersDeployed != 2 {
		t.Errorf("expected 2 deployments, got %d", s.Stats.ShootersDeployed)
	}
}

func TestHoldingOverflowLoses(t *testing.T) {
	rules := core.DefaultRules()
	rules.HoldingSlots = 1
	s := mustState(t, gatedLevel(), rules, []core.Shooter{shooter("s0", 2, 1), shooter("s1", 2, 1)})
	s = s.DeployFromQueue(0).DeployFromQueue(0)
	if len(s.Conveyor) != 2 {
		t.Fatalf("expected 2 shooters deployed, got %d", len(s.Conveyor))
	}

	s = ticks(s, 8)
	if s.Status != core.StatusPlaying {
		t.Fatalf("expected playing before the lap, got %s", s.Status)
	}

	s = s.Tick()
	if s.Status != core.StatusLost {
		t.Fatalf("expected lost, got %s", s.Status)
	}
	if s.Holding.Find("s0") != 0 {
		t.Errorf("expected first lapped shooter placed")
	}
	if s.Holding.Find("s1") != -1 {
		t.Errorf("overflowing shooter must not be placed")
	}
	if s.Stats.LapsCompleted != 1 {
		t.Errorf("expected 1 completed lap, got %d", s.Stats.LapsCompleted)
	}
	if s.Tick() != s {
		t.Errorf("lost game must not tick")
	}
}

func TestShotSkipsSolidifiedCells(t *testing.T) {
	s := mustState(t, lineLevel(1), core.DefaultRules(),
		[]core.Shooter{shooter("s0", 1, 1)},
		[]core.Shooter{shooter("s1", 1, 1)},
	)
	s = s.DeployFromQueue(0).Tick().Tick() // s0 fills (0,0) and is spent
	s = s.DeployFromQueue(1).Tick()        // s1 at 0 misses

	if len(s.Conveyor) != 1 || s.Conveyor[0].ID != "s1" {
		t.Fatalf("expected only s1 left, got %+v", s.Conveyor)
	}
	s = s.Tick()
	if len(s.RecentHits) != 1 || s.RecentHits[0].Coord != core.C(0, 1) {
		t.Fatalf("expected s1 to pass the solid cell and hit (0,1), got %v", s.RecentHits)
	}
	if s.Status != core.StatusWon {
		t.Errorf("expected won, got %s", s.Status)
	}
}

func TestLeaderFiresFirst(t *testing.T) {
	l := makeLevel(
		[][]int{{1, 0}, {0, 0}},
		[][]int{{1, 0}, {0, 0}},
		[]core.ContainerDef{{ID: 1, Layer: 1, Name: "Dot"}},
		nil,
		2,
	)
	s := mustState(t, l, core.DefaultRules(),
		[]core.Shooter{shooter("s0", 1, 5)},
		[]core.Shooter{shooter("s1", 1, 5)},
	)
	s = s.DeployFromQueue(0).Tick()
	s = s.DeployFromQueue(1).Tick() // s0 at 1 lands the first hit

	// s0 at 2 and s1 at 1 both see the dot; s0 leads and fills it.
	s = s.Tick()
	if len(s.RecentHits) != 1 || s.RecentHits[0].ShooterID != "s0" {
		t.Fatalf("expected only the leader to hit, got %v", s.RecentHits)
	}
	if s.Status != core.StatusWon {
		t.Errorf("expected won, got %s", s.Status)
	}
}

func TestSightPolicies(t *testing.T) {
	tests := []struct {
		name    string
		sight   core.LineOfSight
		hitTick int
		hitSide core.Side
	}{
		{"pass through", core.SightPassThrough, 2, core.SideLeft},
		{"solid blocks", core.SightSolidBlocks, 4, core.SideTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := core.DefaultRules()
			rules.Sight = tt.sight
			s := mustState(t, gatedLevel(), rules,
				[]core.Shooter{shooter("s0", 1, 1), shooter("s1", 2, 1)})

			s = ticks(s.DeployFromQueue(0), 2)
			if !s.Grid.At(core.C(0, 0)).Solidified {
				t.Fatalf("expected gold solidified")
			}
			if !s.IsExposed(2) || !s.Grid.At(core.C(0, 1)).Exposed {
				t.Fatalf("expected purple container exposed")
			}

			s = s.DeployFromQueue(0)
			for i := 1; i <= tt.hitTick; i++ {
				s = s.Tick()
				if i < tt.hitTick && len(s.RecentHits) > 0 {
					t.Fatalf("unexpected hit on tick %d: %v", i, s.RecentHits)
				}
			}
			if len(s.RecentHits) != 1 || s.RecentHits[0].Side != tt.hitSide {
				t.Fatalf("expected %s hit on tick %d, got %v", tt.hitSide, tt.hitTick, s.RecentHits)
			}
			if s.Status != core.StatusWon {
				t.Errorf("expected won, got %s", s.Status)
			}
		})
	}
}

func TestExposureEvents(t *testing.T) {
	s := mustState(t, gatedLevel(), core.DefaultRules(), []core.Shooter{shooter("s0", 1, 1)})
	if s.IsExposed(2) {
		t.Fatal("purple should start hidden")
	}
	if s.Grid.At(core.C(0, 1)).Display() != core.DisplayHidden {
		t.Fatalf("expected hidden display, got %s", s.Grid.At(core.C(0, 1)).Display())
	}

	s = ticks(s.DeployFromQueue(0), 2)
	if len(s.RecentExposed) != 1 || s.RecentExposed[0] != 2 {
		t.Fatalf("expected container 2 newly exposed, got %v", s.RecentExposed)
	}
	if len(s.ExposedContainers) != 2 {
		t.Errorf("expected 2 exposed containers, got %v", s.ExposedContainers)
	}

	s = s.Tick()
	if len(s.RecentExposed) != 0 {
		t.Errorf("exposure events should clear, got %v", s.RecentExposed)
	}
	if !s.IsExposed(2) {
		t.Errorf("exposure must persist")
	}
}

func TestExposureReachesFixedPointInOneTick(t *testing.T) {
	s := mustState(t, chainLevel(), core.DefaultRules(), []core.Shooter{shooter("s0", 1, 1)})

	// The empty gate counts as solidified, so purple is open from the start.
	if got := s.ExposedContainers; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3] exposed at start, got %v", got)
	}

	// Position 1 scans the top row, where the gold cell is.
	s = ticks(s.DeployFromQueue(0), 2)
	if !s.Grid.At(core.C(0, 0)).Solidified {
		t.Fatal("gold cell should be solidified")
	}
	if got := s.RecentExposed; len(got) != 1 || got[0] != 2 {
		t.Errorf("expected the gate newly exposed, got %v", got)
	}
	if got := s.ExposedContainers; len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("expected [1 2 3] exposed, got %v", got)
	}
	if s.IsExposed(4) {
		t.Error("red must wait for purple")
	}
	if d := s.Grid.At(core.C(1, 0)).Display(); d != core.DisplayHidden {
		t.Errorf("red cell should stay hidden, got %s", d)
	}
}

func TestLossWinsOverFillOnSameTick(t *testing.T) {
	rules := core.DefaultRules()
	rules.HoldingSlots = 1
	s := mustState(t, lineLevel(1), rules, []core.Shooter{
		shooter("x", 2, 1),
		shooter("y", 2, 1),
		shooter("z", 1, 2),
	})

	// x has nothing to fill and parks in the only holding slot.
	s = ticks(s.DeployFromQueue(0), 9)
	if s.Holding.Find("x") != 0 || s.Status != core.StatusPlaying {
		t.Fatalf("expected x held while playing, holding=%d status=%s", s.Holding.Count(), s.Status)
	}

	// y laps on its ninth tick, z fills the last cell on its fourth.
	s = ticks(s.DeployFromQueue(0), 5)
	s = ticks(s.DeployFromQueue(0), 3)
	if s.Status != core.StatusPlaying || s.Stats.CellsSolidified != 1 {
		t.Fatalf("expected one cell filled while playing, got %d (%s)", s.Stats.CellsSolidified, s.Status)
	}

	s = s.Tick()
	if s.Stats.CellsSolidified != s.Stats.TotalCells {
		t.Fatalf("expected the picture complete, got %d/%d", s.Stats.CellsSolidified, s.Stats.TotalCells)
	}
	if s.Status != core.StatusLost {
		t.Errorf("overflow on the filling tick should lose, got %s", s.Status)
	}
	if s.Holding.Find("y") != -1 || len(s.Conveyor) != 0 {
		t.Errorf("y must not be placed, holding=%d conveyor=%d", s.Holding.Count(), len(s.Conveyor))
	}
}
