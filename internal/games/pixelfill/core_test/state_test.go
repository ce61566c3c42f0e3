package core_test

import (
	"testing"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
)

func TestNewStateSeedsExposure(t *testing.T) {
	s := mustState(t, heartLevel(t), core.DefaultRules())

	want := []core.ContainerID{1, 2, 3, 4, 5, 6}
	if len(s.ExposedContainers) != len(want) {
		t.Fatalf("expected exposed %v, got %v", want, s.ExposedContainers)
	}
	for i, id := range want {
		if s.ExposedContainers[i] != id {
			t.Fatalf("expected exposed %v, got %v", want, s.ExposedContainers)
		}
	}

	// Purple Left sits at (3,3); Gold at (7,7).
	for _, c := range []core.Coord{core.C(3, 3), core.C(7, 7)} {
		if s.Grid.At(c).Exposed {
			t.Errorf("expected %v hidden", c)
		}
	}
	if !s.Grid.At(core.C(1, 2)).Exposed {
		t.Errorf("expected red lobe exposed")
	}
	if s.Stats.TotalCells != 108 {
		t.Errorf("expected 108 fillable cells, got %d", s.Stats.TotalCells)
	}
	if s.Status != core.StatusPlaying {
		t.Errorf("expected playing, got %s", s.Status)
	}
}

func TestUngatedCellsStartExposed(t *testing.T) {
	l := makeLevel([][]int{{1, 0}, {0, 1}}, nil, nil, nil, 1)
	s := mustState(t, l, core.DefaultRules())
	if !s.Grid.At(core.C(0, 0)).Exposed || !s.Grid.At(core.C(1, 1)).Exposed {
		t.Errorf("cells outside containers should be exposed")
	}
	if s.Grid.At(core.C(0, 1)).Exposed {
		t.Errorf("background must never be exposed")
	}
}

func TestDeployRejections(t *testing.T) {
	rules := core.DefaultRules()
	rules.ConveyorCapacity = 1
	base := mustState(t, lineLevel(2), rules,
		[]core.Shooter{shooter("s0", 1, 2), shooter("s1", 1, 2)},
		[]core.Shooter{},
	)

	tests := []struct {
		name   string
		deploy func(*core.State) *core.State
	}{
		{"negative lane", func(s *core.State) *core.State { return s.DeployFromQueue(-1) }},
		{"lane out of range", func(s *core.State) *core.State { return s.DeployFromQueue(5) }},
		{"empty lane", func(s *core.State) *core.State { return s.DeployFromQueue(1) }},
		{"unknown held id", func(s *core.State) *core.State { return s.DeployFromHolding("nope") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.deploy(base); got != base {
				t.Errorf("expected the same snapshot back")
			}
		})
	}

	t.Run("conveyor full", func(t *testing.T) {
		one := base.DeployFromQueue(0)
		if one == base {
			t.Fatal("first deploy should succeed")
		}
		if !one.ConveyorFull() {
			t.Fatal("expected conveyor full")
		}
		if got := one.DeployFromQueue(0); got != one {
			t.Errorf("deploy onto a full conveyor should be a no-op")
		}
	})
}

func TestDeployFromQueue(t *testing.T) {
	s := mustState(t, lineLevel(2), core.DefaultRules(),
		[]core.Shooter{shooter("s0", 1, 1), shooter("s1", 1, 3)},
	)

	next := s.DeployFromQueue(0)
	if next.QueueLen(0) != 1 || next.Front(0).ID != "s1" {
		t.Fatalf("expected s1 at the front, got %v", next.Queues[0])
	}
	if len(next.Conveyor) != 1 || next.Conveyor[0].ID != "s0" || next.Conveyor[0].TrackPos != -1 {
		t.Fatalf("expected s0 staged, got %+v", next.Conveyor)
	}
	if next.Stats.ShootersDeployed != 1 {
		t.Errorf("expected 1 deployment, got %d", next.Stats.ShootersDeployed)
	}
}

func TestSnapshotsAreNotModified(t *testing.T) {
	s0 := mustState(t, lineLevel(2), core.DefaultRules(), []core.Shooter{shooter("s0", 1, 4)})
	print0 := s0.Fingerprint()

	s1 := s0.DeployFromQueue(0)
	print1 := s1.Fingerprint()
	s3 := ticks(s1, 2)

	if s0.Fingerprint() != print0 || s1.Fingerprint() != print1 {
		t.Fatal("older snapshots changed")
	}
	if len(s0.Conveyor) != 0 || s0.QueueLen(0) != 1 {
		t.Errorf("initial snapshot lost its queue")
	}
	if s1.Conveyor[0].TrackPos != -1 || s1.Conveyor[0].Ammo != 4 {
		t.Errorf("deployed snapshot changed: %+v", s1.Conveyor[0])
	}
	if s1.Grid.At(core.C(0, 0)).Hits != 0 {
		t.Errorf("old grid was written")
	}
	if s3.Grid.At(core.C(0, 0)).Hits != 1 {
		t.Errorf("expected the new grid to carry the hit")
	}

	// Only row 0 was touched.
	if s3.Grid.SharesRow(s1.Grid, 0) {
		t.Errorf("row 0 should be a new row")
	}
	if !s3.Grid.SharesRow(s1.Grid, 1) {
		t.Errorf("row 1 should be shared")
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	run := func() uint64 {
		sess, err := core.NewSession(heartLevel(t), core.DefaultRules(), core.DefaultGenParams(), core.NewRNG(7))
		if err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
		sess.Run(core.Greedy{}, 200)
		return sess.State().Fingerprint()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed and policy gave different states: %x != %x", a, b)
	}
}

func TestContainerOrderIndependence(t *testing.T) {
	play := func(l *core.Level) *core.State {
		sess, err := core.NewSession(l, core.DefaultRules(), core.DefaultGenParams(), core.NewRNG(11))
		if err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
		sess.Run(core.Greedy{}, 300)
		return sess.State()
	}

	forward := heartLevel(t)
	reversed := *forward
	reversed.Containers = make([]core.ContainerDef, len(forward.Containers))
	for i, def := range forward.Containers {
		reversed.Containers[len(forward.Containers)-1-i] = def
	}

	a, b := play(forward), play(&reversed)
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("container declaration order changed the outcome")
	}
	if len(a.ExposedContainers) != len(b.ExposedContainers) {
		t.Errorf("exposed sets differ: %v vs %v", a.ExposedContainers, b.ExposedContainers)
	}
}

func TestNewStateRejectsBadRules(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*core.Rules)
	}{
		{"no conveyor", func(r *core.Rules) { r.ConveyorCapacity = 0 }},
		{"no holding", func(r *core.Rules) { r.HoldingSlots = 0 }},
		{"negative holding", func(r *core.Rules) { r.HoldingSlots = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := core.DefaultRules()
			tt.modify(&rules)
			if _, err := core.NewState(lineLevel(1), rules, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNewHoldingPanicsWithoutSlots(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	core.NewHolding(0)
}
