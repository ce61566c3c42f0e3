package core

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"
)

// Rules are the fixed gameplay limits of a session.
type Rules struct {
	ConveyorCapacity int           // Max shooters on the track at once
	HoldingSlots     int           // Size of the holding zone
	TickDuration     time.Duration // Simulated time per tick
	MaxTicksPerPump  int           // Backlog ticks applied per clock pump
	Sight            LineOfSight   // Scan policy for foreign cells
}

// DefaultRules returns the standard limits.
func DefaultRules() Rules {
	return Rules{
		ConveyorCapacity: 5,
		HoldingSlots:     5,
		TickDuration:     100 * time.Millisecond,
		MaxTicksPerPump:  3,
		Sight:            SightPassThrough,
	}
}

// Validate checks the limits a state is built from.
func (r Rules) Validate() error {
	switch {
	case r.ConveyorCapacity < 1:
		return fmt.Errorf("rules: conveyor capacity must be at least 1, got %d", r.ConveyorCapacity)
	case r.HoldingSlots < 1:
		return fmt.Errorf("rules: holding slots must be at least 1, got %d", r.HoldingSlots)
	}
	return nil
}

// Stats accumulates over a session.
type Stats struct {
	ShootersDeployed int
	LapsCompleted    int
	ElapsedTicks     uint64
	Elapsed          time.Duration
	CellsSolidified  int
	TotalCells       int
}

// HitEvent records one shot landing in a cell.
type HitEvent struct {
	ShooterID string
	Coord     Coord
	Side      Side
}

// env is the per-session static context shared by all snapshots.
type env struct {
	level *Level
	graph *ContainerGraph
	track Track
	rules Rules
}

// State is an immutable snapshot of a game session.
// Every command returns a new State; a State that has been handed out is
// never modified, so collaborators may keep and diff old snapshots.
type State struct {
	Grid              *Grid
	Queues            [][]Shooter // Lanes, index 0 of each lane is playable
	Holding           Holding
	Conveyor          []ConveyorShooter
	ExposedContainers []ContainerID // Ascending
	Status            Status
	Capacity          int // Hits per cell
	Stats             Stats

	// Transient feedback for the last tick only.
	RecentHits       []HitEvent
	RecentSolidified []Coord
	RecentExposed    []ContainerID

	env *env
}

// NewState creates the initial snapshot for a level with the given queues.
// Containers without dependencies, and picture cells outside any container,
// start exposed.
func NewState(l *Level, rules Rules, queues [][]Shooter) (*State, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	graph, err := NewContainerGraph(l)
	if err != nil {
		return nil, err
	}

	ed := newGridEditor(NewGrid(l))
	for r := 0; r < l.Size; r++ {
		for c := 0; c < l.Size; c++ {
			if cell := ed.at(C(r, c)); cell.Layer > 0 && cell.ContainerID == 0 {
				ed.expose(C(r, c))
			}
		}
	}
	exposed := make(map[ContainerID]bool)
	graph.propagate(ed, exposed)

	lanes := make([][]Shooter, len(queues))
	for i, q := range queues {
		lanes[i] = append([]Shooter(nil), q...)
	}

	return &State{
		Grid:              ed.grid(),
		Queues:            lanes,
		Holding:           NewHolding(rules.HoldingSlots),
		Conveyor:          []ConveyorShooter{},
		ExposedContainers: sortedIDs(exposed),
		Status:            StatusPlaying,
		Capacity:          l.Capacity,
		Stats: Stats{
			TotalCells: l.TotalCells(),
		},
		env: &env{
			level: l,
			graph: graph,
			track: NewTrack(l.Size),
			rules: rules,
		},
	}, nil
}

// Level returns the level the session was built from.
func (s *State) Level() *Level {
	return s.env.level
}

// Graph returns the container dependency graph.
func (s *State) Graph() *ContainerGraph {
	return s.env.graph
}

// Track returns the conveyor track.
func (s *State) Track() Track {
	return s.env.track
}

// Rules returns the session limits.
func (s *State) Rules() Rules {
	return s.env.rules
}

// IsPlaying returns true while commands may change the state.
func (s *State) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// ConveyorFull returns true if no more shooters may be deployed.
func (s *State) ConveyorFull() bool {
	return len(s.Conveyor) >= s.env.rules.ConveyorCapacity
}

// QueueLen returns the length of a lane, or 0 for an invalid lane.
func (s *State) QueueLen(lane int) int {
	if lane < 0 || lane >= len(s.Queues) {
		return 0
	}
	return len(s.Queues[lane])
}

// Front returns the playable shooter of a lane, or nil.
func (s *State) Front(lane int) *Shooter {
	if s.QueueLen(lane) == 0 {
		return nil
	}
	front := s.Queues[lane][0]
	return &front
}

// QueuesEmpty returns true if every lane is empty.
func (s *State) QueuesEmpty() bool {
	for _, q := range s.Queues {
		if len(q) > 0 {
			return false
		}
	}
	return true
}

// IsExposed reports whether a container is exposed.
func (s *State) IsExposed(id ContainerID) bool {
	i := sort.Search(len(s.ExposedContainers), func(i int) bool {
		return s.ExposedContainers[i] >= id
	})
	return i < len(s.ExposedContainers) && s.ExposedContainers[i] == id
}

// CanDeployFromQueue returns true if the lane's front shooter can be deployed.
func (s *State) CanDeployFromQueue(lane int) bool {
	return s.IsPlaying() && !s.ConveyorFull() && s.QueueLen(lane) > 0
}

// CanDeployFromHolding returns true if the held shooter can be deployed.
func (s *State) CanDeployFromHolding(id string) bool {
	return s.IsPlaying() && !s.ConveyorFull() && s.Holding.Find(id) >= 0
}

// DeployFromQueue moves the front shooter of a lane onto the conveyor.
// Returns the receiver unchanged if the command is not currently valid.
func (s *State) DeployFromQueue(lane int) *State {
	if !s.CanDeployFromQueue(lane) {
		return s
	}

	next := s.shallow()
	queues := make([][]Shooter, len(s.Queues))
	copy(queues, s.Queues)
	shooter := queues[lane][0]
	queues[lane] = queues[lane][1:]
	next.Queues = queues
	next.Conveyor = appendConveyor(s.Conveyor, stage(shooter))
	next.Stats.ShootersDeployed++
	return next
}

// DeployFromHolding moves a held shooter onto the conveyor.
// Returns the receiver unchanged if the command is not currently valid.
func (s *State) DeployFromHolding(id string) *State {
	if !s.CanDeployFromHolding(id) {
		return s
	}

	slot := s.Holding.Find(id)
	shooter := *s.Holding.Slots[slot]
	next := s.shallow()
	next.Holding = s.Holding.with(slot, nil)
	next.Conveyor = appendConveyor(s.Conveyor, stage(shooter))
	next.Stats.ShootersDeployed++
	return next
}

// RemainingAmmo returns ammo per layer across queues, holding and conveyor.
func (s *State) RemainingAmmo() map[LayerID]int {
	ammo := make(map[LayerID]int)
	for _, q := range s.Queues {
		for _, sh := range q {
			ammo[sh.Layer] += sh.Ammo
		}
	}
	for _, sh := range s.Holding.Slots {
		if sh != nil {
			ammo[sh.Layer] += sh.Ammo
		}
	}
	for _, sh := range s.Conveyor {
		ammo[sh.Layer] += sh.Ammo
	}
	return ammo
}

// Fingerprint returns a hash of the gameplay-relevant state.
// Two runs with the same level, seed and commands produce equal fingerprints.
func (s *State) Fingerprint() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "G:")
	for r := 0; r < s.Grid.Size(); r++ {
		for _, c := range s.Grid.rows[r] {
			fmt.Fprintf(h, "%d:%t:%t,", c.Hits, c.Solidified, c.Exposed)
		}
	}

	fmt.Fprintf(h, ";Q:")
	for qi, q := range s.Queues {
		fmt.Fprintf(h, "Q%d:", qi)
		for _, sh := range q {
			fmt.Fprintf(h, "%s:%d:%d,", sh.ID, sh.Layer, sh.Ammo)
		}
	}

	fmt.Fprintf(h, ";H:")
	for i, sh := range s.Holding.Slots {
		if sh != nil {
			fmt.Fprintf(h, "%d:%s:%d,", i, sh.ID, sh.Ammo)
		}
	}

	fmt.Fprintf(h, ";C:")
	for _, sh := range s.Conveyor {
		fmt.Fprintf(h, "%s:%d:%d,", sh.ID, sh.TrackPos, sh.Ammo)
	}

	fmt.Fprintf(h, ";S:%s;T:%d", s.Status, s.Stats.ElapsedTicks)
	return h.Sum64()
}

// shallow copies the snapshot header. Slices are shared and must be
// replaced, never written, by the caller.
func (s *State) shallow() *State {
	next := *s
	return &next
}

func appendConveyor(cur []ConveyorShooter, cs ConveyorShooter) []ConveyorShooter {
	out := make([]ConveyorShooter, len(cur), len(cur)+1)
	copy(out, cur)
	return append(out, cs)
}

func sortedIDs(set map[ContainerID]bool) []ContainerID {
	ids := make([]ContainerID, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
