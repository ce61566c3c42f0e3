package core

import "sort"

// Tick advances the conveyor by one step and returns the next snapshot.
//
// Processing order:
//  1. Shooters are visited leader first (descending track position, stable)
//  2. Each shooter moves one position. Passing the last position completes a
//     lap and sends it to holding; otherwise it fires along the scan line
//  3. A hit consumes one ammo; a shooter out of ammo leaves the conveyor
//  4. Containers whose dependencies are now solid are exposed
//  5. Lapped shooters take free holding slots in visit order. The first one
//     without a slot loses the game
//
// Ticks on a finished game return the receiver unchanged.
func (s *State) Tick() *State {
	if !s.IsPlaying() {
		return s
	}

	next := s.shallow()
	next.Stats.ElapsedTicks++
	next.Stats.Elapsed += s.env.rules.TickDuration
	next.RecentHits = nil
	next.RecentSolidified = nil
	next.RecentExposed = nil
	if len(s.Conveyor) == 0 {
		return next
	}

	order := make([]ConveyorShooter, len(s.Conveyor))
	copy(order, s.Conveyor)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].TrackPos > order[j].TrackPos
	})

	track := s.env.track
	sight := s.env.rules.Sight
	ed := newGridEditor(s.Grid)

	moving := make([]ConveyorShooter, 0, len(order))
	lapped := make([]Shooter, 0)
	for _, cs := range order {
		pos := cs.TrackPos + 1
		if pos >= track.Len() {
			lapped = append(lapped, cs.Shooter)
			continue
		}
		cs.TrackPos = pos

		if target, ok := track.target(ed.at, pos, cs.Layer, sight); ok {
			if ed.hit(target, s.Capacity) {
				next.RecentSolidified = append(next.RecentSolidified, target)
			}
			rule, _ := track.Rule(pos)
			next.RecentHits = append(next.RecentHits, HitEvent{
				ShooterID: cs.ID,
				Coord:     target,
				Side:      rule.Side,
			})
			cs.Ammo--
		}

		if cs.Ammo <= 0 {
			continue
		}
		moving = append(moving, cs)
	}

	if len(next.RecentSolidified) > 0 {
		exposed := make(map[ContainerID]bool, len(s.ExposedContainers))
		for _, id := range s.ExposedContainers {
			exposed[id] = true
		}
		if newly := s.env.graph.propagate(ed, exposed); len(newly) > 0 {
			next.RecentExposed = newly
			next.ExposedContainers = sortedIDs(exposed)
		}
	}

	holding := s.Holding
	for _, sh := range lapped {
		slot := holding.FindFreeSlot()
		if slot < 0 {
			next.Status = StatusLost
			break
		}
		held := sh
		holding = holding.with(slot, &held)
		next.Stats.LapsCompleted++
	}

	next.Grid = ed.grid()
	next.Conveyor = moving
	next.Holding = holding
	next.Stats.CellsSolidified = s.Stats.CellsSolidified + len(next.RecentSolidified)
	if next.Status == StatusPlaying && next.Stats.CellsSolidified >= next.Stats.TotalCells {
		next.Status = StatusWon
	}
	return next
}

// PreviewLap reports the cells a shooter of the given layer and ammo would
// hit if it ran one full lap alone on the current grid.
// Containers exposed during the lap are not taken into account.
func (s *State) PreviewLap(layer LayerID, ammo int) []Coord {
	ed := newGridEditor(s.Grid)
	track := s.env.track
	hits := make([]Coord, 0)
	for pos := 0; pos < track.Len() && ammo > 0; pos++ {
		target, ok := track.target(ed.at, pos, layer, s.env.rules.Sight)
		if !ok {
			continue
		}
		ed.hit(target, s.Capacity)
		hits = append(hits, target)
		ammo--
	}
	return hits
}
