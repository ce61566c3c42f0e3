package core

// Policy decides deployments between ticks.
type Policy interface {
	// Deploy returns the state after zero or more deploy commands.
	Deploy(s *State) *State
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(s *State) *State

// Deploy calls f(s).
func (f PolicyFunc) Deploy(s *State) *State {
	return f(s)
}

// Greedy deploys at most one shooter per call: the candidate whose solo lap
// would land the most hits right now. Held shooters win ties so holding
// slots are freed early.
//
// When no candidate can hit anything and the conveyor is empty, the first
// non-empty lane is dug out, as long as holding keeps a spare slot.
type Greedy struct{}

// Deploy implements Policy.
func (Greedy) Deploy(s *State) *State {
	if !s.IsPlaying() || s.ConveyorFull() {
		return s
	}

	best, bestHits := -1, 0
	bestHeld := ""
	for _, sh := range s.Holding.Slots {
		if sh == nil {
			continue
		}
		if hits := len(s.PreviewLap(sh.Layer, sh.Ammo)); hits > bestHits {
			bestHits, bestHeld = hits, sh.ID
		}
	}
	for lane := range s.Queues {
		front := s.Front(lane)
		if front == nil {
			continue
		}
		if hits := len(s.PreviewLap(front.Layer, front.Ammo)); hits > bestHits {
			best, bestHits, bestHeld = lane, hits, ""
		}
	}

	switch {
	case bestHeld != "":
		return s.DeployFromHolding(bestHeld)
	case best >= 0:
		return s.DeployFromQueue(best)
	}

	if len(s.Conveyor) > 0 || s.Holding.Capacity()-s.Holding.Count() < 2 {
		return s
	}
	for lane := range s.Queues {
		if s.CanDeployFromQueue(lane) {
			return s.DeployFromQueue(lane)
		}
	}
	return s
}
