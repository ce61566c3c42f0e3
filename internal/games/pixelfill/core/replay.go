package core

import "fmt"

// ActionKind represents the type of a scripted command.
type ActionKind int

const (
	ActionNone       ActionKind = iota
	ActionDeployLane            // Deploy the front shooter of Lane
	ActionDeployHeld            // Deploy held shooter ShooterID
	ActionTick                  // Advance Count ticks (at least one)
)

// String returns the script name of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionDeployLane:
		return "lane"
	case ActionDeployHeld:
		return "held"
	case ActionTick:
		return "tick"
	default:
		return "none"
	}
}

// ParseActionKind converts a script name to an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "lane":
		return ActionDeployLane, nil
	case "held":
		return ActionDeployHeld, nil
	case "tick":
		return ActionTick, nil
	default:
		return ActionNone, fmt.Errorf("unknown action %q", s)
	}
}

// Action is one scripted player command.
type Action struct {
	Kind      ActionKind
	Lane      int
	ShooterID string
	Count     int
}

// ReplayResult summarizes a scripted run.
type ReplayResult struct {
	Applied  int // Deploys that changed the state
	Rejected int // Deploys that were no-ops
	Ticks    int
	Final    *State
}

// Replay applies actions in order to the session. Ticks stop being applied
// once the game ends; remaining deploys are counted as rejected.
func Replay(s *Session, actions []Action) ReplayResult {
	var res ReplayResult
	for _, a := range actions {
		switch a.Kind {
		case ActionDeployLane:
			if s.DeployFromQueue(a.Lane) {
				res.Applied++
			} else {
				res.Rejected++
			}
		case ActionDeployHeld:
			if s.DeployFromHolding(a.ShooterID) {
				res.Applied++
			} else {
				res.Rejected++
			}
		case ActionTick:
			n := max(a.Count, 1)
			for i := 0; i < n && s.State().IsPlaying(); i++ {
				s.Tick()
				res.Ticks++
			}
		}
	}
	res.Final = s.State()
	return res
}
