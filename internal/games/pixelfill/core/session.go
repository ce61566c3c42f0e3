package core

import "time"

// Session is the authoritative owner of one game.
// It creates the queues, applies commands and ticks, and hands out read-only
// snapshots. A Session is not safe for concurrent use.
type Session struct {
	level *Level
	rules Rules
	gen   GenParams
	rng   Rand
	ids   IDSeq
	clock *Clock
	state *State
}

// NewSession validates the level and builds the initial state.
// The random source is owned by the session from now on.
func NewSession(l *Level, rules Rules, gen GenParams, rng Rand) (*Session, error) {
	s := &Session{
		level: l,
		rules: rules,
		gen:   gen,
		rng:   rng,
		clock: NewClock(rules.TickDuration, rules.MaxTicksPerPump),
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart discards the current game and deals fresh queues for the same
// level. Shooter ids start again at "s0".
func (s *Session) Restart() error {
	if err := s.level.Validate(); err != nil {
		return err
	}
	s.ids = IDSeq{}
	queues := GenerateQueues(s.level, s.gen, s.rng, &s.ids)
	state, err := NewState(s.level, s.rules, queues)
	if err != nil {
		return err
	}
	s.state = state
	s.clock.Reset()
	return nil
}

// State returns the current snapshot.
func (s *Session) State() *State {
	return s.state
}

// Level returns the session's level.
func (s *Session) Level() *Level {
	return s.level
}

// DeployFromQueue deploys the front shooter of a lane.
// Returns true if the state changed.
func (s *Session) DeployFromQueue(lane int) bool {
	next := s.state.DeployFromQueue(lane)
	changed := next != s.state
	s.state = next
	return changed
}

// DeployFromHolding deploys a held shooter by id.
// Returns true if the state changed.
func (s *Session) DeployFromHolding(id string) bool {
	next := s.state.DeployFromHolding(id)
	changed := next != s.state
	s.state = next
	return changed
}

// Tick advances the game by one tick.
func (s *Session) Tick() *State {
	s.state = s.state.Tick()
	return s.state
}

// Pump applies every tick the clock reports as due at now, one at a time,
// and returns how many were applied. It stops early once the game ends.
func (s *Session) Pump(now time.Time) int {
	due := s.clock.Due(now)
	applied := 0
	for i := 0; i < due && s.state.IsPlaying(); i++ {
		s.Tick()
		applied++
	}
	return applied
}

// Run ticks until the game ends or maxTicks is reached, deploying with
// policy before every tick. Returns the number of ticks applied.
func (s *Session) Run(policy Policy, maxTicks int) int {
	ticks := 0
	for ticks < maxTicks && s.state.IsPlaying() {
		if policy != nil {
			s.state = policy.Deploy(s.state)
		}
		s.Tick()
		ticks++
	}
	return ticks
}
