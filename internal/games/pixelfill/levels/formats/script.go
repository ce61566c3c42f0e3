package formats

import (
	"fmt"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"gopkg.in/yaml.v3"
)

// YAMLScript is a recorded sequence of player commands:
//
//	seed: 42
//	actions:
//	  - {do: lane, lane: 0}
//	  - {do: tick, count: 30}
//	  - {do: held, id: s4}
type YAMLScript struct {
	Seed    uint64       `yaml:"seed,omitempty"`
	Actions []YAMLAction `yaml:"actions"`
}

// YAMLAction is one scripted command.
type YAMLAction struct {
	Do    string `yaml:"do"`
	Lane  int    `yaml:"lane,omitempty"`
	ID    string `yaml:"id,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// Script is a parsed replay script.
type Script struct {
	Seed    uint64 // 0 if the script does not pin one
	Actions []core.Action
}

// ParseScript parses a YAML replay script.
func ParseScript(data []byte) (Script, error) {
	var ys YAMLScript
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Script{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	script := Script{Seed: ys.Seed, Actions: make([]core.Action, 0, len(ys.Actions))}
	for i, ya := range ys.Actions {
		kind, err := core.ParseActionKind(ya.Do)
		if err != nil {
			return Script{}, fmt.Errorf("action %d: %w", i, err)
		}
		a := core.Action{Kind: kind}
		switch kind {
		case core.ActionDeployLane:
			if ya.Lane < 0 {
				return Script{}, fmt.Errorf("action %d: negative lane %d", i, ya.Lane)
			}
			a.Lane = ya.Lane
		case core.ActionDeployHeld:
			if ya.ID == "" {
				return Script{}, fmt.Errorf("action %d: held deploy needs an id", i)
			}
			a.ShooterID = ya.ID
		case core.ActionTick:
			a.Count = max(ya.Count, 1)
		}
		script.Actions = append(script.Actions, a)
	}
	return script, nil
}
