// Package config provides YAML-based game configuration loading and
// difficulty presets for PixelFill.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
)

// PixelFillConfig contains all configuration for PixelFill.
type PixelFillConfig struct {
	Rules     RulesConfig     `yaml:"rules"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
}

// RulesConfig defines gameplay limits.
type RulesConfig struct {
	ConveyorCapacity int    `yaml:"conveyor_capacity"`
	HoldingSlots     int    `yaml:"holding_slots"`
	Lanes            int    `yaml:"lanes"`
	TickMS           int    `yaml:"tick_ms"`
	MaxTicksPerPump  int    `yaml:"max_ticks_per_pump"`
	LineOfSight      string `yaml:"line_of_sight"` // "pass" or "block"
}

// GeneratorConfig defines how shooter ammo is drawn.
type GeneratorConfig struct {
	MinAmmo  int     `yaml:"min_ammo"`
	MaxAmmo  int     `yaml:"max_ammo"`
	AmmoStep int     `yaml:"ammo_step"`
	Skew     float64 `yaml:"skew"` // Exponent on the uniform draw, < 1 favours large ammo
}

// ServerConfig defines the SSH front-end.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig defines where progress is stored.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Validate checks the config for values the game cannot run with.
func (c PixelFillConfig) Validate() error {
	r := c.Rules
	switch {
	case r.ConveyorCapacity < 1:
		return fmt.Errorf("rules.conveyor_capacity must be at least 1, got %d", r.ConveyorCapacity)
	case r.HoldingSlots < 1:
		return fmt.Errorf("rules.holding_slots must be at least 1, got %d", r.HoldingSlots)
	case r.Lanes < 1:
		return fmt.Errorf("rules.lanes must be at least 1, got %d", r.Lanes)
	case r.TickMS < 1:
		return fmt.Errorf("rules.tick_ms must be at least 1, got %d", r.TickMS)
	case r.MaxTicksPerPump < 1:
		return fmt.Errorf("rules.max_ticks_per_pump must be at least 1, got %d", r.MaxTicksPerPump)
	}
	if _, ok := core.ParseLineOfSight(r.LineOfSight); !ok {
		return fmt.Errorf("rules.line_of_sight must be pass or block, got %q", r.LineOfSight)
	}

	g := c.Generator
	switch {
	case g.MinAmmo < 1:
		return fmt.Errorf("generator.min_ammo must be at least 1, got %d", g.MinAmmo)
	case g.MaxAmmo < g.MinAmmo:
		return fmt.Errorf("generator.max_ammo %d is below min_ammo %d", g.MaxAmmo, g.MinAmmo)
	case g.AmmoStep < 1:
		return fmt.Errorf("generator.ammo_step must be at least 1, got %d", g.AmmoStep)
	case g.Skew <= 0:
		return fmt.Errorf("generator.skew must be positive, got %v", g.Skew)
	}
	return nil
}

// CoreRules converts the rules section for the simulation core.
func (c PixelFillConfig) CoreRules() core.Rules {
	sight, _ := core.ParseLineOfSight(c.Rules.LineOfSight)
	return core.Rules{
		ConveyorCapacity: c.Rules.ConveyorCapacity,
		HoldingSlots:     c.Rules.HoldingSlots,
		TickDuration:     time.Duration(c.Rules.TickMS) * time.Millisecond,
		MaxTicksPerPump:  c.Rules.MaxTicksPerPump,
		Sight:            sight,
	}
}

// GenParams converts the generator section for the simulation core.
func (c PixelFillConfig) GenParams() core.GenParams {
	return core.GenParams{
		Lanes:    c.Rules.Lanes,
		MinAmmo:  c.Generator.MinAmmo,
		MaxAmmo:  c.Generator.MaxAmmo,
		AmmoStep: c.Generator.AmmoStep,
		Skew:     c.Generator.Skew,
	}
}

// Address returns host:port for the SSH server.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
