package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultPixelFillConfig()
	if err := yaml.Unmarshal(defaultPixelFillYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultPixelFillConfig() {
		t.Errorf("embedded defaults drifted:\n%+v\nwant\n%+v", cfg, DefaultPixelFillConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadPixelFillCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  holding_slots: 2\n  line_of_sight: block\ngenerator:\n  max_ammo: 20\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPixelFill(path)
	if err != nil {
		t.Fatalf("LoadPixelFill failed: %v", err)
	}
	if cfg.Rules.HoldingSlots != 2 || cfg.Generator.MaxAmmo != 20 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Rules.ConveyorCapacity != 5 || cfg.Generator.MinAmmo != 10 {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}

	rules := cfg.CoreRules()
	if rules.Sight != core.SightSolidBlocks {
		t.Errorf("expected block sight, got %s", rules.Sight)
	}
	if rules.TickDuration != 100*time.Millisecond {
		t.Errorf("expected 100ms ticks, got %v", rules.TickDuration)
	}
	if gen := cfg.GenParams(); gen.Lanes != 3 || gen.MaxAmmo != 20 {
		t.Errorf("unexpected gen params %+v", gen)
	}
}

func TestLoadPixelFillErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "rules: ["},
		{"zero holding", "rules:\n  holding_slots: 0\n"},
		{"unknown sight", "rules:\n  line_of_sight: wall\n"},
		{"inverted ammo window", "generator:\n  min_ammo: 30\n  max_ammo: 20\n"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPixelFill(path); err == nil {
				t.Errorf("case %d: expected error", i)
			}
		})
	}

	if _, err := LoadPixelFill(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		holding int
		sight   string
	}{
		{DifficultyEasy, 7, "pass"},
		{DifficultyNormal, 5, "pass"},
		{DifficultyHard, 3, "block"},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPixelFillConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Rules.HoldingSlots != tt.holding || cfg.Rules.LineOfSight != tt.sight {
				t.Errorf("got holding %d sight %s", cfg.Rules.HoldingSlots, cfg.Rules.LineOfSight)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config invalid: %v", err)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("empty preset should be normal, got %q %v", p, err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.pixelfill/db")
	if err != nil || got != filepath.Join(home, ".pixelfill", "db") {
		t.Errorf("ExpandHome = %q, %v", got, err)
	}
	if got, _ := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("absolute path changed: %q", got)
	}
}
