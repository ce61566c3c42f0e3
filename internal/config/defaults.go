package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pixelfill.yaml
var defaultPixelFillYAML []byte

// DefaultPixelFillConfig returns the default PixelFill configuration.
func DefaultPixelFillConfig() PixelFillConfig {
	return PixelFillConfig{
		Rules: RulesConfig{
			ConveyorCapacity: 5,
			HoldingSlots:     5,
			Lanes:            3,
			TickMS:           100,
			MaxTicksPerPump:  3,
			LineOfSight:      "pass",
		},
		Generator: GeneratorConfig{
			MinAmmo:  10,
			MaxAmmo:  40,
			AmmoStep: 5,
			Skew:     0.5,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: "~/.pixelfill/ssh_host_key",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			DBPath: "~/.pixelfill/pixelfill.db",
		},
	}
}
