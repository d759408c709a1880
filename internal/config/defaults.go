package config

import (
	_ "embed"
)

//go:embed defaults/upball.yaml
var defaultUpballYAML []byte

// DefaultUpballConfig returns the default configuration.
func DefaultUpballConfig() UpballConfig {
	return UpballConfig{
		Spawn: SpawnConfig{
			MinX:               100,
			MaxX:               620,
			SpawnY:             -100,
			MinDistance:        80,
			RecentWindow:       3,
			MaxRetries:         10,
			StarSpeedFactor:    0.9,
			StarIntervalFactor: 0.7,
		},
		Field: FieldConfig{
			Width:        720,
			Height:       1280,
			DespawnY:     1400,
			HazardRadius: 45,
			StarRadius:   35,
			FallMargin:   100,
		},
		Ball: BallConfig{
			Y:         1050,
			StartX:    360,
			Radius:    25,
			TiltStep:  0.08,
			MaxTilt:   0.6,
			TiltDecay: 0.25,
			Gravity:   900,
			Friction:  0.3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultUpballYAML
}
