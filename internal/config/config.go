// Package config provides YAML-based configuration for the spawn field and
// the ball, plus environment overrides for file locations.
package config

import (
	"errors"
	"fmt"
)

// UpballConfig contains all tunable configuration for the game.
type UpballConfig struct {
	Spawn SpawnConfig `yaml:"spawn"`
	Field FieldConfig `yaml:"field"`
	Ball  BallConfig  `yaml:"ball"`
}

// SpawnConfig defines where and how entities enter the field.
type SpawnConfig struct {
	MinX         float64 `yaml:"min_x"`         // Left edge of the spawn range
	MaxX         float64 `yaml:"max_x"`         // Right edge of the spawn range
	SpawnY       float64 `yaml:"spawn_y"`       // Y coordinate new entities appear at (above the field)
	MinDistance  float64 `yaml:"min_distance"`  // Minimum X gap to recent spawns
	RecentWindow int     `yaml:"recent_window"` // Number of recent X positions remembered
	MaxRetries   int     `yaml:"max_retries"`   // Rejected draws before a position is forced

	StarSpeedFactor    float64 `yaml:"star_speed_factor"`    // Collectible speed relative to hazards
	StarIntervalFactor float64 `yaml:"star_interval_factor"` // Collectible cadence relative to hazards
}

// FieldConfig defines the playfield geometry in world units.
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	DespawnY     float64 `yaml:"despawn_y"`     // Entities below this Y remove themselves
	HazardRadius float64 `yaml:"hazard_radius"` // Trigger radius of hazards and the goal
	StarRadius   float64 `yaml:"star_radius"`   // Trigger radius of collectibles
	FallMargin   float64 `yaml:"fall_margin"`   // How far past an edge the ball may roll before falling
}

// BallConfig defines the ball and ramp response.
type BallConfig struct {
	Y         float64 `yaml:"y"`          // Fixed Y of the ball on the ramp
	StartX    float64 `yaml:"start_x"`    // Reset position
	Radius    float64 `yaml:"radius"`     // Ball radius
	TiltStep  float64 `yaml:"tilt_step"`  // Tilt change per nudge, radians
	MaxTilt   float64 `yaml:"max_tilt"`   // Tilt limit, radians
	TiltDecay float64 `yaml:"tilt_decay"` // Tilt returned toward level per second, radians
	Gravity   float64 `yaml:"gravity"`    // Acceleration along the ramp at full tilt
	Friction  float64 `yaml:"friction"`   // Velocity damping per second (0-1)
}

// Validate checks that the configuration can drive a level.
func (c UpballConfig) Validate() error {
	var errs []error
	s := c.Spawn
	if s.MaxX <= s.MinX {
		errs = append(errs, fmt.Errorf("spawn.max_x (%v) must exceed spawn.min_x (%v)", s.MaxX, s.MinX))
	}
	if s.MinDistance < 0 {
		errs = append(errs, errors.New("spawn.min_distance must not be negative"))
	}
	if s.RecentWindow < 0 || s.MaxRetries < 0 {
		errs = append(errs, errors.New("spawn.recent_window and spawn.max_retries must not be negative"))
	}
	if s.StarSpeedFactor <= 0 || s.StarIntervalFactor <= 0 {
		errs = append(errs, errors.New("spawn star factors must be positive"))
	}

	f := c.Field
	if f.Width <= 0 || f.Height <= 0 {
		errs = append(errs, errors.New("field size must be positive"))
	}
	if f.DespawnY <= s.SpawnY {
		errs = append(errs, errors.New("field.despawn_y must be below spawn.spawn_y"))
	}

	b := c.Ball
	if b.Radius <= 0 {
		errs = append(errs, errors.New("ball.radius must be positive"))
	}
	if b.Friction < 0 || b.Friction > 1 {
		errs = append(errs, errors.New("ball.friction must be within 0..1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
