package core

import "time"

// RuntimeConfig holds the terminal and frame settings of one player session.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	FPS     int   // Frames per second driving the simulation
	Seed    int64 // Spawn RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     60,
	}
}

// Normalize fills zero or negative fields with defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	return c
}

// FrameDuration returns the wall time of one frame.
func (c RuntimeConfig) FrameDuration() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultConfig().FPS
	}
	return time.Second / time.Duration(fps)
}
