package spawn

// tickEpsilon absorbs float drift when a frame lands exactly on a tick.
const tickEpsilon = 1e-9

// Cadence is a repeating cooperative timer advanced by elapsed frame time.
type Cadence struct {
	period  float64
	elapsed float64
	running bool
}

// Start (re)starts the cadence with the given period in seconds.
// The first tick fires one full period after Start.
func (c *Cadence) Start(period float64) {
	c.period = period
	c.elapsed = 0
	c.running = period > 0
}

// Stop halts the cadence.
func (c *Cadence) Stop() {
	c.running = false
	c.elapsed = 0
}

// Running reports whether the cadence is ticking.
func (c *Cadence) Running() bool {
	return c.running
}

// Period returns the configured period.
func (c *Cadence) Period() float64 {
	return c.period
}

// Remaining returns the time until the next tick.
func (c *Cadence) Remaining() float64 {
	return c.period - c.elapsed
}

// Advance adds dt to the accumulator and returns how many ticks are due.
func (c *Cadence) Advance(dt float64) int {
	if !c.running {
		return 0
	}
	c.elapsed += dt
	ticks := 0
	for c.elapsed >= c.period-tickEpsilon {
		c.elapsed -= c.period
		ticks++
	}
	return ticks
}
