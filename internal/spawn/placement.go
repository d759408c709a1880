package spawn

import "math"

// Rand is the random source used for placement. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Placer picks spawn X positions that avoid clustering with recent spawns.
type Placer struct {
	rng         Rand
	minX, maxX  float64
	minDistance float64
	window      int
	maxRetries  int
	recent      []float64
}

// NewPlacer creates a placer drawing from [minX, maxX].
func NewPlacer(rng Rand, minX, maxX, minDistance float64, window, maxRetries int) *Placer {
	return &Placer{
		rng:         rng,
		minX:        minX,
		maxX:        maxX,
		minDistance: minDistance,
		window:      window,
		maxRetries:  maxRetries,
		recent:      make([]float64, 0, window+1),
	}
}

// Uniform draws a position from the full range without any clustering check.
func (p *Placer) Uniform() float64 {
	return p.minX + p.rng.Float64()*(p.maxX-p.minX)
}

// Pick draws a position at least minDistance from every recent position.
// After maxRetries rejected draws the next draw is accepted as is and
// forced is true. Pick does not record the result; call Track for that.
func (p *Placer) Pick() (x float64, forced bool) {
	for attempt := 1; ; attempt++ {
		x = p.Uniform()
		if !p.tooClose(x) {
			return x, false
		}
		if attempt > p.maxRetries {
			return x, true
		}
	}
}

func (p *Placer) tooClose(x float64) bool {
	for _, r := range p.recent {
		if math.Abs(x-r) < p.minDistance {
			return true
		}
	}
	return false
}

// Track records an accepted position, evicting the oldest beyond the window.
func (p *Placer) Track(x float64) {
	if p.window <= 0 {
		return
	}
	p.recent = append(p.recent, x)
	if len(p.recent) > p.window {
		p.recent = append(p.recent[:0], p.recent[1:]...)
	}
}

// Recent returns a copy of the tracked positions, oldest first.
func (p *Placer) Recent() []float64 {
	return append([]float64(nil), p.recent...)
}

// Reset forgets all tracked positions.
func (p *Placer) Reset() {
	p.recent = p.recent[:0]
}
