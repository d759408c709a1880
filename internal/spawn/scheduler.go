// Package spawn schedules the hazards, collectibles and the goal that descend
// onto the ramp during a level.
package spawn

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/upball/internal/config"
	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/logging"
)

// Kind identifies a spawned entity type.
type Kind int

const (
	KindHazard Kind = iota
	KindStar
	KindGoal
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindHazard:
		return "hazard"
	case KindStar:
		return "star"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Entity is a spawn request: where an entity appears and how fast it descends.
type Entity struct {
	Kind  Kind
	X     float64
	Y     float64
	Speed float64
}

// World creates and removes the entities the scheduler asks for.
type World interface {
	Spawn(e Entity)
	Clear()
}

// Stats is a snapshot of the scheduler counters.
type Stats struct {
	Active           bool
	Level            int
	ObstaclesSpawned int
	ObstaclesTarget  int
	StarsSpawned     int
	StarsTarget      int
	GoalSpawned      bool
}

// Scheduler drives two cadences: hazards every SpawnInterval seconds and
// collectibles every StarIntervalFactor*SpawnInterval seconds. Once every
// hazard is out, the next hazard tick spawns the goal and stops both.
type Scheduler struct {
	cfg    config.SpawnConfig
	world  World
	placer *Placer
	logger *log.Logger

	hazards Cadence
	stars   Cadence

	active    bool
	suspended bool
	fresh     bool // started by LevelChanged, awaiting its StateChanged
	level     int
	speed     float64

	obstaclesSpawned int
	obstaclesTarget  int
	starsSpawned     int
	starsTarget      int
	goalSpawned      bool
}

// NewScheduler creates an idle scheduler placing entities with rng.
func NewScheduler(cfg config.SpawnConfig, world World, rng Rand, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		world:  world,
		placer: NewPlacer(rng, cfg.MinX, cfg.MaxX, cfg.MinDistance, cfg.RecentWindow, cfg.MaxRetries),
		logger: logging.OrDiscard(logger),
	}
}

// StartSpawning resets the counters for level and (re)starts both cadences.
func (s *Scheduler) StartSpawning(level int) {
	d := game.DifficultyFor(level)

	s.level = level
	s.obstaclesSpawned = 0
	s.starsSpawned = 0
	s.goalSpawned = false
	s.placer.Reset()
	s.active = true
	s.suspended = false
	s.fresh = false

	s.speed = d.ObstacleSpeed
	s.obstaclesTarget = d.Obstacles
	s.starsTarget = d.Stars

	s.hazards.Start(d.SpawnInterval)
	s.stars.Start(d.SpawnInterval * s.cfg.StarIntervalFactor)

	s.logger.Debug("spawning started",
		"lvl", level,
		"speed", s.speed,
		"interval", d.SpawnInterval,
		"obstacles", s.obstaclesTarget,
		"stars", s.starsTarget,
	)
}

// StopSpawning halts both cadences.
func (s *Scheduler) StopSpawning() {
	s.active = false
	s.hazards.Stop()
	s.stars.Stop()
}

// ClearObstacles removes every spawned entity from the world.
func (s *Scheduler) ClearObstacles() {
	s.world.Clear()
}

// Active reports whether the scheduler is spawning.
func (s *Scheduler) Active() bool {
	return s.active
}

// Stats returns the current counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Active:           s.active,
		Level:            s.level,
		ObstaclesSpawned: s.obstaclesSpawned,
		ObstaclesTarget:  s.obstaclesTarget,
		StarsSpawned:     s.starsSpawned,
		StarsTarget:      s.starsTarget,
		GoalSpawned:      s.goalSpawned,
	}
}

// Advance moves both cadences forward by dt seconds. Ticks falling inside
// dt fire in time order, hazards first on a tie, so nothing can follow the
// goal even when a frame is long.
func (s *Scheduler) Advance(dt float64) {
	if s.suspended {
		return
	}
	for dt > 0 && (s.hazards.Running() || s.stars.Running()) {
		step := dt
		if s.hazards.Running() && s.hazards.Remaining() < step {
			step = s.hazards.Remaining()
		}
		if s.stars.Running() && s.stars.Remaining() < step {
			step = s.stars.Remaining()
		}
		if step < 0 {
			step = 0
		}
		dt -= step

		if s.hazards.Advance(step) > 0 {
			s.onHazardTick()
		}
		if s.stars.Advance(step) > 0 {
			s.onStarTick()
		}
	}
}

func (s *Scheduler) onHazardTick() {
	if !s.active {
		return
	}
	switch {
	case s.obstaclesSpawned < s.obstaclesTarget:
		s.spawnTracked(KindHazard, s.speed)
		s.obstaclesSpawned++
	case !s.goalSpawned:
		s.world.Spawn(Entity{Kind: KindGoal, X: s.placer.Uniform(), Y: s.cfg.SpawnY, Speed: s.speed})
		s.goalSpawned = true
		s.StopSpawning()
		s.logger.Debug("goal spawned", "lvl", s.level)
	}
}

func (s *Scheduler) onStarTick() {
	if !s.active || s.goalSpawned || s.starsSpawned >= s.starsTarget {
		return
	}
	s.spawnTracked(KindStar, s.speed*s.cfg.StarSpeedFactor)
	s.starsSpawned++
}

func (s *Scheduler) spawnTracked(kind Kind, speed float64) {
	x, forced := s.placer.Pick()
	if forced {
		s.logger.Debug("spawn position forced", "kind", kind, "x", x)
	}
	s.world.Spawn(Entity{Kind: kind, X: x, Y: s.cfg.SpawnY, Speed: speed})
	s.placer.Track(x)
}

// HandleEvent keeps the scheduler in step with the state machine.
func (s *Scheduler) HandleEvent(e game.Event) {
	switch e.Kind {
	case game.EventLevelChanged:
		s.ClearObstacles()
		s.StartSpawning(e.Level)
		s.fresh = true

	case game.EventStateChanged:
		switch e.State {
		case game.StatePlaying:
			if s.fresh {
				s.fresh = false
				return
			}
			if e.Resumed() {
				s.suspended = false
				return
			}
			// Restart or retry: the previous attempt's entities go first.
			s.ClearObstacles()
			s.StartSpawning(e.Level)
		case game.StatePaused:
			s.suspended = true
		case game.StateGameOver, game.StateVictory:
			s.StopSpawning()
		case game.StateMenu, game.StateLevelSelect:
			s.StopSpawning()
			s.ClearObstacles()
		}
	}
}

var _ game.Listener = (*Scheduler)(nil)
