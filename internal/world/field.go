// Package world holds the playfield: descending entities, the ball on the
// tilting ramp, and the contact checks that report back to the game machine.
package world

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/upball/internal/config"
	"github.com/vovakirdan/upball/internal/core"
	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/logging"
	"github.com/vovakirdan/upball/internal/spawn"
)

// Reporter receives gameplay outcomes. *game.Machine implements it.
type Reporter interface {
	CollectStar()
	TriggerGameOver()
	TriggerVictory()
}

// Body is an entity moving down the field.
type Body struct {
	ID    int
	Kind  spawn.Kind
	X     float64
	Y     float64
	Speed float64
}

// Ball is the player's ball. It only moves along X; the ramp holds its Y.
type Ball struct {
	X  float64
	Y  float64
	VX float64
}

// Field implements spawn.World.
type Field struct {
	cfg      config.UpballConfig
	reporter Reporter
	logger   *log.Logger

	bodies []Body
	nextID int
	ball   Ball
	tilt   float64
}

// NewField creates an empty field. reporter may be set later with SetReporter.
func NewField(cfg config.UpballConfig, reporter Reporter, logger *log.Logger) *Field {
	f := &Field{
		cfg:      cfg,
		reporter: reporter,
		logger:   logging.OrDiscard(logger),
		bodies:   make([]Body, 0, 16),
	}
	f.ResetBall()
	return f
}

// SetReporter sets where contacts are reported.
func (f *Field) SetReporter(r Reporter) {
	f.reporter = r
}

// Spawn adds an entity at its spawn position.
func (f *Field) Spawn(e spawn.Entity) {
	f.nextID++
	f.bodies = append(f.bodies, Body{ID: f.nextID, Kind: e.Kind, X: e.X, Y: e.Y, Speed: e.Speed})
}

// Clear removes every entity.
func (f *Field) Clear() {
	f.bodies = f.bodies[:0]
}

// ResetBall puts the ball back at its start position on a level ramp.
func (f *Field) ResetBall() {
	f.ball = Ball{X: f.cfg.Ball.StartX, Y: f.cfg.Ball.Y}
	f.tilt = 0
}

// Nudge tilts the ramp one step; dir < 0 lowers the left side.
func (f *Field) Nudge(dir int) {
	switch {
	case dir < 0:
		f.tilt -= f.cfg.Ball.TiltStep
	case dir > 0:
		f.tilt += f.cfg.Ball.TiltStep
	}
	f.tilt = core.ClampF(f.tilt, -f.cfg.Ball.MaxTilt, f.cfg.Ball.MaxTilt)
}

// Step advances the field by dt seconds and reports contacts.
func (f *Field) Step(dt float64) {
	if dt <= 0 {
		return
	}
	f.stepBall(dt)
	f.moveBodies(dt)
	if f.resolveContacts() {
		return
	}
	if f.fellOff() {
		f.logger.Debug("ball fell off the ramp", "x", f.ball.X)
		f.report(Reporter.TriggerGameOver)
	}
}

func (f *Field) stepBall(dt float64) {
	b := f.cfg.Ball

	// Ease the ramp back toward level.
	decay := b.TiltDecay * dt
	switch {
	case f.tilt > decay:
		f.tilt -= decay
	case f.tilt < -decay:
		f.tilt += decay
	default:
		f.tilt = 0
	}

	f.ball.VX += b.Gravity * math.Sin(f.tilt) * dt
	f.ball.VX *= math.Max(0, 1-b.Friction*dt)
	f.ball.X += f.ball.VX * dt
}

func (f *Field) moveBodies(dt float64) {
	kept := f.bodies[:0]
	for _, body := range f.bodies {
		body.Y += body.Speed * dt
		if body.Y > f.cfg.Field.DespawnY {
			continue
		}
		kept = append(kept, body)
	}
	f.bodies = kept
}

// resolveContacts reports every body touching the ball. It returns true
// once the attempt has ended.
func (f *Field) resolveContacts() bool {
	kept := f.bodies[:0]
	ended := false
	for _, body := range f.bodies {
		if ended || !f.touches(body) {
			kept = append(kept, body)
			continue
		}
		switch body.Kind {
		case spawn.KindStar:
			f.report(Reporter.CollectStar)
		case spawn.KindHazard:
			f.report(Reporter.TriggerGameOver)
			ended = true
			kept = append(kept, body)
		case spawn.KindGoal:
			f.report(Reporter.TriggerVictory)
			ended = true
			kept = append(kept, body)
		}
	}
	f.bodies = kept
	return ended
}

func (f *Field) touches(body Body) bool {
	r := f.cfg.Field.HazardRadius
	if body.Kind == spawn.KindStar {
		r = f.cfg.Field.StarRadius
	}
	reach := r + f.cfg.Ball.Radius
	return math.Hypot(body.X-f.ball.X, body.Y-f.ball.Y) < reach
}

func (f *Field) fellOff() bool {
	margin := f.cfg.Field.FallMargin
	return f.ball.X < -margin || f.ball.X > f.cfg.Field.Width+margin
}

func (f *Field) report(fn func(Reporter)) {
	if f.reporter != nil {
		fn(f.reporter)
	}
}

// HandleEvent resets the ball whenever a fresh attempt begins.
func (f *Field) HandleEvent(e game.Event) {
	switch e.Kind {
	case game.EventLevelChanged:
		f.ResetBall()
	case game.EventStateChanged:
		if e.State == game.StatePlaying && !e.Resumed() {
			f.ResetBall()
		}
	}
}

// Ball returns the ball state.
func (f *Field) Ball() Ball {
	return f.ball
}

// Tilt returns the ramp angle in radians.
func (f *Field) Tilt() float64 {
	return f.tilt
}

// Bodies returns the entities on the field. The slice must not be modified.
func (f *Field) Bodies() []Body {
	return f.bodies
}

// Count returns how many entities of kind are on the field.
func (f *Field) Count(kind spawn.Kind) int {
	n := 0
	for _, b := range f.bodies {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// Size returns the field dimensions in world units.
func (f *Field) Size() (w, h float64) {
	return f.cfg.Field.Width, f.cfg.Field.Height
}

var (
	_ spawn.World   = (*Field)(nil)
	_ game.Listener = (*Field)(nil)
	_ Reporter      = (*game.Machine)(nil)
)
