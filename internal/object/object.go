// Package object holds the simulated entities: the camera, the player craft,
// every obstacle variant, particles and pickups.
//
// World Y grows downward and the craft travels toward negative Y. Entities
// draw in view coordinates, converting with Camera.RelativeY.
package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Direction is an alias for the input package's Direction type.
type Direction = input.Direction

// Surface accepts draw primitives in view coordinates.
type Surface interface {
	Width() float64
	Height() float64
	Circle(x, y, r float64, filled bool)
	Ellipse(x, y, rx, ry, rotation float64, filled bool)
	// Polygon may modify points.
	Polygon(points []draw.Point, filled bool)
	Line(x1, y1, x2, y2 float64)
	Dot(x, y float64)
	Text(x, y float64, s string)
}

// Notifier receives fire-and-forget audio cues.
type Notifier interface {
	NotifyTurn()
	NotifyShieldHit()
	NotifyCrash()
	NotifyPickup()
}

// UpdateContext provides everything an entity needs during a tick.
type UpdateContext struct {
	Delta    time.Duration
	Now      time.Time
	Rand     *rand.Rand
	Camera   *Camera
	Craft    *Craft
	Notifier Notifier
}

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Surface Surface
	Camera  *Camera
	Now     time.Time
}

// Obstacle is a hazard in the scrolling field.
type Obstacle interface {
	// Update advances animation and motion. Returns true if the obstacle
	// removed itself (e.g. a comet that left the view).
	Update(ctx UpdateContext) (remove bool)

	// Draw renders the obstacle unless it is outside the viewport band.
	Draw(ctx DrawContext)

	// Collides reports whether the craft touches the obstacle.
	Collides(c *Craft) bool

	// DestructionParticles returns the debris emitted when a shielded craft
	// destroys the obstacle.
	DestructionParticles(rng *rand.Rand) []*Particle

	// Base returns the shared positional state.
	Base() *Body

	// Shift moves stored timestamps forward by d after a pause.
	Shift(d time.Duration)
}

// Body is the state shared by every obstacle variant.
type Body struct {
	Kind          config.Kind
	X, Y          float64
	Size          float64 // hit-test radius
	Rotation      float64 // radians, kept in [0, 2π)
	RotationSpeed float64 // radians per tick

	debris config.DebrisConfig
	unit   float64
}

// newBody creates a body with a random spin in [-maxSpin, maxSpin].
func newBody(kind config.Kind, x, y, size float64, cfg config.Config, rng *rand.Rand) Body {
	return Body{
		Kind:          kind,
		X:             x,
		Y:             y,
		Size:          size,
		RotationSpeed: (rng.Float64()*2 - 1) * cfg.Obstacles.MaxRotationSpeed,
		debris:        cfg.Obstacles.Debris,
		unit:          cfg.BaseUnit(),
	}
}

// Base returns the shared state so embedding types satisfy Obstacle.
func (b *Body) Base() *Body {
	return b
}

// Shift is a no-op for obstacles without timers.
func (b *Body) Shift(time.Duration) {}

// spin advances the rotation by one tick.
func (b *Body) spin() {
	b.Rotation = math.Mod(b.Rotation+b.RotationSpeed, 2*math.Pi)
	if b.Rotation < 0 {
		b.Rotation += 2 * math.Pi
	}
}

// circleHit is the plain circle test shared by round obstacles.
func (b *Body) circleHit(c *Craft, radius float64) bool {
	return physics.CirclesOverlap(b.X, b.Y, radius, c.X, c.Y, c.Radius)
}

// localOffset rotates the craft's offset from b into b's local frame.
func (b *Body) localOffset(c *Craft) physics.Vec {
	x, y := physics.Rotate(c.X-b.X, c.Y-b.Y, -b.Rotation)
	return physics.Vec{X: x, Y: y}
}

// onScreen returns the view Y of b and whether anything within extent of
// it can be visible.
func (b *Body) onScreen(ctx DrawContext, extent float64) (float64, bool) {
	relY := ctx.Camera.RelativeY(b.Y)
	if relY+extent < 0 || relY-extent > ctx.Surface.Height() {
		return relY, false
	}
	return relY, true
}

// DestructionParticles emits evenly spread debris.
func (b *Body) DestructionParticles(rng *rand.Rand) []*Particle {
	return SpawnDebris(b.X, b.Y, b.Size, b.unit, b.debris, rng)
}

// polygon transforms local vertices by rotation and translates them to
// (x, y), writing into dst.
func polygon(dst []draw.Point, local []physics.Vec, x, y, rotation float64) []draw.Point {
	dst = dst[:0]
	sin, cos := math.Sincos(rotation)
	for _, v := range local {
		dst = append(dst, draw.Point{
			X: x + v.X*cos - v.Y*sin,
			Y: y + v.X*sin + v.Y*cos,
		})
	}
	return dst
}

// Compile-time checks.
var (
	_ Obstacle = (*Simple)(nil)
	_ Obstacle = (*Complex)(nil)
	_ Obstacle = (*Belt)(nil)
	_ Obstacle = (*Pulsating)(nil)
	_ Obstacle = (*Moving)(nil)
	_ Obstacle = (*Shooting)(nil)
	_ Obstacle = (*Comet)(nil)
	_ Obstacle = (*BlackHole)(nil)
	_ Obstacle = (*Gate)(nil)
)
