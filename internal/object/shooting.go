package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Shooting is a star-shaped asteroid that periodically fires a projectile
// in a random direction.
type Shooting struct {
	Body
	Projectiles []Projectile

	interval time.Duration
	lastShot time.Time
	speed    float64
	pellet   float64
	viewH    float64
	points   []draw.Point
}

// NewShooting creates a shooting asteroid. The first shot comes one
// interval after now.
func NewShooting(cfg config.Config, rng *rand.Rand, x, y, size float64, now time.Time) *Shooting {
	sc := cfg.Obstacles.Shooting
	return &Shooting{
		Body:     newBody(config.KindShooting, x, y, size, cfg, rng),
		interval: sc.Interval,
		lastShot: now,
		speed:    cfg.Units(sc.ProjectileUnits),
		pellet:   size * sc.ProjectileFactor,
		viewH:    cfg.ViewHeight,
	}
}

// Update fires when the interval has elapsed, moves projectiles and drops
// the ones that left the view band.
func (s *Shooting) Update(ctx UpdateContext) bool {
	s.spin()

	if ctx.Now.Sub(s.lastShot) > s.interval {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		s.Projectiles = append(s.Projectiles, NewProjectile(s.X, s.Y, angle, s.speed, s.pellet))
		s.lastShot = ctx.Now
	}

	dt := ctx.Delta.Seconds()
	kept := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		p.Move(dt)
		relY := ctx.Camera.RelativeY(p.Y)
		if relY > -s.Size && relY < s.viewH+s.Size {
			kept = append(kept, p)
		}
	}
	s.Projectiles = kept
	return false
}

// Shift delays the next shot by the paused duration.
func (s *Shooting) Shift(d time.Duration) {
	s.lastShot = s.lastShot.Add(d)
}

// Collides checks the body circle and every projectile.
func (s *Shooting) Collides(c *Craft) bool {
	if physics.Distance(s.X, s.Y, c.X, c.Y) < s.Size+c.Radius {
		return true
	}
	for i := range s.Projectiles {
		if s.Projectiles[i].Hits(c) {
			return true
		}
	}
	return false
}

// Draw renders the eight-point star and its projectiles.
func (s *Shooting) Draw(ctx DrawContext) {
	for i := range s.Projectiles {
		s.Projectiles[i].Draw(ctx)
	}

	relY, ok := s.onScreen(ctx, s.Size)
	if !ok {
		return
	}
	star := make([]physics.Vec, 8)
	for i := range star {
		r := s.Size
		if i%2 == 1 {
			r *= 0.5
		}
		a := float64(i) * math.Pi / 4
		star[i] = physics.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	s.points = polygon(s.points, star, s.X, relY, s.Rotation)
	ctx.Surface.Polygon(s.points, true)
}
