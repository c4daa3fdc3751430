package object

import (
	"math"

	"github.com/tomz197/swoosh/internal/physics"
)

// Projectile is a pellet fired by a Shooting asteroid.
type Projectile struct {
	X, Y   float64
	VX, VY float64 // per second
	Radius float64
}

// NewProjectile creates a projectile at (x, y) traveling at angle.
func NewProjectile(x, y, angle, speed, radius float64) Projectile {
	return Projectile{
		X:      x,
		Y:      y,
		VX:     math.Cos(angle) * speed,
		VY:     math.Sin(angle) * speed,
		Radius: radius,
	}
}

// Move advances the projectile by dt seconds.
func (p *Projectile) Move(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

// Hits reports whether the projectile touches the craft.
func (p *Projectile) Hits(c *Craft) bool {
	return physics.CirclesOverlap(p.X, p.Y, p.Radius, c.X, c.Y, c.Radius)
}

// Draw renders the projectile.
func (p *Projectile) Draw(ctx DrawContext) {
	relY := ctx.Camera.RelativeY(p.Y)
	if p.Radius < 4 {
		ctx.Surface.Dot(p.X, relY)
		return
	}
	ctx.Surface.Circle(p.X, relY, p.Radius, true)
}
