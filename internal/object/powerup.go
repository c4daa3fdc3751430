package object

import (
	"math"

	"github.com/tomz197/swoosh/internal/physics"
)

// ShieldPickup grants the craft a shield on contact.
type ShieldPickup struct {
	X, Y float64
	Size float64

	pulse float64
}

// NewShieldPickup creates a pickup at (x, y).
func NewShieldPickup(x, y, size float64) *ShieldPickup {
	return &ShieldPickup{X: x, Y: y, Size: size}
}

// Update animates the pickup.
func (p *ShieldPickup) Update() {
	p.pulse += 0.05
}

// Collides is a plain circle test.
func (p *ShieldPickup) Collides(c *Craft) bool {
	return physics.CirclesOverlap(p.X, p.Y, p.Size, c.X, c.Y, c.Radius)
}

// Draw renders a hexagon with a ring around it.
func (p *ShieldPickup) Draw(ctx DrawContext) {
	relY := ctx.Camera.RelativeY(p.Y)
	if relY+p.Size < 0 || relY-p.Size > ctx.Surface.Height() {
		return
	}
	ring := p.Size * (1 + math.Sin(p.pulse)*0.15)
	ctx.Surface.Circle(p.X, relY, ring, false)
	pts := polygon(nil, physics.RegularPolygon(6, p.Size*0.6, 0), p.X, relY, p.pulse/2)
	ctx.Surface.Polygon(pts, false)
}
