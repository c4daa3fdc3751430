package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Satellite orbits a Complex asteroid.
type Satellite struct {
	Angle    float64
	Distance float64
	Size     float64
}

// Complex is a diamond-shaped asteroid with orbiting satellites. Satellites
// share one orbit speed and are not affected by the body's rotation.
type Complex struct {
	Body
	Satellites []Satellite

	orbitSpeed float64
	hitbox     float64
	points     []draw.Point
}

// NewComplex creates a complex asteroid. The body is drawn at 80% of size
// while satellites are placed relative to the full size.
func NewComplex(cfg config.Config, rng *rand.Rand, x, y, size float64) *Complex {
	cc := cfg.Obstacles.Complex
	c := &Complex{
		Body:       newBody(config.KindComplex, x, y, size*0.8, cfg, rng),
		orbitSpeed: cc.MinOrbitSpeed + rng.Float64()*(cc.MaxOrbitSpeed-cc.MinOrbitSpeed),
		hitbox:     cc.HitboxFactor,
	}

	n := cc.MinSatellites + rng.Intn(cc.MaxSatellites-cc.MinSatellites+1)
	for i := 0; i < n; i++ {
		c.Satellites = append(c.Satellites, Satellite{
			Angle:    2 * math.Pi * float64(i) / float64(n),
			Distance: size * cc.OrbitFactor,
			Size:     size * cc.SatelliteFactor,
		})
	}
	return c
}

// Update rotates the body and advances the satellites along their orbit.
func (c *Complex) Update(UpdateContext) bool {
	c.spin()
	for i := range c.Satellites {
		c.Satellites[i].Angle += c.orbitSpeed
	}
	return false
}

// SatellitePosition returns the world position of satellite i.
func (c *Complex) SatellitePosition(i int) (float64, float64) {
	s := c.Satellites[i]
	return c.X + math.Cos(s.Angle)*s.Distance, c.Y + math.Sin(s.Angle)*s.Distance
}

// Collides checks the body and every satellite with slightly reduced hitboxes.
func (c *Complex) Collides(craft *Craft) bool {
	if physics.Distance(c.X, c.Y, craft.X, craft.Y) < (c.Size+craft.Radius)*c.hitbox {
		return true
	}
	for i, s := range c.Satellites {
		x, y := c.SatellitePosition(i)
		if physics.Distance(x, y, craft.X, craft.Y) < (s.Size+craft.Radius)*c.hitbox {
			return true
		}
	}
	return false
}

// Draw renders the diamond body and its satellites.
func (c *Complex) Draw(ctx DrawContext) {
	extent := c.Size
	if len(c.Satellites) > 0 {
		extent = c.Satellites[0].Distance + c.Satellites[0].Size
	}
	relY, ok := c.onScreen(ctx, extent)
	if !ok {
		return
	}

	diamond := []physics.Vec{
		{X: 0, Y: -c.Size}, {X: c.Size, Y: 0}, {X: 0, Y: c.Size}, {X: -c.Size, Y: 0},
	}
	c.points = polygon(c.points, diamond, c.X, relY, c.Rotation)
	ctx.Surface.Polygon(c.points, true)

	for i, s := range c.Satellites {
		x, y := c.SatellitePosition(i)
		ctx.Surface.Circle(x, ctx.Camera.RelativeY(y), s.Size, true)
	}
}
