package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Moving is a pentagon drifting horizontally around where it spawned.
type Moving struct {
	Body
	OriginX   float64
	Direction Direction

	speed     float64 // per second
	amplitude float64
	verts     []physics.Vec
	points    []draw.Point
}

// NewMoving creates a moving pentagon. Its body is 80% of size.
func NewMoving(cfg config.Config, rng *rand.Rand, x, y, size float64) *Moving {
	dir := input.Right
	if rng.Float64() < 0.5 {
		dir = input.Left
	}
	return &Moving{
		Body:      newBody(config.KindMoving, x, y, size*0.8, cfg, rng),
		OriginX:   x,
		Direction: dir,
		speed:     cfg.Units(cfg.Obstacles.Moving.SpeedUnits),
		amplitude: cfg.ViewWidth * cfg.Obstacles.Moving.AmplitudeFraction,
	}
}

// Update drifts the pentagon and reverses it past the amplitude.
func (m *Moving) Update(ctx UpdateContext) bool {
	m.spin()
	m.X += m.speed * float64(m.Direction) * ctx.Delta.Seconds()
	if math.Abs(m.X-m.OriginX) > m.amplitude {
		m.Direction = -m.Direction
	}
	return false
}

// vertices returns the pentagon in world space, first vertex pointing up
// before rotation.
func (m *Moving) vertices() []physics.Vec {
	m.verts = m.verts[:0]
	for _, v := range physics.RegularPolygon(5, m.Size, -math.Pi/2+m.Rotation) {
		m.verts = append(m.verts, physics.Vec{X: m.X + v.X, Y: m.Y + v.Y})
	}
	return m.verts
}

// Collides rejects far crafts by distance, then tests the pentagon.
func (m *Moving) Collides(c *Craft) bool {
	if physics.Distance(m.X, m.Y, c.X, c.Y) > m.Size+c.Radius {
		return false
	}
	return physics.PointInPolygonOrNearEdge(physics.Vec{X: c.X, Y: c.Y}, m.vertices(), c.Radius)
}

func (m *Moving) Draw(ctx DrawContext) {
	relY, ok := m.onScreen(ctx, m.Size)
	if !ok {
		return
	}
	m.points = polygon(m.points, physics.RegularPolygon(5, m.Size, -math.Pi/2), m.X, relY, m.Rotation)
	ctx.Surface.Polygon(m.points, true)
}
