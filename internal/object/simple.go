package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Shape is the outline of a simple asteroid.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeTriangle
	ShapeSquare
)

func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	default:
		return "circle"
	}
}

// squareHalf scales a square's half side so its area is close to the
// other shapes of the same size.
const squareHalf = 0.7

// Simple is a rotating asteroid with a basic shape.
type Simple struct {
	Body
	Shape Shape

	outline []float64 // jagged radii for drawing round asteroids
	points  []draw.Point
}

// NewSimple creates a simple asteroid with a random shape.
func NewSimple(cfg config.Config, rng *rand.Rand, x, y, size float64) *Simple {
	s := &Simple{
		Body:  newBody(config.KindSimple, x, y, size, cfg, rng),
		Shape: Shape(rng.Intn(3)),
	}

	// 8-12 vertices, slightly inside the hit circle.
	n := 8 + rng.Intn(5)
	s.outline = make([]float64, n)
	for i := range s.outline {
		s.outline[i] = size * (0.85 + rng.Float64()*0.15)
	}
	return s
}

// Update rotates the asteroid.
func (s *Simple) Update(UpdateContext) bool {
	s.spin()
	return false
}

// Collides uses a bounding circle first, then the exact shape.
func (s *Simple) Collides(c *Craft) bool {
	if physics.Distance(s.X, s.Y, c.X, c.Y) > s.Size+c.Radius {
		return false
	}

	switch s.Shape {
	case ShapeTriangle:
		v := s.triangle()
		return physics.PointInTriangleOrNearEdge(s.localOffset(c), v[0], v[1], v[2], c.Radius)
	case ShapeSquare:
		local := s.localOffset(c)
		half := s.Size * squareHalf
		return math.Abs(local.X) <= half+c.Radius && math.Abs(local.Y) <= half+c.Radius
	default:
		return s.circleHit(c, s.Size)
	}
}

// triangle returns the vertices in the local frame, pointing up.
func (s *Simple) triangle() [3]physics.Vec {
	cos, sin := math.Cos(math.Pi/6), math.Sin(math.Pi/6)
	return [3]physics.Vec{
		{X: 0, Y: -s.Size},
		{X: s.Size * cos, Y: s.Size * sin},
		{X: -s.Size * cos, Y: s.Size * sin},
	}
}

// Draw renders the asteroid as a filled polygon.
func (s *Simple) Draw(ctx DrawContext) {
	relY, ok := s.onScreen(ctx, s.Size)
	if !ok {
		return
	}

	var local []physics.Vec
	switch s.Shape {
	case ShapeTriangle:
		v := s.triangle()
		local = v[:]
	case ShapeSquare:
		h := s.Size * squareHalf
		local = []physics.Vec{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	default:
		local = make([]physics.Vec, len(s.outline))
		for i, r := range s.outline {
			a := float64(i) * 2 * math.Pi / float64(len(s.outline))
			local[i] = physics.Vec{X: math.Cos(a) * r, Y: math.Sin(a) * r}
		}
	}

	s.points = polygon(s.points, local, s.X, relY, s.Rotation)
	ctx.Surface.Polygon(s.points, true)
}
