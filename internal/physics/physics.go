// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Vec is a 2D point or offset in world units.
type Vec struct {
	X, Y float64
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Touching circles
// (distance exactly r1+r2) do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Rotate rotates the offset (x, y) by angle radians around the origin.
func Rotate(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

// SegmentDistance returns the distance from point p to the segment a-b.
// A degenerate segment is treated as the point a.
func SegmentDistance(p, a, b Vec) float64 {
	cx := b.X - a.X
	cy := b.Y - a.Y
	lenSq := cx*cx + cy*cy

	t := 0.0
	if lenSq != 0 {
		t = ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / lenSq
	}

	var nx, ny float64
	switch {
	case t < 0:
		nx, ny = a.X, a.Y
	case t > 1:
		nx, ny = b.X, b.Y
	default:
		nx, ny = a.X+t*cx, a.Y+t*cy
	}
	return Distance(p.X, p.Y, nx, ny)
}

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd crossing rule. Vertices may be in either winding order.
func PointInPolygon(p Vec, vertices []Vec) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// PointInPolygonOrNearEdge reports whether a circle of the given radius
// centred on p touches the polygon: either p is within radius of an edge,
// or p is inside the polygon.
func PointInPolygonOrNearEdge(p Vec, vertices []Vec, radius float64) bool {
	n := len(vertices)
	for i := 0; i < n; i++ {
		if SegmentDistance(p, vertices[i], vertices[(i+1)%n]) <= radius {
			return true
		}
	}
	return PointInPolygon(p, vertices)
}

// PointInTriangleOrNearEdge is the triangle specialisation of
// PointInPolygonOrNearEdge using the sign-of-area inside test.
func PointInTriangleOrNearEdge(p, v1, v2, v3 Vec, radius float64) bool {
	if SegmentDistance(p, v1, v2) <= radius ||
		SegmentDistance(p, v2, v3) <= radius ||
		SegmentDistance(p, v3, v1) <= radius {
		return true
	}
	return PointInTriangle(p, v1, v2, v3)
}

// PointInTriangle reports whether p lies inside (or on the border of)
// the triangle v1 v2 v3.
func PointInTriangle(p, v1, v2, v3 Vec) bool {
	d1 := edgeSign(p, v1, v2)
	d2 := edgeSign(p, v2, v3)
	d3 := edgeSign(p, v3, v1)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b Vec) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// PointInEllipse reports whether the local offset (x, y) lies inside an
// axis-aligned ellipse with semi-axes rx, ry centred on the origin.
func PointInEllipse(x, y, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	nx := x / rx
	ny := y / ry
	return nx*nx+ny*ny <= 1
}

// RegularPolygon returns n vertices on a circle of the given radius,
// starting at startAngle and going clockwise in screen space.
func RegularPolygon(n int, radius, startAngle float64) []Vec {
	verts := make([]Vec, n)
	for i := range verts {
		a := startAngle + float64(i)*2*math.Pi/float64(n)
		verts[i] = Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return verts
}
