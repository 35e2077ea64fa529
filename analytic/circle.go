package analytic

import (
	"fmt"
	"math"

	"github.com/mikenye/geogen/numeric"
	"github.com/mikenye/geogen/options"
)

// Circle represents a circle in 2D space with a center [Point] and a
// non-negative radius, adapted from the teacher's circle.Circle (same
// center/radius shape, Area/Circumference/Contains idiom) narrowed to the
// float64-only case and with tolerance-based equality throughout.
type Circle struct {
	center Point
	radius float64
}

// NewCircle creates a Circle with the given center and radius. Negative
// radii are reflected positive, mirroring the teacher's constructor.
func NewCircle(center Point, radius float64) Circle {
	return Circle{center: center, radius: numeric.Abs(radius)}
}

// Center returns the circle's center point.
func (c Circle) Center() Point { return c.center }

// Radius returns the circle's radius.
func (c Circle) Radius() float64 { return c.radius }

// Area returns π·r².
func (c Circle) Area() float64 { return math.Pi * c.radius * c.radius }

// Circumference returns 2·π·r.
func (c Circle) Circumference() float64 { return 2 * math.Pi * c.radius }

// CircleThrough constructs the unique circle through three points. It
// reports [ErrInconstructible] if the points are collinear (within epsilon),
// including the degenerate case of coincident points.
func CircleThrough(p, q, r Point, opts ...options.GeometryOptionsFunc) (Circle, error) {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	if Collinear(p, q, r, options.WithEpsilon(o.Epsilon)) {
		logDebugf("CircleThrough: %s, %s, %s collinear within epsilon %g, inconstructible", p, q, r, o.Epsilon)
		return Circle{}, fmt.Errorf("circle through %s, %s, %s: %w", p, q, r, ErrInconstructible)
	}

	// Solve the perpendicular-bisector intersection directly via the
	// determinant form of the circumcenter (standard closed form).
	ax, ay := p.x, p.y
	bx, by := q.x, q.y
	cx, cy := r.x, r.y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	// d == 0 would mean collinear, already excluded above.
	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d

	center := Point{ux, uy}
	return Circle{center: center, radius: center.DistanceToPoint(p)}, nil
}

// Contains reports whether p lies on the circumference of c within epsilon.
func (c Circle) Contains(p Point, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	scale := math.Max(1, c.radius)
	return numeric.FloatEquals(c.center.DistanceToPoint(p), c.radius, o.Epsilon*scale)
}

// Eq reports whether c and c2 share the same center and radius within epsilon.
func (c Circle) Eq(c2 Circle, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	return c.center.Eq(c2.center, options.WithEpsilon(o.Epsilon)) &&
		numeric.FloatEqualsScaled(c.radius, c2.radius, o.Epsilon)
}

// IsTangentToCircle reports whether c and c2 touch at exactly one point
// (internally or externally tangent) within epsilon.
func (c Circle) IsTangentToCircle(c2 Circle, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	d := c.center.DistanceToPoint(c2.center)
	scale := math.Max(1, math.Max(c.radius, c2.radius))
	eps := o.Epsilon * scale
	externally := numeric.FloatEquals(d, c.radius+c2.radius, eps)
	internally := numeric.FloatEquals(d, math.Abs(c.radius-c2.radius), eps)
	return externally || internally
}

// IsTangentToLine reports whether l touches c at exactly one point within epsilon.
func (c Circle) IsTangentToLine(l Line, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	a, b, cc := l.Normal()
	dist := math.Abs(a*c.center.x + b*c.center.y + cc) // (a,b) already unit
	scale := math.Max(1, c.radius)
	return numeric.FloatEquals(dist, c.radius, o.Epsilon*scale)
}

// IntersectLine returns the 0, 1, or 2 points where l meets c.
func (c Circle) IntersectLine(l Line, opts ...options.GeometryOptionsFunc) []Point {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	a, b, cc := l.Normal()
	// Signed distance from center to line (a,b unit normal).
	d := a*c.center.x + b*c.center.y + cc
	// Foot of perpendicular from center to l.
	foot := Point{c.center.x - a*d, c.center.y - b*d}

	discriminant := c.radius*c.radius - d*d
	scale := math.Max(1, c.radius*c.radius)
	if discriminant < -o.Epsilon*scale {
		return nil
	}
	if discriminant < o.Epsilon*scale {
		return []Point{foot}
	}
	h := math.Sqrt(discriminant)
	// Direction along the line: (-b, a).
	dx, dy := -b*h, a*h
	return []Point{
		{foot.x + dx, foot.y + dy},
		{foot.x - dx, foot.y - dy},
	}
}

// String returns "Circle(center, radius)".
func (c Circle) String() string {
	return fmt.Sprintf("Circle(%s,%g)", c.center, c.radius)
}
