package analytic

import (
	"fmt"
	"math"

	"github.com/mikenye/geogen/numeric"
	"github.com/mikenye/geogen/options"
)

// Point represents a point in two-dimensional space with float64 coordinates.
//
// Point is adapted from the teacher library's point.Point: same accessor and
// vector-arithmetic shape (Coordinates, Add, Sub, DistanceToPoint,
// CrossProduct, DotProduct), narrowed to the float64-only case this core
// needs and with Eq always tolerance-based rather than opt-in.
type Point struct {
	x, y float64
}

// NewPoint creates a Point with the given coordinates.
func NewPoint(x, y float64) Point {
	return Point{x: x, y: y}
}

// X returns the x-coordinate.
func (p Point) X() float64 { return p.x }

// Y returns the y-coordinate.
func (p Point) Y() float64 { return p.y }

// Coordinates returns both coordinates.
func (p Point) Coordinates() (x, y float64) { return p.x, p.y }

// Add returns the component-wise sum of p and q, treating both as vectors.
func (p Point) Add(q Point) Point { return Point{p.x + q.x, p.y + q.y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.x - q.x, p.y - q.y} }

// Scale scales p by factor k relative to reference point ref.
func (p Point) Scale(ref Point, k float64) Point {
	return Point{ref.x + (p.x-ref.x)*k, ref.y + (p.y-ref.y)*k}
}

// Negate returns the point reflected through the origin.
func (p Point) Negate() Point { return Point{-p.x, -p.y} }

// DistanceSquaredToPoint returns the squared Euclidean distance to q.
func (p Point) DistanceSquaredToPoint(q Point) float64 {
	dx, dy := q.x-p.x, q.y-p.y
	return dx*dx + dy*dy
}

// DistanceToPoint returns the Euclidean distance to q.
func (p Point) DistanceToPoint(q Point) float64 {
	return math.Sqrt(p.DistanceSquaredToPoint(q))
}

// CrossProduct returns the 2D cross product (determinant) of vectors p and q:
// p.x*q.y - p.y*q.x. Zero indicates p and q are collinear with the origin.
func (p Point) CrossProduct(q Point) float64 {
	return p.x*q.y - p.y*q.x
}

// DotProduct returns the dot product of vectors p and q.
func (p Point) DotProduct(q Point) float64 {
	return p.x*q.x + p.y*q.y
}

// ReflectAcross returns p reflected through pivot (point reflection / central symmetry).
func (p Point) ReflectAcross(pivot Point) Point {
	return Point{2*pivot.x - p.x, 2*pivot.y - p.y}
}

// Midpoint returns the midpoint of p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{(p.x + q.x) / 2, (p.y + q.y) / 2}
}

// Eq reports whether p and q are equal within epsilon (default
// [options.DefaultEpsilon]), comparing each coordinate with
// [numeric.FloatEqualsScaled] so that large-magnitude points (e.g. a distant
// circumcenter) are not spuriously treated as distinct.
func (p Point) Eq(q Point, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	return numeric.FloatEqualsScaled(p.x, q.x, o.Epsilon) && numeric.FloatEqualsScaled(p.y, q.y, o.Epsilon)
}

// Collinear reports whether p, q, r lie on a common line within epsilon: the
// signed area of the triangle p,q,r is compared to zero on a
// magnitude-scaled threshold rather than compared exactly.
func Collinear(p, q, r Point, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	area2 := (q.x-p.x)*(r.y-p.y) - (q.y-p.y)*(r.x-p.x)
	scale := math.Max(1, math.Max(p.DistanceToPoint(q), p.DistanceToPoint(r)))
	return numeric.FloatEquals(area2, 0, o.Epsilon*scale*scale)
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.x, p.y)
}
