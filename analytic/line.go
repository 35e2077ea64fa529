package analytic

import (
	"fmt"
	"math"

	"github.com/mikenye/geogen/numeric"
	"github.com/mikenye/geogen/options"
)

// Line represents an infinite line in normal form: a*x + b*y + c = 0, with
// (a,b) a unit vector. The sign of (a,b,c) is canonicalized so that two lines
// built by different routes (e.g. Through(p,q) vs Through(q,p), or a
// perpendicular built two different ways) compare equal.
//
// Unlike the teacher's LineSegment (a finite segment between two endpoints,
// oriented "upper" before "lower" for sweep-line purposes), Line is infinite
// and carries no endpoints — the contextual picture only ever needs the line
// *through* two points, never the segment between them.
type Line struct {
	a, b, c float64
}

// canonicalizeLine normalizes (a,b,c) to a unit normal with a fixed sign
// convention: a > 0, or a == 0 and b > 0.
func canonicalizeLine(a, b, c float64) Line {
	norm := math.Hypot(a, b)
	a, b, c = a/norm, b/norm, c/norm
	if a < 0 || (a == 0 && b < 0) {
		a, b, c = -a, -b, -c
	}
	return Line{a: a, b: b, c: c}
}

// LineThrough constructs the line passing through p and q. It reports
// [ErrInconstructible] if p and q coincide within epsilon (adapted from the
// teacher's degenerate-input handling: a construction with no well-defined
// analytic output is a recoverable failure, not a panic).
func LineThrough(p, q Point, opts ...options.GeometryOptionsFunc) (Line, error) {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	if p.Eq(q, options.WithEpsilon(o.Epsilon)) {
		logDebugf("LineThrough: %s and %s coincide within epsilon %g, inconstructible", p, q, o.Epsilon)
		return Line{}, fmt.Errorf("line through %s and %s: %w", p, q, ErrInconstructible)
	}
	// Direction (q-p); normal is the direction rotated 90 degrees.
	dx, dy := q.x-p.x, q.y-p.y
	a, b := -dy, dx
	c := -(a*p.x + b*p.y)
	return canonicalizeLine(a, b, c), nil
}

// PerpendicularFrom constructs the line through p perpendicular to l.
func (l Line) PerpendicularFrom(p Point) Line {
	// l's direction vector is (-b, a); the perpendicular's normal is l's direction.
	a, b := -l.b, l.a
	c := -(a*p.x + b*p.y)
	return canonicalizeLine(a, b, c)
}

// ParallelFrom constructs the line through p parallel to l.
func (l Line) ParallelFrom(p Point) Line {
	c := -(l.a*p.x + l.b*p.y)
	return canonicalizeLine(l.a, l.b, c)
}

// Contains reports whether p lies on l within epsilon.
func (l Line) Contains(p Point, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	scale := math.Max(1, math.Max(math.Abs(p.x), math.Abs(p.y)))
	return numeric.FloatEquals(l.a*p.x+l.b*p.y+l.c, 0, o.Epsilon*scale)
}

// Eq reports whether l and l2 are the same line within epsilon: both stored
// in canonical normal form, so equality is a direct tuple comparison.
func (l Line) Eq(l2 Line, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	return numeric.FloatEquals(l.a, l2.a, o.Epsilon) &&
		numeric.FloatEquals(l.b, l2.b, o.Epsilon) &&
		numeric.FloatEquals(l.c, l2.c, o.Epsilon)
}

// IsParallel reports whether l and l2 have the same direction (including
// being the same line) within epsilon.
func (l Line) IsParallel(l2 Line, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	cross := l.a*l2.b - l.b*l2.a
	return numeric.FloatEquals(cross, 0, o.Epsilon)
}

// IsPerpendicular reports whether l and l2 meet at a right angle within epsilon.
func (l Line) IsPerpendicular(l2 Line, opts ...options.GeometryOptionsFunc) bool {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	dot := l.a*l2.a + l.b*l2.b
	return numeric.FloatEquals(dot, 0, o.Epsilon)
}

// IntersectLine returns the single intersection point of l and l2, or false
// if they are parallel (including coincident), which this package treats as
// "no unique intersection" rather than an error: callers decide whether
// parallel/coincident is expected.
func (l Line) IntersectLine(l2 Line, opts ...options.GeometryOptionsFunc) (Point, bool) {
	if l.IsParallel(l2, opts...) {
		return Point{}, false
	}
	det := l.a*l2.b - l.b*l2.a
	x := (l.b*l2.c - l2.b*l.c) / det
	y := (l2.a*l.c - l.a*l2.c) / det
	return Point{x, y}, true
}

// Normal returns the unit normal coefficients (a, b, c) of l's canonical form.
func (l Line) Normal() (a, b, c float64) { return l.a, l.b, l.c }

// String returns "a*x+b*y+c=0".
func (l Line) String() string {
	return fmt.Sprintf("%gx+%gy+%g=0", l.a, l.b, l.c)
}
