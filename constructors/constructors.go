// Package constructors implements the analytic evaluator for every
// predefined construction (spec §4.4): given the already-realized parent
// values in one picture, in signature order, compute the construction's
// analytic output, or report [geogenerr.ErrInconstructible] if the
// underlying analytic primitives cannot (degenerate input). Evaluators never
// mutate their arguments and never consult a picture beyond the values
// handed to them — they are pure functions of (parents) -> (output, error),
// exactly as spec §4.4 describes.
package constructors

import (
	"fmt"
	"math"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/types"
)

// Evaluator computes one construction's analytic output from its realized
// parent values, in the order named by the construction's [construction.ParamSpec]
// list. The caller (the registrar) is responsible for validating arg count
// and kinds against the construction's signature before calling an
// Evaluator; a kind mismatch here is therefore reported as
// [geogenerr.ErrInternalInvariantViolation], not [geogenerr.ErrInvalidInput].
type Evaluator func(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error)

func pointArg(args []analytic.Object, i int) (analytic.Point, error) {
	if args[i].Kind() != types.KindPoint {
		logDebugf("pointArg: arg %d: expected Point, got %s", i, args[i].Kind())
		return analytic.Point{}, fmt.Errorf("%w: arg %d: expected Point, got %s",
			geogenerr.ErrInternalInvariantViolation, i, args[i].Kind())
	}
	return args[i].Point(), nil
}

func lineArg(args []analytic.Object, i int) (analytic.Line, error) {
	if args[i].Kind() != types.KindLine {
		return analytic.Line{}, fmt.Errorf("%w: arg %d: expected Line, got %s",
			geogenerr.ErrInternalInvariantViolation, i, args[i].Kind())
	}
	return args[i].Line(), nil
}

func circleArg(args []analytic.Object, i int) (analytic.Circle, error) {
	if args[i].Kind() != types.KindCircle {
		return analytic.Circle{}, fmt.Errorf("%w: arg %d: expected Circle, got %s",
			geogenerr.ErrInternalInvariantViolation, i, args[i].Kind())
	}
	return args[i].Circle(), nil
}

// Midpoint(A, B) -> the midpoint of segment AB. Never inconstructible.
func Midpoint(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromPoint(a.Midpoint(b)), nil
}

// LineFromPoints(A, B) -> the line through A and B.
func LineFromPoints(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	l, err := analytic.LineThrough(a, b, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromLine(l), nil
}

// PerpendicularLineFromPoints(P, A, B) -> the line through P perpendicular to
// line AB.
func PerpendicularLineFromPoints(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	a, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}
	ab, err := analytic.LineThrough(a, b, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromLine(ab.PerpendicularFrom(p)), nil
}

// ParallelLineFromPoints(P, A, B) -> the line through P parallel to line AB.
func ParallelLineFromPoints(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	a, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}
	ab, err := analytic.LineThrough(a, b, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromLine(ab.ParallelFrom(p)), nil
}

// IntersectionOfLinesFromPoints(A, B, C, D) -> the intersection of line AB
// and line CD. Inconstructible if the two lines are parallel (including
// coincident — a pencil of common points has no single answer).
func IntersectionOfLinesFromPoints(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	c, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}
	d, err := pointArg(args, 3)
	if err != nil {
		return analytic.Object{}, err
	}
	l1, err := analytic.LineThrough(a, b, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	l2, err := analytic.LineThrough(c, d, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	pt, ok := l1.IntersectLine(l2, opts...)
	if !ok {
		return analytic.Object{}, fmt.Errorf("intersection of %s and %s: %w", l1, l2, geogenerr.ErrInconstructible)
	}
	return analytic.ObjectFromPoint(pt), nil
}

// IntersectionOfLineAndCircle(Line, Circle) -> one point where the line
// meets the circle. A line and circle can meet at 0, 1, or 2 points (spec
// §4.1); this construction has a single-Point output, so when there are two
// it picks the one with the lexicographically smaller [analytic.CanonicalKey]
// — an arbitrary but deterministic and reproducible tie-break (documented as
// a supplemented decision, since spec.md does not resolve it). Inconstructible
// if the line misses the circle entirely.
func IntersectionOfLineAndCircle(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	l, err := lineArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	c, err := circleArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	pts := c.IntersectLine(l, opts...)
	if len(pts) == 0 {
		return analytic.Object{}, fmt.Errorf("intersection of %s and %s: %w", l, c, geogenerr.ErrInconstructible)
	}
	chosen := analytic.ObjectFromPoint(pts[0])
	for _, p := range pts[1:] {
		candidate := analytic.ObjectFromPoint(p)
		if candidate.Key().Less(chosen.Key()) {
			chosen = candidate
		}
	}
	return chosen, nil
}

// Circumcircle(A, B, C) -> the unique circle through A, B, C. Inconstructible
// if the three points are collinear.
func Circumcircle(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	c, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}
	circ, err := analytic.CircleThrough(a, b, c, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromCircle(circ), nil
}

// Circumcenter(A, B, C) -> the center of the circle through A, B, C.
func Circumcenter(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	out, err := Circumcircle(args, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromPoint(out.Circle().Center()), nil
}

// PointReflection(P, O) -> P reflected through pivot O. Never inconstructible.
func PointReflection(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	o, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromPoint(p.ReflectAcross(o)), nil
}

// InternalAngleBisector(A, B, C) -> the line through B bisecting angle ABC.
// Inconstructible if B coincides with A or C, or if A, B, C are collinear
// with B between them (the two rays BA, BC are opposite and no unique
// bisector exists — the bisector direction sums to the zero vector).
func InternalAngleBisector(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	c, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}

	lenBA := b.DistanceToPoint(a)
	lenBC := b.DistanceToPoint(c)
	if lenBA == 0 || lenBC == 0 {
		return analytic.Object{}, fmt.Errorf("angle bisector at %s: degenerate ray: %w", b, geogenerr.ErrInconstructible)
	}
	ua := a.Sub(b).Scale(analytic.NewPoint(0, 0), 1/lenBA)
	uc := c.Sub(b).Scale(analytic.NewPoint(0, 0), 1/lenBC)
	dir := ua.Add(uc)
	if dir.X() == 0 && dir.Y() == 0 {
		return analytic.Object{}, fmt.Errorf("angle bisector at %s: opposite rays: %w", b, geogenerr.ErrInconstructible)
	}
	through := b.Add(dir)
	l, err := analytic.LineThrough(b, through, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	return analytic.ObjectFromLine(l), nil
}

// Orthocenter(A, B, C) -> the intersection of the three altitudes of
// triangle ABC, computed from two of them. Inconstructible if A, B, C are
// collinear (the altitudes are then parallel).
func Orthocenter(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	c, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}

	bc, err := analytic.LineThrough(b, c, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	ac, err := analytic.LineThrough(a, c, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	altA := bc.PerpendicularFrom(a)
	altB := ac.PerpendicularFrom(b)
	pt, ok := altA.IntersectLine(altB, opts...)
	if !ok {
		return analytic.Object{}, fmt.Errorf("orthocenter of %s,%s,%s: %w", a, b, c, geogenerr.ErrInconstructible)
	}
	return analytic.ObjectFromPoint(pt), nil
}

// Incenter(A, B, C) -> the incenter of triangle ABC, the side-length-weighted
// average of the vertices: (a·A + b·B + c·C) / (a+b+c) where a = |BC| etc.
// Inconstructible if A, B, C are collinear (no inscribed circle exists).
func Incenter(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	a, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	b, err := pointArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}
	c, err := pointArg(args, 2)
	if err != nil {
		return analytic.Object{}, err
	}
	if analytic.Collinear(a, b, c, options.WithEpsilon(o.Epsilon)) {
		return analytic.Object{}, fmt.Errorf("incenter of %s,%s,%s: %w", a, b, c, geogenerr.ErrInconstructible)
	}

	sideA := b.DistanceToPoint(c)
	sideB := a.DistanceToPoint(c)
	sideC := a.DistanceToPoint(b)
	perimeter := sideA + sideB + sideC

	x := (sideA*a.X() + sideB*b.X() + sideC*c.X()) / perimeter
	y := (sideA*a.Y() + sideB*b.Y() + sideC*c.Y()) / perimeter
	return analytic.ObjectFromPoint(analytic.NewPoint(x, y)), nil
}

// TangentLineFromPoint(P, Circle) -> one of the two tangent lines from an
// external point P to a circle, chosen by the lexicographically smaller
// resulting [analytic.CanonicalKey] (same deterministic tie-break rationale
// as [IntersectionOfLineAndCircle]). Inconstructible if P lies on or inside
// the circle (no real tangent, or the tangent is not uniquely determined).
func TangentLineFromPoint(args []analytic.Object, opts ...options.GeometryOptionsFunc) (analytic.Object, error) {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	p, err := pointArg(args, 0)
	if err != nil {
		return analytic.Object{}, err
	}
	circ, err := circleArg(args, 1)
	if err != nil {
		return analytic.Object{}, err
	}

	center := circ.Center()
	r := circ.Radius()
	d := center.DistanceToPoint(p)
	if d <= r+r*o.Epsilon {
		return analytic.Object{}, fmt.Errorf("tangent from %s to %s: point is not strictly outside: %w", p, circ, geogenerr.ErrInconstructible)
	}

	theta := math.Acos(r / d)
	ux, uy := (p.X()-center.X())/d, (p.Y()-center.Y())/d

	rotate := func(sign float64) analytic.Point {
		cosT, sinT := math.Cos(sign*theta), math.Sin(sign*theta)
		rx := ux*cosT - uy*sinT
		ry := ux*sinT + uy*cosT
		return analytic.NewPoint(center.X()+r*rx, center.Y()+r*ry)
	}

	t1, t2 := rotate(1), rotate(-1)
	l1, err := analytic.LineThrough(p, t1, opts...)
	if err != nil {
		return analytic.Object{}, err
	}
	l2, err := analytic.LineThrough(p, t2, opts...)
	if err != nil {
		return analytic.Object{}, err
	}

	obj1, obj2 := analytic.ObjectFromLine(l1), analytic.ObjectFromLine(l2)
	if obj2.Key().Less(obj1.Key()) {
		return obj2, nil
	}
	return obj1, nil
}
