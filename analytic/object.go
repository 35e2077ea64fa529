package analytic

import (
	"fmt"

	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/types"
)

// Object is the tagged union described by spec §3 as AnalyticObject: a
// Point, a Line, or a Circle, closed over the three kinds in
// [types.ObjectKind]. Pictures and the contextual picture store values of
// this type rather than three parallel maps, following the "kind-dispatched
// operations switch on the tag" design note (§9, "Polymorphism over
// geometric kinds").
//
// The zero value of Object is invalid; always construct one via
// [ObjectFromPoint], [ObjectFromLine], or [ObjectFromCircle].
type Object struct {
	kind   types.ObjectKind
	point  Point
	line   Line
	circle Circle
}

// ObjectFromPoint wraps p as an Object of kind [types.KindPoint].
func ObjectFromPoint(p Point) Object { return Object{kind: types.KindPoint, point: p} }

// ObjectFromLine wraps l as an Object of kind [types.KindLine].
func ObjectFromLine(l Line) Object { return Object{kind: types.KindLine, line: l} }

// ObjectFromCircle wraps c as an Object of kind [types.KindCircle].
func ObjectFromCircle(c Circle) Object { return Object{kind: types.KindCircle, circle: c} }

// Kind reports which of Point, Line, or Circle this Object holds.
func (o Object) Kind() types.ObjectKind { return o.kind }

// Point returns the wrapped point. It panics if Kind() != KindPoint; callers
// that don't already know the kind should check Kind() first.
func (o Object) Point() Point {
	if o.kind != types.KindPoint {
		panic(fmt.Errorf("analytic: Object.Point called on a %s", o.kind))
	}
	return o.point
}

// Line returns the wrapped line. It panics if Kind() != KindLine.
func (o Object) Line() Line {
	if o.kind != types.KindLine {
		panic(fmt.Errorf("analytic: Object.Line called on a %s", o.kind))
	}
	return o.line
}

// Circle returns the wrapped circle. It panics if Kind() != KindCircle.
func (o Object) Circle() Circle {
	if o.kind != types.KindCircle {
		panic(fmt.Errorf("analytic: Object.Circle called on a %s", o.kind))
	}
	return o.circle
}

// Eq reports whether o and o2 hold the same kind and equal (within epsilon)
// values. Objects of different kinds are never equal.
func (o Object) Eq(o2 Object, opts ...options.GeometryOptionsFunc) bool {
	if o.kind != o2.kind {
		return false
	}
	switch o.kind {
	case types.KindPoint:
		return o.point.Eq(o2.point, opts...)
	case types.KindLine:
		return o.line.Eq(o2.line, opts...)
	case types.KindCircle:
		return o.circle.Eq(o2.circle, opts...)
	default:
		panic(fmt.Errorf("analytic: unsupported ObjectKind: %d", o.kind))
	}
}

// String renders the wrapped value.
func (o Object) String() string {
	switch o.kind {
	case types.KindPoint:
		return o.point.String()
	case types.KindLine:
		return o.line.String()
	case types.KindCircle:
		return o.circle.String()
	default:
		return "Object(invalid)"
	}
}

// CanonicalKey returns a comparable, totally-ordered key for o suitable for
// use in ordered indices (see the picture package's btree-backed
// analytic-to-symbolic reverse index). Points sort before lines sort before
// circles; within a kind, coordinates are compared lexicographically. The
// key is a plain value type (no pointers), so it is safe to use as a map key
// or btree item directly.
type CanonicalKey struct {
	Kind types.ObjectKind
	A, B, C float64
}

// Key computes o's [CanonicalKey]. For a Point, (A,B) is (x,y) and C is 0.
// For a Line, (A,B,C) is the canonical normal form. For a Circle, (A,B) is
// the center and C is the radius.
func (o Object) Key() CanonicalKey {
	switch o.kind {
	case types.KindPoint:
		return CanonicalKey{Kind: types.KindPoint, A: o.point.x, B: o.point.y}
	case types.KindLine:
		a, b, c := o.line.Normal()
		return CanonicalKey{Kind: types.KindLine, A: a, B: b, C: c}
	case types.KindCircle:
		return CanonicalKey{Kind: types.KindCircle, A: o.circle.center.x, B: o.circle.center.y, C: o.circle.radius}
	default:
		panic(fmt.Errorf("analytic: unsupported ObjectKind: %d", o.kind))
	}
}

// Less gives CanonicalKey a total order, used as the btree.LessFunc backing
// the picture package's ordered analytic index (see SPEC_FULL.md, "DOMAIN
// STACK" — google/btree).
func (k CanonicalKey) Less(other CanonicalKey) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	if k.A != other.A {
		return k.A < other.A
	}
	if k.B != other.B {
		return k.B < other.B
	}
	return k.C < other.C
}
