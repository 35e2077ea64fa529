// Package analytic provides the numeric geometry primitives the reasoning
// core builds every picture from: [Point], [Line], and [Circle].
//
// # Overview
//
// Values in this package are pure, immutable, and tolerance-aware: equality
// and incidence predicates never compare floating-point values for bit-exact
// equality. Instead they use [options.WithEpsilon] (default
// [options.DefaultEpsilon]) via [github.com/mikenye/geogen/numeric], following
// the same functional-options pattern the rest of the geom2d-derived stack
// uses for numerical tolerance.
//
// # Canonical forms
//
// A [Line] is stored in normal form (ax+by+c=0, with (a,b) a unit vector and
// a fixed sign convention) so that two lines computed by different routes
// compare equal once within epsilon. A [Circle] stores an exact center and a
// non-negative radius. Canonicalization happens once, at construction time,
// so downstream equality checks are simple tuple comparisons.
//
// # Failure is in-band
//
// Degenerate constructions (duplicate points, collinear points requested to
// form a circle) do not panic. They return [ErrInconstructible], wrapped with
// context describing which construction failed. Callers — chiefly the
// constructors package — are expected to treat this as an ordinary,
// recoverable "this configuration doesn't realize in this picture" outcome.
package analytic

import "github.com/mikenye/geogen/geogenerr"

// ErrInconstructible is returned by any analytic construction whose inputs are
// degenerate for that construction (e.g. [LineThrough] given two equal
// points, or [CircleThrough] given three collinear points). It is the
// in-band failure signal described in spec §7; no analytic function in this
// package panics on degenerate geometric input. It is the same sentinel as
// [geogenerr.ErrInconstructible], so errors.Is matches either name.
var ErrInconstructible = geogenerr.ErrInconstructible
