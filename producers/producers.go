// Package producers implements the potential-theorem producers of spec
// §4.7: one function per theorem type, each enumerating candidates from a
// [contextual.ContextualPicture] into a slice it returns whole (candidates
// are not produced lazily) and attaching the per-picture verification
// predicate the runner will later check. Every producer restricts itself to
// candidates involving at least one handle created or newly backed since the
// most recent [contextual.ContextualPicture.BeginStep] call (or marked by
// [contextual.ContextualPicture.MarkAllNew]), so incremental theorem-finding never re-reports a theorem already true of
// the pre-extension configuration (spec §4.7's "new" filter).
package producers

import (
	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/contextual"
	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/theorem"
)

// All runs every producer over cp and returns their concatenated candidates
// — the full input the runner (spec §4.8) verifies against every picture.
// SameObjects is not produced here: spec §4.7 states it is "emitted
// directly by the registrar when a duplicate is detected; no producer
// work" — see the analyzer package.
func All(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	var out []theorem.PotentialTheorem
	out = append(out, ParallelLines(cp, opts...)...)
	out = append(out, PerpendicularLines(cp, opts...)...)
	out = append(out, EqualLineSegments(cp, opts...)...)
	out = append(out, TangentCircles(cp, opts...)...)
	out = append(out, TangentLines(cp, opts...)...)
	out = append(out, ConcurrentLines(cp, opts...)...)
	out = append(out, Collinear(cp, opts...)...)
	out = append(out, ConcyclicPoints(cp, opts...)...)
	out = append(out, Incidence(cp)...)
	return out
}

func epsilonOf(opts []options.GeometryOptionsFunc) float64 {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	return o.Epsilon
}

// ParallelLines produces one candidate per unordered pair of line handles
// with at least one new, verifying [analytic.Line.IsParallel] in every
// picture.
func ParallelLines(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	lines := cp.GetLines(contextual.FilterAll)
	for i, l1 := range lines {
		for _, l2 := range lines[i+1:] {
			if !cp.IsNew(l1.ID) && !cp.IsNew(l2.ID) {
				continue
			}
			a, b := l1.ID, l2.ID
			out = append(out, theorem.PotentialTheorem{
				Kind:    theorem.ParallelLines,
				Objects: []theorem.TheoremObject{theorem.Line(int(a)), theorem.Line(int(b))},
				Verify: func(i int) bool {
					la, lb := cp.HandleAnalytic(a, i).Line(), cp.HandleAnalytic(b, i).Line()
					return la.IsParallel(lb, options.WithEpsilon(eps))
				},
			})
		}
	}
	return out
}

// PerpendicularLines produces one candidate per unordered pair of line
// handles with at least one new, verifying [analytic.Line.IsPerpendicular].
func PerpendicularLines(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	lines := cp.GetLines(contextual.FilterAll)
	for i, l1 := range lines {
		for _, l2 := range lines[i+1:] {
			if !cp.IsNew(l1.ID) && !cp.IsNew(l2.ID) {
				continue
			}
			a, b := l1.ID, l2.ID
			out = append(out, theorem.PotentialTheorem{
				Kind:    theorem.PerpendicularLines,
				Objects: []theorem.TheoremObject{theorem.Line(int(a)), theorem.Line(int(b))},
				Verify: func(i int) bool {
					la, lb := cp.HandleAnalytic(a, i).Line(), cp.HandleAnalytic(b, i).Line()
					return la.IsPerpendicular(lb, options.WithEpsilon(eps))
				},
			})
		}
	}
	return out
}

// TangentCircles produces one candidate per unordered pair of circle
// handles with at least one new, verifying [analytic.Circle.IsTangentToCircle].
func TangentCircles(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	circles := cp.GetCircles(contextual.FilterAll)
	for i, c1 := range circles {
		for _, c2 := range circles[i+1:] {
			if !cp.IsNew(c1.ID) && !cp.IsNew(c2.ID) {
				continue
			}
			a, b := c1.ID, c2.ID
			out = append(out, theorem.PotentialTheorem{
				Kind:    theorem.TangentCircles,
				Objects: []theorem.TheoremObject{theorem.Circle(int(a)), theorem.Circle(int(b))},
				Verify: func(i int) bool {
					ca, cb := cp.HandleAnalytic(a, i).Circle(), cp.HandleAnalytic(b, i).Circle()
					return ca.IsTangentToCircle(cb, options.WithEpsilon(eps))
				},
			})
		}
	}
	return out
}

// TangentLines produces one candidate per (line, circle) pair with at least
// one new, verifying [analytic.Circle.IsTangentToLine].
func TangentLines(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	lines := cp.GetLines(contextual.FilterAll)
	circles := cp.GetCircles(contextual.FilterAll)
	for _, l := range lines {
		for _, c := range circles {
			if !cp.IsNew(l.ID) && !cp.IsNew(c.ID) {
				continue
			}
			lh, ch := l.ID, c.ID
			out = append(out, theorem.PotentialTheorem{
				Kind:    theorem.TangentLines,
				Objects: []theorem.TheoremObject{theorem.Line(int(lh)), theorem.Circle(int(ch))},
				Verify: func(i int) bool {
					line := cp.HandleAnalytic(lh, i).Line()
					circ := cp.HandleAnalytic(ch, i).Circle()
					return circ.IsTangentToLine(line, options.WithEpsilon(eps))
				},
			})
		}
	}
	return out
}

// ConcurrentLines produces one candidate per unordered triple of line
// handles with at least one new: verify intersects the first two lines and
// checks the third passes through that point, in every picture
// independently (spec §8 scenario 1 notes triples can be numerous — no
// attempt is made to recognize an explicit shared pencil up front).
func ConcurrentLines(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	lines := cp.GetLines(contextual.FilterAll)
	n := len(lines)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if !cp.IsNew(lines[i].ID) && !cp.IsNew(lines[j].ID) && !cp.IsNew(lines[k].ID) {
					continue
				}
				a, b, c := lines[i].ID, lines[j].ID, lines[k].ID
				out = append(out, theorem.PotentialTheorem{
					Kind:    theorem.ConcurrentLines,
					Objects: []theorem.TheoremObject{theorem.Line(int(a)), theorem.Line(int(b)), theorem.Line(int(c))},
					Verify: func(i int) bool {
						la := cp.HandleAnalytic(a, i).Line()
						lb := cp.HandleAnalytic(b, i).Line()
						lc := cp.HandleAnalytic(c, i).Line()
						p, ok := la.IntersectLine(lb, options.WithEpsilon(eps))
						if !ok {
							return false
						}
						return lc.Contains(p, options.WithEpsilon(eps))
					},
				})
			}
		}
	}
	return out
}

// Collinear produces one candidate per unordered triple of point handles
// with at least one new, verifying [analytic.Collinear].
func Collinear(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	points := cp.GetPoints(contextual.FilterAll)
	n := len(points)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if !cp.IsNew(points[i].ID) && !cp.IsNew(points[j].ID) && !cp.IsNew(points[k].ID) {
					continue
				}
				a, b, c := points[i].ID, points[j].ID, points[k].ID
				out = append(out, theorem.PotentialTheorem{
					Kind:    theorem.Collinear,
					Objects: []theorem.TheoremObject{theorem.Point(int(a)), theorem.Point(int(b)), theorem.Point(int(c))},
					Verify: func(i int) bool {
						pa := cp.HandleAnalytic(a, i).Point()
						pb := cp.HandleAnalytic(b, i).Point()
						pc := cp.HandleAnalytic(c, i).Point()
						return analytic.Collinear(pa, pb, pc, options.WithEpsilon(eps))
					},
				})
			}
		}
	}
	return out
}

// ConcyclicPoints produces one candidate per unordered quadruple of point
// handles with at least one new: the first three determine a circle, and the
// fourth is tested against it. If the first three are collinear in a
// picture, no circle exists there and Verify returns false for that picture;
// the candidate itself is still produced.
func ConcyclicPoints(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	points := cp.GetPoints(contextual.FilterAll)
	n := len(points)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				for l := k + 1; l < n; l++ {
					if !cp.IsNew(points[i].ID) && !cp.IsNew(points[j].ID) &&
						!cp.IsNew(points[k].ID) && !cp.IsNew(points[l].ID) {
						continue
					}
					a, b, c, d := points[i].ID, points[j].ID, points[k].ID, points[l].ID
					out = append(out, theorem.PotentialTheorem{
						Kind: theorem.ConcyclicPoints,
						Objects: []theorem.TheoremObject{
							theorem.Point(int(a)), theorem.Point(int(b)), theorem.Point(int(c)), theorem.Point(int(d)),
						},
						Verify: func(i int) bool {
							pa := cp.HandleAnalytic(a, i).Point()
							pb := cp.HandleAnalytic(b, i).Point()
							pc := cp.HandleAnalytic(c, i).Point()
							pd := cp.HandleAnalytic(d, i).Point()
							circ, err := analytic.CircleThrough(pa, pb, pc, options.WithEpsilon(eps))
							if err != nil {
								return false
							}
							return circ.Contains(pd, options.WithEpsilon(eps))
						},
					})
				}
			}
		}
	}
	return out
}

// EqualLineSegments produces one candidate per unordered pair of unordered
// point-pairs (segments) drawn from the point set, with at least one
// segment touching a new point, verifying the two segments have equal
// length.
func EqualLineSegments(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.PotentialTheorem {
	eps := epsilonOf(opts)
	var out []theorem.PotentialTheorem
	points := cp.GetPoints(contextual.FilterAll)
	n := len(points)

	type segment struct {
		a, b contextual.HandleID
		new  bool
	}
	var segments []segment
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			segments = append(segments, segment{
				a: points[i].ID, b: points[j].ID,
				new: cp.IsNew(points[i].ID) || cp.IsNew(points[j].ID),
			})
		}
	}

	for i, s1 := range segments {
		for _, s2 := range segments[i+1:] {
			if !s1.new && !s2.new {
				continue
			}
			a1, b1, a2, b2 := s1.a, s1.b, s2.a, s2.b
			out = append(out, theorem.PotentialTheorem{
				Kind: theorem.EqualLineSegments,
				Objects: []theorem.TheoremObject{
					theorem.Segment(int(a1), int(b1)), theorem.Segment(int(a2), int(b2)),
				},
				Verify: func(i int) bool {
					pa1 := cp.HandleAnalytic(a1, i).Point()
					pb1 := cp.HandleAnalytic(b1, i).Point()
					pa2 := cp.HandleAnalytic(a2, i).Point()
					pb2 := cp.HandleAnalytic(b2, i).Point()
					d1 := pa1.DistanceToPoint(pb1)
					d2 := pa2.DistanceToPoint(pb2)
					scale := d1
					if d2 > scale {
						scale = d2
					}
					if scale < 1 {
						scale = 1
					}
					return (d1-d2) < eps*scale && (d2-d1) < eps*scale
				},
			})
		}
	}
	return out
}

// Incidence reports every (point, line) and (point, circle) pair already
// present in a handle's membership set, as long as the point or the
// line/circle is new. Membership was already established consistently
// across every picture when the edge was added (spec §4.6), so this is a
// report, not a numeric test (spec §4.7) — Verify always returns true.
func Incidence(cp *contextual.ContextualPicture) []theorem.PotentialTheorem {
	var out []theorem.PotentialTheorem
	for _, l := range cp.GetLines(contextual.FilterAll) {
		for p := range l.Points {
			if !cp.IsNew(l.ID) && !cp.IsNew(p) {
				continue
			}
			out = append(out, theorem.PotentialTheorem{
				Kind:    theorem.Incidence,
				Objects: []theorem.TheoremObject{theorem.Point(int(p)), theorem.Line(int(l.ID))},
				Verify:  func(int) bool { return true },
			})
		}
	}
	for _, c := range cp.GetCircles(contextual.FilterAll) {
		for p := range c.Points {
			if !cp.IsNew(c.ID) && !cp.IsNew(p) {
				continue
			}
			out = append(out, theorem.PotentialTheorem{
				Kind:    theorem.Incidence,
				Objects: []theorem.TheoremObject{theorem.Point(int(p)), theorem.Circle(int(c.ID))},
				Verify:  func(int) bool { return true },
			})
		}
	}
	return out
}
