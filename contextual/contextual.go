// Package contextual implements the contextual picture of spec §4.6 — "the
// heart of the system": the structure that, on top of a set of numeric
// pictures, tracks which symbolic points, lines, and circles are known, and
// discovers the incidences between them (a new point lying on an existing
// line, three existing points suddenly being concyclic) that producers
// later turn into candidate theorems.
package contextual

import (
	"fmt"
	"math"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/btree"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/picture"
	"github.com/mikenye/geogen/types"
)

// handleIDComparator orders the rbt registries by [HandleID], giving
// GetPoints/GetLines/GetCircles deterministic ascending iteration without an
// extra sort pass — the DOMAIN STACK wiring SPEC_FULL.md calls for
// (emirpasic/gods/trees/redblacktree, a teacher dependency otherwise only
// exercised by the sweep-line status structure it was copied from).
func handleIDComparator(a, b interface{}) int {
	x, y := a.(HandleID), b.(HandleID)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// reuseEntry is one handle's analytic value in one picture, indexed by
// canonical key in a google/btree tree — the same near-duplicate-window
// technique the picture package uses for its own reverse index, repurposed
// here to answer "is this newly realized value already some handle's, in
// this picture" in better than linear time.
type reuseEntry struct {
	key    analytic.CanonicalKey
	value  analytic.Object
	handle HandleID
}

func reuseEntryLess(a, b reuseEntry) bool { return a.key.Less(b.key) }

// ContextualPicture is the incidence-aware layer on top of a fixed slice of
// [picture.Picture] values (spec §4.6). It is built once, over the same
// pictures a [picture.Manager] owns, and grown incrementally by [Add] as
// each new configuration object is registered.
type ContextualPicture struct {
	pictures []*picture.Picture

	nextID  HandleID
	points  *rbt.Tree // HandleID -> *PointHandle
	lines   *rbt.Tree // HandleID -> *LineHandle
	circles *rbt.Tree // HandleID -> *CircleHandle

	backing  map[construction.ObjectID]HandleID
	analytic []map[HandleID]analytic.Object // per-picture handle -> realized value
	reuse    []*btree.BTreeG[reuseEntry]    // per-picture reverse index
	newest   map[HandleID]bool              // handles touched since the most recent BeginStep
	epsilon  float64
}

// New builds an empty ContextualPicture over pictures. pictures must already
// be populated with every loose object the configuration under analysis
// starts from; ContextualPicture never samples loose objects itself (spec
// §4.3's layout sampling stays in [picture.Manager]).
func New(pictures []*picture.Picture, opts ...options.GeometryOptionsFunc) *ContextualPicture {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	cp := &ContextualPicture{
		pictures: pictures,
		points:   rbt.NewWith(handleIDComparator),
		lines:    rbt.NewWith(handleIDComparator),
		circles:  rbt.NewWith(handleIDComparator),
		backing:  make(map[construction.ObjectID]HandleID),
		analytic: make([]map[HandleID]analytic.Object, len(pictures)),
		reuse:    make([]*btree.BTreeG[reuseEntry], len(pictures)),
		newest:   make(map[HandleID]bool),
		epsilon:  o.Epsilon,
	}
	for i := range pictures {
		cp.analytic[i] = make(map[HandleID]analytic.Object)
		cp.reuse[i] = btree.NewG(32, reuseEntryLess)
	}
	return cp
}

// NPictures reports how many pictures this ContextualPicture tracks.
func (cp *ContextualPicture) NPictures() int { return len(cp.pictures) }

// Contains reports whether id has been registered (spec §4.6's `contains`).
func (cp *ContextualPicture) Contains(id construction.ObjectID) bool {
	_, ok := cp.backing[id]
	return ok
}

// HandleFor returns the handle backing configuration object id, if any has
// been registered for it.
func (cp *ContextualPicture) HandleFor(id construction.ObjectID) (HandleID, bool) {
	h, ok := cp.backing[id]
	return h, ok
}

// AnalyticOf returns the realization of id's handle in picture i (spec
// §4.6's `analytic_of`).
func (cp *ContextualPicture) AnalyticOf(id construction.ObjectID, i int) (analytic.Object, bool) {
	h, ok := cp.backing[id]
	if !ok {
		return analytic.Object{}, false
	}
	v, ok := cp.analytic[i][h]
	return v, ok
}

// HandleAnalytic returns the realization of handle (point, line, or circle
// alike — handle ids are unique across kinds) in picture i. Unlike
// [ContextualPicture.AnalyticOf], this works for implicit line/circle
// handles too, which have no backing [construction.ObjectID] to look up by
// — producers need exactly this to verify a candidate theorem against an
// implicit line or circle (spec §4.7, "re-evaluates the geometric relation
// analytically in a single picture").
func (cp *ContextualPicture) HandleAnalytic(handle HandleID, i int) analytic.Object {
	return cp.analytic[i][handle]
}

// GetPoints returns every point handle matching filter, in ascending handle
// id order.
func (cp *ContextualPicture) GetPoints(filter Filter) []*PointHandle {
	var out []*PointHandle
	it := cp.points.Iterator()
	for it.Next() {
		h := it.Key().(HandleID)
		if cp.matches(h, filter) {
			out = append(out, it.Value().(*PointHandle))
		}
	}
	return out
}

// GetLines returns every line handle matching filter, in ascending handle id order.
func (cp *ContextualPicture) GetLines(filter Filter) []*LineHandle {
	var out []*LineHandle
	it := cp.lines.Iterator()
	for it.Next() {
		h := it.Key().(HandleID)
		if cp.matches(h, filter) {
			out = append(out, it.Value().(*LineHandle))
		}
	}
	return out
}

// GetCircles returns every circle handle matching filter, in ascending handle id order.
func (cp *ContextualPicture) GetCircles(filter Filter) []*CircleHandle {
	var out []*CircleHandle
	it := cp.circles.Iterator()
	for it.Next() {
		h := it.Key().(HandleID)
		if cp.matches(h, filter) {
			out = append(out, it.Value().(*CircleHandle))
		}
	}
	return out
}

// IsNew reports whether handle was created or newly backed by an
// [ContextualPicture.Add] call since the most recent
// [ContextualPicture.BeginStep] (or marked by MarkAllNew) — the same test [Filter] applies, but
// usable directly by producers combining handles from more than one kind
// (e.g. TangentLines pairing a line with a circle).
func (cp *ContextualPicture) IsNew(h HandleID) bool { return cp.newest[h] }

// BeginStep clears the "new handle" bookkeeping, starting a fresh extension
// step: every handle created or newly backed by an [Add] call from this
// point on, until the next BeginStep, is considered new (spec §9's resolved
// open question — "any handle that gained its backing configuration object
// or was newly created in this step", where "step" is everything between
// two BeginStep calls, not a single Add). A caller extending a configuration
// by several objects in one batch — [github.com/mikenye/geogen/analyzer]'s
// Analyze, or a driver calling Add directly — must call BeginStep once
// before the batch, not once per object, or only the last object's handles
// would be visible to the producers' "at least one new handle" gate.
func (cp *ContextualPicture) BeginStep() {
	cp.newest = make(map[HandleID]bool)
}

// MarkAllNew marks every handle currently registered as new, so a producer
// pass right after it sees the whole configuration rather than just the
// handles touched by the most recent extension step. This is what lets the
// theorem finder's find_all (spec §6) reuse the same "new"-gated producers
// find_new relies on incrementally, instead of needing a second, ungated
// code path.
func (cp *ContextualPicture) MarkAllNew() {
	for _, p := range cp.GetPoints(FilterAll) {
		cp.newest[p.ID] = true
	}
	for _, l := range cp.GetLines(FilterAll) {
		cp.newest[l.ID] = true
	}
	for _, c := range cp.GetCircles(FilterAll) {
		cp.newest[c.ID] = true
	}
}

func (cp *ContextualPicture) matches(h HandleID, filter Filter) bool {
	switch filter {
	case FilterNew:
		return cp.newest[h]
	case FilterOld:
		return !cp.newest[h]
	default:
		return true
	}
}

// lookup returns the handle already holding a value equal to val (within
// epsilon) in picture i, if any.
func (cp *ContextualPicture) lookup(i int, val analytic.Object) (HandleID, bool) {
	key := val.Key()
	scale := 1.0
	if a := key.A; a < 0 {
		if -a > scale {
			scale = -a
		}
	} else if a > scale {
		scale = a
	}
	window := cp.epsilon * scale * 4

	var found HandleID
	var ok bool
	pivot := reuseEntry{key: analytic.CanonicalKey{Kind: key.Kind, A: key.A - window, B: math.Inf(-1), C: math.Inf(-1)}}
	cp.reuse[i].AscendGreaterOrEqual(pivot, func(e reuseEntry) bool {
		if e.key.Kind < key.Kind {
			return true
		}
		if e.key.Kind > key.Kind {
			return false
		}
		if e.key.A < key.A-window {
			return true
		}
		if e.key.A > key.A+window {
			return false
		}
		if e.value.Eq(val, options.WithEpsilon(cp.epsilon)) {
			found, ok = e.handle, true
			return false
		}
		return true
	})
	return found, ok
}

// resolveExisting reports the single handle already holding vals[i] in
// every picture i, requiring unanimous agreement (either every picture
// names the same existing handle, or every picture names none) — disagreement
// is a cross-picture inconsistency (spec §4.6, "atomicity" and §7's
// InconsistentPictures error).
func (cp *ContextualPicture) resolveExisting(vals []analytic.Object) (HandleID, bool, error) {
	var handle HandleID
	var found bool
	for i, val := range vals {
		h, ok := cp.lookup(i, val)
		if i == 0 {
			handle, found = h, ok
			continue
		}
		if ok != found || (ok && h != handle) {
			return 0, false, fmt.Errorf("contextual: %w: pictures disagree about existing handle identity",
				geogenerr.ErrInconsistentPictures)
		}
	}
	return handle, found, nil
}

func (cp *ContextualPicture) createHandle(kind types.ObjectKind) HandleID {
	id := cp.nextID
	cp.nextID++
	switch kind {
	case types.KindPoint:
		cp.points.Put(id, &PointHandle{ID: id, Lines: make(map[HandleID]struct{}), Circles: make(map[HandleID]struct{})})
	case types.KindLine:
		cp.lines.Put(id, &LineHandle{ID: id, Points: make(map[HandleID]struct{})})
	case types.KindCircle:
		cp.circles.Put(id, &CircleHandle{ID: id, Points: make(map[HandleID]struct{})})
	default:
		panic(fmt.Errorf("contextual: unsupported ObjectKind: %v", kind))
	}
	return id
}

func (cp *ContextualPicture) attachBacking(handle HandleID, kind types.ObjectKind, id construction.ObjectID) {
	cp.backing[id] = handle
	switch kind {
	case types.KindPoint:
		ph := cp.points.GetNode(handle).Value.(*PointHandle)
		if ph.Backing == nil {
			ph.Backing = &id
		}
	case types.KindLine:
		lh := cp.lines.GetNode(handle).Value.(*LineHandle)
		if lh.Backing == nil {
			lh.Backing = &id
		}
	case types.KindCircle:
		ch := cp.circles.GetNode(handle).Value.(*CircleHandle)
		if ch.Backing == nil {
			ch.Backing = &id
		}
	}
}

func (cp *ContextualPicture) point(h HandleID) *PointHandle   { return cp.points.GetNode(h).Value.(*PointHandle) }
func (cp *ContextualPicture) line(h HandleID) *LineHandle     { return cp.lines.GetNode(h).Value.(*LineHandle) }
func (cp *ContextualPicture) circle(h HandleID) *CircleHandle { return cp.circles.GetNode(h).Value.(*CircleHandle) }

// Add registers obj — already realized in every picture (spec §4.5's
// registrar must run first) — into the contextual picture, implementing the
// five-step algorithm of spec §4.6:
//
//  1. look up whether obj's analytic value already names an existing handle
//     in every picture, unanimously;
//  2. attach obj as the backing configuration object of that handle, or
//     allocate a fresh one;
//  3. (new handle only) store its per-picture realization and index it for
//     future reuse lookups;
//  4. if obj is a point: test incidence against every existing line and
//     circle, then resolve the implicit lines and circles this point forms
//     with every other existing point;
//  5. if obj is a line or circle: test incidence against every existing
//     point.
//
// Every cross-picture disagreement during this process is reported as
// [geogenerr.ErrInconsistentPictures]. Add is not atomic: when such an error
// comes from step 4 or 5, obj's handle has already been created or backed and
// may already be linked to some lines, circles, or implicit handles; none of
// that is undone.
//
// Add marks the handle it touched — created fresh or given a new backing
// object — as new, accumulating into whatever the current step's "new" set
// already holds; it never resets that bookkeeping itself. A caller that adds
// several objects as one logical extension step must call [BeginStep] once
// before the batch so every object's handle is visible to producers' "new"
// gate together, not just the last one's.
func (cp *ContextualPicture) Add(obj construction.ConfigurationObject) error {
	vals := make([]analytic.Object, len(cp.pictures))
	for i, pic := range cp.pictures {
		v, ok := pic.GetAnalytic(obj.ID())
		if !ok {
			return fmt.Errorf("contextual: %w: object %d not yet realized in picture %d",
				geogenerr.ErrInternalInvariantViolation, obj.ID(), i)
		}
		vals[i] = v
	}

	handle, existed, err := cp.resolveExisting(vals)
	if err != nil {
		return err
	}

	if existed {
		logDebugf("Add: object %d realizes already-known handle %d", obj.ID(), handle)
		cp.newest[handle] = true
		cp.attachBacking(handle, obj.Kind(), obj.ID())
	} else {
		handle = cp.createHandle(obj.Kind())
		cp.newest[handle] = true
		logDebugf("Add: object %d creates new handle %d (%s)", obj.ID(), handle, obj.Kind())
		for i, v := range vals {
			cp.analytic[i][handle] = v
			cp.reuse[i].ReplaceOrInsert(reuseEntry{key: v.Key(), value: v, handle: handle})
		}
		cp.attachBacking(handle, obj.Kind(), obj.ID())
	}

	if obj.Kind() == types.KindPoint {
		return cp.linkNewPoint(handle, vals)
	}
	return cp.linkNewLineOrCircle(handle, obj.Kind(), vals)
}

// onLine reports whether point lies on line, within epsilon, the same way
// in every picture. A picture-by-picture split vote is an inconsistency
// (spec §4.6, "membership agrees across all pictures").
func (cp *ContextualPicture) onLine(point, line HandleID) (bool, error) {
	var agree bool
	for i := range cp.pictures {
		p := cp.analytic[i][point].Point()
		l := cp.analytic[i][line].Line()
		on := l.Contains(p, options.WithEpsilon(cp.epsilon))
		if i == 0 {
			agree = on
			continue
		}
		if on != agree {
			return false, fmt.Errorf("contextual: %w: point %d / line %d incidence disagrees across pictures",
				geogenerr.ErrInconsistentPictures, point, line)
		}
	}
	return agree, nil
}

func (cp *ContextualPicture) onCircle(point, circ HandleID) (bool, error) {
	var agree bool
	for i := range cp.pictures {
		p := cp.analytic[i][point].Point()
		c := cp.analytic[i][circ].Circle()
		on := c.Contains(p, options.WithEpsilon(cp.epsilon))
		if i == 0 {
			agree = on
			continue
		}
		if on != agree {
			return false, fmt.Errorf("contextual: %w: point %d / circle %d incidence disagrees across pictures",
				geogenerr.ErrInconsistentPictures, point, circ)
		}
	}
	return agree, nil
}

func (cp *ContextualPicture) collinearAgrees(a, b, c HandleID) (bool, error) {
	var agree bool
	for i := range cp.pictures {
		col := analytic.Collinear(
			cp.analytic[i][a].Point(), cp.analytic[i][b].Point(), cp.analytic[i][c].Point(),
			options.WithEpsilon(cp.epsilon))
		if i == 0 {
			agree = col
			continue
		}
		if col != agree {
			return false, fmt.Errorf("contextual: %w: points %d,%d,%d collinearity disagrees across pictures",
				geogenerr.ErrInconsistentPictures, a, b, c)
		}
	}
	return agree, nil
}

// linkNewPoint implements step 4 of the Add algorithm for a point handle:
// test it against every existing line and circle, then resolve the implicit
// line and circle it forms with every other existing point.
func (cp *ContextualPicture) linkNewPoint(point HandleID, vals []analytic.Object) error {
	for _, lh := range cp.linesSnapshot() {
		on, err := cp.onLine(point, lh.ID)
		if err != nil {
			return err
		}
		if on {
			lh.Points[point] = struct{}{}
			cp.point(point).Lines[lh.ID] = struct{}{}
		}
	}
	for _, ch := range cp.circlesSnapshot() {
		on, err := cp.onCircle(point, ch.ID)
		if err != nil {
			return err
		}
		if on {
			ch.Points[point] = struct{}{}
			cp.point(point).Circles[ch.ID] = struct{}{}
		}
	}

	others := cp.otherPoints(point)
	for _, other := range others {
		if err := cp.resolveImplicitLine(point, other); err != nil {
			return err
		}
	}
	for i, a := range others {
		for _, b := range others[i+1:] {
			if err := cp.resolveImplicitCircle(point, a, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// linkNewLineOrCircle implements step 5 of the Add algorithm: test the new
// line or circle handle against every existing point.
func (cp *ContextualPicture) linkNewLineOrCircle(handle HandleID, kind types.ObjectKind, vals []analytic.Object) error {
	for _, ph := range cp.allPoints() {
		var on bool
		var err error
		switch kind {
		case types.KindLine:
			on, err = cp.onLine(ph.ID, handle)
		case types.KindCircle:
			on, err = cp.onCircle(ph.ID, handle)
		}
		if err != nil {
			return err
		}
		if on {
			ph.addIncidence(kind, handle)
			cp.addPointToHandle(kind, handle, ph.ID)
		}
	}
	return nil
}

func (ph *PointHandle) addIncidence(kind types.ObjectKind, handle HandleID) {
	switch kind {
	case types.KindLine:
		ph.Lines[handle] = struct{}{}
	case types.KindCircle:
		ph.Circles[handle] = struct{}{}
	}
}

func (cp *ContextualPicture) addPointToHandle(kind types.ObjectKind, handle, point HandleID) {
	switch kind {
	case types.KindLine:
		cp.line(handle).Points[point] = struct{}{}
	case types.KindCircle:
		cp.circle(handle).Points[point] = struct{}{}
	}
}

// resolveImplicitLine finds or creates the line through a and b (spec §4.6:
// "every pair of known points determines a line; reuse an existing handle
// if one already realizes it, else introduce an implicit one").
func (cp *ContextualPicture) resolveImplicitLine(a, b HandleID) error {
	vals := make([]analytic.Object, len(cp.pictures))
	for i := range cp.pictures {
		pa := cp.analytic[i][a].Point()
		pb := cp.analytic[i][b].Point()
		l, err := analytic.LineThrough(pa, pb, options.WithEpsilon(cp.epsilon))
		if err != nil {
			return fmt.Errorf("contextual: %w: points %d,%d coincide in picture %d, cannot determine a line",
				geogenerr.ErrInternalInvariantViolation, a, b, i)
		}
		vals[i] = analytic.ObjectFromLine(l)
	}

	handle, existed, err := cp.resolveExisting(vals)
	if err != nil {
		return err
	}
	if !existed {
		handle = cp.createHandle(types.KindLine)
		cp.newest[handle] = true
		for i, v := range vals {
			cp.analytic[i][handle] = v
			cp.reuse[i].ReplaceOrInsert(reuseEntry{key: v.Key(), value: v, handle: handle})
		}
	}
	lh := cp.line(handle)
	lh.Points[a] = struct{}{}
	lh.Points[b] = struct{}{}
	cp.point(a).Lines[handle] = struct{}{}
	cp.point(b).Lines[handle] = struct{}{}
	return nil
}

// resolveImplicitCircle finds or creates the circumcircle of a, b, and c,
// skipping collinear triples (no circle exists) and requiring every picture
// to agree on collinearity before proceeding.
func (cp *ContextualPicture) resolveImplicitCircle(a, b, c HandleID) error {
	collinear, err := cp.collinearAgrees(a, b, c)
	if err != nil {
		return err
	}
	if collinear {
		return nil
	}

	vals := make([]analytic.Object, len(cp.pictures))
	for i := range cp.pictures {
		pa := cp.analytic[i][a].Point()
		pb := cp.analytic[i][b].Point()
		pc := cp.analytic[i][c].Point()
		circ, err := analytic.CircleThrough(pa, pb, pc, options.WithEpsilon(cp.epsilon))
		if err != nil {
			return fmt.Errorf("contextual: %w: points %d,%d,%d nearly collinear in picture %d despite agreement",
				geogenerr.ErrInternalInvariantViolation, a, b, c, i)
		}
		vals[i] = analytic.ObjectFromCircle(circ)
	}

	handle, existed, err := cp.resolveExisting(vals)
	if err != nil {
		return err
	}
	if !existed {
		handle = cp.createHandle(types.KindCircle)
		cp.newest[handle] = true
		for i, v := range vals {
			cp.analytic[i][handle] = v
			cp.reuse[i].ReplaceOrInsert(reuseEntry{key: v.Key(), value: v, handle: handle})
		}
	}
	ch := cp.circle(handle)
	ch.Points[a] = struct{}{}
	ch.Points[b] = struct{}{}
	ch.Points[c] = struct{}{}
	cp.point(a).Circles[handle] = struct{}{}
	cp.point(b).Circles[handle] = struct{}{}
	cp.point(c).Circles[handle] = struct{}{}
	return nil
}

// otherPoints returns every point handle except exclude, in ascending id
// order, for the pairwise implicit-line/circle resolution steps.
func (cp *ContextualPicture) otherPoints(exclude HandleID) []*PointHandle {
	var out []*PointHandle
	it := cp.points.Iterator()
	for it.Next() {
		h := it.Key().(HandleID)
		if h == exclude {
			continue
		}
		out = append(out, it.Value().(*PointHandle))
	}
	return out
}

// allPoints returns every point handle, in ascending id order.
func (cp *ContextualPicture) allPoints() []*PointHandle {
	var out []*PointHandle
	it := cp.points.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*PointHandle))
	}
	return out
}

func (cp *ContextualPicture) linesSnapshot() []*LineHandle {
	var out []*LineHandle
	it := cp.lines.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*LineHandle))
	}
	return out
}

func (cp *ContextualPicture) circlesSnapshot() []*CircleHandle {
	var out []*CircleHandle
	it := cp.circles.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*CircleHandle))
	}
	return out
}
