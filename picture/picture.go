// Package picture implements one numeric realization of a configuration
// (spec §4.2) and the manager that owns several independently-randomized
// realizations of the same configuration (spec §4.3).
package picture

import (
	"math"
	"sort"

	"github.com/google/btree"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/options"
)

// entry is one distinct analytic value registered in a Picture, indexed by
// its canonical key in the btree ordered by [analytic.CanonicalKey.Less].
// This is the DOMAIN STACK wiring described in SPEC_FULL.md: google/btree,
// already a teacher dependency for the sweep-line event queue
// (linesegment/sweepline_eventqueue.go), repurposed as an ordered index so a
// near-duplicate probe scans a small window around the candidate's key
// instead of the whole picture.
type entry struct {
	key       analytic.CanonicalKey
	value     analytic.Object
	canonical construction.ObjectID
}

func entryLess(a, b entry) bool { return a.key.Less(b.key) }

// Picture is a bidirectional mapping between [construction.ConfigurationObject]
// ids and their [analytic.Object] realization in one numeric instantiation of
// a configuration (spec §4.2). It owns its values: a Picture is created
// empty and grows monotonically as constructions are applied.
//
// The "right side" also records, for each distinct analytic value, every
// symbolic id that realizes to it — used by the registrar to surface
// duplicate-object theorems (§4.5, §4.8 scenario S6)
// without ever replacing the first ("canonical") symbolic id that produced
// that value.
type Picture struct {
	bySymbol    map[construction.ObjectID]analytic.Object
	byAnalytic  *btree.BTreeG[entry]
	duplicateOf map[construction.ObjectID]construction.ObjectID   // duplicate id -> canonical id
	duplicates  map[construction.ObjectID][]construction.ObjectID // canonical id -> duplicate ids, in add order
	epsilon     float64
}

// New creates an empty Picture. opts configures the epsilon used by every
// equality and near-duplicate check this Picture performs; the default is
// [options.DefaultEpsilon].
func New(opts ...options.GeometryOptionsFunc) *Picture {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	return &Picture{
		bySymbol:    make(map[construction.ObjectID]analytic.Object),
		byAnalytic:  btree.NewG(32, entryLess),
		duplicateOf: make(map[construction.ObjectID]construction.ObjectID),
		duplicates:  make(map[construction.ObjectID][]construction.ObjectID),
		epsilon:     o.Epsilon,
	}
}

// near returns the canonical id of an existing analytic value equal to val
// within epsilon, if any, by ascending the btree from val's key and scanning
// only the window where the first canonical-key component (Kind, then A) can
// plausibly still be within epsilon.
func (p *Picture) near(val analytic.Object) (construction.ObjectID, bool) {
	key := val.Key()
	scale := 1.0
	if a := key.A; a < 0 {
		if -a > scale {
			scale = -a
		}
	} else if a > scale {
		scale = a
	}
	window := p.epsilon * scale * 4 // generous margin; Eq() does the precise check

	var found construction.ObjectID
	var ok bool
	pivot := entry{key: analytic.CanonicalKey{Kind: key.Kind, A: key.A - window, B: math.Inf(-1), C: math.Inf(-1)}}
	p.byAnalytic.AscendGreaterOrEqual(pivot, func(e entry) bool {
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
		if e.value.Eq(val, options.WithEpsilon(p.epsilon)) {
			found, ok = e.canonical, true
			return false
		}
		return true
	})
	return found, ok
}

// Add installs symbolic as realizing to val in this Picture. If val is
// already present (within epsilon) under some earlier canonical symbolic
// id, symbolic is recorded as a duplicate of that id — the canonical id is
// never replaced — and Add reports (canonicalID, true). Otherwise symbolic
// becomes its own canonical id and Add reports (symbolic, false).
//
// The symbolic→analytic mapping is total for every id ever passed to Add,
// canonical or duplicate alike (spec §4.2 invariant).
func (p *Picture) Add(symbolic construction.ObjectID, val analytic.Object) (canonical construction.ObjectID, isDuplicate bool) {
	p.bySymbol[symbolic] = val

	if existing, found := p.near(val); found {
		p.duplicateOf[symbolic] = existing
		p.duplicates[existing] = append(p.duplicates[existing], symbolic)
		return existing, true
	}

	p.byAnalytic.ReplaceOrInsert(entry{key: val.Key(), value: val, canonical: symbolic})
	return symbolic, false
}

// GetAnalytic returns the analytic realization of symbolic, if it has been added.
func (p *Picture) GetAnalytic(symbolic construction.ObjectID) (analytic.Object, bool) {
	v, ok := p.bySymbol[symbolic]
	return v, ok
}

// GetSymbolicByAnalytic returns every symbolic id (canonical first, then
// duplicates in the order they were added) realizing to a value equal to val
// within epsilon.
func (p *Picture) GetSymbolicByAnalytic(val analytic.Object) ([]construction.ObjectID, bool) {
	canonical, ok := p.near(val)
	if !ok {
		return nil, false
	}
	ids := append([]construction.ObjectID{canonical}, p.duplicates[canonical]...)
	return ids, true
}

// DuplicateOf returns the canonical id symbolic is a duplicate of, if it is one.
func (p *Picture) DuplicateOf(symbolic construction.ObjectID) (construction.ObjectID, bool) {
	id, ok := p.duplicateOf[symbolic]
	return id, ok
}

// Has reports whether symbolic has been added (canonical or duplicate).
func (p *Picture) Has(symbolic construction.ObjectID) bool {
	_, ok := p.bySymbol[symbolic]
	return ok
}

// Ids returns every symbolic id added so far, in ascending order, for
// deterministic iteration.
func (p *Picture) Ids() []construction.ObjectID {
	ids := make([]construction.ObjectID, 0, len(p.bySymbol))
	for id := range p.bySymbol {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len reports how many symbolic ids have been added.
func (p *Picture) Len() int { return len(p.bySymbol) }

// Clone returns a deep, independent copy of p: mutating the clone never
// affects p and vice versa. Used by [Manager.Clone] to extend an
// already-populated set of pictures with one more construction without
// disturbing the original (spec §4.3 "cloning for incremental extension").
func (p *Picture) Clone() *Picture {
	clone := &Picture{
		bySymbol:    make(map[construction.ObjectID]analytic.Object, len(p.bySymbol)),
		byAnalytic:  btree.NewG(32, entryLess),
		duplicateOf: make(map[construction.ObjectID]construction.ObjectID, len(p.duplicateOf)),
		duplicates:  make(map[construction.ObjectID][]construction.ObjectID, len(p.duplicates)),
		epsilon:     p.epsilon,
	}
	for id, v := range p.bySymbol {
		clone.bySymbol[id] = v
	}
	for id, v := range p.duplicateOf {
		clone.duplicateOf[id] = v
	}
	for id, vs := range p.duplicates {
		clone.duplicates[id] = append([]construction.ObjectID(nil), vs...)
	}
	p.byAnalytic.Ascend(func(e entry) bool {
		clone.byAnalytic.ReplaceOrInsert(e)
		return true
	})
	return clone
}
