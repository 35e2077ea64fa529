// Package analyzer wires together every other package into the four
// external contracts spec §6 names: a geometry constructor, a
// contextual-picture factory, a theorem finder, and the gradual analyzer
// itself. Nothing here is novel geometry — it is composition, matching
// spec §6's framing that these are the boundary a configuration driver
// external to this core calls through.
package analyzer

import (
	"errors"
	"fmt"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/contextual"
	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/picture"
	"github.com/mikenye/geogen/producers"
	"github.com/mikenye/geogen/registrar"
	"github.com/mikenye/geogen/runner"
	"github.com/mikenye/geogen/theorem"
	"github.com/mikenye/geogen/types"
)

// ConstructionData reports the outcome of realizing one or more
// configuration objects into a picture.Manager (spec §6): which object, if
// any, turned out inconstructible, and which new objects turned out to
// duplicate an already-known one.
type ConstructionData struct {
	InconstructibleObject *construction.ObjectID
	Duplicates            map[construction.ObjectID]construction.ObjectID
}

func newConstructionData() ConstructionData {
	return ConstructionData{Duplicates: make(map[construction.ObjectID]construction.ObjectID)}
}

// applyObject realizes a single configuration object into m: AddLoose for a
// free object, registrar.Add for a constructed one. A degenerate result
// (inconstructible in every picture, or loose layout exceeding its reseed
// budget) is reported through cd rather than as an error — only a
// genuine InvalidInput/InternalInvariantViolation/InconsistentPictures
// propagates as err.
func applyObject(m *picture.Manager, obj construction.ConfigurationObject, opts ...options.GeometryOptionsFunc) (ConstructionData, error) {
	cd := newConstructionData()

	if obj.IsLoose() {
		if err := m.AddLoose(picture.LooseSpec{ID: obj.ID(), Kind: obj.Kind()}); err != nil {
			if errors.Is(err, geogenerr.ErrInconstructible) {
				id := obj.ID()
				cd.InconstructibleObject = &id
				return cd, nil
			}
			return ConstructionData{}, err
		}
		return cd, nil
	}

	res, err := registrar.Add(obj, m.Pictures(), opts...)
	if err != nil {
		return ConstructionData{}, err
	}
	if !res.CanBeConstructed {
		id := obj.ID()
		cd.InconstructibleObject = &id
		return cd, nil
	}
	if res.IsDuplicate {
		cd.Duplicates[obj.ID()] = res.DuplicateOf
	}
	return cd, nil
}

func mergeConstructionData(into *ConstructionData, from ConstructionData) {
	if from.InconstructibleObject != nil && into.InconstructibleObject == nil {
		into.InconstructibleObject = from.InconstructibleObject
	}
	for k, v := range from.Duplicates {
		into.Duplicates[k] = v
	}
}

// Construct builds a picture.Manager from scratch and realizes every object
// of configuration into it, in order (spec §6: "build from scratch"). It
// stops realizing further objects as soon as one is reported inconstructible
// — every object after that point is, by the parents-precede-children
// invariant, potentially dependent on a value that was never produced.
func Construct(configuration []construction.ConfigurationObject, nPictures int, seed uint64, opts ...options.GeometryOptionsFunc) (*picture.Manager, ConstructionData, error) {
	eps := epsilonOf(opts)
	m := picture.NewManager(nPictures, seed, picture.WithEpsilon(eps))
	cd := newConstructionData()
	for _, obj := range configuration {
		one, err := applyObject(m, obj, opts...)
		if err != nil {
			return m, cd, err
		}
		mergeConstructionData(&cd, one)
		if one.InconstructibleObject != nil {
			break
		}
	}
	return m, cd, nil
}

// ConstructByCloning clones old and realizes newObjects into the clone
// (spec §6: "incremental"). old is left untouched — [picture.Manager.Clone]
// already guarantees that.
func ConstructByCloning(old *picture.Manager, newObjects []construction.ConfigurationObject, opts ...options.GeometryOptionsFunc) (*picture.Manager, ConstructionData, error) {
	m := old.Clone()
	cd := newConstructionData()
	for _, obj := range newObjects {
		one, err := applyObject(m, obj, opts...)
		if err != nil {
			return m, cd, err
		}
		mergeConstructionData(&cd, one)
		if one.InconstructibleObject != nil {
			break
		}
	}
	return m, cd, nil
}

// Extend realizes a single object into m's pictures in place (spec §6:
// "extend"). When addToPictures is false, Extend validates constructibility
// and duplicate status exactly as if it had realized obj, but discards the
// realization instead of committing it to m — useful for a driver that
// wants ConstructionData without yet deciding to keep the object.
func Extend(m *picture.Manager, obj construction.ConfigurationObject, addToPictures bool, opts ...options.GeometryOptionsFunc) (ConstructionData, error) {
	if addToPictures {
		return applyObject(m, obj, opts...)
	}
	probe := m.Clone()
	return applyObject(probe, obj, opts...)
}

// Probe realizes obj against m's pictures without mutating them, returning
// the per-picture analytic value keyed by picture index (spec §6:
// `construct(pictures, object) -> Option<Map<Picture, AnalyticObject>>`).
// The zero value and false is returned if any picture cannot realize obj.
func Probe(m *picture.Manager, obj construction.ConfigurationObject, opts ...options.GeometryOptionsFunc) (map[int]analytic.Object, bool, error) {
	if obj.IsLoose() {
		return nil, false, fmt.Errorf("analyzer: %w: probe only supports constructed objects", geogenerr.ErrInvalidInput)
	}
	vals, errs, err := registrar.Realize(obj, m.Pictures(), opts...)
	if err != nil {
		return nil, false, err
	}
	out := make(map[int]analytic.Object, len(vals))
	for i, e := range errs {
		if e != nil {
			return nil, false, nil
		}
		out[i] = vals[i]
	}
	return out, true, nil
}

// Create builds a [contextual.ContextualPicture] over m's pictures (spec §6,
// contract 2: `create(pictures) -> ContextualPicture`).
func Create(m *picture.Manager, opts ...options.GeometryOptionsFunc) *contextual.ContextualPicture {
	return contextual.New(m.Pictures(), opts...)
}

// FindNew runs every producer over cp and returns the accepted theorems not
// already present in oldTheorems, which is also updated to include them
// (spec §6, contract 3: `find_new(contextual_picture, old_theorems) ->
// TheoremMap`). It relies on cp's own "handles touched since the last
// [contextual.ContextualPicture.BeginStep]" bookkeeping, so it only reports
// theorems that could not have been true before the most recent extension
// step — the caller must have called BeginStep once before adding that
// step's objects (Analyze does this itself).
func FindNew(cp *contextual.ContextualPicture, oldTheorems *runner.Set, opts ...options.GeometryOptionsFunc) []theorem.Theorem {
	candidates := producers.All(cp, opts...)
	accepted := runner.Run(candidates, cp.NPictures())
	fresh := oldTheorems.New(accepted)
	oldTheorems.AddAll(fresh)
	return fresh
}

// FindAll returns every theorem currently true of cp, new or not (spec §6,
// contract 3: `find_all(contextual_picture) -> TheoremMap`). It marks every
// handle as new before running producers so their "at least one new handle"
// gate — built for the incremental case — does not suppress anything. This
// permanently widens cp's "new" bookkeeping to everything it currently
// holds, so a FindNew call made afterward without an intervening cp.BeginStep
// would see stale "new" markings; FindAll is meant for a standalone
// full rescan, not interleaved with incremental FindNew calls on the same
// ContextualPicture.
func FindAll(cp *contextual.ContextualPicture, opts ...options.GeometryOptionsFunc) []theorem.Theorem {
	cp.MarkAllNew()
	candidates := producers.All(cp, opts...)
	return runner.Run(candidates, cp.NPictures())
}

// Result is the outcome of one [Analyze] call (spec §6, contract 4).
type Result struct {
	Theorems                   []theorem.Theorem
	UnambiguouslyConstructible bool
}

func roleOf(k types.ObjectKind) theorem.Role {
	switch k {
	case types.KindPoint:
		return theorem.RolePoint
	case types.KindLine:
		return theorem.RoleLine
	case types.KindCircle:
		return theorem.RoleCircle
	default:
		panic(fmt.Errorf("analyzer: unsupported ObjectKind: %v", k))
	}
}

// Analyze implements the gradual analyzer of spec §4.8 and §6: it realizes
// each of newObjects into m's pictures itself via [registrar.Add] (so they
// must not already be realized there; registrar.Add rejects an object a
// picture already holds) and adds each one that is not a duplicate to the
// contextual picture, then:
//
//   - if every object was constructible and none duplicated an existing
//     object, it runs the producers and returns the newly accepted theorems
//     with UnambiguouslyConstructible = true;
//   - otherwise it returns exactly one SameObjects theorem per duplicate (or
//     none, if the failure was inconstructibility rather than duplication)
//     and UnambiguouslyConstructible = false, running no producers at all
//     (spec §4.7: "no producer work" for SameObjects; spec §8 scenario S6).
//
// newObjects must all be Constructed, not Loose: the registrar (spec §4.5)
// only ever registers constructions, and a loose object can never duplicate
// an existing one in the sense this contract cares about.
//
// newObjects is treated as one extension step (spec §9's resolved open
// question: the "new" filter covers "any handle... newly created in this
// step", and a step is the whole batch, not each individual object) — Analyze
// calls [contextual.ContextualPicture.BeginStep] once before registering any
// of them, so a handle created by the third object is still visible to the
// producers' "new" gate alongside the tenth's.
func Analyze(m *picture.Manager, cp *contextual.ContextualPicture, known *runner.Set, newObjects []construction.ConfigurationObject, opts ...options.GeometryOptionsFunc) (Result, error) {
	var duplicateTheorems []theorem.Theorem
	sawDuplicate := false

	cp.BeginStep()
	for _, obj := range newObjects {
		if obj.IsLoose() {
			return Result{}, fmt.Errorf("analyzer: %w: Analyze only registers constructed objects", geogenerr.ErrInvalidInput)
		}

		res, err := registrar.Add(obj, m.Pictures(), opts...)
		if err != nil {
			return Result{}, err
		}
		if !res.CanBeConstructed {
			return Result{UnambiguouslyConstructible: false}, nil
		}
		if res.IsDuplicate {
			logDebugf("Analyze: object %d duplicates existing object %d, no producer work", obj.ID(), res.DuplicateOf)
			sawDuplicate = true
			duplicateTheorems = append(duplicateTheorems, theorem.New(theorem.SameObjects, []theorem.TheoremObject{
				{Role: roleOf(obj.Kind()), ID: int(obj.ID())},
				{Role: roleOf(obj.Kind()), ID: int(res.DuplicateOf)},
			}))
			continue
		}
		if err := cp.Add(obj); err != nil {
			return Result{}, err
		}
	}

	if sawDuplicate {
		return Result{Theorems: duplicateTheorems, UnambiguouslyConstructible: false}, nil
	}

	fresh := FindNew(cp, known, opts...)
	return Result{Theorems: fresh, UnambiguouslyConstructible: true}, nil
}

func epsilonOf(opts []options.GeometryOptionsFunc) float64 {
	o := options.ApplyGeometryOptions(options.GeometryOptions{Epsilon: options.DefaultEpsilon}, opts...)
	return o.Epsilon
}
