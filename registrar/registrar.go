// Package registrar implements the geometry registrar of spec §4.5: given a
// newly constructed symbolic object, invoke its construction's evaluator
// against every picture, enforce that all pictures agree on constructibility
// and on duplicate identity, and report the result. This is the only place
// outside the contextual picture (spec §4.6) that raises
// [geogenerr.ErrInconsistentPictures]; once raised, the caller is expected to
// discard the configuration under analysis (spec §7).
package registrar

import (
	"fmt"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/constructors"
	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/picture"
	"github.com/mikenye/geogen/types"
)

// Result is the outcome of registering one Constructed object (spec §4.5's
// "(can_be_constructed, duplicates)", specialized to a single object — the
// analyzer, which registers objects one at a time, accumulates these into
// the `duplicates` map of spec §6's `ConstructionData`).
type Result struct {
	// CanBeConstructed reports whether every picture realized obj. False
	// means every picture reported ErrInconstructible consistently — not an
	// error, a well-formed negative result (spec §4.5, third bullet).
	CanBeConstructed bool

	// IsDuplicate reports whether obj's analytic value coincided, within
	// epsilon and identically across every picture, with an existing
	// symbolic object's. Only meaningful when CanBeConstructed is true.
	IsDuplicate bool

	// DuplicateOf is the canonical existing object obj duplicates, valid
	// only when IsDuplicate is true.
	DuplicateOf construction.ObjectID
}

// Realize evaluates obj's construction against every picture's already
// realized parents, without mutating any picture. It returns the per-picture
// analytic outcomes (val valid only where err == nil) for obj's construction
// — the building block both [Add] and an external "probe" caller (spec §6:
// `construct(pictures, object) -> Option<Map<Picture, AnalyticObject>>`) need.
func Realize(obj construction.ConfigurationObject, pictures []*picture.Picture, opts ...options.GeometryOptionsFunc) ([]analytic.Object, []error, error) {
	if obj.IsLoose() {
		return nil, nil, fmt.Errorf("registrar: %w: object %d is loose, not constructed", geogenerr.ErrInvalidInput, obj.ID())
	}
	c, _ := obj.ConstructionOf()
	eval, ok := constructors.Registry[c.Name]
	if !ok {
		return nil, nil, fmt.Errorf("registrar: %w: unknown construction %q", geogenerr.ErrInvalidInput, c.Name)
	}
	argKinds := make([]types.ObjectKind, 0, c.ArgCount())
	for _, p := range c.Params {
		for k := 0; k < p.ArgCount(); k++ {
			argKinds = append(argKinds, p.Kind)
		}
	}

	vals := make([]analytic.Object, len(pictures))
	errs := make([]error, len(pictures))
	for i, pic := range pictures {
		args := make([]analytic.Object, len(obj.Args()))
		for j, parentID := range obj.Args() {
			v, found := pic.GetAnalytic(parentID)
			if !found {
				return nil, nil, fmt.Errorf(
					"registrar: %w: picture %d: parent object %d of %d not yet realized",
					geogenerr.ErrInternalInvariantViolation, i, parentID, obj.ID())
			}
			if v.Kind() != argKinds[j] {
				return nil, nil, fmt.Errorf("registrar: %w: construction %q arg %d: expected kind %s, got %s",
					geogenerr.ErrInvalidInput, c.Name, j, argKinds[j], v.Kind())
			}
			args[j] = v
		}
		vals[i], errs[i] = eval(args, opts...)
	}
	return vals, errs, nil
}

// Add registers obj into every picture, enforcing the cross-picture
// consistency rules of spec §4.5:
//
//   - some pictures constructible, others not -> ErrInconsistentPictures.
//   - no picture constructible -> CanBeConstructed = false, no error.
//   - all constructible, but pictures disagree about which existing object
//     (if any) obj duplicates -> ErrInconsistentPictures.
//   - otherwise -> CanBeConstructed = true, with agreed duplicate status.
//
// Mutation of the pictures only happens after every consistency check has
// passed, so a failed Add never partially mutates any picture (the add is
// atomic per configuration object, mirroring the invariant spec §4.6 states
// for the contextual picture).
func Add(obj construction.ConfigurationObject, pictures []*picture.Picture, opts ...options.GeometryOptionsFunc) (Result, error) {
	for i, pic := range pictures {
		if pic.Has(obj.ID()) {
			return Result{}, fmt.Errorf("registrar: %w: object %d is already registered in picture %d",
				geogenerr.ErrInternalInvariantViolation, obj.ID(), i)
		}
	}
	vals, errs, err := Realize(obj, pictures, opts...)
	if err != nil {
		return Result{}, err
	}

	numOk, numFail := 0, 0
	for _, e := range errs {
		if e != nil {
			numFail++
		} else {
			numOk++
		}
	}
	if numOk > 0 && numFail > 0 {
		return Result{}, fmt.Errorf("registrar: object %d: %w: constructible in %d picture(s), inconstructible in %d",
			obj.ID(), geogenerr.ErrInconsistentPictures, numOk, numFail)
	}
	if numOk == 0 {
		return Result{CanBeConstructed: false}, nil
	}

	// Probe duplicate identity in every picture before mutating any of them.
	var canonical construction.ObjectID
	var isDup bool
	for i, pic := range pictures {
		ids, found := pic.GetSymbolicByAnalytic(vals[i])
		thisDup := found
		var thisCanonical construction.ObjectID
		if found {
			thisCanonical = ids[0]
		}
		if i == 0 {
			canonical, isDup = thisCanonical, thisDup
			continue
		}
		if thisDup != isDup || (thisDup && thisCanonical != canonical) {
			return Result{}, fmt.Errorf("registrar: object %d: %w: pictures disagree about duplicate identity",
				obj.ID(), geogenerr.ErrInconsistentPictures)
		}
	}

	for i, pic := range pictures {
		pic.Add(obj.ID(), vals[i])
	}

	return Result{CanBeConstructed: true, IsDuplicate: isDup, DuplicateOf: canonical}, nil
}
