// Package construction defines the symbolic data model a configuration is
// built from: [ConfigurationObject] and [Construction], per spec §3. It does
// not enumerate or propose constructions — that catalogue is the externally
// owned "symbolic construction library" (see spec.md §1, "Explicitly out of
// scope") — it only defines the shapes those external callers populate and
// this core's constructors/registrar/contextual packages consume.
package construction

import (
	"fmt"

	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/types"
)

// ParamArity distinguishes a single-object parameter from a fixed-size set
// parameter in a [Construction]'s signature (spec §3: "each parameter is
// either 'one object of kind K' or 'set of N objects of kind K'").
type ParamArity uint8

const (
	// ParamSingle is a parameter consuming exactly one object of Kind.
	ParamSingle ParamArity = iota
	// ParamSet is a parameter consuming exactly N objects of Kind.
	ParamSet
)

// ParamSpec describes one positional parameter of a [Construction].
type ParamSpec struct {
	Kind  types.ObjectKind
	Arity ParamArity
	N     int // only meaningful when Arity == ParamSet
}

// Single returns a ParamSpec consuming one object of kind k.
func Single(k types.ObjectKind) ParamSpec {
	return ParamSpec{Kind: k, Arity: ParamSingle}
}

// Set returns a ParamSpec consuming n objects of kind k.
func Set(k types.ObjectKind, n int) ParamSpec {
	return ParamSpec{Kind: k, Arity: ParamSet, N: n}
}

// ArgCount returns how many ConfigurationObject arguments this parameter consumes.
func (p ParamSpec) ArgCount() int {
	if p.Arity == ParamSet {
		return p.N
	}
	return 1
}

// Construction is a named operator with an ordered parameter signature and a
// single output kind (spec §3). Predefined constructions are registered by
// the constructors package, which pairs each Construction descriptor with
// the analytic evaluator that realizes it in a picture.
type Construction struct {
	Name   string
	Params []ParamSpec
	Output types.ObjectKind
}

// ArgCount returns the total number of ConfigurationObject arguments c's
// signature consumes across all parameters.
func (c Construction) ArgCount() int {
	n := 0
	for _, p := range c.Params {
		n += p.ArgCount()
	}
	return n
}

// ValidateArgs reports an error if args does not match c's signature: wrong
// length, or an argument's kind not matching the parameter slot it falls
// into. This is the "wrong signature" member of the InvalidInput error
// taxonomy (spec §7).
func (c Construction) ValidateArgs(args []ConfigurationObject) error {
	if len(args) != c.ArgCount() {
		return fmt.Errorf("%w: construction %q expects %d args, got %d",
			geogenerr.ErrInvalidInput, c.Name, c.ArgCount(), len(args))
	}
	i := 0
	for _, p := range c.Params {
		for j := 0; j < p.ArgCount(); j++ {
			if args[i].Kind() != p.Kind {
				return fmt.Errorf("%w: construction %q arg %d: expected kind %s, got %s",
					geogenerr.ErrInvalidInput, c.Name, i, p.Kind, args[i].Kind())
			}
			i++
		}
	}
	return nil
}
