package construction

import (
	"fmt"

	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/types"
)

// ObjectID is a stable integer identifier for a [ConfigurationObject], unique
// within a single configuration (spec §3). Construction order is the id
// order: a parent's id is always strictly less than any child's id.
type ObjectID int

// ConfigurationObject is a symbolic object in a configuration: either Loose
// (a free object realized by random layout in each picture) or Constructed
// (the output of applying a [Construction] to earlier objects), per spec §3.
//
// The zero value is not a valid ConfigurationObject; build one with [Loose]
// or [Constructed].
type ConfigurationObject struct {
	id           ObjectID
	kind         types.ObjectKind
	construction *Construction // nil for Loose objects
	args         []ObjectID
}

// Loose constructs a free ConfigurationObject of the given kind.
func Loose(id ObjectID, kind types.ObjectKind) ConfigurationObject {
	return ConfigurationObject{id: id, kind: kind}
}

// Constructed constructs a ConfigurationObject that is the output of
// applying c to the parents named by args (in signature order). It reports
// [geogenerr.ErrInvalidInput] if any parent id is not strictly less than id (the
// "parents precede children" invariant of spec §3), or if args does not
// match c's signature arity — the kind-match half of signature validation
// additionally requires the parents' own kinds, which this package cannot
// see (it stores only ids). Constructed therefore does not check kinds: the
// registrar checks each realized parent's kind against c's signature before
// evaluating, and [Construction.ValidateArgs] performs the same check for a
// caller holding the parent ConfigurationObjects themselves.
func Constructed(id ObjectID, c Construction, args []ObjectID) (ConfigurationObject, error) {
	if len(args) != c.ArgCount() {
		logDebugf("Constructed: %q expects %d args, got %d", c.Name, c.ArgCount(), len(args))
		return ConfigurationObject{}, fmt.Errorf("%w: construction %q expects %d args, got %d",
			geogenerr.ErrInvalidInput, c.Name, c.ArgCount(), len(args))
	}
	for _, a := range args {
		if a >= id {
			logDebugf("Constructed: parent %d does not precede child %d", a, id)
			return ConfigurationObject{}, fmt.Errorf(
				"%w: parent object %d does not precede child %d", geogenerr.ErrInvalidInput, a, id)
		}
	}
	return ConfigurationObject{id: id, kind: c.Output, construction: &c, args: args}, nil
}

// ID returns o's stable identifier.
func (o ConfigurationObject) ID() ObjectID { return o.id }

// Kind returns o's object kind — for a Constructed object this is always its
// construction's output kind (spec §3 invariant).
func (o ConfigurationObject) Kind() types.ObjectKind { return o.kind }

// IsLoose reports whether o is a free object with no construction.
func (o ConfigurationObject) IsLoose() bool { return o.construction == nil }

// ConstructionOf returns o's construction and true, or the zero Construction
// and false if o [IsLoose].
func (o ConfigurationObject) ConstructionOf() (Construction, bool) {
	if o.construction == nil {
		return Construction{}, false
	}
	return *o.construction, true
}

// Args returns the ordered parent ids of a Constructed object, or nil for a
// Loose object.
func (o ConfigurationObject) Args() []ObjectID {
	return o.args
}

// String renders a compact debugging form.
func (o ConfigurationObject) String() string {
	if o.IsLoose() {
		return fmt.Sprintf("#%d(loose %s)", o.id, o.kind)
	}
	return fmt.Sprintf("#%d(%s%v -> %s)", o.id, o.construction.Name, o.args, o.kind)
}
