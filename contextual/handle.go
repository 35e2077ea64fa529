package contextual

import "github.com/mikenye/geogen/construction"

// HandleID is a monotonically increasing internal identifier for a
// [PointHandle], [LineHandle], or [CircleHandle], unique within one
// [ContextualPicture] across all three kinds (spec §4.6, §9 "represent this
// with an arena owned by the contextual picture that stores handles by id;
// membership sets store ids, not owning references" — avoiding the
// point↔line↔circle reference cycle spec §9 calls out).
type HandleID int

// PointHandle is a point known to the contextual picture, explicit (backed
// by a [construction.ConfigurationObject]) or not — a point is always
// explicit in practice, since nothing in this system introduces an implicit
// point, but the field is optional for symmetry with Line/CircleHandle.
type PointHandle struct {
	ID      HandleID
	Backing *construction.ObjectID
	Lines   map[HandleID]struct{}
	Circles map[HandleID]struct{}
}

// LineHandle is a line known to the contextual picture: either explicit
// (backed by a symbolic object) or implicit (introduced because it passes
// through two already-known points, spec §4.6 step 4). Points holds the
// handle ids of every point known to lie on this line in every picture. An
// implicit line always holds at least 2 points; an explicit line holds only
// the already-known points found on it, so it may hold fewer.
type LineHandle struct {
	ID      HandleID
	Backing *construction.ObjectID
	Points  map[HandleID]struct{}
}

// CircleHandle is a circle known to the contextual picture, explicit or
// implicit (introduced because it passes through three non-collinear
// already-known points). Points holds incident point handle ids. An implicit
// circle always holds at least 3 points; an explicit circle holds only the
// already-known points found on it, so it may hold fewer.
type CircleHandle struct {
	ID      HandleID
	Backing *construction.ObjectID
	Points  map[HandleID]struct{}
}

// Filter selects which subset of handles a Get<Kind> query returns,
// implementing spec §4.6's "optional filter 'new-only', 'old-only', or
// 'all' used by producers".
type Filter uint8

const (
	// FilterAll returns every handle of the requested kind.
	FilterAll Filter = iota
	// FilterNew returns only handles that gained their backing configuration
	// object, or were newly created, since the most recent
	// [ContextualPicture.BeginStep] call (every Add in between accumulates into
	// the same set) — spec §9's resolved open question: "any handle that gained its
	// backing configuration object or was newly created in this step", not
	// just the single most-recently-added configuration object's own handle.
	FilterNew
	// FilterOld returns every handle not matched by FilterNew.
	FilterOld
)
