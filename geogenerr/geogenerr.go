// Package geogenerr defines the exhaustive error taxonomy of spec §7: four
// sentinel errors that every fallible operation in the reasoning core
// returns through, in-band, rather than panicking. Callers match them with
// errors.Is against the package-level sentinels. The offending object id or
// construction name is carried only in the text of the %w-wrapping error's
// message; unwrapping yields the bare sentinel.
//
//   - [ErrInconstructible]: a single construction step produced no analytic
//     value in at least one picture (degenerate input). Recoverable: the
//     enclosing analyzer marks the configuration as not unambiguously
//     constructible and returns a well-formed "no theorems" result.
//   - [ErrInconsistentPictures]: pictures disagree about constructibility,
//     analytic equality, collinearity, or incidence. Recoverable at the
//     configuration level: the configuration is rejected.
//   - [ErrInvalidInput]: an ill-formed configuration (missing ids, cyclic
//     parents, wrong construction signature). Fatal for that call only.
//   - [ErrInternalInvariantViolation]: a check that should be impossible
//     (e.g. the registrar asked to re-add an object it already owns). Fatal.
package geogenerr

import "errors"

var (
	// ErrInconstructible signals a single degenerate construction step.
	ErrInconstructible = errors.New("geogen: inconstructible")

	// ErrInconsistentPictures signals that pictures disagree about a
	// predicate that should be geometrically invariant across all of them.
	ErrInconsistentPictures = errors.New("geogen: inconsistent pictures")

	// ErrInvalidInput signals an ill-formed configuration or call.
	ErrInvalidInput = errors.New("geogen: invalid input")

	// ErrInternalInvariantViolation signals a should-be-impossible internal check failure.
	ErrInternalInvariantViolation = errors.New("geogen: internal invariant violation")
)
