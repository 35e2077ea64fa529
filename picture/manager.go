package picture

import (
	"fmt"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/options"
	"github.com/mikenye/geogen/randgen"
	"github.com/mikenye/geogen/types"
)

// DefaultPictureCount is the default number of independently-randomized
// pictures a configuration is instantiated into (spec §4.3: "owns N
// (default 5) independent pictures").
const DefaultPictureCount = 5

// DefaultMaxReseeds bounds how many times a single picture's loose-object
// layout is resampled before its configuration is declared inconstructible
// (spec §4.3, §9 "bounded retry budget"; spec.md leaves the exact bound
// open, this is the supplemented default — see SPEC_FULL.md).
const DefaultMaxReseeds = 25

// DefaultBound is the half-width of the square free objects are sampled
// from: coordinates are drawn uniformly from [-DefaultBound, DefaultBound].
const DefaultBound = 10.0

// LooseSpec names one free object a Manager must realize into every picture
// it owns: its stable id and kind. Manager does not know, and does not need
// to know, anything about constructed objects — those are realized by the
// constructors package acting directly on individual Pictures, driven by the
// registrar.
type LooseSpec struct {
	ID   construction.ObjectID
	Kind types.ObjectKind
}

// Manager owns N independent [Picture]s of one configuration (spec §4.3),
// produced from independently randomized free objects, and provides
// iteration, reseeding, and cloning for incremental extension.
type Manager struct {
	pictures   []*Picture
	rngs       []*randgen.RNG
	maxReseeds int
	bound      float64
	epsilon    float64
	seed       uint64
}

// ManagerOption configures optional Manager parameters.
type ManagerOption func(*Manager)

// WithMaxReseeds overrides [DefaultMaxReseeds].
func WithMaxReseeds(n int) ManagerOption {
	return func(m *Manager) { m.maxReseeds = n }
}

// WithBound overrides [DefaultBound].
func WithBound(b float64) ManagerOption {
	return func(m *Manager) { m.bound = b }
}

// WithEpsilon overrides the epsilon used by every Picture this Manager owns.
func WithEpsilon(eps float64) ManagerOption {
	return func(m *Manager) { m.epsilon = eps }
}

// NewManager creates a Manager owning n empty pictures (n <= 0 defaults to
// [DefaultPictureCount]), each with its own sub-seed deterministically
// derived from seed (spec §5: "theorems must be emitted deterministically
// given the same seed").
func NewManager(n int, seed uint64, opts ...ManagerOption) *Manager {
	if n <= 0 {
		n = DefaultPictureCount
	}
	m := &Manager{
		maxReseeds: DefaultMaxReseeds,
		bound:      DefaultBound,
		epsilon:    options.DefaultEpsilon,
		seed:       seed,
	}
	for _, opt := range opts {
		opt(m)
	}

	master := randgen.New(seed)
	m.pictures = make([]*Picture, n)
	m.rngs = make([]*randgen.RNG, n)
	for i := 0; i < n; i++ {
		m.rngs[i] = master.Derive(i)
		m.pictures[i] = New(options.WithEpsilon(m.epsilon))
	}
	return m
}

// Pictures returns every picture this Manager owns, in a stable order.
func (m *Manager) Pictures() []*Picture { return m.pictures }

// NPictures returns how many pictures this Manager owns.
func (m *Manager) NPictures() int { return len(m.pictures) }

// Seed returns the master seed this Manager was created from.
func (m *Manager) Seed() uint64 { return m.seed }

// sampleLoose draws one fresh analytic realization of spec from rng.
func sampleLoose(spec LooseSpec, rng *randgen.RNG, bound float64) (analytic.Object, error) {
	randPoint := func() analytic.Point {
		return analytic.NewPoint(rng.Float64Range(-bound, bound), rng.Float64Range(-bound, bound))
	}
	switch spec.Kind {
	case types.KindPoint:
		return analytic.ObjectFromPoint(randPoint()), nil
	case types.KindLine:
		l, err := analytic.LineThrough(randPoint(), randPoint())
		if err != nil {
			return analytic.Object{}, fmt.Errorf("%w: %v", geogenerr.ErrInconstructible, err)
		}
		return analytic.ObjectFromLine(l), nil
	case types.KindCircle:
		c, err := analytic.CircleThrough(randPoint(), randPoint(), randPoint())
		if err != nil {
			return analytic.Object{}, fmt.Errorf("%w: %v", geogenerr.ErrInconstructible, err)
		}
		return analytic.ObjectFromCircle(c), nil
	default:
		return analytic.Object{}, fmt.Errorf("%w: unsupported loose kind %s", geogenerr.ErrInvalidInput, spec.Kind)
	}
}

// AddLoose realizes spec into every picture this Manager owns. Each
// picture's draw is independent: if a picture's initial random layout is
// degenerate (e.g. two coincident support points for a loose line), that
// single picture's draw is made up to the Manager's reseed budget
// ([DefaultMaxReseeds] unless [WithMaxReseeds] overrides it) times before the whole
// call fails with [geogenerr.ErrInconstructible] — this is the "bounded
// retry budget" of spec §4.3 and §9. A failure here means the configuration
// itself could not be instantiated and must be rejected upstream; it is not
// the cross-picture disagreement [geogenerr.ErrInconsistentPictures] covers,
// since loose-object realizability never depends on other pictures.
func (m *Manager) AddLoose(spec LooseSpec) error {
	for i, pic := range m.pictures {
		var lastErr error
		ok := false
		for attempt := 0; attempt < m.maxReseeds; attempt++ {
			val, err := sampleLoose(spec, m.rngs[i], m.bound)
			if err != nil {
				lastErr = err
				continue
			}
			pic.Add(spec.ID, val)
			ok = true
			break
		}
		if !ok {
			return fmt.Errorf("picture manager: picture %d: exceeded %d reseed attempts for loose object %d: %w",
				i, m.maxReseeds, spec.ID, lastErr)
		}
	}
	return nil
}

// Clone returns a new Manager owning independent deep copies of every
// picture this Manager owns, with fresh per-picture RNGs derived from a
// distinct seed so further loose objects (if any) added to the clone do not
// retrace the original's sequence. This is the "cloning for incremental
// extension" of spec §4.3: given an already-populated manager for an "old"
// configuration, produce a manager for the configuration extended by one
// object, ready for the registrar to apply just the new construction to
// each cloned picture.
func (m *Manager) Clone() *Manager {
	clone := &Manager{
		maxReseeds: m.maxReseeds,
		bound:      m.bound,
		epsilon:    m.epsilon,
		seed:       m.seed,
	}
	master := randgen.New(m.seed + 1)
	clone.pictures = make([]*Picture, len(m.pictures))
	clone.rngs = make([]*randgen.RNG, len(m.pictures))
	for i, pic := range m.pictures {
		clone.pictures[i] = pic.Clone()
		clone.rngs[i] = master.Derive(i)
	}
	return clone
}
