// Package runner implements the verifier runner of spec §4.8: it accepts a
// candidate theorem only once its verification predicate has held in every
// picture the manager tracks, then hands the result to a [Set] so repeated
// discovery runs over growing configurations never re-report an
// already-known fact.
package runner

import (
	"fmt"
	"sort"

	"github.com/mikenye/geogen/theorem"
)

// Run verifies every candidate against all nPictures pictures and returns
// the accepted theorems in canonical order (spec §4.8: "type, then
// lexicographic on involved ids"). A candidate is accepted iff Verify(i) is
// true for every i in [0, nPictures) — a single failing picture rejects it
// outright, with no partial credit.
func Run(candidates []theorem.PotentialTheorem, nPictures int) []theorem.Theorem {
	var out []theorem.Theorem
	for _, c := range candidates {
		if accepted(c, nPictures) {
			out = append(out, theorem.New(c.Kind, c.Objects))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func accepted(c theorem.PotentialTheorem, nPictures int) bool {
	for i := 0; i < nPictures; i++ {
		if !c.Verify(i) {
			return false
		}
	}
	return true
}

// Set is the "already-known theorems" container spec §4.8 says the runner
// deduplicates against. It is also how the analyzer accumulates discovered
// theorems across successive configuration extensions.
type Set struct {
	byKey map[string]theorem.Theorem
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{byKey: make(map[string]theorem.Theorem)} }

// key gives every distinct Theorem (as normalized by [theorem.New]) a unique
// string, so Set can use a plain map instead of a linear Equal scan.
func key(t theorem.Theorem) string {
	s := fmt.Sprintf("%d", t.Kind)
	for _, o := range t.Objects {
		s += fmt.Sprintf("|%d:%d:%d", o.Role, o.ID, o.Other)
	}
	return s
}

// Contains reports whether t (or an Equal theorem) is already in the set.
func (s *Set) Contains(t theorem.Theorem) bool {
	_, ok := s.byKey[key(t)]
	return ok
}

// Add inserts t, a no-op if an Equal theorem is already present.
func (s *Set) Add(t theorem.Theorem) { s.byKey[key(t)] = t }

// AddAll inserts every theorem in ts.
func (s *Set) AddAll(ts []theorem.Theorem) {
	for _, t := range ts {
		s.Add(t)
	}
}

// New filters ts down to the theorems not already in s, preserving order.
func (s *Set) New(ts []theorem.Theorem) []theorem.Theorem {
	var out []theorem.Theorem
	for _, t := range ts {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Slice returns every theorem in s, in canonical order.
func (s *Set) Slice() []theorem.Theorem {
	out := make([]theorem.Theorem, 0, len(s.byKey))
	for _, t := range s.byKey {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Len reports how many theorems s holds.
func (s *Set) Len() int { return len(s.byKey) }
