package nfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/levendfa/distance"
)

// MultiState is a canonicalised set of NFA States reached simultaneously —
// the parametric DFA's unit of state. Canonical form keeps members sorted
// by (offset, errors, transposing) with every subsumed member pruned, so
// that two multi-states with the same shape compare equal regardless of
// the order their members were discovered in.
//
// The zero value is the dead multi-state (no reachable configuration with
// errors ≤ k).
type MultiState struct {
	states []State
}

// Empty returns the dead multi-state.
func Empty() MultiState {
	return MultiState{}
}

// Of builds a canonical multi-state from a handful of states, applying
// subsumption pruning. Used for the initial multi-state {(0, 0)} and in
// tests.
func Of(k uint8, states ...State) MultiState {
	ms := Empty()
	for _, s := range states {
		ms = ms.Add(s, k)
	}
	return ms
}

// Len returns the number of members in the multi-state.
func (ms MultiState) Len() int {
	return len(ms.states)
}

// IsDead reports whether the multi-state has no surviving members.
func (ms MultiState) IsDead() bool {
	return len(ms.states) == 0
}

// States returns the canonical member slice. Callers must not mutate it.
func (ms MultiState) States() []State {
	return ms.states
}

// Add inserts s into the multi-state with subsumption pruning, in O(|ms|):
// states with errors beyond k are dropped outright (the multi-state
// invariant "no member has errors > k" never needs a separate check
// elsewhere), s is discarded if some existing member already subsumes it,
// and any existing member that s subsumes is removed in turn.
func (ms MultiState) Add(s State, k uint8) MultiState {
	if s.Errors > k {
		return ms
	}
	for _, existing := range ms.states {
		if existing.Subsumes(s) {
			return ms
		}
	}
	next := make([]State, 0, len(ms.states)+1)
	for _, existing := range ms.states {
		if !s.Subsumes(existing) {
			next = append(next, existing)
		}
	}
	next = append(next, s)
	sort.Slice(next, func(i, j int) bool { return next[i].Less(next[j]) })
	return MultiState{states: next}
}

// Normalize shifts every member's offset so the minimum is zero, returning
// the canonical multi-state and the amount subtracted (the base offset).
// This is what makes parametric states query-independent: two multi-states
// with the same relative shape normalize to the same canonical form
// regardless of their absolute position in the query.
func (ms MultiState) Normalize() (MultiState, uint16) {
	if ms.IsDead() {
		return ms, 0
	}
	min := ms.states[0].Offset
	for _, s := range ms.states[1:] {
		if s.Offset < min {
			min = s.Offset
		}
	}
	if min == 0 {
		return ms, 0
	}
	shifted := make([]State, len(ms.states))
	for i, s := range ms.states {
		s.Offset -= min
		shifted[i] = s
	}
	return MultiState{states: shifted}, min
}

// MinError returns the smallest error count among members, or k+1 if the
// multi-state is dead.
func (ms MultiState) MinError(k uint8) uint8 {
	if ms.IsDead() {
		return k + 1
	}
	min := ms.states[0].Errors
	for _, s := range ms.states[1:] {
		if s.Errors < min {
			min = s.Errors
		}
	}
	return min
}

// DistanceAt reports the distance once query-remaining positions are
// exhausted: the smallest, over all members, of that member's error count
// plus the cost of deleting whatever query suffix it hasn't consumed yet
// (errors(s) + max(0, remaining-Offset(s))), saturated at k+1. A member
// whose offset already reached remaining contributes no residual cost; one
// that stopped short implicitly deletes the rest of the query.
func (ms MultiState) DistanceAt(remaining uint16, k uint8) distance.Distance {
	ceiling := int(k) + 1
	best := ceiling
	for _, s := range ms.states {
		residual := int(remaining) - int(s.Offset)
		if residual < 0 {
			residual = 0
		}
		if cost := int(s.Errors) + residual; cost < best {
			best = cost
		}
	}
	return distance.Make(uint8(best), k)
}

// Key returns an exact canonical encoding suitable for use as a map key
// when interning multi-states during subset construction. Unlike a hash
// digest it can never collide, which matters here: a false "already seen"
// hit would silently merge two distinct parametric states and corrupt the
// transition table.
func (ms MultiState) Key() string {
	if ms.IsDead() {
		return ""
	}
	var b strings.Builder
	for i, s := range ms.states {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(int(s.Offset)))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(s.Errors)))
		if s.Transposing {
			b.WriteByte('T')
		}
	}
	return b.String()
}

func (ms MultiState) String() string {
	parts := make([]string, len(ms.states))
	for i, s := range ms.states {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
