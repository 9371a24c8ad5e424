package parametric

import "github.com/coregx/levendfa/nfa"

// StateID indexes into a Table's state and transition slices.
type StateID uint32

// DeadStateID is the canonical dead state: every multi-state that collapses
// to the empty set is interned here, and it self-loops under every
// characteristic vector.
const DeadStateID StateID = 0

// Transition is a single parametric transition: the destination state and
// the offset by which a concrete walk advances the query cursor when it
// takes this edge. The concrete DFA adds OffsetDelta to its running base
// offset instead of storing an absolute offset, which is what makes one
// parametric table serve every query of a given (k, transposition).
type Transition struct {
	To          StateID
	OffsetDelta uint16
}

// Table is the compiled output of subset construction over a
// LevenshteinNFA: for every discovered canonical multi-state and every
// characteristic vector in range, the state reached and the offset shift
// incurred getting there.
type Table struct {
	K             uint8
	Transposition bool
	Width         int

	// InitialID is the StateID of the automaton's start state — the
	// interning of nfa.LevenshteinNFA.Initial() after normalization.
	InitialID StateID

	// States holds each discovered multi-state in canonical (normalized)
	// form, indexed by StateID. States[DeadStateID] is always the empty
	// multi-state.
	States []nfa.MultiState

	// Transitions holds, for StateID s, a row of length 2^Width indexed by
	// characteristic vector.
	Transitions [][]Transition
}

// NumStates returns the number of distinct parametric states in the table.
func (t *Table) NumStates() int {
	return len(t.States)
}

// Step returns the transition from state id under characteristic vector chi.
func (t *Table) Step(id StateID, chi uint32) Transition {
	return t.Transitions[id][chi]
}
