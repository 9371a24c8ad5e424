// Package nfa defines the Levenshtein NFA: a family of automata,
// parameterised by a maximum edit distance k and a transposition flag,
// whose transition function is expressed symbolically over a
// characteristic vector rather than over a concrete alphabet. This is
// component A (multi-state algebra) and component B (the NFA itself) of
// the automaton pipeline; the parametric and concrete DFA layers live in
// sibling packages and are built on top of what this package exposes.
package nfa

import "github.com/coregx/levendfa/distance"

// MaxCeiling is the largest edit-distance ceiling this package supports.
// Beyond it the parametric state count grows too large to be practical
// (see the component design notes); New rejects anything larger.
const MaxCeiling uint8 = 3

// LevenshteinNFA is the symbolic NFA for a given (k, transposition) pair.
// It has no notion of a concrete query: its Step function is defined
// purely over characteristic vectors, which is what lets the parametric
// DFA built from it be reused across every query built with the same k
// and transposition flag.
type LevenshteinNFA struct {
	k             uint8
	transposition bool
}

// New constructs the Levenshtein NFA for ceiling k, with Damerau
// transposition support if transposition is true. Returns ErrInvalidCeiling
// if k exceeds MaxCeiling.
func New(k uint8, transposition bool) (*LevenshteinNFA, error) {
	if k > MaxCeiling {
		return nil, &Error{
			Kind:    InvalidCeiling,
			Message: "edit distance ceiling out of range: k must be 0..=3",
		}
	}
	return &LevenshteinNFA{k: k, transposition: transposition}, nil
}

// Ceiling returns the maximum edit distance this NFA distinguishes exactly.
func (n *LevenshteinNFA) Ceiling() uint8 { return n.k }

// Transposition reports whether this NFA admits Damerau transpositions.
func (n *LevenshteinNFA) Transposition() bool { return n.transposition }

// Width returns the characteristic vector width, 2k+1, for this NFA.
func (n *LevenshteinNFA) Width() int { return Width(n.k) }

// Initial returns the starting multi-state {(0, 0)} — no insertions are
// admitted before any χ is read, since insertion is itself an input-
// consuming edit.
func (n *LevenshteinNFA) Initial() MultiState {
	return Of(n.k, State{})
}

// Step applies the symbolic transition function to a single NFA state
// under characteristic vector chi, returning every successor state this
// configuration reaches. Bit j of chi refers to query position s.Offset+j.
// The caller (the parametric builder) folds these into a multi-state with
// Add, which
// performs the error-bound check and subsumption pruning.
func (n *LevenshteinNFA) Step(s State, chi uint32) []State {
	if s.Transposing {
		// The only valid successor out of a transposition-in-progress
		// state: bit 0 confirms the current input matches the query
		// symbol that was provisionally skipped when this state was
		// entered (see the doc comment on State.Transposing).
		if chi&1 != 0 {
			return []State{{Offset: s.Offset + 2, Errors: s.Errors}}
		}
		return nil
	}

	var out []State

	// Match: the candidate's current symbol equals the next query symbol.
	if chi&1 != 0 {
		out = append(out, State{Offset: s.Offset + 1, Errors: s.Errors})
	}

	if s.Errors >= n.k {
		return out
	}

	// Substitution: consume one query symbol and one input symbol as a
	// mismatch.
	out = append(out, State{Offset: s.Offset + 1, Errors: s.Errors + 1})

	// Insertion: the input has an extra symbol not in the query; stay at
	// the same query offset.
	out = append(out, State{Offset: s.Offset, Errors: s.Errors + 1})

	// Deletion: the query has symbols missing from the input. Encoded
	// compactly by jumping ahead to the next query position the input
	// symbol does match, charging one error per skipped query symbol.
	budget := n.k - s.Errors
	for j := uint8(1); j <= budget; j++ {
		if chi&(1<<j) != 0 {
			out = append(out, State{Offset: s.Offset + uint16(j) + 1, Errors: s.Errors + j})
		}
	}

	// Transposition: the input's current symbol matches the query symbol
	// one position ahead, and does not match the one directly at this
	// offset — the hallmark of an adjacent-pair swap. Enter a
	// transposition-in-progress state at the same offset (not advanced);
	// the offset only advances past both swapped symbols once Step above
	// confirms the swap on the following input symbol.
	if n.transposition && chi&1 == 0 && chi&2 != 0 {
		out = append(out, State{Offset: s.Offset, Errors: s.Errors + 1, Transposing: true})
	}

	return out
}

// ComputeDistance computes the edit distance between a and b directly via
// quadratic dynamic programming, saturated at this NFA's ceiling. This is
// the reference path used to cross-check the compiled automaton in tests,
// and is cheap enough to use directly for very short inputs.
func (n *LevenshteinNFA) ComputeDistance(a, b string) distance.Distance {
	ar, br := []rune(a), []rune(b)
	return n.computeDistanceRunes(ar, br)
}

func (n *LevenshteinNFA) computeDistanceRunes(a, b []rune) distance.Distance {
	la, lb := len(a), len(b)
	dp := make([][]uint16, la+1)
	for i := range dp {
		dp[i] = make([]uint16, lb+1)
		dp[i][0] = uint16(i)
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = uint16(j)
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := uint16(1)
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := dp[i-1][j] + 1   // deletion
			if v := dp[i][j-1] + 1; v < best {
				best = v // insertion
			}
			if v := dp[i-1][j-1] + cost; v < best {
				best = v // match/substitution
			}
			if n.transposition && i > 1 && j > 1 &&
				a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := dp[i-2][j-2] + 1; v < best {
					best = v // adjacent transposition
				}
			}
			dp[i][j] = best
		}
	}

	raw := dp[la][lb]
	if raw > uint16(n.k) {
		return distance.AtLeast(n.k + 1)
	}
	return distance.Exact(uint8(raw))
}
