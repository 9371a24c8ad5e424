// Package concrete implements component E of the automaton pipeline: a
// query-specialised DFA projected from a parametric DFA. Where the
// parametric table is indexed by characteristic vector and reused across
// every query of a given (k, transposition), a concrete DFA is built once
// per query and evaluated directly against many candidates, at the cost of
// table space proportional to the query length.
//
// Candidate runes are grouped into one symbol class per distinct query rune
// plus a single catch-all class. The grouping is sound because a rune that
// does not occur in the query yields an all-zero characteristic vector at
// every base offset, so all such runes drive every state to the same
// successor.
//
// This package has no dependency on the parametric table format itself:
// the parametric package performs the projection (it already has the
// table, the NFA, and a QueryIndex to hand) and hands this package the
// flattened result via New. That keeps the one-way dependency the layering
// calls for — concrete DFAs are consumed by callers that never need to
// know a parametric table exists.
package concrete

import "github.com/coregx/levendfa/distance"

// DFA evaluates the edit distance between a fixed query and any number of
// candidate strings in O(len(candidate)) per candidate, with no further
// dependency on the query once built.
type DFA struct {
	queryLen  int
	classOf   map[rune]int
	numClass  int
	start     int32
	to        [][]int32 // [state][class] -> state
	distances []distance.Distance
}

// New assembles a DFA from a flattened projection: classOf maps each
// distinct query rune to its symbol class, with numClass-1 reserved as the
// catch-all class for every rune absent from the query (see the package
// doc comment for why that collapse is sound). to[state][class] gives the
// successor state, and distances[state] is the distance once the candidate
// is exhausted in that state.
func New(queryLen int, classOf map[rune]int, numClass int, start int32, to [][]int32, distances []distance.Distance) *DFA {
	return &DFA{
		queryLen:  queryLen,
		classOf:   classOf,
		numClass:  numClass,
		start:     start,
		to:        to,
		distances: distances,
	}
}

// NumStates returns the number of distinct concrete states discovered while
// building this DFA.
func (d *DFA) NumStates() int {
	return len(d.distances)
}

// Eval computes the distance between this DFA's query and candidate,
// saturated at the ceiling the originating parametric DFA was built with.
func (d *DFA) Eval(candidate string) distance.Distance {
	cur := d.start
	for _, c := range candidate {
		cur = d.to[cur][d.classify(c)]
	}
	return d.distances[cur]
}

func (d *DFA) classify(c rune) int {
	if class, ok := d.classOf[c]; ok {
		return class
	}
	return d.numClass - 1
}
