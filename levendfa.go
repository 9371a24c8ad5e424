// Package levendfa builds Levenshtein (and optionally Damerau-Levenshtein)
// edit-distance automata: given a maximum edit distance k, it compiles a
// deterministic automaton that classifies, in O(len(candidate)) time and
// with no further dependency on k, whether a candidate string is within k
// edits of a query.
//
// The pipeline has three stages:
//
//	nfa.LevenshteinNFA        symbolic NFA over (k, transposition)
//	dfa/parametric.DFA        subset-constructed, query-independent
//	dfa/concrete.DFA          projected against one concrete query
//
// Building a Builder compiles the first two stages once; BuildQuery then
// projects a concrete.DFA per query, reusing the same Builder (and its
// underlying parametric table) across as many queries as needed:
//
//	b, err := levendfa.NewBuilder(2, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dfa := b.BuildQuery("kitten")
//	dfa.Eval("sitting") // distance.AtLeast(3)
//
// For a single one-off comparison, ComputeDistance skips building a
// concrete DFA entirely.
package levendfa

import (
	"io"

	"github.com/pkg/errors"

	"github.com/coregx/levendfa/dfa/concrete"
	"github.com/coregx/levendfa/dfa/parametric"
	"github.com/coregx/levendfa/distance"
	"github.com/coregx/levendfa/nfa"
)

// Builder compiles a reusable automaton for a fixed maximum edit distance
// and transposition setting. It is safe for concurrent use: construction
// happens once inside NewBuilder, and every method afterward only reads
// the compiled table.
type Builder struct {
	n     *nfa.LevenshteinNFA
	param *parametric.DFA
}

// NewBuilder compiles the NFA and parametric DFA for edit-distance ceiling
// k, with Damerau transposition support if transposition is true. k must
// be at most nfa.MaxCeiling; ComputeDistance and BuildQuery compile to
// equivalent answers past that point, but the table itself would grow
// impractically large, so New rejects it up front.
func NewBuilder(k uint8, transposition bool, opts ...parametric.Option) (*Builder, error) {
	n, err := nfa.New(k, transposition)
	if err != nil {
		return nil, errors.Wrap(err, "nfa.New")
	}
	return &Builder{n: n, param: parametric.FromNFA(n, opts...)}, nil
}

// Ceiling returns the maximum edit distance this builder distinguishes
// exactly.
func (b *Builder) Ceiling() uint8 { return b.n.Ceiling() }

// Transposition reports whether this builder's automaton admits Damerau
// transpositions.
func (b *Builder) Transposition() bool { return b.n.Transposition() }

// NumStates returns the number of distinct parametric states this
// builder's table holds.
func (b *Builder) NumStates() int { return b.param.NumStates() }

// BuildQuery projects the compiled parametric DFA against query, returning
// a DFA specialised to it. The returned DFA shares no mutable state with
// b, so it may be evaluated concurrently and independently of further
// calls to BuildQuery.
func (b *Builder) BuildQuery(query string) *concrete.DFA {
	return b.param.BuildDFA(query)
}

// ComputeDistance computes the edit distance between a and b's query and
// candidate directly against the parametric table, without an
// intermediate concrete DFA. Prefer BuildQuery when the same query will be
// compared against more than a handful of candidates.
func (b *Builder) ComputeDistance(query, candidate string) distance.Distance {
	return b.param.ComputeDistance(query, candidate)
}

// Save persists this builder's compiled parametric table so a later
// process can reconstruct it with LoadBuilder instead of repeating subset
// construction. It does not persist the projected concrete.DFA of any
// BuildQuery call.
func (b *Builder) Save(w io.Writer) error {
	return parametric.Save(w, b.param)
}

// LoadBuilder reconstructs a Builder previously persisted with Save. k and
// transposition must match what the table was built with.
func LoadBuilder(r io.Reader, k uint8, transposition bool) (*Builder, error) {
	n, err := nfa.New(k, transposition)
	if err != nil {
		return nil, errors.Wrap(err, "nfa.New")
	}
	dfa, err := parametric.Load(r, n)
	if err != nil {
		return nil, errors.Wrap(err, "parametric.Load")
	}
	return &Builder{n: n, param: dfa}, nil
}
