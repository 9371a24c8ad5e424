package parametric

import (
	"github.com/projectdiscovery/gologger"

	"github.com/coregx/levendfa/internal/conv"
	"github.com/coregx/levendfa/nfa"
)

// DFA is a compiled, query-independent parametric Levenshtein automaton: the
// transition table produced by subset construction over a LevenshteinNFA,
// together with the NFA it was built from. Calling BuildDFA projects it
// against a concrete query.
type DFA struct {
	n     *nfa.LevenshteinNFA
	table *Table
}

// FromNFA runs subset construction over n and returns the resulting
// parametric DFA. The result depends only on n's ceiling and transposition
// flag, never on any query, so a single DFA may be reused to build
// concrete.DFA values for arbitrarily many queries.
func FromNFA(n *nfa.LevenshteinNFA, opts ...Option) *DFA {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		// Options are constructed by this package's own With* helpers;
		// an invalid Config here means a caller passed a nonsensical
		// value directly. Fall back to defaults rather than panicking
		// out of a pure build function.
		gologger.Warning().Msgf("parametric: invalid config (%v), falling back to defaults", err)
		cfg = DefaultConfig()
	}

	k := n.Ceiling()
	width := n.Width()
	numChi := 1 << uint(width)

	b := &tableBuilder{
		n:      n,
		k:      k,
		width:  width,
		numChi: numChi,
		cfg:    cfg,
		index:  make(map[string]StateID, cfg.InitialCapacity),
		states: make([]nfa.MultiState, 0, cfg.InitialCapacity),
		rows:   make([][]Transition, 0, cfg.InitialCapacity),
	}
	initialID := b.build()

	return &DFA{
		n: n,
		table: &Table{
			K:             k,
			Transposition: n.Transposition(),
			Width:         width,
			InitialID:     initialID,
			States:        b.states,
			Transitions:   b.rows,
		},
	}
}

// Table exposes the compiled transition table.
func (d *DFA) Table() *Table { return d.table }

// NumStates returns the number of distinct parametric states discovered.
func (d *DFA) NumStates() int {
	return d.table.NumStates()
}

// tableBuilder runs the BFS subset construction. It is single-use: create
// one per FromNFA call, never reused or shared across goroutines.
type tableBuilder struct {
	n      *nfa.LevenshteinNFA
	k      uint8
	width  int
	numChi int
	cfg    Config

	index  map[string]StateID
	states []nfa.MultiState
	rows   [][]Transition

	queue      []StateID
	overflowed bool
}

func (b *tableBuilder) build() StateID {
	// Intern the dead state first so DeadStateID is always 0.
	deadRow := make([]Transition, b.numChi)
	for chi := range deadRow {
		deadRow[chi] = Transition{To: DeadStateID, OffsetDelta: 0}
	}
	b.states = append(b.states, nfa.Empty())
	b.rows = append(b.rows, deadRow)
	b.index[nfa.Empty().Key()] = DeadStateID

	initial, _ := b.n.Initial().Normalize()
	initialID := b.intern(initial)

	for len(b.queue) > 0 {
		id := b.queue[0]
		b.queue = b.queue[1:]

		ms := b.states[id]
		row := make([]Transition, b.numChi)
		for chi := 0; chi < b.numChi; chi++ {
			row[chi] = b.step(ms, uint32(chi))
		}
		b.rows[id] = row

		if b.cfg.Verbose && len(b.states)%256 == 0 {
			gologger.Verbose().Msgf("parametric: %d states discovered, %d queued", len(b.states), len(b.queue))
		}
	}

	return initialID
}

func (b *tableBuilder) step(ms nfa.MultiState, chi uint32) Transition {
	if ms.IsDead() {
		return Transition{To: DeadStateID, OffsetDelta: 0}
	}
	var next nfa.MultiState
	for _, s := range ms.States() {
		// chi is anchored at the multi-state's base offset, while Step reads
		// bit j as query position s.Offset+j: shift it to this member.
		for _, succ := range b.n.Step(s, chi>>s.Offset) {
			next = next.Add(succ, b.k)
		}
	}
	normalized, base := next.Normalize()
	id := b.intern(normalized)
	return Transition{To: id, OffsetDelta: base}
}

// intern returns the StateID for a normalized multi-state, discovering it
// (and enqueueing it for transition expansion) if this is the first time it
// has been seen. If MaxParametricStates is exceeded — which should not
// happen for any k within MaxCeiling under the default ceiling, only under
// a deliberately tightened Config — the new state collapses to the dead
// state rather than growing the table further, and the overflow is logged
// once. FromNFA's signature has no error return (a parametric table is
// always usable once built), so this is the only available escape hatch
// short of a panic.
func (b *tableBuilder) intern(ms nfa.MultiState) StateID {
	key := ms.Key()
	if ms.IsDead() {
		return DeadStateID
	}
	if id, ok := b.index[key]; ok {
		return id
	}

	id := StateID(conv.IntToUint32(len(b.states)))
	if int(id) >= b.cfg.MaxParametricStates {
		if !b.overflowed {
			gologger.Error().Msgf("parametric: %v (limit %d), further states collapse to dead", ErrTableOverflow, b.cfg.MaxParametricStates)
			b.overflowed = true
		}
		return DeadStateID
	}

	b.index[key] = id
	b.states = append(b.states, ms)
	b.rows = append(b.rows, nil) // filled in once this id is dequeued
	b.queue = append(b.queue, id)
	return id
}
