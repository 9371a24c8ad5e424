package parametric

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/coregx/levendfa/nfa"
)

// document is the YAML-serializable shape of a Table. It exists separately
// from Table because nfa.MultiState deliberately keeps its member slice
// unexported (callers build multi-states through Add/Of, never by literal
// construction), so the cache file works with a flat stateRecord instead.
type document struct {
	K             uint8                `yaml:"k"`
	Transposition bool                 `yaml:"transposition"`
	Width         int                  `yaml:"width"`
	InitialID     StateID              `yaml:"initial_id"`
	States        [][]stateRecord      `yaml:"states"`
	Transitions   [][]transitionRecord `yaml:"transitions"`
}

type stateRecord struct {
	Offset      uint16 `yaml:"offset"`
	Errors      uint8  `yaml:"errors"`
	Transposing bool   `yaml:"transposing,omitempty"`
}

type transitionRecord struct {
	To          StateID `yaml:"to"`
	OffsetDelta uint16  `yaml:"delta"`
}

// Save writes dfa's compiled table to w as YAML, so a later process can
// reconstruct it with Load instead of repeating subset construction.
func Save(w io.Writer, dfa *DFA) error {
	doc := document{
		K:             dfa.table.K,
		Transposition: dfa.table.Transposition,
		Width:         dfa.table.Width,
		InitialID:     dfa.table.InitialID,
		States:        make([][]stateRecord, len(dfa.table.States)),
		Transitions:   make([][]transitionRecord, len(dfa.table.Transitions)),
	}
	for i, ms := range dfa.table.States {
		members := ms.States()
		row := make([]stateRecord, len(members))
		for j, s := range members {
			row[j] = stateRecord{Offset: s.Offset, Errors: s.Errors, Transposing: s.Transposing}
		}
		doc.States[i] = row
	}
	for i, row := range dfa.table.Transitions {
		out := make([]transitionRecord, len(row))
		for j, t := range row {
			out[j] = transitionRecord{To: t.To, OffsetDelta: t.OffsetDelta}
		}
		doc.Transitions[i] = out
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "yaml.Encode")
	}
	return nil
}

// Load reads a table previously written by Save and pairs it with n, which
// must have the same ceiling and transposition flag the table was built
// with — Load returns an error otherwise, since a mismatched NFA would
// make ComputeDistance and BuildDFA silently wrong.
func Load(r io.Reader, n *nfa.LevenshteinNFA) (*DFA, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "yaml.Decode")
	}
	if doc.K != n.Ceiling() || doc.Transposition != n.Transposition() {
		return nil, &Error{
			Kind:    InvalidConfig,
			Message: "cached table was built for a different (k, transposition) pair",
		}
	}

	states := make([]nfa.MultiState, len(doc.States))
	for i, row := range doc.States {
		members := make([]nfa.State, len(row))
		for j, r := range row {
			if r.Transposing {
				members[j] = nfa.NewTransposing(r.Offset, r.Errors)
			} else {
				members[j] = nfa.New(r.Offset, r.Errors)
			}
		}
		states[i] = nfa.Of(doc.K, members...)
	}

	transitions := make([][]Transition, len(doc.Transitions))
	for i, row := range doc.Transitions {
		out := make([]Transition, len(row))
		for j, t := range row {
			out[j] = Transition{To: t.To, OffsetDelta: t.OffsetDelta}
		}
		transitions[i] = out
	}

	return &DFA{
		n: n,
		table: &Table{
			K:             doc.K,
			Transposition: doc.Transposition,
			Width:         doc.Width,
			InitialID:     doc.InitialID,
			States:        states,
			Transitions:   transitions,
		},
	}, nil
}
