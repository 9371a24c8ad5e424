package parametric

import (
	"github.com/coregx/levendfa/dfa/concrete"
	"github.com/coregx/levendfa/distance"
	"github.com/coregx/levendfa/internal/conv"
	"github.com/coregx/levendfa/nfa"
)

// BuildDFA projects this parametric DFA against query, producing a DFA
// specialised to exactly that query. The projection is itself a BFS subset
// construction, this time over the (parametric state, query offset) pairs
// reachable while consuming query's own runes plus one catch-all class for
// every candidate rune absent from query — see the concrete package doc
// comment for why that reduction is sound.
func (d *DFA) BuildDFA(query string) *concrete.DFA {
	qr := []rune(query)
	conv.IntToUint16(len(qr)) // Offset is a uint16; fail loudly rather than silently wrap.
	qi := nfa.BuildQueryIndex(qr)
	k := d.n.Ceiling()
	L := uint16(len(qr))

	classOf := make(map[rune]int, len(qr))
	for _, r := range qr {
		if _, ok := classOf[r]; !ok {
			classOf[r] = len(classOf)
		}
	}
	numClass := len(classOf) + 1
	otherClass := numClass - 1

	type key struct {
		param StateID
		base  uint16
	}
	index := make(map[key]int32)
	var keys []key
	var to [][]int32

	intern := func(k key) int32 {
		if id, ok := index[k]; ok {
			return id
		}
		id := int32(len(keys))
		index[k] = id
		keys = append(keys, k)
		to = append(to, nil)
		return id
	}
	step := func(k key, chi uint32) int32 {
		t := d.table.Step(k.param, chi)
		base := uint32(k.base) + uint32(t.OffsetDelta)
		if base > uint32(L) {
			base = uint32(L)
		}
		return intern(key{param: t.To, base: uint16(base)})
	}

	start := intern(key{param: d.table.InitialID, base: 0})

	for i := 0; i < len(keys); i++ {
		cur := keys[i]
		row := make([]int32, numClass)
		for r, class := range classOf {
			chi := qi.Characteristic(r, int(cur.base), k)
			row[class] = step(cur, chi)
		}
		row[otherClass] = step(cur, 0)
		to[i] = row
	}

	distances := make([]distance.Distance, len(keys))
	for i, kk := range keys {
		ms := d.table.States[kk.param]
		remaining := len(qr) - int(kk.base)
		if remaining < 0 {
			distances[i] = distance.AtLeast(k + 1)
			continue
		}
		distances[i] = ms.DistanceAt(uint16(remaining), k)
	}

	return concrete.New(len(qr), classOf, numClass, start, to, distances)
}

// ComputeDistance walks this parametric table directly, without building a
// concrete.DFA first. Cheaper than BuildDFA followed by a single Eval when
// a query is only ever compared against one candidate.
func (d *DFA) ComputeDistance(a, b string) distance.Distance {
	ar, br := []rune(a), []rune(b)
	conv.IntToUint16(len(ar))
	qi := nfa.BuildQueryIndex(ar)
	k := d.n.Ceiling()

	L := uint32(len(ar))
	id := d.table.InitialID
	base := uint16(0)
	for _, c := range br {
		chi := qi.Characteristic(c, int(base), k)
		t := d.table.Step(id, chi)
		id = t.To
		next := uint32(base) + uint32(t.OffsetDelta)
		if next > L {
			next = L
		}
		base = uint16(next)
		if id == DeadStateID {
			return distance.AtLeast(k + 1)
		}
	}

	remaining := len(ar) - int(base)
	if remaining < 0 {
		return distance.AtLeast(k + 1)
	}
	return d.table.States[id].DistanceAt(uint16(remaining), k)
}
