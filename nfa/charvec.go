package nfa

// Width returns the characteristic vector width for ceiling k: 2k+1, the
// tight bound on how far ahead of its minimum offset any state can usefully
// depend on the query. Widening wastes parametric table columns; narrowing
// breaks correctness (see the component design notes).
func Width(k uint8) int {
	return 2*int(k) + 1
}

// Characteristic computes χ directly against a query slice: bit j is set
// iff base+j is within the query and query[base+j] equals c. This is the
// straightforward O(width) definition from the component spec, used as
// QueryIndex's fallback for queries too long for its fast path.
func Characteristic(query []rune, base int, c rune, k uint8) uint32 {
	width := Width(k)
	var chi uint32
	for j := 0; j < width; j++ {
		pos := base + j
		if pos >= len(query) {
			break
		}
		if query[pos] == c {
			chi |= 1 << uint(j)
		}
	}
	return chi
}

// queryIndexFastWidth is the largest query length QueryIndex can serve via
// its O(1) bitset shift; longer queries fall back to Characteristic's
// direct O(width) scan.
const queryIndexFastWidth = 64

// QueryIndex precomputes, for each distinct code point appearing in a
// query, a bitmask over query positions — so that computing χ for a given
// candidate code point is a shift-and-mask instead of a linear scan over
// the window. This is the standard technique the component design notes
// call out for characteristic-vector computation.
type QueryIndex struct {
	query []rune
	masks map[rune]uint64
}

// BuildQueryIndex indexes query for repeated Characteristic lookups during
// concrete-DFA evaluation.
func BuildQueryIndex(query []rune) *QueryIndex {
	idx := &QueryIndex{query: query}
	if len(query) > queryIndexFastWidth {
		// Beyond the bitset's reach; Characteristic falls back to the
		// direct scan for every lookup, so no masks are needed.
		return idx
	}
	idx.masks = make(map[rune]uint64, len(query))
	for i, r := range query {
		idx.masks[r] |= 1 << uint(i)
	}
	return idx
}

// Characteristic returns χ for candidate code point c at window base
// offset base, for an automaton with ceiling k.
func (qi *QueryIndex) Characteristic(c rune, base int, k uint8) uint32 {
	width := Width(k)
	if qi.masks == nil || base+width > queryIndexFastWidth {
		return Characteristic(qi.query, base, c, k)
	}
	mask, ok := qi.masks[c]
	if !ok {
		return 0
	}
	shifted := mask >> uint(base)
	return uint32(shifted) & uint32((1<<uint(width))-1)
}

// Len returns the indexed query's code-point length.
func (qi *QueryIndex) Len() int {
	return len(qi.query)
}
