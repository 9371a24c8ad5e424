package concrete

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/levendfa/distance"
)

func TestEvalClassifiesViaMap(t *testing.T) {
	// A minimal hand-built three-state DFA over a one-rune query "a": state
	// 0 is "nothing matched yet", state 1 is "matched the one query rune
	// and candidate has ended". Any extra or wrong rune goes to a dead-ish
	// state that always reports AtLeast.
	classOf := map[rune]int{'a': 0}
	numClass := 2 // class 0 = 'a', class 1 = other
	to := [][]int32{
		{1, 2}, // state 0: on 'a' -> state1 (matched); on other -> state2 (mismatch)
		{2, 2}, // state 1: any further input is an extra character
		{2, 2}, // state 2: dead end, stays
	}
	distances := []distance.Distance{
		distance.AtLeast(2), // state0: candidate ended before matching
		distance.Exact(0),   // state1: exact match
		distance.AtLeast(2), // state2
	}
	dfa := New(1, classOf, numClass, 0, to, distances)

	require.Equal(t, "0", dfa.Eval("a").String())
	require.Equal(t, ">=2", dfa.Eval("b").String())
	require.Equal(t, ">=2", dfa.Eval("").String())
	require.Equal(t, 3, dfa.NumStates())
}
