package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Closure_containsSeedAndIdempotent(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"a"}, []string{"S"})
	rs := New(syms)
	_, err := rs.AddRule("S", []string{"a"}, Production{})
	assert.NoError(err)

	view, _, err := rs.Seal()
	assert.NoError(err)

	cl := NewClosure(view)
	seed := Item{NT: 0, R: 0, Dot: 0, LA: 0}
	first := cl.Of(seed)

	assert.Contains(first, seed)

	// closure(closure(it)) equals closure(it): closing every item of the
	// first result adds nothing that is not already in it.
	var second []Item
	seen := make(map[Item]bool)
	for _, it := range first {
		for _, x := range cl.Of(it) {
			if !seen[x] {
				seen[x] = true
				second = append(second, x)
			}
		}
	}
	assert.ElementsMatch(first, second)
}

func Test_Closure_expandsNonTerminal(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"c", "d"}, []string{"S", "C"})
	rs := New(syms)
	_, err := rs.AddRule("S", []string{"C", "C"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("C", []string{"c", "C"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("C", []string{"d"}, Production{})
	assert.NoError(err)

	view, _, err := rs.Seal()
	assert.NoError(err)

	cl := NewClosure(view)
	// Seed (S, 0, 0, $eof), i.e. S -> . C C with lookahead $eof. The C after
	// the dot is followed by another C, which is not nullable, so C's two
	// rhss join the closure with the lookaheads FIRST(C) = {c, d}.
	sRef, _ := syms.Lookup("S")
	seed := Item{NT: sRef.Index, R: 0, Dot: 0, LA: 0}
	closure := cl.Of(seed)

	cRef, _ := syms.Lookup("C")
	foundCDotZero := false
	for _, it := range closure {
		if it.NT == cRef.Index && it.Dot == 0 {
			foundCDotZero = true
		}
	}
	assert.True(foundCDotZero, "expected closure to expand C's productions, got %v", closure)
}
