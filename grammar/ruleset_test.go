package grammar

import (
	"testing"

	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/symbols"
	"github.com/stretchr/testify/assert"
)

// buildSymbols registers terms and nterms (both in declaration order) and
// returns the sealed view, ready for a Ruleset to be built over it.
func buildSymbols(t *testing.T, terms, nterms []string) *symbols.View {
	t.Helper()
	c := symbols.New()
	for _, name := range terms {
		_, err := c.AddTerminal(name, 0, symbols.NoAssoc)
		if err != nil {
			t.Fatalf("AddTerminal(%q): %v", name, err)
		}
	}
	for _, name := range nterms {
		_, err := c.AddNonTerminal(name)
		if err != nil {
			t.Fatalf("AddNonTerminal(%q): %v", name, err)
		}
	}
	v, _, err := c.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return v
}

func Test_Ruleset_nullableChain(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, nil, []string{"A", "B", "C"})
	rs := New(syms)

	_, err := rs.AddRule("A", []string{"B"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("B", []string{"C"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("C", nil, Production{})
	assert.NoError(err)

	view, diags, err := rs.Seal()
	assert.NoError(err)
	assert.Empty(diags)

	aRef, _ := syms.Lookup("A")
	bRef, _ := syms.Lookup("B")
	cRef, _ := syms.Lookup("C")
	assert.True(view.IsNullable(aRef.Index))
	assert.True(view.IsNullable(bRef.Index))
	assert.True(view.IsNullable(cRef.Index))
}

func Test_Ruleset_leftRecursionFirst(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"plus", "id"}, []string{"E"})
	rs := New(syms)

	_, err := rs.AddRule("E", []string{"E", "plus", "id"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("E", []string{"id"}, Production{})
	assert.NoError(err)

	view, _, err := rs.Seal()
	assert.NoError(err)

	eRef, _ := syms.Lookup("E")
	idRef, _ := syms.Lookup("id")
	first := view.FirstOfNterm(eRef.Index)
	assert.Equal([]int{idRef.Index}, first.Sorted())
	assert.False(view.IsNullable(eRef.Index))
	// E -> id (rhs 1) is terminal-only: its suffix can never derive ε, so
	// seeing the lone terminal must not flip E nullable.
	assert.False(view.IsSuffixNullable(eRef.Index, 1, 0))
}

func Test_Ruleset_terminalOnlyRHSIsNotNullable(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"c"}, []string{"B"})
	rs := New(syms)

	_, err := rs.AddRule("B", []string{"c"}, Production{})
	assert.NoError(err)

	view, _, err := rs.Seal()
	assert.NoError(err)

	bRef, _ := syms.Lookup("B")
	assert.False(view.IsNullable(bRef.Index))
	assert.False(view.IsSuffixNullable(bRef.Index, 0, 0))
}

func Test_Ruleset_nullablePrefixThenTerminal(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"a", "b"}, []string{"S", "Opt"})
	rs := New(syms)

	// S -> Opt b ; Opt -> a | ε
	_, err := rs.AddRule("S", []string{"Opt", "b"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("Opt", []string{"a"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("Opt", nil, Production{})
	assert.NoError(err)

	view, _, err := rs.Seal()
	assert.NoError(err)

	sRef, _ := syms.Lookup("S")
	aRef, _ := syms.Lookup("a")
	bRef, _ := syms.Lookup("b")
	first := view.FirstOfNterm(sRef.Index)
	assert.ElementsMatch([]int{aRef.Index, bRef.Index}, first.Sorted())
	// Opt is nullable, but the trailing terminal b means S -> Opt b can
	// never itself derive ε.
	assert.False(view.IsNullable(sRef.Index))
	assert.False(view.IsSuffixNullable(sRef.Index, 0, 0))
}

func Test_Ruleset_unsolvable(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"b"}, []string{"A"})
	rs := New(syms)

	_, err := rs.AddRule("A", []string{"A", "b"}, Production{})
	assert.NoError(err)

	_, diags, err := rs.Seal()
	assert.Error(err)

	found := false
	for _, d := range diags {
		if d.Code == icterrors.CodeUnsolvable {
			found = true
		}
	}
	assert.True(found, "expected an unsolvable diagnostic, got %v", diags)
}

func Test_Ruleset_unusedNonTerminal(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"a", "z"}, []string{"S", "U"})
	rs := New(syms)

	_, err := rs.AddRule("S", []string{"a"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("U", []string{"z"}, Production{})
	assert.NoError(err)

	_, diags, err := rs.Seal()
	assert.NoError(err)

	found := false
	for _, d := range diags {
		if d.Code == icterrors.CodeUnusedNonTerminal && d.Symbol == "U" {
			found = true
		}
	}
	assert.True(found, "expected unused_nterm(U), got %v", diags)
}

func Test_Ruleset_mutualRecursionNotLeftRecursive(t *testing.T) {
	assert := assert.New(t)
	syms := buildSymbols(t, []string{"x", "y", "z"}, []string{"A", "B"})
	rs := New(syms)

	_, err := rs.AddRule("A", []string{"x", "B"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("B", []string{"y", "A"}, Production{})
	assert.NoError(err)
	_, err = rs.AddRule("B", []string{"z"}, Production{})
	assert.NoError(err)

	view, diags, err := rs.Seal()
	assert.NoError(err)
	assert.Empty(diags)

	aRef, _ := syms.Lookup("A")
	xRef, _ := syms.Lookup("x")
	assert.Equal([]int{xRef.Index}, view.FirstOfNterm(aRef.Index).Sorted())
}
