package lrtable

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/symbols"
	"github.com/stretchr/testify/assert"
)

// buildView wires a tiny symbols+grammar pipeline for table-level tests,
// mirroring grammar package's own buildSymbols test helper.
func buildView(t *testing.T) *grammar.View {
	t.Helper()
	c := symbols.New()
	for _, name := range []string{"a", "c"} {
		if _, err := c.AddTerminal(name, 0, symbols.NoAssoc); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"S", "B"} {
		if _, err := c.AddNonTerminal(name); err != nil {
			t.Fatal(err)
		}
	}
	sv, _, err := c.Seal()
	if err != nil {
		t.Fatal(err)
	}

	rs := grammar.New(sv)
	if _, err := rs.AddRule("S", []string{"a", "B"}, grammar.Production{}); err != nil {
		t.Fatal(err)
	}
	if _, err := rs.AddRule("B", []string{"c"}, grammar.Production{}); err != nil {
		t.Fatal(err)
	}

	view, _, err := rs.Seal()
	if err != nil {
		t.Fatal(err)
	}
	return view
}

func Test_Build_stateCountAndInitialShift(t *testing.T) {
	assert := assert.New(t)
	view := buildView(t)

	table, diags, err := Build(view)
	assert.NoError(err)
	assert.Empty(diags)
	assert.Equal(5, table.StateCount())

	aRef, ok := view.Symbols().Lookup("a")
	assert.True(ok)
	assert.Equal(EntryShift, table.Term(0, aRef.Index).Kind)
}
