package lrparser

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/dekarrin/ictiobus/symbols"
	"github.com/stretchr/testify/assert"
)

type fixedStream struct {
	toks []int
	i    int
}

func (f *fixedStream) Next() (int, bool) {
	if f.i >= len(f.toks) {
		return 0, false
	}
	t := f.toks[f.i]
	f.i++
	return t, true
}

func buildSimpleTable(t *testing.T) (*lrtable.Table, *symbols.View, int, int) {
	t.Helper()
	c := symbols.New()
	aRef, err := c.AddTerminal("a", 0, symbols.NoAssoc)
	if err != nil {
		t.Fatal(err)
	}
	cRef, err := c.AddTerminal("c", 0, symbols.NoAssoc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddNonTerminal("S"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddNonTerminal("B"); err != nil {
		t.Fatal(err)
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

	table, _, err := lrtable.Build(view)
	if err != nil {
		t.Fatal(err)
	}
	return table, sv, aRef.Index, cRef.Index
}

func Test_Parser_acceptsValidInput(t *testing.T) {
	assert := assert.New(t)
	table, names, a, c := buildSimpleTable(t)

	p := New(table, names)
	result := p.Parse(&fixedStream{toks: []int{a, c}})
	assert.True(result.Accepted)
	assert.Empty(result.Diagnostics)
}

func Test_Parser_syntaxErrorOnExtraToken(t *testing.T) {
	assert := assert.New(t)
	table, names, a, c := buildSimpleTable(t)

	p := New(table, names)
	result := p.Parse(&fixedStream{toks: []int{a, c, c}})
	assert.False(result.Accepted)
	if assert.Len(result.Diagnostics, 1) {
		assert.Equal("Syntax error: unexpected c", result.Diagnostics[0].Message)
	}
}

func Test_Parser_syntaxErrorOnPrematureEOF(t *testing.T) {
	assert := assert.New(t)
	table, names, a, _ := buildSimpleTable(t)

	p := New(table, names)
	result := p.Parse(&fixedStream{toks: []int{a}})
	assert.False(result.Accepted)
	if assert.Len(result.Diagnostics, 1) {
		assert.Equal("Syntax error: unexpected $eof", result.Diagnostics[0].Message)
	}
}
