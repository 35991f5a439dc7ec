// Package ictiobus is an LR(1) parser generator: given a set of terminals
// and non-terminals, a grammar built from them, and optional operator
// precedence/associativity, it produces a parse table and a driver capable
// of recognizing the language the grammar describes.
//
// The pipeline is strictly staged, each stage frozen before the next
// begins: symbols.Collection seals into a symbols.View; grammar.Ruleset
// seals over that view into a grammar.View, incrementally computing
// nullability and FIRST as rules are added; lrtable.Build drives the
// automaton package's state enumeration and the Action Resolver to produce
// an lrtable.Table; lrparser.Parser drives that table against a caller's
// token stream.
package ictiobus

import (
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/lrparser"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/dekarrin/ictiobus/symbols"
)

// Grammar accumulates symbols and rules ahead of Generate, as a convenience
// over driving symbols.Collection and grammar.Ruleset separately.
type Grammar struct {
	Syms *symbols.Collection
	rs   *grammar.Ruleset

	symErr error
}

// NewGrammar returns an empty Grammar, its symbol table pre-seeded with the
// reserved $eof and $root symbols.
func NewGrammar() *Grammar {
	return &Grammar{Syms: symbols.New()}
}

// AddTerminal registers a terminal, optionally with precedence/associativity.
func (g *Grammar) AddTerminal(name string, precedence int, assoc symbols.Assoc) error {
	_, err := g.Syms.AddTerminal(name, precedence, assoc)
	return err
}

// AddNonTerminal registers a non-terminal.
func (g *Grammar) AddNonTerminal(name string) error {
	_, err := g.Syms.AddNonTerminal(name)
	return err
}

// SetStart overrides the default start symbol.
func (g *Grammar) SetStart(name string) error {
	if err := g.sealSymbols(); err != nil {
		return err
	}
	return g.rs.SetStart(name)
}

// AddRule registers a production lhs -> rhs, optionally with an explicit
// numeric precedence overriding the "last terminal with a defined
// precedence" default.
func (g *Grammar) AddRule(lhs string, rhs []string, precedence ...int) (int, error) {
	if err := g.sealSymbols(); err != nil {
		return 0, err
	}
	prod := grammar.Production{}
	if len(precedence) > 0 {
		prod = prod.WithPrecedence(precedence[0])
	}
	return g.rs.AddRule(lhs, rhs, prod)
}

// sealSymbols lazily seals the symbol collection the first time a rule-level
// operation is performed, since grammar.Ruleset requires a sealed
// symbols.View to be constructed.
func (g *Grammar) sealSymbols() error {
	if g.rs != nil {
		return g.symErr
	}
	view, _, err := g.Syms.Seal()
	g.symErr = err
	g.rs = grammar.New(view)
	return err
}

// GenerateResult bundles the outputs of a successful parser-table build.
type GenerateResult struct {
	Table       *lrtable.Table
	Names       *symbols.View
	Diagnostics []icterrors.Diagnostic
}

// Generate seals the grammar's ruleset and builds the LR(1) parse table from
// it, per the table-construction pipeline of ParseTableGenerator::build.
func (g *Grammar) Generate() (*GenerateResult, error) {
	if err := g.sealSymbols(); err != nil {
		return nil, err
	}

	view, sealDiags, err := g.rs.Seal()
	if err != nil {
		return nil, err
	}

	table, tableDiags, err := lrtable.Build(view)
	if err != nil {
		return nil, err
	}

	diags := append(sealDiags, tableDiags...)
	return &GenerateResult{Table: table, Names: view.Symbols(), Diagnostics: diags}, nil
}

// NewParser returns a Parser Driver bound to a generated table. names
// resolves terminal indices to names for syntax-error diagnostics.
func NewParser(table *lrtable.Table, names lrparser.NameTable) *lrparser.Parser {
	return lrparser.New(table, names)
}
