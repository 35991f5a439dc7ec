// Package symbols implements the Symbol Collection stage (spec §4.1): it
// registers terminals and non-terminals under unique names, reserves the
// distinguished $root and $eof symbols, and seals into an immutable view
// that later stages build on.
//
// Reserved-name checking and duplicate detection follow the same shape as
// the teacher codebase's Grammar.AddTerm/AddRule (internal/tunascript/
// grammar.go), generalized here into its own sealed stage: spec §4.1 wants
// symbol registration frozen before a Ruleset is even built, rather than
// mixed into rule declaration the way the teacher's single Grammar type does.
package symbols

import (
	"strings"

	"github.com/dekarrin/ictiobus/icterrors"
)

// Kind distinguishes the two disjoint index spaces a Ref can point into.
type Kind int

const (
	Terminal Kind = iota
	NonTerminal
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "non-terminal"
}

// Ref is a tagged pair (kind, index) identifying a single symbol. It is the
// symbol_ref of spec §3.
type Ref struct {
	Kind  Kind
	Index int
}

// Assoc is the associativity declared for a terminal's precedence.
type Assoc int

const (
	NoAssoc Assoc = iota
	Left
	Right
)

// EOF is the reserved terminal $eof, always terminal index 0.
const EOF = "$eof"

// Root is the reserved non-terminal $root, always non-terminal index 0.
const Root = "$root"

// EOFIndex is the terminal index of $eof, always 0.
const EOFIndex = 0

// RootIndex is the non-terminal index of $root, always 0.
const RootIndex = 0

type termEntry struct {
	name  string
	prec  int
	assoc Assoc
}

// Collection mutates terminal/non-terminal registrations until Seal is
// called, after which it is a frozen, read-only View.
type Collection struct {
	terms    []termEntry
	nterms   []string
	byName   map[string]Ref
	sealed   bool
}

// New returns a Collection pre-seeded with the reserved $eof terminal and
// $root non-terminal, per spec §3's invariant that $eof is terminal index 0
// and $root is non-terminal index 0.
func New() *Collection {
	c := &Collection{
		byName: make(map[string]Ref),
	}
	c.terms = append(c.terms, termEntry{name: EOF})
	c.byName[EOF] = Ref{Kind: Terminal, Index: 0}
	c.nterms = append(c.nterms, Root)
	c.byName[Root] = Ref{Kind: NonTerminal, Index: 0}
	return c
}

func isReserved(name string) bool {
	return strings.HasPrefix(name, "$")
}

// AddTerminal registers a new terminal. If assoc is not NoAssoc, precedence
// must be a positive value; a precedence of 0 means "no precedence" per
// spec §3.
func (c *Collection) AddTerminal(name string, precedence int, assoc Assoc) (Ref, error) {
	if c.sealed {
		return Ref{}, icterrors.AlreadySealed()
	}
	if isReserved(name) {
		return Ref{}, icterrors.ReservedName(name)
	}
	if _, ok := c.byName[name]; ok {
		return Ref{}, icterrors.SymbolExists(name)
	}

	ref := Ref{Kind: Terminal, Index: len(c.terms)}
	c.terms = append(c.terms, termEntry{name: name, prec: precedence, assoc: assoc})
	c.byName[name] = ref
	return ref, nil
}

// AddNonTerminal registers a new non-terminal.
func (c *Collection) AddNonTerminal(name string) (Ref, error) {
	if c.sealed {
		return Ref{}, icterrors.AlreadySealed()
	}
	if isReserved(name) {
		return Ref{}, icterrors.ReservedName(name)
	}
	if _, ok := c.byName[name]; ok {
		return Ref{}, icterrors.SymbolExists(name)
	}

	ref := Ref{Kind: NonTerminal, Index: len(c.nterms)}
	c.nterms = append(c.nterms, name)
	c.byName[name] = ref
	return ref, nil
}

// Lookup returns the Ref registered under name, if any.
func (c *Collection) Lookup(name string) (Ref, bool) {
	ref, ok := c.byName[name]
	return ref, ok
}

// Seal freezes the collection and returns the immutable View along with any
// diagnostics: the no_user_terminals warning if only $eof was registered,
// and the no_user_non_terminals error if only $root was registered. A
// non-nil error is returned alongside the diagnostics in the latter case, so
// that callers that only check the error (rather than scanning diagnostics)
// still observe the failure.
func (c *Collection) Seal() (*View, []icterrors.Diagnostic, error) {
	var diags []icterrors.Diagnostic
	var err error
	if !c.sealed {
		c.sealed = true
		if len(c.terms) == 1 {
			diags = append(diags, icterrors.NoUserTerminals())
		}
		if len(c.nterms) == 1 {
			d := icterrors.NoUserNonTerminals()
			diags = append(diags, d)
			err = d
		}
	}
	return &View{c: c}, diags, err
}

// Sealed reports whether Seal has been called.
func (c *Collection) Sealed() bool {
	return c.sealed
}

// View is the read-only, post-seal interface to a Collection. Every later
// stage (Ruleset, Closure Engine, ...) takes a *View rather than a
// *Collection, matching spec §4.1's "all subsequent stages take an
// immutable view."
type View struct {
	c *Collection
}

// TerminalCount returns |T|, including the reserved $eof.
func (v *View) TerminalCount() int { return len(v.c.terms) }

// NonTerminalCount returns |N|, including the reserved $root.
func (v *View) NonTerminalCount() int { return len(v.c.nterms) }

// TerminalName returns the name of the terminal at idx.
func (v *View) TerminalName(idx int) string { return v.c.terms[idx].name }

// NonTerminalName returns the name of the non-terminal at idx.
func (v *View) NonTerminalName(idx int) string { return v.c.nterms[idx] }

// TermPrecedence returns the declared precedence of the terminal at idx, or
// 0 if none was declared.
func (v *View) TermPrecedence(idx int) int { return v.c.terms[idx].prec }

// TermAssociativity returns the declared associativity of the terminal at
// idx.
func (v *View) TermAssociativity(idx int) Assoc { return v.c.terms[idx].assoc }

// Lookup resolves a name to its Ref.
func (v *View) Lookup(name string) (Ref, bool) { return v.c.Lookup(name) }
