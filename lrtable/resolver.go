package lrtable

import (
	"github.com/dekarrin/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/symbols"
)

// hint is a table-entry hint keyed by (state, symbol), accumulated during
// resolution before being laid out into the dense Table in Build.
type hint struct {
	state  int
	symbol symbols.Ref
	entry  Entry
}

// Resolver is the Action Resolver of spec §4.5. It is driven by
// automaton.Enumerate as a callback and owns the growing table-entry hints
// and rr_table vectors described in spec §5's ownership discipline.
type Resolver struct {
	v   *grammar.View
	reg *automaton.Registry

	hints []hint
	rr    []automaton.Reduction
	diags []icterrors.Diagnostic
}

// NewResolver returns a Resolver bound to the sealed ruleset view v.
func NewResolver(v *grammar.View) *Resolver {
	return &Resolver{v: v}
}

// Run enumerates every LR(1) state, resolving each state's action bundles,
// and returns the populated Registry once enumeration reaches a fixed
// point.
func (res *Resolver) Run() *automaton.Registry {
	cl := grammar.NewClosure(res.v)
	res.reg = automaton.Enumerate(res.v, cl, res.resolve)
	return res.reg
}

// Diagnostics returns every conflict warning accumulated while resolving.
func (res *Resolver) Diagnostics() []icterrors.Diagnostic { return res.diags }

func (res *Resolver) resolve(state int, bundle automaton.ActionBundle, reg *automaton.Registry) {
	hasShift := len(bundle.ShiftKernel) > 0
	numReductions := len(bundle.Reductions)

	if bundle.Symbol.Kind == symbols.NonTerminal {
		// Only shifts (gotos) are possible on a non-terminal.
		if hasShift {
			next := reg.Intern(bundle.ShiftKernel)
			res.emit(state, bundle.Symbol, Entry{Kind: EntryShift, NextState: next})
		}
		return
	}

	if !hasShift && numReductions == 1 {
		red := bundle.Reductions[0]
		res.emit(state, bundle.Symbol, Entry{Kind: EntryReduce, NT: red.NT, R: red.R})
		return
	}
	if hasShift && numReductions == 0 {
		next := reg.Intern(bundle.ShiftKernel)
		res.emit(state, bundle.Symbol, Entry{Kind: EntryShift, NextState: next})
		return
	}
	if !hasShift && numReductions == 0 {
		return
	}

	res.resolveConflict(state, bundle, reg)
}

// resolveConflict implements spec §4.5's conflict procedure: find the
// highest-precedence reductions M, compare against the lookahead's
// precedence/associativity if a shift is present, and either prefer the
// shift or reduce using M (emitting reduce if |M|=1, else rr_conflict).
func (res *Resolver) resolveConflict(state int, bundle automaton.ActionBundle, reg *automaton.Registry) {
	lookaheadName := res.v.Symbols().TerminalName(bundle.Symbol.Index)
	res.diags = append(res.diags, icterrors.ConflictIntro(state, lookaheadName))

	maxPrec := 0
	for _, red := range bundle.Reductions {
		if p := res.v.EffectiveRHSPrecedence(red.NT, red.R); p > maxPrec {
			maxPrec = p
		}
	}
	var m []automaton.Reduction
	for _, red := range bundle.Reductions {
		if res.v.EffectiveRHSPrecedence(red.NT, red.R) == maxPrec {
			m = append(m, red)
		}
	}

	preferShift := false
	hasShift := len(bundle.ShiftKernel) > 0
	if hasShift {
		sp := res.v.TermPrecedence(bundle.Symbol.Index)
		sa := res.v.TermAssociativity(bundle.Symbol.Index)
		preferShift = sp > maxPrec || (sp == maxPrec && sa == symbols.Right)
	}

	// "Resolved" holds iff shift was preferred (on higher precedence, or on
	// equal precedence with right associativity), or a unique
	// highest-precedence reduction existed; multiple equally-highest
	// reductions with a present but unpreferred shift is still an
	// unresolved ambiguity.
	resolved := preferShift || len(m) == 1

	if preferShift {
		next := reg.Intern(bundle.ShiftKernel)
		res.emit(state, bundle.Symbol, Entry{Kind: EntryShift, NextState: next})
	} else if len(m) == 1 {
		res.emit(state, bundle.Symbol, Entry{Kind: EntryReduce, NT: m[0].NT, R: m[0].R})
	} else {
		off := len(res.rr)
		res.rr = append(res.rr, m...)
		res.emit(state, bundle.Symbol, Entry{Kind: EntryRRConflict, Off: off, Count: len(m)})
	}

	if resolved {
		res.diags = append(res.diags, icterrors.ConflictResolved(state, lookaheadName))
	} else {
		res.diags = append(res.diags, icterrors.ConflictUnresolved(state, lookaheadName))
	}
}

func (res *Resolver) emit(state int, symbol symbols.Ref, entry Entry) {
	res.hints = append(res.hints, hint{state: state, symbol: symbol, entry: entry})
}
