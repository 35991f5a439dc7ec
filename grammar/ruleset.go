// Package grammar implements the Ruleset stage (spec §4.2) and the Closure
// Engine (spec §4.3): productions are accepted under a sealed symbols.View,
// and on sealing, nullability and FIRST sets are computed incrementally via
// monotone work queues rather than a batch fixed point, with the augmented
// rule $root -> S injected last.
//
// The incremental propagation generalizes the batch-recursive FIRST/FOLLOW
// of the teacher's earlier hand-rolled grammar (internal/tunascript/
// grammar.go's Grammar.FIRST, a plain memo-less recursion over rule bodies)
// into the work-queue design spec §4.2 calls for: every (non-terminal,
// terminal) and (suffix, terminal) insertion is applied at most once, and
// every nullability flip fires its propagation exactly once.
package grammar

import (
	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/iset"
	"github.com/dekarrin/ictiobus/symbols"
)

type ntermData struct {
	rhss    []Production
	rhsData []rhsInfo

	nullable bool
	first    iset.Set

	// atStart holds, for every suffix position (in any rule) whose head
	// symbol is this non-terminal, the appearance (nt, r, i) of that
	// position. Both FIRST propagation rules walk this list: one when this
	// non-terminal's nullability flips, the other when its FIRST set grows.
	atStart []appearance

	// monitored holds, for every suffix position that still counts this
	// non-terminal as an unresolved occurrence in nullableRemaining, the
	// appearance (nt, r, i) to decrement once this non-terminal becomes
	// nullable.
	monitored []appearance
}

// Ruleset accepts productions over a sealed symbols.View and, once sealed
// itself, exposes the derived FIRST/nullable data described in spec §3-§4.2.
type Ruleset struct {
	syms *symbols.View

	nterms []ntermData

	startSet  bool
	startRef  symbols.Ref
	sealed    bool

	// events is the work queue driving nullability/FIRST to a fixed point.
	// It is processed synchronously to completion inside every call that
	// can change nullability or FIRST (AddRule and the $root injection at
	// Seal).
	events []event
}

type eventKind int

const (
	eventNullableFlip eventKind = iota
	eventFirstGrowth
)

type event struct {
	kind    eventKind
	nt      int
	added   iset.Set // only meaningful for eventFirstGrowth
}

// New returns a Ruleset over the given sealed symbol view, with per-nterm
// slots pre-allocated for every non-terminal already registered (including
// the reserved $root, whose sole production is injected at Seal).
func New(syms *symbols.View) *Ruleset {
	rs := &Ruleset{syms: syms}
	rs.nterms = make([]ntermData, syms.NonTerminalCount())
	for i := range rs.nterms {
		rs.nterms[i].first = iset.New()
	}
	return rs
}

// SetStart overrides the default start symbol (the first user non-terminal)
// with the non-terminal named name.
func (rs *Ruleset) SetStart(name string) error {
	if rs.sealed {
		return icterrors.AlreadySealed()
	}
	if name == symbols.Root || (len(name) > 0 && name[0] == '$') {
		return icterrors.ReservedName(name)
	}
	ref, ok := rs.syms.Lookup(name)
	if !ok {
		return icterrors.UnknownSymbol(name)
	}
	if ref.Kind == symbols.Terminal {
		return icterrors.TerminalAsStart(name)
	}
	rs.startRef = ref
	rs.startSet = true
	return nil
}

// AddRule registers a new production for non-terminal lhs, returning its
// rhs index. rhsNames may be empty to declare an ε production.
func (rs *Ruleset) AddRule(lhs string, rhsNames []string, prod Production) (int, error) {
	if rs.sealed {
		return 0, icterrors.AlreadySealed()
	}
	lhsRef, ok := rs.syms.Lookup(lhs)
	if !ok {
		return 0, icterrors.UnknownSymbol(lhs)
	}
	if lhsRef.Kind == symbols.Terminal {
		return 0, icterrors.UnknownSymbol(lhs)
	}

	resolved := make([]symbols.Ref, 0, len(rhsNames))
	for _, name := range rhsNames {
		ref, ok := rs.syms.Lookup(name)
		if !ok {
			return 0, icterrors.UnknownSymbol(name)
		}
		resolved = append(resolved, ref)
	}
	prod.Symbols = resolved

	return rs.addRuleInternal(lhsRef.Index, prod), nil
}

// addRuleInternal performs the (a) allocate, (b) seed, (c) incrementally
// propagate steps of spec §4.2 for a single new production.
func (rs *Ruleset) addRuleInternal(nt int, prod Production) int {
	r := len(rs.nterms[nt].rhss)
	rs.nterms[nt].rhss = append(rs.nterms[nt].rhss, prod)

	L := len(prod.Symbols)
	info := rhsInfo{
		nullableRemaining: make([]int, L+1),
		first:             make([]iset.Set, L+1),
	}
	for i := 0; i <= L; i++ {
		info.first[i] = iset.New()
	}
	rs.nterms[nt].rhsData = append(rs.nterms[nt].rhsData, info)

	// (b) seed nullableRemaining by counting, for each suffix position, its
	// not-yet-resolved occurrences, and register this rule's appearances so
	// future nullability flips and FIRST growth reach it. A terminal at
	// position j contributes a permanent, never-decremented count to every
	// nullableRemaining[0..j]: a suffix containing a terminal can never
	// derive ε, so it must never reach zero, the same way the original
	// (calculate_rside_part) marks not-nullable the instant it hits a
	// terminal.
	for j, sym := range prod.Symbols {
		if sym.Kind != symbols.NonTerminal {
			for i := 0; i <= j; i++ {
				rs.nterms[nt].rhsData[r].nullableRemaining[i]++
			}
			continue
		}
		rs.nterms[sym.Index].atStart = append(rs.nterms[sym.Index].atStart, appearance{nt: nt, r: r, i: j})

		if rs.nterms[sym.Index].nullable {
			continue // already resolved; nothing to monitor or count
		}
		for i := 0; i <= j; i++ {
			rs.nterms[nt].rhsData[r].nullableRemaining[i]++
			rs.nterms[sym.Index].monitored = append(rs.nterms[sym.Index].monitored, appearance{nt: nt, r: r, i: i})
		}
	}

	// (c) seed FIRST for every suffix position using currently-known
	// nullability/FIRST, walking right to left so each position reuses the
	// walk already performed for the position after it.
	for i := L - 1; i >= 0; i-- {
		additions := rs.walkFirst(prod.Symbols, i)
		rs.growSuffixFirst(nt, r, i, additions)
	}

	// if the whole rhs is already nullable (e.g. it is ε, or every symbol
	// was already known nullable), mark nt nullable now.
	if rs.nterms[nt].rhsData[r].nullableRemaining[0] == 0 {
		rs.markNullable(nt)
	}

	rs.drain()
	return r
}

// walkFirst computes the terminals contributed by Symbols[start:], stopping
// at the first symbol that is a terminal or a not-yet-nullable non-terminal.
// It reads only the current (possibly incomplete) nullable/first state, so
// callers re-invoke it whenever new information could extend the walk
// further -- this is the single mechanism behind both the initial seeding
// pass and both of spec §4.2's incremental propagation rules.
func (rs *Ruleset) walkFirst(prod []symbols.Ref, start int) iset.Set {
	acc := iset.New()
	for k := start; k < len(prod); k++ {
		sym := prod[k]
		if sym.Kind == symbols.Terminal {
			acc.Add(sym.Index)
			return acc
		}
		acc.Union(rs.nterms[sym.Index].first)
		if !rs.nterms[sym.Index].nullable {
			return acc
		}
	}
	return acc
}

// growSuffixFirst adds additions into rhsData[nt][r].first[i] and carries
// whatever was actually new leftward into first[i-1], first[i-2], ... for as
// long as the symbol before the current position is a nullable
// non-terminal. If the carry reaches the head of the whole rhs and grows
// FIRST(nt), the resulting FIRST-growth event is enqueued.
func (rs *Ruleset) growSuffixFirst(nt, r, i int, additions iset.Set) {
	prod := rs.nterms[nt].rhss[r].Symbols
	for {
		dst := &rs.nterms[nt].rhsData[r].first[i]
		actuallyNew := iset.New()
		for _, t := range additions.Sorted() {
			if dst.Add(t) {
				actuallyNew.Add(t)
			}
		}
		if actuallyNew.Len() == 0 {
			return
		}
		if i == 0 {
			rs.growFirst(nt, actuallyNew)
			return
		}
		prev := prod[i-1]
		if prev.Kind != symbols.NonTerminal || !rs.nterms[prev.Index].nullable {
			return
		}
		i--
		additions = actuallyNew
	}
}

// growFirst adds additions into FIRST(nt) and enqueues an eventFirstGrowth
// for whatever terminals were not already present.
func (rs *Ruleset) growFirst(nt int, additions iset.Set) {
	actuallyNew := iset.New()
	for _, t := range additions.Sorted() {
		if rs.nterms[nt].first.Add(t) {
			actuallyNew.Add(t)
		}
	}
	if actuallyNew.Len() == 0 {
		return
	}
	rs.events = append(rs.events, event{kind: eventFirstGrowth, nt: nt, added: actuallyNew})
}

// markNullable flags nt nullable and enqueues its nullability-flip
// propagation, unless it was already flagged.
func (rs *Ruleset) markNullable(nt int) {
	if rs.nterms[nt].nullable {
		return
	}
	rs.nterms[nt].nullable = true
	rs.events = append(rs.events, event{kind: eventNullableFlip, nt: nt})
}

// drain processes the work queue to a fixed point.
func (rs *Ruleset) drain() {
	for len(rs.events) > 0 {
		ev := rs.events[0]
		rs.events = rs.events[1:]

		switch ev.kind {
		case eventNullableFlip:
			rs.propagateNullableFlip(ev.nt)
		case eventFirstGrowth:
			rs.propagateFirstGrowth(ev.nt, ev.added)
		}
	}
}

func (rs *Ruleset) propagateNullableFlip(nt int) {
	// Rule 1: every suffix headed by nt gains whatever lies past it, now
	// that nt itself can vanish.
	for _, app := range rs.nterms[nt].atStart {
		addition := rs.walkFirst(rs.nterms[app.nt].rhss[app.r].Symbols, app.i+1)
		rs.growSuffixFirst(app.nt, app.r, app.i, addition)
	}

	// Nullability: decrement every suffix counter that was still counting
	// nt as unresolved; a counter reaching zero at i=0 makes the owning
	// rhs's non-terminal nullable too.
	for _, app := range rs.nterms[nt].monitored {
		info := &rs.nterms[app.nt].rhsData[app.r]
		info.nullableRemaining[app.i]--
		if app.i == 0 && info.nullableRemaining[0] == 0 {
			rs.markNullable(app.nt)
		}
	}
}

func (rs *Ruleset) propagateFirstGrowth(nt int, added iset.Set) {
	// Rule 2: every suffix headed by nt directly inherits the new
	// terminals, since first[i] always contains at least FIRST(prod[i]).
	for _, app := range rs.nterms[nt].atStart {
		rs.growSuffixFirst(app.nt, app.r, app.i, added)
	}
}

// Seal injects the augmented rule $root -> S (the first user non-terminal,
// or whichever SetStart chose), runs the derived checks of spec §4.2's
// sealing step, and returns the frozen View alongside accumulated
// diagnostics. A non-nil error is returned whenever at least one error-level
// diagnostic was produced, mirroring symbols.Collection.Seal's contract.
func (rs *Ruleset) Seal() (*View, []icterrors.Diagnostic, error) {
	if rs.sealed {
		d := icterrors.AlreadySealed()
		return nil, []icterrors.Diagnostic{d}, d
	}

	var diags []icterrors.Diagnostic

	start := rs.startRef
	if !rs.startSet {
		if rs.syms.NonTerminalCount() < 2 {
			d := icterrors.NoProductions(symbols.Root)
			diags = append(diags, d)
			rs.sealed = true
			return &View{rs: rs}, diags, d
		}
		start = symbols.Ref{Kind: symbols.NonTerminal, Index: 1}
	}

	rs.addRuleInternal(0, Production{Symbols: []symbols.Ref{start}})
	rs.sealed = true

	var firstErr error
	for nt := 1; nt < len(rs.nterms); nt++ {
		name := rs.syms.NonTerminalName(nt)
		if len(rs.nterms[nt].rhss) == 0 {
			d := icterrors.NoProductions(name)
			diags = append(diags, d)
			if firstErr == nil {
				firstErr = d
			}
			continue
		}
		if rs.nterms[nt].nullable {
			continue
		}
		if rs.nterms[nt].first.Len() == 0 {
			d := icterrors.Unsolvable(name)
			diags = append(diags, d)
			if firstErr == nil {
				firstErr = d
			}
		}
	}

	reachable := rs.reachableFromRoot()
	for nt := 1; nt < len(rs.nterms); nt++ {
		if !reachable.Has(nt) {
			diags = append(diags, icterrors.UnusedNonTerminal(rs.syms.NonTerminalName(nt)))
		}
	}
	usedTerms := rs.usedTerminals()
	for t := 1; t < rs.syms.TerminalCount(); t++ {
		if !usedTerms.Has(t) {
			diags = append(diags, icterrors.UnusedTerminal(rs.syms.TerminalName(t)))
		}
	}

	return &View{rs: rs}, diags, firstErr
}

// reachableFromRoot returns the set of non-terminal indices reachable from
// $root by a plain BFS over production right-hand sides.
func (rs *Ruleset) reachableFromRoot() iset.Set {
	seen := iset.New(0)
	queue := []int{0}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		for _, prod := range rs.nterms[nt].rhss {
			for _, sym := range prod.Symbols {
				if sym.Kind != symbols.NonTerminal {
					continue
				}
				if seen.Add(sym.Index) {
					queue = append(queue, sym.Index)
				}
			}
		}
	}
	return seen
}

// usedTerminals returns the set of terminal indices appearing in some rhs.
func (rs *Ruleset) usedTerminals() iset.Set {
	used := iset.New()
	for _, nt := range rs.nterms {
		for _, prod := range nt.rhss {
			for _, sym := range prod.Symbols {
				if sym.Kind == symbols.Terminal {
					used.Add(sym.Index)
				}
			}
		}
	}
	return used
}

// View is the read-only, post-seal interface to a Ruleset. The Closure
// Engine and State Enumerator take a *View rather than a *Ruleset, following
// the same frozen-stage discipline as symbols.View.
type View struct {
	rs *Ruleset
}

// Symbols returns the sealed symbol view this Ruleset was built over.
func (v *View) Symbols() *symbols.View { return v.rs.syms }

// RHSCount returns the number of right-hand sides registered for nterm nt.
func (v *View) RHSCount(nt int) int { return len(v.rs.nterms[nt].rhss) }

// rhsSymbols returns the symbol sequence of non-terminal nt's rhs r.
func (v *View) rhsSymbols(nt, r int) []symbols.Ref {
	return v.rs.nterms[nt].rhss[r].Symbols
}

// RHSLength returns the number of symbols in non-terminal nt's rhs r, the
// pop count the Parser Driver needs via the auxiliary rhs-length table of
// spec §9's open question.
func (v *View) RHSLength(nt, r int) int {
	return len(v.rs.nterms[nt].rhss[r].Symbols)
}

// IsNullable reports whether non-terminal nt derives ε.
func (v *View) IsNullable(nt int) bool { return v.rs.nterms[nt].nullable }

// FirstOfNterm returns FIRST(nt).
func (v *View) FirstOfNterm(nt int) iset.Set { return v.rs.nterms[nt].first }

// IsSuffixNullable reports whether rhs(nt,r)[i:] derives ε.
func (v *View) IsSuffixNullable(nt, r, i int) bool {
	return v.rs.nterms[nt].rhsData[r].nullableRemaining[i] == 0
}

// FirstOfSuffix returns the terminals that may begin some derivation of
// rhs(nt,r)[i:].
func (v *View) FirstOfSuffix(nt, r, i int) iset.Set {
	return v.rs.nterms[nt].rhsData[r].first[i]
}

// EffectiveRHSPrecedence returns the effective precedence of rhs(nt,r): its
// explicit annotation if given, else the precedence of the last terminal in
// the rhs with a defined precedence, else zero.
func (v *View) EffectiveRHSPrecedence(nt, r int) int {
	prod := v.rs.nterms[nt].rhss[r]
	if prod.hasExplicit {
		return prod.explicitPrec
	}
	last := 0
	for _, sym := range prod.Symbols {
		if sym.Kind != symbols.Terminal {
			continue
		}
		if p := v.rs.syms.TermPrecedence(sym.Index); p != 0 {
			last = p
		}
	}
	return last
}

// TermPrecedence returns the declared precedence of terminal idx.
func (v *View) TermPrecedence(idx int) int { return v.rs.syms.TermPrecedence(idx) }

// TermAssociativity returns the declared associativity of terminal idx.
func (v *View) TermAssociativity(idx int) symbols.Assoc { return v.rs.syms.TermAssociativity(idx) }
