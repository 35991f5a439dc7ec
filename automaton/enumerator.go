package automaton

import (
	"github.com/emirpasic/gods/sets/treeset"
	godsutils "github.com/emirpasic/gods/utils"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/symbols"
)

// symbolOrder orders symbol refs the way spec §4.4 requires groups to be
// visited: every terminal-keyed group before any non-terminal-keyed group,
// ties within a kind broken by index. Grounded in npillmayer-gorgo's
// lr/tables.go, which builds its closure/goto sets with
// github.com/emirpasic/gods's ordered containers rather than hand-rolled
// sort-and-dedup.
func symbolOrder(a, b interface{}) int {
	ra, rb := a.(symbols.Ref), b.(symbols.Ref)
	if ra.Kind != rb.Kind {
		if ra.Kind == symbols.Terminal {
			return -1
		}
		return 1
	}
	return godsutils.IntComparator(ra.Index, rb.Index)
}

// Reduction identifies one reducing production (nterm_idx, rside_idx).
type Reduction struct {
	NT, R int
}

// ActionBundle is the per-group input to the Action Resolver: every item in
// a state's closure sharing one symbol of interest, partitioned into its
// reductions and its shift targets, per spec §4.4 step 2.
type ActionBundle struct {
	Symbol      symbols.Ref
	Reductions  []Reduction
	ShiftKernel []grammar.Item
}

// Resolve is called once per (state, group) pair discovered by Enumerate.
// Implementations (the Action Resolver in package lrtable) use reg.Intern to
// allocate or find the successor state for any shift they choose, per spec
// §4.5's "allocate/find the successor state from shifts_kernel" rule.
type Resolve func(state int, bundle ActionBundle, reg *Registry)

// Enumerate runs the State Enumerator's main loop (spec §4.4): starting from
// the canonical initial kernel, it visits states by index (so kernels
// discovered while resolving state k's groups are themselves visited once
// the loop reaches them), computing each state's closure, grouping it by
// symbol of interest in the required order (terminal groups by index,
// then non-terminal groups by index), and invoking resolve once per group.
func Enumerate(v *grammar.View, cl *grammar.Closure, resolve Resolve) *Registry {
	reg := NewRegistry()

	for k := 0; k < reg.Len(); k++ {
		closureSet := closureUnion(cl, reg.Kernel(k))
		reg.SetClosure(k, closureSet)

		for _, group := range groupBySymbolOfInterest(v, closureSet) {
			resolve(k, group, reg)
		}
	}

	return reg
}

// closureUnion computes the union, over every kernel item, of its closure,
// deduplicating by item value. Order follows first discovery, since the
// grouping step that follows re-sorts by symbol of interest anyway.
func closureUnion(cl *grammar.Closure, kernel []grammar.Item) []grammar.Item {
	seen := make(map[grammar.Item]bool)
	var out []grammar.Item
	for _, seed := range kernel {
		for _, it := range cl.Of(seed) {
			if seen[it] {
				continue
			}
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

// groupBySymbolOfInterest partitions a closure set into ActionBundles keyed
// by symbol of interest, ordered per spec §4.4: all terminal-keyed groups
// first (by index), then all non-terminal-keyed groups (by index).
func groupBySymbolOfInterest(v *grammar.View, closure []grammar.Item) []ActionBundle {
	byKey := make(map[symbols.Ref]*ActionBundle)
	order := treeset.NewWith(symbolOrder)

	for _, it := range closure {
		sym, reducing := v.SymbolOfInterest(it)
		b, ok := byKey[sym]
		if !ok {
			b = &ActionBundle{Symbol: sym}
			byKey[sym] = b
			order.Add(sym)
		}
		if reducing {
			red := Reduction{NT: it.NT, R: it.R}
			if !containsReduction(b.Reductions, red) {
				b.Reductions = append(b.Reductions, red)
			}
		} else {
			b.ShiftKernel = append(b.ShiftKernel, it.Shift())
		}
	}

	bundles := make([]ActionBundle, 0, order.Size())
	for _, sym := range order.Values() {
		bundles = append(bundles, *byKey[sym.(symbols.Ref)])
	}
	return bundles
}

func containsReduction(rs []Reduction, r Reduction) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
