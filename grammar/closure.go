package grammar

import (
	"github.com/dekarrin/ictiobus/iset"
	"github.com/dekarrin/ictiobus/symbols"
)

// Closure computes the transitive closure of a single seed item under v,
// per spec §4.3. The computation is iterative (a worklist of pending items,
// no recursion) and memoized per seed item so repeated calls from the State
// Enumerator (every kernel item, every state) do not redo the expansion.
type Closure struct {
	v     *View
	memo  map[Item][]Item
}

// NewClosure returns a Closure Engine bound to the given sealed Ruleset
// view.
func NewClosure(v *View) *Closure {
	return &Closure{v: v, memo: make(map[Item][]Item)}
}

// Of returns closure(it): the set of items (as an ordered, deduplicated
// slice) reachable from it by repeatedly expanding the non-terminal after
// the dot.
func (c *Closure) Of(it Item) []Item {
	if cached, ok := c.memo[it]; ok {
		return cached
	}

	seen := map[Item]bool{it: true}
	result := []Item{it}
	worklist := []Item{it}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		prod := c.v.rhsSymbols(cur.NT, cur.R)
		if cur.Dot >= len(prod) {
			continue
		}
		sym := prod[cur.Dot]
		if sym.Kind != symbols.NonTerminal {
			continue
		}
		nt := sym.Index

		la := c.effectiveLookahead(cur)

		for _, l := range la.Sorted() {
			rhsCount := c.v.RHSCount(nt)
			for s := 0; s < rhsCount; s++ {
				cand := Item{NT: nt, R: s, Dot: 0, LA: l}
				if seen[cand] {
					continue
				}
				seen[cand] = true
				result = append(result, cand)
				worklist = append(worklist, cand)
			}
		}
	}

	c.memo[it] = result
	return result
}

// effectiveLookahead computes L for item cur = (B, s, j, b): FIRST(beta)
// unioned with {b} if beta (= rhs[j+1:]) is nullable, where beta is the
// portion of the rhs following the symbol at the dot; if j+1 is past the
// end of the rhs, L = {b}.
func (c *Closure) effectiveLookahead(cur Item) iset.Set {
	prodLen := len(c.v.rhsSymbols(cur.NT, cur.R))
	betaStart := cur.Dot + 1

	l := iset.New()
	if betaStart >= prodLen {
		l.Add(cur.LA)
		return l
	}

	l.Union(c.v.FirstOfSuffix(cur.NT, cur.R, betaStart))
	if c.v.IsSuffixNullable(cur.NT, cur.R, betaStart) {
		l.Add(cur.LA)
	}
	return l
}
