package grammar

import (
	"github.com/dekarrin/ictiobus/iset"
	"github.com/dekarrin/ictiobus/symbols"
)

// Production is the right-hand side of a rule: an ordered sequence of symbol
// references together with an optional explicit precedence (spec §3). An
// empty Symbols slice denotes the empty production ε.
type Production struct {
	Symbols      []symbols.Ref
	explicitPrec int
	hasExplicit  bool
}

// WithPrecedence returns p with an explicit numeric precedence attached,
// overriding the "last terminal with a defined precedence" rule used to
// compute its effective precedence at seal time.
func (p Production) WithPrecedence(prec int) Production {
	p.explicitPrec = prec
	p.hasExplicit = true
	return p
}

// Len returns the number of symbols in the production (0 for ε).
func (p Production) Len() int {
	return len(p.Symbols)
}

type rhsInfo struct {
	// nullableRemaining[i] counts non-terminal positions in Symbols[i:] not
	// yet known nullable; zero means the suffix Symbols[i:] derives ε.
	nullableRemaining []int

	// first[i] is the set of terminal indices that may begin some
	// derivation of Symbols[i:].
	first []iset.Set

	effectivePrecedence int
}

// appearance identifies a single suffix position (nt, r, i) of some
// production: non-terminal nt's rhs index r, suffix starting at position i.
type appearance struct {
	nt, r, i int
}
