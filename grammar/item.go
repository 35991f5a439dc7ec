package grammar

import (
	"fmt"

	"github.com/dekarrin/ictiobus/symbols"
)

// Item is an LR(1) item: the quadruple (nterm_idx, rside_idx, dot_idx,
// lookahead_idx) of spec §3. Two items are equal iff all four coordinates
// match, which Go's built-in struct comparison gives for free -- Item is
// comparable and usable directly as a map key, unlike the teacher
// codebase's string-keyed grammar.LR1Item (internal/ictiobus/grammar/
// item.go), whose identity is the rendered "NONTERM -> ALPHA.BETA, a"
// string. Indices replace names throughout this module, so structural
// equality replaces string equality.
type Item struct {
	NT  int
	R   int
	Dot int
	LA  int
}

// Shift returns the item with its dot advanced one position.
func (it Item) Shift() Item {
	return Item{NT: it.NT, R: it.R, Dot: it.Dot + 1, LA: it.LA}
}

func (it Item) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", it.NT, it.R, it.Dot, it.LA)
}

// SymbolOfInterest returns the symbol at the item's dot, or, if the dot is
// at the end of the rhs, the terminal at the item's lookahead index -- the
// Glossary's definition, used to group items that produce the same action.
// reducing reports whether the item is reducing (the dot was at the end),
// which the State Enumerator needs to separate the group's reductions from
// its shifts.
func (v *View) SymbolOfInterest(it Item) (sym symbols.Ref, reducing bool) {
	prod := v.rhsSymbols(it.NT, it.R)
	if it.Dot >= len(prod) {
		return symbols.Ref{Kind: symbols.Terminal, Index: it.LA}, true
	}
	return prod[it.Dot], false
}
