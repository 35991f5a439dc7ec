package lrtable

import (
	"github.com/dekarrin/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/symbols"
)

const (
	maxStateCount = 1 << 32
	maxSmallCount = 1 << 16
)

// Table is the dense parse table of spec §4.6: one row per state, columns
// for every terminal followed by every non-terminal, plus the rr_table side
// vector of reduce-reduce conflict candidates.
type Table struct {
	v *grammar.View

	termCols  int
	ntermCols int

	cells []Entry // len == stateCount * (termCols+ntermCols), row-major

	rrTable []automaton.Reduction
}

// Term returns the entry at (state, term).
func (t *Table) Term(state, term int) Entry {
	return t.cells[state*(t.termCols+t.ntermCols)+term]
}

// Nterm returns the entry at (state, nterm), nterm being a non-terminal
// index (not offset by termCols).
func (t *Table) Nterm(state, nterm int) Entry {
	return t.cells[state*(t.termCols+t.ntermCols)+t.termCols+nterm]
}

// StateCount returns the number of rows.
func (t *Table) StateCount() int {
	if t.termCols+t.ntermCols == 0 {
		return 0
	}
	return len(t.cells) / (t.termCols + t.ntermCols)
}

// RRTable returns the side vector of reduce-reduce conflict candidates.
func (t *Table) RRTable() []automaton.Reduction { return t.rrTable }

// RHSLength returns the pop count for reduce(nt, r), the auxiliary
// rhs-length table spec §9 requires the driver to consult since the reduce
// entry itself stores only the rside index.
func (t *Table) RHSLength(nt, r int) int { return t.v.RHSLength(nt, r) }

// Build runs the Action Resolver to a fixed point and assembles its hints
// into a dense Table, validating the encoding-width constraints of spec
// §4.6. A non-nil error means a fatal encoding_overflow.
func Build(v *grammar.View) (*Table, []icterrors.Diagnostic, error) {
	res := NewResolver(v)
	reg := res.Run()

	stateCount := reg.Len()
	termCount := v.Symbols().TerminalCount()
	ntermCount := v.Symbols().NonTerminalCount()

	diags := res.Diagnostics()

	if err := checkOverflow(stateCount, termCount, ntermCount, res); err != nil {
		return nil, diags, err
	}

	t := &Table{
		v:         v,
		termCols:  termCount,
		ntermCols: ntermCount,
		cells:     make([]Entry, stateCount*(termCount+ntermCount)),
		rrTable:   res.rr,
	}

	for _, h := range res.hints {
		col := h.symbol.Index
		if h.symbol.Kind == symbols.NonTerminal {
			col += termCount
		}
		t.cells[h.state*(termCount+ntermCount)+col] = h.entry
	}

	return t, diags, nil
}

func checkOverflow(stateCount, termCount, ntermCount int, res *Resolver) error {
	if stateCount > maxStateCount {
		return icterrors.EncodingOverflow("state_count", stateCount, maxStateCount)
	}
	if ntermCount > maxSmallCount {
		return icterrors.EncodingOverflow("nterm_count", ntermCount, maxSmallCount)
	}
	for nt := 0; nt < ntermCount; nt++ {
		if c := res.v.RHSCount(nt); c > maxSmallCount {
			return icterrors.EncodingOverflow("rhs_count", c, maxSmallCount)
		}
	}
	if len(res.rr) > maxSmallCount {
		return icterrors.EncodingOverflow("rr_offset", len(res.rr), maxSmallCount)
	}
	for _, h := range res.hints {
		if h.entry.Kind == EntryRRConflict && h.entry.Count > maxSmallCount {
			return icterrors.EncodingOverflow("rr_count", h.entry.Count, maxSmallCount)
		}
	}
	return nil
}
