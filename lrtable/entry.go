// Package lrtable implements the Action Resolver (spec §4.5) and the Parse
// Table (spec §4.6): it drives automaton.Enumerate with a resolve callback
// that turns each state's action bundles into table-entry hints using
// declared precedence and associativity, then assembles those hints into a
// dense, encoding-checked Table.
//
// The conflict-handling and table layout follow the teacher's
// internal/ictiobus/parse/clr1.go (canonicalLR1Table, LRAction) generalized
// with the precedence/associativity tie-break the teacher's CLR1
// construction does not have; that tie-break is grounded instead in the
// nihei9/vartan grammar package's precAndAssoc design found elsewhere in the
// example pack.
package lrtable

import "fmt"

// EntryKind tags the four-variant parse table cell of spec §3.
type EntryKind int

const (
	EntryError EntryKind = iota
	EntryShift
	EntryReduce
	EntryRRConflict
)

// Entry is a single parse table cell.
type Entry struct {
	Kind EntryKind

	// Shift
	NextState int

	// Reduce
	NT, R int

	// RRConflict: the half-open range [Off, Off+Count) of Table.RRTable.
	Off, Count int
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryShift:
		return fmt.Sprintf("s%d", e.NextState)
	case EntryReduce:
		return fmt.Sprintf("r(%d,%d)", e.NT, e.R)
	case EntryRRConflict:
		return fmt.Sprintf("rr(%d,%d)", e.Off, e.Count)
	default:
		return ""
	}
}
