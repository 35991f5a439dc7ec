package lrtable

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// String renders the table as a bordered grid, terminals then non-terminals
// as columns and states as rows, in the same InsertTableOpts style the
// teacher's canonicalLR1Table.String uses.
func (t *Table) String() string {
	var data [][]string

	headers := []string{"state", "|"}
	for i := 0; i < t.termCols; i++ {
		headers = append(headers, fmt.Sprintf("T:%s", t.v.Symbols().TerminalName(i)))
	}
	headers = append(headers, "|")
	for i := 0; i < t.ntermCols; i++ {
		headers = append(headers, fmt.Sprintf("N:%s", t.v.Symbols().NonTerminalName(i)))
	}
	data = append(data, headers)

	for s := 0; s < t.StateCount(); s++ {
		row := []string{fmt.Sprintf("%d", s), "|"}
		for i := 0; i < t.termCols; i++ {
			row = append(row, cellString(t.Term(s, i)))
		}
		row = append(row, "|")
		for i := 0; i < t.ntermCols; i++ {
			row = append(row, cellString(t.Nterm(s, i)))
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func cellString(e Entry) string {
	if e.Kind == EntryError {
		return ""
	}
	return e.String()
}
