// Package lrparser implements the Parser Driver (spec §4.7): a stack-based
// shift/reduce interpreter of an lrtable.Table against a caller-supplied
// token stream.
//
// The loop follows the shape of the teacher's lrParser.Parse
// (internal/ictiobus/parse/lr.go, "Algorithm 4.44") stripped to what spec
// §4.7 actually asks of it: no parse tree is built, since tree construction
// and semantic-directed translation are handled by collaborators outside
// this table-construction pipeline.
package lrparser

import (
	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/dekarrin/ictiobus/symbols"
)

// TokenStream supplies terminal indices to the parser. Next returns ok=false
// once input is exhausted, which the driver treats as $eof thereafter.
type TokenStream interface {
	Next() (terminal int, ok bool)
}

// NameTable resolves a terminal index to a human-readable name, used only
// to render syntax_error diagnostics.
type NameTable interface {
	TerminalName(idx int) string
}

// ParseResult is the outcome of a single Parse call.
type ParseResult struct {
	Accepted    bool
	Diagnostics []icterrors.Diagnostic
}

// Parser drives table against a token stream. It borrows the table and name
// table rather than owning them, per spec §5's ownership discipline.
type Parser struct {
	table  *lrtable.Table
	names  NameTable
}

// New returns a Parser bound to table and names.
func New(table *lrtable.Table, names NameTable) *Parser {
	return &Parser{table: table, names: names}
}

// Parse runs the stack-based shift/reduce loop of spec §4.7 to completion.
func (p *Parser) Parse(stream TokenStream) ParseResult {
	stack := []int{0}
	la := p.next(stream)

	for {
		if len(stack) == 0 {
			return ParseResult{Diagnostics: []icterrors.Diagnostic{icterrors.InternalParserError()}}
		}
		top := stack[len(stack)-1]
		entry := p.table.Term(top, la)

		switch entry.Kind {
		case lrtable.EntryShift:
			stack = append(stack, entry.NextState)
			la = p.next(stream)

		case lrtable.EntryReduce:
			if entry.NT == symbols.RootIndex {
				// Distinguished reduce($root, 0): spec §9 gives it length
				// 0, since accepting consults la directly rather than
				// popping and re-entering via goto.
				if la == symbols.EOFIndex {
					return ParseResult{Accepted: true}
				}
				return ParseResult{Diagnostics: []icterrors.Diagnostic{
					icterrors.SyntaxError(p.names.TerminalName(la)),
				}}
			}

			popCount := p.table.RHSLength(entry.NT, entry.R)
			stack = stack[:len(stack)-popCount]
			newTop := stack[len(stack)-1]
			gotoEntry := p.table.Nterm(newTop, entry.NT)
			if gotoEntry.Kind != lrtable.EntryShift {
				return ParseResult{Diagnostics: []icterrors.Diagnostic{icterrors.InternalParserError()}}
			}
			stack = append(stack, gotoEntry.NextState)

		case lrtable.EntryRRConflict:
			return ParseResult{Diagnostics: []icterrors.Diagnostic{icterrors.RRConflictUnresolved()}}

		default: // EntryError
			return ParseResult{Diagnostics: []icterrors.Diagnostic{
				icterrors.SyntaxError(p.names.TerminalName(la)),
			}}
		}
	}
}

func (p *Parser) next(stream TokenStream) int {
	t, ok := stream.Next()
	if !ok {
		return symbols.EOFIndex
	}
	return t
}
