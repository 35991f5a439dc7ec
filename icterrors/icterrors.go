// Package icterrors holds the diagnostic types shared by every stage of the
// ictiobus table-construction pipeline. Each stage reports failures and
// warnings as a Diagnostic carrying a stable Code so that callers (and
// tests) can match on the kind of problem without parsing prose.
package icterrors

import "fmt"

// Code is a stable identifier for a kind of diagnostic. Codes are never
// reused for a different meaning once assigned.
type Code string

const (
	CodeSymbolExists      Code = "symbol_exists"
	CodeReservedName      Code = "reserved_name"
	CodeAlreadySealed     Code = "already_sealed"
	CodeNoUserTerminals   Code = "no_user_terminals"
	CodeNoUserNonTerms    Code = "no_user_non_terminals"
	CodeUnknownSymbol     Code = "unknown_symbol"
	CodeTerminalAsStart   Code = "terminal_as_start"
	CodeNoProductions     Code = "no_productions"
	CodeUnsolvable        Code = "unsolvable"
	CodeUnusedNonTerminal Code = "unused_nterm"
	CodeUnusedTerminal    Code = "unused_term"
	CodeConflictIntro     Code = "conflict_intro"
	CodeConflictResolved  Code = "conflict_resolved"
	CodeConflictUnresolved Code = "conflict_unresolved"
	CodeEncodingOverflow  Code = "encoding_overflow"
	CodeSyntaxError       Code = "syntax_error"
	CodeRRConflict        Code = "rr_conflict_unresolved"
	CodeInternalParser    Code = "internal_parser_error"
)

// Severity distinguishes a Diagnostic that halts its stage from one that is
// merely accumulated and surfaced alongside a successful result.
type Severity int

const (
	// SeverityError halts the stage that produced it; no successor is
	// returned.
	SeverityError Severity = iota
	// SeverityWarning is accumulated and returned alongside a successful
	// result.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single typed failure or warning produced by a pipeline
// stage. It implements error so it can be returned directly from stages
// that halt on the first problem (e.g. symbols.Collection.AddTerminal), while
// stages that accumulate multiple diagnostics (e.g. Ruleset.Seal) collect
// them in a []Diagnostic instead of stopping at the first one.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string

	// Symbol is the name of the symbol the diagnostic concerns, if any.
	Symbol string
}

func (d Diagnostic) Error() string {
	return d.Message
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// New builds a Diagnostic with the given code, severity, symbol, and a
// message already rendered from one of the templates in spec §6.
func New(code Code, sev Severity, symbol, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: sev, Message: message, Symbol: symbol}
}

// SymbolExists reports that a name was already registered.
func SymbolExists(name string) Diagnostic {
	return New(CodeSymbolExists, SeverityError, name, fmt.Sprintf("Symbol '%s' already exists", name))
}

// ReservedName reports an attempt to use or redefine a name starting with
// '$'.
func ReservedName(name string) Diagnostic {
	return New(CodeReservedName, SeverityError, name, fmt.Sprintf("Cannot refer special '%s' symbol", name))
}

// AlreadySealed reports a mutation attempted after the owning stage was
// sealed.
func AlreadySealed() Diagnostic {
	return New(CodeAlreadySealed, SeverityError, "", "already sealed")
}

// NoUserTerminals is a warning that only the reserved $eof terminal was
// registered.
func NoUserTerminals() Diagnostic {
	return New(CodeNoUserTerminals, SeverityWarning, "", "No user-defined terminals were registered")
}

// NoUserNonTerminals reports that only the reserved $root non-terminal was
// registered.
func NoUserNonTerminals() Diagnostic {
	return New(CodeNoUserNonTerms, SeverityError, "", "No user-defined non-terminals were registered")
}

// UnknownSymbol reports a reference to a name that was never registered.
func UnknownSymbol(name string) Diagnostic {
	return New(CodeUnknownSymbol, SeverityError, name, fmt.Sprintf("Unknown symbol '%s'", name))
}

// TerminalAsStart reports an attempt to set a terminal as the start symbol.
func TerminalAsStart(name string) Diagnostic {
	return New(CodeTerminalAsStart, SeverityError, name, fmt.Sprintf("'%s' is a terminal and cannot be the start symbol", name))
}

// NoProductions reports a user non-terminal with no registered rhs.
func NoProductions(name string) Diagnostic {
	return New(CodeNoProductions, SeverityError, name, fmt.Sprintf("Nonterminal '%s' has no productions", name))
}

// Unsolvable reports a non-terminal that is neither pure-epsilon nor has a
// resolvable FIRST set.
func Unsolvable(name string) Diagnostic {
	return New(CodeUnsolvable, SeverityError, name, fmt.Sprintf("Nonterminal '%s' is unsolvable", name))
}

// UnusedNonTerminal warns about a user non-terminal unreachable from $root.
func UnusedNonTerminal(name string) Diagnostic {
	return New(CodeUnusedNonTerminal, SeverityWarning, name, fmt.Sprintf("Nonterminal '%s' is unused", name))
}

// UnusedTerminal warns about a user terminal that never appears in any rhs.
func UnusedTerminal(name string) Diagnostic {
	return New(CodeUnusedTerminal, SeverityWarning, name, fmt.Sprintf("Terminal '%s' is unused", name))
}

// ConflictIntro begins the description of a shift/reduce or reduce/reduce
// conflict encountered by the Action Resolver.
func ConflictIntro(state int, lookahead string) Diagnostic {
	return New(CodeConflictIntro, SeverityWarning, lookahead,
		fmt.Sprintf("Conflict in state %d on lookahead '%s' :", state, lookahead))
}

// ConflictResolved reports that a conflict was resolved deterministically by
// precedence/associativity.
func ConflictResolved(state int, lookahead string) Diagnostic {
	return New(CodeConflictResolved, SeverityWarning, lookahead,
		fmt.Sprintf("Conflict in state %d on lookahead '%s' resolved", state, lookahead))
}

// ConflictUnresolved reports a conflict that had to be resolved arbitrarily
// (shift not chosen, and more than one equally-highest-precedence
// reduction).
func ConflictUnresolved(state int, lookahead string) Diagnostic {
	return New(CodeConflictUnresolved, SeverityWarning, lookahead,
		fmt.Sprintf("Conflict in state %d on lookahead '%s' unresolved", state, lookahead))
}

// EncodingOverflow is a fatal error raised at table-emission time when a
// count exceeds the width budgeted for it in the dense encoding.
func EncodingOverflow(what string, value, limit int) Diagnostic {
	return New(CodeEncodingOverflow, SeverityError, "",
		fmt.Sprintf("encoding overflow: %s is %d, exceeds limit of %d", what, value, limit))
}

// SyntaxError reports an unexpected token seen by the parser driver.
func SyntaxError(symbolName string) Diagnostic {
	return New(CodeSyntaxError, SeverityError, symbolName, fmt.Sprintf("Syntax error: unexpected %s", symbolName))
}

// RRConflictUnresolved reports that the driver landed on a reduce-reduce
// conflict entry; a non-GLR driver cannot proceed.
func RRConflictUnresolved() Diagnostic {
	return New(CodeRRConflict, SeverityError, "", "reduce/reduce conflict unresolved at parse time")
}

// InternalParserError reports the driver's stack underflowing, which should
// be unreachable given a valid table.
func InternalParserError() Diagnostic {
	return New(CodeInternalParser, SeverityError, "", "internal parser error: state stack exhausted")
}
