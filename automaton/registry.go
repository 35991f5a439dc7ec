// Package automaton implements the State Enumerator (spec §4.4): it walks
// kernels to canonical LR(1) states, deriving each state's closure from the
// Closure Engine and grouping the closure by symbol of interest so callers
// (the Action Resolver, in package lrtable) can decide shift/reduce/conflict
// per group without recomputing groupings themselves.
//
// This package deliberately does not depend on lrtable: the Action Resolver
// is invoked through a plain callback, keeping the dependency direction
// lrtable -> automaton -> grammar, the same layering the teacher codebase
// uses between its parse and automaton packages (internal/ictiobus/parse
// imports internal/ictiobus/automaton, never the reverse).
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/ictiobus/grammar"
)

// State is an LR(1) state: a kernel (the seed items that define its
// identity) and the closure derived from it once the enumerator visits it.
type State struct {
	Kernel  []grammar.Item
	Closure []grammar.Item
}

// Registry interns kernels into stable state ids, per spec §4.4's "allocate
// or find" rule: two kernels equal as sets of items share an id. Both the
// Enumerator's main loop and the Action Resolver's shift-target lookup use
// the same Registry instance, so a kernel discovered while resolving one
// state's actions is visible to the main loop's index-based walk without
// any separate synchronization.
type Registry struct {
	byKey  map[string]int
	states []State
}

// NewRegistry returns a Registry seeded with the canonical initial kernel
// {($root,0,0,$eof)}, always assigned state id 0.
func NewRegistry() *Registry {
	r := &Registry{byKey: make(map[string]int)}
	r.Intern([]grammar.Item{{NT: 0, R: 0, Dot: 0, LA: 0}})
	return r
}

// Intern returns the id of the state whose kernel equals kernel as a set,
// allocating a new state if none exists yet.
func (r *Registry) Intern(kernel []grammar.Item) int {
	key := kernelKey(kernel)
	if id, ok := r.byKey[key]; ok {
		return id
	}
	id := len(r.states)
	r.byKey[key] = id
	r.states = append(r.states, State{Kernel: dedupKernel(kernel)})
	return id
}

// Len returns the number of states interned so far. Called from the main
// loop's index bound, it naturally grows as Intern discovers new kernels.
func (r *Registry) Len() int { return len(r.states) }

// Kernel returns the kernel of state id.
func (r *Registry) Kernel(id int) []grammar.Item { return r.states[id].Kernel }

// Closure returns the closure recorded for state id, or nil if not yet set.
func (r *Registry) Closure(id int) []grammar.Item { return r.states[id].Closure }

// SetClosure records the closure computed for state id.
func (r *Registry) SetClosure(id int, closure []grammar.Item) {
	r.states[id].Closure = closure
}

// dedupKernel removes any duplicate items (by value) a caller may have
// accumulated, preserving first-occurrence order, since a kernel's identity
// is its set of items, not its multiset.
func dedupKernel(kernel []grammar.Item) []grammar.Item {
	seen := make(map[grammar.Item]bool, len(kernel))
	out := make([]grammar.Item, 0, len(kernel))
	for _, it := range kernel {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// kernelKey renders a kernel's item set as a canonical string: items sorted
// by their four coordinates, so two kernels equal as sets always produce the
// same key regardless of insertion order.
func kernelKey(kernel []grammar.Item) string {
	items := dedupKernel(kernel)
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.NT != b.NT {
			return a.NT < b.NT
		}
		if a.R != b.R {
			return a.R < b.R
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.LA < b.LA
	})
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%d,%d,%d,%d;", it.NT, it.R, it.Dot, it.LA)
	}
	return sb.String()
}
