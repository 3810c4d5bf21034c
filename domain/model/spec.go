// Package model holds typed linear-model specifications. A Spec is an
// explicit term list rather than a parsed formula string, so the design
// matrix builder never interprets runtime syntax.
package model

import "strings"

// Term is one model term: a main effect (one factor) or an interaction
// (ordered set of factors).
type Term struct {
	Factors []string
}

// NewTerm builds a term over the given factors.
func NewTerm(factors ...string) Term {
	return Term{Factors: factors}
}

// Label renders the term the way an ANOVA table names it, e.g. "A:B".
func (t Term) Label() string {
	return strings.Join(t.Factors, ":")
}

// IsInteraction reports whether the term crosses more than one factor.
func (t Term) IsInteraction() bool {
	return len(t.Factors) > 1
}

// Involves reports whether the term includes the named factor.
func (t Term) Involves(factor string) bool {
	for _, f := range t.Factors {
		if f == factor {
			return true
		}
	}
	return false
}

// Spec is a complete model specification: the response column and the
// ordered term list. Order matters because the sequential (Type I) sum of
// squares attributes shared variance to earlier terms.
type Spec struct {
	Response string
	Terms    []Term
}

// FullFactorial builds the full crossing of the given factors: every main
// effect and every interaction subset, ordered by subset size then by factor
// position, matching how a crossed formula expands. A non-empty block is
// appended as its own additive term, never crossed.
func FullFactorial(response string, factors []string, block string) Spec {
	terms := make([]Term, 0, 1<<len(factors))
	n := len(factors)
	for size := 1; size <= n; size++ {
		for _, subset := range subsetsOfSize(n, size) {
			names := make([]string, len(subset))
			for i, idx := range subset {
				names[i] = factors[idx]
			}
			terms = append(terms, NewTerm(names...))
		}
	}
	if block != "" {
		terms = append(terms, NewTerm(block))
	}
	return Spec{Response: response, Terms: terms}
}

// Additive builds a main-effects-only model over the factors in the given
// order, block appended last.
func Additive(response string, factors []string, block string) Spec {
	terms := make([]Term, 0, len(factors)+1)
	for _, f := range factors {
		terms = append(terms, NewTerm(f))
	}
	if block != "" {
		terms = append(terms, NewTerm(block))
	}
	return Spec{Response: response, Terms: terms}
}

// Labels returns the term labels in model order.
func (s Spec) Labels() []string {
	labels := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		labels[i] = t.Label()
	}
	return labels
}

// Factors returns the distinct factor names across all terms, in first
// appearance order.
func (s Spec) Factors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.Terms {
		for _, f := range t.Factors {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// subsetsOfSize enumerates index subsets of {0..n-1} with the given size in
// lexicographic order.
func subsetsOfSize(n, size int) [][]int {
	var out [][]int
	subset := make([]int, size)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == size {
			out = append(out, append([]int(nil), subset...))
			return
		}
		for i := start; i < n; i++ {
			subset[depth] = i
			walk(i+1, depth+1)
		}
	}
	if size > 0 {
		walk(0, 0)
	}
	return out
}
