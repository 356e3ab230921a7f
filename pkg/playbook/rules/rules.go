// Package rules provides ordered, first-match-wins classification tables.
//
// Every classifier in the pipeline is expressed as a Table so that the
// precedence between overlapping patterns is visible in one place and can be
// tested on its own.
package rules

import (
	"regexp"
	"strings"
)

// Predicate reports whether a rule applies to text.
type Predicate func(text string) bool

// Rule pairs a predicate with the result it yields.
type Rule[T any] struct {
	Name   string
	Match  Predicate
	Result T
}

// Table is an ordered list of rules evaluated in order; the first match wins.
type Table[T any] struct {
	rules    []Rule[T]
	fallback T
}

// NewTable creates a table that yields fallback when no rule matches.
func NewTable[T any](fallback T, rules ...Rule[T]) *Table[T] {
	return &Table[T]{rules: rules, fallback: fallback}
}

// Classify returns the result of the first matching rule, or the fallback.
// The boolean is false when the fallback was used.
func (t *Table[T]) Classify(text string) (T, bool) {
	if r, ok := t.Match(text); ok {
		return r.Result, true
	}
	return t.fallback, false
}

// Match returns the first rule that applies to text.
func (t *Table[T]) Match(text string) (Rule[T], bool) {
	for _, r := range t.rules {
		if r.Match(text) {
			return r, true
		}
	}
	return Rule[T]{}, false
}

// Rules returns the rules in evaluation order.
func (t *Table[T]) Rules() []Rule[T] {
	return t.rules
}

// Keywords matches when text contains any of the words, case-insensitively.
func Keywords(words ...string) Predicate {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return func(text string) bool {
		text = strings.ToLower(text)
		for _, w := range lowered {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

// Regex matches when the compiled expression matches text.
func Regex(expr string) Predicate {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// Capture is a named pattern whose submatches carry extracted values.
type Capture[T any] struct {
	Name   string
	Regex  *regexp.Regexp
	Result T
}

// CaptureTable evaluates capture patterns in order; the first match wins.
type CaptureTable[T any] struct {
	patterns []Capture[T]
}

// NewCaptureTable compiles the given expressions in order.
func NewCaptureTable[T any](patterns ...Capture[T]) *CaptureTable[T] {
	return &CaptureTable[T]{patterns: patterns}
}

// First returns the first pattern that matches text together with its submatches.
func (c *CaptureTable[T]) First(text string) (Capture[T], []string, bool) {
	for _, p := range c.patterns {
		if m := p.Regex.FindStringSubmatch(text); m != nil {
			return p, m, true
		}
	}
	return Capture[T]{}, nil, false
}

// All returns every match of every pattern, pattern order first, then text order.
func (c *CaptureTable[T]) All(text string) []Match[T] {
	var out []Match[T]
	for _, p := range c.patterns {
		for _, m := range p.Regex.FindAllStringSubmatch(text, -1) {
			out = append(out, Match[T]{Pattern: p, Groups: m})
		}
	}
	return out
}

// Match is one hit from CaptureTable.All.
type Match[T any] struct {
	Pattern Capture[T]
	Groups  []string
}
