package search

import (
	"errors"
	"slices"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// ErrNoMatch is returned when no candidate satisfies a query.
var ErrNoMatch = errors.New("query failed to match any inputs")

// Matches reports whether query is close enough to candidate.
//
// The candidate is scanned left to right for the next query character. Once a
// run of characters has matched, the first mismatch skips the rest of the
// current word (a word ends before any non-alphanumeric or uppercase
// character) before the scan resumes. Every query character must be consumed
// for the candidate to match. Comparison is case-insensitive.
func Matches(candidate, query string) bool {
	opt := []rune(candidate)
	q := []rune(query)

	i, j := 0, 0
	for j < len(q) {
		for i < len(opt) && !sameChar(opt[i], q[j]) {
			i++
		}
		if i == len(opt) {
			break
		}

		for j < len(q) && i < len(opt) && sameChar(opt[i], q[j]) {
			i++
			j++
		}

		i = skipWord(opt, i)
	}

	return j == len(q)
}

func sameChar(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// skipWord advances i past the lowercase alphanumeric tail of the current word.
func skipWord(chars []rune, i int) int {
	for i < len(chars) {
		c := chars[i]
		if !(unicode.IsLetter(c) || unicode.IsNumber(c)) || unicode.IsUpper(c) {
			break
		}
		i++
	}
	return i
}

// Closest returns the shortest option that matches query.
// When several matching options share the shortest length the first one wins.
func Closest(options []string, query string) (string, bool) {
	return ClosestFunc(options, query, func(s string) string { return s })
}

// ClosestFunc is Closest over arbitrary values, matching against key(option).
// Length comparisons use the key as well.
func ClosestFunc[T any](options []T, query string, key func(T) string) (T, bool) {
	var best T
	bestLen := -1
	for _, opt := range options {
		k := key(opt)
		if !Matches(k, query) {
			continue
		}
		if bestLen < 0 || len(k) < bestLen {
			best = opt
			bestLen = len(k)
		}
	}
	return best, bestLen >= 0
}

// Shortest returns the shortest of options, the first one on ties.
func Shortest(options []string) (string, bool) {
	return Closest(options, "")
}

// Rank returns every option whose key matches query, shortest key first.
// Options of equal length keep their input order.
func Rank[T any](options []T, query string, key func(T) string) []T {
	var out []T
	for _, opt := range options {
		if Matches(key(opt), query) {
			out = append(out, opt)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return len(key(a)) - len(key(b))
	})
	return out
}

// Suggest returns up to limit candidates that loosely resemble query, best
// first. It is used to enrich "no match" diagnostics.
func Suggest(query string, candidates []string, limit int) []string {
	if query == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(query, candidates)
	var out []string
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
