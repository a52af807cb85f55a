package sift

import (
	"slices"
	"strings"
)

// Criterion is a selectable value of a multi-selection filter.
// Two criteria are the same when their IDs are equal.
type Criterion interface {
	ID() string
	Title() string
}

// Choice is a plain Criterion.
type Choice struct {
	Key   string
	Label string
}

func (c Choice) ID() string { return c.Key }

// Title falls back to the key when no label is set.
func (c Choice) Title() string {
	if c.Label == "" {
		return c.Key
	}

	return c.Label
}

// Range bounds a value on both sides, a nil bound is unbounded.
type Range[T any] struct {
	Lower *T
	Upper *T
}

func Between[T any](lower, upper T) Range[T] {
	return Range[T]{Lower: &lower, Upper: &upper}
}

func AtLeast[T any](lower T) Range[T] {
	return Range[T]{Lower: &lower}
}

func AtMost[T any](upper T) Range[T] {
	return Range[T]{Upper: &upper}
}

// IsEmpty reports whether neither bound is set.
func (r Range[T]) IsEmpty() bool {
	return r.Lower == nil && r.Upper == nil
}

// Contains reports whether lower <= v <= upper under compare.
func (r Range[T]) Contains(v T, compare func(a, b T) int) bool {
	if r.Lower != nil && compare(v, *r.Lower) < 0 {
		return false
	}
	if r.Upper != nil && compare(v, *r.Upper) > 0 {
		return false
	}

	return true
}

func (r Range[T]) same(other Range[T]) bool {
	return r.Lower == other.Lower && r.Upper == other.Upper
}

// Keywords matches values containing every word.
type Keywords struct {
	Words         []string
	CaseSensitive bool
}

// IsEmpty reports whether no non-blank word is set.
func (k Keywords) IsEmpty() bool {
	return !slices.ContainsFunc(k.Words, func(word string) bool { return !isBlank(word) })
}

// Matches reports whether value contains every word as a substring.
// Blank words are ignored and no words match everything.
func (k Keywords) Matches(value string) bool {
	if !k.CaseSensitive {
		value = strings.ToLower(value)
	}

	for _, word := range k.Words {
		if isBlank(word) {
			continue
		}
		if !k.CaseSensitive {
			word = strings.ToLower(word)
		}
		if !strings.Contains(value, word) {
			return false
		}
	}

	return true
}

// Add appends a word, blank words are dropped. The previous Words slice is
// never written to.
func (k *Keywords) Add(word string) {
	if isBlank(word) {
		return
	}

	k.Words = append(slices.Clip(k.Words), word)
}

// Remove drops the word at index i.
func (k *Keywords) Remove(i int) {
	if i < 0 || i >= len(k.Words) {
		return
	}

	k.Words = slices.Delete(slices.Clone(k.Words), i, i+1)
}

func (k *Keywords) Reset() {
	k.Words = nil
	k.CaseSensitive = false
}

func (k Keywords) equal(other Keywords) bool {
	return k.CaseSensitive == other.CaseSensitive && slices.Equal(k.Words, other.Words)
}

func isBlank(word string) bool {
	return strings.TrimSpace(word) == ""
}

func sameIDs[C Criterion](a, b []C) bool {
	return slices.EqualFunc(a, b, func(x, y C) bool { return x.ID() == y.ID() })
}
