package sift

import (
	"cmp"
	"context"
	"slices"
)

// Resolver narrows items down to the ones matching criteria.
// Implementations must be pure and keep the input order.
type Resolver[I, C any] interface {
	FilterItems(items []I, criteria C, noneEnabled bool) []I
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc[I, C any] func(items []I, criteria C, noneEnabled bool) []I

func (f ResolverFunc[I, C]) FilterItems(items []I, criteria C, noneEnabled bool) []I {
	return f(items, criteria, noneEnabled)
}

// Fetcher supplies the universe of criteria of a multi-selection filter.
// It must not fail: a data source that can fail degrades to an empty slice.
type Fetcher[C any] interface {
	FetchFilterItems(ctx context.Context) []C
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc[C any] func(ctx context.Context) []C

func (f FetcherFunc[C]) FetchFilterItems(ctx context.Context) []C {
	return f(ctx)
}

// StaticFetcher always returns items.
func StaticFetcher[C any](items ...C) FetcherFunc[C] {
	return func(context.Context) []C {
		return slices.Clone(items)
	}
}

// Where builds a resolver keeping the items accepted by match.
func Where[I, C any](match func(item I, criteria C, noneEnabled bool) bool) ResolverFunc[I, C] {
	return func(items []I, criteria C, noneEnabled bool) []I {
		filtered := make([]I, 0, len(items))
		for _, item := range items {
			if match(item, criteria, noneEnabled) {
				filtered = append(filtered, item)
			}
		}

		return filtered
	}
}

// SelectedBy matches items having at least one key among the selected criteria.
// Items without keys are kept only when None is enabled.
func SelectedBy[I any, C Criterion](keys func(I) []string) ResolverFunc[I, []C] {
	return func(items []I, selected []C, noneEnabled bool) []I {
		ids := make(map[string]struct{}, len(selected))
		for _, c := range selected {
			ids[c.ID()] = struct{}{}
		}

		return Where(func(item I, _ []C, noneEnabled bool) bool {
			itemKeys := keys(item)
			if len(itemKeys) == 0 {
				return noneEnabled
			}

			return slices.ContainsFunc(itemKeys, func(key string) bool {
				_, ok := ids[key]
				return ok
			})
		})(items, selected, noneEnabled)
	}
}

// SelectedByKey is SelectedBy for items with at most one key.
func SelectedByKey[I any, C Criterion](key func(I) (string, bool)) ResolverFunc[I, []C] {
	return SelectedBy[I, C](func(item I) []string {
		if k, ok := key(item); ok {
			return []string{k}
		}

		return nil
	})
}

// RangeBy matches items whose field lies within the range.
func RangeBy[I any, T cmp.Ordered](field func(I) T) ResolverFunc[I, Range[T]] {
	return RangeByFunc(func(item I) (T, bool) { return field(item), true }, cmp.Compare[T])
}

// RangeByOptional is RangeBy for fields that may be absent.
// Items without the field are kept only when None is enabled.
func RangeByOptional[I any, T cmp.Ordered](field func(I) (T, bool)) ResolverFunc[I, Range[T]] {
	return RangeByFunc(field, cmp.Compare[T])
}

// RangeByFunc matches items whose optional field lies within the range under compare.
func RangeByFunc[I, T any](field func(I) (T, bool), compare func(a, b T) int) ResolverFunc[I, Range[T]] {
	return Where(func(item I, r Range[T], noneEnabled bool) bool {
		value, ok := field(item)
		if !ok {
			return noneEnabled
		}

		return r.Contains(value, compare)
	})
}

// KeywordsBy matches items whose text field contains every keyword.
// Empty fields are kept only when None is enabled.
func KeywordsBy[I any](field func(I) string) ResolverFunc[I, Keywords] {
	return KeywordsByOptional(func(item I) (string, bool) {
		value := field(item)
		return value, value != ""
	})
}

// KeywordsByOptional is KeywordsBy for fields that may be absent.
func KeywordsByOptional[I any](field func(I) (string, bool)) ResolverFunc[I, Keywords] {
	return Where(func(item I, k Keywords, noneEnabled bool) bool {
		value, ok := field(item)
		if !ok || value == "" {
			return noneEnabled
		}

		return k.Matches(value)
	})
}

// EqualBy matches items whose field equals the value. A nil value matches everything.
func EqualBy[I any, T comparable](field func(I) T) ResolverFunc[I, *T] {
	return EqualByOptional(func(item I) (T, bool) { return field(item), true })
}

// EqualByOptional is EqualBy for fields that may be absent. Items without the
// field are kept only when None is enabled, a nil value keeps every present field.
func EqualByOptional[I any, T comparable](field func(I) (T, bool)) ResolverFunc[I, *T] {
	return Where(func(item I, want *T, noneEnabled bool) bool {
		value, ok := field(item)
		if !ok {
			return noneEnabled
		}

		return want == nil || value == *want
	})
}

// normalizeResolver turns a nil ResolverFunc into a nil interface so missing
// wiring is detected by a single nil check.
func normalizeResolver[I, C any](r Resolver[I, C]) Resolver[I, C] {
	if f, ok := r.(ResolverFunc[I, C]); ok && f == nil {
		return nil
	}

	return r
}

func normalizeFetcher[C any](f Fetcher[C]) Fetcher[C] {
	if fn, ok := f.(FetcherFunc[C]); ok && fn == nil {
		return nil
	}

	return f
}
