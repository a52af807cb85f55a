package sift

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/AnatoleLucet/sift/internal/debug"
)

// Container holds the criteria of one filter and applies them.
// An inactive container returns its input untouched.
type Container[I any] interface {
	IsFilterActive() bool
	FilterItems(items []I) []I
}

// NullableContainer is a container able to match items whose field is absent.
type NullableContainer interface {
	NoneIncluded() bool
	NoneEnabled() bool
	SetNoneEnabled(enabled bool)
}

type nullable struct {
	noneIncluded bool
	noneEnabled  bool
}

func newNullable(included bool) nullable {
	return nullable{noneIncluded: included, noneEnabled: included}
}

func (n *nullable) NoneIncluded() bool { return n.noneIncluded }

func (n *nullable) NoneEnabled() bool { return n.noneEnabled }

func (n *nullable) SetNoneEnabled(enabled bool) { n.noneEnabled = enabled }

func (n *nullable) resetNone() { n.noneEnabled = n.noneIncluded }

// isActive folds the None state into the kind specific criteria state.
func (n *nullable) isActive(criteriaSet bool) bool {
	if n.noneIncluded {
		return criteriaSet || !n.noneEnabled
	}

	return criteriaSet
}

// MultiSelectionContainer keeps the selected subset of a fetched universe.
// Everything selected is the default, inactive state.
type MultiSelectionContainer[I any, C Criterion] struct {
	nullable

	resolver Resolver[I, []C]
	fetcher  Fetcher[C]
	logger   *slog.Logger

	init        singleflight.Group
	mu          sync.RWMutex
	initialized bool
	all         []C
	selected    []C
}

func NewMultiSelectionContainer[I any, C Criterion](resolver Resolver[I, []C], fetcher Fetcher[C], opts ...Option) *MultiSelectionContainer[I, C] {
	o := buildOptions(opts)

	return &MultiSelectionContainer[I, C]{
		nullable: newNullable(o.noneIncluded),
		resolver: normalizeResolver(resolver),
		fetcher:  normalizeFetcher(fetcher),
		logger:   o.logger,
	}
}

// InitializeFilter fetches the universe once and selects all of it.
// Later and concurrent calls share the first result and leave the selection alone.
func (c *MultiSelectionContainer[I, C]) InitializeFilter(ctx context.Context) []C {
	v, _, _ := c.init.Do("init", func() (any, error) {
		c.mu.RLock()
		initialized, all := c.initialized, c.all
		c.mu.RUnlock()

		if initialized {
			return all, nil
		}

		fetched := c.fetch(ctx)

		c.mu.Lock()
		c.all = slices.Clone(fetched)
		c.selected = slices.Clone(fetched)
		c.initialized = true
		c.mu.Unlock()

		return fetched, nil
	})

	return slices.Clone(v.([]C))
}

func (c *MultiSelectionContainer[I, C]) fetch(ctx context.Context) []C {
	if !debug.Assert(c.logger, c.fetcher != nil, "multi-selection fetcher is not set, using an empty universe") {
		return []C{}
	}

	fetched := c.fetcher.FetchFilterItems(ctx)
	c.logger.DebugContext(ctx, "fetched filter criteria", slog.Int("count", len(fetched)))

	if fetched == nil {
		return []C{}
	}

	return fetched
}

func (c *MultiSelectionContainer[I, C]) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.initialized
}

func (c *MultiSelectionContainer[I, C]) AllItems() []C {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.all)
}

func (c *MultiSelectionContainer[I, C]) SelectedItems() []C {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.selected)
}

func (c *MultiSelectionContainer[I, C]) IsFilterActive() bool {
	c.mu.RLock()
	allSelected := len(c.all) == len(c.selected)
	c.mu.RUnlock()

	return c.isActive(!allSelected)
}

func (c *MultiSelectionContainer[I, C]) FilterItems(items []I) []I {
	if !c.IsFilterActive() {
		return items
	}

	if !debug.Assert(c.logger, c.resolver != nil, "multi-selection resolver is not set, filter is ignored") {
		return items
	}

	return c.resolver.FilterItems(items, c.SelectedItems(), c.noneEnabled)
}

func (c *MultiSelectionContainer[I, C]) IsItemSelected(item C) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.indexOf(item) >= 0
}

// Select adds item to the selection unless it is already selected or is not
// part of the fetched universe.
func (c *MultiSelectionContainer[I, C]) Select(item C) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(item) >= 0 {
		return
	}

	i := slices.IndexFunc(c.all, func(known C) bool { return known.ID() == item.ID() })
	if i < 0 {
		c.logger.Debug("ignoring selection outside the universe", slog.String("id", item.ID()))
		return
	}

	c.selected = append(c.selected, c.all[i])
}

func (c *MultiSelectionContainer[I, C]) Deselect(item C) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = slices.DeleteFunc(c.selected, func(selected C) bool {
		return selected.ID() == item.ID()
	})
}

// SetSelected replaces the selection with the members of the universe found in
// items, in universe order.
func (c *MultiSelectionContainer[I, C]) SetSelected(items []C) {
	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		ids[item.ID()] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	selected := make([]C, 0, len(items))
	for _, item := range c.all {
		if _, ok := ids[item.ID()]; ok {
			selected = append(selected, item)
		}
	}
	c.selected = selected
}

// Reset selects the whole universe and restores the None default.
func (c *MultiSelectionContainer[I, C]) Reset() {
	c.mu.Lock()
	c.selected = slices.Clone(c.all)
	c.mu.Unlock()

	c.resetNone()
}

func (c *MultiSelectionContainer[I, C]) indexOf(item C) int {
	return slices.IndexFunc(c.selected, func(selected C) bool {
		return selected.ID() == item.ID()
	})
}

// RangeContainer keeps optional lower and upper bounds.
type RangeContainer[I, T any] struct {
	nullable

	resolver Resolver[I, Range[T]]
	logger   *slog.Logger

	rng Range[T]
}

func NewRangeContainer[I, T any](resolver Resolver[I, Range[T]], opts ...Option) *RangeContainer[I, T] {
	o := buildOptions(opts)

	return &RangeContainer[I, T]{
		nullable: newNullable(o.noneIncluded),
		resolver: normalizeResolver(resolver),
		logger:   o.logger,
	}
}

func (c *RangeContainer[I, T]) Range() Range[T] { return c.rng }

func (c *RangeContainer[I, T]) SetRange(r Range[T]) { c.rng = r }

func (c *RangeContainer[I, T]) Reset() {
	c.rng = Range[T]{}
	c.resetNone()
}

func (c *RangeContainer[I, T]) IsFilterActive() bool {
	return c.isActive(!c.rng.IsEmpty())
}

func (c *RangeContainer[I, T]) FilterItems(items []I) []I {
	if !c.IsFilterActive() {
		return items
	}

	if !debug.Assert(c.logger, c.resolver != nil, "range resolver is not set, filter is ignored") {
		return items
	}

	return c.resolver.FilterItems(items, c.rng, c.noneEnabled)
}

// KeywordsContainer keeps the keywords a text field must contain.
type KeywordsContainer[I any] struct {
	nullable

	resolver Resolver[I, Keywords]
	logger   *slog.Logger

	keywords Keywords
}

func NewKeywordsContainer[I any](resolver Resolver[I, Keywords], opts ...Option) *KeywordsContainer[I] {
	o := buildOptions(opts)

	return &KeywordsContainer[I]{
		nullable: newNullable(o.noneIncluded),
		resolver: normalizeResolver(resolver),
		logger:   o.logger,
	}
}

func (c *KeywordsContainer[I]) Keywords() Keywords { return c.keywords }

func (c *KeywordsContainer[I]) SetKeywords(k Keywords) { c.keywords = k }

func (c *KeywordsContainer[I]) Reset() {
	c.keywords.Reset()
	c.resetNone()
}

func (c *KeywordsContainer[I]) IsFilterActive() bool {
	return c.isActive(!c.keywords.IsEmpty())
}

func (c *KeywordsContainer[I]) FilterItems(items []I) []I {
	if !c.IsFilterActive() {
		return items
	}

	if !debug.Assert(c.logger, c.resolver != nil, "keywords resolver is not set, filter is ignored") {
		return items
	}

	return c.resolver.FilterItems(items, c.keywords, c.noneEnabled)
}

// SingleValueContainer keeps one optional value items are compared to.
type SingleValueContainer[I any, T comparable] struct {
	nullable

	resolver Resolver[I, *T]
	logger   *slog.Logger

	value *T
}

func NewSingleValueContainer[I any, T comparable](resolver Resolver[I, *T], opts ...Option) *SingleValueContainer[I, T] {
	o := buildOptions(opts)

	return &SingleValueContainer[I, T]{
		nullable: newNullable(o.noneIncluded),
		resolver: normalizeResolver(resolver),
		logger:   o.logger,
	}
}

// Value returns the current value, nil when unset.
func (c *SingleValueContainer[I, T]) Value() *T { return c.value }

func (c *SingleValueContainer[I, T]) SetValue(v *T) { c.value = v }

func (c *SingleValueContainer[I, T]) Reset() {
	c.value = nil
	c.resetNone()
}

func (c *SingleValueContainer[I, T]) IsFilterActive() bool {
	return c.isActive(c.value != nil)
}

// FilterItems hands a nil value to the resolver when only None is disabled.
func (c *SingleValueContainer[I, T]) FilterItems(items []I) []I {
	if !c.IsFilterActive() {
		return items
	}

	if !debug.Assert(c.logger, c.resolver != nil, "single value resolver is not set, filter is ignored") {
		return items
	}

	return c.resolver.FilterItems(items, c.value, c.noneEnabled)
}

func sameValue[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
