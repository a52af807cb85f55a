package sift

import (
	"context"
	"log/slog"
)

// MultiSelectionDefinition filters items by a subset of fetched criteria.
// Its children are an optional None item followed by one item per criterion.
type MultiSelectionDefinition[I any, C Criterion] struct {
	definition

	container *MultiSelectionContainer[I, C]
	noneTitle string
	logger    *slog.Logger
}

// NewMultiSelection creates a multi-selection filter over the criteria supplied by fetcher.
func NewMultiSelection[I any, C Criterion](title string, resolver Resolver[I, []C], fetcher Fetcher[C], opts ...Option) *MultiSelectionDefinition[I, C] {
	return NewMultiSelectionWith(title, NewMultiSelectionContainer(resolver, fetcher, opts...), opts...)
}

// NewMultiSelectionWith wraps an existing container.
func NewMultiSelectionWith[I any, C Criterion](title string, container *MultiSelectionContainer[I, C], opts ...Option) *MultiSelectionDefinition[I, C] {
	o := buildOptions(opts)

	d := &MultiSelectionDefinition[I, C]{
		definition: definition{title: title},
		container:  container,
		noneTitle:  o.noneTitle,
		logger:     o.logger,
	}
	d.UpdateState()

	return d
}

func (d *MultiSelectionDefinition[I, C]) Kind() Kind { return KindMultiSelection }

func (d *MultiSelectionDefinition[I, C]) IsComposite() bool { return true }

func (d *MultiSelectionDefinition[I, C]) IsAllActionIncluded() bool { return true }

func (d *MultiSelectionDefinition[I, C]) Container() *MultiSelectionContainer[I, C] {
	return d.container
}

func (d *MultiSelectionDefinition[I, C]) LoadNestedItems(ctx context.Context) []Definition[I] {
	fetched := d.container.InitializeFilter(ctx)

	nested := make([]Definition[I], 0, len(fetched)+1)
	if d.container.NoneIncluded() {
		nested = append(nested, NewNoneItem[I](d.noneTitle, d.container))
	}

	for _, criterion := range fetched {
		nested = append(nested, NewSelectableItem(criterion, d.container))
	}

	return nested
}

func (d *MultiSelectionDefinition[I, C]) UpdateState() {
	d.enabled = !d.container.IsFilterActive()
}

func (d *MultiSelectionDefinition[I, C]) CreateRelatedNode() *Node[I] {
	return newMultiSelectionNode(d)
}

func (d *MultiSelectionDefinition[I, C]) FilteredItems(items []I) []I {
	return d.container.FilterItems(items)
}

func (d *MultiSelectionDefinition[I, C]) prefetch(ctx context.Context) {
	d.container.InitializeFilter(ctx)
}

// nullableDefinition holds what Range, Keywords and SingleValue filters share:
// an optional None child and an enabled state derived from the container.
type nullableDefinition struct {
	definition

	container interface {
		NullableContainer
		IsFilterActive() bool
	}
	noneTitle string
}

func (d *nullableDefinition) IsComposite() bool { return false }

func (d *nullableDefinition) UpdateState() {
	d.enabled = !d.container.IsFilterActive()
}

func loadNoneItem[I any](d *nullableDefinition) []Definition[I] {
	if !d.container.NoneIncluded() {
		return nil
	}

	return []Definition[I]{NewNoneItem[I](d.noneTitle, d.container)}
}

// RangeDefinition filters items by a field lying between optional bounds.
type RangeDefinition[I, T any] struct {
	nullableDefinition

	rangeContainer *RangeContainer[I, T]
}

func NewRange[I, T any](title string, resolver Resolver[I, Range[T]], opts ...Option) *RangeDefinition[I, T] {
	return NewRangeWith(title, NewRangeContainer(resolver, opts...), opts...)
}

func NewRangeWith[I, T any](title string, container *RangeContainer[I, T], opts ...Option) *RangeDefinition[I, T] {
	o := buildOptions(opts)

	d := &RangeDefinition[I, T]{
		nullableDefinition: nullableDefinition{
			definition: definition{title: title},
			container:  container,
			noneTitle:  o.noneTitle,
		},
		rangeContainer: container,
	}
	d.UpdateState()

	return d
}

func (d *RangeDefinition[I, T]) Kind() Kind { return KindRange }

func (d *RangeDefinition[I, T]) Container() *RangeContainer[I, T] { return d.rangeContainer }

func (d *RangeDefinition[I, T]) LoadNestedItems(context.Context) []Definition[I] {
	return loadNoneItem[I](&d.nullableDefinition)
}

func (d *RangeDefinition[I, T]) UpdateRange(r Range[T]) {
	d.rangeContainer.SetRange(r)
}

func (d *RangeDefinition[I, T]) CreateRelatedNode() *Node[I] {
	return newRangeNode(d)
}

func (d *RangeDefinition[I, T]) FilteredItems(items []I) []I {
	return d.rangeContainer.FilterItems(items)
}

// KeywordsDefinition filters items by a text field containing every keyword.
type KeywordsDefinition[I any] struct {
	nullableDefinition

	keywordsContainer *KeywordsContainer[I]
}

func NewKeywords[I any](title string, resolver Resolver[I, Keywords], opts ...Option) *KeywordsDefinition[I] {
	return NewKeywordsWith(title, NewKeywordsContainer(resolver, opts...), opts...)
}

func NewKeywordsWith[I any](title string, container *KeywordsContainer[I], opts ...Option) *KeywordsDefinition[I] {
	o := buildOptions(opts)

	d := &KeywordsDefinition[I]{
		nullableDefinition: nullableDefinition{
			definition: definition{title: title},
			container:  container,
			noneTitle:  o.noneTitle,
		},
		keywordsContainer: container,
	}
	d.UpdateState()

	return d
}

func (d *KeywordsDefinition[I]) Kind() Kind { return KindKeywords }

func (d *KeywordsDefinition[I]) Container() *KeywordsContainer[I] { return d.keywordsContainer }

func (d *KeywordsDefinition[I]) LoadNestedItems(context.Context) []Definition[I] {
	return loadNoneItem[I](&d.nullableDefinition)
}

func (d *KeywordsDefinition[I]) UpdateKeywords(k Keywords) {
	d.keywordsContainer.SetKeywords(k)
}

func (d *KeywordsDefinition[I]) CreateRelatedNode() *Node[I] {
	return newKeywordsNode(d)
}

func (d *KeywordsDefinition[I]) FilteredItems(items []I) []I {
	return d.keywordsContainer.FilterItems(items)
}

// SingleValueDefinition filters items by a field equal to one value.
type SingleValueDefinition[I any, T comparable] struct {
	nullableDefinition

	valueContainer *SingleValueContainer[I, T]
}

func NewSingleValue[I any, T comparable](title string, resolver Resolver[I, *T], opts ...Option) *SingleValueDefinition[I, T] {
	return NewSingleValueWith(title, NewSingleValueContainer(resolver, opts...), opts...)
}

func NewSingleValueWith[I any, T comparable](title string, container *SingleValueContainer[I, T], opts ...Option) *SingleValueDefinition[I, T] {
	o := buildOptions(opts)

	d := &SingleValueDefinition[I, T]{
		nullableDefinition: nullableDefinition{
			definition: definition{title: title},
			container:  container,
			noneTitle:  o.noneTitle,
		},
		valueContainer: container,
	}
	d.UpdateState()

	return d
}

func (d *SingleValueDefinition[I, T]) Kind() Kind { return KindSingleValue }

func (d *SingleValueDefinition[I, T]) Container() *SingleValueContainer[I, T] {
	return d.valueContainer
}

func (d *SingleValueDefinition[I, T]) LoadNestedItems(context.Context) []Definition[I] {
	return loadNoneItem[I](&d.nullableDefinition)
}

// UpdateValue sets the value, nil clears it.
func (d *SingleValueDefinition[I, T]) UpdateValue(v *T) {
	d.valueContainer.SetValue(v)
}

func (d *SingleValueDefinition[I, T]) CreateRelatedNode() *Node[I] {
	return newSingleValueNode(d)
}

func (d *SingleValueDefinition[I, T]) FilteredItems(items []I) []I {
	return d.valueContainer.FilterItems(items)
}
