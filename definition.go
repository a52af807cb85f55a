package sift

import (
	"context"
	"slices"
)

// Kind identifies the variant of a Definition.
type Kind int

const (
	KindMaster Kind = iota
	KindMultiSelection
	KindRange
	KindKeywords
	KindSingleValue
	KindNone
	KindSelectable
)

func (k Kind) String() string {
	switch k {
	case KindMaster:
		return "master"
	case KindMultiSelection:
		return "multi-selection"
	case KindRange:
		return "range"
	case KindKeywords:
		return "keywords"
	case KindSingleValue:
		return "single-value"
	case KindNone:
		return "none"
	case KindSelectable:
		return "selectable"
	default:
		return "unknown"
	}
}

// Definition describes one filter dimension of items of type I.
// The set of variants is closed, see Kind.
type Definition[I any] interface {
	Title() string
	Kind() Kind
	IsComposite() bool
	IsAllActionIncluded() bool

	// IsItemEnabled is true when the definition filters nothing.
	IsItemEnabled() bool
	SetItemEnabled(enabled bool)

	// LoadNestedItems returns the children, fetching them if needed.
	LoadNestedItems(ctx context.Context) []Definition[I]

	// UpdateState recomputes IsItemEnabled from the container or the children.
	UpdateState()

	CreateRelatedNode() *Node[I]

	FilteredItems(items []I) []I

	sealed()
}

type definition struct {
	title   string
	enabled bool
}

func (d *definition) Title() string { return d.title }

func (d *definition) IsItemEnabled() bool { return d.enabled }

func (d *definition) SetItemEnabled(enabled bool) { d.enabled = enabled }

func (d *definition) IsAllActionIncluded() bool { return false }

func (d *definition) sealed() {}

// MasterDefinition bundles child definitions under one title.
// It is enabled when every child is enabled and filters nothing itself.
type MasterDefinition[I any] struct {
	definition

	children []Definition[I]
}

func NewMaster[I any](title string, children ...Definition[I]) *MasterDefinition[I] {
	m := &MasterDefinition[I]{
		definition: definition{title: title},
		children:   slices.Clone(children),
	}
	m.UpdateState()

	return m
}

func (m *MasterDefinition[I]) Kind() Kind { return KindMaster }

func (m *MasterDefinition[I]) IsComposite() bool { return true }

func (m *MasterDefinition[I]) Children() []Definition[I] {
	return slices.Clone(m.children)
}

func (m *MasterDefinition[I]) LoadNestedItems(context.Context) []Definition[I] {
	return m.Children()
}

func (m *MasterDefinition[I]) UpdateState() {
	m.enabled = !slices.ContainsFunc(m.children, func(child Definition[I]) bool {
		return !child.IsItemEnabled()
	})
}

func (m *MasterDefinition[I]) CreateRelatedNode() *Node[I] {
	return newNode[I](m)
}

func (m *MasterDefinition[I]) FilteredItems(items []I) []I { return items }

// NoneItemDefinition toggles whether items with an absent field pass the owning filter.
type NoneItemDefinition[I any] struct {
	definition

	container NullableContainer
}

func NewNoneItem[I any](title string, container NullableContainer) *NoneItemDefinition[I] {
	return &NoneItemDefinition[I]{
		definition: definition{title: title},
		container:  container,
	}
}

func (n *NoneItemDefinition[I]) Kind() Kind { return KindNone }

func (n *NoneItemDefinition[I]) IsComposite() bool { return false }

func (n *NoneItemDefinition[I]) IsItemEnabled() bool {
	return n.container.NoneEnabled()
}

func (n *NoneItemDefinition[I]) SetItemEnabled(enabled bool) {
	n.container.SetNoneEnabled(enabled)
}

func (n *NoneItemDefinition[I]) LoadNestedItems(context.Context) []Definition[I] { return nil }

func (n *NoneItemDefinition[I]) UpdateState() {}

func (n *NoneItemDefinition[I]) CreateRelatedNode() *Node[I] {
	return newNode[I](n)
}

func (n *NoneItemDefinition[I]) FilteredItems(items []I) []I { return items }

// SelectableItemDefinition is one criterion of a multi-selection filter.
// It is enabled while the criterion is selected.
type SelectableItemDefinition[I any, C Criterion] struct {
	definition

	criterion C
	container *MultiSelectionContainer[I, C]
}

func NewSelectableItem[I any, C Criterion](criterion C, container *MultiSelectionContainer[I, C]) *SelectableItemDefinition[I, C] {
	return &SelectableItemDefinition[I, C]{
		definition: definition{title: criterion.Title()},
		criterion:  criterion,
		container:  container,
	}
}

func (s *SelectableItemDefinition[I, C]) Kind() Kind { return KindSelectable }

func (s *SelectableItemDefinition[I, C]) IsComposite() bool { return false }

func (s *SelectableItemDefinition[I, C]) Criterion() C { return s.criterion }

func (s *SelectableItemDefinition[I, C]) IsItemEnabled() bool {
	return s.container.IsItemSelected(s.criterion)
}

func (s *SelectableItemDefinition[I, C]) SetItemEnabled(enabled bool) {
	if enabled {
		s.container.Select(s.criterion)
	} else {
		s.container.Deselect(s.criterion)
	}
}

func (s *SelectableItemDefinition[I, C]) LoadNestedItems(context.Context) []Definition[I] { return nil }

func (s *SelectableItemDefinition[I, C]) UpdateState() {}

func (s *SelectableItemDefinition[I, C]) CreateRelatedNode() *Node[I] {
	return newNode[I](s)
}

func (s *SelectableItemDefinition[I, C]) FilteredItems(items []I) []I { return items }
