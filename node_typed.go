package sift

import (
	"github.com/AnatoleLucet/sift/internal/reactive"
)

// MultiSelectionNode is the node of a multi-selection filter. Its nested nodes
// are the None item, if any, and one node per criterion.
type MultiSelectionNode[I any, C Criterion] struct {
	*Node[I]

	def      *MultiSelectionDefinition[I, C]
	selected *reactive.Signal[[]C]
}

func newMultiSelectionNode[I any, C Criterion](def *MultiSelectionDefinition[I, C]) *Node[I] {
	n := newNode[I](def)
	n.view = &MultiSelectionNode[I, C]{
		Node:     n,
		def:      def,
		selected: reactive.NewSignalFunc(def.container.SelectedItems(), sameIDs[C]),
	}

	return n
}

// AsMultiSelectionNode returns the typed view of a multi-selection node.
func AsMultiSelectionNode[I any, C Criterion](n *Node[I]) (*MultiSelectionNode[I, C], bool) {
	ms, ok := n.view.(*MultiSelectionNode[I, C])
	return ms, ok
}

func (n *MultiSelectionNode[I, C]) AllItems() []C {
	return n.def.container.AllItems()
}

func (n *MultiSelectionNode[I, C]) Selected() []C {
	return n.selected.Read()
}

func (n *MultiSelectionNode[I, C]) OnSelectedChange(fn func(selected []C)) (unsubscribe func()) {
	return n.selected.Subscribe(fn)
}

// SetSelected replaces the selection and refreshes the criterion nodes.
func (n *MultiSelectionNode[I, C]) SetSelected(selected []C) {
	n.mutate("SetSelected", func() {
		n.def.container.SetSelected(selected)
		n.propagate()
	})
}

// deselectCriteria empties the selection even when the criterion nodes are not
// loaded yet, so the node state keeps matching the container.
func (n *MultiSelectionNode[I, C]) deselectCriteria() {
	n.def.container.SetSelected(nil)
	n.def.container.SetNoneEnabled(false)
	n.propagate()
}

func (n *MultiSelectionNode[I, C]) resetCriteria() {
	n.def.container.Reset()
	n.propagate()
}

func (n *MultiSelectionNode[I, C]) syncCriteria() {
	n.selected.Write(n.def.container.SelectedItems())
}

func (n *MultiSelectionNode[I, C]) propagate() {
	for _, child := range n.nested.Peek() {
		child.refresh()
	}

	n.updateState()
	if n.parent != nil {
		n.parent.updateState()
	}
}

// RangeNode is the node of a range filter.
type RangeNode[I, T any] struct {
	*Node[I]

	def *RangeDefinition[I, T]
	rng *reactive.Signal[Range[T]]
}

func newRangeNode[I, T any](def *RangeDefinition[I, T]) *Node[I] {
	n := newNode[I](def)
	n.view = &RangeNode[I, T]{
		Node: n,
		def:  def,
		rng:  reactive.NewSignalFunc(def.rangeContainer.Range(), Range[T].same),
	}

	return n
}

// AsRangeNode returns the typed view of a range node.
func AsRangeNode[I, T any](n *Node[I]) (*RangeNode[I, T], bool) {
	rn, ok := n.view.(*RangeNode[I, T])
	return rn, ok
}

func (n *RangeNode[I, T]) Range() Range[T] {
	return n.rng.Read()
}

func (n *RangeNode[I, T]) OnRangeChange(fn func(r Range[T])) (unsubscribe func()) {
	return n.rng.Subscribe(fn)
}

func (n *RangeNode[I, T]) SetRange(r Range[T]) {
	n.mutate("SetRange", func() { n.setRange(r) })
}

func (n *RangeNode[I, T]) setRange(r Range[T]) {
	n.def.UpdateRange(r)
	n.rng.Write(r)

	n.updateState()
	if n.parent != nil {
		n.parent.updateState()
	}
}

func (n *RangeNode[I, T]) resetCriteria() {
	n.def.rangeContainer.Reset()
	n.setRange(Range[T]{})
}

func (n *RangeNode[I, T]) syncCriteria() {
	n.rng.Write(n.def.rangeContainer.Range())
}

// KeywordsNode is the node of a keywords filter.
type KeywordsNode[I any] struct {
	*Node[I]

	def      *KeywordsDefinition[I]
	keywords *reactive.Signal[Keywords]
}

func newKeywordsNode[I any](def *KeywordsDefinition[I]) *Node[I] {
	n := newNode[I](def)
	n.view = &KeywordsNode[I]{
		Node:     n,
		def:      def,
		keywords: reactive.NewSignalFunc(def.keywordsContainer.Keywords(), Keywords.equal),
	}

	return n
}

// AsKeywordsNode returns the typed view of a keywords node.
func AsKeywordsNode[I any](n *Node[I]) (*KeywordsNode[I], bool) {
	kn, ok := n.view.(*KeywordsNode[I])
	return kn, ok
}

func (n *KeywordsNode[I]) Keywords() Keywords {
	return n.keywords.Read()
}

func (n *KeywordsNode[I]) OnKeywordsChange(fn func(k Keywords)) (unsubscribe func()) {
	return n.keywords.Subscribe(fn)
}

func (n *KeywordsNode[I]) SetKeywords(k Keywords) {
	n.mutate("SetKeywords", func() { n.setKeywords(k) })
}

// AddKeyword appends word to the current keywords.
func (n *KeywordsNode[I]) AddKeyword(word string) {
	k := n.keywords.Peek()
	k.Add(word)
	n.SetKeywords(k)
}

// RemoveKeyword drops the keyword at index i.
func (n *KeywordsNode[I]) RemoveKeyword(i int) {
	k := n.keywords.Peek()
	k.Remove(i)
	n.SetKeywords(k)
}

func (n *KeywordsNode[I]) setKeywords(k Keywords) {
	n.def.UpdateKeywords(k)
	n.keywords.Write(k)

	n.updateState()
	if n.parent != nil {
		n.parent.updateState()
	}
}

func (n *KeywordsNode[I]) resetCriteria() {
	n.def.keywordsContainer.Reset()
	n.setKeywords(Keywords{})
}

func (n *KeywordsNode[I]) syncCriteria() {
	n.keywords.Write(n.def.keywordsContainer.Keywords())
}

// SingleValueNode is the node of a single value filter.
type SingleValueNode[I any, T comparable] struct {
	*Node[I]

	def   *SingleValueDefinition[I, T]
	value *reactive.Signal[*T]
}

func newSingleValueNode[I any, T comparable](def *SingleValueDefinition[I, T]) *Node[I] {
	n := newNode[I](def)
	n.view = &SingleValueNode[I, T]{
		Node:  n,
		def:   def,
		value: reactive.NewSignalFunc(def.valueContainer.Value(), sameValue[T]),
	}

	return n
}

// AsSingleValueNode returns the typed view of a single value node.
func AsSingleValueNode[I any, T comparable](n *Node[I]) (*SingleValueNode[I, T], bool) {
	sn, ok := n.view.(*SingleValueNode[I, T])
	return sn, ok
}

// Value returns the current value, nil when unset.
func (n *SingleValueNode[I, T]) Value() *T {
	return n.value.Read()
}

func (n *SingleValueNode[I, T]) OnValueChange(fn func(v *T)) (unsubscribe func()) {
	return n.value.Subscribe(fn)
}

func (n *SingleValueNode[I, T]) SetValue(v T) {
	n.mutate("SetValue", func() { n.setValue(&v) })
}

func (n *SingleValueNode[I, T]) ClearValue() {
	n.mutate("ClearValue", func() { n.setValue(nil) })
}

func (n *SingleValueNode[I, T]) setValue(v *T) {
	n.def.UpdateValue(v)
	n.value.Write(v)

	n.updateState()
	if n.parent != nil {
		n.parent.updateState()
	}
}

func (n *SingleValueNode[I, T]) resetCriteria() {
	n.def.valueContainer.Reset()
	n.setValue(nil)
}

func (n *SingleValueNode[I, T]) syncCriteria() {
	n.value.Write(n.def.valueContainer.Value())
}
