package sift

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/AnatoleLucet/sift/internal/debug"
	"github.com/AnatoleLucet/sift/internal/reactive"
)

// criteriaView is implemented by the typed nodes bound to a filter container.
type criteriaView interface {
	// resetCriteria restores the empty criteria and propagates the new state
	resetCriteria()
	// syncCriteria republishes the container criteria after a child changed them
	syncCriteria()
}

// Node is the observable runtime counterpart of a Definition.
//
// Nested nodes are loaded lazily by LoadFilterIfNeeded. Enabling or disabling a
// node writes through to its definition and recomputes every ancestor up to
// the root. A node never owns its parent.
type Node[I any] struct {
	id         uuid.UUID
	definition Definition[I]

	parent      *Node[I]
	coordinator *reactive.Coordinator
	logger      *slog.Logger

	enabled *reactive.Signal[bool]
	loading *reactive.Signal[bool]
	nested  *reactive.Signal[[]*Node[I]]

	loads  singleflight.Group
	loaded atomic.Bool

	view criteriaView
}

func newNode[I any](def Definition[I]) *Node[I] {
	return &Node[I]{
		id:          uuid.New(),
		definition:  def,
		coordinator: reactive.NewCoordinator(),
		logger:      slog.Default(),

		enabled: reactive.NewSignal(def.IsItemEnabled()),
		loading: reactive.NewSignal(false),
		nested:  reactive.NewSignalFunc[[]*Node[I]](nil, nil),
	}
}

func (n *Node[I]) ID() uuid.UUID { return n.id }

func (n *Node[I]) Title() string { return n.definition.Title() }

func (n *Node[I]) Kind() Kind { return n.definition.Kind() }

func (n *Node[I]) IsComposite() bool { return n.definition.IsComposite() }

func (n *Node[I]) IsAllActionIncluded() bool { return n.definition.IsAllActionIncluded() }

func (n *Node[I]) Definition() Definition[I] { return n.definition }

// Parent returns the node this one was loaded into, nil for a root.
func (n *Node[I]) Parent() *Node[I] { return n.parent }

func (n *Node[I]) IsItemEnabled() bool { return n.enabled.Read() }

func (n *Node[I]) IsLoading() bool { return n.loading.Read() }

func (n *Node[I]) IsLoaded() bool { return n.loaded.Load() }

func (n *Node[I]) NestedNodes() []*Node[I] {
	return slices.Clone(n.nested.Read())
}

func (n *Node[I]) OnItemEnabledChange(fn func(enabled bool)) (unsubscribe func()) {
	return n.enabled.Subscribe(fn)
}

func (n *Node[I]) OnLoadingChange(fn func(loading bool)) (unsubscribe func()) {
	return n.loading.Subscribe(fn)
}

func (n *Node[I]) OnNestedNodesChange(fn func(nested []*Node[I])) (unsubscribe func()) {
	return n.nested.Subscribe(fn)
}

// SetItemEnabled writes the state through to the definition and recomputes the ancestors.
func (n *Node[I]) SetItemEnabled(enabled bool) {
	n.mutate("SetItemEnabled", func() { n.setItemEnabled(enabled) })
}

// ResetAllFilters restores the default state of this node and its whole loaded subtree.
func (n *Node[I]) ResetAllFilters() {
	n.mutate("ResetAllFilters", n.resetAllFilters)
}

// DeselectAll disables this node and its whole loaded subtree.
func (n *Node[I]) DeselectAll() {
	n.mutate("DeselectAll", n.deselectAll)
}

// LoadFilterIfNeeded loads the nested nodes once. Calls made while a load is in
// flight wait for it, calls made after it are no-ops.
func (n *Node[I]) LoadFilterIfNeeded(ctx context.Context) {
	if n.loaded.Load() {
		return
	}

	n.loads.Do("load", func() (any, error) {
		if n.loaded.Load() {
			return nil, nil
		}

		n.loading.Write(true)
		n.logger.DebugContext(ctx, "loading filter", slog.String("title", n.Title()), slog.String("kind", n.Kind().String()))

		defs := n.definition.LoadNestedItems(ctx)

		nested := make([]*Node[I], 0, len(defs))
		for _, def := range defs {
			child := def.CreateRelatedNode()
			child.adopt(n)
			nested = append(nested, child)
		}

		reactive.Batch(func() {
			n.nested.Write(nested)
			if n.view != nil {
				n.view.syncCriteria()
			}
			n.loaded.Store(true)
			n.loading.Write(false)
		})

		n.logger.DebugContext(ctx, "filter loaded", slog.String("title", n.Title()), slog.Int("nested", len(nested)))

		return nil, nil
	})
}

// LoadAll loads this node and every node below it.
func (n *Node[I]) LoadAll(ctx context.Context) {
	n.LoadFilterIfNeeded(ctx)

	for _, child := range n.nested.Peek() {
		if ctx.Err() != nil {
			return
		}

		child.LoadAll(ctx)
	}
}

// FilteredData applies this node's filter, then every nested node in order.
// Groups contribute no predicate, so the result is the conjunction of every
// active filter of the loaded subtree.
func (n *Node[I]) FilteredData(items []I) []I {
	filtered := n.definition.FilteredItems(items)

	for _, child := range n.nested.Peek() {
		filtered = child.FilteredData(filtered)
	}

	return filtered
}

func (n *Node[I]) setItemEnabled(enabled bool) {
	n.definition.SetItemEnabled(enabled)
	n.enabled.Write(enabled)

	if n.parent != nil {
		n.parent.updateState()
	}
}

func (n *Node[I]) updateState() {
	n.definition.UpdateState()

	if n.view != nil {
		n.view.syncCriteria()
	}

	n.setItemEnabled(n.definition.IsItemEnabled())
}

func (n *Node[I]) resetAllFilters() {
	if n.view != nil {
		n.view.resetCriteria()
	} else {
		n.setItemEnabled(true)
	}

	for _, child := range n.nested.Peek() {
		child.resetAllFilters()
	}
}

func (n *Node[I]) deselectAll() {
	if d, ok := n.view.(interface{ deselectCriteria() }); ok {
		d.deselectCriteria()
	} else {
		n.setItemEnabled(false)
	}

	for _, child := range n.nested.Peek() {
		child.deselectAll()
	}
}

// refresh republishes the definition state without propagating it
func (n *Node[I]) refresh() {
	n.enabled.Write(n.definition.IsItemEnabled())
}

func (n *Node[I]) adopt(parent *Node[I]) {
	n.parent = parent
	n.logger = parent.logger
}

func (n *Node[I]) root() *Node[I] {
	root := n
	for root.parent != nil {
		root = root.parent
	}

	return root
}

// mutate runs fn as a single batch so listeners observe the tree once fully propagated.
func (n *Node[I]) mutate(op string, fn func()) {
	debug.Assert(n.logger, n.root().coordinator.IsCurrent(),
		"filter tree mutated outside its coordinator goroutine",
		slog.String("op", op), slog.String("title", n.Title()))

	reactive.Batch(fn)
}
