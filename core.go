// Package sift composes independent filter criteria into an observable tree
// and computes the filtered collection on demand.
//
// Definitions describe each filter, a Builder assembles them, and a Core turns
// them into a tree of Nodes. Enabling, disabling or editing a node updates its
// filter and every ancestor; FilteredData narrows a slice by every active filter.
package sift

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/AnatoleLucet/sift/internal/reactive"
)

// Core owns the definitions of a filter tree and its lazily composed root node.
type Core[I any] struct {
	title string
	defs  []Definition[I]

	logger *slog.Logger

	root   *reactive.Signal[*Node[I]]
	active *reactive.Computed[bool]
}

// New creates a core titled title over the builder output defs.
func New[I any](title string, defs []Definition[I], opts ...Option) *Core[I] {
	o := buildOptions(opts)

	c := &Core[I]{
		title:  title,
		defs:   defs,
		logger: o.logger,
		root:   reactive.NewSignal[*Node[I]](nil),
	}

	c.active = reactive.NewComputed(func() bool {
		root := c.root.Read()
		if root == nil {
			return false
		}

		return !root.IsItemEnabled()
	})

	return c
}

func (c *Core[I]) Title() string { return c.title }

// Root returns the root node, nil until Compose.
func (c *Core[I]) Root() *Node[I] { return c.root.Peek() }

// Compose wraps every definition in one master and creates the root node.
// Only the first call has an effect.
func (c *Core[I]) Compose() *Node[I] {
	if root := c.root.Peek(); root != nil {
		return root
	}

	root := NewMaster(c.title, c.defs...).CreateRelatedNode()
	root.logger = c.logger
	c.root.Write(root)

	c.logger.Debug("filters composed", slog.String("title", c.title), slog.Int("filters", len(c.defs)))

	return root
}

// Load composes the tree and loads the first level below the root.
func (c *Core[I]) Load(ctx context.Context) *Node[I] {
	root := c.Compose()
	root.LoadFilterIfNeeded(ctx)

	return root
}

// LoadAll composes the tree and loads every node.
func (c *Core[I]) LoadAll(ctx context.Context) *Node[I] {
	root := c.Compose()
	root.LoadAll(ctx)

	return root
}

// Preload fetches the universe of every multi-selection filter concurrently so
// later loads return without waiting on fetchers.
func (c *Core[I]) Preload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	var walk func(defs []Definition[I])
	walk = func(defs []Definition[I]) {
		for _, def := range defs {
			switch d := def.(type) {
			case *MasterDefinition[I]:
				walk(d.children)
			case interface{ prefetch(context.Context) }:
				g.Go(func() error {
					d.prefetch(gctx)
					return gctx.Err()
				})
			}
		}
	}
	walk(c.defs)

	return g.Wait()
}

// FilteredData returns items narrowed by every active filter, or items
// unchanged before Compose.
func (c *Core[I]) FilteredData(items []I) []I {
	root := c.root.Peek()
	if root == nil {
		return items
	}

	return root.FilteredData(items)
}

// ResetFilters restores every loaded filter to its default state.
func (c *Core[I]) ResetFilters() {
	if root := c.root.Peek(); root != nil {
		root.ResetAllFilters()
	}
}

// IsFilterActive is true when any filter of the tree narrows the data.
func (c *Core[I]) IsFilterActive() bool {
	return c.active.Read()
}

// OnFilterActiveChange calls fn each time IsFilterActive flips.
func (c *Core[I]) OnFilterActiveChange(fn func(active bool)) (unsubscribe func()) {
	return c.active.Subscribe(fn)
}
