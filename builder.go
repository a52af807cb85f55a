package sift

import "slices"

// Composer contributes a reusable set of definitions to a builder.
type Composer[I any] interface {
	Compose(b *Builder[I])
}

// ComposerFunc adapts a function to a Composer.
type ComposerFunc[I any] func(b *Builder[I])

func (f ComposerFunc[I]) Compose(b *Builder[I]) { f(b) }

// Builder assembles the ordered definitions handed to a Core.
// It holds no runtime state and performs no I/O.
type Builder[I any] struct {
	defs []Definition[I]
}

func NewBuilder[I any]() *Builder[I] {
	return &Builder[I]{}
}

// Add appends definitions in order.
func (b *Builder[I]) Add(defs ...Definition[I]) *Builder[I] {
	b.defs = append(b.defs, defs...)
	return b
}

// Group appends one master definition titled title wrapping whatever build adds.
func (b *Builder[I]) Group(title string, build func(g *Builder[I])) *Builder[I] {
	g := NewBuilder[I]()
	if build != nil {
		build(g)
	}

	return b.Add(NewMaster(title, g.defs...))
}

// If runs build only when cond holds.
func (b *Builder[I]) If(cond bool, build func(b *Builder[I])) *Builder[I] {
	if cond && build != nil {
		build(b)
	}

	return b
}

// IfElse runs then when cond holds, otherwise the other branch.
func (b *Builder[I]) IfElse(cond bool, then, otherwise func(b *Builder[I])) *Builder[I] {
	if cond {
		return b.If(true, then)
	}

	return b.If(true, otherwise)
}

// Include lets each composer add its definitions in place.
func (b *Builder[I]) Include(composers ...Composer[I]) *Builder[I] {
	for _, c := range composers {
		c.Compose(b)
	}

	return b
}

func (b *Builder[I]) Build() []Definition[I] {
	return slices.Clone(b.defs)
}

// ForEach runs build once per element, in order.
func ForEach[I, E any](b *Builder[I], elems []E, build func(b *Builder[I], elem E)) *Builder[I] {
	for _, elem := range elems {
		build(b, elem)
	}

	return b
}
