package reactive

// Computed is a value derived from the signals its compute function reads.
// Dependencies are collected on every run, so branches that stop reading a
// signal also stop depending on it.
type Computed[T any] struct {
	signal  *Signal[T]
	compute func() T

	sources []source
	dirty   bool
}

func NewComputed[T comparable](compute func() T) *Computed[T] {
	var zero T

	c := &Computed[T]{
		signal:  NewSignal(zero),
		compute: compute,
	}
	c.run()

	return c
}

// Read the current value, tracking the dependency if called from another computation.
func (c *Computed[T]) Read() T {
	return c.signal.Read()
}

// Subscribe registers fn to be called after the derived value changes.
func (c *Computed[T]) Subscribe(fn func(T)) func() {
	return c.signal.Subscribe(fn)
}

func (c *Computed[T]) invalidate(r *Runtime) {
	if c.dirty {
		return
	}

	c.dirty = true
	r.effectQueue.Enqueue(EffectDerived, c.run)
}

func (c *Computed[T]) addSource(s source) {
	c.sources = append(c.sources, s)
}

func (c *Computed[T]) clearSources() {
	for _, s := range c.sources {
		s.unlink(c)
	}

	c.sources = c.sources[:0]
}

func (c *Computed[T]) run() {
	c.dirty = false
	c.clearSources()

	var value T

	r := GetRuntime()
	r.tracker.RunWithComputation(c, func() { value = c.compute() })
	r.release()

	c.signal.Write(value)
}
