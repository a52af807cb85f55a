package reactive

// dependent is anything that recomputes when one of the signals it read changes.
type dependent interface {
	invalidate(r *Runtime)
	addSource(s source)
}

// source is anything a dependent can read from.
type source interface {
	unlink(d dependent)
}

type Tracker struct {
	currentComputation dependent
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) RunWithComputation(node dependent, fn func()) {
	prev := t.currentComputation
	t.currentComputation = node
	defer func() { t.currentComputation = prev }()

	fn()
}

func (t *Tracker) CurrentComputation() dependent {
	return t.currentComputation
}

func (t *Tracker) ShouldTrack() bool {
	return t.currentComputation != nil
}
