package reactive

import (
	"sync"
)

// Runtime holds the batching and tracking state of a single goroutine.
// Every tree is mutated from one coordinator goroutine, so a runtime is never
// shared; it only lives while there is work in flight on its goroutine.
type Runtime struct {
	gid int64

	batcher     *Batcher
	tracker     *Tracker
	effectQueue *EffectQueue

	flushing bool
}

var runtimes sync.Map

func newRuntime(gid int64) *Runtime {
	return &Runtime{
		gid:         gid,
		batcher:     NewBatcher(),
		tracker:     NewTracker(),
		effectQueue: NewEffectQueue(),
	}
}

// GetRuntime returns the runtime of the calling goroutine, creating it if needed.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := newRuntime(gid)
	runtimes.Store(gid, r)
	return r
}

// lookupRuntime returns the runtime of the calling goroutine without creating one.
func lookupRuntime() (*Runtime, bool) {
	r, ok := runtimes.Load(getGID())
	if !ok {
		return nil, false
	}

	return r.(*Runtime), true
}

// Batch runs fn and defers every notification until the outermost batch completes.
func Batch(fn func()) {
	r := GetRuntime()
	r.batcher.Batch(fn, r.Flush)
	r.release()
}

func (r *Runtime) Schedule() {
	if !r.batcher.IsBatching() {
		r.Flush()
	}
}

func (r *Runtime) Flush() {
	// an outer flush drains whatever gets queued while it runs
	if r.flushing {
		return
	}

	r.flushing = true
	defer func() { r.flushing = false }()

	for !r.effectQueue.Empty() {
		r.effectQueue.RunEffects(EffectDerived)
		r.effectQueue.RunEffects(EffectUser)
	}
}

func (r *Runtime) idle() bool {
	return !r.batcher.IsBatching() &&
		!r.flushing &&
		r.tracker.CurrentComputation() == nil &&
		r.effectQueue.Empty()
}

// release drops the runtime from the registry once nothing is in flight
func (r *Runtime) release() {
	if r.idle() {
		runtimes.CompareAndDelete(r.gid, r)
	}
}
