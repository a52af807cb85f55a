package reactive

// Coordinator remembers the goroutine that owns a tree. Mutations coming
// from any other goroutine bypass the batching of the owner and may observe
// half-propagated state.
type Coordinator struct {
	gid int64
}

// NewCoordinator binds a coordinator to the calling goroutine.
func NewCoordinator() *Coordinator {
	return &Coordinator{gid: getGID()}
}

// IsCurrent reports whether the caller runs on the coordinator goroutine.
func (c *Coordinator) IsCurrent() bool {
	return c == nil || c.gid == getGID()
}
