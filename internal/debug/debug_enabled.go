//go:build siftdebug

package debug

// Enabled is true in builds tagged with siftdebug.
const Enabled = true
