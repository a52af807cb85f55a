//go:build wasm

package reactive

// wasm runs a single goroutine scheduler thread, one runtime is enough
func getGID() int64 {
	return 0
}
