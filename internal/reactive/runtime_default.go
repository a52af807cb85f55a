//go:build !wasm

package reactive

import "github.com/petermattis/goid"

func getGID() int64 {
	return goid.Get()
}
