//go:build !siftdebug

package debug

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssert(t *testing.T) {
	t.Run("passes through true conditions silently", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		assert.True(t, Assert(logger, true, "never logged"))
		assert.Empty(t, buf.String())
	})

	t.Run("logs a warning in release builds", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		ok := Assert(logger, false, "resolver not set", "filter", "Type")

		assert.False(t, ok)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "resolver not set")
		assert.Contains(t, buf.String(), "filter=Type")
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		assert.False(t, Assert(nil, false, "fetcher not set"))
	})
}
