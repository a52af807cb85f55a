package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, "none", info.GitCommit)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestStamped(t *testing.T) {
	defaults := Info{Version: "dev", GitCommit: "none", BuildDate: "unknown"}

	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-02-03T04:05:06Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	t.Run("fills defaults", func(t *testing.T) {
		info := stamped(defaults, bi)

		assert.Equal(t, "v0.3.0", info.Version)
		assert.Equal(t, "0123456-dirty", info.GitCommit)
		assert.Equal(t, "2026-02-03T04:05:06Z", info.BuildDate)
	})

	t.Run("injected values win", func(t *testing.T) {
		injected := Info{Version: "v1.0.0", GitCommit: "fedcba9", BuildDate: "2026-01-01"}

		assert.Equal(t, injected, stamped(injected, bi))
	})

	t.Run("devel builds keep dev", func(t *testing.T) {
		info := stamped(defaults, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

		assert.Equal(t, defaults, info)
	})
}

func TestInfo(t *testing.T) {
	info := Info{Version: "v1.2.0", GitCommit: "abc1234", BuildDate: "2026-01-02", GoVersion: "go1.25.1", Platform: "linux/amd64"}

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "sift v1.2.0 (commit: abc1234, built: 2026-01-02, go1.25.1 linux/amd64)", info.String())
	})

	t.Run("json", func(t *testing.T) {
		out, err := info.JSON()
		require.NoError(t, err)

		var parsed Info
		require.NoError(t, json.Unmarshal([]byte(out), &parsed))
		assert.Equal(t, info, parsed)
	})
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "abc1234", shortCommit("abc1234def5678"))
	assert.Equal(t, "abc", shortCommit("abc"))
}
