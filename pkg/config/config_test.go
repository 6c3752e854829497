package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoRingKit/pkg/errdef"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeProfile(t, `
iterations: 2
duration: 250ms
capacities: [8]
bursts: [3, 9]
implementations: [Queue]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Iterations)
	assert.Equal(t, 250*time.Millisecond, cfg.Duration)
	assert.Equal(t, "test-results.json", cfg.Output)
	assert.Equal(t, []Workload{
		{InitialCapacity: 8, Burst: 3},
		{InitialCapacity: 8, Burst: 9},
	}, cfg.Workloads())
	assert.True(t, cfg.Selected("Queue"))
	assert.False(t, cfg.Selected("Stack"))
	assert.True(t, Default().Selected("Stack"))
}

func TestLoadRejectsBadProfiles(t *testing.T) {
	cases := map[string]string{
		"zero capacity":  "capacities: [0]\n",
		"negative burst": "bursts: [4, -1]\n",
		"no iterations":  "iterations: 0\n",
		"bad yaml":       "bursts: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeProfile(t, body))
			require.Error(t, err)
			assert.True(t, errdef.Is(err, errdef.CodeConfig))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, errdef.CodeConfig, errdef.CodeOf(err))
}
