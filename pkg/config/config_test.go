package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Greater(t, cfg.Processing.NumWorkers, 0)
	assert.Equal(t, 64, cfg.Grid.Ni)
	assert.Equal(t, 64, cfg.Grid.Nj)
	assert.Equal(t, 64, cfg.Grid.Nk)
	assert.True(t, cfg.Output.Verbose)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Processing.NumWorkers = 3
	cfg.Grid.Ni = 10
	cfg.Grid.FillValue = -1.5
	cfg.Output.SaveSlices = true
	cfg.Output.SliceDir = "out/slices"

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  ni: 12\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Grid.Ni)
	// Unset keys keep their defaults.
	assert.Equal(t, 64, cfg.Grid.Nj)
	assert.Greater(t, cfg.Processing.NumWorkers, 0)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
