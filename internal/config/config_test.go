package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"), false)
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Empty(t, cfg.LogFile)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.True(t, cfg.Custom.Empty())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), true)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mode": "development",
		"log_file": "/tmp/minesweeper.log",
		"safe_neighborhood": true,
		"custom": {"width": 10, "height": 10, "mine_count": 20}
	}`), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.True(t, cfg.Development())
	assert.Equal(t, "/tmp/minesweeper.log", cfg.LogFile)
	assert.True(t, cfg.SafeNeighborhood)
	assert.Equal(t, CustomDifficulty{Width: 10, Height: 10, MineCount: 20}, cfg.Custom)
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{mode:`), 0o644))
	_, err := Load(path, false)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode": "development"}`), 0o644))

	t.Setenv("MINESWEEPER_MODE", "production")
	t.Setenv("MINESWEEPER_CUSTOM_WIDTH", "8")
	t.Setenv("MINESWEEPER_CUSTOM_HEIGHT", "8")
	t.Setenv("MINESWEEPER_CUSTOM_MINES", "12")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, CustomDifficulty{Width: 8, Height: 8, MineCount: 12}, cfg.Custom)
}
