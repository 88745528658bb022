package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.False(t, cfg.Repl.Color)
	assert.Equal(t, ".corvid_history", cfg.Repl.History)
	assert.Equal(t, 2, cfg.Dump.Indent)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvid.toml")
	contents := "[repl]\ncolor = true\n\n[dump]\nindent = 4\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Repl.Color)
	assert.Equal(t, 4, cfg.Dump.Indent)
	// History was left unset in the TOML, so the default survives.
	assert.Equal(t, ".corvid_history", cfg.Repl.History)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvid.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid toml :::"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
