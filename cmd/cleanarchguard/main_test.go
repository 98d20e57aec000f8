package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nallow_violations: [legacy]\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, []string{"legacy"}, cfg.AllowedViolations)

	require.NoError(t, os.WriteFile(path, []byte("version: 3\n"), 0o600))
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestAddAliases(t *testing.T) {
	got := map[string]cleanarch.Layer{}
	addAliases(got, nil, defaultApplicationAliases, cleanarch.LayerApplication)
	addAliases(got, []string{"web", ""}, defaultInterfacesAliases, cleanarch.LayerInterfaces)
	assert.Equal(t, map[string]cleanarch.Layer{
		"services": cleanarch.LayerApplication,
		"web":      cleanarch.LayerInterfaces,
	}, got)
}

func TestAllowed(t *testing.T) {
	assert.True(t, allowed("domain imports infrastructure in legacy/x", []string{"legacy"}))
	assert.False(t, allowed("domain imports infrastructure", []string{"", "other"}))
}
