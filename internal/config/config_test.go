package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StoreFile, cfg.Cache.Store)
	assert.Equal(t, 12, cfg.Planner.HorizonTerms)
	assert.Equal(t, []int{3, 5}, cfg.Planner.TermLoads)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
cache:
  store: memory
planner:
  horizon_terms: 6
  term_loads: [4]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Cache.Store)
	assert.Equal(t, 6, cfg.Planner.HorizonTerms)
	assert.Equal(t, []int{4}, cfg.Planner.TermLoads)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("CACHE_STORE", "memory")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Cache.Store)
}

func TestLoadConfig_UnknownStore(t *testing.T) {
	path := writeConfig(t, "cache:\n  store: redis\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_AuthRequiresSecret(t *testing.T) {
	path := writeConfig(t, "auth:\n  enabled: true\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidCatalogTimeout(t *testing.T) {
	path := writeConfig(t, "catalog:\n  timeout: soon\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
