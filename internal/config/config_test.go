package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Engine)
	assert.Equal(t, filepath.Join(dir, "nested", DefaultDBName), cfg.DBPath)
	assert.Equal(t, "q", cfg.Keys.Quit)

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
engine = "json"
db_path = "data/kirei.json"
catalog_path = "/etc/kirei/catalog.toml"
verbose = true

[keys]
quit = "Q"
`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Engine)
	assert.Equal(t, filepath.Join(dir, "data", "kirei.json"), cfg.DBPath)
	assert.Equal(t, "/etc/kirei/catalog.toml", cfg.CatalogPath)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "Q", cfg.Keys.Quit)
	assert.Equal(t, "h", cfg.Keys.Left, "unset keys keep their defaults")
}

func TestLoadOrCreateKeepsDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`db_path = "file:kirei?mode=memory"`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "file:kirei?mode=memory", cfg.DBPath)
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("engine = "), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/kirei.toml")
	assert.Equal(t, "/tmp/kirei.toml", ResolveConfigPath())
}
