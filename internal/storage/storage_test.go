package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kireiroutine/internal/storage"
)

func openAll(t *testing.T) map[string]storage.KV {
	t.Helper()
	dir := t.TempDir()

	sq, err := storage.Open(storage.EngineSQLite, filepath.Join(dir, "kirei.db"))
	require.NoError(t, err)
	js, err := storage.Open(storage.EngineJSON, filepath.Join(dir, "kirei.json"))
	require.NoError(t, err)
	mem, err := storage.Open(storage.EngineMemory, "")
	require.NoError(t, err)

	stores := map[string]storage.KV{"sqlite": sq, "json": js, "memory": mem}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestKVBasicFlow(t *testing.T) {
	for name, kv := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(storage.KeyCalendar)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(storage.KeyCalendar, []byte(`{"2024-03-01":["w-1"]}`)))
			got, ok, err := kv.Get(storage.KeyCalendar)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"2024-03-01":["w-1"]}`, string(got))

			require.NoError(t, kv.Set(storage.KeyCalendar, []byte(`{}`)))
			got, _, err = kv.Get(storage.KeyCalendar)
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got))

			require.NoError(t, kv.Set(storage.KeyProgress, []byte(`not json`)))
			got, _, err = kv.Get(storage.KeyProgress)
			require.NoError(t, err)
			assert.Equal(t, `not json`, string(got))

			keys, err := kv.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{storage.KeyProgress, storage.KeyCalendar}, keys)

			require.NoError(t, kv.Delete(storage.KeyCalendar))
			_, ok, err = kv.Get(storage.KeyCalendar)
			require.NoError(t, err)
			assert.False(t, ok)
			require.NoError(t, kv.Delete("missing"))
		})
	}
}

func TestKVClosed(t *testing.T) {
	for name, kv := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Close())
			_, _, err := kv.Get("k")
			assert.ErrorIs(t, err, storage.ErrClosed)
			assert.ErrorIs(t, kv.Set("k", []byte("v")), storage.ErrClosed)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kirei.db")
	kv, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(storage.KeySectionMeta, []byte(`{"kitchen":{"note":"descale"}}`)))
	require.NoError(t, kv.Close())

	kv, err = storage.OpenSQLite(path)
	require.NoError(t, err)
	defer kv.Close()
	got, ok, err := kv.Get(storage.KeySectionMeta)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"kitchen":{"note":"descale"}}`, string(got))
}

func TestJSONFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kirei.json")
	kv, err := storage.OpenJSONFile(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(storage.KeyProgress, []byte(`{"w-1":true}`)))
	require.NoError(t, kv.Close())

	kv, err = storage.OpenJSONFile(path)
	require.NoError(t, err)
	got, ok, err := kv.Get(storage.KeyProgress)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"w-1":true}`, string(got))
}

func TestJSONFileRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kirei.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := storage.OpenJSONFile(path)
	assert.Error(t, err)
}

func TestOpenUnknownEngine(t *testing.T) {
	_, err := storage.Open("redis", "")
	assert.ErrorIs(t, err, storage.ErrUnknownEngine)
}
