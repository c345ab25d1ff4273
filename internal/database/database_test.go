package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gdg-garage/eventflow-api/internal/config"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenKVSQLitePersists(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreBackend: config.BackendSQLite,
		DatabasePath: filepath.Join(t.TempDir(), "eventflow.db"),
	}

	kv, closeKV, err := OpenKV(cfg)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, store.EventsKey, []byte(`[]`)))
	require.NoError(t, closeKV())

	kv, closeKV, err = OpenKV(cfg)
	require.NoError(t, err)
	defer closeKV()

	value, ok, err := kv.Get(ctx, store.EventsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(value))
}

func TestOpenKVMemory(t *testing.T) {
	kv, closeKV, err := OpenKV(&config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryKV{}, kv)
	assert.NoError(t, closeKV())
}
