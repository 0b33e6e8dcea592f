package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/storage"
)

func TestSlotKV(t *testing.T) {
	db, err := InitDB(Options{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	kv := &KV{DB: db}

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("turni_calendar_v1", `{"2025-01-01":"MATT"}`))
	require.NoError(t, kv.Set("turni_calendar_v1", `{}`))

	v, ok, err := kv.Get("turni_calendar_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)

	var count int64
	db.Model(&Slot{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSlotKVBatchRollsBack(t *testing.T) {
	db, err := InitDB(Options{Path: filepath.Join(t.TempDir(), "batch.db")})
	require.NoError(t, err)
	kv := &KV{DB: db}
	require.NoError(t, kv.Set("turni_shift_types_v1", `[]`))

	err = kv.Batch(func(tx storage.KV) error {
		require.NoError(t, tx.Set("turni_shift_types_v1", `[{"id":"X"}]`))
		require.NoError(t, tx.Set("turni_calendar_v1", `{"2025-11-01":"X"}`))
		return errors.New("write failed")
	})
	require.Error(t, err)

	v, _, err := kv.Get("turni_shift_types_v1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
	_, ok, err := kv.Get("turni_calendar_v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Batch(func(tx storage.KV) error {
		return tx.Set("turni_calendar_v1", `{}`)
	}))
	_, ok, err = kv.Get("turni_calendar_v1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRepositorySaveUsesTransaction(t *testing.T) {
	db, err := InitDB(Options{Path: filepath.Join(t.TempDir(), "repo.db")})
	require.NoError(t, err)

	repo := storage.NewRepository(&KV{DB: db}, nil, 0)
	s, err := repo.Load()
	require.NoError(t, err)
	require.NoError(t, s.SetShift("2025-11-01", "MATT"))
	require.NoError(t, repo.Save(s))

	reloaded, err := repo.Load()
	require.NoError(t, err)
	id, _ := reloaded.Shift("2025-11-01")
	assert.Equal(t, "MATT", id)
}
