package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/focus-tui/internal/storage"
)

func TestKV_GetMissing(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	_, err := db.Get(context.Background(), storage.KeyUserStats)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestKV_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	defer db.Close()

	require.NoError(t, db.Put(ctx, storage.KeySettings, []byte(`{"volume":0.2}`)))
	require.NoError(t, db.Put(ctx, storage.KeySettings, []byte(`{"volume":0.8}`)))

	got, err := db.Get(ctx, storage.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"volume":0.8}`, string(got))

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestKV_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	defer db.Close()

	require.NoError(t, db.Put(ctx, storage.KeySettings, []byte("a")))
	require.NoError(t, db.Put(ctx, storage.KeyUserStats, []byte("b")))

	got, err := db.Get(ctx, storage.KeySettings)
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))

	got, err = db.Get(ctx, storage.KeyUserStats)
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

func TestKV_ClosedDatabase(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Close())

	err := db.Put(context.Background(), storage.KeyUserStats, []byte("x"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
