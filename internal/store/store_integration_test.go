//go:build integration

package store_test

import (
	"context"
	"testing"

	"zip-api/internal/migrate"
	"zip-api/internal/store"
	"zip-api/internal/utils"
	"zip-api/internal/ziptable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要可用的 PostgreSQL（PG_* 环境变量）；go test -tags integration ./internal/store
func openStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := utils.OpenPostgresFromEnv()
	require.NoError(t, err)
	if err := db.Ping(); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	require.NoError(t, migrate.EnsureSchema(db))
	_, err = db.Exec("DELETE FROM _zip_city_state")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.AttachDB(db)
}

func TestStore_ZipRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertZip(ctx, ziptable.Entry{Zip: "80301", City: "Boulder", State: "Colorado"}))
	require.NoError(t, st.UpsertZip(ctx, ziptable.Entry{Zip: "80301", City: "Boulder", State: "CO"}))

	e, err := st.GetZip(ctx, "80301")
	require.NoError(t, err)
	assert.Equal(t, "Boulder, CO", e.Display())

	tb, err := st.LoadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Len())

	require.NoError(t, st.DeleteZip(ctx, "80301"))
	assert.ErrorIs(t, st.DeleteZip(ctx, "80301"), store.ErrNotFound)
	_, err = st.GetZip(ctx, "80301")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Stats(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	before, err := st.GetTotals(ctx)
	require.NoError(t, err)
	require.NoError(t, st.IncrStats(ctx, "192.0.2.1"))
	require.NoError(t, st.IncrStats(ctx, ""))
	after, err := st.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Total+2, after.Total)
	assert.Equal(t, before.Visitors+1, after.Visitors)
}
