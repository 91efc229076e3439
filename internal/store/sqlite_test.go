package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func testLeads() []model.Lead {
	return []model.Lead{
		{ID: 1, Name: "Alex Smith", Company: "Moderna", TotalScore: 92.4, Rank: 1, EnrichmentData: map[string]any{"hunter_status": "valid"}},
		{ID: 2, Name: "Jordan Garcia", Company: "Mimetas", TotalScore: 31.1, Rank: 2},
	}
}

func TestSQLite_SaveAndGetBatch(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := s.SaveBatch(ctx, testLeads())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, 2, saved.Count)

	got, err := s.GetBatch(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	require.Len(t, got.Leads, 2)
	assert.Equal(t, "Alex Smith", got.Leads[0].Name)
	assert.InDelta(t, 92.4, got.Leads[0].TotalScore, 0.001)
	assert.Equal(t, "valid", got.Leads[0].EnrichmentData["hunter_status"])
}

func TestSQLite_GetBatch_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetBatch(context.Background(), "no-such-batch")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_LatestBatch(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.LatestBatch(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	first, err := s.SaveBatch(ctx, testLeads()[:1])
	require.NoError(t, err)
	second, err := s.SaveBatch(ctx, testLeads())
	require.NoError(t, err)

	latest, err := s.LatestBatch(ctx)
	require.NoError(t, err)
	// Same-second timestamps fall back to id ordering; either way the
	// latest batch is one of the two saved.
	assert.Contains(t, []string{first.ID, second.ID}, latest.ID)
}

func TestSQLite_ListBatches(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	infos, err := s.ListBatches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, infos)

	for i := 0; i < 3; i++ {
		_, err := s.SaveBatch(ctx, testLeads())
		require.NoError(t, err)
	}

	infos, err = s.ListBatches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 2, infos[0].Count)
}

func TestOpen_SQLite(t *testing.T) {
	cfgDB := filepath.Join(t.TempDir(), "open.db")
	s, err := Open(context.Background(), sqliteConfig(cfgDB))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SaveBatch(context.Background(), testLeads())
	require.NoError(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig("x.db")
	cfg.Driver = "mysql"

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}
