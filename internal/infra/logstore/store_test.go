package logstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
)

func TestMemoryStoreAttemptLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC)

	require.NoError(t, store.LogAttempt(ctx, "ada", profile.AttemptStarted, at))
	require.NoError(t, store.LogAttempt(ctx, "bob", profile.AttemptStarted, at))
	require.NoError(t, store.UpdateStatus(ctx, "ada", profile.AttemptSuccess, at))

	searches := store.Searches()
	require.Len(t, searches, 2)
	require.Equal(t, profile.AttemptSuccess, searches[0].Status)
	require.Equal(t, profile.AttemptStarted, searches[1].Status)
	require.NotEmpty(t, searches[0].ID)
}

func TestMemoryStoreVisits(t *testing.T) {
	exerciseVisitRepository(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "logs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLiteStore(db)
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 987654321, time.FixedZone("IST", 5*3600+1800))

	require.NoError(t, store.LogAttempt(ctx, "ada", profile.AttemptStarted, at))
	require.NoError(t, store.UpdateStatus(ctx, "ada", profile.AttemptNotFound, at))
	status, err := store.SearchStatus(ctx, "ada", at)
	require.NoError(t, err)
	require.Equal(t, profile.AttemptNotFound, status)

	exerciseVisitRepository(t, store)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestMigrateRejectsUnknownDialect(t *testing.T) {
	require.Error(t, Migrate(nil, "mysql"))
}

func exerciseVisitRepository(t *testing.T, repo visitlog.Repository) {
	t.Helper()
	ctx := context.Background()
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	created, err := repo.CreateVisit(ctx, "visitor-1", at)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "visitor-1", created.UserID)
	require.True(t, created.CreatedAt.Equal(at))
	require.Nil(t, created.TotalSolved)
	require.False(t, created.FullyScrolled)

	updated, found, err := repo.UpdateVisitProfile(ctx, created.ID, "Ada", 42)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Ada", updated.RealName)
	require.NotNil(t, updated.TotalSolved)
	require.Equal(t, 42, *updated.TotalSolved)

	scrolled, found, err := repo.MarkVisitScrolled(ctx, created.ID, true)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, scrolled.FullyScrolled)
	require.Equal(t, "Ada", scrolled.RealName)

	_, found, err = repo.UpdateVisitProfile(ctx, "missing", "x", 1)
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = repo.MarkVisitScrolled(ctx, "missing", true)
	require.NoError(t, err)
	require.False(t, found)
}
