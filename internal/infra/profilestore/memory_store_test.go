package profilestore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "ada")
	require.NoError(t, err)
	require.False(t, ok)

	fetched := time.Now().Add(-time.Hour)
	entry := profile.CacheEntry{
		Data:      profile.RawPayload{MatchedUser: &profile.RawMatchedUser{Username: "Ada"}},
		FetchedAt: fetched,
	}
	require.NoError(t, store.Save(ctx, "ada", entry))

	got, ok, err := store.Get(ctx, "ada")
	require.NoError(t, err)
	require.True(t, ok, "stale entries stay readable")
	require.Equal(t, "Ada", got.Data.MatchedUser.Username)
	require.True(t, got.Stale(time.Now(), 5*time.Minute))
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Save(ctx, "ada", profile.CacheEntry{FetchedAt: time.Unix(int64(i), 0)})
			_, _, _ = store.Get(ctx, "ada")
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1, store.Len())

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("user%d", i), profile.CacheEntry{}))
	}
	require.Equal(t, 4, store.Len())
}

func TestMemoryStoreIgnoresEmptyKey(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "", profile.CacheEntry{}))
	require.Zero(t, store.Len())
}
