package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/infra/config"
	"github.com/yanqian/leetlens/internal/infra/logstore"
	"github.com/yanqian/leetlens/internal/infra/profilestore"
	"github.com/yanqian/leetlens/pkg/logger"
)

func TestProvideChatClientsSkipsBlankKeys(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{APIKey: "primary", FallbackAPIKey: " ", Timeout: time.Second}}
	clients, err := provideChatClients(cfg, logger.Discard())
	require.NoError(t, err)
	require.Len(t, clients, 1)

	cfg.LLM.FallbackAPIKey = "secondary"
	clients, err = provideChatClients(cfg, logger.Discard())
	require.NoError(t, err)
	require.Len(t, clients, 2)
}

func TestProvideProfileStoreDefaultsToMemory(t *testing.T) {
	store := provideProfileStore(&config.Config{}, logger.Discard())
	_, ok := store.(*profilestore.MemoryStore)
	require.True(t, ok)
}

func TestProvideLogStoreFallsBackToMemory(t *testing.T) {
	cfg := &config.Config{LogStore: config.LogStoreConfig{Driver: config.DriverPostgres, DSN: "postgres://localhost:notaport/db"}}
	store := provideLogStore(cfg, logger.Discard())
	_, ok := store.(*logstore.MemoryStore)
	require.True(t, ok)
}

func TestProvideLogStoreSQLite(t *testing.T) {
	cfg := &config.Config{LogStore: config.LogStoreConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "logs.db"),
	}}
	store := provideLogStore(cfg, logger.Discard())
	_, ok := store.(*logstore.SQLiteStore)
	require.True(t, ok)

	require.NoError(t, provideAttemptLogger(store).LogAttempt(context.Background(), "ada", profile.AttemptStarted, time.Now()))
	entry, err := provideVisitRepository(store).CreateVisit(context.Background(), "visitor", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
}
