package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/leetlens/internal/domain/analysis"
	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
	"github.com/yanqian/leetlens/internal/infra/config"
	"github.com/yanqian/leetlens/internal/infra/leetcode"
	"github.com/yanqian/leetlens/internal/infra/llm/chatgpt"
	"github.com/yanqian/leetlens/internal/infra/logstore"
	"github.com/yanqian/leetlens/internal/infra/profilestore"
)

// logStore is the union every log backend implements.
type logStore interface {
	profile.AttemptLogger
	visitlog.Repository
}

func provideProfileConfig(cfg *config.Config) profile.Config {
	return profile.Config{CacheTTL: cfg.ProfileCache.TTL}
}

func provideAnalysisConfig(cfg *config.Config) analysis.Config {
	return analysis.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}
}

func provideLeetCodeClient(cfg *config.Config) *leetcode.Client {
	return leetcode.NewClient(leetcode.Config{
		Endpoint:  cfg.LeetCode.Endpoint,
		Referer:   cfg.LeetCode.Referer,
		UserAgent: cfg.LeetCode.UserAgent,
		Timeout:   cfg.LeetCode.Timeout,
	})
}

// provideChatClients builds one client per configured credential, primary
// first. Blank keys are skipped.
func provideChatClients(cfg *config.Config, logger *slog.Logger) (analysis.ChatClients, error) {
	var clients analysis.ChatClients
	for _, key := range []string{cfg.LLM.APIKey, cfg.LLM.FallbackAPIKey} {
		if strings.TrimSpace(key) == "" {
			continue
		}
		client, err := chatgpt.NewClient(key, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	logger.Info("llm credentials configured", "count", len(clients), "model", cfg.LLM.Model)
	return clients, nil
}

func provideProfileStore(cfg *config.Config, logger *slog.Logger) profile.Store {
	valkeyCfg := cfg.ProfileCache.Valkey
	if valkeyCfg.Enabled {
		opt, err := buildValkeyOptions(valkeyCfg.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return profilestore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return profilestore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("profile valkey store enabled", "addr", valkeyCfg.Addr)
			return profilestore.NewValkeyStore(client, valkeyCfg.Prefix, valkeyCfg.Retention)
		}
	}
	return profilestore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideLogStore opens the configured log backend. Any failure degrades to
// the in-memory store so profile lookups keep working.
func provideLogStore(cfg *config.Config, logger *slog.Logger) logStore {
	fallback := logstore.NewMemoryStore()
	switch cfg.LogStore.Driver {
	case config.DriverPostgres:
		store, err := openPostgresLogStore(cfg.LogStore)
		if err != nil {
			logger.Error("postgres log store unavailable, using memory store", "error", err)
			return fallback
		}
		logger.Info("postgres log store enabled")
		return store
	case config.DriverSQLite:
		db, err := logstore.OpenSQLite(cfg.LogStore.SQLitePath)
		if err != nil {
			logger.Error("sqlite log store unavailable, using memory store", "error", err, "path", cfg.LogStore.SQLitePath)
			return fallback
		}
		logger.Info("sqlite log store enabled", "path", cfg.LogStore.SQLitePath)
		return logstore.NewSQLiteStore(db)
	default:
		logger.Info("log store driver is memory, logs are not persisted")
		return fallback
	}
}

func openPostgresLogStore(cfg config.LogStoreConfig) (*logstore.PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := logstore.MigratePostgres(pool); err != nil {
		pool.Close()
		return nil, err
	}
	return logstore.NewPostgresStore(pool), nil
}

func provideAttemptLogger(store logStore) profile.AttemptLogger {
	return store
}

func provideVisitRepository(store logStore) visitlog.Repository {
	return store
}
