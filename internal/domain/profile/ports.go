package profile

import (
	"context"
	"time"
)

// Store keeps raw payloads keyed by lowercased username. Get returns stale
// entries too; staleness is decided by the caller.
type Store interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Save(ctx context.Context, key string, entry CacheEntry) error
}

// Fetcher retrieves a raw payload from the upstream GraphQL API. Failures
// carry CodeUserNotFound or CodeUpstreamUnavailable.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (RawPayload, error)
}

// AttemptLogger records search attempts in an external store. It is advisory;
// callers ignore its errors.
type AttemptLogger interface {
	LogAttempt(ctx context.Context, username string, status AttemptStatus, at time.Time) error
	UpdateStatus(ctx context.Context, username string, status AttemptStatus, at time.Time) error
}

// NopAttemptLogger discards attempts.
type NopAttemptLogger struct{}

func (NopAttemptLogger) LogAttempt(context.Context, string, AttemptStatus, time.Time) error {
	return nil
}

func (NopAttemptLogger) UpdateStatus(context.Context, string, AttemptStatus, time.Time) error {
	return nil
}
