package profile

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/yanqian/leetlens/pkg/errors"
	"github.com/yanqian/leetlens/pkg/metrics"
	"github.com/yanqian/leetlens/pkg/util"
)

const maxIdentifierLen = 25

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Service resolves a username into a normalized profile.
type Service interface {
	Resolve(ctx context.Context, identifier string) (UserProfile, error)
}

type service struct {
	cfg      Config
	store    Store
	fetcher  Fetcher
	attempts AttemptLogger
	metrics  *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the fetch-and-cache gateway.
//
// Concurrent misses for the same username each fetch upstream; the last
// write to the store wins.
func NewService(cfg Config, store Store, fetcher Fetcher, attempts AttemptLogger, recorder *metrics.Recorder, logger *slog.Logger) Service {
	if attempts == nil {
		attempts = NopAttemptLogger{}
	}
	return &service{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		attempts: attempts,
		metrics:  recorder,
		logger:   logger.With("component", "profile.service"),
		now:      util.NowUTC,
	}
}

// ValidateIdentifier trims the identifier and checks charset and length.
func ValidateIdentifier(identifier string) (string, error) {
	username := strings.TrimSpace(identifier)
	if len(username) < 1 || len(username) > maxIdentifierLen {
		return "", apperrors.Wrap(CodeInvalidIdentifier, "username must be 1-25 characters", nil)
	}
	if !identifierPattern.MatchString(username) {
		return "", apperrors.Wrap(CodeInvalidIdentifier, "only letters, numbers and underscores allowed", nil)
	}
	return username, nil
}

// CacheKey is the store key for a validated username.
func CacheKey(username string) string {
	return strings.ToLower(username)
}

func (s *service) Resolve(ctx context.Context, identifier string) (UserProfile, error) {
	username, err := ValidateIdentifier(identifier)
	if err != nil {
		return UserProfile{}, err
	}
	key := CacheKey(username)

	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	startedAt := s.now()
	s.logAttempt(ctx, username, startedAt)

	raw, err := s.fetch(ctx, username)
	if err != nil {
		status := AttemptFailed
		if apperrors.IsCode(err, CodeUserNotFound) {
			status = AttemptNotFound
		}
		s.updateAttempt(ctx, username, status, startedAt)
		return UserProfile{}, err
	}

	normalized, err := s.normalize(username, raw)
	if err != nil {
		s.updateAttempt(ctx, username, AttemptFailed, startedAt)
		return UserProfile{}, err
	}

	if err := s.store.Save(ctx, key, CacheEntry{Data: raw, FetchedAt: s.now()}); err != nil {
		s.logger.Warn("profile cache save failed", "username", username, "error", err)
	}
	s.updateAttempt(ctx, username, AttemptSuccess, startedAt)
	return normalized, nil
}

func (s *service) lookup(ctx context.Context, key string) (UserProfile, bool) {
	entry, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("profile cache read failed", "key", key, "error", err)
		s.metrics.CacheLookup(metrics.CacheMiss)
		return UserProfile{}, false
	}
	if !found {
		s.metrics.CacheLookup(metrics.CacheMiss)
		return UserProfile{}, false
	}
	if entry.Stale(s.now(), s.cfg.CacheTTL) {
		s.logger.Debug("profile cache entry stale", "key", key, "fetched_at", entry.FetchedAt)
		s.metrics.CacheLookup(metrics.CacheStale)
		return UserProfile{}, false
	}
	normalized, err := s.normalize(key, entry.Data)
	if err != nil {
		s.logger.Warn("cached profile unusable, refetching", "key", key, "error", err)
		s.metrics.CacheLookup(metrics.CacheMiss)
		return UserProfile{}, false
	}
	s.metrics.CacheLookup(metrics.CacheHit)
	s.logger.Debug("profile cache hit", "key", key)
	return normalized, true
}

func (s *service) fetch(ctx context.Context, username string) (RawPayload, error) {
	start := time.Now()
	raw, err := s.fetcher.Fetch(ctx, username)
	elapsed := time.Since(start)
	switch {
	case err == nil && raw.MatchedUser == nil:
		err = apperrors.Wrap(CodeUserNotFound, "username not found", nil)
	case err != nil && apperrors.CodeOf(err) == "":
		err = apperrors.Wrap(CodeUpstreamUnavailable, "failed to fetch leetcode data", err)
	}
	if err != nil {
		s.metrics.UpstreamFetch(apperrors.CodeOf(err), elapsed)
		s.logger.Error("leetcode fetch failed", "username", username, "code", apperrors.CodeOf(err), "error", err)
		return RawPayload{}, err
	}
	s.metrics.UpstreamFetch("ok", elapsed)
	return raw, nil
}

func (s *service) normalize(username string, raw RawPayload) (UserProfile, error) {
	normalized, err := Normalize(raw)
	if err == nil {
		return normalized, nil
	}
	if apperrors.IsCode(err, CodeCalendarParse) {
		s.logger.Warn("submission calendar unreadable, using empty calendar", "username", username, "error", err)
		return normalized, nil
	}
	return UserProfile{}, err
}

func (s *service) logAttempt(ctx context.Context, username string, at time.Time) {
	if err := s.attempts.LogAttempt(ctx, username, AttemptStarted, at); err != nil {
		s.logger.Warn("failed to log search attempt", "username", username, "error", err)
	}
}

func (s *service) updateAttempt(ctx context.Context, username string, status AttemptStatus, at time.Time) {
	if err := s.attempts.UpdateStatus(ctx, username, status, at); err != nil {
		s.logger.Warn("failed to update search attempt", "username", username, "status", status, "error", err)
	}
}
