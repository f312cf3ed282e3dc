package profilestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

const defaultPrefix = "leetlens:profile"

// ValkeyStore shares cache entries across instances through a
// Valkey-compatible database. Keys expire after retention so the keyspace
// stays bounded; freshness is still decided from FetchedAt.
type ValkeyStore struct {
	client    valkey.Client
	prefix    string
	retention time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey. A zero retention
// keeps keys forever.
func NewValkeyStore(client valkey.Client, prefix string, retention time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ValkeyStore{client: client, prefix: prefix, retention: retention}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (profile.CacheEntry, bool, error) {
	if key == "" {
		return profile.CacheEntry{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return profile.CacheEntry{}, false, nil
		}
		return profile.CacheEntry{}, false, err
	}
	var entry profile.CacheEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return profile.CacheEntry{}, false, err
	}
	return entry, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, entry profile.CacheEntry) error {
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if s.retention > 0 {
		ttl := s.retention
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":" + key
}

var _ profile.Store = (*ValkeyStore)(nil)
