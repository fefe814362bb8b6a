package draft

import (
	"context"
	"encoding/json"
	"time"

	"admissions-forms/internal/common/database"
	"admissions-forms/internal/common/observability"
	"admissions-forms/internal/forms/schema"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one draft snapshot under a fixed key.
type RedisStore struct {
	client  *database.RedisClient
	key     string
	version int
	ttl     time.Duration
}

// NewRedisStore creates a store for the given key. The version should be the
// schema version the draft data is shaped by; ttl of zero means no expiry.
func NewRedisStore(client *database.RedisClient, key string, version int, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: key, version: version, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, data schema.FormData) error {
	payload, err := json.Marshal(snapshot{Version: s.version, Data: data})
	if err != nil {
		observability.DraftOperations.WithLabelValues("save", "error").Inc()
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, s.ttl); err != nil {
		observability.DraftOperations.WithLabelValues("save", "error").Inc()
		return err
	}
	observability.DraftOperations.WithLabelValues("save", "ok").Inc()
	return nil
}

// Load returns the stored draft data, or nil when there is no usable
// snapshot: absent key, corrupt payload and schema-version mismatch all
// start the session from defaults instead of failing it.
func (s *RedisStore) Load(ctx context.Context) (schema.FormData, error) {
	raw, err := s.client.Get(ctx, s.key)
	if err == redis.Nil {
		observability.DraftOperations.WithLabelValues("load", "miss").Inc()
		return nil, nil
	}
	if err != nil {
		observability.DraftOperations.WithLabelValues("load", "error").Inc()
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		observability.DraftOperations.WithLabelValues("load", "stale").Inc()
		return nil, nil
	}
	if snap.Version != s.version || snap.Data == nil {
		observability.DraftOperations.WithLabelValues("load", "stale").Inc()
		return nil, nil
	}
	observability.DraftOperations.WithLabelValues("load", "ok").Inc()
	return snap.Data, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key); err != nil {
		observability.DraftOperations.WithLabelValues("clear", "error").Inc()
		return err
	}
	observability.DraftOperations.WithLabelValues("clear", "ok").Inc()
	return nil
}
