package draft

import (
	"context"
	"encoding/json"
	"sync"

	"admissions-forms/internal/forms/schema"
)

// MemoryStore is an in-process Store, the session-local analogue of the
// Redis-backed one. Snapshots go through the same JSON envelope so a value
// that survives MemoryStore also survives RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	version int
	payload []byte
}

func NewMemoryStore(version int) *MemoryStore {
	return &MemoryStore{version: version}
}

func (s *MemoryStore) Save(_ context.Context, data schema.FormData) error {
	payload, err := json.Marshal(snapshot{Version: s.version, Data: data})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (schema.FormData, error) {
	s.mu.Lock()
	payload := s.payload
	s.mu.Unlock()
	if payload == nil {
		return nil, nil
	}
	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, nil
	}
	if snap.Version != s.version || snap.Data == nil {
		return nil, nil
	}
	return snap.Data, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.payload = nil
	s.mu.Unlock()
	return nil
}
