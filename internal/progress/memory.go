package progress

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryStore struct {
	mu sync.RWMutex
	m  map[string]map[string]Entry // userID -> progressType -> entry
}

// NewInMemoryStore keeps progress for the process lifetime only. Useful
// for tests and as a stand-in when no database is configured.
func NewInMemoryStore() Store {
	return &memoryStore{m: map[string]map[string]Entry{}}
}

func (s *memoryStore) Save(_ context.Context, userID, progressType string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[userID] == nil {
		s.m[userID] = map[string]Entry{}
	}
	s.m[userID][progressType] = Entry{
		Data:      append(json.RawMessage(nil), data...),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return nil
}

func (s *memoryStore) Load(_ context.Context, userID, progressType string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.m[userID][progressType]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}
