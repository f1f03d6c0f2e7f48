package memory

import (
	"context"
	"sync"
	"time"
)

// RefreshStore mirrors the Redis-backed store's single-use semantics in
// process memory.
type RefreshStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func NewRefreshStore() *RefreshStore {
	return &RefreshStore{expires: make(map[string]time.Time)}
}

func (s *RefreshStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[jti] = time.Now().Add(ttl)
	return nil
}

func (s *RefreshStore) Consume(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[jti]
	if !ok {
		return false, nil
	}
	delete(s.expires, jti)
	return time.Now().Before(exp), nil
}
