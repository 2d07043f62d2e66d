package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
)

type memoryEntry struct {
	claims    map[string]string
	expiresAt time.Time
}

// MemoryStore keeps sessions in a mutex-guarded map. Expiry is enforced
// lazily: Get treats an entry past its deadline exactly like an absent
// one and drops it. The clock is injectable so TTL behaviour is testable
// without sleeping.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *MemoryStore) Save(ctx context.Context, key string, claims map[string]string, ttl time.Duration) error {
	copied := make(map[string]string, len(claims))
	for k, v := range claims {
		copied[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{claims: copied, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, common.ErrorNotFound
	}

	copied := make(map[string]string, len(entry.claims))
	for k, v := range entry.claims {
		copied[k] = v
	}
	return copied, nil
}

func (s *MemoryStore) Invalidate(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
