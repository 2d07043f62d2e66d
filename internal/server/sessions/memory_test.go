package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClockStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryStoreWithClock(clock.Now), clock
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newClockStore()
	ctx := context.Background()

	claims := map[string]string{"uid": "u1", "email": "a@example.com"}
	if err := store.Save(ctx, "k1", claims, time.Minute); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got["uid"] != "u1" || got["email"] != "a@example.com" {
		t.Fatalf("unexpected claims: %v", got)
	}
}

func TestMemoryStore_ExpiredBehavesLikeAbsent(t *testing.T) {
	t.Parallel()

	store, clock := newClockStore()
	ctx := context.Background()

	if err := store.Save(ctx, "k1", map[string]string{"uid": "u1"}, 60*time.Second); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	clock.Advance(60 * time.Second)

	_, err := store.Get(ctx, "k1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound after TTL, got %v", err)
	}

	// same behaviour as a key that never existed
	_, err = store.Get(ctx, "never-saved")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound for absent key, got %v", err)
	}
}

func TestMemoryStore_SaveResetsExpiry(t *testing.T) {
	t.Parallel()

	store, clock := newClockStore()
	ctx := context.Background()

	if err := store.Save(ctx, "k1", map[string]string{"uid": "u1"}, time.Minute); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	clock.Advance(50 * time.Second)
	if err := store.Save(ctx, "k1", map[string]string{"uid": "u1"}, time.Minute); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	clock.Advance(50 * time.Second)
	if _, err := store.Get(ctx, "k1"); err != nil {
		t.Fatalf("entry expired despite refreshed TTL: %v", err)
	}
}

func TestMemoryStore_Invalidate(t *testing.T) {
	t.Parallel()

	store, _ := newClockStore()
	ctx := context.Background()

	if err := store.Save(ctx, "k1", map[string]string{"uid": "u1"}, time.Hour); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Invalidate(ctx, "k1"); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}

	_, err := store.Get(ctx, "k1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound after Invalidate, got %v", err)
	}
}

func TestMemoryStore_ReturnedClaimsAreACopy(t *testing.T) {
	t.Parallel()

	store, _ := newClockStore()
	ctx := context.Background()

	if err := store.Save(ctx, "k1", map[string]string{"uid": "u1"}, time.Hour); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	got["uid"] = "tampered"

	again, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if again["uid"] != "u1" {
		t.Fatalf("stored claims were mutated through the returned map")
	}
}

func TestMemoryStore_ConcurrentDistinctKeys(t *testing.T) {
	t.Parallel()

	store, _ := newClockStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n)
			if err := store.Save(ctx, key, map[string]string{"n": key}, time.Hour); err != nil {
				t.Errorf("Save error: %v", err)
				return
			}
			got, err := store.Get(ctx, key)
			if err != nil {
				t.Errorf("Get error: %v", err)
				return
			}
			if got["n"] != key {
				t.Errorf("key %s observed %v", key, got)
			}
		}(i)
	}
	wg.Wait()
}
