package redis

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/pkg/exceptions"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryRedisRepository backs the memory storage driver and tests. Expiry is
// evaluated lazily against now.
type memoryRedisRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRedisRepository(now func() time.Time) contracts.RedisRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryRedisRepository{entries: make(map[string]memoryEntry), now: now}
}

func (r *memoryRedisRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *memoryRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = r.entryFor(string(jsonValue), exp)
	return nil
}

func (r *memoryRedisRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lookup(key)
	if !ok {
		return "", nil
	}
	return entry.value, nil
}

func (r *memoryRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookup(key); ok {
		return false, nil
	}
	r.entries[key] = r.entryFor(string(jsonValue), exp)
	return true, nil
}

func (r *memoryRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lookup(key)
	if !ok {
		entry = r.entryFor("0", ttl)
	}
	count, err := strconv.Atoi(entry.value)
	if err != nil {
		return 0, exceptions.ErrRedisSet(err)
	}
	count++
	entry.value = strconv.Itoa(count)
	r.entries[key] = entry
	return count, nil
}

func (r *memoryRedisRepository) entryFor(value string, exp time.Duration) memoryEntry {
	entry := memoryEntry{value: value}
	if exp > 0 {
		entry.expiresAt = r.now().Add(exp)
	}
	return entry
}

func (r *memoryRedisRepository) lookup(key string) (memoryEntry, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
		delete(r.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}
