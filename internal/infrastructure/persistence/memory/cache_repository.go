// Package memory provides an in-process cache repository used when Redis
// is not configured
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pantrywizard/v2/internal/ports/outbound"
)

// cacheItem represents a cached value with its expiry
type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements the cache repository in process memory
type CacheRepository struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]cacheItem),
	}

	go repo.cleanup()

	return repo
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	if !exists {
		return nil, errors.New("key not found")
	}

	if time.Now().After(item.expiresAt) {
		return nil, errors.New("key expired")
	}

	return item.value, nil
}

// Set stores a value in cache with TTL. A zero TTL defaults to 24 hours.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	r.data[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	if !exists {
		return false, nil
	}

	if time.Now().After(item.expiresAt) {
		return false, nil
	}

	return true, nil
}

// Ping always succeeds; process memory has nothing to reach
func (r *CacheRepository) Ping(ctx context.Context) error {
	return nil
}

// cleanup removes expired items every five minutes
func (r *CacheRepository) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mutex.Lock()
		now := time.Now()
		for key, item := range r.data {
			if now.After(item.expiresAt) {
				delete(r.data, key)
			}
		}
		r.mutex.Unlock()
	}
}
