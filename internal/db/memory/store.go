// Package memory is an in-process db.Store backed by go-cache.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/brokertools/directory/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps values in process memory with per-key expiration.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a memory store. Expired entries are purged every cleanupInterval.
func NewStore(defaultTTL, cleanupInterval time.Duration) *Store {
	return &Store{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close drops every entry.
func (s *Store) Close() { s.cache.Flush() }

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

// SetWithTTL stores a copy of value with an expiration.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// Len returns the number of stored entries, expired ones included until purged.
func (s *Store) Len() int { return s.cache.ItemCount() }
