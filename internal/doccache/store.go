package doccache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/textobjects/internal/log"
)

// Store is a typed wrapper over go-cache.
type Store[V any] struct {
	name  string
	cache *gocache.Cache
}

// NewStore creates a store; ttl applies when Set is given gocache.DefaultExpiration.
func NewStore[V any](name string, ttl, cleanupInterval time.Duration) *Store[V] {
	return &Store[V]{
		name:  name,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Get returns the value for key. A value of the wrong type counts as a miss.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V

	value, found := s.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "store", s.name, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key for the store's default TTL.
func (s *Store[V]) Set(key string, value V) {
	s.cache.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes keys.
func (s *Store[V]) Delete(keys ...string) {
	for _, key := range keys {
		s.cache.Delete(key)
	}
}

// Flush removes every item.
func (s *Store[V]) Flush() {
	s.cache.Flush()
}

// Len returns the number of items, including expired ones not yet evicted.
func (s *Store[V]) Len() int {
	return s.cache.ItemCount()
}
