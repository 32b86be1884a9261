// Package doccache keeps parsed documents in memory, keyed by file path and
// invalidated when the file's size or modification time changes.
package doccache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/config"
	"github.com/zjrosen/textobjects/internal/log"
)

// stamp identifies one version of a file on disk.
type stamp struct {
	size    int64
	modTime time.Time
}

func (s stamp) matches(o stamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

type entry struct {
	doc   *buffer.Document
	stamp stamp
}

// Cache loads documents from disk through an in-memory store.
type Cache struct {
	store   *Store[entry]
	enabled bool
}

// New creates a cache from cfg. A disabled cache reads the file on every Load.
func New(cfg config.CacheConfig) *Cache {
	return &Cache{
		store:   NewStore[entry]("documents", cfg.TTL, cfg.CleanupInterval),
		enabled: cfg.Enabled,
	}
}

// Load returns the document at path and whether it came from the cache.
func (c *Cache) Load(ctx context.Context, path string) (*buffer.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := filepath.Clean(path)
	info, err := os.Stat(key)
	if err != nil {
		return nil, false, fmt.Errorf("stat document: %w", err)
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("stat document: %s is a directory", key)
	}
	current := stamp{size: info.Size(), modTime: info.ModTime()}

	if c.enabled {
		if e, ok := c.store.Get(key); ok && e.stamp.matches(current) {
			log.Debug(log.CatCache, "cache hit", "path", key)
			return e.doc, true, nil
		}
	}

	data, err := os.ReadFile(key) // #nosec G304 -- path is supplied by the caller
	if err != nil {
		return nil, false, fmt.Errorf("reading document: %w", err)
	}
	doc := buffer.NewDocument(string(data))

	if c.enabled {
		c.store.Set(key, entry{doc: doc, stamp: current})
		log.Debug(log.CatCache, "cache miss", "path", key, "size", current.size)
	}
	return doc, false, nil
}

// Invalidate drops path from the cache.
func (c *Cache) Invalidate(path string) {
	c.store.Delete(filepath.Clean(path))
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return c.store.Len()
}
