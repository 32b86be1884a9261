package doccache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/textobjects/internal/config"
)

func enabledConfig() config.CacheConfig {
	return config.CacheConfig{Enabled: true, TTL: time.Minute, CleanupInterval: time.Minute}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_MissThenHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "hello world")

	c := New(enabledConfig())

	doc, hit, err := c.Load(context.Background(), path)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "hello world", doc.String())

	again, hit, err := c.Load(context.Background(), path)
	require.NoError(t, err)
	require.True(t, hit)
	require.Same(t, doc, again)
	require.Equal(t, 1, c.Len())
}

func TestLoad_ReloadsWhenFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "one")

	c := New(enabledConfig())
	_, _, err := c.Load(context.Background(), path)
	require.NoError(t, err)

	// Different size guarantees a new stamp even on coarse mtime filesystems.
	writeFile(t, path, "one two")

	doc, hit, err := c.Load(context.Background(), path)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "one two", doc.String())
}

func TestLoad_CleansPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "x")

	c := New(enabledConfig())
	_, _, err := c.Load(context.Background(), path)
	require.NoError(t, err)

	_, hit, err := c.Load(context.Background(), filepath.Join(dir, ".", "doc.txt"))
	require.NoError(t, err)
	require.True(t, hit)
}

func TestLoad_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "x")

	c := New(config.CacheConfig{Enabled: false})
	for range 2 {
		_, hit, err := c.Load(context.Background(), path)
		require.NoError(t, err)
		require.False(t, hit)
	}
	require.Equal(t, 0, c.Len())
}

func TestLoad_Invalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "x")

	c := New(enabledConfig())
	_, _, err := c.Load(context.Background(), path)
	require.NoError(t, err)

	c.Invalidate(path)
	_, hit, err := c.Load(context.Background(), path)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestLoad_Errors(t *testing.T) {
	c := New(enabledConfig())

	_, _, err := c.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = c.Load(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "is a directory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = c.Load(ctx, "anything")
	require.ErrorIs(t, err, context.Canceled)
}
