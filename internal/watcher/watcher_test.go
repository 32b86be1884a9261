package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/textobjects/internal/watcher"
)

func startWatcher(t *testing.T, paths ...string) <-chan []string {
	t.Helper()
	w, err := watcher.New(watcher.Config{Paths: paths, Debounce: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(docPath, []byte("package main"), 0o600))

	onChange := startWatcher(t, docPath)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(docPath, []byte(fmt.Sprintf("package main // %d", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case changed := <-onChange:
		abs, err := filepath.Abs(docPath)
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, changed)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.txt")
	otherPath := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("doc"), 0o600))
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0o600))

	onChange := startWatcher(t, docPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0o600))

	select {
	case <-onChange:
		t.Fatal("should not notify for unwatched files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_ReportsEveryChangedPath(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o600))

	onChange := startWatcher(t, b, a)

	require.NoError(t, os.WriteFile(b, []byte("bb"), 0o600))
	require.NoError(t, os.WriteFile(a, []byte("aa"), 0o600))

	select {
	case changed := <-onChange:
		assert.Equal(t, []string{a, b}, changed, "sorted, both paths")
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("x"), 0o600))

	w, err := watcher.New(watcher.Config{Paths: []string{docPath}, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestNew_RequiresPaths(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestStart_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.Config{Paths: []string{filepath.Join(t.TempDir(), "gone", "doc.txt")}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	_, err = w.Start()
	require.Error(t, err)
}
