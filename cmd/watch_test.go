package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/textobjects/internal/config"
	"github.com/zjrosen/textobjects/internal/doccache"
	"github.com/zjrosen/textobjects/internal/presentation"
	"github.com/zjrosen/textobjects/internal/textobject"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startWatch(t *testing.T, path string, diff bool) (*syncBuffer, func()) {
	t.Helper()
	def, err := textobject.Lookup("inner-paren")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, out, watchRun{
			def:      def,
			path:     path,
			flags:    resolveFlags{positions: []string{"0:2"}, format: presentation.FormatText},
			diff:     diff,
			cache:    doccache.New(config.Defaults().Cache),
			opts:     textobject.DefaultOptions(),
			debounce: 20 * time.Millisecond,
		})
	}()

	stop := func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop")
		}
	}
	return out, stop
}

func TestRunWatch_ReResolvesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("(ab)"), 0o600))

	out, stop := startWatch(t, path, false)
	defer stop()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "0:1-0:3\tab")
	}, 2*time.Second, 10*time.Millisecond)

	// Rewrite until seen: the watcher may start after the first write.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("(abcd)"), 0o600)
		return strings.Contains(out.String(), "0:1-0:5\tabcd")
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRunWatch_Diff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("(ab)"), 0o600))

	out, stop := startWatch(t, path, true)
	defer stop()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "0:1-0:3\tab\n")
	}, 2*time.Second, 10*time.Millisecond)

	// Alternate contents so every write the watcher sees is a real change,
	// even if it started after the first write.
	contents := []string{"(abc)", "(ab)"}
	i := 0
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(contents[i%2]), 0o600)
		i++
		got := out.String()
		return strings.Contains(got, "0:1-0:4\tab{+c+}") || strings.Contains(got, "0:1-0:3\tab[-c-]")
	}, 5*time.Second, 150*time.Millisecond)
}

func TestRunWatch_MissingFile(t *testing.T) {
	def, err := textobject.Lookup("inner-word")
	require.NoError(t, err)

	err = runWatch(context.Background(), &bytes.Buffer{}, watchRun{
		def:   def,
		path:  filepath.Join(t.TempDir(), "missing.txt"),
		flags: resolveFlags{positions: []string{"0:0"}},
		cache: doccache.New(config.Defaults().Cache),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat document")
}
