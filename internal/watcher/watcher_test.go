package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, opts Options, roots ...string) *Watcher {
	t.Helper()

	w, err := New(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx, roots...)
	}()

	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("watcher did not shut down")
		}
	})

	// Give the fsnotify registration a moment to settle.
	time.Sleep(50 * time.Millisecond)
	return w
}

func waitBatch(t *testing.T, w *Watcher) []FileEvent {
	t.Helper()
	select {
	case batch := <-w.Batches():
		return batch
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event batch")
		return nil
	}
}

func TestWatcher_EmitsBatchForContentChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guides"), 0o755))

	w := startWatcher(t, Options{
		DebounceWindow: 50 * time.Millisecond,
		Extensions:     []string{".mdx", ".md"},
	}, root)

	path := filepath.Join(root, "guides", "auth.mdx")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	batch := waitBatch(t, w)
	require.NotEmpty(t, batch)
	assert.Equal(t, filepath.ToSlash(path), batch[0].Path)
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	root := t.TempDir()

	w := startWatcher(t, Options{
		DebounceWindow: 50 * time.Millisecond,
		Extensions:     []string{".mdx"},
	}, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "draft.mdx~"), []byte("x"), 0o644))

	select {
	case batch := <-w.Batches():
		t.Fatalf("expected no batch, got %v", batch)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_ConfigChangeEvent(t *testing.T) {
	root := t.TempDir()

	w := startWatcher(t, Options{
		DebounceWindow: 50 * time.Millisecond,
		Extensions:     []string{".mdx"},
		ConfigFile:     ".docsearch.yaml",
	}, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".docsearch.yaml"), []byte("workers: 2\n"), 0o644))

	batch := waitBatch(t, w)
	require.Len(t, batch, 1)
	assert.Equal(t, OpConfigChange, batch[0].Operation)
}

func TestWatcher_SeesFilesInNewDirectories(t *testing.T) {
	root := t.TempDir()

	w := startWatcher(t, Options{
		DebounceWindow: 50 * time.Millisecond,
		Extensions:     []string{".mdx"},
	}, root)

	sub := filepath.Join(root, "storage")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Let the new directory get registered before writing into it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "buckets.mdx"), []byte("content"), 0o644))

	batch := waitBatch(t, w)
	require.NotEmpty(t, batch)
	assert.Contains(t, batch[0].Path, "buckets.mdx")
}

func TestWatcher_MissingRootFails(t *testing.T) {
	w, err := New(Options{})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	err = w.Start(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "CREATE", OpCreate.String())
	assert.Equal(t, "MODIFY", OpModify.String())
	assert.Equal(t, "DELETE", OpDelete.String())
	assert.Equal(t, "RENAME", OpRename.String())
	assert.Equal(t, "CONFIG_CHANGE", OpConfigChange.String())
	assert.Equal(t, "UNKNOWN", Operation(99).String())
}
