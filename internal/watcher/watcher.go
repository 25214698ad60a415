// Package watcher observes documentation source trees and emits batches
// of coalesced file events. Watch mode rebuilds the whole index on every
// batch, so the watcher's only job is to say "something changed" without
// thrashing on editor save storms.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation is the kind of file system change observed.
type Operation int

const (
	OpCreate Operation = iota
	OpModify
	OpDelete
	OpRename
	// OpConfigChange marks a change to the build configuration file.
	// The watch loop reloads configuration before rebuilding.
	OpConfigChange
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	case OpConfigChange:
		return "CONFIG_CHANGE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is one observed change, after coalescing.
type FileEvent struct {
	// Path is slash-separated, relative to the working directory the
	// roots were given in.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// Options configures the watcher.
type Options struct {
	// DebounceWindow is how long to wait after the last event before
	// emitting a batch. Default: 200ms.
	DebounceWindow time.Duration

	// Extensions are the content file extensions worth rebuilding for.
	// Events for other files are dropped, except config file changes.
	Extensions []string

	// ConfigFile is the path of the build configuration file. Its
	// directory is watched (non-recursively) and changes to the file
	// produce OpConfigChange events.
	ConfigFile string

	// BatchBufferSize is the batch channel buffer. Default: 16.
	BatchBufferSize int
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	if o.DebounceWindow == 0 {
		o.DebounceWindow = 200 * time.Millisecond
	}
	if o.BatchBufferSize == 0 {
		o.BatchBufferSize = 16
	}
	return o
}

// Watcher watches documentation roots recursively via fsnotify.
type Watcher struct {
	opts     Options
	fsw      *fsnotify.Watcher
	debounce *Debouncer
	batches  chan []FileEvent
	errs     chan error
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher. Call Start to begin observation.
func New(opts Options) (*Watcher, error) {
	opts = opts.WithDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		opts:     opts,
		fsw:      fsw,
		debounce: NewDebouncer(opts.DebounceWindow),
		batches:  make(chan []FileEvent, opts.BatchBufferSize),
		errs:     make(chan error, 10),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start watches the given roots until the context is cancelled or Stop is
// called. Blocks while running.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	if w.opts.ConfigFile != "" {
		// The config file usually lives above the content roots.
		if err := w.fsw.Add(filepath.Dir(w.opts.ConfigFile)); err != nil {
			return fmt.Errorf("watch config directory: %w", err)
		}
	}

	go w.forward(ctx)

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.emitError(err)
		}
	}
}

// emitError delivers a non-fatal error without blocking the event loop.
func (w *Watcher) emitError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

// Batches returns the channel of debounced event batches.
func (w *Watcher) Batches() <-chan []FileEvent {
	return w.batches
}

// Errors returns the channel of non-fatal watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.debounce.Stop()
		err = w.fsw.Close()
	})
	return err
}

// handle converts one fsnotify event, filters noise, and feeds the
// debouncer. New directories are added to the watch set so files created
// inside them are seen.
func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.ToSlash(event.Name)

	isDir := false
	if info, err := os.Stat(event.Name); err == nil {
		isDir = info.IsDir()
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
		if isDir {
			_ = w.fsw.Add(event.Name)
			return
		}
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0:
		op = OpDelete
	case event.Op&fsnotify.Rename != 0:
		op = OpRename
	default:
		// Chmod and friends never change index content.
		return
	}
	if isDir {
		return
	}

	if w.opts.ConfigFile != "" && filepath.Base(event.Name) == filepath.Base(w.opts.ConfigFile) {
		w.debounce.Add(FileEvent{Path: path, Operation: OpConfigChange, Timestamp: time.Now()})
		return
	}

	if !w.relevant(path) {
		return
	}

	w.debounce.Add(FileEvent{Path: path, Operation: op, Timestamp: time.Now()})
}

// relevant reports whether a file change should trigger a rebuild.
func (w *Watcher) relevant(path string) bool {
	base := filepath.Base(path)
	// Editor artifacts.
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasPrefix(base, ".#") {
		return false
	}

	if len(w.opts.Extensions) == 0 {
		return true
	}
	for _, ext := range w.opts.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// forward moves debounced batches to the public channel.
func (w *Watcher) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case batch, ok := <-w.debounce.Output():
			if !ok {
				return
			}
			if len(batch) == 0 {
				continue
			}
			select {
			case w.batches <- batch:
			default:
				// Consumer is mid-rebuild; the next batch will cover
				// these changes too since rebuilds are full-tree.
			}
		}
	}
}

// addRecursive registers root and every directory below it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if base := filepath.Base(path); base == ".git" {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
