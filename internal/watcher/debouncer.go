package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid file events so a save storm produces one
// rebuild instead of dozens. Events for the same path inside the window
// merge:
//   - CREATE then MODIFY stays CREATE
//   - CREATE then DELETE cancels out
//   - MODIFY then DELETE becomes DELETE
//   - DELETE then CREATE becomes MODIFY
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending map[string]*pendingEvent
	timer   *time.Timer
	output  chan []FileEvent
	stopped bool
}

type pendingEvent struct {
	event   FileEvent
	firstOp Operation
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
		output:  make(chan []FileEvent, 10),
	}
}

// Add records an event, merging it with any pending event for the same
// path, and restarts the flush timer.
func (d *Debouncer) Add(event FileEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if existing, ok := d.pending[event.Path]; ok {
		merged := coalesce(existing, event)
		if merged == nil {
			delete(d.pending, event.Path)
		} else {
			existing.event = *merged
		}
	} else {
		d.pending[event.Path] = &pendingEvent{event: event, firstOp: event.Operation}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

// coalesce merges a new event into a pending one. Nil means the pair
// cancelled out.
func coalesce(existing *pendingEvent, incoming FileEvent) *FileEvent {
	switch existing.firstOp {
	case OpCreate:
		switch incoming.Operation {
		case OpModify:
			return &existing.event
		case OpDelete:
			return nil
		}
	case OpDelete:
		if incoming.Operation == OpCreate {
			replaced := incoming
			replaced.Operation = OpModify
			return &replaced
		}
	}
	return &incoming
}

// flush emits every pending event as one batch.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || len(d.pending) == 0 {
		return
	}

	batch := make([]FileEvent, 0, len(d.pending))
	for _, pe := range d.pending {
		batch = append(batch, pe.event)
	}
	d.pending = make(map[string]*pendingEvent)

	select {
	case d.output <- batch:
	default:
		// Consumer stalled; drop rather than block the event loop.
	}
}

// Output returns the channel of coalesced batches.
func (d *Debouncer) Output() <-chan []FileEvent {
	return d.output
}

// Stop stops the debouncer and closes the output channel. Safe to call
// multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
