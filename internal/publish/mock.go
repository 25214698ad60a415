package publish

import (
	"context"
	"sync"

	"github.com/Aman-CERP/docsearch/internal/record"
)

// Mock is an in-memory Publisher for tests and dry runs. It records the
// operations it receives and can be primed with failures.
type Mock struct {
	mu sync.Mutex

	// ClearErr is returned by Clear when set.
	ClearErr error
	// PublishErr is returned by Publish when set.
	PublishErr error

	cleared   bool
	published []record.SearchRecord
	calls     []string
}

// Compile-time interface check.
var _ Publisher = (*Mock)(nil)

// NewMock creates an empty mock publisher.
func NewMock() *Mock {
	return &Mock{}
}

// Clear implements Publisher.
func (m *Mock) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "clear")
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.cleared = true
	m.published = nil
	return nil
}

// Publish implements Publisher.
func (m *Mock) Publish(ctx context.Context, records []record.SearchRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "publish")
	if m.PublishErr != nil {
		return len(records), m.PublishErr
	}
	m.published = append(m.published, records...)
	return len(records), nil
}

// Cleared reports whether Clear succeeded at least once.
func (m *Mock) Cleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

// Published returns a copy of the records accepted so far.
func (m *Mock) Published() []record.SearchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]record.SearchRecord, len(m.published))
	copy(out, m.published)
	return out
}

// Calls returns the operation sequence the mock has seen.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
