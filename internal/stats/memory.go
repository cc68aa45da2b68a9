// internal/stats/memory.go
//
// In-memory implementation of the Store interface.
// Used when STATS_BACKEND=memory and in tests; state is lost on exit.

package stats

import (
	"context"
	"sync"
)

// MemoryStore keeps records in a slice and counters in a Summary.
type MemoryStore struct {
	mu      sync.RWMutex // guards records and summary
	records []Record     // append order
	summary Summary
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record appends r and updates the counters.
func (m *MemoryStore) Record(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	m.summary.Add(r)
	return nil
}

// Summary returns a copy of the counters.
func (m *MemoryStore) Summary(ctx context.Context) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary, nil
}

// History returns records newest first.
func (m *MemoryStore) History(ctx context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Record, 0, n)
	for i := len(m.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
