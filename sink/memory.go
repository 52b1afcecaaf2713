package sink

import (
	"context"
	"sync"

	"github.com/optimode/mxsweep/types"
)

// Memory is an in-process verdict store. Writes append under a mutex so
// concurrent workers interleave without corruption; reads copy out so
// callers cannot mutate stored verdicts.
type Memory struct {
	mu       sync.Mutex
	verdicts []types.Verdict
}

func NewMemory() *Memory {
	return &Memory{}
}

// Write records one verdict. It never fails.
func (m *Memory) Write(_ context.Context, v types.Verdict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdicts = append(m.verdicts, v)
	return nil
}

// Query returns the stored verdicts matching the criteria, in write order.
func (m *Memory) Query(_ context.Context, c Criteria) ([]types.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.Verdict
	for _, v := range m.verdicts {
		if c.matches(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Summary returns the stored record count per status.
func (m *Memory) Summary(_ context.Context) (map[types.Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[types.Status]int)
	for _, v := range m.verdicts {
		counts[v.Status]++
	}
	return counts, nil
}

// Len returns the number of stored verdicts.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.verdicts)
}
