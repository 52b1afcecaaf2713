package sink_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/mxsweep/sink"
	"github.com/optimode/mxsweep/types"
)

func verdict(email string, status types.Status) types.Verdict {
	return types.Verdict{Email: email, Status: status, CheckedAt: time.Now()}
}

func TestMemory_WriteAndQuery(t *testing.T) {
	m := sink.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Write(ctx, verdict("a@example.com", types.StatusValid)))
	require.NoError(t, m.Write(ctx, verdict("b@example.com", types.StatusNoMX)))
	require.NoError(t, m.Write(ctx, verdict("a@example.com", types.StatusValid)))

	all, err := m.Query(ctx, sink.Criteria{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byEmail, err := m.Query(ctx, sink.Criteria{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	byStatus, err := m.Query(ctx, sink.Criteria{Status: types.StatusNoMX})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "b@example.com", byStatus[0].Email)

	none, err := m.Query(ctx, sink.Criteria{Email: "a@example.com", Status: types.StatusNoMX})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Duplicate writes accumulate: the store is append-only with no implicit
// deduplication.
func TestMemory_AppendOnly(t *testing.T) {
	m := sink.NewMemory()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, m.Write(ctx, verdict("dup@example.com", types.StatusValid)))
	}
	assert.Equal(t, 2, m.Len())
}

func TestMemory_Summary(t *testing.T) {
	m := sink.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Write(ctx, verdict("a@example.com", types.StatusValid)))
	require.NoError(t, m.Write(ctx, verdict("b@example.com", types.StatusValid)))
	require.NoError(t, m.Write(ctx, verdict("c", types.StatusInvalidSyntax)))

	counts, err := m.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.StatusValid])
	assert.Equal(t, 1, counts[types.StatusInvalidSyntax])
}

func TestMemory_ConcurrentWriters(t *testing.T) {
	m := sink.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				assert.NoError(t, m.Write(ctx, verdict("x@example.com", types.StatusValid)))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, m.Len())
}
