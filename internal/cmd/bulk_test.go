package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunBulkOperation_KeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	ids := []string{"ref_1", "ref_2", "ref_3", "ref_4"}
	delay := map[string]time.Duration{"ref_1": 20 * time.Millisecond, "ref_2": 10 * time.Millisecond}
	results := runBulkOperation(context.Background(), ids, 2, false, nil, func(_ context.Context, id string) (any, error) {
		if id == "ref_3" {
			return nil, errors.New("Transaction reference not found")
		}
		time.Sleep(delay[id])
		return map[string]any{"reference": id}, nil
	})

	require.Len(t, results, len(ids))
	for i, r := range results {
		assert.Equal(t, ids[i], r.ID)
	}
	assert.True(t, results[0].Success)
	assert.Equal(t, map[string]any{"reference": "ref_1"}, results[0].Data)
	assert.False(t, results[2].Success)
	assert.Equal(t, "Transaction reference not found", results[2].Error)

	ok, failed := countResults(results)
	assert.Equal(t, 3, ok)
	assert.Equal(t, 1, failed)
}

func TestRunBulkOperation_BoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, peak int64
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("TRF_%d", i)
	}

	results := runBulkOperation(context.Background(), ids, 3, false, nil, func(context.Context, string) (any, error) {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return nil, nil
	})

	assert.Len(t, results, 12)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3))
	assert.Positive(t, atomic.LoadInt64(&peak))
}

func TestRunBulkOperation_Progress(t *testing.T) {
	var errOut bytes.Buffer
	runBulkOperation(context.Background(), []string{"a", "b"}, 0, true, &errOut, func(context.Context, string) (any, error) {
		return nil, nil
	})
	assert.Contains(t, errOut.String(), "Processed 2/2\n")
}

func TestRunBulkOperation_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	results := runBulkOperation(ctx, []string{"a", "b", "c"}, 1, false, nil, func(context.Context, string) (any, error) {
		atomic.AddInt64(&calls, 1)
		return nil, nil
	})
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "context canceled")
	}
	assert.Zero(t, atomic.LoadInt64(&calls))
}
