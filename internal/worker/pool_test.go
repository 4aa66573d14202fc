package worker

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
)

func TestPool_PreservesOrder(t *testing.T) {
	inputs := []int{5, 1, 4, 2, 3, 9, 7}
	pool := NewPool(3, func(_ context.Context, n int) (string, error) {
		return strconv.Itoa(n * 10), nil
	})

	results := pool.Execute(context.Background(), inputs)
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	for i, r := range results {
		if r.Input != inputs[i] || r.Output != strconv.Itoa(inputs[i]*10) || r.Skipped || r.Err != nil {
			t.Errorf("results[%d] = %+v", i, r)
		}
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	errOdd := errors.New("odd")
	pool := NewPool(2, func(_ context.Context, n int) (int, error) {
		if n%2 == 1 {
			return 0, errOdd
		}
		return n, nil
	})

	results := pool.Execute(context.Background(), []int{1, 2, 3})
	if !errors.Is(results[0].Err, errOdd) || results[1].Err != nil || !errors.Is(results[2].Err, errOdd) {
		t.Errorf("unexpected errors: %+v", results)
	}
}

func TestPool_CancelledContextSkips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool(0, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	results := pool.Execute(ctx, []int{1, 2, 3})
	skipped := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
		}
	}
	if int(calls.Load())+skipped != 3 {
		t.Errorf("calls=%d skipped=%d, want total 3", calls.Load(), skipped)
	}
}

func TestPool_EmptyInput(t *testing.T) {
	pool := NewPool(4, func(_ context.Context, n int) (int, error) { return n, nil })
	if got := pool.Execute(context.Background(), nil); len(got) != 0 {
		t.Errorf("got %d results", len(got))
	}
}
