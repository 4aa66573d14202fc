package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Result pairs an input with the output of processing it.
type Result[T any, R any] struct {
	Input  T
	Output R
	Err    error
	// Skipped is set when the context was cancelled before the input was processed.
	Skipped bool
}

// ProcessFunc is the function signature for processing a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute runs all inputs through the pool. Results are returned in input
// order; inputs not reached before ctx is cancelled are marked Skipped.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Result[T, R] {
	results := make([]Result[T, R], len(inputs))
	for i := range inputs {
		results[i] = Result[T, R]{Input: inputs[i], Skipped: true}
	}
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(inputs)); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				out, err := p.process(ctx, inputs[idx])
				results[idx] = Result[T, R]{Input: inputs[idx], Output: out, Err: err}
				if err != nil {
					log.Debug().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
		}
	}
	close(inputCh)

	wg.Wait()
	return results
}
