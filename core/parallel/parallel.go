// Package parallel provides the worker pool used to run independent trials
// and bootstrap replicates. Trials share no mutable state, so scheduling is
// a plain fan-out with a join before aggregation.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// ForEach runs fn(i) for i in [0, items) across at most workers goroutines.
// workers <= 1 means sequential execution on the calling goroutine, and
// workers <= 0 falls back to runtime.NumCPU().
//
// Cancellation is cooperative between items: once ctx is cancelled no new
// item is started, but in-flight items run to completion and their results
// are preserved. Returns ctx.Err() if the context was cancelled.
func ForEach(ctx context.Context, items, workers int, fn func(i int)) error {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	if workers == 1 {
		for i := 0; i < items; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			fn(i)
		}
		return nil
	}

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				fn(i)
			}
		}()
	}

	var err error
feed:
	for i := 0; i < items; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case work <- i:
		}
	}
	close(work)
	wg.Wait()
	return err
}

// Parallelize divides items into contiguous chunks by CPU count and runs fn
// on each (start, end) range concurrently. Used for per-element numeric
// work where chunking amortizes goroutine overhead.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
