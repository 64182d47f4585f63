// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package verifier

import (
	"context"

	"github.com/ledgervm/refsafety/sync/semaphore"
)

// RunBatch analyzes every function in fns, running up to concurrency
// analyses at once. Each function gets its own Run call over its own
// AbstractState, so concurrency here is pure throughput — no state is
// shared between analyses. Results are returned in the same order as
// fns regardless of completion order.
//
// concurrency <= 0 is treated as 1.
func RunBatch(ctx context.Context, fns []Function, variant Variant, opts Options, concurrency int64) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := semaphore.NewWeighted(concurrency)
	results := make([]*Result, len(fns))
	errCh := make(chan error, len(fns))

	for i, fn := range fns {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(i int, fn Function) {
			defer sem.Release(1)
			results[i] = RunSelected(variant, fn, opts)
			errCh <- nil
		}(i, fn)
	}

	for range fns {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}
	return results, nil
}
