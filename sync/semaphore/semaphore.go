// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package semaphore wraps golang.org/x/sync/semaphore with available-
// weight accounting. verifier.RunBatch uses it to bound how many function
// analyses run concurrently, and its tests observe Available to assert
// the bound actually holds.
package semaphore

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Weighted is a weighted semaphore that can also report how much of its
// capacity is currently free.
type Weighted struct {
	sem       *semaphore.Weighted
	maxWeight int64

	mu            sync.Mutex
	currentWeight int64
}

// NewWeighted initializes a new weighted semaphore with a given capacity.
func NewWeighted(maxWeight int64) *Weighted {
	return &Weighted{
		sem:           semaphore.NewWeighted(maxWeight),
		maxWeight:     maxWeight,
		currentWeight: maxWeight,
	}
}

// Acquire blocks until the specified weight is available (or ctx is
// done) and takes it. The accounting mutex is not held while blocking,
// so a concurrent Release can always proceed.
func (w *Weighted) Acquire(ctx context.Context, weight int64) error {
	if err := w.sem.Acquire(ctx, weight); err != nil {
		return err
	}
	w.mu.Lock()
	w.currentWeight -= weight
	w.mu.Unlock()
	return nil
}

// Release returns the specified weight to the semaphore.
func (w *Weighted) Release(weight int64) {
	w.sem.Release(weight)
	w.mu.Lock()
	w.currentWeight += weight
	w.mu.Unlock()
}

// Available returns the currently unacquired weight.
func (w *Weighted) Available() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentWeight
}
