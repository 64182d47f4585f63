// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package verifier implements the fixed-point driver (component F): the
// work-list iterator that walks a function's control-flow graph, folding
// the transfer function over each block's instructions and propagating
// post-states into successors via the locals-rectified join, until every
// block's pre-state has stabilized or an instruction fails.
package verifier

import (
	"golang.org/x/exp/slices"

	"github.com/ledgervm/refsafety/absstate"
	"github.com/ledgervm/refsafety/cfg"
	"github.com/ledgervm/refsafety/verifyerr"
)

// StepFunc folds the transfer function over one instruction, rewriting s
// in place. codeOffset identifies the instruction for diagnostics. An
// upstream bytecode-decoding pass supplies this closure; the driver itself
// has no notion of instruction encoding.
type StepFunc func(codeOffset int, s *absstate.AbstractState) *verifyerr.VerifyError

// Function bundles everything one driver run needs: the function's graph,
// its entry state (parameters and locals already declared, see
// absstate.AbstractState.DeclareRefLocal/DeclareRefParameter), and the
// per-instruction evaluator.
type Function struct {
	Index int
	CFG   cfg.Graph
	Entry *absstate.AbstractState
	Step  StepFunc
}

// Options configures the driver's error-collection policy.
type Options struct {
	// CollectAllErrors keeps analyzing blocks unreachable from an
	// errored block's successors instead of stopping the whole function
	// at the first failure. The default (false) matches "a standard
	// invocation stops at the first error per function definition".
	CollectAllErrors bool
}

// BlockResult is the driver's final verdict for one block: its
// stabilized pre-state, the post-state computed from it (nil if the
// block was never reached), and the error raised while processing it, if
// any.
type BlockResult struct {
	Pre  *absstate.AbstractState
	Post *absstate.AbstractState
	Err  *verifyerr.VerifyError
}

// Result is the outcome of one function's analysis.
type Result struct {
	Blocks map[cfg.BlockID]*BlockResult
	Errors []*verifyerr.VerifyError
}

// Run analyzes fn to a fixed point and returns every block's stabilized
// state together with whatever errors were found.
func Run(fn Function, opts Options) *Result {
	g := fn.CFG
	blocks := make(map[cfg.BlockID]*BlockResult)

	entry := g.EntryBlockID()
	blocks[entry] = &BlockResult{Pre: fn.Entry.Clone()}

	lastContinueOf := g.LoopLastContinueBlocks()

	order := g.TraversalOrder()
	queue := append([]cfg.BlockID(nil), order...)
	queued := make(map[cfg.BlockID]bool, len(queue))
	for _, b := range queue {
		queued[b] = true
	}

	var errs []*verifyerr.VerifyError

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued[b] = false

		br := blocks[b]
		if br == nil || br.Pre == nil {
			// No predecessor has propagated into this block yet; a
			// later propagation will re-enqueue it.
			continue
		}
		if br.Err != nil {
			// Already settled into a terminal error state.
			continue
		}

		post := br.Pre.Clone()
		var blockErr *verifyerr.VerifyError
		for _, offset := range g.InstrIndexes(b) {
			if blockErr = fn.Step(offset, post); blockErr != nil {
				break
			}
		}
		br.Post = post
		br.Err = blockErr

		if blockErr != nil {
			errs = append(errs, blockErr)
			if !opts.CollectAllErrors {
				break
			}
			// Successors are left as they are: this block's post is
			// not propagated.
			continue
		}

		for _, succ := range g.Successors(b) {
			changed := propagate(blocks, succ, post)
			if !changed {
				continue
			}
			if header, isLastContinue := lastContinueOf[b]; isLastContinue && succ == header {
				// Re-drive the loop header immediately so the back
				// edge's effect on its pre-state is accounted for
				// before the driver moves past the loop.
				queue = append([]cfg.BlockID{header}, queue...)
				queued[header] = true
				continue
			}
			if !queued[succ] {
				queue = append(queue, succ)
				queued[succ] = true
			}
		}
	}

	return &Result{Blocks: blocks, Errors: errs}
}

// propagate folds post into succ's pre-state via the locals-rectified
// join, creating succ's entry if this is its first incoming edge. It
// reports whether succ's pre-state changed.
func propagate(blocks map[cfg.BlockID]*BlockResult, succ cfg.BlockID, post *absstate.AbstractState) bool {
	br := blocks[succ]
	if br == nil {
		blocks[succ] = &BlockResult{Pre: post.Clone()}
		return true
	}
	if br.Pre == nil {
		br.Pre = post.Clone()
		return true
	}
	return br.Pre.RectifiedJoin(post)
}

// FirstError returns the earliest-recorded error, or nil on success.
func (r *Result) FirstError() *verifyerr.VerifyError {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// SortedBlockIDs returns every analyzed block id, ascending — used by
// callers that need a deterministic walk over Result.Blocks (a Go map has
// none).
func (r *Result) SortedBlockIDs() []cfg.BlockID {
	out := make([]cfg.BlockID, 0, len(r.Blocks))
	for id := range r.Blocks {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
