// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package absstate implements the abstract state (component D): the
// triple of function identity, locals-to-reference binding, and borrow
// set that the transfer function rewrites at every instruction, together
// with the read/write/borrowed predicates built on top of it.
package absstate

import (
	"golang.org/x/exp/slices"

	"github.com/ledgervm/refsafety/borrowset"
	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/refpath"
	"github.com/ledgervm/refsafety/reftable"
)

// LocalSlot identifies a parameter or local variable slot within a
// function. Parameters occupy the low slots, locals the slots above them,
// matching the layout the bytecode itself uses.
type LocalSlot int

// AbstractState is the fact carried between instructions by the
// fixed-point driver: which function is being analyzed, the pinned
// reference id holding the value currently stored in each
// reference-typed local slot, and the full borrow set of live
// references. Whether a local is itself *borrowed* (something else
// points into its storage) is a question answered against Borrows
// directly — it does not depend on whether that local is reference-typed
// or on anything in locals.
type AbstractState struct {
	FunctionIndex int
	locals        map[LocalSlot]borrowset.RefID
	Borrows       *borrowset.BorrowSet
}

// New returns an empty AbstractState for the given function.
func New(functionIndex int) *AbstractState {
	return &AbstractState{
		FunctionIndex: functionIndex,
		locals:        make(map[LocalSlot]borrowset.RefID),
		Borrows:       borrowset.New(),
	}
}

// DeclareRefLocal allocates a pinned, initially-released reference and
// binds slot to it. Whoever builds a function's entry state calls this
// once per reference-typed local variable, before any instruction runs;
// reference-typed parameters use DeclareRefParameter instead.
func (s *AbstractState) DeclareRefLocal(slot LocalSlot, mutable bool, loc refoffset.Loc) borrowset.RefID {
	id := s.Borrows.Insert(reftable.NewPinned(mutable, loc))
	s.BindLocal(slot, id)
	return id
}

// DeclareRefParameter is DeclareRefLocal for a parameter whose static
// type is already a reference: its pinned reference starts out holding
// the incoming Parameter(paramIndex) path rather than empty.
func (s *AbstractState) DeclareRefParameter(slot LocalSlot, mutable bool, paramIndex int, loc refoffset.Loc) borrowset.RefID {
	path := refpath.Initial(refoffset.MakeLabel(refoffset.Parameter, paramIndex))
	id := s.Borrows.Insert(reftable.NewPinned(mutable, loc, path))
	s.BindLocal(slot, id)
	return id
}

// BindLocal records the pinned reference id a reference-typed local slot
// is backed by for the lifetime of the function: one pinned id per
// ref-typed slot, assigned once (by the driver, from the local
// signature) before analysis begins. Non-reference-typed locals are
// never bound — their borrowed-ness is tracked purely through
// Local-labeled paths in Borrows, not through this map. The binding
// itself never changes after MoveLoc; only the pinned reference's
// released/live state does, which is exactly what makes the
// locals-rectified join in the fixed-point driver well defined — both
// sides of a join agree on the id for a given slot even when they
// disagree on whether it currently holds a value.
func (s *AbstractState) BindLocal(slot LocalSlot, id borrowset.RefID) {
	s.locals[slot] = id
}

// LocalRef returns the pinned reference id currently held by the
// reference-typed local in slot, and whether it is bound to one.
func (s *AbstractState) LocalRef(slot LocalSlot) (borrowset.RefID, bool) {
	id, ok := s.locals[slot]
	return id, ok
}

// Locals returns every bound local slot, sorted ascending, so that callers
// such as the Ret rule walk the locals in a deterministic order.
func (s *AbstractState) Locals() []LocalSlot {
	out := make([]LocalSlot, 0, len(s.locals))
	for slot := range s.locals {
		out = append(out, slot)
	}
	slices.Sort(out)
	return out
}

// IsLocalBorrowed reports whether any live reference's path is rooted at
// the given local slot — i.e. something currently points into it.
func (s *AbstractState) IsLocalBorrowed(slot LocalSlot) bool {
	return len(s.Borrows.AllStartingWithLabel(refoffset.MakeLabel(refoffset.Local, int(slot)))) > 0
}

// IsLocalMutablyBorrowed is IsLocalBorrowed restricted to mutable
// references.
func (s *AbstractState) IsLocalMutablyBorrowed(slot LocalSlot) bool {
	for _, id := range s.Borrows.AllStartingWithLabel(refoffset.MakeLabel(refoffset.Local, int(slot))) {
		if s.Borrows.IsMutable(id) {
			return true
		}
	}
	return false
}

// IsGlobalBorrowed reports whether some live reference has a path rooted
// at the given global label.
func (s *AbstractState) IsGlobalBorrowed(global refoffset.Offset) bool {
	return len(s.Borrows.AllStartingWithLabel(global)) > 0
}

// IsWritable reports whether id can be written through: it must be
// mutable and no live reference may hold a strict extension of one of
// its paths. An equal-path alias does not block the write — two names
// for exactly the same location can't observe a partial update the way
// a reference into the middle of it could.
func (s *AbstractState) IsWritable(id borrowset.RefID) bool {
	ref := s.Borrows.Get(id)
	if ref == nil || !ref.IsMutable() {
		return false
	}
	c := s.Borrows.BorrowedByFiltered(id, borrowset.Filter{})
	return len(c.Existential) == 0 && len(c.Labeled) == 0
}

// IsReadable reports whether id can be read through. An immutable
// reference always can; a mutable one can as long as no live mutable
// reference strictly extends it — except that when the read is of a
// single field (atField non-nil), a mutable borrow of a different,
// disjoint field does not block it.
func (s *AbstractState) IsReadable(id borrowset.RefID, atField *refoffset.Offset) bool {
	ref := s.Borrows.Get(id)
	if ref == nil {
		return false
	}
	if !ref.IsMutable() {
		return true
	}
	c := s.Borrows.BorrowedByFiltered(id, borrowset.MutableOnly())
	if len(c.Existential) != 0 {
		return false
	}
	if atField == nil {
		return len(c.Labeled) == 0
	}
	return !c.HasLabel(*atField)
}

// HasNoParentsInSet reports whether id borrows from nothing else
// currently live — i.e. it is a root reference (a BorrowLoc/BorrowGlobal
// result), not a field or vector-element extension of another live
// reference.
func (s *AbstractState) HasNoParentsInSet(id borrowset.RefID) bool {
	return len(s.Borrows.BorrowsFrom(id)) == 0
}

// HasNoParentsIn reports whether id borrows from none of candidates — the
// has_no_parents_in_set(id, S) predicate used by Call and Ret, which
// restrict the parent search to a specific argument or return set rather
// than every reference live at the program point.
func (s *AbstractState) HasNoParentsIn(id borrowset.RefID, candidates []borrowset.RefID) bool {
	return len(s.Borrows.BorrowsFromWithin(id, candidates)) == 0
}

// IsFrameSafeToDestroy reports whether no live reference's path is rooted
// at a Local or a Global label — the condition checked at Ret, after
// every pinned local-slot value has already been released, to ensure no
// reference into the current frame (or an acquired resource) escapes it.
func (s *AbstractState) IsFrameSafeToDestroy() bool {
	rooted := s.Borrows.AllStartingWithPredicate(func(o refoffset.Offset) bool {
		return !o.IsWildcard() && (o.Kind() == refoffset.Local || o.Kind() == refoffset.Global)
	})
	return len(rooted) == 0
}

// RectifiedJoin folds incoming into pre using the fixed-point driver's
// locals-rectified join: a pinned local reference released on exactly one
// side is released on both sides before the two borrow sets are merged,
// so a slot is only ever "certainly bound" at a join point when every
// predecessor agrees it is. It reports whether the result differs from
// pre's prior state; pre is left unmodified when it does not.
func (pre *AbstractState) RectifiedJoin(incoming *AbstractState) bool {
	lhs := pre.Borrows.Clone()
	rhs := incoming.Borrows.Clone()

	rectified := false
	for _, id := range pre.locals {
		lEmpty := lhs.IsPinnedReleased(id)
		rEmpty := rhs.IsPinnedReleased(id)
		if lEmpty == rEmpty {
			continue
		}
		if !lEmpty {
			lhs.Release(id)
			rectified = true
		}
		if !rEmpty {
			rhs.Release(id)
			rectified = true
		}
	}

	joined := lhs
	joined.Join(rhs)
	joined.Simplify()

	if !rectified && pre.Borrows.CoversSet(joined) {
		return false
	}
	pre.Borrows = joined
	return true
}

// Clone returns a deep-enough copy of s suitable for the fixed-point
// driver to mutate independently of the original (used when forking state
// across multiple successor blocks).
func (s *AbstractState) Clone() *AbstractState {
	out := New(s.FunctionIndex)
	for slot, id := range s.locals {
		out.locals[slot] = id
	}
	out.Borrows = s.Borrows.Clone()
	return out
}
