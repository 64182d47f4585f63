// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package borrowset implements the borrow set (component C): the
// collection of live references for one program point, keyed by reference
// identifier, together with the queries the transfer function and the
// fixed-point driver need over it (borrowed_by, borrows_from, the
// starting-with-label/predicate searches, covers, and join).
//
// The backing store is a hashmap.Hashmap, adapted for an int-keyed,
// pointer-valued table; anywhere the result of a query is observable
// (diagnostics, Conflicts, Parents) the ids are sorted before being
// returned so that output never depends on the map's internal bucket
// order.
package borrowset

import (
	"golang.org/x/exp/slices"

	"github.com/ledgervm/refsafety/hashmap"
	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/refpath"
	"github.com/ledgervm/refsafety/reftable"
)

// RefID identifies one live reference within a BorrowSet.
type RefID int

func idHash(id RefID) uint64  { return uint64(id) }
func idEqual(a, b RefID) bool { return a == b }

// BorrowSet is the full record of live references at one program point: a
// table from RefID to *reftable.Reference, plus the counter used to mint
// fresh ids as new references are created.
type BorrowSet struct {
	refs   *hashmap.Hashmap[RefID, *reftable.Reference]
	nextID RefID
}

// New returns an empty BorrowSet.
func New() *BorrowSet {
	return &BorrowSet{refs: hashmap.New[RefID, *reftable.Reference](0, idHash, idEqual)}
}

// Len returns the number of live references.
func (b *BorrowSet) Len() int { return b.refs.Len() }

// Get returns the reference bound to id, or nil if id is not live.
func (b *BorrowSet) Get(id RefID) *reftable.Reference {
	r, _ := b.refs.Get(id)
	return r
}

// IsMutable reports whether id names a mutable reference. Panics if id is
// not live — callers are expected to check liveness via Get first when the
// id's liveness is itself in question.
func (b *BorrowSet) IsMutable(id RefID) bool {
	r := b.Get(id)
	if r == nil {
		panic("borrowset: IsMutable called on a dead reference id")
	}
	return r.IsMutable()
}

// Insert binds a freshly minted id to ref and returns the id.
func (b *BorrowSet) Insert(ref *reftable.Reference) RefID {
	id := b.nextID
	b.nextID++
	b.refs.Set(id, ref)
	return id
}

// InsertPinned binds id (a parameter or local slot number, already known
// to the caller) to ref. Unlike Insert it does not mint the id, since
// pinned ids are caller-chosen and stable for the whole function; it only
// advances the counter past id so that a later Insert never reuses it.
func (b *BorrowSet) InsertPinned(id RefID, ref *reftable.Reference) {
	if id >= b.nextID {
		b.nextID = id + 1
	}
	b.refs.Set(id, ref)
}

// MakeCopy mints a new, non-pinned reference with the same paths as the
// reference bound to src, retagged with loc, and binds it to a fresh id.
// mutable, if non-nil, overrides the copy's mutability (FreezeRef).
func (b *BorrowSet) MakeCopy(src RefID, loc refoffset.Loc, mutable *bool) RefID {
	r := b.Get(src)
	if r == nil {
		panic("borrowset: MakeCopy of a dead reference id")
	}
	return b.Insert(r.MakeCopy(loc, mutable))
}

// ExtendByLabel borrows from every path of src extended by label, and
// binds the result to a fresh mutable-or-not reference as requested.
func (b *BorrowSet) ExtendByLabel(src RefID, label refoffset.Offset, mutable bool, loc refoffset.Loc) RefID {
	r := b.Get(src)
	if r == nil {
		panic("borrowset: ExtendByLabel of a dead reference id")
	}
	paths := make([]refpath.Path, 0, len(r.Paths()))
	for _, tp := range r.Paths() {
		paths = append(paths, refpath.Extend(tp.Path, label))
	}
	return b.Insert(reftable.New(mutable, loc, paths...))
}

// ExtendByUnknown borrows from every path of src extended by a fresh
// wildcard tagged with site — used when a borrow's exact path cannot be
// named statically (a vector index computed at runtime, for instance).
func (b *BorrowSet) ExtendByUnknown(src RefID, site refoffset.Site, mutable bool, loc refoffset.Loc) RefID {
	return b.ExtendByLabel(src, refoffset.MakeWildcard(site), mutable, loc)
}

// BorrowRoot mints a fresh reference rooted directly at label, with no
// parent in the borrow set — the extend_by_label(empty, ...) case used by
// BorrowLoc and BorrowGlobal, which borrow directly from a local slot or
// a global resource rather than extending an existing reference.
func (b *BorrowSet) BorrowRoot(label refoffset.Offset, mutable bool, loc refoffset.Loc) RefID {
	return b.Insert(reftable.New(mutable, loc, refpath.Initial(label)))
}

// ExtendByLabelFromSet borrows, for every id in srcs, from every path of
// that reference extended by label, unioning the results into one fresh
// reference — the extend_by_label({...}, ...) case used by BorrowField
// (a singleton set) and by Call's multi-argument wildcard extension.
// When srcs is empty (or every source is itself released), the fresh
// reference is rooted directly at label, since there is no parent path
// for it to extend.
func (b *BorrowSet) ExtendByLabelFromSet(srcs []RefID, label refoffset.Offset, mutable bool, loc refoffset.Loc) RefID {
	var paths []refpath.Path
	for _, src := range srcs {
		r := b.Get(src)
		if r == nil {
			panic("borrowset: ExtendByLabelFromSet on a dead reference id")
		}
		for _, tp := range r.Paths() {
			paths = append(paths, refpath.Extend(tp.Path, label))
		}
	}
	if len(paths) == 0 {
		paths = append(paths, refpath.Initial(label))
	}
	return b.Insert(reftable.New(mutable, loc, paths...))
}

// ExtendByUnknownFromSet is ExtendByLabelFromSet with a fresh wildcard in
// place of a concrete label — the extend_by_unknown({...}, ...) case used
// by VectorElementBorrow and by Call's per-return-value borrow.
func (b *BorrowSet) ExtendByUnknownFromSet(srcs []RefID, site refoffset.Site, mutable bool, loc refoffset.Loc) RefID {
	return b.ExtendByLabelFromSet(srcs, refoffset.MakeWildcard(site), mutable, loc)
}

// MoveIntoPinned implements StLoc's reference semantics: whatever dst
// currently holds is released, src's paths (retagged to loc) take its
// place, and src itself is released. Idempotent when src == dst.
func (b *BorrowSet) MoveIntoPinned(src, dst RefID, loc refoffset.Loc) {
	if src == dst {
		return
	}
	srcRef := b.Get(src)
	dstRef := b.Get(dst)
	if srcRef == nil || dstRef == nil {
		panic("borrowset: MoveIntoPinned on a dead reference id")
	}
	if !dstRef.IsPinned() {
		panic("borrowset: MoveIntoPinned destination must be pinned")
	}
	moved := srcRef.CopyPaths(loc)
	dstRef.ReleasePaths()
	dstRef.AddPaths(moved)
	b.Release(src)
}

// Release removes id from the borrow set. If the bound reference is
// pinned, it is emptied in place instead of removed (a released local
// slot keeps its id for the rest of the function).
func (b *BorrowSet) Release(id RefID) {
	r := b.Get(id)
	if r == nil {
		return
	}
	if r.IsPinned() {
		r.ReleasePaths()
		return
	}
	b.refs.Delete(id)
}

// IsPinnedReleased reports whether id is a pinned, currently-empty
// reference — i.e. the local or parameter it represents holds no value.
func (b *BorrowSet) IsPinnedReleased(id RefID) bool {
	r := b.Get(id)
	return r != nil && r.IsPinned() && r.IsReleased()
}

// ids returns every live reference id, sorted ascending. Callers needing
// deterministic output (Conflicts, Parents, diagnostics) always range over
// this instead of iterating the backing hashmap directly.
func (b *BorrowSet) ids() []RefID {
	out := make([]RefID, 0, b.refs.Len())
	b.refs.Range(func(id RefID, _ *reftable.Reference) bool {
		out = append(out, id)
		return true
	})
	slices.Sort(out)
	return out
}

// BorrowedByFiltered returns every live reference admitted by f whose
// path set contains a path that equals or strictly extends some path of
// id (id's "conflicts" — the references that must be dead before id's
// borrowed value can be mutated or moved), partitioned by the shape of
// the extension: an equal path, a wildcard extension, or a concrete
// labeled extension.
func (b *BorrowSet) BorrowedByFiltered(id RefID, f Filter) Conflicts {
	var out Conflicts
	src := b.Get(id)
	if src == nil {
		return out
	}
	for _, other := range b.ids() {
		if other == id {
			continue
		}
		r := b.Get(other)
		if !f.admits(other, r.IsMutable()) {
			continue
		}
		for _, mine := range src.Paths() {
			for _, theirs := range r.Paths() {
				o := refpath.Compare(mine.Path, theirs.Path)
				switch o.Kind {
				case refpath.Equal:
					out.addEqual(other)
				case refpath.RightExtendsLeft:
					if o.Ext.IsWildcard() {
						out.addExistential(other, theirs.Loc)
					} else {
						out.addLabeled(o.Ext, other, theirs.Loc)
					}
				}
			}
		}
	}
	return out
}

// BorrowsFromFiltered is the dual of BorrowedByFiltered: it returns every
// live reference admitted by f some of whose paths are equaled or
// strictly extended by a path of id (id's "parents"), with the same
// three-way partitioning applied to id's extending offset.
func (b *BorrowSet) BorrowsFromFiltered(id RefID, f Filter) Parents {
	var out Parents
	src := b.Get(id)
	if src == nil {
		return out
	}
	for _, other := range b.ids() {
		if other == id {
			continue
		}
		r := b.Get(other)
		if !f.admits(other, r.IsMutable()) {
			continue
		}
		for _, theirs := range r.Paths() {
			for _, mine := range src.Paths() {
				o := refpath.Compare(theirs.Path, mine.Path)
				switch o.Kind {
				case refpath.Equal:
					out.addEqual(other)
				case refpath.RightExtendsLeft:
					if o.Ext.IsWildcard() {
						out.addExistential(other, theirs.Loc)
					} else {
						out.addLabeled(o.Ext, other, theirs.Loc)
					}
				}
			}
		}
	}
	return out
}

// BorrowedBy returns, sorted ascending, the ids of every live reference
// that borrows from id, with no partitioning or filtering.
func (b *BorrowSet) BorrowedBy(id RefID) []RefID {
	return b.BorrowedByFiltered(id, Filter{}).IDs()
}

// BorrowsFrom returns, sorted ascending, the ids of every live reference
// that id borrows from.
func (b *BorrowSet) BorrowsFrom(id RefID) []RefID {
	return b.BorrowsFromFiltered(id, Filter{}).IDs()
}

// BorrowsFromWithin is BorrowsFrom restricted to a candidate set — the
// parent query Call and Ret use, which must only consider a specific
// argument or return set as possible parents, not every reference live
// at the program point.
func (b *BorrowSet) BorrowsFromWithin(id RefID, candidates []RefID) []RefID {
	return b.BorrowsFromFiltered(id, Within(candidates)).IDs()
}

// AllStartingWithLabel returns, sorted ascending, the ids of every live
// reference with at least one path whose first offset has the same
// identity as label.
func (b *BorrowSet) AllStartingWithLabel(label refoffset.Offset) []RefID {
	return b.AllStartingWithPredicate(func(o refoffset.Offset) bool {
		return o.SameIdentity(label)
	})
}

// AllStartingWithPredicate returns, sorted ascending, the ids of every
// live reference with at least one path whose first offset satisfies pred.
func (b *BorrowSet) AllStartingWithPredicate(pred func(refoffset.Offset) bool) []RefID {
	var out []RefID
	for _, id := range b.ids() {
		r := b.Get(id)
		for _, tp := range r.Paths() {
			if len(tp.Path) > 0 && pred(refpath.First(tp.Path)) {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

// Covers reports whether every path of otherID in other is equal to, or an
// extension of, some path of id in b — i.e. b's borrow state for id is at
// least as permissive as other's. Used by the fixed-point driver to decide
// whether a join point has stabilized.
func (b *BorrowSet) Covers(id RefID, other *BorrowSet, otherID RefID) bool {
	mine := b.Get(id)
	theirs := other.Get(otherID)
	if mine == nil || theirs == nil {
		return mine == nil && theirs == nil
	}
	for _, tp := range theirs.Paths() {
		if !pathCoveredBy(tp.Path, mine.Paths()) {
			return false
		}
	}
	return true
}

// CoversSet reports whether b covers other as a whole: for every reference
// id live in other, the same id must be live in b and cover its paths. A
// pinned id released in other but still bound in b trivially covers it
// (there is nothing to cover); a pinned id released in b but bound in
// other never covers it.
func (b *BorrowSet) CoversSet(other *BorrowSet) bool {
	for _, id := range other.ids() {
		if !b.Covers(id, other, id) {
			return false
		}
	}
	return true
}

// pathCoveredBy reports whether some candidate is a prefix of (or equal
// to) p. A shorter, more general path stands in for every path it
// extends to — a reference that may denote "the whole local" already
// accounts for every possible borrow of one of that local's fields — so
// covering runs from general to specific, not the other way around.
func pathCoveredBy(p refpath.Path, candidates []reftable.TaggedPath) bool {
	for _, c := range candidates {
		o := refpath.Compare(c.Path, p)
		if o.Kind == refpath.Equal || o.Kind == refpath.RightExtendsLeft {
			return true
		}
	}
	return false
}

// Join merges next into b in place, id by id: a pinned id present in both
// has its path sets unioned (the usual CFG-join rectification of locals);
// a non-pinned id present in only one predecessor is carried over as is,
// since it denotes a reference born on only one incoming edge.
func (b *BorrowSet) Join(next *BorrowSet) {
	for _, id := range next.ids() {
		other := next.Get(id)
		mine := b.Get(id)
		if mine == nil {
			b.refs.Set(id, other.Clone())
			if id >= b.nextID {
				b.nextID = id + 1
			}
			continue
		}
		mine.AddPaths(other.Paths())
	}
}

// Simplify canonicalizes every live reference's path set (see
// reftable.Reference.Simplify). Run after Join; Covers gives the same
// verdicts with or without it, but simplified sets keep the join from
// accumulating redundant members as iteration proceeds.
func (b *BorrowSet) Simplify() {
	b.refs.Range(func(_ RefID, r *reftable.Reference) bool {
		r.Simplify()
		return true
	})
}

// Clone returns a deep copy of b: every live reference duplicated under
// the same id, pinned bits preserved. The fixed-point driver uses this to
// give each block its own working borrow set derived from its pre-state.
func (b *BorrowSet) Clone() *BorrowSet {
	out := New()
	out.Join(b)
	return out
}
