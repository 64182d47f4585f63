// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package reftable implements the reference table (component B): the record
// bound to each live reference — its mutability, its pinned/non-pinned
// lifecycle bit, and the deduplicated set of paths it may denote.
package reftable

import (
	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/refpath"
)

// TaggedPath pairs a path with the source location of the instruction that
// introduced it. The location is carried purely to attach diagnostics to
// the offending bytecode; it plays no part in path equality or in the
// borrow set's queries.
type TaggedPath struct {
	Path refpath.Path
	Loc  refoffset.Loc
}

// Reference is the record bound to one live reference identifier.
//
// Invariant: a non-pinned Reference has a non-empty path set. A pinned
// Reference with an empty path set is released (no value currently held in
// the local slot or parameter it represents).
type Reference struct {
	mutable bool
	pinned  bool
	paths   []TaggedPath
}

// New constructs a Reference with the given mutability and initial path
// set. The paths are copied in under loc.
func New(mutable bool, loc refoffset.Loc, paths ...refpath.Path) *Reference {
	r := &Reference{mutable: mutable}
	for _, p := range paths {
		r.paths = append(r.paths, TaggedPath{Path: p, Loc: loc})
	}
	return r
}

// NewPinned constructs a pinned Reference — one that represents a local
// slot or parameter for the lifetime of the function and is never removed
// from the borrow set, only released.
func NewPinned(mutable bool, loc refoffset.Loc, paths ...refpath.Path) *Reference {
	r := New(mutable, loc, paths...)
	r.pinned = true
	return r
}

// IsMutable reports whether r was created mutable. r's mutability never
// changes; FreezeRef produces an immutable copy through MakeCopy.
func (r *Reference) IsMutable() bool { return r.mutable }

// IsPinned reports whether r is tied to a fixed local slot or parameter.
func (r *Reference) IsPinned() bool { return r.pinned }

// Paths returns the reference's current path set. The returned slice must
// not be mutated by the caller.
func (r *Reference) Paths() []TaggedPath { return r.paths }

// IsReleased reports whether r currently holds no paths. Only meaningful
// (and only ever true) for a pinned reference; a non-pinned reference with
// no paths is never observed — it would have been removed from the borrow
// set instead.
func (r *Reference) IsReleased() bool { return len(r.paths) == 0 }

// AddPaths unions extra into r's path set, deduplicating by exact offset
// sequence (not by refpath.Compare — a path that merely covers another is
// still a distinct member of the disjunction).
func (r *Reference) AddPaths(extra []TaggedPath) {
	for _, tp := range extra {
		if !r.contains(tp.Path) {
			r.paths = append(r.paths, tp)
		}
	}
}

func (r *Reference) contains(p refpath.Path) bool {
	for _, tp := range r.paths {
		if pathEqual(tp.Path, p) {
			return true
		}
	}
	return false
}

func pathEqual(a, b refpath.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameIdentity(b[i]) {
			return false
		}
	}
	return true
}

// Simplify canonicalizes r's path set by dropping every path that
// strictly extends another path in the same set — the shorter path
// already accounts for everything reachable through the longer one. Run
// after a join to keep path sets from growing with redundant members.
func (r *Reference) Simplify() {
	var kept []TaggedPath
	for i, tp := range r.paths {
		redundant := false
		for j, other := range r.paths {
			if i == j {
				continue
			}
			if refpath.Compare(other.Path, tp.Path).Kind == refpath.RightExtendsLeft {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, tp)
		}
	}
	r.paths = kept
}

// CopyPaths returns a new path set with the same paths as r, retagged with
// loc — used when a reference is copied to a new identifier (CopyLoc,
// make_copy) so the copy's paths carry their own provenance.
func (r *Reference) CopyPaths(loc refoffset.Loc) []TaggedPath {
	out := make([]TaggedPath, len(r.paths))
	for i, tp := range r.paths {
		out[i] = TaggedPath{Path: tp.Path, Loc: loc}
	}
	return out
}

// ReleasePaths empties r's path set. Only valid on a pinned reference —
// releasing a non-pinned reference is a borrow-set-level removal, not a
// reference-table-level operation (see borrowset.BorrowSet.Release).
func (r *Reference) ReleasePaths() {
	if !r.pinned {
		panic("reftable: ReleasePaths called on a non-pinned reference")
	}
	r.paths = nil
}

// Clone returns a deep copy of r, preserving its pinned bit and every
// path's location tag — unlike MakeCopy, which always produces a fresh
// non-pinned reference for a new identifier and retags its paths. Used
// when an entire borrow set is duplicated (function-entry setup, the
// fixed-point driver's per-block working copies) and a pinned local's
// identity must carry over unchanged.
func (r *Reference) Clone() *Reference {
	paths := make([]TaggedPath, len(r.paths))
	copy(paths, r.paths)
	return &Reference{mutable: r.mutable, pinned: r.pinned, paths: paths}
}

// MakeCopy returns a new, non-pinned Reference with the same paths as r,
// retagged with loc. If mutable is non-nil it overrides r's mutability
// (used by FreezeRef, which only ever weakens mutable to immutable).
func (r *Reference) MakeCopy(loc refoffset.Loc, mutable *bool) *Reference {
	out := &Reference{mutable: r.mutable, paths: r.CopyPaths(loc)}
	if mutable != nil {
		out.mutable = *mutable
	}
	return out
}
