// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package borrowset

import (
	"testing"

	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/refpath"
	"github.com/ledgervm/refsafety/reftable"
)

func localPath(i int) refpath.Path {
	return refpath.Initial(refoffset.MakeLabel(refoffset.Local, i))
}

func TestInsertAndGet(t *testing.T) {
	b := New()
	id := b.Insert(reftable.New(true, 0, localPath(0)))
	if b.Get(id) == nil {
		t.Fatal("expected reference to be live")
	}
	if !b.IsMutable(id) {
		t.Fatal("expected mutable reference")
	}
}

func TestExtendByLabel(t *testing.T) {
	b := New()
	local := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	field := b.ExtendByLabel(local, refoffset.MakeLabel(refoffset.Field, 2), true, 1)
	got := b.Get(field).Paths()
	if len(got) != 1 {
		t.Fatalf("expected one path, got %d", len(got))
	}
	want := refpath.Extend(localPath(0), refoffset.MakeLabel(refoffset.Field, 2))
	if refpath.Compare(got[0].Path, want).Kind != refpath.Equal {
		t.Fatalf("expected %v, got %v", want, got[0].Path)
	}
}

func TestBorrowedByAndBorrowsFrom(t *testing.T) {
	b := New()
	local := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	field := b.ExtendByLabel(local, refoffset.MakeLabel(refoffset.Field, 2), true, 1)

	conflicts := b.BorrowedBy(local)
	if len(conflicts) != 1 || conflicts[0] != field {
		t.Fatalf("expected local's conflicts to be [field], got %v", conflicts)
	}
	parents := b.BorrowsFrom(field)
	if len(parents) != 1 || parents[0] != local {
		t.Fatalf("expected field's parents to be [local], got %v", parents)
	}
}

func TestMoveIntoPinnedRemovesSource(t *testing.T) {
	b := New()
	dst := b.Insert(reftable.NewPinned(true, 0))
	src := b.Insert(reftable.New(true, 0, localPath(1)))
	b.MoveIntoPinned(src, dst, 2)
	if b.Get(src) != nil {
		t.Fatal("expected source to be removed after move")
	}
	if len(b.Get(dst).Paths()) != 1 {
		t.Fatalf("expected moved path on destination, got %v", b.Get(dst).Paths())
	}
}

func TestReleasePinnedEmptiesInPlace(t *testing.T) {
	b := New()
	id := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	b.Release(id)
	if !b.IsPinnedReleased(id) {
		t.Fatal("expected pinned reference to be released, not removed")
	}
	if b.Get(id) == nil {
		t.Fatal("pinned reference should still be present after release")
	}
}

func TestReleaseNonPinnedRemoves(t *testing.T) {
	b := New()
	id := b.Insert(reftable.New(true, 0, localPath(0)))
	b.Release(id)
	if b.Get(id) != nil {
		t.Fatal("expected non-pinned reference to be removed on release")
	}
}

func TestAllStartingWithLabel(t *testing.T) {
	b := New()
	a := b.Insert(reftable.New(true, 0, localPath(0)))
	c := b.Insert(reftable.New(true, 0, localPath(1)))
	got := b.AllStartingWithLabel(refoffset.MakeLabel(refoffset.Local, 0))
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected [%d], got %v", a, got)
	}
	_ = c
}

func TestCoversReflexive(t *testing.T) {
	b := New()
	id := b.Insert(reftable.New(true, 0, localPath(0)))
	if !b.Covers(id, b, id) {
		t.Fatal("expected a borrow set to cover itself")
	}
}

func TestCoversIsGeneralOverSpecific(t *testing.T) {
	general := New()
	generalID := general.Insert(reftable.NewPinned(true, 0, localPath(0)))

	specific := New()
	specificID := specific.Insert(reftable.NewPinned(true, 0,
		refpath.Extend(localPath(0), refoffset.MakeLabel(refoffset.Field, 1))))

	if !general.Covers(generalID, specific, specificID) {
		t.Fatal("expected the whole-local borrow to cover a borrow of one of its fields")
	}
	if specific.Covers(specificID, general, generalID) {
		t.Fatal("a field-only borrow must not be reported as covering the whole local")
	}
}

func TestJoinUnionsPinnedPaths(t *testing.T) {
	left := New()
	id := left.Insert(reftable.NewPinned(true, 0, localPath(0)))

	right := New()
	right.InsertPinned(id, reftable.NewPinned(true, 0, refpath.Extend(localPath(0), refoffset.MakeLabel(refoffset.Field, 3))))

	left.Join(right)
	got := left.Get(id).Paths()
	if len(got) != 2 {
		t.Fatalf("expected joined reference to carry both paths, got %d", len(got))
	}
}

func TestBorrowRootHasNoParent(t *testing.T) {
	b := New()
	id := b.BorrowRoot(refoffset.MakeLabel(refoffset.Local, 0), true, 0)
	if len(b.BorrowsFrom(id)) != 0 {
		t.Fatal("expected a root borrow to have no parents")
	}
	got := b.Get(id).Paths()
	if len(got) != 1 || refpath.Compare(got[0].Path, localPath(0)).Kind != refpath.Equal {
		t.Fatalf("expected path [Local(0)], got %v", got)
	}
}

func TestExtendByLabelFromSetUnionsParents(t *testing.T) {
	b := New()
	a := b.Insert(reftable.New(true, 0, localPath(0)))
	c := b.Insert(reftable.New(true, 0, localPath(1)))
	field := b.ExtendByLabelFromSet([]RefID{a, c}, refoffset.MakeLabel(refoffset.Field, 0), true, 1)
	parents := b.BorrowsFrom(field)
	if len(parents) != 2 {
		t.Fatalf("expected two parents, got %v", parents)
	}
}

func TestBorrowedByPartitionsByExtensionShape(t *testing.T) {
	b := New()
	base := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	equal := b.MakeCopy(base, 1, nil)
	labeled := b.ExtendByLabel(base, refoffset.MakeLabel(refoffset.Field, 4), true, 2)
	wild := b.ExtendByUnknown(base, refoffset.Site{Instr: 3}, true, 3)

	c := b.BorrowedByFiltered(base, Filter{})
	if len(c.Equal) != 1 || c.Equal[0] != equal {
		t.Fatalf("expected equal partition [%d], got %v", equal, c.Equal)
	}
	if _, ok := c.Existential[wild]; !ok || len(c.Existential) != 1 {
		t.Fatalf("expected existential partition {%d}, got %v", wild, c.Existential)
	}
	inner, ok := c.Labeled[refoffset.MakeLabel(refoffset.Field, 4)]
	if !ok || len(inner) != 1 {
		t.Fatalf("expected one labeled conflict at Field(4), got %v", c.Labeled)
	}
	if _, ok := inner[labeled]; !ok {
		t.Fatalf("expected Field(4) conflict to name %d, got %v", labeled, inner)
	}
}

func TestBorrowedByMutabilityFilter(t *testing.T) {
	b := New()
	base := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	b.ExtendByLabel(base, refoffset.MakeLabel(refoffset.Field, 0), false, 1)
	mut := b.ExtendByLabel(base, refoffset.MakeLabel(refoffset.Field, 1), true, 2)

	c := b.BorrowedByFiltered(base, MutableOnly())
	if got := c.IDs(); len(got) != 1 || got[0] != mut {
		t.Fatalf("expected only the mutable borrower %d, got %v", mut, got)
	}
	unfiltered := b.BorrowedByFiltered(base, Filter{})
	if got := unfiltered.IDs(); len(got) != 2 {
		t.Fatalf("expected both borrowers unfiltered, got %v", got)
	}
}

func TestBorrowsFromWithinExcludesOutsiders(t *testing.T) {
	b := New()
	parent := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	child := b.ExtendByLabel(parent, refoffset.MakeLabel(refoffset.Field, 0), true, 1)

	if got := b.BorrowsFromWithin(child, []RefID{parent}); len(got) != 1 || got[0] != parent {
		t.Fatalf("expected [%d], got %v", parent, got)
	}
	if got := b.BorrowsFromWithin(child, nil); len(got) != 0 {
		t.Fatalf("an empty candidate set admits no parents, got %v", got)
	}
}

func TestMoveIntoPinnedOverwritesDestination(t *testing.T) {
	b := New()
	dst := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	src := b.Insert(reftable.New(true, 0, localPath(1)))
	b.MoveIntoPinned(src, dst, 2)

	got := b.Get(dst).Paths()
	if len(got) != 1 {
		t.Fatalf("expected the destination's old path to be released by the move, got %v", got)
	}
	if refpath.Compare(got[0].Path, localPath(1)).Kind != refpath.Equal {
		t.Fatalf("expected [Local(1)] on destination, got %v", got[0].Path)
	}
}

func TestMoveIntoPinnedSameIDIsIdempotent(t *testing.T) {
	b := New()
	id := b.Insert(reftable.NewPinned(true, 0, localPath(0)))
	b.MoveIntoPinned(id, id, 1)
	got := b.Get(id).Paths()
	if len(got) != 1 || refpath.Compare(got[0].Path, localPath(0)).Kind != refpath.Equal {
		t.Fatalf("expected the path set to be unchanged, got %v", got)
	}
}

func TestExtendFromEmptySetRootsAtLabel(t *testing.T) {
	b := New()
	site := refoffset.Site{Instr: 9}
	id := b.ExtendByUnknownFromSet(nil, site, true, 9)
	got := b.Get(id).Paths()
	if len(got) != 1 {
		t.Fatalf("expected a single wildcard-rooted path, got %v", got)
	}
	want := refpath.Initial(refoffset.MakeWildcard(site))
	if refpath.Compare(got[0].Path, want).Kind != refpath.Equal {
		t.Fatalf("expected %v, got %v", want, got[0].Path)
	}
}

func TestCoversSetAbsorbsJoin(t *testing.T) {
	pre := New()
	id := pre.Insert(reftable.NewPinned(true, 0, localPath(0)))

	post := New()
	post.InsertPinned(id, reftable.NewPinned(true, 0, localPath(0)))

	joined := New()
	joined.InsertPinned(id, reftable.NewPinned(true, 0, localPath(0)))
	joined.Join(post)

	if !pre.CoversSet(joined) {
		t.Fatal("expected pre to cover a join that added nothing new")
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	b := New()
	b.Insert(reftable.NewPinned(true, 0, localPath(0),
		refpath.Extend(localPath(1), refoffset.MakeLabel(refoffset.Field, 2))))

	joined := b.Clone()
	joined.Join(b)

	if !joined.CoversSet(b) || !b.CoversSet(joined) {
		t.Fatal("expected A.join(A) to be covers-equivalent to A")
	}
}

func TestJoinIsCommutativeUpToCovers(t *testing.T) {
	id := RefID(0)

	mk := func(paths ...refpath.Path) *BorrowSet {
		b := New()
		b.InsertPinned(id, reftable.NewPinned(true, 0, paths...))
		return b
	}
	a := mk(localPath(0))
	c := mk(refpath.Extend(localPath(0), refoffset.MakeLabel(refoffset.Field, 1)), localPath(2))

	ac := a.Clone()
	ac.Join(c)
	ca := c.Clone()
	ca.Join(a)

	if !ac.CoversSet(ca) || !ca.CoversSet(ac) {
		t.Fatal("expected A.join(B) and B.join(A) to be covers-equivalent")
	}
}

func TestJoinAbsorbedWhenCovering(t *testing.T) {
	id := RefID(0)

	covering := New()
	covering.InsertPinned(id, reftable.NewPinned(true, 0, localPath(0)))

	covered := New()
	covered.InsertPinned(id, reftable.NewPinned(true, 0,
		refpath.Extend(localPath(0), refoffset.MakeLabel(refoffset.Field, 1))))

	if !covering.CoversSet(covered) {
		t.Fatal("expected the whole-local set to cover the field-only set")
	}

	joined := covering.Clone()
	joined.Join(covered)
	joined.Simplify()

	got := joined.Get(id).Paths()
	if len(got) != 1 || refpath.Compare(got[0].Path, localPath(0)).Kind != refpath.Equal {
		t.Fatalf("expected the simplified join to collapse back to [Local(0)], got %v", got)
	}
	if !covering.CoversSet(joined) {
		t.Fatal("joining a covered set must not grow what the covering set denotes")
	}
}
