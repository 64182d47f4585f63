// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package reftable

import (
	"testing"

	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/refpath"
	"github.com/ledgervm/refsafety/test"
)

func path(k refoffset.Kind, i int) refpath.Path {
	return refpath.Initial(refoffset.MakeLabel(k, i))
}

func TestNewPinnedIsPinned(t *testing.T) {
	r := NewPinned(true, 0, path(refoffset.Local, 0))
	if !r.IsPinned() {
		t.Fatal("expected pinned reference")
	}
	if r.IsReleased() {
		t.Fatal("freshly constructed reference should not be released")
	}
}

func TestReleasePathsRequiresPinned(t *testing.T) {
	r := New(true, 0, path(refoffset.Local, 0))
	test.ShouldPanicWithStr(t, "reftable: ReleasePaths called on a non-pinned reference", func() {
		r.ReleasePaths()
	})
}

func TestReleasePathsEmptiesPinned(t *testing.T) {
	r := NewPinned(true, 0, path(refoffset.Local, 0))
	r.ReleasePaths()
	if !r.IsReleased() {
		t.Fatal("expected released reference after ReleasePaths")
	}
}

func TestAddPathsDeduplicates(t *testing.T) {
	r := New(true, 0, path(refoffset.Local, 0))
	r.AddPaths([]TaggedPath{{Path: path(refoffset.Local, 0), Loc: 1}})
	if len(r.Paths()) != 1 {
		t.Fatalf("expected duplicate path to be dropped, got %d paths", len(r.Paths()))
	}
	r.AddPaths([]TaggedPath{{Path: path(refoffset.Local, 1), Loc: 1}})
	if len(r.Paths()) != 2 {
		t.Fatalf("expected distinct path to be added, got %d paths", len(r.Paths()))
	}
}

func TestCopyPathsRetagsLocation(t *testing.T) {
	r := New(true, 0, path(refoffset.Local, 0))
	cp := r.CopyPaths(42)
	if len(cp) != 1 || cp[0].Loc != 42 {
		t.Fatalf("expected retagged copy, got %+v", cp)
	}
	if !pathEqual(cp[0].Path, r.Paths()[0].Path) {
		t.Fatal("expected copied path to be identical to source path")
	}
}

func TestMakeCopyWeakensMutability(t *testing.T) {
	r := New(true, 0, path(refoffset.Local, 0))
	immutable := false
	cp := r.MakeCopy(1, &immutable)
	if cp.IsMutable() {
		t.Fatal("expected copy to be immutable after Freeze-style override")
	}
	if r.IsPinned() || cp.IsPinned() {
		t.Fatal("MakeCopy must never produce a pinned reference")
	}
}

func TestMakeCopyPreservesMutabilityByDefault(t *testing.T) {
	r := New(false, 0, path(refoffset.Local, 0))
	cp := r.MakeCopy(1, nil)
	if cp.IsMutable() {
		t.Fatal("expected copy to preserve source immutability")
	}
}

func TestSimplifyDropsCoveredPaths(t *testing.T) {
	short := path(refoffset.Local, 0)
	long := refpath.Extend(short, refoffset.MakeLabel(refoffset.Field, 3))
	other := path(refoffset.Local, 1)

	r := New(true, 0, short, long, other)
	r.Simplify()

	got := r.Paths()
	if len(got) != 2 {
		t.Fatalf("expected the extension of Local(0) to be dropped, got %v", got)
	}
	for _, tp := range got {
		if pathEqual(tp.Path, long) {
			t.Fatal("Local(0).Field(3) should have been absorbed by Local(0)")
		}
	}
}

func TestSimplifyKeepsIncomparablePaths(t *testing.T) {
	r := New(true, 0, path(refoffset.Local, 0), path(refoffset.Local, 1))
	r.Simplify()
	if len(r.Paths()) != 2 {
		t.Fatalf("incomparable paths must both survive, got %v", r.Paths())
	}
}
