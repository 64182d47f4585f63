// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package test

import (
	"testing"

	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/refpath"
	"github.com/ledgervm/refsafety/reftable"
)

func fieldPath(field int) refpath.Path {
	return refpath.Path{
		refoffset.MakeLabel(refoffset.Local, 0),
		refoffset.MakeLabel(refoffset.Field, field),
	}
}

func TestDeepEqualPaths(t *testing.T) {
	if !DeepEqual(fieldPath(1), fieldPath(1)) {
		t.Error("identical paths should be deep-equal")
	}
	if DeepEqual(fieldPath(1), fieldPath(2)) {
		t.Error("paths to different fields should not be deep-equal")
	}
	if DeepEqual(fieldPath(1), fieldPath(1)[:1]) {
		t.Error("a path and its prefix should not be deep-equal")
	}
}

func TestDeepEqualTaggedPaths(t *testing.T) {
	a := []reftable.TaggedPath{{Path: fieldPath(1), Loc: 3}}
	b := []reftable.TaggedPath{{Path: fieldPath(1), Loc: 3}}
	if !DeepEqual(a, b) {
		t.Error("identical tagged path sets should be deep-equal")
	}
	b[0].Loc = 4
	if DeepEqual(a, b) {
		t.Error("tagged paths with different locations should not be deep-equal")
	}
}

func TestDeepEqualMaps(t *testing.T) {
	a := map[int]refpath.Path{0: fieldPath(1)}
	b := map[int]refpath.Path{0: fieldPath(1)}
	if !DeepEqual(a, b) {
		t.Error("identical maps should be deep-equal")
	}
	b[1] = fieldPath(2)
	if DeepEqual(a, b) {
		t.Error("maps with different key sets should not be deep-equal")
	}
}

func TestDeepEqualNilVersusEmpty(t *testing.T) {
	if DeepEqual([]refpath.Path(nil), []refpath.Path{}) {
		t.Error("a nil slice and an empty slice are distinct states")
	}
	if !DeepEqual([]refpath.Path(nil), []refpath.Path(nil)) {
		t.Error("two nil slices should be deep-equal")
	}
}

type always struct{ verdict bool }

func (a always) Equal(interface{}) bool { return a.verdict }

func TestDeepEqualDefersToEqualMethod(t *testing.T) {
	if !DeepEqual(always{true}, always{false}) {
		t.Error("expected the receiver's Equal method to decide the comparison")
	}
	if DeepEqual(always{false}, always{true}) {
		t.Error("expected the receiver's Equal method to decide the comparison")
	}
}
