// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package refpath

import (
	"testing"

	"github.com/ledgervm/refsafety/refoffset"
)

func lbl(k refoffset.Kind, i int) refoffset.Offset { return refoffset.MakeLabel(k, i) }
func wc(instr, slot int) refoffset.Offset {
	return refoffset.MakeWildcard(refoffset.Site{Instr: instr, Slot: slot})
}

func dual(k OrderKind) OrderKind {
	switch k {
	case LeftExtendsRight:
		return RightExtendsLeft
	case RightExtendsLeft:
		return LeftExtendsRight
	default:
		return k
	}
}

func checkDual(t *testing.T, p, q Path) Ordering {
	t.Helper()
	pq := Compare(p, q)
	qp := Compare(q, p)
	if qp.Kind != dual(pq.Kind) {
		t.Fatalf("Compare(%v,%v)=%v but Compare(%v,%v)=%v, not duals", p, q, pq.Kind, q, p, qp.Kind)
	}
	return pq
}

func TestCompareEqual(t *testing.T) {
	p := Path{lbl(refoffset.Local, 0), lbl(refoffset.Field, 2)}
	q := Path{lbl(refoffset.Local, 0), lbl(refoffset.Field, 2)}
	o := checkDual(t, p, q)
	if o.Kind != Equal {
		t.Fatalf("expected Equal, got %v", o.Kind)
	}
}

func TestCompareExtends(t *testing.T) {
	p := Path{lbl(refoffset.Local, 0)}
	q := Path{lbl(refoffset.Local, 0), lbl(refoffset.Field, 1)}
	o := checkDual(t, p, q)
	if o.Kind != RightExtendsLeft {
		t.Fatalf("expected RightExtendsLeft, got %v", o.Kind)
	}
	if o.Ext != lbl(refoffset.Field, 1) {
		t.Fatalf("expected ext = Field(1), got %v", o.Ext)
	}
}

func TestCompareDifferentRootsIncomparable(t *testing.T) {
	p := Path{lbl(refoffset.Local, 0)}
	q := Path{lbl(refoffset.Local, 1)}
	if o := checkDual(t, p, q); o.Kind != Incomparable {
		t.Fatalf("expected Incomparable, got %v", o.Kind)
	}
}

func TestCompareWildcardRootVsLabelIncomparable(t *testing.T) {
	p := Path{wc(1, 0)}
	q := Path{lbl(refoffset.Local, 0)}
	if o := checkDual(t, p, q); o.Kind != Incomparable {
		t.Fatalf("expected Incomparable at root wildcard/label mismatch, got %v", o.Kind)
	}
}

func TestCompareWildcardMidPathExtendsLabel(t *testing.T) {
	// Both rooted at Local(0); one continues with a wildcard, the other
	// with a concrete field. The concrete side specializes the wildcard.
	p := Path{lbl(refoffset.Local, 0), wc(3, 0)}
	q := Path{lbl(refoffset.Local, 0), lbl(refoffset.Field, 5)}
	o := checkDual(t, p, q)
	if o.Kind != RightExtendsLeft {
		t.Fatalf("expected RightExtendsLeft (q specializes p), got %v", o.Kind)
	}
	if o.Ext != lbl(refoffset.Field, 5) {
		t.Fatalf("expected ext = Field(5), got %v", o.Ext)
	}
}

func TestCompareDistinctWildcardsIncomparable(t *testing.T) {
	p := Path{lbl(refoffset.Local, 0), wc(1, 0)}
	q := Path{lbl(refoffset.Local, 0), wc(2, 0)}
	if o := checkDual(t, p, q); o.Kind != Incomparable {
		t.Fatalf("expected Incomparable for distinct wildcard sites, got %v", o.Kind)
	}
}

func TestCompareSameWildcardEqual(t *testing.T) {
	p := Path{lbl(refoffset.Local, 0), wc(1, 0)}
	q := Path{lbl(refoffset.Local, 0), wc(1, 0)}
	if o := checkDual(t, p, q); o.Kind != Equal {
		t.Fatalf("expected Equal for same wildcard site, got %v", o.Kind)
	}
}

func TestCompareConcreteMismatchMidPath(t *testing.T) {
	p := Path{lbl(refoffset.Local, 0), lbl(refoffset.Field, 1)}
	q := Path{lbl(refoffset.Local, 0), lbl(refoffset.Field, 2)}
	if o := checkDual(t, p, q); o.Kind != Incomparable {
		t.Fatalf("expected Incomparable for mid-path concrete mismatch, got %v", o.Kind)
	}
}

func TestExtendDoesNotMutateOriginal(t *testing.T) {
	p := Initial(lbl(refoffset.Local, 0))
	q := Extend(p, lbl(refoffset.Field, 1))
	if len(p) != 1 {
		t.Fatalf("Extend mutated its argument: len(p) = %d", len(p))
	}
	if len(q) != 2 {
		t.Fatalf("Extend produced wrong length: %d", len(q))
	}
}
