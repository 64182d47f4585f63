// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package refpath implements the path algebra (component A): symbolic
// access paths built from refoffset.Offset elements, a total four-case
// ordering between any two paths, and the handful of operations the rest of
// the analyzer needs (empty, initial, extend, first, compare).
package refpath

import (
	"bytes"
	"fmt"

	"github.com/ledgervm/refsafety/refoffset"
)

// Path is an ordered, non-empty sequence of offsets naming a location
// reachable from a root label (Parameter/Local/Global) or from an unknown
// Wildcard origin. Path is a plain value type; callers that need to retain
// a Path across mutation of the slice that built it should Clone first.
type Path []refoffset.Offset

// Initial constructs a single-offset Path.
func Initial(o refoffset.Offset) Path {
	return Path{o}
}

// Extend returns a new Path equal to p with o appended. p is not modified.
func Extend(p Path, o refoffset.Offset) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = o
	return out
}

// First returns the root offset of p. Panics if p is empty; Paths are
// never empty by construction (see the package invariant in Initial/Extend).
func First(p Path) refoffset.Offset {
	return p[0]
}

// Clone returns an independent copy of p.
func Clone(p Path) Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// OrderKind is the relation between two paths established by Compare.
type OrderKind int8

const (
	// Equal means the two paths have the same offset sequence.
	Equal OrderKind = iota // equal
	// LeftExtendsRight means the right-hand path is a strict prefix of the
	// left-hand path.
	LeftExtendsRight // leftExtendsRight
	// RightExtendsLeft means the left-hand path is a strict prefix of the
	// right-hand path; Ordering.Ext carries the first offset on the right
	// that isn't shared with the left.
	RightExtendsLeft // rightExtendsLeft
	// Incomparable means the paths diverge at a concrete label mismatch,
	// have different roots, or one begins with a wildcard that can't be
	// related to the other's root.
	Incomparable // incomparable
)

//go:generate stringer -type=OrderKind -linecomment

// Ordering is the result of Compare.
type Ordering struct {
	Kind OrderKind
	// Ext is the first offset on the right-hand side not shared with the
	// left. Only meaningful when Kind == RightExtendsLeft.
	Ext refoffset.Offset
}

// Compare establishes the relation between lhs and rhs. It is total
// (exactly one of the four OrderKind values is returned) and dual: swapping
// the arguments swaps LeftExtendsRight/RightExtendsLeft and leaves
// Equal/Incomparable unchanged.
func Compare(lhs, rhs Path) Ordering {
	i := 0
	for i < len(lhs) && i < len(rhs) {
		a, b := lhs[i], rhs[i]
		aw, bw := a.IsWildcard(), b.IsWildcard()

		switch {
		case aw && bw:
			if a.Site() != b.Site() {
				return Ordering{Kind: Incomparable}
			}
			i++
			continue

		case aw != bw:
			if i == 0 {
				// A wildcard-rooted path has an unknown origin that can't
				// be proved related to a named root.
				return Ordering{Kind: Incomparable}
			}
			if aw {
				// rhs carries the concrete label: it specializes lhs.
				return Ordering{Kind: RightExtendsLeft, Ext: b}
			}
			// lhs carries the concrete label: it specializes rhs.
			return Ordering{Kind: LeftExtendsRight}

		default:
			if !a.SameIdentity(b) {
				return Ordering{Kind: Incomparable}
			}
			i++
		}
	}

	switch {
	case i == len(lhs) && i == len(rhs):
		return Ordering{Kind: Equal}
	case i == len(lhs):
		return Ordering{Kind: RightExtendsLeft, Ext: rhs[i]}
	default:
		return Ordering{Kind: LeftExtendsRight}
	}
}

// String renders p for diagnostics, e.g. "Local(0).Field(2)".
func (p Path) String() string {
	var buf bytes.Buffer
	for i, o := range p {
		if i > 0 {
			buf.WriteByte('.')
		}
		fmt.Fprint(&buf, o)
	}
	return buf.String()
}
