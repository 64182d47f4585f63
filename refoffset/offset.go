// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package refoffset defines the label domain used by the path algebra: the
// set of offsets that can appear in an access path denoted by a live
// reference (parameter slots, local slots, global resources, field handles)
// plus the wildcard offset used when a precise label can't be derived.
package refoffset

import "fmt"

// Kind identifies which label domain an Offset belongs to, or whether it is
// a wildcard.
type Kind uint8

const (
	// Parameter identifies a function parameter slot.
	Parameter Kind = iota // parameter
	// Local identifies a local slot.
	Local // local
	// Global identifies a globally stored resource, keyed by an opaque
	// resource index supplied by the module.
	Global // global
	// Field identifies a struct field, keyed by an opaque field-handle
	// index supplied by the module.
	Field // field
	// Wildcard denotes an unknown extension introduced by an operation
	// whose result can't be tracked precisely (a vector-element borrow, or
	// a reference returned from a call).
	Wildcard // wildcard
)

//go:generate stringer -type=Kind -linecomment

// Site identifies the program point that produced a Wildcard offset: the
// instruction that produced it and the ordinal of the result it denotes
// within that instruction. Two wildcards compare equal only when their
// Sites are equal; wildcards from different sites are always Incomparable,
// never spuriously aliased.
type Site struct {
	Instr int
	Slot  int
}

// Offset is a single element of a Path: either a concrete Label (Parameter,
// Local, Global, or Field index) or a Wildcard tagged by its producing Site.
//
// Offset is a plain comparable value type; == is a correct, total equality
// check (Go's struct equality on comparable fields), which is what the path
// algebra's equality rules need — no hashing or custom Equal method pulls
// its weight here.
type Offset struct {
	kind  Kind
	index int
	site  Site
}

// MakeLabel constructs a concrete (non-wildcard) offset. kind must not be
// Wildcard.
func MakeLabel(kind Kind, index int) Offset {
	if kind == Wildcard {
		panic("refoffset: MakeLabel called with Wildcard kind; use MakeWildcard")
	}
	return Offset{kind: kind, index: index}
}

// MakeWildcard constructs a wildcard offset tagged by the given producing
// site.
func MakeWildcard(site Site) Offset {
	return Offset{kind: Wildcard, site: site}
}

// Kind reports which label domain o belongs to.
func (o Offset) Kind() Kind { return o.kind }

// Index reports the label index for a concrete offset. It is meaningless
// for a Wildcard offset.
func (o Offset) Index() int { return o.index }

// Site reports the producing site for a Wildcard offset. It is meaningless
// for a concrete offset.
func (o Offset) Site() Site { return o.site }

// IsWildcard reports whether o is a Wildcard offset.
func (o Offset) IsWildcard() bool { return o.kind == Wildcard }

// SameIdentity reports whether o and other denote the same offset for the
// purposes of path equality: concrete offsets compare by (kind, index);
// wildcards compare by Site, so that two wildcards from different producing
// instructions are never treated as the same unknown.
func (o Offset) SameIdentity(other Offset) bool {
	if o.kind != other.kind {
		return false
	}
	if o.kind == Wildcard {
		return o.site == other.site
	}
	return o.index == other.index
}

// String renders o for diagnostics.
func (o Offset) String() string {
	switch o.kind {
	case Parameter:
		return fmt.Sprintf("Parameter(%d)", o.index)
	case Local:
		return fmt.Sprintf("Local(%d)", o.index)
	case Global:
		return fmt.Sprintf("Global(%d)", o.index)
	case Field:
		return fmt.Sprintf("Field(%d)", o.index)
	case Wildcard:
		return fmt.Sprintf("Wildcard(instr=%d,slot=%d)", o.site.Instr, o.site.Slot)
	default:
		return "Offset(?)"
	}
}
