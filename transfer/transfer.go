// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package transfer implements the transfer function (component E): one
// method per bytecode form, each rewriting an *absstate.AbstractState in
// place and returning either the instruction's result operand(s) or the
// status code of the safety violation it found.
package transfer

import (
	"github.com/ledgervm/refsafety/absstate"
	"github.com/ledgervm/refsafety/borrowset"
	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/reftable"
	"github.com/ledgervm/refsafety/verifyerr"
)

// Value is an operand or result of a bytecode instruction, as seen by the
// transfer function: either a live reference, or a non-reference value the
// transfer function has no further interest in.
type Value struct {
	isRef bool
	id    borrowset.RefID
}

// Reference wraps a live reference id as an operand/result value.
func Reference(id borrowset.RefID) Value { return Value{isRef: true, id: id} }

// NonReference is the result of any instruction that does not produce or
// consume a reference.
var NonReference = Value{}

// IsReference reports whether v denotes a live reference.
func (v Value) IsReference() bool { return v.isRef }

// ID returns the reference id v denotes. Only valid when v.IsReference().
func (v Value) ID() borrowset.RefID { return v.id }

// Options configures policy choices the core rules leave to the host
// language (see the Transfer Function's CopyLoc note).
type Options struct {
	// StrictCopyLoc rejects CopyLoc on a mutably borrowed non-reference
	// local with CopyLocExistsBorrowError. When false (the default) such
	// a copy is permitted.
	StrictCopyLoc bool
}

// Transfer applies bytecode-instruction rules to an *absstate.AbstractState.
// It carries no per-function state of its own beyond Options, so one
// Transfer may be reused across every block of a function, or shared
// read-only across concurrently analyzed functions.
type Transfer struct {
	Options Options
}

func fail(s *absstate.AbstractState, loc refoffset.Loc, code verifyerr.StatusCode) *verifyerr.VerifyError {
	return verifyerr.New(code, s.FunctionIndex, int(loc))
}

// CopyLoc implements the CopyLoc(i) rule.
func (t *Transfer) CopyLoc(s *absstate.AbstractState, slot absstate.LocalSlot, isReferenceLocal bool, loc refoffset.Loc) (Value, *verifyerr.VerifyError) {
	if isReferenceLocal {
		id, ok := s.LocalRef(slot)
		if !ok {
			return NonReference, nil
		}
		return Reference(s.Borrows.MakeCopy(id, loc, nil)), nil
	}
	if t.Options.StrictCopyLoc && s.IsLocalMutablyBorrowed(slot) {
		return NonReference, fail(s, loc, verifyerr.CopyLocExistsBorrowError)
	}
	return NonReference, nil
}

// MoveLoc implements the MoveLoc(i) rule.
func (t *Transfer) MoveLoc(s *absstate.AbstractState, slot absstate.LocalSlot, isReferenceLocal bool, loc refoffset.Loc) (Value, *verifyerr.VerifyError) {
	if isReferenceLocal {
		id, ok := s.LocalRef(slot)
		if !ok {
			return NonReference, nil
		}
		out := s.Borrows.MakeCopy(id, loc, nil)
		s.Borrows.Release(id)
		return Reference(out), nil
	}
	if s.IsLocalBorrowed(slot) {
		return NonReference, fail(s, loc, verifyerr.MoveLocExistsBorrowError)
	}
	return NonReference, nil
}

// StLoc implements the StLoc(i, v) rule.
func (t *Transfer) StLoc(s *absstate.AbstractState, slot absstate.LocalSlot, isReferenceLocal bool, v Value, loc refoffset.Loc) *verifyerr.VerifyError {
	if isReferenceLocal {
		// The driver binds every reference-typed local to a pinned,
		// initially-released placeholder before analysis begins (see
		// absstate.BindLocal), so id is normally already present. The
		// fallback below only guards ad hoc callers (tests, tooling)
		// that skip that setup.
		id, ok := s.LocalRef(slot)
		if !ok {
			id = s.Borrows.Insert(reftable.NewPinned(s.Borrows.IsMutable(v.id), loc))
			s.BindLocal(slot, id)
		}
		s.Borrows.MoveIntoPinned(v.id, id, loc)
		return nil
	}
	if s.IsLocalBorrowed(slot) {
		return fail(s, loc, verifyerr.StLocUnsafeToDestroyError)
	}
	return nil
}

// FreezeRef implements the FreezeRef(id) rule.
func (t *Transfer) FreezeRef(s *absstate.AbstractState, id borrowset.RefID, loc refoffset.Loc) Value {
	immutable := false
	out := s.Borrows.MakeCopy(id, loc, &immutable)
	s.Borrows.Release(id)
	return Reference(out)
}

// ReadRef implements the ReadRef(id) rule.
func (t *Transfer) ReadRef(s *absstate.AbstractState, id borrowset.RefID, loc refoffset.Loc) *verifyerr.VerifyError {
	if !s.IsReadable(id, nil) {
		return fail(s, loc, verifyerr.ReadRefExistsMutableBorrowError)
	}
	s.Borrows.Release(id)
	return nil
}

// WriteRef implements the WriteRef(id) rule.
func (t *Transfer) WriteRef(s *absstate.AbstractState, id borrowset.RefID, loc refoffset.Loc) *verifyerr.VerifyError {
	if !s.IsWritable(id) {
		return fail(s, loc, verifyerr.WriteRefExistsBorrowError)
	}
	s.Borrows.Release(id)
	return nil
}

// EqNeq implements the Eq/Neq(v1, v2) rule: both operands, if they are
// references, are released; a boolean is produced (not itself a
// reference, so callers have no further use for this method's return).
func (t *Transfer) EqNeq(s *absstate.AbstractState, v1, v2 Value) {
	if v1.IsReference() {
		s.Borrows.Release(v1.id)
	}
	if v2.IsReference() {
		s.Borrows.Release(v2.id)
	}
}

// BorrowLoc implements the BorrowLoc(mut, i) rule.
func (t *Transfer) BorrowLoc(s *absstate.AbstractState, mutable bool, slot absstate.LocalSlot, loc refoffset.Loc) Value {
	label := refoffset.MakeLabel(refoffset.Local, int(slot))
	return Reference(s.Borrows.BorrowRoot(label, mutable, loc))
}

// BorrowField implements the BorrowField(mut, id, f) rule.
func (t *Transfer) BorrowField(s *absstate.AbstractState, mutable bool, id borrowset.RefID, field refoffset.Offset, loc refoffset.Loc) Value {
	out := s.Borrows.ExtendByLabelFromSet([]borrowset.RefID{id}, field, mutable, loc)
	s.Borrows.Release(id)
	return Reference(out)
}

// VectorElementBorrow implements the VectorElementBorrow(mut, id) rule.
func (t *Transfer) VectorElementBorrow(s *absstate.AbstractState, mutable bool, id borrowset.RefID, site refoffset.Site, loc refoffset.Loc) Value {
	out := s.Borrows.ExtendByUnknownFromSet([]borrowset.RefID{id}, site, mutable, loc)
	s.Borrows.Release(id)
	return Reference(out)
}

// BorrowGlobal implements the BorrowGlobal(mut, r) rule.
func (t *Transfer) BorrowGlobal(s *absstate.AbstractState, mutable bool, global refoffset.Offset, loc refoffset.Loc) Value {
	return Reference(s.Borrows.BorrowRoot(global, mutable, loc))
}

// MoveFrom implements the MoveFrom(r) rule.
func (t *Transfer) MoveFrom(s *absstate.AbstractState, global refoffset.Offset, loc refoffset.Loc) *verifyerr.VerifyError {
	if s.IsGlobalBorrowed(global) {
		return fail(s, loc, verifyerr.GlobalReferenceError)
	}
	return nil
}

// VectorMutOp implements the VectorMutOp(id) rule (push/pop/swap-remove
// through a &mut vector reference).
func (t *Transfer) VectorMutOp(s *absstate.AbstractState, id borrowset.RefID, loc refoffset.Loc) *verifyerr.VerifyError {
	if !s.IsWritable(id) {
		return fail(s, loc, verifyerr.VecUpdateExistsMutableBorrowError)
	}
	s.Borrows.Release(id)
	return nil
}

// ReturnSpec describes one return value's static shape, as known from the
// function's signature.
type ReturnSpec struct {
	IsReference bool
	Mutable     bool
}

// Call implements the Call(args, acquires, returns) rule. args holds
// every argument operand value in order; acquires holds the acquired
// resources' global labels; returns holds the static shape of the
// callee's return list; site identifies the call instruction, used to
// tag any wildcard the call's returns introduce.
func (t *Transfer) Call(s *absstate.AbstractState, args []Value, acquires []refoffset.Offset, returns []ReturnSpec, site refoffset.Site, loc refoffset.Loc) ([]Value, *verifyerr.VerifyError) {
	for _, g := range acquires {
		if s.IsGlobalBorrowed(g) {
			return nil, fail(s, loc, verifyerr.GlobalReferenceError)
		}
	}

	var a []borrowset.RefID
	for _, v := range args {
		if v.IsReference() {
			a = append(a, v.id)
		}
	}
	var m []borrowset.RefID
	for _, id := range a {
		if !s.Borrows.IsMutable(id) {
			continue
		}
		if !s.IsWritable(id) || !s.HasNoParentsIn(id, a) {
			return nil, fail(s, loc, verifyerr.CallBorrowedMutableReferenceError)
		}
		m = append(m, id)
	}

	out := make([]Value, len(returns))
	for i, r := range returns {
		if !r.IsReference {
			out[i] = NonReference
			continue
		}
		callSite := refoffset.Site{Instr: site.Instr, Slot: i}
		if r.Mutable {
			out[i] = Reference(s.Borrows.ExtendByUnknownFromSet(m, callSite, true, loc))
		} else {
			out[i] = Reference(s.Borrows.ExtendByUnknownFromSet(a, callSite, false, loc))
		}
	}

	for _, id := range a {
		s.Borrows.Release(id)
	}
	return out, nil
}

// Ret implements the Ret(values) rule. Every reference-typed local slot
// bound in s is released first; returned lists the reference ids among
// the function's return values.
func (t *Transfer) Ret(s *absstate.AbstractState, returned []borrowset.RefID, loc refoffset.Loc) *verifyerr.VerifyError {
	for _, slot := range s.Locals() {
		id, _ := s.LocalRef(slot)
		s.Borrows.Release(id)
	}
	if !s.IsFrameSafeToDestroy() {
		return fail(s, loc, verifyerr.UnsafeRetLocalOrResourceStillBorrowed)
	}
	for _, id := range returned {
		if !s.Borrows.IsMutable(id) {
			continue
		}
		if !s.IsWritable(id) || !s.HasNoParentsIn(id, returned) {
			return fail(s, loc, verifyerr.RetBorrowedMutableReferenceError)
		}
	}
	return nil
}
