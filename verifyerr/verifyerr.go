// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package verifyerr defines the status-code taxonomy the transfer
// function and the fixed-point driver report diagnostics with, and the
// VerifyError type that attaches one of those codes to the offending
// function and code offset.
package verifyerr

import "fmt"

// StatusCode identifies the specific safety violation a VerifyError
// reports. The numeric values are part of this package's public contract
// (cmd/refverify maps them to process exit codes) and must never be
// renumbered; append new codes at the end.
type StatusCode int

//go:generate stringer -type=StatusCode -linecomment

const (
	// CopyLocExistsBorrowError: copying a non-reference local that is
	// mutably borrowed (strict variant only).
	CopyLocExistsBorrowError StatusCode = iota + 1 // COPYLOC_EXISTS_BORROW_ERROR
	// MoveLocExistsBorrowError: moving a local while it is borrowed.
	MoveLocExistsBorrowError // MOVELOC_EXISTS_BORROW_ERROR
	// StLocUnsafeToDestroyError: overwriting a borrowed local value.
	StLocUnsafeToDestroyError // STLOC_UNSAFE_TO_DESTROY_ERROR
	// ReadRefExistsMutableBorrowError: reading through a reference with a
	// live mutable extension.
	ReadRefExistsMutableBorrowError // READREF_EXISTS_MUTABLE_BORROW_ERROR
	// WriteRefExistsBorrowError: writing through a reference with any
	// live extension.
	WriteRefExistsBorrowError // WRITEREF_EXISTS_BORROW_ERROR
	// VecUpdateExistsMutableBorrowError: mutating a vector through a
	// reference with a live extension.
	VecUpdateExistsMutableBorrowError // VEC_UPDATE_EXISTS_MUTABLE_BORROW_ERROR
	// GlobalReferenceError: moving-from or acquiring a resource that is
	// currently borrowed.
	GlobalReferenceError // GLOBAL_REFERENCE_ERROR
	// CallBorrowedMutableReferenceError: passing a mutable reference to a
	// call while it has external aliases or parents not in the argument
	// set.
	CallBorrowedMutableReferenceError // CALL_BORROWED_MUTABLE_REFERENCE_ERROR
	// RetBorrowedMutableReferenceError: returning a mutable reference
	// with external aliases.
	RetBorrowedMutableReferenceError // RET_BORROWED_MUTABLE_REFERENCE_ERROR
	// UnsafeRetLocalOrResourceStillBorrowed: returning while any
	// reference is rooted at a local or a global resource.
	UnsafeRetLocalOrResourceStillBorrowed // UNSAFE_RET_LOCAL_OR_RESOURCE_STILL_BORROWED
	// AnalyzerVariantUnavailable: the variant selector was asked for a
	// variant other than "set" (such as "graph"), which this distribution
	// does not build; only the set-based analyzer is implemented.
	// cmd/refverify also reports it for a fixture instruction whose op it
	// does not recognize.
	AnalyzerVariantUnavailable // ANALYZER_VARIANT_UNAVAILABLE
)

// ExitCode maps a StatusCode to the process exit code cmd/refverify uses
// to report it — every verification failure exits non-zero, but distinct
// code ranges let scripts distinguish borrow-safety failures (64-range,
// following the BSD sysexits convention the rest of the CLI follows) from
// usage or I/O errors.
func (c StatusCode) ExitCode() int {
	return 64 + int(c)
}

// VerifyError is a single safety violation found by the analyzer,
// attached to the function and code offset responsible.
type VerifyError struct {
	FunctionDefIndex int
	CodeOffset       int
	Status           StatusCode
}

// New constructs a VerifyError.
func New(status StatusCode, functionDefIndex, codeOffset int) *VerifyError {
	return &VerifyError{FunctionDefIndex: functionDefIndex, CodeOffset: codeOffset, Status: status}
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s at function #%d, offset %d", e.Status, e.FunctionDefIndex, e.CodeOffset)
}
