// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package verifyerr

import "testing"

func TestStatusCodeString(t *testing.T) {
	cases := map[StatusCode]string{
		CopyLocExistsBorrowError:              "COPYLOC_EXISTS_BORROW_ERROR",
		UnsafeRetLocalOrResourceStillBorrowed: "UNSAFE_RET_LOCAL_OR_RESOURCE_STILL_BORROWED",
		GlobalReferenceError:                  "GLOBAL_REFERENCE_ERROR",
		AnalyzerVariantUnavailable:            "ANALYZER_VARIANT_UNAVAILABLE",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("StatusCode(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestVerifyErrorMessage(t *testing.T) {
	err := New(WriteRefExistsBorrowError, 3, 12)
	want := "WRITEREF_EXISTS_BORROW_ERROR at function #3, offset 12"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExitCodeIsStable(t *testing.T) {
	if CopyLocExistsBorrowError.ExitCode() != 65 {
		t.Fatalf("expected exit code 65 for the first status code, got %d", CopyLocExistsBorrowError.ExitCode())
	}
}
