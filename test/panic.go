// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package test

import "testing"

// ShouldPanic asserts that fn panics.
func ShouldPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Error("the function should have panicked")
		}
	}()
	fn()
}

// ShouldPanicWithStr asserts that fn panics with exactly msg. A panic
// carrying an error is matched against the error's message.
func ShouldPanicWithStr(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("the function should have panicked with %q", msg)
			return
		}
		got, ok := r.(string)
		if !ok {
			err, ok := r.(error)
			if !ok {
				t.Errorf("the function panicked with a non-string, non-error value: %#v", r)
				return
			}
			got = err.Error()
		}
		if got != msg {
			t.Errorf("the function panicked with the wrong message.\nwant: %q\ngot:  %q", msg, got)
		}
	}()
	fn()
}
