// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package test

import (
	"errors"
	"testing"
)

func TestShouldPanic(t *testing.T) {
	ShouldPanic(t, func() { panic("boom") })
}

func TestShouldPanicWithStr(t *testing.T) {
	ShouldPanicWithStr(t, "boom", func() { panic("boom") })
}

func TestShouldPanicWithStrMatchesErrorMessage(t *testing.T) {
	ShouldPanicWithStr(t, "boom", func() { panic(errors.New("boom")) })
}
