// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package sliceutils

import (
	"testing"

	"github.com/ledgervm/refsafety/test"
)

func TestToAnySlice(t *testing.T) {
	got := ToAnySlice([]int{1, 2, 3})
	if d := test.Diff(got, []any{1, 2, 3}); d != "" {
		t.Fatalf("unexpected conversion: %s", d)
	}

	got = ToAnySlice([]string{"a", "b", "c"})
	if d := test.Diff(got, []any{"a", "b", "c"}); d != "" {
		t.Fatalf("unexpected conversion: %s", d)
	}

	if got := ToAnySlice([]int(nil)); len(got) != 0 {
		t.Fatalf("expected an empty result for a nil input, got %v", got)
	}
}
