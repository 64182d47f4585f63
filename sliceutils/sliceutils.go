// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package sliceutils holds small generic slice conversions shared across
// the verifier toolchain.
package sliceutils

// ToAnySlice converts a []T into the []any shape variadic sinks such as
// logger.Logger.Error expect, so a slice of diagnostic lines can be
// passed as one call.
func ToAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
