// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package test provides the structural-comparison helpers this module's
// unit tests assert with: DeepEqual and Diff for paths and slices, and
// ShouldPanic for the invariants that guard against misuse.
package test

import "reflect"

// selfComparable types define their own equality, which DeepEqual and
// Diff defer to instead of walking their representation.
type selfComparable interface {
	Equal(other interface{}) bool
}

// DeepEqual reports whether a and b are structurally equal. It differs
// from reflect.DeepEqual in two ways that matter to this module's tests:
// a type may define its own comparison by implementing Equal, and
// comparable struct types (offsets, locations, sites) are compared
// wholesale with ==, so their unexported fields participate without any
// reflection walk into them.
func DeepEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	if c, ok := a.(selfComparable); ok {
		return c.Equal(b)
	}
	return deepEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}

func deepEqual(av, bv reflect.Value) bool {
	if av.Type() != bv.Type() {
		return false
	}
	switch av.Kind() {
	case reflect.Slice:
		if av.IsNil() != bv.IsNil() {
			return false
		}
		fallthrough
	case reflect.Array:
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !deepEqual(av.Index(i), bv.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if av.IsNil() != bv.IsNil() || av.Len() != bv.Len() {
			return false
		}
		iter := av.MapRange()
		for iter.Next() {
			other := bv.MapIndex(iter.Key())
			if !other.IsValid() || !deepEqual(iter.Value(), other) {
				return false
			}
		}
		return true
	case reflect.Ptr, reflect.Interface:
		if av.IsNil() || bv.IsNil() {
			return av.IsNil() == bv.IsNil()
		}
		return deepEqual(av.Elem(), bv.Elem())
	case reflect.Struct:
		if av.Type().Comparable() {
			return av.Equal(bv)
		}
		for i := 0; i < av.NumField(); i++ {
			if !deepEqual(av.Field(i), bv.Field(i)) {
				return false
			}
		}
		return true
	default:
		if !av.Type().Comparable() {
			return false
		}
		return av.Equal(bv)
	}
}
