// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package test

import (
	"fmt"
	"reflect"
)

// Diff returns a description of the first structural difference between
// a and b, or the empty string when DeepEqual(a, b) holds. The
// description names where in the structure the values diverge
// ("[2].Path: ..."), which is what a failing path-set or conflict-record
// assertion actually needs from its message.
func Diff(a, b interface{}) string {
	if DeepEqual(a, b) {
		return ""
	}
	if a == nil || b == nil {
		return fmt.Sprintf("%s != %s", PrettyPrint(a), PrettyPrint(b))
	}
	if _, ok := a.(selfComparable); ok {
		return fmt.Sprintf("%s != %s", PrettyPrint(a), PrettyPrint(b))
	}
	return diff("", reflect.ValueOf(a), reflect.ValueOf(b))
}

func diff(at string, av, bv reflect.Value) string {
	if av.Type() != bv.Type() {
		return fmt.Sprintf("%stype %s != type %s", prefix(at), av.Type(), bv.Type())
	}
	switch av.Kind() {
	case reflect.Slice, reflect.Array:
		if av.Len() != bv.Len() {
			return fmt.Sprintf("%slength %d != %d (%s != %s)",
				prefix(at), av.Len(), bv.Len(), prettyPrint(av, prettyPrintDepth), prettyPrint(bv, prettyPrintDepth))
		}
		for i := 0; i < av.Len(); i++ {
			if !deepEqual(av.Index(i), bv.Index(i)) {
				return diff(fmt.Sprintf("%s[%d]", at, i), av.Index(i), bv.Index(i))
			}
		}
	case reflect.Map:
		iter := av.MapRange()
		for iter.Next() {
			other := bv.MapIndex(iter.Key())
			if !other.IsValid() {
				return fmt.Sprintf("%skey %s missing on the right",
					prefix(at), prettyPrint(iter.Key(), prettyPrintDepth))
			}
			if !deepEqual(iter.Value(), other) {
				return diff(fmt.Sprintf("%s[%s]", at, prettyPrint(iter.Key(), prettyPrintDepth)),
					iter.Value(), other)
			}
		}
		iter = bv.MapRange()
		for iter.Next() {
			if !av.MapIndex(iter.Key()).IsValid() {
				return fmt.Sprintf("%skey %s missing on the left",
					prefix(at), prettyPrint(iter.Key(), prettyPrintDepth))
			}
		}
	case reflect.Ptr, reflect.Interface:
		if av.IsNil() || bv.IsNil() {
			return fmt.Sprintf("%s%s != %s",
				prefix(at), prettyPrint(av, prettyPrintDepth), prettyPrint(bv, prettyPrintDepth))
		}
		return diff(at, av.Elem(), bv.Elem())
	case reflect.Struct:
		if !av.Type().Comparable() {
			t := av.Type()
			for i := 0; i < av.NumField(); i++ {
				if !deepEqual(av.Field(i), bv.Field(i)) {
					return diff(fmt.Sprintf("%s.%s", at, t.Field(i).Name), av.Field(i), bv.Field(i))
				}
			}
		}
	}
	return fmt.Sprintf("%s%s != %s",
		prefix(at), prettyPrint(av, prettyPrintDepth), prettyPrint(bv, prettyPrintDepth))
}

func prefix(at string) string {
	if at == "" {
		return ""
	}
	return at + ": "
}
