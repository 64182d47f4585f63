// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package test

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// prettyPrintDepth bounds how far PrettyPrint descends into nested
// containers before abbreviating.
const prettyPrintDepth = 4

// PrettyPrint renders v for a test failure message. Types with a String
// method (paths, offsets, status codes) render through it; containers are
// walked with map keys sorted so two runs of a failing test print the
// same message.
func PrettyPrint(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return prettyPrint(reflect.ValueOf(v), prettyPrintDepth)
}

func prettyPrint(v reflect.Value, depth int) string {
	if depth < 0 {
		return "..."
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return "nil"
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = prettyPrint(v.Index(i), depth-1)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case reflect.Map:
		if v.IsNil() {
			return "nil"
		}
		parts := make([]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			parts = append(parts, fmt.Sprintf("%s:%s",
				prettyPrint(iter.Key(), depth-1), prettyPrint(iter.Value(), depth-1)))
		}
		sort.Strings(parts)
		return "map[" + strings.Join(parts, " ") + "]"
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return "nil"
		}
		return prettyPrint(v.Elem(), depth-1)
	case reflect.Struct:
		t := v.Type()
		parts := make([]string, 0, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			parts = append(parts, fmt.Sprintf("%s:%s",
				t.Field(i).Name, prettyPrint(v.Field(i), depth-1)))
		}
		return t.Name() + "{" + strings.Join(parts, " ") + "}"
	case reflect.String:
		return fmt.Sprintf("%q", v.String())
	default:
		if v.CanInterface() {
			return fmt.Sprintf("%v", v.Interface())
		}
		return fmt.Sprintf("%v", v)
	}
}
