// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package modroot locates the root of the enclosing Go module, used by
// cmd/refverify to resolve its default config file location relative to
// the checkout rather than to whatever directory it happens to run from.
package modroot

import (
	"os"
	"path/filepath"
)

var modRoot string

// Path returns the directory containing the nearest go.mod at or above
// the current working directory, caching the answer for the life of the
// process. It panics when no go.mod is found; callers that may run
// outside a module checkout recover and fall back (see cmd/refverify).
func Path() string {
	if modRoot != "" {
		return modRoot
	}
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			modRoot = dir
			return dir
		}
		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}
	panic("no module root found!")
}
