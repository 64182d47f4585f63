// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/ledgervm/refsafety/logger"
	"github.com/ledgervm/refsafety/sliceutils"
	"github.com/ledgervm/refsafety/verifier"
)

// report prints result's diagnostics for the function loaded from path and
// returns the process exit code to use for it: 0 on success, or the
// highest-numbered StatusCode's ExitCode() among its errors otherwise —
// matching the BSD-sysexits-derived scheme verifyerr.StatusCode.ExitCode
// documents.
func report(path string, result *verifier.Result, log logger.Logger) int {
	if len(result.Errors) == 0 {
		log.Infof("%s: OK", path)
		return 0
	}
	lines := make([]string, len(result.Errors))
	exitCode := 0
	for i, err := range result.Errors {
		lines[i] = fmt.Sprintf("%s: %v\n", path, err)
		if c := err.Status.ExitCode(); c > exitCode {
			exitCode = c
		}
	}
	// One Error call across every diagnostic for this function, so a
	// log aggregator sees them as a single multi-line event rather than
	// len(lines) unrelated ones.
	log.Error(sliceutils.ToAnySlice(lines)...)
	return exitCode
}
