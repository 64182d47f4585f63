// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package logger defines the logging interface the analyzer and its CLI
// write through, so that nothing outside the glog package depends on a
// concrete logging backend.
package logger

// Logger is the subset of logging the verifier toolchain needs: progress
// and per-function results at info level, diagnostics at error level, and
// unrecoverable setup failures at fatal level.
type Logger interface {
	// Info logs at the info level
	Info(args ...interface{})
	// Infof logs at the info level, with format
	Infof(format string, args ...interface{})
	// Error logs at the error level
	Error(args ...interface{})
	// Errorf logs at the error level, with format
	Errorf(format string, args ...interface{})
	// Fatal logs at the fatal level and exits
	Fatal(args ...interface{})
	// Fatalf logs at the fatal level, with format, and exits
	Fatalf(format string, args ...interface{})
}
