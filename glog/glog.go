// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package glog backs logger.Logger with aristanetworks/glog, the
// production logging implementation cmd/refverify runs with.
package glog

import "github.com/aristanetworks/glog"

// Glog adapts glog to logger.Logger. Info-level output is gated behind
// InfoLevel so per-function "OK" lines can be verbosity-controlled with
// -v without touching error reporting.
type Glog struct {
	// InfoLevel is the glog verbosity level Info/Infof log at. The zero
	// value logs unconditionally.
	InfoLevel glog.Level
}

// Info logs at the info level
func (g *Glog) Info(args ...interface{}) {
	glog.V(g.InfoLevel).Info(args...)
}

// Infof logs at the info level, with format
func (g *Glog) Infof(format string, args ...interface{}) {
	glog.V(g.InfoLevel).Infof(format, args...)
}

// Error logs at the error level
func (g *Glog) Error(args ...interface{}) {
	glog.Error(args...)
}

// Errorf logs at the error level, with format
func (g *Glog) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// Fatal logs at the fatal level and exits
func (g *Glog) Fatal(args ...interface{}) {
	glog.Fatal(args...)
}

// Fatalf logs at the fatal level, with format, and exits
func (g *Glog) Fatalf(format string, args ...interface{}) {
	glog.Fatalf(format, args...)
}
