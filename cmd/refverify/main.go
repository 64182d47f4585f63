// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Command refverify is the reference-safety analyzer's CLI front end: it
// reads one or more FunctionUnit fixtures, runs the set-based analyzer
// (or reports the graph variant as unavailable) over each, and prints
// the resulting diagnostics.
package main

import (
	"context"
	"flag"
	"os"

	refglog "github.com/ledgervm/refsafety/glog"
	"github.com/ledgervm/refsafety/logger"
	"github.com/ledgervm/refsafety/transfer"
	"github.com/ledgervm/refsafety/verifier"
)

var (
	configFlag           = flag.String("config", "", "path to a refverify.yaml config file (default: <module root>/refverify.yaml, if present)")
	variantFlag          = flag.String("variant", "", "analyzer variant: set or graph (default: config file, then $ANALYZER_VARIANT, then \"set\")")
	collectAllErrorsFlag = flag.Bool("collect-all-errors", false, "keep analyzing blocks unreachable from an errored block instead of stopping at the first error")
	strictCopyLocFlag    = flag.Bool("strict-copyloc", false, "reject CopyLoc on a mutably borrowed non-reference local (the original variant's policy)")
	concurrencyFlag      = flag.Int64("concurrency", 0, "max functions analyzed concurrently when given more than one input file (default: config file, then 4)")
)

func main() {
	flag.Parse()
	log := logger.Logger(&refglog.Glog{})

	cfgPath := *configFlag
	isDefault := cfgPath == ""
	if isDefault {
		cfgPath = safeDefaultConfigPath()
	}
	cfg, err := loadConfig(cfgPath, isDefault)
	if err != nil {
		log.Fatalf("%v", err)
	}

	variant := verifier.SelectVariant(firstNonEmpty(*variantFlag, cfg.Variant))
	opts := verifier.Options{CollectAllErrors: *collectAllErrorsFlag || cfg.CollectAllErrors}
	trOpts := transfer.Options{StrictCopyLoc: *strictCopyLocFlag || cfg.StrictCopyLoc}

	concurrency := *concurrencyFlag
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: refverify [flags] <function-unit.json>...")
	}

	fns := make([]verifier.Function, 0, len(paths))
	for _, p := range paths {
		fu, err := LoadFunctionUnit(p)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fn, err := Build(fu, trOpts)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fns = append(fns, fn)
	}

	results, err := verifier.RunBatch(context.Background(), fns, variant, opts, concurrency)
	if err != nil {
		log.Fatalf("refverify: %v", err)
	}

	exitCode := 0
	for i, result := range results {
		code := report(paths[i], result, log)
		if code > exitCode {
			exitCode = code
		}
	}
	os.Exit(exitCode)
}

// safeDefaultConfigPath resolves the default config path, but never
// panics: modroot.Path panics when run outside a checkout of this
// module, which a merely-installed refverify binary usually is. In that
// case refverify simply runs without a config file.
func safeDefaultConfigPath() (path string) {
	defer func() {
		if recover() != nil {
			path = ""
		}
	}()
	return defaultConfigPath()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
