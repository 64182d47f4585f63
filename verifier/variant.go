// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package verifier

import (
	"os"

	"github.com/ledgervm/refsafety/verifyerr"
)

// Variant names an analyzer implementation the host can select between.
type Variant string

const (
	// SetVariant is the set-based analyzer this repository implements.
	SetVariant Variant = "set"
	// GraphVariant names the original graph-based analyzer. This
	// distribution never builds it; selecting it always fails with
	// AnalyzerVariantUnavailable.
	GraphVariant Variant = "graph"
)

// variantEnv is the environment variable the host sets when it wants to
// override the default variant.
const variantEnv = "ANALYZER_VARIANT"

// SelectVariant resolves the variant to run: explicit, if non-empty,
// otherwise the ANALYZER_VARIANT environment variable, otherwise
// SetVariant, this distribution's documented default.
func SelectVariant(explicit string) Variant {
	if explicit != "" {
		return Variant(explicit)
	}
	if v := os.Getenv(variantEnv); v != "" {
		return Variant(v)
	}
	return SetVariant
}

// RunSelected runs fn under the variant resolved by SelectVariant. Any
// variant other than SetVariant produces a single AnalyzerVariantUnavailable
// diagnostic rather than attempting to analyze with an engine this
// distribution does not build.
func RunSelected(variant Variant, fn Function, opts Options) *Result {
	if variant != SetVariant {
		err := verifyerr.New(verifyerr.AnalyzerVariantUnavailable, fn.Index, 0)
		return &Result{Errors: []*verifyerr.VerifyError{err}}
	}
	return Run(fn, opts)
}
