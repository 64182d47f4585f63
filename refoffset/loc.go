// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package refoffset

// Loc is the code offset of the bytecode instruction responsible for some
// fact (a path's provenance, or a diagnostic). It is carried purely for
// attaching errors and explanations to bytecode; it is never part of any
// equality or ordering computation in the path algebra or the borrow set.
type Loc int
