// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package cfg

// StaticGraph is a Graph built from data already fully known up front —
// the shape produced by parsing a function's bytecode into blocks, and
// the shape used directly by tests and by cmd/refverify's JSON fixtures.
type StaticGraph struct {
	Entry            BlockID
	SuccessorsOf     map[BlockID][]BlockID
	BlockEnds        map[BlockID]int
	Instrs           map[BlockID][]int
	Order            []BlockID
	LoopLastContinue map[BlockID]BlockID
}

var _ Graph = (*StaticGraph)(nil)

// EntryBlockID implements Graph.
func (g *StaticGraph) EntryBlockID() BlockID { return g.Entry }

// Successors implements Graph.
func (g *StaticGraph) Successors(block BlockID) []BlockID { return g.SuccessorsOf[block] }

// BlockEnd implements Graph.
func (g *StaticGraph) BlockEnd(block BlockID) int { return g.BlockEnds[block] }

// InstrIndexes implements Graph.
func (g *StaticGraph) InstrIndexes(block BlockID) []int { return g.Instrs[block] }

// TraversalOrder implements Graph.
func (g *StaticGraph) TraversalOrder() []BlockID { return g.Order }

// LoopLastContinueBlocks implements Graph.
func (g *StaticGraph) LoopLastContinueBlocks() map[BlockID]BlockID { return g.LoopLastContinue }
