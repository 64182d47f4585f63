// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgervm/refsafety/absstate"
	"github.com/ledgervm/refsafety/cfg"
	"github.com/ledgervm/refsafety/transfer"
	"github.com/ledgervm/refsafety/verifier"
	"github.com/ledgervm/refsafety/verifyerr"
)

// FunctionUnit is everything an upstream pass (bytecode decoding, CFG
// construction, type checking) is assumed to have already produced for
// one function definition. This package decodes it from JSON because
// this distribution has no bytecode parser of its own; a real host feeds
// the same fields from its own compiled representation.
type FunctionUnit struct {
	Index  int         `json:"index"`
	Locals []LocalSig  `json:"locals"`
	Blocks []BlockSpec `json:"blocks"`
	Instrs []InstrSpec `json:"instrs"`
}

// LocalSig describes one parameter or local slot's static shape.
type LocalSig struct {
	Slot        int  `json:"slot"`
	IsReference bool `json:"isReference"`
	Mutable     bool `json:"mutable"`
	IsParameter bool `json:"isParameter"`
	ParamIndex  int  `json:"paramIndex"`
}

// BlockSpec describes one basic block of the control-flow graph.
type BlockSpec struct {
	ID         int   `json:"id"`
	Successors []int `json:"successors"`
	Instrs     []int `json:"instrs"`
}

// ReturnSig describes one of a called function's return values.
type ReturnSig struct {
	IsReference bool `json:"isReference"`
	Mutable     bool `json:"mutable"`
}

// InstrSpec is one bytecode instruction, addressed by Offset. Op names
// match the transfer.Transfer methods, except that "Eq" and "Neq" both
// map to EqNeq. Dst/Src/Src2/Args/
// Values name registers — fixture-local identifiers standing in for
// stack slots, since the JSON format models operand flow explicitly
// rather than via an implicit stack, which is also how the transfer
// function itself sees operands.
type InstrSpec struct {
	Offset   int         `json:"offset"`
	Op       string      `json:"op"`
	Slot     int         `json:"slot"`
	Mutable  bool        `json:"mutable"`
	Field    int         `json:"field"`
	Global   int         `json:"global"`
	Dst      string      `json:"dst"`
	Src      string      `json:"src"`
	Src2     string      `json:"src2"`
	Args     []string    `json:"args"`
	Acquires []int       `json:"acquires"`
	Returns  []ReturnSig `json:"returns"`
	Values   []string    `json:"values"`
}

// LoadFunctionUnit reads and decodes a FunctionUnit from path.
func LoadFunctionUnit(path string) (*FunctionUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refverify: reading %s: %w", path, err)
	}
	var fu FunctionUnit
	if err := json.Unmarshal(data, &fu); err != nil {
		return nil, fmt.Errorf("refverify: decoding %s: %w", path, err)
	}
	return &fu, nil
}

// Build translates a FunctionUnit into the verifier.Function the driver
// runs: an initial AbstractState (with every reference-typed local and
// parameter pre-declared to its pinned reference), a cfg.Graph, and a
// StepFunc that interprets each instruction by Offset via transfer.Transfer.
func Build(fu *FunctionUnit, opts transfer.Options) (verifier.Function, error) {
	state := absstate.New(fu.Index)
	refLocals := make(map[absstate.LocalSlot]bool, len(fu.Locals))
	for _, l := range fu.Locals {
		slot := absstate.LocalSlot(l.Slot)
		refLocals[slot] = l.IsReference
		if !l.IsReference {
			continue
		}
		if l.IsParameter {
			state.DeclareRefParameter(slot, l.Mutable, l.ParamIndex, 0)
		} else {
			state.DeclareRefLocal(slot, l.Mutable, 0)
		}
	}

	byOffset := make(map[int]InstrSpec, len(fu.Instrs))
	for _, in := range fu.Instrs {
		byOffset[in.Offset] = in
	}

	graph := &cfg.StaticGraph{
		SuccessorsOf:     make(map[cfg.BlockID][]cfg.BlockID),
		BlockEnds:        make(map[cfg.BlockID]int),
		Instrs:           make(map[cfg.BlockID][]int),
		LoopLastContinue: make(map[cfg.BlockID]cfg.BlockID),
	}
	if len(fu.Blocks) > 0 {
		graph.Entry = cfg.BlockID(fu.Blocks[0].ID)
	}
	for _, b := range fu.Blocks {
		id := cfg.BlockID(b.ID)
		graph.Order = append(graph.Order, id)
		for _, s := range b.Successors {
			graph.SuccessorsOf[id] = append(graph.SuccessorsOf[id], cfg.BlockID(s))
		}
		graph.Instrs[id] = b.Instrs
		if len(b.Instrs) > 0 {
			graph.BlockEnds[id] = b.Instrs[len(b.Instrs)-1]
		}
	}
	detectBackEdges(graph)

	blockFirst := make(map[int]bool)
	for _, b := range fu.Blocks {
		if len(b.Instrs) > 0 {
			blockFirst[b.Instrs[0]] = true
		}
	}

	tr := &transfer.Transfer{Options: opts}
	var regs map[string]transfer.Value

	// Registers are reset whenever a block's first instruction runs:
	// they don't outlive the block that defines them, matching the
	// lifetime a real operand stack would give a push'd value, and every
	// re-execution of a block by the fixed-point driver recomputes them
	// fresh from that block's (possibly changed) pre-state.
	step := func(offset int, s *absstate.AbstractState) *verifyerr.VerifyError {
		if blockFirst[offset] || regs == nil {
			regs = make(map[string]transfer.Value)
		}
		in, ok := byOffset[offset]
		if !ok {
			return nil
		}
		return interpret(tr, s, in, regs, refLocals)
	}

	return verifier.Function{Index: fu.Index, CFG: graph, Entry: state, Step: step}, nil
}

// detectBackEdges marks, for every edge whose target precedes its source
// in declaration order or is the source itself, the source as a
// loop-last-continue block
// of that target — a conservative stand-in for the loop analysis a real
// CFG-construction pass would supply.
func detectBackEdges(g *cfg.StaticGraph) {
	position := make(map[cfg.BlockID]int, len(g.Order))
	for i, id := range g.Order {
		position[id] = i
	}
	for _, id := range g.Order {
		for _, succ := range g.SuccessorsOf[id] {
			if position[succ] <= position[id] {
				g.LoopLastContinue[id] = succ
			}
		}
	}
}
