// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/ledgervm/refsafety/absstate"
	"github.com/ledgervm/refsafety/borrowset"
	"github.com/ledgervm/refsafety/refoffset"
	"github.com/ledgervm/refsafety/transfer"
	"github.com/ledgervm/refsafety/verifyerr"
)

// interpret applies one InstrSpec to s via tr, reading operands from and
// writing results into regs. It is the only place that translates the
// fixture's JSON vocabulary into calls against the real transfer function
// (component E); everything downstream of this function is the analyzer
// proper. refLocals reports, for CopyLoc/MoveLoc/StLoc, whether the
// addressed slot is reference-typed; all three of those rules branch on
// it.
func interpret(tr *transfer.Transfer, s *absstate.AbstractState, in InstrSpec, regs map[string]transfer.Value, refLocals map[absstate.LocalSlot]bool) *verifyerr.VerifyError {
	loc := refoffset.Loc(in.Offset)
	slot := absstate.LocalSlot(in.Slot)

	switch in.Op {
	case "CopyLoc":
		v, err := tr.CopyLoc(s, slot, refLocals[slot], loc)
		if err != nil {
			return err
		}
		setReg(regs, in.Dst, v)

	case "MoveLoc":
		v, err := tr.MoveLoc(s, slot, refLocals[slot], loc)
		if err != nil {
			return err
		}
		setReg(regs, in.Dst, v)

	case "StLoc":
		return tr.StLoc(s, slot, refLocals[slot], regs[in.Src], loc)

	case "FreezeRef":
		setReg(regs, in.Dst, tr.FreezeRef(s, regs[in.Src].ID(), loc))

	case "ReadRef":
		return tr.ReadRef(s, regs[in.Src].ID(), loc)

	case "WriteRef":
		return tr.WriteRef(s, regs[in.Src].ID(), loc)

	case "Eq", "Neq":
		tr.EqNeq(s, regs[in.Src], regs[in.Src2])

	case "BorrowLoc":
		setReg(regs, in.Dst, tr.BorrowLoc(s, in.Mutable, slot, loc))

	case "BorrowField":
		field := refoffset.MakeLabel(refoffset.Field, in.Field)
		setReg(regs, in.Dst, tr.BorrowField(s, in.Mutable, regs[in.Src].ID(), field, loc))

	case "VectorElementBorrow":
		site := refoffset.Site{Instr: in.Offset, Slot: 0}
		setReg(regs, in.Dst, tr.VectorElementBorrow(s, in.Mutable, regs[in.Src].ID(), site, loc))

	case "BorrowGlobal":
		global := refoffset.MakeLabel(refoffset.Global, in.Global)
		setReg(regs, in.Dst, tr.BorrowGlobal(s, in.Mutable, global, loc))

	case "MoveFrom":
		global := refoffset.MakeLabel(refoffset.Global, in.Global)
		return tr.MoveFrom(s, global, loc)

	case "VectorMutOp":
		return tr.VectorMutOp(s, regs[in.Src].ID(), loc)

	case "Call":
		args := make([]transfer.Value, len(in.Args))
		for i, name := range in.Args {
			args[i] = regs[name]
		}
		acquires := make([]refoffset.Offset, len(in.Acquires))
		for i, g := range in.Acquires {
			acquires[i] = refoffset.MakeLabel(refoffset.Global, g)
		}
		returns := make([]transfer.ReturnSpec, len(in.Returns))
		for i, r := range in.Returns {
			returns[i] = transfer.ReturnSpec{IsReference: r.IsReference, Mutable: r.Mutable}
		}
		site := refoffset.Site{Instr: in.Offset, Slot: 0}
		out, err := tr.Call(s, args, acquires, returns, site, loc)
		if err != nil {
			return err
		}
		for i, v := range out {
			if i < len(in.Values) {
				setReg(regs, in.Values[i], v)
			}
		}

	case "Ret":
		var returned []borrowset.RefID
		for _, name := range in.Values {
			if v, ok := regs[name]; ok && v.IsReference() {
				returned = append(returned, v.ID())
			}
		}
		return tr.Ret(s, returned, loc)

	default:
		return verifyerr.New(verifyerr.AnalyzerVariantUnavailable, s.FunctionIndex, in.Offset)
	}
	return nil
}

func setReg(regs map[string]transfer.Value, name string, v transfer.Value) {
	if name == "" {
		return
	}
	regs[name] = v
}
