package cpu

import "github.com/rvsim/core/decode"

// dispatch performs the effect of the currently latched instruction
// (c.kind/c.ins/c.rs1val/c.rs2val), mirroring spec.md §4.5's per-opcode
// effect table. It returns true once the instruction has fully
// completed (PC updated, writeback committed); a load/store instruction
// whose bus access has not yet acked returns false and is retried on the
// next tick, leaving EXECUTE in place per spec.md §4.6.
func (c *CPU) dispatch() bool {
	switch c.kind {
	case decode.KindLUI:
		return c.execLUI()
	case decode.KindAUIPC:
		return c.execAUIPC()
	case decode.KindJAL:
		return c.execJAL()
	case decode.KindJALR:
		return c.execJALR()
	case decode.KindBranch:
		return c.execBranch()
	case decode.KindLoad:
		return c.execLoad()
	case decode.KindStore:
		return c.execStore()
	case decode.KindOpImm:
		return c.execOpImm()
	case decode.KindOp:
		return c.execOp()
	case decode.KindMiscMem:
		// FENCE and friends: no-op in a single-hart, no-cache, no-pipeline
		// core (spec.md Non-goals exclude caches/hazards).
		c.advancePC()
		return true
	case decode.KindECALL:
		// Reserved for a future trap implementation (spec.md §4.5/§9).
		c.advancePC()
		return true
	case decode.KindEBREAK:
		c.halted = true
		return true
	case decode.KindCSR:
		return c.execCSR()
	default:
		return c.invalidInstruction()
	}
}
