package cpu

// execJAL: rd <- pc+4; pc <- pc + imm_j (spec.md §4.5).
func (c *CPU) execJAL() bool {
	c.writeback(c.ins.Rd(), c.prevPC+4)
	c.setPC(uint32(int32(c.prevPC) + c.ins.ImmJ()))
	return true
}

// execJALR: rd <- pc+4; pc <- (rs1 + imm_i) with bit 0 cleared
// (spec.md §4.5; JALR clears the destination LSB even when rs1+imm_i is
// odd, enforced by setPCMasked0's bit-0 mask).
func (c *CPU) execJALR() bool {
	target := uint32(int32(c.rs1val) + c.ins.ImmI())
	c.writeback(c.ins.Rd(), c.prevPC+4)
	c.setPCMasked0(target)
	return true
}

// execBranch dispatches on funct3 to decide taken/not-taken, branching
// to pc+imm_b if taken else falling through to pc+4 (spec.md §4.5).
func (c *CPU) execBranch() bool {
	taken := false
	switch c.ins.Funct3() {
	case 0b000: // BEQ
		taken = c.rs1val == c.rs2val
	case 0b001: // BNE
		taken = c.rs1val != c.rs2val
	case 0b100: // BLT
		taken = int32(c.rs1val) < int32(c.rs2val)
	case 0b101: // BGE
		taken = int32(c.rs1val) >= int32(c.rs2val)
	case 0b110: // BLTU
		taken = c.rs1val < c.rs2val
	case 0b111: // BGEU
		taken = c.rs1val >= c.rs2val
	}

	if taken {
		c.setPC(uint32(int32(c.prevPC) + c.ins.ImmB()))
	} else {
		c.advancePC()
	}
	return true
}
