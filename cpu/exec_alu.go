package cpu

import "github.com/rvsim/core/alu"

// execLUI: rd <- imm_u (spec.md §4.5).
func (c *CPU) execLUI() bool {
	c.writeback(c.ins.Rd(), uint32(c.ins.ImmU()))
	c.advancePC()
	return true
}

// execAUIPC: rd <- pc + imm_u. The PC used is the address of this
// instruction (c.prevPC), not the already-advanced c.pc.
func (c *CPU) execAUIPC() bool {
	c.writeback(c.ins.Rd(), c.prevPC+uint32(c.ins.ImmU()))
	c.advancePC()
	return true
}

// execOpImm performs an ALU op of (rs1, imm_i), with funct7 bit 30
// distinguishing SRLI from SRAI (spec.md §4.5: "SHIFT_L/SHIFT_R
// distinguishing logical vs arithmetic via funct7").
func (c *CPU) execOpImm() bool {
	rd := c.ins.Rd()
	funct3 := c.ins.Funct3()
	imm := c.ins.ImmI()
	shamt := uint32(imm) & 0x1F

	var op alu.Op
	in2 := uint32(imm)
	switch funct3 {
	case 0b000: // ADDI
		op = alu.ADD
	case 0b010: // SLTI
		op = alu.LT
	case 0b011: // SLTIU
		op = alu.LTU
	case 0b100: // XORI
		op = alu.XOR
	case 0b110: // ORI
		op = alu.OR
	case 0b111: // ANDI
		op = alu.AND
	case 0b001: // SLLI
		op = alu.SLL
		in2 = shamt
	case 0b101: // SRLI/SRAI, selected by funct7 bit 30 (imm bit 10)
		if imm&0x400 != 0 {
			op = alu.SRA
		} else {
			op = alu.SRL
		}
		in2 = shamt
	}

	result := alu.Exec(op, c.rs1val, in2, shamt)
	c.writeback(rd, result)
	c.advancePC()
	return true
}

// execOp performs an ALU op of (rs1, rs2); funct7 selects the SUB and
// SRA variants (spec.md §4.5).
func (c *CPU) execOp() bool {
	rd := c.ins.Rd()
	funct3 := c.ins.Funct3()
	alt := c.ins.Funct7() == 0b0100000

	var op alu.Op
	switch funct3 {
	case 0b000:
		if alt {
			op = alu.SUB
		} else {
			op = alu.ADD
		}
	case 0b001:
		op = alu.SLL
	case 0b010:
		op = alu.LT
	case 0b011:
		op = alu.LTU
	case 0b100:
		op = alu.XOR
	case 0b101:
		if alt {
			op = alu.SRA
		} else {
			op = alu.SRL
		}
	case 0b110:
		op = alu.OR
	case 0b111:
		op = alu.AND
	}

	result := alu.Exec(op, c.rs1val, c.rs2val, c.rs2val)
	c.writeback(rd, result)
	c.advancePC()
	return true
}
