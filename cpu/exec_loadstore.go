package cpu

import "github.com/rvsim/core/bus"

// LOAD funct3 encodings.
const (
	f3LB  = 0b000
	f3LH  = 0b001
	f3LW  = 0b010
	f3LBU = 0b100
	f3LHU = 0b101
)

// STORE funct3 encodings.
const (
	f3SB = 0b000
	f3SH = 0b001
	f3SW = 0b010
)

// execLoad computes addr <- rs1 + imm_i, drives a bus read, and on ack
// extracts the addressed byte/half/word with the sign- or zero-extension
// the funct3 variant calls for (spec.md §4.5's load byte-lane
// extraction table).
func (c *CPU) execLoad() bool {
	addr := uint32(int32(c.rs1val) + c.ins.ImmI())
	tx := bus.Transaction{
		Adr:  addr >> 2,
		Sel:  [4]bool{true, true, true, true},
		Cyc:  true,
		Stb:  true,
		We:   false,
	}
	datR, ack := c.busTick(tx)
	if !ack {
		return false
	}

	a := addr & 0x3
	funct3 := c.ins.Funct3()

	var shiftBytes uint32
	var widthBytes uint32
	signed := false
	switch funct3 {
	case f3LB:
		shiftBytes = a
		widthBytes = 1
		signed = true
	case f3LBU:
		shiftBytes = a
		widthBytes = 1
	case f3LH:
		shiftBytes = a & 0b10
		widthBytes = 2
		signed = true
	case f3LHU:
		shiftBytes = a & 0b10
		widthBytes = 2
	case f3LW:
		shiftBytes = 0
		widthBytes = 4
	default:
		return c.invalidInstruction()
	}

	shifted := datR >> (shiftBytes * 8)
	var mask uint32
	switch widthBytes {
	case 1:
		mask = 0xFF
	case 2:
		mask = 0xFFFF
	default:
		mask = 0xFFFFFFFF
	}
	val := shifted & mask

	if signed {
		switch widthBytes {
		case 1:
			val = uint32(int32(int8(val)))
		case 2:
			val = uint32(int32(int16(val)))
		}
	}

	c.writeback(c.ins.Rd(), val)
	c.advancePC()
	return true
}

// execStore computes addr <- rs1 + imm_s, places rs2 into the addressed
// lane(s) with dat_w replicated into all candidate lanes, and drives the
// masked bus write (spec.md §4.5's store byte-lane placement table).
func (c *CPU) execStore() bool {
	addr := uint32(int32(c.rs1val) + c.ins.ImmS())
	a := addr & 0x3
	funct3 := c.ins.Funct3()

	var datW uint32
	var sel [4]bool
	switch funct3 {
	case f3SB:
		b := c.rs2val & 0xFF
		datW = b | b<<8 | b<<16 | b<<24
		sel[a] = true
	case f3SH:
		h := c.rs2val & 0xFFFF
		datW = h | h<<16
		lane := a &^ 0b1
		sel[lane] = true
		sel[lane+1] = true
	case f3SW:
		datW = c.rs2val
		sel = [4]bool{true, true, true, true}
	default:
		return c.invalidInstruction()
	}

	tx := bus.Transaction{
		Adr:  addr >> 2,
		DatW: datW,
		Sel:  sel,
		Cyc:  true,
		Stb:  true,
		We:   true,
	}
	_, ack := c.busTick(tx)
	if !ack {
		return false
	}

	c.advancePC()
	return true
}
