package cpu

import "github.com/rvsim/core/bus"

// flatBus is a simple word-addressed bus.Slave used by CPU tests: a
// single flat array spanning the whole 30-bit word address space,
// mirroring the teacher's flat byte-array testBus (testutil_test.go in
// the teacher repo) but word-oriented to match this core's word-wide
// bus protocol.
type flatBus struct {
	words map[uint32]uint32
}

func newFlatBus() *flatBus {
	return &flatBus{words: make(map[uint32]uint32)}
}

func (b *flatBus) Tick(tx bus.Transaction) (uint32, bool) {
	if !tx.Cyc || !tx.Stb {
		return 0, false
	}
	if !tx.We {
		return b.words[tx.Adr], true
	}
	old := b.words[tx.Adr]
	merged := old
	for i, sel := range tx.Sel {
		if !sel {
			continue
		}
		shift := uint(i) * 8
		mask := uint32(0xFF) << shift
		merged = (merged &^ mask) | (tx.DatW & mask)
	}
	b.words[tx.Adr] = merged
	return 0, true
}

// loadProgram writes a sequence of 32-bit instruction words starting at
// word address 0.
func (b *flatBus) loadProgram(words ...uint32) {
	for i, w := range words {
		b.words[uint32(i)] = w
	}
}

// encR encodes an R-type (OP) instruction.
func encR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return opcode | rd<<7 | funct3<<12 | rs1<<15 | rs2<<20 | funct7<<25
}

// encI encodes an I-type instruction (OP_IMM, LOAD, JALR, SYSTEM).
func encI(opcode, funct3, rd, rs1 uint32, imm int32) uint32 {
	return opcode | rd<<7 | funct3<<12 | rs1<<15 | (uint32(imm)&0xFFF)<<20
}

// encS encodes an S-type instruction (STORE).
func encS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	lo := u & 0x1F
	hi := (u >> 5) & 0x7F
	return opcode | lo<<7 | funct3<<12 | rs1<<15 | rs2<<20 | hi<<25
}

// encB encodes a B-type instruction (BRANCH).
func encB(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	b11 := (u >> 11) & 0x1
	b4_1 := (u >> 1) & 0xF
	b10_5 := (u >> 5) & 0x3F
	b12 := (u >> 12) & 0x1
	return opcode | b11<<7 | b4_1<<8 | funct3<<12 | rs1<<15 | rs2<<20 | b10_5<<25 | b12<<31
}

// encU encodes a U-type instruction (LUI, AUIPC).
func encU(opcode, rd uint32, imm int32) uint32 {
	return opcode | rd<<7 | (uint32(imm) & 0xFFFFF000)
}

// encJ encodes a J-type instruction (JAL).
func encJ(opcode, rd uint32, imm int32) uint32 {
	u := uint32(imm)
	b19_12 := (u >> 12) & 0xFF
	b11 := (u >> 11) & 0x1
	b10_1 := (u >> 1) & 0x3FF
	b20 := (u >> 20) & 0x1
	return opcode | rd<<7 | b19_12<<12 | b11<<20 | b10_1<<21 | b20<<31
}

const (
	opLUI    = 0b0110111
	opAUIPC  = 0b0010111
	opJAL    = 0b1101111
	opJALR   = 0b1100111
	opBRANCH = 0b1100011
	opLOAD   = 0b0000011
	opSTORE  = 0b0100011
	opIMM    = 0b0010011
	opOP     = 0b0110011
	opSYSTEM = 0b1110011
)

func encADDI(rd, rs1 uint32, imm int32) uint32 { return encI(opIMM, 0b000, rd, rs1, imm) }
func encADD(rd, rs1, rs2 uint32) uint32        { return encR(opOP, 0b000, 0, rd, rs1, rs2) }
func encSLT(rd, rs1, rs2 uint32) uint32        { return encR(opOP, 0b010, 0, rd, rs1, rs2) }
func encSLTU(rd, rs1, rs2 uint32) uint32       { return encR(opOP, 0b011, 0, rd, rs1, rs2) }
func encBNE(rs1, rs2 uint32, imm int32) uint32 { return encB(opBRANCH, 0b001, rs1, rs2, imm) }
func encLB(rd, rs1 uint32, imm int32) uint32   { return encI(opLOAD, 0b000, rd, rs1, imm) }
func encEBREAK() uint32                        { return opSYSTEM | 1<<20 }
