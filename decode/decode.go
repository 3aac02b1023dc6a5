// Package decode provides bitfield views over a 32-bit RV32I instruction
// word: the opcode, register fields, funct3/funct7 selectors, and the
// five immediate encodings (I, S, B, U, J).
package decode

// Opcode values, restricted to the RV32I base set (spec.md §3).
const (
	OpLUI      uint32 = 0b0110111
	OpAUIPC    uint32 = 0b0010111
	OpJAL      uint32 = 0b1101111
	OpJALR     uint32 = 0b1100111
	OpBRANCH   uint32 = 0b1100011
	OpLOAD     uint32 = 0b0000011
	OpSTORE    uint32 = 0b0100011
	OpOP_IMM   uint32 = 0b0010011
	OpOP       uint32 = 0b0110011
	OpMISCMEM  uint32 = 0b0001111
	OpSYSTEM   uint32 = 0b1110011
)

// Kind is the tagged variant produced by decoding, used to drive
// execution as a match over an enum rather than dynamic dispatch
// (spec.md §9).
type Kind int

const (
	KindInvalid Kind = iota
	KindLUI
	KindAUIPC
	KindJAL
	KindJALR
	KindBranch
	KindLoad
	KindStore
	KindOpImm
	KindOp
	KindMiscMem
	KindECALL
	KindEBREAK
	KindCSR
)

// Instruction wraps a raw 32-bit instruction word and exposes its
// decoded bitfields on demand.
type Instruction struct {
	Word uint32
}

func (i Instruction) Op() uint32      { return i.Word & 0x7F }
func (i Instruction) Rd() uint32      { return (i.Word >> 7) & 0x1F }
func (i Instruction) Funct3() uint32  { return (i.Word >> 12) & 0x7 }
func (i Instruction) Rs1() uint32     { return (i.Word >> 15) & 0x1F }
func (i Instruction) Rs2() uint32     { return (i.Word >> 20) & 0x1F }
func (i Instruction) Funct7() uint32  { return (i.Word >> 25) & 0x7F }

// ImmI returns the sign-extended 12-bit I-type immediate.
func (i Instruction) ImmI() int32 {
	return int32(i.Word) >> 20
}

// ImmS returns the sign-extended 12-bit S-type immediate, scattered
// across rd (bits[11:5] in bits[31:25], bits[4:0] in bits[11:7]).
func (i Instruction) ImmS() int32 {
	hi := (i.Word >> 25) & 0x7F
	lo := (i.Word >> 7) & 0x1F
	raw := (hi << 5) | lo
	return signExtend(raw, 12)
}

// ImmB returns the sign-extended 13-bit B-type immediate (LSB always 0).
func (i Instruction) ImmB() int32 {
	b12 := (i.Word >> 31) & 0x1
	b11 := (i.Word >> 7) & 0x1
	b10_5 := (i.Word >> 25) & 0x3F
	b4_1 := (i.Word >> 8) & 0xF
	raw := (b12 << 12) | (b11 << 11) | (b10_5 << 5) | (b4_1 << 1)
	return signExtend(raw, 13)
}

// ImmU returns the 20-bit U-type immediate shifted into the upper bits.
func (i Instruction) ImmU() int32 {
	return int32(i.Word & 0xFFFFF000)
}

// ImmJ returns the sign-extended 21-bit J-type immediate (LSB always 0).
func (i Instruction) ImmJ() int32 {
	b20 := (i.Word >> 31) & 0x1
	b19_12 := (i.Word >> 12) & 0xFF
	b11 := (i.Word >> 20) & 0x1
	b10_1 := (i.Word >> 21) & 0x3FF
	raw := (b20 << 20) | (b19_12 << 12) | (b11 << 11) | (b10_1 << 1)
	return signExtend(raw, 21)
}

// CSRAddr returns the 12-bit CSR number carried in the I-immediate field
// of a SYSTEM instruction.
func (i Instruction) CSRAddr() uint32 {
	return i.Word >> 20
}

// CSRUimm returns the 5-bit zero-extended immediate used by the
// register-immediate CSR variants (RWI/RSI/RCI), taken from the rs1 field.
func (i Instruction) CSRUimm() uint32 {
	return i.Rs1()
}

func signExtend(raw uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(raw<<shift) >> shift
}

// Decode classifies an instruction word into a Kind. Unrecognized
// encodings yield KindInvalid rather than panicking, so the caller can
// apply the "log and continue" policy (spec.md §7).
func Decode(word uint32) (Kind, Instruction) {
	ins := Instruction{Word: word}
	switch ins.Op() {
	case OpLUI:
		return KindLUI, ins
	case OpAUIPC:
		return KindAUIPC, ins
	case OpJAL:
		return KindJAL, ins
	case OpJALR:
		if ins.Funct3() == 0 {
			return KindJALR, ins
		}
	case OpBRANCH:
		if ins.Funct3() <= 0b111 && ins.Funct3() != 0b010 && ins.Funct3() != 0b011 {
			return KindBranch, ins
		}
	case OpLOAD:
		switch ins.Funct3() {
		case 0b000, 0b001, 0b010, 0b100, 0b101: // LB, LH, LW, LBU, LHU
			return KindLoad, ins
		}
	case OpSTORE:
		if ins.Funct3() <= 0b010 {
			return KindStore, ins
		}
	case OpOP_IMM:
		f3, f7 := ins.Funct3(), ins.Funct7()
		// SLLI needs funct7=0; SRLI/SRAI need funct7=0 or 0100000.
		if (f3 != 0b001 && f3 != 0b101) || f7 == 0 || (f3 == 0b101 && f7 == 0b0100000) {
			return KindOpImm, ins
		}
	case OpOP:
		f3, f7 := ins.Funct3(), ins.Funct7()
		if f7 == 0 || (f7 == 0b0100000 && (f3 == 0b000 || f3 == 0b101)) { // SUB, SRA
			return KindOp, ins
		}
	case OpMISCMEM:
		return KindMiscMem, ins
	case OpSYSTEM:
		switch ins.Funct3() {
		case 0b000:
			switch ins.ImmI() {
			case 0:
				return KindECALL, ins
			case 1:
				return KindEBREAK, ins
			}
		case 0b001, 0b010, 0b011, 0b101, 0b110, 0b111:
			return KindCSR, ins
		}
	}
	return KindInvalid, ins
}
