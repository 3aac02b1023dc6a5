package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImmIWellKnownEncoding(t *testing.T) {
	// ADDI x10, x0, -5 -> imm = 0xFFB (12-bit two's complement -5)
	word := uint32(0xFFB00513)
	ins := Instruction{Word: word}
	require.EqualValues(t, -5, ins.ImmI())
	require.EqualValues(t, 10, ins.Rd())
	require.EqualValues(t, 0, ins.Rs1())
}

func TestImmBNegativeBackEdge(t *testing.T) {
	// BNE x10, x0, -4 (branch back one instruction): funct3=001, imm=-4
	var word uint32
	word |= OpBRANCH
	word |= 0b001 << 12 // funct3 = BNE
	word |= 10 << 15    // rs1
	raw := uint32(int32(-4)) & 0x1FFF
	word |= ((raw >> 12) & 0x1) << 31
	word |= ((raw >> 11) & 0x1) << 7
	word |= ((raw >> 5) & 0x3F) << 25
	word |= ((raw >> 1) & 0xF) << 8
	ins := Instruction{Word: word}
	require.EqualValues(t, -4, ins.ImmB())
}

func TestDecodeRecognizesEveryOpcode(t *testing.T) {
	cases := []struct {
		word uint32
		want Kind
	}{
		{OpLUI, KindLUI},
		{OpAUIPC, KindAUIPC},
		{OpJAL, KindJAL},
		{OpJALR, KindJALR},
		{OpOP_IMM, KindOpImm},
		{OpOP, KindOp},
		{OpMISCMEM, KindMiscMem},
	}
	for _, c := range cases {
		kind, _ := Decode(c.word)
		require.Equal(t, c.want, kind)
	}
}

func TestDecodeECALLAndEBREAK(t *testing.T) {
	kind, _ := Decode(OpSYSTEM) // funct3=0 imm=0 -> ECALL
	require.Equal(t, KindECALL, kind)

	ebreak := OpSYSTEM | (1 << 20)
	kind, _ = Decode(ebreak)
	require.Equal(t, KindEBREAK, kind)
}

func TestDecodeCSRModes(t *testing.T) {
	for _, f3 := range []uint32{0b001, 0b010, 0b011, 0b101, 0b110, 0b111} {
		word := OpSYSTEM | (f3 << 12)
		kind, _ := Decode(word)
		require.Equal(t, KindCSR, kind)
	}
}

func TestDecodeInvalidBranchFunct3(t *testing.T) {
	word := OpBRANCH | (0b010 << 12)
	kind, _ := Decode(word)
	require.Equal(t, KindInvalid, kind)
}

func TestDecodeRecognizesAllFiveLoadWidths(t *testing.T) {
	for _, f3 := range []uint32{0b000, 0b001, 0b010, 0b100, 0b101} {
		word := OpLOAD | (f3 << 12)
		kind, _ := Decode(word)
		require.Equalf(t, KindLoad, kind, "funct3=%03b", f3)
	}
}

func TestDecodeInvalidLoadFunct3(t *testing.T) {
	word := OpLOAD | (0b011 << 12)
	kind, _ := Decode(word)
	require.Equal(t, KindInvalid, kind)
}
