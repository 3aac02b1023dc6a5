package cpu

import "log"

// Zicsr access-mode funct3 encodings (spec.md §4.7).
const (
	csrRW  = 0b001
	csrRS  = 0b010
	csrRC  = 0b011
	csrRWI = 0b101
	csrRSI = 0b110
	csrRCI = 0b111
)

// execCSR implements the six-mode Zicsr access pattern from spec.md
// §4.7: each mode has its own read-permitted and write-permitted rule,
// and the value written (when permitted) is computed from the old CSR
// value and either rs1 or the 5-bit uimm field. An address claimed by
// no provider is reported as an invalid instruction (spec.md §4.7:
// "Unknown CSR addresses cause the instruction to be reported as
// invalid").
func (c *CPU) execCSR() bool {
	addr := c.ins.CSRAddr()
	rd := c.ins.Rd()
	mode := c.ins.Funct3()

	if !c.csrBus.Exists(addr) {
		return c.invalidInstruction()
	}

	var old uint32
	didRead := false
	read := func() uint32 {
		old, _ = c.csrBus.Read(addr)
		didRead = true
		return old
	}

	// write reports a rejected write (spec.md §7: a write attempted to a
	// read-only CSR is logged and execution continues, same policy as an
	// invalid instruction).
	write := func(val uint32) {
		if !c.csrBus.Write(addr, val) {
			log.Printf("[rvsim] write to read-only CSR at pc=%08x addr=%03x", c.prevPC, addr)
		}
	}

	switch mode {
	case csrRW:
		if rd != 0 {
			read()
		}
		write(c.rs1val)
	case csrRS:
		v := read()
		if c.ins.Rs1() != 0 {
			write(v | c.rs1val)
		}
	case csrRC:
		v := read()
		if c.ins.Rs1() != 0 {
			write(v &^ c.rs1val)
		}
	case csrRWI:
		if rd != 0 {
			read()
		}
		write(c.ins.CSRUimm())
	case csrRSI:
		v := read()
		uimm := c.ins.CSRUimm()
		if uimm != 0 {
			write(v | uimm)
		}
	case csrRCI:
		v := read()
		uimm := c.ins.CSRUimm()
		if uimm != 0 {
			write(v &^ uimm)
		}
	default:
		return c.invalidInstruction()
	}

	if didRead {
		c.writeback(rd, old)
	}

	c.advancePC()
	return true
}
