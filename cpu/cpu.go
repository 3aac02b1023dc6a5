// Package cpu implements the RV32I CPU core: a two-state FETCH/EXECUTE
// machine (spec.md §3/§4.6) orchestrating decode, register read, ALU
// use, memory access, writeback, and PC update.
package cpu

import (
	"log"

	"github.com/rvsim/core/bus"
	"github.com/rvsim/core/csr"
	"github.com/rvsim/core/decode"
	"github.com/rvsim/core/regfile"
)

// state is the CPU's two-state machine (spec.md §3: "Initial state:
// FETCH").
type state int

const (
	stateFetch state = iota
	stateExecute
)

// CPU is the RV32I processor core, driving a bus.Slave as its root
// memory-mapped address space and a csr.Bus for Zicsr/Zicntr access.
// Generalizes the teacher's CPU struct (reg Registers; bus Bus;
// cycleBus CycleBus; cycles uint64; stopped, halted bool) with an
// explicit FETCH/EXECUTE state field, since RV32I load/store bus-stall
// behavior needs one where the teacher's single always-dispatch Step
// body did not.
type CPU struct {
	regs regfile.File
	pc   uint32

	root      bus.Slave
	rootCycle bus.CycleSlave // non-nil when root implements bus.CycleSlave

	csrBus   *csr.Bus
	counters *csr.Counters

	state state
	ir    uint32 // latched instruction word
	kind  decode.Kind
	ins   decode.Instruction

	rs1val uint32
	rs2val uint32

	halted bool
	cycles uint64
	prevPC uint32 // PC of the instruction currently in EXECUTE, for diagnostics
}

// New creates a CPU wired to root (the top of the bus/decoder tree) and
// csrBus/counters for CSR access, and performs a reset.
func New(root bus.Slave, csrBus *csr.Bus, counters *csr.Counters) *CPU {
	c := &CPU{root: root, csrBus: csrBus, counters: counters}
	c.rootCycle, _ = root.(bus.CycleSlave)
	c.Reset()
	return c
}

// Reset performs a power-on reset: PC=0, all registers=0, bus idle
// (spec.md §6).
func (c *CPU) Reset() {
	c.regs.Reset()
	c.pc = 0
	c.state = stateFetch
	c.halted = false
	c.cycles = 0
	if c.counters != nil {
		c.counters.Reset()
	}
}

// Halted reports whether EBREAK has stopped forward progress.
func (c *CPU) Halted() bool { return c.halted }

// PC returns the current program counter.
func (c *CPU) PC() uint32 { return c.pc }

// Registers returns a snapshot of the register file.
func (c *CPU) Registers() [32]uint32 { return c.regs.Snapshot() }

// Cycles returns the total clock ticks since the last reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Tick advances the machine by exactly one clock edge: combinational
// outputs are computed from current state, then the next state is
// committed (spec.md §5). A halted CPU (post-EBREAK) consumes no
// further cycles and Tick is a no-op.
func (c *CPU) Tick() {
	if c.halted {
		return
	}
	c.cycles++
	if c.counters != nil {
		c.counters.Tick()
	}

	switch c.state {
	case stateFetch:
		c.tickFetch()
	case stateExecute:
		c.tickExecute()
	}
}

// Run ticks the machine until it halts or maxTicks is reached, returning
// the number of ticks actually consumed and whether it halted.
func (c *CPU) Run(maxTicks int) (ticks int, halted bool) {
	for i := 0; i < maxTicks; i++ {
		if c.halted {
			return i, true
		}
		c.Tick()
	}
	return maxTicks, c.halted
}

// tickFetch drives the bus to fetch the instruction at PC. On ack, it
// latches the instruction word and its source register values, counts
// the retired instruction, and transitions to EXECUTE (spec.md §4.6).
func (c *CPU) tickFetch() {
	tx := bus.Transaction{
		Adr:  c.pc >> 2,
		Sel:  [4]bool{true, true, true, true},
		Cyc:  true,
		Stb:  true,
		We:   false,
	}
	datR, ack := c.busTick(tx)
	if !ack {
		return
	}

	c.ir = datR
	c.kind, c.ins = decode.Decode(c.ir)
	c.rs1val = c.regs.Read(c.ins.Rs1())
	c.rs2val = c.regs.Read(c.ins.Rs2())
	c.prevPC = c.pc

	if c.counters != nil {
		c.counters.RetireInstruction()
	}

	c.state = stateExecute
}

// tickExecute performs the decoded instruction's effect. Most
// instructions complete in a single tick and return to FETCH; loads and
// stores may remain in EXECUTE across several ticks while the bus
// stalls (spec.md §4.6).
func (c *CPU) tickExecute() {
	done := c.dispatch()
	if done {
		c.state = stateFetch
	}
}

// busTick drives a transaction through the root bus, using the cycle
// count when the root supports it (mirrors the teacher's cycleBus
// optional-interface check in readBus/writeBus).
func (c *CPU) busTick(tx bus.Transaction) (uint32, bool) {
	if c.rootCycle != nil {
		return c.rootCycle.TickAt(c.cycles, tx)
	}
	return c.root.Tick(tx)
}

// writeback commits val to register rd if rd is nonzero (spec.md §4.6:
// "if the executing instruction's semantics define an rd write and the
// target index is non-zero, the new value is committed").
func (c *CPU) writeback(rd uint32, val uint32) {
	c.regs.Write(rd, val)
}

// advancePC moves PC to pc+4, the default post-EXECUTE behavior.
func (c *CPU) advancePC() {
	c.pc += 4
}

// setPC jumps to an explicit target computed from pc+imm_j or pc+imm_b
// (JAL, taken branches). imm_j/imm_b always have bit 0 clear by
// encoding, so no masking is applied here (spec.md §4.4's immediate
// encodings scatter bit 0 as an always-zero field).
func (c *CPU) setPC(target uint32) {
	c.pc = target
}

// setPCMasked0 jumps to an explicit target with bit 0 cleared, the
// masking spec.md §4.5 calls for specifically on JALR's computed
// target (rs1+imm_i, which has no such guarantee): "pc <- (rs1 +
// imm_i) with bit 0 cleared".
func (c *CPU) setPCMasked0(target uint32) {
	c.pc = target &^ 0x1
}

// invalidInstruction logs the §7 diagnostic and advances PC by 4,
// continuing execution rather than halting.
func (c *CPU) invalidInstruction() bool {
	log.Printf("[rvsim] invalid instruction at pc=%08x encoding=%08x", c.prevPC, c.ir)
	c.advancePC()
	return true
}
