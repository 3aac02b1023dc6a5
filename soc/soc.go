// Package soc assembles the default System-on-Chip memory map from
// spec.md §6: ROM, RAM, and a memory-mapped I/O region, wired through a
// bus.Decoder into a cpu.CPU with the Zicntr counters registered on a
// csr.Bus.
package soc

import (
	"github.com/rvsim/core/bus"
	"github.com/rvsim/core/cpu"
	"github.com/rvsim/core/csr"
	"github.com/rvsim/core/memory"
	"github.com/rvsim/core/peripheral"
	"github.com/rvsim/core/rverr"
)

// Default memory map base addresses, in word units (spec.md §6).
// Carried over verbatim from original_source/risky/soc.py's constants.
const (
	DefaultROMBase = 0x00000000 >> 2
	DefaultRAMBase = 0x10000000 >> 2
	DefaultIOBase  = 0x20000000 >> 2

	DefaultROMWords = 64 * 1024 / 4 // 64 KiB (power of two, per spec.md §6)
	DefaultRAMWords = 8 * 1024 / 4  // 8 KiB
)

// PeripheralSpec describes one memory-mapped register-block peripheral
// to wire into the I/O region at the given word offset from DefaultIOBase.
type PeripheralSpec struct {
	Name    string
	Offset  uint32
	Block   *peripheral.RegisterBlock
	Size    uint32 // window size in words
}

// Config configures SoC construction.
type Config struct {
	ROMImage    []byte
	ROMWords    uint32 // 0 selects DefaultROMWords
	RAMWords    uint32 // 0 selects DefaultRAMWords
	Peripherals []PeripheralSpec
}

// DefaultConfig returns a Config using the default memory map sizes
// from spec.md §6, with the given ROM image and no peripherals.
func DefaultConfig(romImage []byte) Config {
	return Config{ROMImage: romImage, ROMWords: DefaultROMWords, RAMWords: DefaultRAMWords}
}

// SoC is the assembled machine: ROM + RAM + peripherals behind a
// bus.Decoder, a CPU core, and the Zicntr counters.
type SoC struct {
	CPU      *cpu.CPU
	RAM      *memory.RAM
	ROM      *memory.ROM
	CSRBus   *csr.Bus
	Counters *csr.Counters
}

// New builds the SoC described by cfg, performing all construction-time
// validation (ROM image size, window overlap, duplicate CSR providers)
// before any tick (spec.md §7: "Construction errors ... raised at SoC
// construction, before any tick").
func New(cfg Config) (*SoC, error) {
	romWords := cfg.ROMWords
	if romWords == 0 {
		romWords = DefaultROMWords
	}
	ramWords := cfg.RAMWords
	if ramWords == 0 {
		ramWords = DefaultRAMWords
	}

	rom, err := memory.NewROM(romWords)
	if err != nil {
		return nil, rverr.Wrap("soc.New", "constructing ROM", err)
	}
	if len(cfg.ROMImage) > 0 {
		if err := rom.Load(cfg.ROMImage); err != nil {
			return nil, rverr.Wrap("soc.New", "loading ROM image", err)
		}
	}

	ram, err := memory.NewRAM(ramWords)
	if err != nil {
		return nil, rverr.Wrap("soc.New", "constructing RAM", err)
	}

	windows := []bus.Window{
		{Base: DefaultROMBase, Size: romWords, Name: "rom", Slave: rom},
		{Base: DefaultRAMBase, Size: ramWords, Name: "ram", Slave: ram},
	}
	for _, p := range cfg.Peripherals {
		windows = append(windows, bus.Window{
			Base:  DefaultIOBase + p.Offset,
			Size:  p.Size,
			Name:  p.Name,
			Slave: p.Block,
		})
	}

	decoder, err := bus.NewDecoder(windows)
	if err != nil {
		return nil, rverr.Wrap("soc.New", "constructing bus decoder", err)
	}

	csrBus := csr.NewBus()
	counters := csr.NewCounters()
	if err := counters.RegisterOn(csrBus); err != nil {
		return nil, rverr.Wrap("soc.New", "registering Zicntr providers", err)
	}

	c := cpu.New(decoder, csrBus, counters)

	return &SoC{CPU: c, RAM: ram, ROM: rom, CSRBus: csrBus, Counters: counters}, nil
}

// Run ticks the CPU until it halts or maxTicks is reached.
func (s *SoC) Run(maxTicks int) (ticks int, halted bool) {
	return s.CPU.Run(maxTicks)
}
