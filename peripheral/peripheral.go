// Package peripheral implements memory-mapped register-block
// peripherals exposed to the bus fabric (spec.md §6: "Each peripheral
// register block exposes a sequence of 32-bit registers"). The core
// does not constrain peripheral semantics beyond the bus protocol; this
// package models the declarative register-with-access-mode shape a
// GPIO-style block uses, without modelling GPIO pin behavior itself
// (spec.md §1 places GPIO semantics out of scope).
package peripheral

import (
	"log"

	"github.com/rvsim/core/bus"
)

// AccessMode constrains how software may touch a register.
type AccessMode int

const (
	ReadOnly AccessMode = iota
	WriteOnly
	ReadWrite
)

// RegisterSpec declares one register in a block: its name (for
// diagnostics), its word offset within the block, and its access mode.
type RegisterSpec struct {
	Name   string
	Offset uint32
	Access AccessMode
}

// RegisterBlock is a small fixed array of named 32-bit registers backing
// one memory-mapped window.
type RegisterBlock struct {
	specs []RegisterSpec
	byOff map[uint32]RegisterSpec
	vals  map[uint32]uint32
}

// NewRegisterBlock builds a register block from a declared spec slice,
// the way the teacher's opcodeTable is built from declared field ranges
// rather than one-off switch cases.
func NewRegisterBlock(specs []RegisterSpec) *RegisterBlock {
	rb := &RegisterBlock{
		specs: specs,
		byOff: make(map[uint32]RegisterSpec, len(specs)),
		vals:  make(map[uint32]uint32, len(specs)),
	}
	for _, s := range specs {
		rb.byOff[s.Offset] = s
		rb.vals[s.Offset] = 0
	}
	return rb
}

// Get returns the current value of the named register.
func (rb *RegisterBlock) Get(name string) uint32 {
	for _, s := range rb.specs {
		if s.Name == name {
			return rb.vals[s.Offset]
		}
	}
	return 0
}

// Set assigns the named register's value directly (for a host driving
// an input register, e.g. a simulated button press), bypassing the
// access-mode check a bus write would apply.
func (rb *RegisterBlock) Set(name string, val uint32) {
	for _, s := range rb.specs {
		if s.Name == name {
			rb.vals[s.Offset] = val
			return
		}
	}
}

// Tick implements bus.Slave. A write to a read-only register, or a read
// from a write-only one, is logged and otherwise ignored, per spec.md
// §7's "invalid access, log and continue" policy.
func (rb *RegisterBlock) Tick(tx bus.Transaction) (uint32, bool) {
	if !tx.Cyc || !tx.Stb {
		return 0, false
	}
	spec, ok := rb.byOff[tx.Adr]
	if !ok {
		return 0, true
	}
	if tx.We {
		if spec.Access == ReadOnly {
			log.Printf("[rvsim] invalid write to read-only register %q (offset %d)", spec.Name, spec.Offset)
			return 0, true
		}
		rb.vals[spec.Offset] = mergeSelected(rb.vals[spec.Offset], tx.DatW, tx.Sel)
		return 0, true
	}
	if spec.Access == WriteOnly {
		log.Printf("[rvsim] invalid read from write-only register %q (offset %d)", spec.Name, spec.Offset)
		return 0, true
	}
	return rb.vals[spec.Offset], true
}

func mergeSelected(old, newData uint32, sel [4]bool) uint32 {
	result := old
	for i, s := range sel {
		if !s {
			continue
		}
		shift := uint(i) * 8
		mask := uint32(0xFF) << shift
		result = (result &^ mask) | (newData & mask)
	}
	return result
}
