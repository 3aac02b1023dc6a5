// Package bus implements the word-addressed, byte-granular, ack-handshake
// bus fabric described in spec.md §4.1: a Transaction carries the
// controller's outputs, a Slave answers with a data/ack pair, and a
// Decoder routes a transaction to one of several child slaves based on
// the high bits of the address.
package bus

import "github.com/rvsim/core/rverr"

// Transaction carries the controller (master)-side signals of one bus
// cycle: adr, dat_w, sel, cyc, stb, we (spec.md §3).
type Transaction struct {
	Adr  uint32  // word address
	DatW uint32  // write data
	Sel  [4]bool // byte-lane select, one per byte of DatW/the result
	Cyc  bool    // transaction in progress
	Stb  bool    // address valid this cycle
	We   bool    // write enable
}

// Slave is the peripheral side of the bus: given a transaction, it
// returns read data and an ack. A slave must not assert ack unless the
// transaction asserts both Cyc and Stb (spec.md §4.1).
type Slave interface {
	Tick(tx Transaction) (datR uint32, ack bool)
}

// CycleSlave is optionally implemented by a Slave that needs the
// current tick count (e.g. for timing-sensitive peripherals or
// cycle-counter CSR providers), mirroring the teacher's CycleBus
// optional-interface pattern.
type CycleSlave interface {
	Slave
	TickAt(cycle uint64, tx Transaction) (datR uint32, ack bool)
}

// SelMask packs a 4-bool lane selector into the 4-bit mask used by
// store byte-lane placement (spec.md §4.5).
func SelMask(sel [4]bool) uint8 {
	var m uint8
	for i, s := range sel {
		if s {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Window describes one child of a Decoder: a base address, a
// power-of-two size (both in word units), and the slave it routes to.
type Window struct {
	Base uint32
	Size uint32
	Name string
	Slave Slave
}

// Decoder is the hierarchical combinational router from spec.md §4.1/§9:
// it dispatches a transaction to the window whose [Base, Base+Size)
// range contains the address, or synthesizes an immediate ack with
// undefined data if no window claims the address.
type Decoder struct {
	windows []Window
}

// NewDecoder builds a Decoder from a set of windows, sorted by base
// address (spec.md §3: "traversal order is by ascending base"). It is a
// construction-time error for any two windows to overlap.
func NewDecoder(windows []Window) (*Decoder, error) {
	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Base < sorted[i].Base {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	for i := 1; i < len(sorted); i++ {
		prevEnd := sorted[i-1].Base + sorted[i-1].Size
		if sorted[i].Base < prevEnd {
			return nil, rverr.New("bus.Decoder", "overlapping memory windows: "+sorted[i-1].Name+" and "+sorted[i].Name)
		}
	}
	return &Decoder{windows: sorted}, nil
}

// Tick routes tx to the containing window and returns its response. If
// no window claims the address, an immediate ack is returned with
// DatR=0 (spec.md §4.1: "the controller must tolerate this rather than
// hang").
func (d *Decoder) Tick(tx Transaction) (uint32, bool) {
	for _, w := range d.windows {
		if tx.Adr >= w.Base && tx.Adr < w.Base+w.Size {
			local := tx
			local.Adr = tx.Adr - w.Base
			return w.Slave.Tick(local)
		}
	}
	if tx.Cyc && tx.Stb {
		return 0, true
	}
	return 0, false
}

// TickAt behaves like Tick but passes the current cycle count to slaves
// that implement CycleSlave, letting timing-sensitive peripherals (or
// counter CSR providers) observe elapsed cycles.
func (d *Decoder) TickAt(cycle uint64, tx Transaction) (uint32, bool) {
	for _, w := range d.windows {
		if tx.Adr >= w.Base && tx.Adr < w.Base+w.Size {
			local := tx
			local.Adr = tx.Adr - w.Base
			if cs, ok := w.Slave.(CycleSlave); ok {
				return cs.TickAt(cycle, local)
			}
			return w.Slave.Tick(local)
		}
	}
	if tx.Cyc && tx.Stb {
		return 0, true
	}
	return 0, false
}
