// Package memory implements the ROM and RAM primitives from spec.md
// §4.2/§4.3: word-indexed arrays with single-cycle read latency and
// byte-lane write masking for RAM, and write-discarding semantics for
// ROM.
package memory

import (
	"github.com/rvsim/core/bus"
	"github.com/rvsim/core/rverr"
)

// RAM is a word-addressed memory backed by a word array, supporting
// byte-lane masked writes (spec.md §4.2).
type RAM struct {
	words []uint32

	// rmw models the two-cycle read-modify-write state machine from
	// spec.md §4.2 for callers that exercise TickRMW: rmwPending holds
	// the transaction whose write is still outstanding.
	rmwPending  *bus.Transaction
	rmwReadWord uint32
}

// NewRAM allocates a RAM of the given size in words. Size must be a
// power of two, per spec.md §3 ("size, a power of two"); words initialize
// to zero.
func NewRAM(sizeWords uint32) (*RAM, error) {
	if sizeWords == 0 || sizeWords&(sizeWords-1) != 0 {
		return nil, rverr.New("memory.RAM", "size must be a nonzero power of two")
	}
	return &RAM{words: make([]uint32, sizeWords)}, nil
}

// Tick implements bus.Slave with single-cycle latency: a read returns
// the stored word with ack in the same cycle; a write applies the
// byte-lane mask and acks immediately. This is the "fast path" variant;
// TickRMW models the literal two-cycle read-modify-write machine spec.md
// §4.2 describes for dual-port storage without native byte enables.
func (r *RAM) Tick(tx bus.Transaction) (uint32, bool) {
	if !tx.Cyc || !tx.Stb {
		return 0, false
	}
	idx := tx.Adr % uint32(len(r.words))
	if !tx.We {
		return r.words[idx], true
	}
	r.words[idx] = mergeBytes(r.words[idx], tx.DatW, tx.Sel)
	return 0, true
}

// TickRMW drives the two-phase read-modify-write sequence: the first
// call for a given write transaction issues the read and holds ack
// (matching spec.md §4.2's "Ack is held during both cycles"); the
// following call commits (read_data &^ mask) | (dat_w & mask) and
// returns the final ack.
func (r *RAM) TickRMW(tx bus.Transaction) (uint32, bool) {
	if !tx.Cyc || !tx.Stb {
		r.rmwPending = nil
		return 0, false
	}
	if !tx.We {
		idx := tx.Adr % uint32(len(r.words))
		return r.words[idx], true
	}
	if r.rmwPending == nil {
		idx := tx.Adr % uint32(len(r.words))
		r.rmwReadWord = r.words[idx]
		saved := tx
		r.rmwPending = &saved
		return r.rmwReadWord, true
	}
	idx := r.rmwPending.Adr % uint32(len(r.words))
	r.words[idx] = mergeBytes(r.rmwReadWord, r.rmwPending.DatW, r.rmwPending.Sel)
	r.rmwPending = nil
	return 0, true
}

// ReadByte and WriteByte give byte-addressed access to the underlying
// word array for host code and tests (supplemented from
// original_source/risky/memory.py's byte-addressed RAM view). ROM.Load
// and the CPU's load/store path do their own byte-lane arithmetic.
func (r *RAM) ReadByte(byteAddr uint32) uint8 {
	idx := (byteAddr / 4) % uint32(len(r.words))
	shift := (byteAddr % 4) * 8
	return uint8(r.words[idx] >> shift)
}

func (r *RAM) WriteByte(byteAddr uint32, val uint8) {
	idx := (byteAddr / 4) % uint32(len(r.words))
	shift := (byteAddr % 4) * 8
	mask := uint32(0xFF) << shift
	r.words[idx] = (r.words[idx] &^ mask) | (uint32(val) << shift)
}

// Size returns the RAM size in words.
func (r *RAM) Size() uint32 { return uint32(len(r.words)) }

func mergeBytes(old, newData uint32, sel [4]bool) uint32 {
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

// ROM behaves like RAM except writes silently succeed with no storage
// effect (spec.md §4.3). Contents are set once via Load at construction.
type ROM struct {
	words []uint32
}

// NewROM allocates a ROM of the given size in words, initially zeroed.
func NewROM(sizeWords uint32) (*ROM, error) {
	if sizeWords == 0 || sizeWords&(sizeWords-1) != 0 {
		return nil, rverr.New("memory.ROM", "size must be a nonzero power of two")
	}
	return &ROM{words: make([]uint32, sizeWords)}, nil
}

// Load initializes ROM contents from a flat byte image, little-endian
// word packing, starting at word 0 (spec.md §6). It is a construction
// error for the image to overflow the ROM's configured size.
func (r *ROM) Load(image []byte) error {
	needWords := (len(image) + 3) / 4
	if uint32(needWords) > uint32(len(r.words)) {
		return rverr.New("memory.ROM", "image exceeds configured ROM size")
	}
	for i := 0; i < len(image); i += 4 {
		var w uint32
		for b := 0; b < 4 && i+b < len(image); b++ {
			w |= uint32(image[i+b]) << (uint(b) * 8)
		}
		r.words[i/4] = w
	}
	return nil
}

// Tick implements bus.Slave: reads return the stored word, writes ack
// but are discarded.
func (r *ROM) Tick(tx bus.Transaction) (uint32, bool) {
	if !tx.Cyc || !tx.Stb {
		return 0, false
	}
	idx := tx.Adr % uint32(len(r.words))
	if tx.We {
		return 0, true
	}
	return r.words[idx], true
}

// Size returns the ROM size in words.
func (r *ROM) Size() uint32 { return uint32(len(r.words)) }
