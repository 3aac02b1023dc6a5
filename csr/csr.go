// Package csr implements the CSR sub-bus from spec.md §3/§4.7/§4.8: an
// address + read-strobe/write-strobe protocol with multiple providers,
// at most one of which claims any given address.
package csr

import "github.com/rvsim/core/rverr"

// Provider is implemented by anything that owns one or more CSR
// addresses. ReadCSR/WriteCSR are only ever called when the access
// rules for the active instruction mode permit the corresponding side
// effect (spec.md §4.7: "read side-effects are suppressed by not
// asserting the read strobe when the rule above forbids a read").
type Provider interface {
	ReadCSR(addr uint32) uint32
	WriteCSR(addr uint32, val uint32)
}

// ReadOnlyProvider is an optional interface a Provider implements to
// mark its CSR addresses as rejecting writes. Bus.Write consults it so
// a write to a read-only CSR is reported to the caller instead of
// silently discarded (spec.md §7: "write attempted to a read-only CSR"
// follows the same log-and-continue policy as an invalid instruction).
type ReadOnlyProvider interface {
	Provider
	ReadOnly() bool
}

// Bus is the CSR sub-bus: a lookup from address to the single provider
// that claims it, built at construction (spec.md §9: "use a lookup
// built at construction" in place of the source's OR-mux pattern).
type Bus struct {
	providers map[uint32]Provider
}

// NewBus creates an empty CSR sub-bus.
func NewBus() *Bus {
	return &Bus{providers: make(map[uint32]Provider)}
}

// RegisterProvider claims a single CSR address for p. It is a
// construction-time error for two providers to claim the same address
// (spec.md §3: "at most one provider asserts valid for any given
// address").
func (b *Bus) RegisterProvider(addr uint32, p Provider) error {
	if _, exists := b.providers[addr]; exists {
		return rverr.New("csr.Bus", "duplicate CSR provider for address")
	}
	b.providers[addr] = p
	return nil
}

// RegisterRange claims every address in [base, base+count) for p, for
// providers that own a contiguous block of CSRs rather than a single
// address (supplemented from original_source/risky/csr.py's
// range-registering providers; unused by the base Zicntr providers but
// kept available for peripheral-facing CSR extensions).
func (b *Bus) RegisterRange(base, count uint32, p Provider) error {
	for a := base; a < base+count; a++ {
		if err := b.RegisterProvider(a, p); err != nil {
			return err
		}
	}
	return nil
}

// Read performs a CSR read, asserting the read strobe. ok is false if no
// provider claims addr (spec.md §4.7: "unknown CSR addresses cause the
// instruction to be reported as invalid").
func (b *Bus) Read(addr uint32) (val uint32, ok bool) {
	p, exists := b.providers[addr]
	if !exists {
		return 0, false
	}
	return p.ReadCSR(addr), true
}

// Write performs a CSR write, asserting the write strobe. It returns
// false if no provider claims addr, or if the claiming provider marks
// itself read-only via ReadOnlyProvider, in which case the write is not
// applied.
func (b *Bus) Write(addr uint32, val uint32) bool {
	p, exists := b.providers[addr]
	if !exists {
		return false
	}
	if ro, ok := p.(ReadOnlyProvider); ok && ro.ReadOnly() {
		return false
	}
	p.WriteCSR(addr, val)
	return true
}

// Exists reports whether any provider claims addr, without asserting
// either strobe.
func (b *Bus) Exists(addr uint32) bool {
	_, ok := b.providers[addr]
	return ok
}
