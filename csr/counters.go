package csr

// Zicntr CSR addresses (spec.md §4.8).
const (
	AddrCycle    uint32 = 0xC00
	AddrTime     uint32 = 0xC01
	AddrInstret  uint32 = 0xC02
	AddrCycleH   uint32 = 0xC80
	AddrTimeH    uint32 = 0xC81
	AddrInstretH uint32 = 0xC82
)

// Counters implements the Zicntr extension: free-running cycle and
// instret counters, each a 64-bit value split across a low/high CSR
// pair. time aliases cycle, a permitted implementation choice
// (spec.md §3/§4.8).
type Counters struct {
	cycle   uint64
	instret uint64
}

// NewCounters creates a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

// Tick increments cycle by 1. Called once per clock edge regardless of
// whether an instruction retires.
func (c *Counters) Tick() {
	c.cycle++
}

// RetireInstruction increments instret by 1. Called once per completed
// FETCH-ack (spec.md §3: "instret increments on each successful
// instruction-fetch ack").
func (c *Counters) RetireInstruction() {
	c.instret++
}

// Cycle returns the current cycle count.
func (c *Counters) Cycle() uint64 { return c.cycle }

// Instret returns the current instret count.
func (c *Counters) Instret() uint64 { return c.instret }

// Reset zeroes both counters.
func (c *Counters) Reset() {
	c.cycle = 0
	c.instret = 0
}

// RegisterOn registers all six Zicntr CSR addresses onto bus as
// read-only providers backed by c.
func (c *Counters) RegisterOn(bus *Bus) error {
	providers := []struct {
		addr uint32
		p    Provider
	}{
		{AddrCycle, counterProvider{c, cycleLow}},
		{AddrTime, counterProvider{c, cycleLow}}, // time aliases cycle
		{AddrInstret, counterProvider{c, instretLow}},
		{AddrCycleH, counterProvider{c, cycleHigh}},
		{AddrTimeH, counterProvider{c, cycleHigh}},
		{AddrInstretH, counterProvider{c, instretHigh}},
	}
	for _, reg := range providers {
		if err := bus.RegisterProvider(reg.addr, reg.p); err != nil {
			return err
		}
	}
	return nil
}

type counterField int

const (
	cycleLow counterField = iota
	cycleHigh
	instretLow
	instretHigh
)

// counterProvider is a read-only Provider over one 32-bit half of one
// counter. It implements ReadOnlyProvider so Bus.Write reports writes
// as rejected instead of silently discarding them: Zicntr counters are
// read-only (spec.md §4.8: "Reads only").
type counterProvider struct {
	c     *Counters
	field counterField
}

func (p counterProvider) ReadOnly() bool { return true }

func (p counterProvider) ReadCSR(uint32) uint32 {
	switch p.field {
	case cycleLow:
		return uint32(p.c.cycle)
	case cycleHigh:
		return uint32(p.c.cycle >> 32)
	case instretLow:
		return uint32(p.c.instret)
	case instretHigh:
		return uint32(p.c.instret >> 32)
	}
	return 0
}

func (p counterProvider) WriteCSR(uint32, uint32) {}
