package board

import (
    "time"

    "github.com/bartgrantham/eeprog/bus"
    "github.com/bartgrantham/eeprog/mem/at28c"
    "github.com/bartgrantham/eeprog/pia"
    "github.com/bartgrantham/eeprog/pia/m6821"
    "github.com/bartgrantham/eeprog/port"
)

// Side B of the simulated PIA: control lines on the high nibble, data D3-D0
// on the low nibble.  Side A carries D7-D4 on its high nibble.
const (
    dataA   uint8  = 0xF0
    dataB   uint8  = 0x0F
    weBit   uint8  = 1 << 4  // active low
    oeBit   uint8  = 1 << 5  // active low
    lsbBit  uint8  = 1 << 6  // active high
    msbBit  uint8  = 1 << 7  // active high
)

// Sim is a host PIA wired to two transparent address latches and a chip,
// running on a virtual clock.  It is also the bus Timer, so waits advance
// the clock instead of sleeping.
type Sim struct {
    PIA       *m6821.M6821
    Chip      *at28c.Chip
    Now       time.Duration

    msb, lsb  uint8
    data      uint8  // charge on the data bus; held when nothing drives it
    oe, we    bool
    oeAt      time.Duration
    samples   []time.Duration
    settling  bool
}

// NewSim returns a simulated board carrying a fresh chip, and the bus that
// drives it.
func NewSim(p at28c.Part, cfg bus.Config) (*Sim, *bus.Bus) {
    s := &Sim{PIA:&m6821.M6821{}, Chip:at28c.New(p)}
    s.PIA.OnChange = s.propagate
    s.propagate()

    a := &probe{s.PIA.Side(0), s}
    b := &probe{s.PIA.Side(1), s}
    data := port.BitExtend{port.Mask{Port:a, Bits:dataA}, port.Mask{Port:b, Bits:dataB}}
    msb := port.NewLatch(data, port.ActiveHigh(port.Mask{Port:b, Bits:msbBit}))
    lsb := port.NewLatch(data, port.ActiveHigh(port.Mask{Port:b, Bits:lsbBit}))
    bs := bus.New(
        port.Word{MSB:msb, LSB:lsb},
        data,
        port.ActiveLow(port.Mask{Port:b, Bits:oeBit}),
        port.ActiveLow(port.Mask{Port:b, Bits:weBit}),
        s,
        cfg,
    )
    return s, bs
}

func (s *Sim) Spin(d time.Duration) {
    s.Now += d
    s.propagate()
}

func (s *Sim) Sleep(d time.Duration) {
    s.Now += d
    s.propagate()
}

// Latched returns the address currently held by the two latches.
func (s *Sim) Latched() uint16 {
    return uint16(s.msb) << 8 | uint16(s.lsb)
}

// Samples returns, for every data port sample taken while read enable was
// asserted, the time since read enable was asserted.
func (s *Sim) Samples() []time.Duration {
    return s.samples
}

// pins is what a side presents to the board; inputs are pulled up.
func (s *Sim) pins(side uint16) uint8 {
    return s.PIA.Read(side) | ^s.PIA.Outputs(side)
}

func (s *Sim) propagate() {
    if s.settling {
        return
    }
    s.settling = true
    defer func() { s.settling = false }()

    ctrl := s.pins(1)
    driven := (s.PIA.DDRA & dataA) | (s.PIA.DDRB & dataB)
    host := (s.pins(0) & dataA) | (ctrl & dataB)
    s.data = (s.data &^ driven) | (host & driven)

    oe, we := ctrl & oeBit == 0, ctrl & weBit == 0
    if oe && !s.oe {
        s.oeAt = s.Now
    }
    s.oe = oe

    if ctrl & msbBit != 0 {
        s.msb = s.data
    }
    if ctrl & lsbBit != 0 {
        s.lsb = s.data
    }
    addr := s.Latched()

    s.Chip.Tick(s.Now)
    if oe && !we {
        if v, ok := s.Chip.Output(addr, s.oeAt, s.Now); ok {
            s.data = (s.data & driven) | (v &^ driven)
        }
    }
    if s.we && !we {
        s.Chip.Write(addr, s.data, s.Now)
    }
    s.we = we

    s.PIA.Write(0, s.data & dataA)
    s.PIA.Write(1, s.data & dataB)
}

// probe records when the host samples a port.
type probe struct {
    pia.Port
    s  *Sim
}

func (p *probe) In() uint8 {
    if p.s.oe {
        p.s.samples = append(p.s.samples, p.s.Now - p.s.oeAt)
    }
    return p.Port.In()
}
