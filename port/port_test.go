package port

import (
    "fmt"
    "reflect"
    "testing"
)

// fakePort is a bare DDR/OR/IN register set.
type fakePort struct {
    ddr, or, in  uint8
}

func (f *fakePort) Direction(mask, dir uint8) { f.ddr = (f.ddr &^ mask) | (dir & mask) }
func (f *fakePort) Out(mask, val uint8)       { f.or = (f.or &^ mask) | (val & mask) }
func (f *fakePort) In() uint8                 { return (f.or & f.ddr) | (f.in &^ f.ddr) }

func (f *fakePort) level(bits uint8) bool {
    return f.or & bits != 0
}

// recorder is a Signal that logs every write into a shared log.
type recorder struct {
    name  string
    log   *[]string
    v     uint16
}

func (r *recorder) Read() uint16   { return r.v }
func (r *recorder) Write(v uint16) { r.v = v; *r.log = append(*r.log, fmt.Sprintf("%s=%X", r.name, v)) }
func (r *recorder) ConfigInput()   { *r.log = append(*r.log, r.name+" in") }
func (r *recorder) ConfigOutput()  { *r.log = append(*r.log, r.name+" out") }

func TestMaskInPlace(t *testing.T) {
    p := &fakePort{in:0x5C}
    m := Mask{Port:p, Bits:0xF0}
    m.Write(0xAB)
    if p.or != 0xA0 {
        t.Errorf("or=%02X, want A0", p.or)
    }
    if got := m.Read(); got != 0x50 {
        t.Errorf("read input %02X, want 50", got)
    }
    m.ConfigOutput()
    if p.ddr != 0xF0 {
        t.Errorf("ddr=%02X", p.ddr)
    }
    if got := m.Read(); got != 0xA0 {
        t.Errorf("read output %02X, want A0", got)
    }
    m.ConfigInput()
    if p.ddr != 0 {
        t.Errorf("ddr=%02X", p.ddr)
    }
    if b := Bit(p, 3); b.Bits != 0x08 {
        t.Errorf("Bit(3)=%02X", b.Bits)
    }
}

func TestBitExtend(t *testing.T) {
    a, b := &fakePort{}, &fakePort{}
    data := BitExtend{Mask{Port:a, Bits:0xF0}, Mask{Port:b, Bits:0x0F}}
    data.ConfigOutput()
    data.Write(0xA5)
    if a.or != 0xA0 || b.or != 0x05 {
        t.Fatalf("a.or=%02X b.or=%02X", a.or, b.or)
    }
    if got := data.Read(); got != 0xA5 {
        t.Errorf("read back %02X", got)
    }
    data.ConfigInput()
    a.in, b.in = 0x3F, 0xF7
    if got := data.Read(); got != 0x37 {
        t.Errorf("read %02X, want 37", got)
    }
}

func TestLinePolarity(t *testing.T) {
    tests := []struct {
        name    string
        line    func(Signal) Line
        active  bool
    }{
        {"active high", ActiveHigh, true},
        {"active low", ActiveLow, false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            p := &fakePort{}
            if !tt.active {
                p.or = 0  // would read as asserted if left alone
            } else {
                p.or = 0x04
            }
            l := tt.line(Bit(p, 2))
            l.ConfigOutput()
            if p.ddr != 0x04 {
                t.Fatalf("not an output: ddr=%02X", p.ddr)
            }
            if p.level(0x04) == tt.active {
                t.Errorf("ConfigOutput left line asserted")
            }
            l.Enable()
            if p.level(0x04) != tt.active {
                t.Errorf("Enable drove %v", p.level(0x04))
            }
            l.Disable()
            if p.level(0x04) == tt.active {
                t.Errorf("Disable drove %v", p.level(0x04))
            }
            if p.or &^ 0x04 != 0 {
                t.Errorf("touched other bits: %02X", p.or)
            }
        })
    }
}

// pulses watches an enable bit and records the data port each time the bit
// goes active.
type pulses struct {
    fakePort
    data  *fakePort
    seen  []uint8
}

func (p *pulses) Out(mask, val uint8) {
    before := p.or
    p.fakePort.Out(mask, val)
    if before == 0 && p.or != 0 {
        p.seen = append(p.seen, p.data.or)
    }
}

func TestLatchHoldsValue(t *testing.T) {
    data := &fakePort{}
    en := &pulses{data:data}
    l := NewLatch(Mask{Port:data, Bits:0xFF}, ActiveHigh(Bit(en, 0)))
    l.ConfigOutput()
    if data.ddr != 0xFF || en.ddr != 0x01 {
        t.Fatalf("ddr data=%02X en=%02X", data.ddr, en.ddr)
    }
    l.Write(0x12)
    data.Out(0xFF, 0x99)
    if got := l.Read(); got != 0x12 {
        t.Errorf("latched %02X, want 12", got)
    }
    if !reflect.DeepEqual(en.seen, []uint8{0x12}) {
        t.Errorf("pulses saw %X", en.seen)
    }
    if en.or != 0 {
        t.Errorf("enable left asserted")
    }
}

func TestWordOrder(t *testing.T) {
    var log []string
    w := Word{MSB:&recorder{name:"msb", log:&log}, LSB:&recorder{name:"lsb", log:&log}}
    w.ConfigOutput()
    w.Write(0xBEEF)
    want := []string{"msb out", "lsb out", "msb=BE", "lsb=EF"}
    if !reflect.DeepEqual(log, want) {
        t.Errorf("got %v, want %v", log, want)
    }
    if got := w.Read(); got != 0xBEEF {
        t.Errorf("read %04X", got)
    }
}

func TestAddressRoundTrip(t *testing.T) {
    data := &fakePort{}
    msbEn, lsbEn := &fakePort{}, &fakePort{}
    d := Mask{Port:data, Bits:0xFF}
    w := Word{
        MSB: NewLatch(d, ActiveHigh(Bit(msbEn, 0))),
        LSB: NewLatch(d, ActiveHigh(Bit(lsbEn, 0))),
    }
    w.ConfigOutput()
    for a := 0; a <= 0xFFFF; a++ {
        w.Write(uint16(a))
        if got := w.Read(); got != uint16(a) {
            t.Fatalf("wrote %04X, latched %04X", a, got)
        }
    }
}
