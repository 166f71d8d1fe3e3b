// Package port composes host port bits into the signals an EEPROM bus is
// built from: control lines with a fixed polarity, wide values spread over
// several port fragments, and latched address bytes.
package port

import (
    "github.com/bartgrantham/eeprog/pia"
)

// Signal is a wide-signal view.  Single port fragments, groups of fragments
// and latches all satisfy it, so bus code never sees the physical fan-out.
type Signal interface {
    Read() uint16
    Write(v uint16)
    ConfigInput()
    ConfigOutput()
}

// Mask is the set of bits of one port selected by Bits.  Values are read and
// written in place, not shifted down.
type Mask struct {
    Port  pia.Port
    Bits  uint8
}

func Bit(p pia.Port, n uint) Mask {
    return Mask{Port:p, Bits:1 << n}
}

func (m Mask) Read() uint16 {
    return uint16(m.Port.In() & m.Bits)
}

func (m Mask) Write(v uint16) {
    m.Port.Out(m.Bits, uint8(v))
}

func (m Mask) ConfigInput() {
    m.Port.Direction(m.Bits, 0x00)
}

func (m Mask) ConfigOutput() {
    m.Port.Direction(m.Bits, 0xFF)
}

// BitExtend joins disjoint in-place fragments into one value, e.g. the high
// nibble of one port and the low nibble of another as a single data byte.
type BitExtend []Signal

func (b BitExtend) Read() uint16 {
    var v uint16
    for _, s := range b {
        v |= s.Read()
    }
    return v
}

func (b BitExtend) Write(v uint16) {
    for _, s := range b {
        s.Write(v)
    }
}

func (b BitExtend) ConfigInput() {
    for _, s := range b {
        s.ConfigInput()
    }
}

func (b BitExtend) ConfigOutput() {
    for _, s := range b {
        s.ConfigOutput()
    }
}
