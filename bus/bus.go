// Package bus drives a parallel EEPROM: single read and write transactions
// over a latched, multiplexed address path, a paged write adapter, and the
// chip's software command sequences.
package bus

import (
    log "github.com/sirupsen/logrus"

    "github.com/bartgrantham/eeprog/port"
)

// Bus performs one transaction at a time; nothing here is safe for
// concurrent use and nothing needs to be.
type Bus struct {
    Address      port.Signal  // latched, shares pins with Data
    Data         port.Signal
    ReadEnable   port.Line
    WriteEnable  port.Line
    Timer        Timer
    Config       Config
}

func New(address, data port.Signal, re, we port.Line, t Timer, cfg Config) *Bus {
    if t == nil {
        t = HostTimer{}
    }
    return &Bus{
        Address:     address,
        Data:        data,
        ReadEnable:  re,
        WriteEnable: we,
        Timer:       t,
        Config:      cfg,
    }
}

// ConfigWrite makes every line an output; the host drives data during writes.
func (b *Bus) ConfigWrite() {
    b.Address.ConfigOutput()
    b.Data.ConfigOutput()
    b.ReadEnable.ConfigOutput()
    b.WriteEnable.ConfigOutput()
}

// WriteBus expects ConfigWrite.  The address is stable before the strobe and
// the strobe brackets the data.
func (b *Bus) WriteBus(addr uint16, data uint8) {
    log.Tracef("bus write $%.4X = 0x%.2X", addr, data)
    b.Address.Write(addr)
    b.WriteEnable.Enable()
    b.Data.Write(uint16(data))
    b.WriteEnable.Disable()
}

// ConfigRead releases the data path so the memory can drive it.
func (b *Bus) ConfigRead() {
    b.Address.ConfigOutput()
    b.Data.ConfigInput()
    b.ReadEnable.ConfigOutput()
    b.WriteEnable.ConfigOutput()
}

// ReadBus expects ConfigRead.  The data path is borrowed as an output to
// latch the address, then released before read enable.
func (b *Bus) ReadBus(addr uint16) uint8 {
    b.Data.ConfigOutput()
    b.Address.Write(addr)
    b.Data.ConfigInput()
    b.ReadEnable.Enable()
    b.Timer.Spin(b.Config.ReadDelay)
    data := uint8(b.Data.Read())
    b.ReadEnable.Disable()
    log.Tracef("bus read $%.4X = 0x%.2X", addr, data)
    return data
}

// R8 is an unbuffered read for callers that only know mem.Storage.
func (b *Bus) R8(addr uint16) uint8 {
    b.ConfigRead()
    return b.ReadBus(addr)
}

// W8 writes one byte and waits out a full write cycle.
func (b *Bus) W8(addr uint16, val uint8) {
    b.ConfigWrite()
    b.WriteBus(addr, val)
    b.Timer.Sleep(b.Config.WriteCycle)
}

// Flush is a no-op: W8 never returns before the write cycle ends.
func (b *Bus) Flush() {}
