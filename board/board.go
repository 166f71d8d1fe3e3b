// Package board wires ports, latches and control lines into a bus, either on
// real GPIO pins or on a simulated board.
package board

import (
    "fmt"

    "periph.io/x/host/v3"

    "github.com/bartgrantham/eeprog/bus"
    "github.com/bartgrantham/eeprog/pia"
    "github.com/bartgrantham/eeprog/port"
    "github.com/bartgrantham/eeprog/port/gpio"
)

// Layout names the host pins.  The eight data pins go to the EEPROM data
// lines and to the inputs of both address latches (74HC573 or similar, latch
// enable active high).  Read and write enable go to the EEPROM's /OE and /WE.
type Layout struct {
    Data         [8]string  // D0 first
    MSBLatch     string
    LSBLatch     string
    ReadEnable   string
    WriteEnable  string
}

// DefaultLayout uses Raspberry Pi BCM pin names.
var DefaultLayout = Layout{
    Data:        [8]string{"GPIO4", "GPIO5", "GPIO6", "GPIO12", "GPIO13", "GPIO16", "GPIO17", "GPIO22"},
    MSBLatch:    "GPIO23",
    LSBLatch:    "GPIO24",
    ReadEnable:  "GPIO25",
    WriteEnable: "GPIO27",
}

// Open initializes the host GPIO drivers and returns a bus on the pins named
// by l.
func Open(l Layout, cfg bus.Config) (*bus.Bus, error) {
    if _, err := host.Init(); err != nil {
        return nil, fmt.Errorf("gpio init: %w", err)
    }
    dp, err := gpio.Open(l.Data[:]...)
    if err != nil {
        return nil, err
    }
    cp, err := gpio.Open(l.MSBLatch, l.LSBLatch, l.ReadEnable, l.WriteEnable)
    if err != nil {
        return nil, err
    }
    return Wire(dp, cp, cfg, bus.HostTimer{}), nil
}

// Wire builds a bus from a full 8-bit data port and a control port carrying
// MSB latch, LSB latch, read enable and write enable on bits 0-3.
func Wire(data, control pia.Port, cfg bus.Config, t bus.Timer) *bus.Bus {
    d := port.Mask{Port:data, Bits:0xFF}
    msb := port.NewLatch(d, port.ActiveHigh(port.Bit(control, 0)))
    lsb := port.NewLatch(d, port.ActiveHigh(port.Bit(control, 1)))
    return bus.New(
        port.Word{MSB:msb, LSB:lsb},
        d,
        port.ActiveLow(port.Bit(control, 2)),
        port.ActiveLow(port.Bit(control, 3)),
        t,
        cfg,
    )
}
