// Package gpio presents up to eight host GPIO pins as one pia.Port.
package gpio

import (
    "fmt"

    log "github.com/sirupsen/logrus"
    "periph.io/x/conn/v3/gpio"
    "periph.io/x/conn/v3/gpio/gpioreg"
)

// Port maps bit n to Pins[n].  Nil entries are unconnected bits: they read
// as zero and ignore writes.
type Port struct {
    Pins  [8]gpio.PinIO
    ddr   uint8
    or    uint8
}

// Open looks up pins by name, bit 0 first.  An empty name leaves the bit
// unconnected.
func Open(names ...string) (*Port, error) {
    if len(names) > 8 {
        return nil, fmt.Errorf("port has 8 bits, got %d pins", len(names))
    }
    p := &Port{}
    for i, name := range names {
        if name == "" {
            continue
        }
        pin := gpioreg.ByName(name)
        if pin == nil {
            return nil, fmt.Errorf("unknown gpio pin %q", name)
        }
        p.Pins[i] = pin
        log.Debugf("gpio: bit %d on %s", i, pin.Name())
    }
    return p, nil
}

func (p *Port) Direction(mask, dir uint8) {
    for i, pin := range p.Pins {
        bit := uint8(1) << uint(i)
        if pin == nil || mask & bit == 0 {
            continue
        }
        var err error
        if dir & bit != 0 {
            p.ddr |= bit
            err = pin.Out(gpio.Level(p.or & bit != 0))
        } else {
            p.ddr &^= bit
            err = pin.In(gpio.PullNoChange, gpio.NoEdge)
        }
        if err != nil {
            log.WithError(err).Errorf("gpio %s: set direction", pin.Name())
        }
    }
}

func (p *Port) Out(mask, val uint8) {
    p.or = (p.or &^ mask) | (val & mask)
    for i, pin := range p.Pins {
        bit := uint8(1) << uint(i)
        if pin == nil || mask & p.ddr & bit == 0 {
            continue
        }
        if err := pin.Out(gpio.Level(val & bit != 0)); err != nil {
            log.WithError(err).Errorf("gpio %s: write", pin.Name())
        }
    }
}

func (p *Port) In() uint8 {
    var v uint8
    for i, pin := range p.Pins {
        bit := uint8(1) << uint(i)
        switch {
            case pin == nil:
            case p.ddr & bit != 0:
                v |= p.or & bit
            case pin.Read() == gpio.High:
                v |= bit
        }
    }
    return v
}
