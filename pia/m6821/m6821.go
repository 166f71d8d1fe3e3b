package m6821

import (
    "fmt"

    "github.com/bartgrantham/eeprog/pia"
)

const (
    Cx1_0  uint8  = 1 << iota  // unused here, kept so CRx bit positions match the part
    Cx1_1
    DDRx                       // switch for register 0/2 access (DDR | OUTA+INA)
)

// M6821 models the port side of a 6821: output registers, direction
// registers and the levels presented by the outside world.  Handshake and
// interrupt lines are not modeled; nothing on an EEPROM programmer uses them.
type M6821 struct {
    ORA, ORB    uint8  // output registers
    CRA, CRB    uint8  // control registers (only DDRx is honored)
    DDRA, DDRB  uint8  // direction registers (each bit/pin can be set in/out separately)

    INA, INB    uint8  // from the outside world

    // OnChange is called after any write that can change what the chip drives
    // onto its pins.
    OnChange    func()
}

func (m *M6821) R8(addr uint16) uint8 {
    switch addr {
        case 0:
            if m.CRA & DDRx == 0 {
                return m.DDRA
            }
            return (m.ORA & m.DDRA) | (m.INA & ^m.DDRA)  // input + output, appropriately masked
        case 1:
            return m.CRA
        case 2:
            if m.CRB & DDRx == 0 {
                return m.DDRB
            }
            return (m.ORB & m.DDRB) | (m.INB & ^m.DDRB)
        case 3:
            return m.CRB
        default:
            panic(fmt.Sprintf("Unknown register 0x%.4X", addr))
    }
}

func (m *M6821) W8(addr uint16, val uint8) {
    switch addr {
        case 0:
            if m.CRA & DDRx == 0 {
                m.DDRA = val
            } else {
                m.ORA = val
            }
        case 1:
            m.CRA = val & 0x3F
            return
        case 2:
            if m.CRB & DDRx == 0 {
                m.DDRB = val
            } else {
                m.ORB = val
            }
        case 3:
            m.CRB = val & 0x3F
            return
        default:
            panic(fmt.Sprintf("Unknown register 0x%.4X", addr))
    }
    if m.OnChange != nil {
        m.OnChange()
    }
}

// Read returns what the chip drives onto the pins of a side.  Bits configured
// as inputs read as zero.
func (m *M6821) Read(side uint16) uint8 {
    switch side {
        case 0:
            return m.ORA & m.DDRA
        case 1:
            return m.ORB & m.DDRB
        default:
            panic(fmt.Sprintf("Unknown port 0x%.4X", side))
    }
}

// Write sets the levels the outside world presents to a side.
func (m *M6821) Write(side uint16, val uint8) {
    switch side {
        case 0:
            m.INA = val
        case 1:
            m.INB = val
        default:
            panic(fmt.Sprintf("Unknown port 0x%.4X", side))
    }
}

// Outputs returns the direction register of a side.
func (m *M6821) Outputs(side uint16) uint8 {
    if side == 0 {
        return m.DDRA
    }
    return m.DDRB
}

func (m *M6821) Side(side uint16) pia.Port {
    if side > 1 {
        panic(fmt.Sprintf("Unknown port 0x%.4X", side))
    }
    return &port{m:m, reg:side*2}
}

func (m *M6821) Reset() {
    m.ORA, m.ORB = 0, 0
    m.CRA, m.CRB = 0, 0
    m.DDRA, m.DDRB = 0, 0
    if m.OnChange != nil {
        m.OnChange()
    }
}

// port drives one side purely through the register interface, the way a
// CPU wired to a real 6821 would.
type port struct {
    m    *M6821
    reg  uint16
}

func (p *port) selectReg(ddr bool) {
    cr := p.m.R8(p.reg+1)
    if ddr {
        p.m.W8(p.reg+1, cr &^ DDRx)
    } else {
        p.m.W8(p.reg+1, cr | DDRx)
    }
}

func (p *port) Direction(mask, dir uint8) {
    p.selectReg(true)
    ddr := p.m.R8(p.reg)
    p.m.W8(p.reg, (ddr &^ mask) | (dir & mask))
    p.selectReg(false)
}

func (p *port) Out(mask, val uint8) {
    p.selectReg(false)
    var or uint8
    if p.reg == 0 {
        or = p.m.ORA
    } else {
        or = p.m.ORB
    }
    p.m.W8(p.reg, (or &^ mask) | (val & mask))
}

func (p *port) In() uint8 {
    p.selectReg(false)
    return p.m.R8(p.reg)
}
