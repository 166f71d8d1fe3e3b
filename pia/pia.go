package pia

// Port is one 8-bit host I/O port.  Each bit has its own direction, like the
// A/B sides of a 6821 or an AVR PORTx/DDRx/PINx triple.
type Port interface {
    Direction(mask, dir uint8)  // DDR bits under mask; 1 = output
    Out(mask, val uint8)        // output latch bits under mask
    In() uint8                  // sample the pins
}

// PIA is a peripheral interface adapter with two ports, addressed the way a
// CPU would see its registers.
type PIA interface {
    R8(addr uint16) uint8
    W8(addr uint16, val uint8)
    Read(side uint16) uint8
    Write(side uint16, val uint8)
    Side(side uint16) Port
    Reset()
}
