package mem

// Storage is the byte-level contract the monitor works through.  Writes may
// be buffered; Flush returns once every accepted write is in the chip.
//
// There are no error returns: the bus has no acknowledge line, so the only
// way to learn a write failed is to read it back.
type Storage interface {
    R8(addr uint16) uint8
    W8(addr uint16, val uint8)
    Flush()
}
