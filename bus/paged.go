package bus

import (
    "sort"

    log "github.com/sirupsen/logrus"
)

type entry struct {
    offset  uint16
    data    uint8
}

// PagedWrite batches writes that land in one page and commits them as a
// single page burst.  Flush must be called before the adapter is dropped
// and before anything that expects earlier writes to be in the chip.
type PagedWrite struct {
    Bus      *Bus
    page     uint16
    pending  []entry
    direct   bool
}

func NewPagedWrite(b *Bus) *PagedWrite {
    return &PagedWrite{Bus:b}
}

func (p *PagedWrite) mask() uint16 {
    return uint16(p.Bus.Config.PageSize - 1)
}

// W8 buffers a write.  What is buffered is flushed first when the write is
// for another page or the buffer already holds a full page.  Otherwise a
// write to a buffered offset replaces that entry.
func (p *PagedWrite) W8(addr uint16, val uint8) {
    if p.direct {
        log.Panicf("buffered write to $%.4X inside direct access", addr)
    }
    page, offset := addr &^ p.mask(), addr & p.mask()
    if len(p.pending) > 0 && page != p.page {
        p.Flush()
    }
    if len(p.pending) == p.Bus.Config.PageSize {
        p.Flush()
    }
    for i := range p.pending {
        if p.pending[i].offset == offset {
            p.pending[i].data = val
            return
        }
    }
    p.page = page
    p.pending = append(p.pending, entry{offset, val})
}

// R8 commits anything buffered, then reads through the bus.
func (p *PagedWrite) R8(addr uint16) uint8 {
    p.Flush()
    return p.Bus.R8(addr)
}

// Flush writes the buffered page in offset order and waits for the chip to
// program it.
func (p *PagedWrite) Flush() {
    if len(p.pending) == 0 {
        return
    }
    log.Debugf("flushing page $%.4X (%d bytes)", p.page, len(p.pending))
    sort.Slice(p.pending, func(i, j int) bool {
        return p.pending[i].offset < p.pending[j].offset
    })
    b := p.Bus
    b.ConfigWrite()
    for i, e := range p.pending {
        if i > 0 && b.Config.ByteDelay > 0 {
            b.Timer.Spin(b.Config.ByteDelay)
        }
        b.WriteBus(p.page | e.offset, e.data)
    }
    p.pending = p.pending[:0]
    b.Timer.Sleep(b.Config.PageDelay)
}

// Pending reports how many writes are buffered.
func (p *PagedWrite) Pending() int {
    return len(p.pending)
}

// Direct flushes, then hands fn exclusive, unbuffered use of the bus.  W8
// panics until fn returns; a nested scope leaves the outer one in force.
func (p *PagedWrite) Direct(fn func(b *Bus)) {
    p.Flush()
    prev := p.direct
    p.direct = true
    defer func() { p.direct = prev }()
    fn(p.Bus)
}

// Run issues a command sequence with direct access.
func (p *PagedWrite) Run(s Sequence) {
    p.Direct(func(b *Bus) {
        b.Run(s)
    })
}
