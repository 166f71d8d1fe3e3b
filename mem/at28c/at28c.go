package at28c

import (
    "fmt"
    "time"

    log "github.com/sirupsen/logrus"
)

// Part is the timing and geometry of one 28C-series parallel EEPROM.
type Part struct {
    Name          string
    Size          int
    PageSize      int
    OutputEnable  time.Duration  // tOE: OE low to valid data
    ByteLoad      time.Duration  // tBLC: max gap between bytes of one page
    WriteCycle    time.Duration  // tWC: page program time
    EraseCycle    time.Duration
}

var AT28C64B = Part{
    Name:         "AT28C64B",
    Size:         0x2000,
    PageSize:     64,
    OutputEnable: 70 * time.Nanosecond,
    ByteLoad:     150 * time.Microsecond,
    WriteCycle:   10 * time.Millisecond,
    EraseCycle:   20 * time.Millisecond,
}

var AT28C256 = Part{
    Name:         "AT28C256",
    Size:         0x8000,
    PageSize:     64,
    OutputEnable: 70 * time.Nanosecond,
    ByteLoad:     150 * time.Microsecond,
    WriteCycle:   10 * time.Millisecond,
    EraseCycle:   20 * time.Millisecond,
}

var Parts = map[string]Part{
    "at28c64b": AT28C64B,
    "at28c256": AT28C256,
}

type op struct {
    addr  uint16
    val   uint8
}

type command struct {
    name  string
    ops   []op
}

// Software data protection sequences as the chip sees them, before address
// masking.
var commands = []command{
    {"lock",   []op{{0x5555, 0xAA}, {0x2AAA, 0x55}, {0x5555, 0xA0}}},
    {"unlock", []op{{0x5555, 0xAA}, {0x2AAA, 0x55}, {0x5555, 0x80}, {0x5555, 0xAA}, {0x2AAA, 0x55}, {0x5555, 0x20}}},
    {"erase",  []op{{0x5555, 0xAA}, {0x2AAA, 0x55}, {0x5555, 0x80}, {0x5555, 0xAA}, {0x2AAA, 0x55}, {0x5555, 0x10}}},
}

// Chip is a behavioural model of the part: page loading, the program cycle
// and the protection state machine.  Times are supplied by the caller so a
// simulated board can run on a virtual clock.
type Chip struct {
    Part
    cells      []uint8
    writes     []int
    locked     bool

    loading    bool
    page       uint16
    pending    map[uint16]uint8
    lastLoad   time.Duration
    busyUntil  time.Duration
    last       uint8

    seq        []op

    programs   int
    discarded  int
}

// New returns an erased, unprotected chip.
func New(p Part) *Chip {
    c := &Chip{
        Part:    p,
        cells:   make([]uint8, p.Size),
        writes:  make([]int, p.Size),
        pending: map[uint16]uint8{},
    }
    for i := range c.cells {
        c.cells[i] = 0xFF
    }
    return c
}

func (c *Chip) mask(addr uint16) uint16 {
    return addr & uint16(c.Size-1)
}

// Mount copies data into the cells directly, bypassing protection.
func (c *Chip) Mount(addr uint16, data []byte) error {
    if int(addr) + len(data) > c.Size {
        return fmt.Errorf("invalid mount")
    }
    copy(c.cells[addr:], data)
    return nil
}

func (c *Chip) Peek8(addr uint16) (uint8, int) {
    a := c.mask(addr)
    return c.cells[a], c.writes[a]
}

func (c *Chip) Locked() bool   { return c.locked }
func (c *Chip) Programs() int  { return c.programs }
func (c *Chip) Discarded() int { return c.discarded }

// Busy reports whether an internal program or erase cycle is running.
func (c *Chip) Busy(now time.Duration) bool {
    c.Tick(now)
    return now < c.busyUntil
}

// Tick closes the page load window once tBLC has passed without a new byte.
func (c *Chip) Tick(now time.Duration) {
    if c.loading && now - c.lastLoad > c.ByteLoad {
        c.program(c.lastLoad + c.ByteLoad)
    }
}

// program commits everything loaded, including the prefix of a command
// sequence that never completed.
func (c *Chip) program(at time.Duration) {
    deferred := c.seq
    c.seq = nil
    for _, o := range deferred {
        c.load(o)
    }
    c.loading = false
    if len(c.pending) == 0 {
        return
    }
    for off, val := range c.pending {
        a := c.page | off
        c.cells[a] = val
        c.writes[a] += 1
        delete(c.pending, off)
    }
    c.programs += 1
    c.busyUntil = at + c.WriteCycle
}

func (c *Chip) load(o op) {
    if c.locked {
        c.discarded += 1
        log.Warnf("%s: write $%.4X discarded, protected", c.Name, o.addr)
        return
    }
    pmask := uint16(c.PageSize - 1)
    page := o.addr &^ pmask
    if len(c.pending) > 0 && page != c.page {
        c.discarded += 1
        log.Warnf("%s: write $%.4X discarded, crosses page $%.4X", c.Name, o.addr, c.page)
        return
    }
    c.page = page
    c.pending[o.addr & pmask] = o.val
    c.last = o.val
}

// match reports whether seq is a complete command, a prefix of one, or
// neither.
func (c *Chip) match(seq []op) (*command, bool) {
    prefix := false
    for i := range commands {
        cmd := &commands[i]
        if len(seq) > len(cmd.ops) {
            continue
        }
        ok := true
        for j, o := range seq {
            if c.mask(cmd.ops[j].addr) != o.addr || cmd.ops[j].val != o.val {
                ok = false
                break
            }
        }
        if !ok {
            continue
        }
        if len(seq) == len(cmd.ops) {
            return cmd, true
        }
        prefix = true
    }
    return nil, prefix
}

// Write is one rising edge of write enable.
func (c *Chip) Write(addr uint16, val uint8, now time.Duration) {
    c.Tick(now)
    if now < c.busyUntil {
        c.discarded += 1
        log.Warnf("%s: write $%.4X discarded, chip busy", c.Name, addr)
        return
    }
    o := op{c.mask(addr), val}
    c.loading = true
    c.lastLoad = now

    seq := append(c.seq, o)
    cmd, prefix := c.match(seq)
    switch {
        case cmd != nil:
            c.seq = nil
            c.execute(cmd, now)
            return
        case prefix:
            c.seq = seq
            return
    }
    // a broken sequence is plain data
    for _, d := range c.seq {
        c.load(d)
    }
    c.seq = nil
    if _, prefix := c.match([]op{o}); prefix {
        c.seq = []op{o}
        return
    }
    c.load(o)
}

func (c *Chip) execute(cmd *command, now time.Duration) {
    if len(c.pending) > 0 {
        c.program(now)
    }
    c.loading = false
    log.Debugf("%s: %s", c.Name, cmd.name)
    switch cmd.name {
        case "lock":
            c.locked = true
            c.busyUntil = now + c.WriteCycle
        case "unlock":
            c.locked = false
            c.busyUntil = now + c.WriteCycle
        case "erase":
            for i := range c.cells {
                c.cells[i] = 0xFF
            }
            c.busyUntil = now + c.EraseCycle
    }
}

// Output is what the chip drives onto the data pins while output enable has
// been asserted since oe.  ok is false while the output is not yet valid.
func (c *Chip) Output(addr uint16, oe, now time.Duration) (uint8, bool) {
    if now - oe < c.OutputEnable {
        return 0, false
    }
    c.Tick(now)
    if now < c.busyUntil {
        // data polling: bit 7 reads inverted until the cycle ends
        return ^c.last & 0x80, true
    }
    return c.cells[c.mask(addr)], true
}
