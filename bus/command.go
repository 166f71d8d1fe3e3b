package bus

import (
    "time"

    log "github.com/sirupsen/logrus"
)

type Write struct {
    Addr  uint16
    Data  uint8
}

// Sequence is a fixed list of writes the chip treats as one command,
// followed by the worst case time the chip needs to carry it out.  Nothing
// checks that the chip complied; read back afterwards to find out.
type Sequence struct {
    Name    string
    Writes  []Write
    Settle  time.Duration
}

// Erase sets every byte to 0xFF.
var Erase = Sequence{
    Name: "erase",
    Writes: []Write{
        {0x5555, 0xAA},
        {0xAAAA, 0x55},
        {0x5555, 0x80},
        {0x5555, 0xAA},
        {0xAAAA, 0x55},
        {0x5555, 0x10},
    },
    Settle: 20 * time.Millisecond,
}

// Unlock disables software data protection.
var Unlock = Sequence{
    Name: "unlock",
    Writes: []Write{
        {0x5555, 0xAA},
        {0xAAAA, 0x55},
        {0x5555, 0x80},
        {0x5555, 0xAA},
        {0xAAAA, 0x55},
        {0x5555, 0x20},
    },
    Settle: 10 * time.Millisecond,
}

// Lock enables software data protection.
var Lock = Sequence{
    Name: "lock",
    Writes: []Write{
        {0x5555, 0xAA},
        {0xAAAA, 0x55},
        {0x5555, 0xA0},
    },
    Settle: 10 * time.Millisecond,
}

// Sequences returns erase, unlock and lock with settle times from cfg.
func Sequences(cfg Config) []Sequence {
    return []Sequence{
        Erase.WithSettle(cfg.EraseDelay),
        Unlock.WithSettle(cfg.ProtectDelay),
        Lock.WithSettle(cfg.ProtectDelay),
    }
}

// WithSettle returns a copy of s with another settle time; zero keeps the
// datasheet value.
func (s Sequence) WithSettle(d time.Duration) Sequence {
    if d > 0 {
        s.Settle = d
    }
    return s
}

// Run issues s back to back with no buffering, then waits s.Settle.  Callers
// holding a PagedWrite go through PagedWrite.Run instead.
func (b *Bus) Run(s Sequence) {
    log.Infof("%s: %d writes, settle %v", s.Name, len(s.Writes), s.Settle)
    b.ConfigWrite()
    for _, w := range s.Writes {
        b.WriteBus(w.Addr, w.Data)
    }
    b.Timer.Sleep(s.Settle)
}
