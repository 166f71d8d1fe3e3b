package bus

import (
    "time"
)

// Timer provides the two kinds of wait the bus needs.  Spin covers the
// sub-microsecond gap between read enable and sampling the data path and
// must not yield; Sleep covers write cycles and command settle times.
type Timer interface {
    Spin(d time.Duration)
    Sleep(d time.Duration)
}

// HostTimer waits on the host's monotonic clock.
type HostTimer struct{}

func (HostTimer) Spin(d time.Duration) {
    for start := time.Now(); time.Since(start) < d; {
    }
}

func (HostTimer) Sleep(d time.Duration) {
    time.Sleep(d)
}

// Config holds the part and platform specific timing of the bus.
//
// ReadDelay is the only value that can silently corrupt data when wrong: it
// must exceed the part's output-enable-to-valid-data time (tOE) plus the
// host's port sampling latency.  The default assumes a 28C64B/28C256 (tOE
// 70ns max) driven from Linux GPIO and leaves margin; re-derive it for any
// other part or host rather than copying it.
type Config struct {
    ReadDelay     time.Duration  // read enable to data sample
    WriteCycle    time.Duration  // tBLC + tWC after an unbuffered byte write
    PageSize      int            // bytes per page, a power of two
    PageDelay     time.Duration  // tBLC + tWC after a page burst
    ByteDelay     time.Duration  // between bytes of a page burst, must stay under tBLC
    EraseDelay    time.Duration  // settle after chip erase
    ProtectDelay  time.Duration  // settle after lock/unlock
}

var DefaultConfig = Config{
    ReadDelay:    250 * time.Nanosecond,
    WriteCycle:   11 * time.Millisecond,
    PageSize:     64,
    PageDelay:    11 * time.Millisecond,
    ByteDelay:    0,
    EraseDelay:   20 * time.Millisecond,
    ProtectDelay: 10 * time.Millisecond,
}
