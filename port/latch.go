package port

// Latch captures whatever Data presents when Enable is pulsed and keeps
// presenting it after Data moves on.  Read returns the captured value; the
// latch outputs cannot be sampled by the host.
type Latch struct {
    Data    Signal
    Enable  Line
    value   uint16
}

func NewLatch(data Signal, enable Line) *Latch {
    return &Latch{Data:data, Enable:enable}
}

func (l *Latch) Read() uint16 {
    return l.value
}

func (l *Latch) Write(v uint16) {
    l.Data.Write(v)
    l.Enable.Enable()
    l.Enable.Disable()
    l.value = v
}

// ConfigInput is a no-op: a latch output is never read back over the data path.
func (l *Latch) ConfigInput() {}

func (l *Latch) ConfigOutput() {
    l.Data.ConfigOutput()
    l.Enable.ConfigOutput()
}

// Word spreads a 16-bit value over two 8-bit signals.  Writing a Word made
// of two Latches on one data path is the address multiplexer: the MSB pulse
// completes before the data path is driven with the LSB.
type Word struct {
    MSB  Signal
    LSB  Signal
}

func (w Word) Read() uint16 {
    return (w.MSB.Read() & 0xFF) << 8 | (w.LSB.Read() & 0xFF)
}

func (w Word) Write(v uint16) {
    w.MSB.Write(v >> 8)
    w.LSB.Write(v & 0xFF)
}

func (w Word) ConfigInput() {
    w.MSB.ConfigInput()
    w.LSB.ConfigInput()
}

func (w Word) ConfigOutput() {
    w.MSB.ConfigOutput()
    w.LSB.ConfigOutput()
}
