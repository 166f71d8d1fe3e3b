package port

// Line is a single control signal.  Callers only enable and disable it; the
// active level is fixed when the line is built.
type Line interface {
    ConfigOutput()
    Enable()
    Disable()
}

type activeHigh struct {
    sig  Signal
}

// ActiveHigh returns a line that is asserted when sig is driven high.
func ActiveHigh(sig Signal) Line {
    return activeHigh{sig}
}

func (l activeHigh) ConfigOutput() {
    l.Disable()
    l.sig.ConfigOutput()
}

func (l activeHigh) Enable()  { l.sig.Write(0xFFFF) }
func (l activeHigh) Disable() { l.sig.Write(0x0000) }

type activeLow struct {
    sig  Signal
}

// ActiveLow returns a line that is asserted when sig is driven low.
func ActiveLow(sig Signal) Line {
    return activeLow{sig}
}

func (l activeLow) ConfigOutput() {
    l.Disable()
    l.sig.ConfigOutput()
}

func (l activeLow) Enable()  { l.sig.Write(0x0000) }
func (l activeLow) Disable() { l.sig.Write(0xFFFF) }
