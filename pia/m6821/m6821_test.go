package m6821

import (
    "testing"
)

func TestRegisterSelect(t *testing.T) {
    m := M6821{INA:0x50}
    m.W8(1, 0)     // CRA: DDR access
    m.W8(0, 0x0F)
    if m.DDRA != 0x0F || m.ORA != 0 {
        t.Fatalf("DDRA=%02X ORA=%02X", m.DDRA, m.ORA)
    }
    if got := m.R8(0); got != 0x0F {
        t.Errorf("DDR read %02X", got)
    }
    m.W8(1, DDRx)  // CRA: output register access
    m.W8(0, 0xAA)
    if m.ORA != 0xAA || m.DDRA != 0x0F {
        t.Fatalf("DDRA=%02X ORA=%02X", m.DDRA, m.ORA)
    }
    // outputs from ORA, inputs from the outside world
    if got := m.R8(0); got != 0x5A {
        t.Errorf("port read %02X, want 5A", got)
    }
    if got := m.Read(0); got != 0x0A {
        t.Errorf("pins driven %02X, want 0A", got)
    }
}

func TestControlRegisterMasked(t *testing.T) {
    m := M6821{}
    m.W8(3, 0xFF)
    if m.R8(3) != 0x3F {
        t.Errorf("CRB=%02X", m.CRB)
    }
}

func TestSidePort(t *testing.T) {
    m := &M6821{}
    p := m.Side(1)
    p.Direction(0xF0, 0xFF)
    p.Out(0xFF, 0x3C)
    if m.DDRB != 0xF0 || m.ORB != 0x3C {
        t.Fatalf("DDRB=%02X ORB=%02X", m.DDRB, m.ORB)
    }
    if got := m.Read(1); got != 0x30 {
        t.Errorf("pins driven %02X, want 30", got)
    }
    m.Write(1, 0x0F)
    if got := p.In(); got != 0x3F {
        t.Errorf("In=%02X, want 3F", got)
    }
    // partial updates leave other bits alone
    p.Out(0x10, 0x00)
    p.Direction(0x80, 0x00)
    if m.ORB != 0x2C || m.DDRB != 0x70 {
        t.Errorf("DDRB=%02X ORB=%02X", m.DDRB, m.ORB)
    }
    if m.Side(0) == nil {
        t.Error("no side A")
    }
}

func TestOnChange(t *testing.T) {
    calls := 0
    m := &M6821{OnChange:func() { calls += 1 }}
    m.W8(1, DDRx)
    m.W8(3, DDRx)
    if calls != 0 {
        t.Fatalf("control register write reported as pin change")
    }
    m.W8(0, 1)
    m.W8(2, 1)
    if calls != 2 {
        t.Fatalf("calls=%d", calls)
    }
    m.Reset()
    if calls != 3 || m.ORA != 0 || m.ORB != 0 {
        t.Fatalf("reset: calls=%d ORA=%02X ORB=%02X", calls, m.ORA, m.ORB)
    }
}

func TestUnknownRegisterPanics(t *testing.T) {
    defer func() {
        if recover() == nil {
            t.Error("no panic")
        }
    }()
    m := M6821{}
    m.R8(4)
}
