package ui

import (
    "github.com/gdamore/tcell"
)

// View is a scrolling hex view of a memory with a log box underneath.  Every
// redraw reads the visible bytes again.
type View struct {
    Screen  tcell.Screen
    Label   string
    Addr    int
    Size    int
    Rows    int
    Read    func(addr int) uint8
    Ring    *Ring
}

func (v *View) Draw() {
    v.Screen.Clear()
    HexBox(v.Screen, 1, 0, v.Rows, v.Label, v.Addr, func(a int) (uint8, bool) {
        if a >= v.Size {
            return 0, false
        }
        return v.Read(a), true
    })
    if v.Ring != nil {
        LogBox(v.Screen, 1, v.Rows+4, 80, 8, "Log", v.Ring)
    }
    v.Screen.Show()
}

// Scroll moves the view by n rows, clamped to the memory.
func (v *View) Scroll(n int) {
    last := (v.Size - 1) &^ 0xF - (v.Rows-1)*16
    if last < 0 {
        last = 0
    }
    v.Addr = (v.Addr &^ 0xF) + n*16
    if v.Addr > last {
        v.Addr = last
    }
    if v.Addr < 0 {
        v.Addr = 0
    }
}

// Handle applies one key and reports whether the view should close.
func (v *View) Handle(e *tcell.EventKey) bool {
    switch e.Key() {
        case tcell.KeyCtrlC, tcell.KeyEscape:
            return true
        case tcell.KeyUp:
            v.Scroll(-1)
        case tcell.KeyDown:
            v.Scroll(1)
        case tcell.KeyPgUp:
            v.Scroll(-v.Rows)
        case tcell.KeyPgDn:
            v.Scroll(v.Rows)
        case tcell.KeyHome:
            v.Addr = 0
        case tcell.KeyEnd:
            v.Scroll(v.Size / 16)
        case tcell.KeyRune:
            if e.Rune() == 'q' {
                return true
            }
    }
    return false
}

// Run draws and handles keys until the view is closed.
func (v *View) Run() {
    v.Draw()
    for {
        evt := v.Screen.PollEvent()
        switch e := evt.(type) {
            case nil:
                return
            case *tcell.EventKey:
                if v.Handle(e) {
                    return
                }
            case *tcell.EventResize:
                v.Screen.Sync()
        }
        v.Draw()
    }
}
