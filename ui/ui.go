package ui

import (
    "fmt"
    "strings"
    "sync"

    "github.com/gdamore/tcell"
    log "github.com/sirupsen/logrus"
)

// Ring is a logrus hook keeping the last lines logged, for LogBox.
type Ring struct {
    mu     sync.Mutex
    lines  []string
    next   int
}

func NewRing(n int) *Ring {
    return &Ring{lines:make([]string, n)}
}

func (r *Ring) Levels() []log.Level {
    return log.AllLevels
}

func (r *Ring) Fire(e *log.Entry) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.lines[r.next] = fmt.Sprintf("%-5.5s %s", strings.ToUpper(e.Level.String()), e.Message)
    r.next = (r.next+1) % len(r.lines)
    return nil
}

// Last returns up to n lines, oldest first.
func (r *Ring) Last(n int) []string {
    r.mu.Lock()
    defer r.mu.Unlock()
    if n > len(r.lines) {
        n = len(r.lines)
    }
    var out []string
    for i := 0; i < n; i++ {
        li := (r.next - n + i + len(r.lines)) % len(r.lines)
        if r.lines[li] != "" {
            out = append(out, r.lines[li])
        }
    }
    return out
}

func LogBox(s tcell.Screen, x, y, w, h int, label string, r *Ring) {
    Box(s, x, y, w, h)
    Clear(s, x+1, y+1, w-2, h-2)
    style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
    DrawString(s, x+2, y, style, " "+label+" ")
    style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
    for i, line := range r.Last(h-1) {
        if len(line) > w-3 {
            line = line[:w-3]
        }
        DrawString(s, x+2, y+1+i, style, line)
    }
}

// HexBox draws rows*16 bytes starting at addr, which is rounded down to a
// row boundary.  Erased bytes (0xFF) are dimmed.
func HexBox(s tcell.Screen, x, y, rows int, label string, addr int, read func(addr int) (uint8, bool)) {
    Box(s, x, y, 57, rows+3)
    style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Underline(true)
    colhead := "x0 x1 x2 x3 x4 x5 x6 x7  x8 x9 xA xB xC xD xE xF"
    DrawString(s, x+8, y+1, style, colhead)
    style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
    DrawString(s, x+6, y, style, " "+label+" ")

    addr &^= 0xF
    for row := 0; row < rows; row++ {
        style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
        DrawString(s, x+2, y+2+row, style, fmt.Sprintf("$%.4X", addr))
        for low := 0; low < 16; low++ {
            col := x + 8 + low*3
            if low >= 8 {
                col += 1
            }
            val, ok := read(addr + low)
            cell := "  "
            switch {
                case !ok:
                case val == 0xFF:
                    style = tcell.StyleDefault.Foreground(tcell.ColorGray)
                    cell = fmt.Sprintf("%.2X", val)
                default:
                    style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
                    cell = fmt.Sprintf("%.2X", val)
            }
            DrawString(s, col, y+2+row, style, cell)
        }
        addr += 16
    }
}

// DrawString writes str one rune per cell from x and returns the column
// after the last rune.
func DrawString(s tcell.Screen, x, y int, style tcell.Style, str string) int {
    for _, c := range str {
        s.SetContent(x, y, c, nil, style)
        x += 1
    }
    return x
}

var frame = tcell.StyleDefault.Foreground(tcell.ColorGray)

// edge picks the frame rune for offset (dx, dy) of a w by h outline.
func edge(dx, dy, w, h int) rune {
    top, bottom := dy == 0, dy == h
    left, right := dx == 0, dx == w
    switch {
        case top && left:
            return tcell.RuneULCorner
        case top && right:
            return tcell.RuneURCorner
        case bottom && left:
            return tcell.RuneLLCorner
        case bottom && right:
            return tcell.RuneLRCorner
        case left || right:
            return tcell.RuneVLine
    }
    return tcell.RuneHLine
}

// Box outlines (x, y) to (x+w, y+h), both corners included.
func Box(s tcell.Screen, x, y, w, h int) {
    for dy := 0; dy <= h; dy++ {
        step := w
        if step == 0 || dy == 0 || dy == h {
            step = 1
        }
        for dx := 0; dx <= w; dx += step {
            s.SetContent(x+dx, y+dy, edge(dx, dy, w, h), nil, frame)
        }
    }
}

// Fill sets (x, y) to (x+w, y+h) inclusive to r.
func Fill(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
    for row := y; row <= y+h; row++ {
        for col := x; col <= x+w; col++ {
            s.SetContent(col, row, r, nil, style)
        }
    }
}

func Clear(s tcell.Screen, x, y, w, h int) {
    Fill(s, x, y, w, h, ' ', tcell.StyleDefault)
}
