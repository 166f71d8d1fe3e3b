// Package mon implements the byte-region monitor commands on top of any
// mem.Storage: dump, set, fill, move, export, import and verify.
package mon

import (
    "fmt"
    "io"
    "strconv"
    "strings"

    log "github.com/sirupsen/logrus"

    "github.com/bartgrantham/eeprog/mem"
)

// Monitor validates every range against Size before touching Storage; the
// bus below it assumes addresses are in range.
type Monitor struct {
    Storage  mem.Storage
    Size     int
}

func New(st mem.Storage, size int) *Monitor {
    return &Monitor{Storage:st, Size:size}
}

// Mismatch is one byte that did not read back as expected.
type Mismatch struct {
    Addr      int
    Expected  uint8
    Actual    uint8
}

func (m Mismatch) String() string {
    return fmt.Sprintf("$%.4X: expected %.2X, read %.2X", m.Addr, m.Expected, m.Actual)
}

// ParseAddress accepts $hex, 0xhex, #decimal or bare hex.
func ParseAddress(s string) (uint64, bool) {
    s = strings.TrimSpace(s)
    base := 16
    switch {
        case s == "":
            return 0, false
        case strings.HasPrefix(s, "#"):
            s, base = s[1:], 10
        case strings.HasPrefix(s, "$"):
            s = s[1:]
        case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
            s = s[2:]
    }
    v, err := strconv.ParseUint(s, base, 64)
    return v, err == nil
}

func (m *Monitor) check(start, end int) error {
    if start < 0 || end >= m.Size || start > end {
        return fmt.Errorf("invalid range $%X-$%X (size $%X)", start, end, m.Size)
    }
    return nil
}

func (m *Monitor) read(start, end int) []byte {
    m.Storage.Flush()
    data := make([]byte, end-start+1)
    for i := range data {
        data[i] = m.Storage.R8(uint16(start + i))
    }
    return data
}

func (m *Monitor) write(start int, data []byte) {
    for i, b := range data {
        m.Storage.W8(uint16(start + i), b)
    }
    m.Storage.Flush()
}

// Hex dumps start..end inclusive, 16 bytes a row.
func (m *Monitor) Hex(w io.Writer, start, end int) error {
    if err := m.check(start, end); err != nil {
        return err
    }
    row := start &^ 0xF
    data := m.read(start, end)
    for ; row <= end; row += 16 {
        var hexParts []string
        var ascii []byte
        for j := 0; j < 16; j++ {
            a := row + j
            if a < start || a > end {
                hexParts = append(hexParts, "  ")
                ascii = append(ascii, ' ')
                continue
            }
            b := data[a-start]
            hexParts = append(hexParts, fmt.Sprintf("%02X", b))
            if b >= 0x20 && b < 0x7F {
                ascii = append(ascii, b)
            } else {
                ascii = append(ascii, '.')
            }
        }
        hexStr := strings.Join(hexParts[:8], " ") + "  " + strings.Join(hexParts[8:], " ")
        if _, err := fmt.Fprintf(w, "%04X: %s  %s\n", row, hexStr, string(ascii)); err != nil {
            return err
        }
    }
    return nil
}

func (m *Monitor) Set(addr int, vals []uint8) error {
    if len(vals) == 0 {
        return fmt.Errorf("nothing to set")
    }
    if err := m.check(addr, addr+len(vals)-1); err != nil {
        return err
    }
    m.write(addr, vals)
    return nil
}

func (m *Monitor) Fill(start, end int, val uint8) error {
    if err := m.check(start, end); err != nil {
        return err
    }
    data := make([]byte, end-start+1)
    for i := range data {
        data[i] = val
    }
    m.write(start, data)
    log.Debugf("filled $%X-$%X with $%02X", start, end, val)
    return nil
}

// Move copies start..end to dest; overlapping ranges are handled.
func (m *Monitor) Move(start, end, dest int) error {
    if err := m.check(start, end); err != nil {
        return err
    }
    if err := m.check(dest, dest+end-start); err != nil {
        return err
    }
    m.write(dest, m.read(start, end))
    log.Debugf("moved $%X-$%X to $%X", start, end, dest)
    return nil
}

func (m *Monitor) Export(w io.Writer, start, end int) error {
    if err := m.check(start, end); err != nil {
        return err
    }
    return WriteHex(w, start, m.read(start, end))
}

// Import writes every record of an Intel HEX stream and returns the number
// of bytes written.  Nothing is written unless every record is in range.
func (m *Monitor) Import(r io.Reader) (int, error) {
    recs, err := m.records(r)
    if err != nil {
        return 0, err
    }
    n := 0
    for _, rec := range recs {
        for i, b := range rec.Data {
            m.Storage.W8(uint16(rec.Addr + i), b)
        }
        n += len(rec.Data)
    }
    m.Storage.Flush()
    log.Debugf("imported %d bytes", n)
    return n, nil
}

// Verify reads back every byte named by an Intel HEX stream.
func (m *Monitor) Verify(r io.Reader) ([]Mismatch, error) {
    recs, err := m.records(r)
    if err != nil {
        return nil, err
    }
    m.Storage.Flush()
    var bad []Mismatch
    for _, rec := range recs {
        for i, want := range rec.Data {
            a := rec.Addr + i
            if got := m.Storage.R8(uint16(a)); got != want {
                bad = append(bad, Mismatch{a, want, got})
            }
        }
    }
    return bad, nil
}

func (m *Monitor) records(r io.Reader) ([]Record, error) {
    recs, err := ReadHex(r)
    if err != nil {
        return nil, err
    }
    for _, rec := range recs {
        if len(rec.Data) == 0 {
            continue
        }
        if err := m.check(rec.Addr, rec.Addr+len(rec.Data)-1); err != nil {
            return nil, err
        }
    }
    return recs, nil
}
