package mon

import (
    "bytes"
    "strings"
    "testing"
)

type ram struct {
    cells    [0x100]uint8
    flushes  int
}

func (r *ram) R8(addr uint16) uint8      { return r.cells[addr] }
func (r *ram) W8(addr uint16, val uint8) { r.cells[addr] = val }
func (r *ram) Flush()                    { r.flushes += 1 }

func newRAM() (*Monitor, *ram) {
    r := &ram{}
    for i := range r.cells {
        r.cells[i] = uint8(i)
    }
    return New(r, len(r.cells)), r
}

func TestParseAddress(t *testing.T) {
    cases := []struct {
        in    string
        want  uint64
        ok    bool
    }{
        {"$1F", 0x1F, true},
        {"0x1f", 0x1F, true},
        {"0X10", 0x10, true},
        {"#31", 31, true},
        {"ff", 0xFF, true},
        {" $10 ", 0x10, true},
        {"", 0, false},
        {"$", 0, false},
        {"#1F", 0, false},
        {"zz", 0, false},
    }
    for _, c := range cases {
        got, ok := ParseAddress(c.in)
        if ok != c.ok || (ok && got != c.want) {
            t.Errorf("ParseAddress(%q) = %X, %v", c.in, got, ok)
        }
    }
}

func TestHexRow(t *testing.T) {
    m, _ := newRAM()
    var buf bytes.Buffer
    if err := m.Hex(&buf, 0x00, 0x0F); err != nil {
        t.Fatal(err)
    }
    want := "0000: 00 01 02 03 04 05 06 07  08 09 0A 0B 0C 0D 0E 0F  ................\n"
    if buf.String() != want {
        t.Errorf("got  %q\nwant %q", buf.String(), want)
    }
}

func TestHexPartialRows(t *testing.T) {
    m, _ := newRAM()
    m.Set(0x44, []uint8("Hello"))
    var buf bytes.Buffer
    if err := m.Hex(&buf, 0x44, 0x52); err != nil {
        t.Fatal(err)
    }
    lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
    if len(lines) != 2 {
        t.Fatalf("%d lines: %q", len(lines), buf.String())
    }
    if !strings.HasPrefix(lines[0], "0040: " + strings.Repeat(" ", 12) + "48 65 6C 6C  6F 49") {
        t.Errorf("first row %q", lines[0])
    }
    if !strings.HasSuffix(lines[0], "    HelloIJKLMNO") {
        t.Errorf("first row ascii %q", lines[0])
    }
    if !strings.HasPrefix(lines[1], "0050: 50 51 52  ") {
        t.Errorf("second row %q", lines[1])
    }
}

func TestRangeChecks(t *testing.T) {
    m, _ := newRAM()
    var buf bytes.Buffer
    if err := m.Hex(&buf, 0x10, 0x100); err == nil {
        t.Error("hex past end accepted")
    }
    if err := m.Hex(&buf, 0x20, 0x10); err == nil {
        t.Error("reversed range accepted")
    }
    if err := m.Set(0xFF, []uint8{1, 2}); err == nil {
        t.Error("set past end accepted")
    }
    if err := m.Set(0x10, nil); err == nil {
        t.Error("empty set accepted")
    }
    if err := m.Move(0x00, 0x10, 0xF0); err == nil {
        t.Error("move past end accepted")
    }
}

func TestFill(t *testing.T) {
    m, r := newRAM()
    if err := m.Fill(0x10, 0x1F, 0xEA); err != nil {
        t.Fatal(err)
    }
    for i := 0; i < 0x100; i++ {
        want := uint8(i)
        if i >= 0x10 && i <= 0x1F {
            want = 0xEA
        }
        if r.cells[i] != want {
            t.Fatalf("$%02X = %02X", i, r.cells[i])
        }
    }
    if r.flushes == 0 {
        t.Error("fill not flushed")
    }
}

func TestMoveOverlap(t *testing.T) {
    m, r := newRAM()
    if err := m.Move(0x10, 0x1F, 0x14); err != nil {
        t.Fatal(err)
    }
    for i := 0; i < 16; i++ {
        if r.cells[0x14+i] != uint8(0x10+i) {
            t.Fatalf("$%02X = %02X", 0x14+i, r.cells[0x14+i])
        }
    }
    m, r = newRAM()
    if err := m.Move(0x14, 0x23, 0x10); err != nil {
        t.Fatal(err)
    }
    for i := 0; i < 16; i++ {
        if r.cells[0x10+i] != uint8(0x14+i) {
            t.Fatalf("$%02X = %02X", 0x10+i, r.cells[0x10+i])
        }
    }
}

func TestExport(t *testing.T) {
    m, r := newRAM()
    r.cells[0x80], r.cells[0x81] = 0x01, 0x02
    var buf bytes.Buffer
    if err := m.Export(&buf, 0x80, 0x81); err != nil {
        t.Fatal(err)
    }
    want := ":0200800001027B\n:00000001FF\n"
    if buf.String() != want {
        t.Errorf("got %q, want %q", buf.String(), want)
    }
}

func TestImportVerify(t *testing.T) {
    src, _ := newRAM()
    var buf bytes.Buffer
    if err := src.Export(&buf, 0x00, 0x2F); err != nil {
        t.Fatal(err)
    }
    image := buf.String()
    if n := strings.Count(image, "\n"); n != 4 {
        t.Errorf("%d records, want 3 data and EOF", n)
    }

    m, r := newRAM()
    for i := range r.cells {
        r.cells[i] = 0xFF
    }
    bad, err := m.Verify(strings.NewReader(image))
    if err != nil {
        t.Fatal(err)
    }
    if len(bad) != 0x30 {
        t.Errorf("%d mismatches before import", len(bad))
    }
    if bad[0].String() != "$0000: expected 00, read FF" {
        t.Errorf("mismatch %q", bad[0])
    }
    n, err := m.Import(strings.NewReader(image))
    if err != nil || n != 0x30 {
        t.Fatalf("imported %d, %v", n, err)
    }
    bad, err = m.Verify(strings.NewReader(image))
    if err != nil || len(bad) != 0 {
        t.Errorf("after import: %v %v", bad, err)
    }
}

func TestImportOutOfRange(t *testing.T) {
    m, r := newRAM()
    var buf bytes.Buffer
    WriteHex(&buf, 0x00, []byte{0xAA})
    WriteHex(&buf, 0x1000, []byte{0xBB})
    // the first EOF record ends the stream
    if _, err := m.Import(strings.NewReader(buf.String())); err != nil {
        t.Fatal(err)
    }
    buf.Reset()
    buf.WriteString(":0100000011EE\n")
    WriteHex(&buf, 0x1000, []byte{0xBB})
    if _, err := m.Import(&buf); err == nil {
        t.Fatal("out of range record accepted")
    }
    if r.cells[0x00] != 0xAA {
        t.Errorf("partial import wrote $00 = %02X", r.cells[0x00])
    }
}

func TestReadHexErrors(t *testing.T) {
    for _, in := range []string{
        "0200800001027B",
        ":0200800001027C",
        ":02008000017B",
        ":0Z",
        ":00000004FC",
    } {
        if _, err := ReadHex(strings.NewReader(in)); err == nil {
            t.Errorf("%q accepted", in)
        }
    }
    recs, err := ReadHex(strings.NewReader("\n:0200800001027B\n\n"))
    if err != nil || len(recs) != 1 || recs[0].Addr != 0x80 || !bytes.Equal(recs[0].Data, []byte{1, 2}) {
        t.Errorf("%v %v", recs, err)
    }
}
