package mon

import (
    "bufio"
    "encoding/hex"
    "fmt"
    "io"
    "strings"
)

const (
    recData  = 0x00
    recEOF   = 0x01
    recLen   = 16
)

// Record is one run of bytes from an Intel HEX file.
type Record struct {
    Addr  int
    Data  []byte
}

// WriteHex writes data as Intel HEX data records starting at addr, followed
// by an end-of-file record.  Only 16-bit addresses are produced.
func WriteHex(w io.Writer, addr int, data []byte) error {
    for i := 0; i < len(data); i += recLen {
        n := len(data) - i
        if n > recLen {
            n = recLen
        }
        a := addr + i
        rec := make([]byte, 0, n+5)
        rec = append(rec, byte(n), byte(a>>8), byte(a), recData)
        rec = append(rec, data[i:i+n]...)
        rec = append(rec, checksum(rec))
        if _, err := fmt.Fprintf(w, ":%s\n", strings.ToUpper(hex.EncodeToString(rec))); err != nil {
            return err
        }
    }
    _, err := fmt.Fprintln(w, ":00000001FF")
    return err
}

// ReadHex parses Intel HEX data and end-of-file records.  Extended address
// records are rejected; no supported part is larger than 64KiB.
func ReadHex(r io.Reader) ([]Record, error) {
    var recs []Record
    sc := bufio.NewScanner(r)
    line := 0
    for sc.Scan() {
        line += 1
        text := strings.TrimSpace(sc.Text())
        if text == "" {
            continue
        }
        if text[0] != ':' {
            return nil, fmt.Errorf("line %d: missing ':'", line)
        }
        raw, err := hex.DecodeString(text[1:])
        if err != nil {
            return nil, fmt.Errorf("line %d: %w", line, err)
        }
        if len(raw) < 5 || len(raw) != int(raw[0]) + 5 {
            return nil, fmt.Errorf("line %d: bad record length", line)
        }
        if checksum(raw[:len(raw)-1]) != raw[len(raw)-1] {
            return nil, fmt.Errorf("line %d: bad checksum", line)
        }
        switch raw[3] {
            case recData:
                addr := int(raw[1]) << 8 | int(raw[2])
                recs = append(recs, Record{Addr:addr, Data:raw[4:len(raw)-1]})
            case recEOF:
                return recs, nil
            default:
                return nil, fmt.Errorf("line %d: unsupported record type %02X", line, raw[3])
        }
    }
    if err := sc.Err(); err != nil {
        return nil, err
    }
    return recs, nil
}

func checksum(b []byte) byte {
    var sum byte
    for _, v := range b {
        sum += v
    }
    return -sum
}
