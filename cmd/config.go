package cmd

import (
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/spf13/cobra"

    "github.com/bartgrantham/eeprog/board"
    "github.com/bartgrantham/eeprog/bus"
    "github.com/bartgrantham/eeprog/mem/at28c"
    "github.com/bartgrantham/eeprog/mon"
)

// Config is everything needed to open a programmer.
type Config struct {
    Sim     bool
    Part    at28c.Part
    Bus     bus.Config
    Layout  board.Layout
}

func addConfigFlags(c *cobra.Command) {
    d, l := bus.DefaultConfig, board.DefaultLayout
    f := c.PersistentFlags()
    f.Bool("sim", false, "use a simulated board and chip instead of GPIO")
    f.String("part", "at28c64b", "EEPROM part (at28c64b, at28c256)")
    f.Duration("read-delay", d.ReadDelay, "read enable to data sample; must exceed the part's tOE plus host port latency")
    f.Duration("write-cycle", d.WriteCycle, "wait after an unbuffered byte write")
    f.Int("page-size", d.PageSize, "bytes per page burst, at most the part's page size")
    f.Duration("page-delay", d.PageDelay, "wait after a page burst")
    f.Duration("byte-delay", d.ByteDelay, "wait between bytes of a page burst")
    f.Duration("erase-delay", d.EraseDelay, "settle time after erase")
    f.Duration("protect-delay", d.ProtectDelay, "settle time after lock/unlock")
    f.String("data", strings.Join(l.Data[:], ","), "data pins, D0 first")
    f.String("msb-latch", l.MSBLatch, "address MSB latch enable pin")
    f.String("lsb-latch", l.LSBLatch, "address LSB latch enable pin")
    f.String("read-enable", l.ReadEnable, "EEPROM /OE pin")
    f.String("write-enable", l.WriteEnable, "EEPROM /WE pin")
}

// ConfigFromFlags collects the persistent flags of cmd.
func ConfigFromFlags(cmd *cobra.Command) (Config, error) {
    var cfg Config
    part, ok := at28c.Parts[strings.ToLower(GetString(cmd, "part"))]
    if !ok {
        return cfg, fmt.Errorf("unknown part %q", GetString(cmd, "part"))
    }
    cfg.Sim = GetFlag(cmd, "sim")
    cfg.Part = part
    cfg.Bus = bus.Config{
        ReadDelay:    GetDuration(cmd, "read-delay"),
        WriteCycle:   GetDuration(cmd, "write-cycle"),
        PageSize:     GetInt(cmd, "page-size"),
        PageDelay:    GetDuration(cmd, "page-delay"),
        ByteDelay:    GetDuration(cmd, "byte-delay"),
        EraseDelay:   GetDuration(cmd, "erase-delay"),
        ProtectDelay: GetDuration(cmd, "protect-delay"),
    }
    if n := cfg.Bus.PageSize; n <= 0 || n & (n-1) != 0 || n > part.PageSize {
        return cfg, fmt.Errorf("page size %d is not a power of two up to the %s page of %d", n, part.Name, part.PageSize)
    }
    pins := strings.Split(GetString(cmd, "data"), ",")
    if len(pins) != 8 {
        return cfg, fmt.Errorf("need 8 data pins, got %d", len(pins))
    }
    copy(cfg.Layout.Data[:], pins)
    cfg.Layout.MSBLatch = GetString(cmd, "msb-latch")
    cfg.Layout.LSBLatch = GetString(cmd, "lsb-latch")
    cfg.Layout.ReadEnable = GetString(cmd, "read-enable")
    cfg.Layout.WriteEnable = GetString(cmd, "write-enable")
    return cfg, nil
}

// Programmer is an open bus with its paged adapter and monitor.  Close it to
// commit buffered writes.
type Programmer struct {
    Part     at28c.Part
    Bus      *bus.Bus
    Paged    *bus.PagedWrite
    Monitor  *mon.Monitor
    Sim      *board.Sim  // nil on real hardware
}

func Open(cfg Config) (*Programmer, error) {
    p := &Programmer{Part:cfg.Part}
    if cfg.Sim {
        p.Sim, p.Bus = board.NewSim(cfg.Part, cfg.Bus)
    } else {
        b, err := board.Open(cfg.Layout, cfg.Bus)
        if err != nil {
            return nil, err
        }
        p.Bus = b
    }
    p.Paged = bus.NewPagedWrite(p.Bus)
    p.Monitor = mon.New(p.Paged, cfg.Part.Size)
    return p, nil
}

func (p *Programmer) Close() {
    p.Paged.Flush()
}

// Sequence returns the named command sequence with configured settle times.
func (p *Programmer) Sequence(name string) (bus.Sequence, bool) {
    for _, s := range bus.Sequences(p.Bus.Config) {
        if s.Name == name {
            return s, true
        }
    }
    return bus.Sequence{}, false
}

// Get an expected flag, or exit if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
    r, err := cmd.Flags().GetBool(flag)
    if err != nil {
        fmt.Println(err)
        os.Exit(2)
    }
    return r
}

func GetString(cmd *cobra.Command, flag string) string {
    r, err := cmd.Flags().GetString(flag)
    if err != nil {
        fmt.Println(err)
        os.Exit(2)
    }
    return r
}

func GetInt(cmd *cobra.Command, flag string) int {
    r, err := cmd.Flags().GetInt(flag)
    if err != nil {
        fmt.Println(err)
        os.Exit(2)
    }
    return r
}

func GetDuration(cmd *cobra.Command, flag string) time.Duration {
    r, err := cmd.Flags().GetDuration(flag)
    if err != nil {
        fmt.Println(err)
        os.Exit(2)
    }
    return r
}
