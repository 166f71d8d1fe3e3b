package cmd

import (
    "fmt"
    "io"
    "os"

    "github.com/gdamore/tcell"
    log "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"

    "github.com/bartgrantham/eeprog/bus"
    "github.com/bartgrantham/eeprog/mon"
    "github.com/bartgrantham/eeprog/ui"
)

// Command is one entry of the command table shared by the cobra subcommands
// and the shell.
type Command struct {
    Name   string
    Args   string
    Short  string
    Min    int  // minimum argument count
    Run    func(p *Programmer, out io.Writer, args []string) error
}

var commands = []Command{
    {"hex", "<start> [end]", "hex dump a region", 1, runHex},
    {"set", "<addr> <byte>...", "write bytes through the page buffer", 2, runSet},
    {"fill", "<start> <end> <byte>", "fill a region", 3, runFill},
    {"move", "<start> <end> <dest>", "copy a region", 3, runMove},
    {"export", "<start> <end> [file]", "write a region as Intel HEX", 2, runExport},
    {"import", "<file>", "write an Intel HEX file", 1, runImport},
    {"verify", "<file>", "compare the chip against an Intel HEX file", 1, runVerify},
    {"erase", "", "erase every byte to FF", 0, runSequence("erase")},
    {"unlock", "", "disable software data protection", 0, runSequence("unlock")},
    {"lock", "", "enable software data protection", 0, runSequence("lock")},
    {"write", "<addr> <byte>", "unbuffered single byte write", 2, runWrite},
    {"read", "<addr>", "unbuffered single byte read", 1, runRead},
    {"page", "<addr> <byte>...", "buffered writes, then flush", 2, runPage},
    {"view", "[addr]", "full screen hex view", 0, runView},
}

func lookup(name string) (Command, bool) {
    for _, c := range commands {
        if c.Name == name {
            return c, true
        }
    }
    return Command{}, false
}

func (c Command) cobra() *cobra.Command {
    return &cobra.Command{
        Use:   c.Name + " " + c.Args,
        Short: c.Short,
        Args:  cobra.MinimumNArgs(c.Min),
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := ConfigFromFlags(cmd)
            if err != nil {
                return err
            }
            p, err := Open(cfg)
            if err != nil {
                return err
            }
            defer p.Close()
            return c.Run(p, cmd.OutOrStdout(), args)
        },
    }
}

func parseAddr(p *Programmer, s string) (int, error) {
    v, ok := mon.ParseAddress(s)
    if !ok {
        return 0, fmt.Errorf("invalid address: %s", s)
    }
    if v >= uint64(p.Part.Size) {
        return 0, fmt.Errorf("address $%X beyond %s ($%X bytes)", v, p.Part.Name, p.Part.Size)
    }
    return int(v), nil
}

func parseBytes(args []string) ([]uint8, error) {
    var data []uint8
    for _, arg := range args {
        v, ok := mon.ParseAddress(arg)
        if !ok || v > 0xFF {
            return nil, fmt.Errorf("invalid byte: %s", arg)
        }
        data = append(data, uint8(v))
    }
    return data, nil
}

func parseAddrs(p *Programmer, args []string) ([]int, error) {
    out := make([]int, len(args))
    for i, a := range args {
        v, err := parseAddr(p, a)
        if err != nil {
            return nil, err
        }
        out[i] = v
    }
    return out, nil
}

func runHex(p *Programmer, out io.Writer, args []string) error {
    a, err := parseAddrs(p, args[:min(len(args), 2)])
    if err != nil {
        return err
    }
    start, end := a[0], min(a[0]+0xFF, p.Part.Size-1)
    if len(a) > 1 {
        end = a[1]
    }
    return p.Monitor.Hex(out, start, end)
}

func runSet(p *Programmer, out io.Writer, args []string) error {
    addr, err := parseAddr(p, args[0])
    if err != nil {
        return err
    }
    data, err := parseBytes(args[1:])
    if err != nil {
        return err
    }
    return p.Monitor.Set(addr, data)
}

func runFill(p *Programmer, out io.Writer, args []string) error {
    a, err := parseAddrs(p, args[:2])
    if err != nil {
        return err
    }
    val, err := parseBytes(args[2:3])
    if err != nil {
        return err
    }
    if err := p.Monitor.Fill(a[0], a[1], val[0]); err != nil {
        return err
    }
    fmt.Fprintf(out, "Filled $%X-$%X with $%02X\n", a[0], a[1], val[0])
    return nil
}

func runMove(p *Programmer, out io.Writer, args []string) error {
    a, err := parseAddrs(p, args[:3])
    if err != nil {
        return err
    }
    if err := p.Monitor.Move(a[0], a[1], a[2]); err != nil {
        return err
    }
    fmt.Fprintf(out, "Moved $%X-$%X to $%X\n", a[0], a[1], a[2])
    return nil
}

func runExport(p *Programmer, out io.Writer, args []string) error {
    a, err := parseAddrs(p, args[:2])
    if err != nil {
        return err
    }
    if len(args) < 3 {
        return p.Monitor.Export(out, a[0], a[1])
    }
    f, err := os.Create(args[2])
    if err != nil {
        return err
    }
    if err := p.Monitor.Export(f, a[0], a[1]); err != nil {
        f.Close()
        return err
    }
    return f.Close()
}

func runImport(p *Programmer, out io.Writer, args []string) error {
    f, err := os.Open(args[0])
    if err != nil {
        return err
    }
    defer f.Close()
    n, err := p.Monitor.Import(f)
    if err != nil {
        return err
    }
    fmt.Fprintf(out, "Imported %d bytes from %s\n", n, args[0])
    return nil
}

func runVerify(p *Programmer, out io.Writer, args []string) error {
    f, err := os.Open(args[0])
    if err != nil {
        return err
    }
    defer f.Close()
    bad, err := p.Monitor.Verify(f)
    if err != nil {
        return err
    }
    for i, m := range bad {
        if i == 256 {
            fmt.Fprintln(out, "... (truncated)")
            break
        }
        fmt.Fprintln(out, m)
    }
    if len(bad) == 0 {
        fmt.Fprintln(out, "Verified")
    } else {
        log.Warnf("verify: %d mismatches against %s", len(bad), args[0])
    }
    return nil
}

func runSequence(name string) func(*Programmer, io.Writer, []string) error {
    return func(p *Programmer, out io.Writer, args []string) error {
        s, ok := p.Sequence(name)
        if !ok {
            return fmt.Errorf("unknown sequence %s", name)
        }
        p.Paged.Run(s)
        return nil
    }
}

func runWrite(p *Programmer, out io.Writer, args []string) error {
    addr, err := parseAddr(p, args[0])
    if err != nil {
        return err
    }
    data, err := parseBytes(args[1:2])
    if err != nil {
        return err
    }
    p.Paged.Direct(func(b *bus.Bus) {
        b.W8(uint16(addr), data[0])
    })
    return nil
}

func runRead(p *Programmer, out io.Writer, args []string) error {
    addr, err := parseAddr(p, args[0])
    if err != nil {
        return err
    }
    fmt.Fprintf(out, "$%.4X: %.2X\n", addr, p.Paged.R8(uint16(addr)))
    return nil
}

func runPage(p *Programmer, out io.Writer, args []string) error {
    addr, err := parseAddr(p, args[0])
    if err != nil {
        return err
    }
    data, err := parseBytes(args[1:])
    if err != nil {
        return err
    }
    if addr + len(data) > p.Part.Size {
        return fmt.Errorf("write runs past $%X", p.Part.Size-1)
    }
    for i, b := range data {
        p.Paged.W8(uint16(addr+i), b)
    }
    p.Paged.Flush()
    return nil
}

func runView(p *Programmer, out io.Writer, args []string) error {
    addr := 0
    if len(args) > 0 {
        a, err := parseAddr(p, args[0])
        if err != nil {
            return err
        }
        addr = a
    }
    screen, err := tcell.NewScreen()
    if err != nil {
        return err
    }
    if err := screen.Init(); err != nil {
        return err
    }
    defer screen.Fini()

    // log lines go to the log box while the screen is up
    ring := ui.NewRing(100)
    hooks := log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
    log.AddHook(ring)
    prev := log.StandardLogger().Out
    log.SetOutput(io.Discard)
    defer func() {
        log.SetOutput(prev)
        log.StandardLogger().ReplaceHooks(hooks)
    }()

    p.Paged.Flush()
    v := &ui.View{
        Screen: screen,
        Label:  p.Part.Name,
        Addr:   addr,
        Size:   p.Part.Size,
        Rows:   16,
        Read:   func(a int) uint8 { return p.Bus.R8(uint16(a)) },
        Ring:   ring,
    }
    v.Run()
    return nil
}
