package cmd

import (
    "bufio"
    "errors"
    "fmt"
    "io"
    "os"
    "strings"

    log "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"
    "golang.org/x/term"
)

var errQuit = errors.New("quit")

var shellCmd = &cobra.Command{
    Use:   "shell",
    Short: "Read commands from stdin against one open programmer.",
    Long:  "Read commands from stdin against one open programmer.  With --sim the simulated chip keeps its contents for the whole session.",
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

        fd := int(os.Stdin.Fd())
        if !term.IsTerminal(fd) {
            return Shell(p, os.Stdin, cmd.OutOrStdout())
        }
        state, err := term.MakeRaw(fd)
        if err != nil {
            return err
        }
        defer term.Restore(fd, state)
        screen := struct {
            io.Reader
            io.Writer
        }{os.Stdin, os.Stdout}
        t := term.NewTerminal(screen, "> ")
        prev := log.StandardLogger().Out
        log.SetOutput(t)
        defer log.SetOutput(prev)
        for {
            line, err := t.ReadLine()
            if err == io.EOF {
                return nil
            } else if err != nil {
                return err
            }
            if err := Dispatch(p, t, line); err == errQuit {
                return nil
            } else if err != nil {
                fmt.Fprintln(t, err)
            }
        }
    },
}

// Shell dispatches every line of r, reporting errors to out and carrying on.
func Shell(p *Programmer, r io.Reader, out io.Writer) error {
    sc := bufio.NewScanner(r)
    for sc.Scan() {
        if err := Dispatch(p, out, sc.Text()); err == errQuit {
            return nil
        } else if err != nil {
            fmt.Fprintln(out, err)
        }
    }
    return sc.Err()
}

// Dispatch runs one command line.  Blank lines and lines starting with # do nothing.
func Dispatch(p *Programmer, out io.Writer, line string) error {
    fields := strings.Fields(line)
    if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
        return nil
    }
    name, args := strings.ToLower(fields[0]), fields[1:]
    switch name {
        case "quit", "exit":
            return errQuit
        case "help", "?":
            for _, c := range commands {
                fmt.Fprintf(out, "%-7s %-22s %s\n", c.Name, c.Args, c.Short)
            }
            return nil
    }
    c, ok := lookup(name)
    if !ok {
        return fmt.Errorf("unknown command: %s", name)
    }
    if len(args) < c.Min {
        return fmt.Errorf("usage: %s %s", c.Name, c.Args)
    }
    return c.Run(p, out, args)
}
