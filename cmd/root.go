package cmd

import (
    "fmt"
    "os"
    "runtime/debug"

    log "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"
)

// Version overrides the module version reported by --version; set it with
// -ldflags "-X github.com/bartgrantham/eeprog/cmd.Version=...".
var Version string

func version() string {
    if Version != "" {
        return Version
    }
    if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
        return info.Main.Version
    }
    return "(devel)"
}

var rootCmd = &cobra.Command{
    Use:   "eeprog",
    Short: "A programmer for parallel EEPROMs on a latched address bus.",
    Long:  "Read, write, erase and (un)protect 28C-series parallel EEPROMs driven from host GPIO pins through two address latches.",
    PersistentPreRun: func(cmd *cobra.Command, args []string) {
        switch {
            case GetFlag(cmd, "trace"):
                log.SetLevel(log.TraceLevel)
            case GetFlag(cmd, "verbose"):
                log.SetLevel(log.DebugLevel)
        }
    },
    RunE: func(cmd *cobra.Command, args []string) error {
        if GetFlag(cmd, "version") {
            fmt.Fprintln(cmd.OutOrStdout(), "eeprog", version())
            return nil
        }
        return cmd.Usage()
    },
}

// Execute runs the command line; any error exits with status 1 after cobra
// has printed it.
func Execute() {
    if err := rootCmd.Execute(); err != nil {
        os.Exit(1)
    }
}

func init() {
    rootCmd.Flags().Bool("version", false, "print the version and exit")
    rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
    rootCmd.PersistentFlags().Bool("trace", false, "log every bus transaction")
    addConfigFlags(rootCmd)
    for _, c := range commands {
        rootCmd.AddCommand(c.cobra())
    }
    rootCmd.AddCommand(shellCmd)
}
