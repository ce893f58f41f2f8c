// Command rc is the RC language toolchain: it drives the semantic core
// and composition analyzer over a program and reports diagnostics.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "rc",
	Short: "RC concurrent component language toolchain",
	Long:  `rc checks RC programs: name resolution, type checking, mutability, and composition analysis.`,
}

func main() {
	rootCmd.Version = versionString()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 200, "maximum number of diagnostics to collect")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal,
// used to resolve --color=auto.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor turns a --color flag value into a yes/no decision against
// stdout, defaulting "auto" to whether stdout is a terminal.
func resolveColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
