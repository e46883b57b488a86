package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bracketlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bl",
	Short: "Lint checks for bl workspaces",
	Long:  `bl analyzes a workspace of bl units and reports lint findings.`,
}

// errLintFailed distinguishes "the code has errors" (exit 1) from tool
// failures (exit 2).
var errLintFailed = errors.New("lint failed")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "cap diagnostics per unit (0 = from bl.toml)")

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errLintFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
