// Command mermaid-lint lints, auto-fixes, and renders Mermaid diagrams
// embedded in a single file or piped in on stdin.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/probelabs/mermaid-lint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mermaid-lint",
	Short: "Lint, fix, and render Mermaid diagrams",
	Long:  "mermaid-lint validates Mermaid flowchart, pie, sequence, class, and state diagrams, auto-fixes common mistakes, and renders diagrams to SVG.",
}

func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize text output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal, used
// to resolve --color=auto.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
