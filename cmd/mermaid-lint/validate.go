package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	mermaidlint "github.com/probelabs/mermaid-lint"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file|->",
	Short: "Run diagnostics on a Mermaid diagram",
	Long:  "Detects the diagram family and reports lexical, syntactic, structural, semantic, hygiene, and advisory diagnostics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringP("format", "f", "text", "output format (text|json)")
	validateCmd.Flags().BoolP("strict", "s", false, "promote warnings to errors before computing the exit code")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	text, name, err := readSource(args[0])
	if err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		if format == "json" {
			out, _ := report.Marshal(mermaidlint.ToJSON(name, nil))
			fmt.Fprintln(os.Stdout, out)
			return nil
		}
		fmt.Fprintln(os.Stdout, "No Mermaid diagrams found.")
		return nil
	}

	res := mermaidlint.Validate(text, mermaidlint.ValidateOptions{Strict: strict})
	return printReport(cmd, name, text, res.Diagnostics, format, colorFlag)
}

// printReport renders diagnostics: JSON always goes to stdout, and the
// text report goes to stderr when any error is present and to stdout
// otherwise. The returned error, when non-nil, signals a non-zero exit
// code to cobra; the message itself has already been printed, so cobra's
// usage/error output is silenced for this exit path.
func printReport(cmd *cobra.Command, name, text string, diags []diag.Diagnostic, format, colorFlag string) error {
	if format == "json" {
		j := mermaidlint.ToJSON(name, diags)
		out, err := report.Marshal(j)
		if err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		fmt.Fprintln(os.Stdout, out)
		if !j.Valid {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fmt.Errorf("diagnostics contain errors")
		}
		return nil
	}

	hasErrors := false
	for _, d := range diags {
		if d.Severity == diag.SevError {
			hasErrors = true
			break
		}
	}

	w := os.Stdout
	if hasErrors {
		w = os.Stderr
	}
	useColor := resolveColor(colorFlag, w)
	out := mermaidlint.ToText(name, text, diags, report.TextOptions{Color: useColor, Context: 1})
	if out != "" {
		fmt.Fprint(w, out)
	}
	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("diagnostics contain errors")
	}
	return nil
}
