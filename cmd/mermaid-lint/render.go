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

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file|->",
	Short: "Render a Mermaid diagram to SVG",
	Long:  "Parses the diagram and writes a self-contained SVG document to stdout. Validation diagnostics are reported to stderr.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().Float64("width", 0, "advisory width hint passed to the renderer")
	renderCmd.Flags().Float64("height", 0, "advisory height hint passed to the renderer")
	renderCmd.Flags().BoolP("strict", "s", false, "promote warnings to errors before computing the exit code")
}

func runRender(cmd *cobra.Command, args []string) error {
	width, err := cmd.Flags().GetFloat64("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	height, err := cmd.Flags().GetFloat64("height")
	if err != nil {
		return fmt.Errorf("failed to get height flag: %w", err)
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
		fmt.Fprintln(os.Stdout, "No Mermaid diagrams found.")
		return nil
	}

	res := mermaidlint.Render(text, mermaidlint.RenderOptions{Width: width, Height: height})

	fmt.Fprintln(os.Stdout, res.Vector)

	diags := res.Diagnostics
	if strict {
		promoted := make([]diag.Diagnostic, len(diags))
		copy(promoted, diags)
		for i, d := range promoted {
			if d.Severity == diag.SevWarning {
				promoted[i].Severity = diag.SevError
			}
		}
		diags = promoted
	}
	if len(diags) == 0 {
		return nil
	}

	hasErrors := false
	for _, d := range diags {
		if d.Severity == diag.SevError {
			hasErrors = true
		}
	}

	useColor := resolveColor(colorFlag, os.Stderr)
	out := mermaidlint.ToText(name, text, diags, report.TextOptions{Color: useColor, Context: 1})
	if out != "" {
		fmt.Fprint(os.Stderr, out)
	}
	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("diagnostics contain errors")
	}
	return nil
}
