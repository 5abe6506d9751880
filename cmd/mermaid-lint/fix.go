package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	mermaidlint "github.com/probelabs/mermaid-lint"
	"github.com/probelabs/mermaid-lint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|->",
	Short: "Apply available fixes to a Mermaid diagram",
	Long:  "Runs the auto-fix engine to a fixed point and reports the diagnostics that remain afterward.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("fix", "safe", "fix level to apply (safe|all)")
	fixCmd.Flags().StringP("format", "f", "text", "output format for remaining diagnostics (text|json)")
	fixCmd.Flags().BoolP("strict", "s", false, "promote warnings to errors before computing the exit code")
	fixCmd.Flags().BoolP("dry-run", "n", false, "show what would change without writing it")
	fixCmd.Flags().Bool("print-fixed", false, "print the fixed source to stdout")
}

func runFix(cmd *cobra.Command, args []string) error {
	levelStr, err := cmd.Flags().GetString("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}
	var level fix.Level
	switch levelStr {
	case "safe":
		level = fix.LevelSafe
	case "all":
		level = fix.LevelAll
	default:
		return fmt.Errorf("unknown fix level: %s (must be safe or all)", levelStr)
	}

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
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	printFixed, err := cmd.Flags().GetBool("print-fixed")
	if err != nil {
		return fmt.Errorf("failed to get print-fixed flag: %w", err)
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

	res := mermaidlint.Fix(text, mermaidlint.FixOptions{Level: level, Strict: strict})

	if printFixed || dryRun {
		fmt.Fprint(os.Stdout, res.Fixed)
	}
	if !dryRun && res.Fixed != text && args[0] != "-" {
		if err := os.WriteFile(args[0], []byte(res.Fixed), 0o644); err != nil {
			return fmt.Errorf("failed to write fixed source: %w", err)
		}
	}

	return printReport(cmd, name, res.Fixed, res.Diagnostics, format, colorFlag)
}
