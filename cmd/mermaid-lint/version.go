package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probelabs/mermaid-lint/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show mermaid-lint build metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	},
}
