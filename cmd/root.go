// Package cmd implements the techdocs CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "techdocs",
	Short: "Convert TechDocs HTML into markdown sections",
	Long: `techdocs converts MkDocs/TechDocs generated HTML into clean markdown
and splits it into sections addressable by the original anchor fragments.

Usage:
  techdocs convert <file.html|url> [flags]
  techdocs sync --bucket <bucket> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
