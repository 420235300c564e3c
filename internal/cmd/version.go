package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quickstart-dev/quickstart/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show quickstart version information.

Displays the CLI version, commit, build date and Go version.`,
		Args: validateArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.GetInfo().String())
			return nil
		},
	}
}
