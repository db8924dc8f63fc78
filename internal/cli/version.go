package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapper-generator/internal/mapping"
	"mapper-generator/internal/version"
)

// NewVersionCmd prints the compiled version details.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show mapper-generator version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			fmt.Fprintf(cmd.OutOrStdout(), "definition schema: %s\n", mapping.SupportedVersions)
		},
	}
}
