package commands

import (
	"github.com/spf13/cobra"

	"github.com/janisto/connect-provisioner/cmd/connectctl/handlers"
)

// Profiles returns the command that lists profile names of the instance.
func Profiles() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List security and routing profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Profiles(cmd.Context(), format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")

	return cmd
}
