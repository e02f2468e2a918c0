// Package commands defines the connectctl command tree and flag bindings.
// Execution is delegated to the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for connectctl.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "connectctl",
		Short:         "Provision Amazon Connect agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Create())
	cmd.AddCommand(Profiles())
	cmd.AddCommand(Version())

	return cmd
}
