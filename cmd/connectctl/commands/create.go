package commands

import (
	"github.com/spf13/cobra"

	"github.com/janisto/connect-provisioner/cmd/connectctl/handlers"
)

// Create returns the command that provisions one agent from an event file.
func Create() *cobra.Command {
	opts := handlers.CreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agent from an event file",
		Long: `Create an agent from a JSON or YAML event file.

The event carries Username, Password, PhoneConfig, SecurityProfileIds and
RoutingProfileId, with profile names rather than identifiers. Use "-" to
read the event from stdin.

With --unique-username the event's Username is replaced by Tester-<unix time>,
so the same event file can be replayed against a live instance.
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Stdin = cmd.InOrStdin()
			opts.Out = cmd.OutOrStdout()
			return handlers.Create(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Path to the event file")
	cmd.Flags().BoolVar(&opts.UniqueUsername, "unique-username", false, "Replace Username with Tester-<unix time>")
	cmd.Flags().StringVar(&opts.ErrorMode, "error-mode", "", "Override PROVISION_ERROR_MODE (strict or permissive)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", handlers.FormatJSON, "Output format: json or yaml")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
