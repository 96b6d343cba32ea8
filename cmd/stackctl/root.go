package main

import (
	"github.com/spf13/cobra"

	"github.com/printstack-dev/stackctl/internal/logging"
	"github.com/printstack-dev/stackctl/internal/messages"
)

// rootFlags carries the persistent flags shared by every subcommand.
type rootFlags struct {
	verbosity int
	yes       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flags.verbosity)
		},
	}
	cmd.SetVersionTemplate(messages.VersionTemplate)
	cmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", messages.RootFlagVerbose)
	cmd.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, messages.RootFlagYes)

	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newInstallCmd(flags))
	cmd.AddCommand(newServiceCmd())

	return cmd
}
