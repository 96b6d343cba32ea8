package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printstack-dev/stackctl/internal/execx"
	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/service"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

func newServiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ServiceUse,
		Short: messages.ServiceShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys := sysenv.RealSystem{}
			probe := sysenv.Detect(sys)
			manager := service.NewManager(probe, sys, execx.ExecRunner{}, cmd.OutOrStdout())

			action, name := args[0], args[1]
			switch action {
			case "start":
				return manager.Start(name)
			case "stop":
				return manager.Stop(name)
			case "restart":
				return manager.Restart(name)
			case "enable":
				return manager.Enable(name)
			case "disable":
				return manager.Disable(name)
			case "status":
				if manager.IsRunning(name) {
					fmt.Fprintf(cmd.OutOrStdout(), messages.ServiceRunning, name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), messages.ServiceStopped, name)
				}
				return nil
			default:
				return fmt.Errorf(messages.ServiceBadVerb, action)
			}
		},
	}
}
