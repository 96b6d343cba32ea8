package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DetectUse,
		Short: messages.DetectShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			probe := sysenv.Detect(sysenv.RealSystem{})
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, messages.ProbePackageManagerFmt, probe.PackageManager)
			privilege := probe.Privilege
			if privilege == "" {
				privilege = messages.ProbePrivilegeNone
			}
			fmt.Fprintf(out, messages.ProbePrivilegeFmt, privilege)
			fmt.Fprintf(out, messages.ProbeInitSystemFmt, probe.InitSystem)
			return nil
		},
	}
}
