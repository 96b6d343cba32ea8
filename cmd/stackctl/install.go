package main

import (
	"fmt"
	"io"
	"os/user"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/printstack-dev/stackctl/internal/execx"
	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/pkgmgr"
	"github.com/printstack-dev/stackctl/internal/sequencer"
	"github.com/printstack-dev/stackctl/internal/service"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

// touchscreenService is the service name later stages and the update flow
// refer to.
const touchscreenService = "touchscreen-ui"

// Dependency sets for the touchscreen UI, in Debian package names; the
// adapter translates them for Alpine hosts.
var (
	touchscreenDeps = []string{
		"git",
		"python3-virtualenv",
		"python3-pip",
		"libgirepository1.0-dev",
		"libdbus-glib-1-dev",
	}
	touchscreenX11Deps = []string{
		"xserver-xorg",
		"xinit",
		"x11-xserver-utils",
	}
	touchscreenWaylandDeps = []string{
		"seatd",
	}
	touchscreenExtraDeps = []string{
		"fonts-nanum",
		"fonts-freefont-ttf",
	}
)

func newInstallCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
	}
	cmd.AddCommand(newInstallTouchscreenCmd(flags))
	cmd.AddCommand(newInstallDashboardCmd())
	return cmd
}

func newInstallTouchscreenCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.InstallTouchscreenUse,
		Short: messages.InstallTouchscreenShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstallTouchscreen(flags, cmd.OutOrStdout())
		},
	}
}

func runInstallTouchscreen(flags *rootFlags, out io.Writer) error {
	sys := sysenv.RealSystem{}
	probe := sysenv.Detect(sys)
	runner := execx.ExecRunner{}

	seq := sequencer.New(sequencer.NewHuhUI(), sys, out)
	if flags.yes {
		seq = sequencer.NewNonInteractive(sys, out)
	}
	statePath, err := sequencer.StatePath()
	if err != nil {
		return err
	}
	decisions, err := resolveDecisions(seq, statePath)
	if err != nil {
		return err
	}

	adapter := pkgmgr.NewAdapter(probe, runner, pkgmgr.DefaultTable(), out)
	if err := adapter.Update(); err != nil {
		return err
	}

	fmt.Fprintln(out, messages.InstallDepsStatus)
	deps := append([]string{}, touchscreenDeps...)
	if decisions.ServiceMode == sequencer.ServiceModeStandalone {
		switch decisions.Backend {
		case sequencer.BackendX11:
			deps = append(deps, touchscreenX11Deps...)
		case sequencer.BackendWayland:
			deps = append(deps, touchscreenWaylandDeps...)
		}
	}
	if decisions.Extras {
		deps = append(deps, touchscreenExtraDeps...)
	}
	if err := adapter.Install(deps...); err != nil {
		return err
	}

	if decisions.ServiceMode != sequencer.ServiceModeStandalone {
		fmt.Fprintln(out, messages.InstallDesktopModeMsg)
		fmt.Fprintln(out, messages.InstallTouchscreenOK)
		return nil
	}

	spec, err := touchscreenSpec(decisions)
	if err != nil {
		return err
	}
	manager := service.NewManager(probe, sys, runner, out)
	if err := manager.Install(spec); err != nil {
		return err
	}
	if err := manager.Enable(spec.Name); err != nil {
		return err
	}
	if err := manager.Start(spec.Name); err != nil {
		return err
	}

	fmt.Fprintln(out, messages.InstallTouchscreenOK)
	return nil
}

// resolveDecisions seeds the sequencer with the decisions persisted by a
// previous run, resolves what remains unknown and persists the result. A
// re-run therefore only prompts for decision points the state file does not
// answer.
func resolveDecisions(seq *sequencer.Sequencer, statePath string) (sequencer.Decisions, error) {
	prior, err := sequencer.LoadState(statePath)
	if err != nil {
		return sequencer.Decisions{}, err
	}
	decisions, err := seq.Resolve(prior)
	if err != nil {
		return decisions, err
	}
	return decisions, sequencer.SaveState(statePath, decisions)
}

// touchscreenSpec builds the service definition for the resolved decisions.
// A Wayland preset contributes the session environment the UI needs to come
// up on the mobile shell's display.
func touchscreenSpec(decisions sequencer.Decisions) (service.Spec, error) {
	home, err := homedir.Dir()
	if err != nil {
		return service.Spec{}, err
	}
	current, err := user.Current()
	if err != nil {
		return service.Spec{}, err
	}

	env := map[string]string{}
	if decisions.Backend == sequencer.BackendWayland {
		env = decisions.Preset.Environment()
	} else {
		env["DISPLAY"] = ":0"
	}

	return service.Spec{
		Name: touchscreenService,
		Exec: []string{
			filepath.Join(home, ".touchscreen-ui-env", "bin", "python"),
			filepath.Join(home, "touchscreen-ui", "screen.py"),
		},
		User:        current.Username,
		WorkingDir:  filepath.Join(home, "touchscreen-ui"),
		Environment: env,
		WantedAfter: "moonraker",
	}, nil
}
