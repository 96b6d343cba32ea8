// Package pkgmgr installs system dependencies through whichever package
// manager the host runs, translating Debian package names to Alpine ones
// where the ecosystems disagree.
package pkgmgr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/printstack-dev/stackctl/internal/execx"
	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

// ErrUnsupportedPackageManager is returned by every operation when the probe
// found neither apt nor apk. Callers fail fast instead of guessing.
var ErrUnsupportedPackageManager = errors.New(messages.PkgUnsupportedManager)

// Adapter exposes update and install operations over the detected package
// manager. It is stateless aside from the probe taken at construction.
type Adapter struct {
	probe  sysenv.Probe
	runner execx.Runner
	table  Table
	out    io.Writer
}

// NewAdapter creates an Adapter for the probed environment. Warnings and
// status lines are written to out.
func NewAdapter(probe sysenv.Probe, runner execx.Runner, table Table, out io.Writer) *Adapter {
	return &Adapter{probe: probe, runner: runner, table: table, out: out}
}

// Update refreshes the package metadata. A non-zero exit is surfaced as an
// error and never retried; refresh failures are almost always network or
// mirror issues only the user can fix.
func (a *Adapter) Update() error {
	var cmd []string
	switch a.probe.PackageManager {
	case sysenv.PackageManagerApt:
		cmd = a.elevate("apt-get", "update")
	case sysenv.PackageManagerApk:
		cmd = a.elevate("apk", "update")
	default:
		return ErrUnsupportedPackageManager
	}

	fmt.Fprintln(a.out, messages.PkgUpdateStatus)
	if err := a.runner.Run(cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf(messages.PkgUpdateFailedFmt, err)
	}
	return nil
}

// Install installs the requested packages, translating names for the Alpine
// ecosystem. An empty request succeeds without invoking anything; installers
// rely on this to call Install unconditionally with optional lists. Names
// the target ecosystem cannot provide are skipped with a warning each, and a
// request that translates entirely away is reported, not fatal.
func (a *Adapter) Install(names ...string) error {
	if len(names) == 0 {
		return nil
	}

	var toInstall []string
	var cmd []string
	switch a.probe.PackageManager {
	case sysenv.PackageManagerApt:
		toInstall, _ = Table(nil).Resolve(names)
		cmd = a.elevate("apt-get", "install", "-y")
	case sysenv.PackageManagerApk:
		var dropped []string
		toInstall, dropped = a.table.Resolve(names)
		for _, name := range dropped {
			color.New(color.FgYellow).Fprintf(a.out, messages.PkgUnavailableWarnFmt+"\n", name, sysenv.PackageManagerApk)
		}
		cmd = a.elevate("apk", "add", "--no-cache")
	default:
		return ErrUnsupportedPackageManager
	}

	if len(toInstall) == 0 {
		fmt.Fprintln(a.out, messages.PkgAllUnavailable)
		return nil
	}

	fmt.Fprintf(a.out, messages.PkgInstallStatusFmt+"\n", strings.Join(toInstall, " "))
	cmd = append(cmd, toInstall...)
	if err := a.runner.Run(cmd[0], cmd[1:]...); err != nil {
		// Name the original request so failures correlate back to the
		// installer step that asked for it.
		return fmt.Errorf(messages.PkgInstallFailedFmt, names, err)
	}
	color.New(color.FgGreen).Fprintln(a.out, messages.PkgInstallOK)
	return nil
}

func (a *Adapter) elevate(name string, args ...string) []string {
	return execx.Elevate(a.probe.Privilege, name, args...)
}
