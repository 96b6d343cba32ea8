// Package service renders and controls system services on both init systems
// the installer supports. On systemd hosts it manages unit files under
// /etc/systemd/system; on OpenRC hosts it manages scripts under /etc/init.d
// with equivalent semantics.
package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/printstack-dev/stackctl/internal/execx"
	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

// ErrNoInitSystem is returned when the probe found neither systemd nor
// OpenRC. This is a recoverable, user-visible condition: the caller reports
// it and the user performs the action manually.
var ErrNoInitSystem = errors.New(messages.ServiceNoInitSystem)

const (
	systemdUnitDir = "/etc/systemd/system"
	openrcInitDir  = "/etc/init.d"
)

// Manager drives the service lifecycle through the detected init system.
// Every operation is idempotent from the caller's point of view: installing
// an installed service re-renders it, enabling an enabled one is a no-op
// success. Nothing is retried automatically; privileged operations are not
// assumed idempotent enough for blind retries, but each is safe to re-invoke.
type Manager struct {
	probe  sysenv.Probe
	sys    sysenv.System
	runner execx.Runner
	out    io.Writer
}

// NewManager creates a Manager for the probed environment.
func NewManager(probe sysenv.Probe, sys sysenv.System, runner execx.Runner, out io.Writer) *Manager {
	return &Manager{probe: probe, sys: sys, runner: runner, out: out}
}

// DefinitionPath returns where the rendered definition for the given service
// name lives on the detected init system.
func (m *Manager) DefinitionPath(name string) string {
	if m.probe.InitSystem == sysenv.InitOpenRC {
		return filepath.Join(openrcInitDir, name)
	}
	return filepath.Join(systemdUnitDir, name+".service")
}

// Install renders the definition for the detected init system and writes it
// with elevated privileges. A pre-existing definition is overwritten after a
// unified diff of the change is shown. On systemd a daemon-reload follows the
// write so the new definition is visible immediately.
func (m *Manager) Install(spec Spec) error {
	if err := spec.validate(); err != nil {
		return err
	}

	var content string
	var err error
	switch m.probe.InitSystem {
	case sysenv.InitSystemd:
		content, err = renderUnit(spec)
	case sysenv.InitOpenRC:
		content, err = renderInitScript(spec)
	default:
		return ErrNoInitSystem
	}
	if err != nil {
		return err
	}

	path := m.DefinitionPath(spec.Name)
	m.previewChange(path, content)

	fmt.Fprintf(m.out, messages.ServiceWriteStatusFmt+"\n", path)
	tee := m.elevate("tee", path)
	if err := m.runner.RunInput(content, tee[0], tee[1:]...); err != nil {
		return fmt.Errorf(messages.ServiceWriteFailedFmt, path, err)
	}

	if m.probe.InitSystem == sysenv.InitOpenRC {
		chmod := m.elevate("chmod", "0755", path)
		if err := m.runner.Run(chmod[0], chmod[1:]...); err != nil {
			return fmt.Errorf(messages.ServiceChmodFailedFmt, path, err)
		}
	}

	if m.probe.InitSystem == sysenv.InitSystemd {
		reload := m.elevate("systemctl", "daemon-reload")
		if err := m.runner.Run(reload[0], reload[1:]...); err != nil {
			return fmt.Errorf(messages.ServiceReloadFailedFmt, err)
		}
	}

	color.New(color.FgGreen).Fprintf(m.out, messages.ServiceWriteOKFmt+"\n", path)
	return nil
}

// Enable marks the service to start at boot. Enabling an already-enabled
// service is a no-op success on both init systems.
func (m *Manager) Enable(name string) error {
	return m.bootAction(name, "enable")
}

// Disable removes the service from boot. Counterpart of Enable.
func (m *Manager) Disable(name string) error {
	return m.bootAction(name, "disable")
}

// Start starts the service now.
func (m *Manager) Start(name string) error {
	return m.control(name, "start")
}

// Stop stops the service now.
func (m *Manager) Stop(name string) error {
	return m.control(name, "stop")
}

// Restart restarts the service now.
func (m *Manager) Restart(name string) error {
	return m.control(name, "restart")
}

// IsRunning reports whether the service is currently active. Absence and
// "not running" collapse into false; this never errors, so callers can guard
// a restart of an optional service without special-casing a missing one.
func (m *Manager) IsRunning(name string) bool {
	switch m.probe.InitSystem {
	case sysenv.InitSystemd:
		cmd := m.elevate("systemctl", "is-active", "--quiet", name)
		return m.runner.Succeeds(cmd[0], cmd[1:]...)
	case sysenv.InitOpenRC:
		cmd := m.elevate("rc-service", name, "status")
		return m.runner.Succeeds(cmd[0], cmd[1:]...)
	default:
		return false
	}
}

// bootAction wires or unwires boot-time startup. On OpenRC this adds or
// removes the default-runlevel link via rc-update, the same observable
// effect as systemctl enable.
func (m *Manager) bootAction(name string, action string) error {
	var cmd []string
	switch m.probe.InitSystem {
	case sysenv.InitSystemd:
		cmd = m.elevate("systemctl", action, name)
	case sysenv.InitOpenRC:
		verb := "add"
		if action == "disable" {
			verb = "del"
		}
		cmd = m.elevate("rc-update", verb, name, "default")
	default:
		return ErrNoInitSystem
	}
	return m.reportAction(name, action, cmd)
}

func (m *Manager) control(name string, action string) error {
	var cmd []string
	switch m.probe.InitSystem {
	case sysenv.InitSystemd:
		cmd = m.elevate("systemctl", action, name)
	case sysenv.InitOpenRC:
		cmd = m.elevate("rc-service", name, action)
	default:
		return ErrNoInitSystem
	}
	return m.reportAction(name, action, cmd)
}

func (m *Manager) reportAction(name string, action string, cmd []string) error {
	fmt.Fprintf(m.out, messages.ServiceActionStatusFmt+"\n", capitalize(action), name)
	if err := m.runner.Run(cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf(messages.ServiceActionFailedFmt, action, name, err)
	}
	color.New(color.FgGreen).Fprintln(m.out, messages.ServiceActionOK)
	return nil
}

// previewChange prints a unified diff when an existing definition is about
// to be replaced with different content. Best-effort: unreadable or absent
// files skip the preview.
func (m *Manager) previewChange(path string, rendered string) {
	existing, err := m.sys.ReadFile(path)
	if err != nil || string(existing) == rendered {
		return
	}
	fmt.Fprintf(m.out, messages.ServiceDiffHeaderFmt+"\n", path)
	fmt.Fprint(m.out, udiff.Unified(path, path+" (new)", string(existing), rendered))
}

func (m *Manager) elevate(name string, args ...string) []string {
	return execx.Elevate(m.probe.Privilege, name, args...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
