// Package sysenv detects the host environment an installer run targets:
// the package manager, the privilege elevation command and the init system.
// Detection happens once per process; the resulting Probe is passed by value
// to every component that needs it.
package sysenv

// PackageManager identifies the package manager family of the host.
type PackageManager string

const (
	// PackageManagerApt is the Debian-family package manager.
	PackageManagerApt PackageManager = "apt"
	// PackageManagerApk is the Alpine-family package manager.
	PackageManagerApk PackageManager = "apk"
	// PackageManagerUnknown means no supported package manager was found.
	PackageManagerUnknown PackageManager = "unknown"
)

// InitSystem identifies the service manager of the host.
type InitSystem string

const (
	InitSystemd InitSystem = "systemd"
	InitOpenRC  InitSystem = "openrc"
	// InitUnknown means no supported init system was found.
	InitUnknown InitSystem = "unknown"
)

// systemdRuntimeDir exists only when systemd is PID 1.
const systemdRuntimeDir = "/run/systemd/system"

// Probe is the immutable environment descriptor. It is computed once by
// Detect and never re-probed for the lifetime of the process.
type Probe struct {
	PackageManager PackageManager
	// Privilege is the elevation command prepended to privileged invocations,
	// "sudo" or "doas". Empty when neither is installed.
	Privilege string
	InitSystem InitSystem
}

// Detect probes the host for the active package manager, privilege command
// and init system. Probe order is fixed: apt before apk, sudo before doas.
// Nothing here fails; unsupported hosts are reported through the Unknown
// values and rejected later by the operations that need them.
func Detect(sys System) Probe {
	probe := Probe{
		PackageManager: PackageManagerUnknown,
		InitSystem:     InitUnknown,
	}

	if has(sys, "apt-get") && has(sys, "dpkg-query") {
		probe.PackageManager = PackageManagerApt
	} else if has(sys, "apk") {
		probe.PackageManager = PackageManagerApk
	}

	if has(sys, "sudo") {
		probe.Privilege = "sudo"
	} else if has(sys, "doas") {
		probe.Privilege = "doas"
	}

	if info, err := sys.Stat(systemdRuntimeDir); err == nil && info.IsDir() {
		probe.InitSystem = InitSystemd
	} else if has(sys, "rc-service") {
		probe.InitSystem = InitOpenRC
	}

	return probe
}

func has(sys System, binary string) bool {
	_, err := sys.LookPath(binary)
	return err == nil
}
