package messages

// Environment probe and external command messages.
const (
	// ProbePackageManagerFmt formats the detected package manager for display.
	ProbePackageManagerFmt = "Package manager:    %s\n"
	ProbePrivilegeFmt      = "Privilege command:  %s\n"
	ProbeInitSystemFmt     = "Init system:        %s\n"
	ProbePrivilegeNone     = "none found"

	// RunnerCommandFailedFmt wraps a failed external command with its stderr.
	RunnerCommandFailedFmt = "%s exited with %s: %s"
	RunnerStartFailedFmt   = "failed to start %s: %w"
)

// Package manager adapter messages.
const (
	PkgUnsupportedManager = "no supported package manager found (apt or apk required); install dependencies manually and re-run"
	PkgNoPrivilegeCommand = "no privilege elevation command found (sudo or doas required)"

	PkgUpdateStatus     = "Updating package list ..."
	PkgUpdateFailedFmt  = "updating package list failed: %w"
	PkgInstallStatusFmt = "Installing packages: %s ..."
	PkgInstallOK        = "Packages successfully installed."
	PkgInstallFailedFmt = "installing packages %v failed: %w"

	// PkgUnavailableWarnFmt names a package with no equivalent in the target ecosystem.
	PkgUnavailableWarnFmt = "Package '%s' has no %s equivalent, skipping."
	PkgAllUnavailable     = "All requested packages are unavailable in this ecosystem. Nothing to install."
)
