package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "stackctl"
	// RootShort is the short description for the root command.
	RootShort = "Cross-distribution installer for the 3D printer host stack"

	RootFlagVerbose = "Increase log verbosity (repeatable)"
	RootFlagYes     = "Never prompt; rely on STACKCTL_* overrides and defaults"

	VersionTemplate = "{{.Version}}\n"

	DetectUse   = "detect"
	DetectShort = "Show the detected package manager, privilege command and init system"

	InstallUse   = "install"
	InstallShort = "Install stack components"

	InstallTouchscreenUse   = "touchscreen"
	InstallTouchscreenShort = "Install the touchscreen UI and wire its autostart"

	InstallDashboardUse   = "dashboard"
	InstallDashboardShort = "Install a web dashboard behind nginx"
	DashboardFlagName     = "Dashboard name used for the nginx site file"
	DashboardFlagPort     = "Port the dashboard site listens on"

	ServiceUse     = "service <start|stop|restart|enable|disable|status> <name>"
	ServiceShort   = "Control a stack service through the detected init system"
	ServiceBadVerb = "unknown service action %q (valid: start, stop, restart, enable, disable, status)"
	ServiceRunning = "%s is running\n"
	ServiceStopped = "%s is not running\n"

	InstallDepsStatus     = "Installing dependencies ..."
	InstallTouchscreenOK  = "Touchscreen UI successfully installed!"
	InstallDashboardOKFmt = "Dashboard %s installed; nginx site listens on port %d.\n"
	InstallDesktopModeMsg = "Desktop app mode selected; no system service will be created."
	InstallNginxRestart   = "Restarting nginx ..."
	InstallNginxNotUp     = "nginx is not running; start it after reviewing the configuration."
)
