package messages

// Service lifecycle messages.
const (
	ServiceNoInitSystem = "no supported init system detected (systemd or OpenRC); manage the service manually"

	ServiceActionStatusFmt = "%s %s ..."
	ServiceActionOK        = "OK!"
	ServiceActionFailedFmt = "failed to %s %s: %w"

	ServiceWriteStatusFmt  = "Creating service file %s ..."
	ServiceWriteOKFmt      = "Service file created: %s"
	ServiceWriteFailedFmt  = "error creating service file %s: %w"
	ServiceChmodFailedFmt  = "error marking init script %s executable: %w"
	ServiceReloadFailedFmt = "daemon-reload failed: %w"

	// ServiceDiffHeaderFmt introduces the diff shown before an existing
	// definition is overwritten.
	ServiceDiffHeaderFmt = "Service definition %s changed:"

	ServiceSpecNameRequired = "service spec requires a name"
	ServiceSpecExecRequired = "service spec requires an exec command"
)

// Web server layout messages.
const (
	LayoutCreateDirStatusFmt = "Creating missing nginx directory %s ..."
	LayoutCreateDirOKFmt     = "Directory %s created."
	LayoutCreateDirFailedFmt = "unable to create nginx directory %s: %w"

	LayoutIncludeStatusFmt = "Linking %s into nginx via %s ..."
	LayoutIncludeOKFmt     = "Added nginx include for %s via %s."
	LayoutIncludeFailedFmt = "unable to create include drop-in %s: %w"

	LayoutSiteWriteStatusFmt = "Writing site config %s ..."
	LayoutSiteWriteOKFmt     = "Site config written: %s"
	LayoutSiteWriteFailedFmt = "unable to write site config %s: %w"
)
