package messages

// Install sequencer prompts and overrides.
const (
	SeqServiceModePrompt = "How should the touchscreen UI run?"
	SeqBackendPrompt     = "Which graphical backend should the touchscreen UI use?"
	SeqPresetPrompt      = "Select a Wayland mobile shell preset"
	SeqExtrasPrompt      = "Install optional extras (fonts and media helpers)?"
	SeqPresetSkipHint    = "Presets pre-create launchers with the right environment for mobile shells."
	SeqPresetSkipOption  = "none"

	SeqRequiresTerminal = "interactive prompts require a terminal; set %s to answer non-interactively"
	SeqInvalidAnswerFmt = "invalid value %q for %s (valid: %s)"

	SeqDecisionSummaryFmt = "Using %s: %s"
	SeqOverrideSourceFmt  = " (from %s)"

	SeqStateWriteFailedFmt = "unable to persist install decisions to %s: %w"
	SeqStateReadFailedFmt  = "unable to read install decisions from %s: %w"
)
