// Package sequencer orders the decisions an installer run asks the user to
// make and lets every one of them be pre-seeded through an environment
// override for unattended runs. Decisions are asked at most once and never
// revisited within a run, so the graph is a linear walk over a record of
// already-resolved values, not a general state machine.
package sequencer

import (
	"fmt"
	"io"
	"strings"

	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

// ServiceMode selects how the touchscreen UI is launched.
type ServiceMode string

const (
	// ServiceModeStandalone runs the UI as a supervised system service.
	ServiceModeStandalone ServiceMode = "standalone-service"
	// ServiceModeDesktop leaves launching to an existing desktop session.
	ServiceModeDesktop ServiceMode = "desktop-app"
)

// Backend selects the graphical backend for standalone mode.
type Backend string

const (
	BackendX11     Backend = "X11"
	BackendWayland Backend = "Wayland"
)

// Override environment keys, one per decision point.
const (
	EnvServiceMode = "STACKCTL_SERVICE_MODE"
	EnvBackend     = "STACKCTL_BACKEND"
	EnvPreset      = "STACKCTL_WAYLAND_PRESET"
	EnvExtras      = "STACKCTL_INSTALL_EXTRAS"
)

// Decisions records the resolved choices of one installer run. Once a value
// is known (from an override, a prompt, or a prior decision's consequence)
// its decision point is never surfaced again.
type Decisions struct {
	ServiceMode      ServiceMode `toml:"service_mode"`
	ServiceModeKnown bool        `toml:"-"`

	Backend      Backend `toml:"backend"`
	BackendKnown bool    `toml:"-"`

	Preset      Preset `toml:"wayland_preset"`
	PresetKnown bool   `toml:"-"`

	Extras      bool `toml:"install_extras"`
	ExtrasKnown bool `toml:"-"`
}

// Sequencer walks the decision graph. It consults overrides first, prompts
// only for what remains unknown, and refuses to prompt without a terminal.
type Sequencer struct {
	ui  UI
	sys sysenv.System
	out io.Writer
	// assumeDefaults answers unprompted decision points with their stated
	// defaults instead of failing. Set for fully unattended runs.
	assumeDefaults bool
}

// New creates a Sequencer that prompts through ui, reads overrides through
// sys and reports resolved decisions to out.
func New(ui UI, sys sysenv.System, out io.Writer) *Sequencer {
	return &Sequencer{ui: ui, sys: sys, out: out}
}

// NewNonInteractive creates a Sequencer that never prompts: overrides win
// and every remaining decision takes its stated default.
func NewNonInteractive(sys sysenv.System, out io.Writer) *Sequencer {
	return &Sequencer{ui: silentUI{}, sys: sys, out: out, assumeDefaults: true}
}

// Resolve walks the graph in its fixed order: service mode, then (standalone
// only) backend, then (Wayland only) mobile shell preset, then extras. The
// preset question is structurally unreachable unless the backend resolved to
// Wayland; asking it earlier would force X11-only users through an
// irrelevant prompt. Already-known values in d are kept as-is.
func (s *Sequencer) Resolve(d Decisions) (Decisions, error) {
	d, err := s.resolveServiceMode(d)
	if err != nil {
		return d, err
	}

	if d.ServiceMode == ServiceModeStandalone {
		if d, err = s.resolveBackend(d); err != nil {
			return d, err
		}
		if d.Backend == BackendWayland {
			if d, err = s.resolvePreset(d); err != nil {
				return d, err
			}
		}
	}

	return s.resolveExtras(d)
}

func (s *Sequencer) resolveServiceMode(d Decisions) (Decisions, error) {
	if d.ServiceModeKnown {
		return d, nil
	}
	raw, overridden := s.sys.LookupEnv(EnvServiceMode)
	if overridden {
		mode, err := parseServiceMode(raw)
		if err != nil {
			return d, err
		}
		d.ServiceMode = mode
		d.ServiceModeKnown = true
		s.report("service mode", string(mode), EnvServiceMode)
		return d, nil
	}

	if !s.ui.Interactive() {
		if !s.assumeDefaults {
			return d, fmt.Errorf(messages.SeqRequiresTerminal, EnvServiceMode)
		}
		d.ServiceMode = ServiceModeStandalone
		d.ServiceModeKnown = true
		s.report("service mode", string(d.ServiceMode), "")
		return d, nil
	}
	choice := string(ServiceModeStandalone)
	if err := s.ui.Select(messages.SeqServiceModePrompt, "", []string{string(ServiceModeStandalone), string(ServiceModeDesktop)}, &choice); err != nil {
		return d, err
	}
	mode, err := parseServiceMode(choice)
	if err != nil {
		return d, err
	}
	d.ServiceMode = mode
	d.ServiceModeKnown = true
	s.report("service mode", string(mode), "")
	return d, nil
}

func (s *Sequencer) resolveBackend(d Decisions) (Decisions, error) {
	if d.BackendKnown {
		return d, nil
	}
	raw, overridden := s.sys.LookupEnv(EnvBackend)
	if overridden {
		backend, err := parseBackend(raw)
		if err != nil {
			return d, err
		}
		d.Backend = backend
		d.BackendKnown = true
		s.report("graphical backend", string(backend), EnvBackend)
		return d, nil
	}

	if !s.ui.Interactive() {
		if !s.assumeDefaults {
			return d, fmt.Errorf(messages.SeqRequiresTerminal, EnvBackend)
		}
		d.Backend = BackendX11
		d.BackendKnown = true
		s.report("graphical backend", string(d.Backend), "")
		return d, nil
	}
	choice := string(BackendX11)
	if err := s.ui.Select(messages.SeqBackendPrompt, "", []string{string(BackendX11), string(BackendWayland)}, &choice); err != nil {
		return d, err
	}
	backend, err := parseBackend(choice)
	if err != nil {
		return d, err
	}
	d.Backend = backend
	d.BackendKnown = true
	s.report("graphical backend", string(backend), "")
	return d, nil
}

func (s *Sequencer) resolvePreset(d Decisions) (Decisions, error) {
	if d.PresetKnown {
		return d, nil
	}
	raw, overridden := s.sys.LookupEnv(EnvPreset)
	if overridden {
		preset, err := parsePreset(raw)
		if err != nil {
			return d, err
		}
		d.Preset = preset
		d.PresetKnown = true
		s.report("Wayland preset", string(preset), EnvPreset)
		return d, nil
	}

	if !s.ui.Interactive() {
		if !s.assumeDefaults {
			return d, fmt.Errorf(messages.SeqRequiresTerminal, EnvPreset)
		}
		d.Preset = PresetNone
		d.PresetKnown = true
		s.report("Wayland preset", string(d.Preset), "")
		return d, nil
	}
	options := append(presetNames(), messages.SeqPresetSkipOption)
	choice := messages.SeqPresetSkipOption
	if err := s.ui.Select(messages.SeqPresetPrompt, messages.SeqPresetSkipHint, options, &choice); err != nil {
		return d, err
	}
	preset, err := parsePreset(choice)
	if err != nil {
		return d, err
	}
	d.Preset = preset
	d.PresetKnown = true
	s.report("Wayland preset", string(preset), "")
	return d, nil
}

func (s *Sequencer) resolveExtras(d Decisions) (Decisions, error) {
	if d.ExtrasKnown {
		return d, nil
	}
	raw, overridden := s.sys.LookupEnv(EnvExtras)
	if overridden {
		extras, err := parseBool(raw, false, EnvExtras)
		if err != nil {
			return d, err
		}
		d.Extras = extras
		d.ExtrasKnown = true
		s.report("optional extras", yesNo(extras), EnvExtras)
		return d, nil
	}

	if !s.ui.Interactive() {
		if !s.assumeDefaults {
			return d, fmt.Errorf(messages.SeqRequiresTerminal, EnvExtras)
		}
		d.ExtrasKnown = true
		s.report("optional extras", yesNo(d.Extras), "")
		return d, nil
	}
	extras := false
	if err := s.ui.Confirm(messages.SeqExtrasPrompt, &extras); err != nil {
		return d, err
	}
	d.Extras = extras
	d.ExtrasKnown = true
	s.report("optional extras", yesNo(extras), "")
	return d, nil
}

func (s *Sequencer) report(point string, value string, envKey string) {
	line := fmt.Sprintf(messages.SeqDecisionSummaryFmt, point, value)
	if envKey != "" {
		line += fmt.Sprintf(messages.SeqOverrideSourceFmt, envKey)
	}
	fmt.Fprintln(s.out, line)
}

// parseServiceMode accepts the mode names plus the relaxed boolean
// vocabulary, where truthy means standalone service.
func parseServiceMode(raw string) (ServiceMode, error) {
	switch normalize(raw) {
	case "", "standalone-service", "standalone", "service", "1", "y", "yes", "true":
		return ServiceModeStandalone, nil
	case "desktop-app", "desktop", "0", "n", "no", "false":
		return ServiceModeDesktop, nil
	}
	return "", fmt.Errorf(messages.SeqInvalidAnswerFmt, raw, EnvServiceMode, "standalone-service, desktop-app")
}

// parseBackend accepts the backend names and the single-letter forms the
// backend tracking file uses.
func parseBackend(raw string) (Backend, error) {
	switch normalize(raw) {
	case "", "x11", "x":
		return BackendX11, nil
	case "wayland", "w":
		return BackendWayland, nil
	}
	return "", fmt.Errorf(messages.SeqInvalidAnswerFmt, raw, EnvBackend, "X11, Wayland")
}

func parseBool(raw string, fallback bool, envKey string) (bool, error) {
	switch normalize(raw) {
	case "":
		return fallback, nil
	case "1", "y", "yes", "true":
		return true, nil
	case "0", "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf(messages.SeqInvalidAnswerFmt, raw, envKey, "yes, no")
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
