package sequencer

import (
	"bytes"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printstack-dev/stackctl/internal/messages"
)

// envSystem serves LookupEnv from a map; the filesystem is empty.
type envSystem map[string]string

func (e envSystem) Stat(string) (os.FileInfo, error) { return nil, fs.ErrNotExist }
func (e envSystem) ReadFile(string) ([]byte, error)  { return nil, fs.ErrNotExist }
func (e envSystem) LookPath(string) (string, error)  { return "", fs.ErrNotExist }
func (e envSystem) Glob(string) ([]string, error)    { return nil, nil }

func (e envSystem) LookupEnv(key string) (string, bool) {
	value, ok := e[key]
	return value, ok
}

// scriptedUI answers prompts from maps keyed by prompt title and records
// which prompts were surfaced. An unscripted prompt keeps its default.
type scriptedUI struct {
	selections map[string]string
	confirms   map[string]bool
	surfaced   []string
	helpTexts  map[string]string
}

func (ui *scriptedUI) Interactive() bool { return true }

func (ui *scriptedUI) Select(title string, description string, options []string, current *string) error {
	ui.surfaced = append(ui.surfaced, title)
	if ui.helpTexts == nil {
		ui.helpTexts = map[string]string{}
	}
	ui.helpTexts[title] = description
	if answer, ok := ui.selections[title]; ok {
		*current = answer
	}
	return nil
}

func (ui *scriptedUI) Confirm(title string, value *bool) error {
	ui.surfaced = append(ui.surfaced, title)
	if answer, ok := ui.confirms[title]; ok {
		*value = answer
	}
	return nil
}

func TestResolveDefaults(t *testing.T) {
	ui := &scriptedUI{}
	seq := New(ui, envSystem{}, &bytes.Buffer{})

	d, err := seq.Resolve(Decisions{})
	require.NoError(t, err)

	assert.Equal(t, ServiceModeStandalone, d.ServiceMode)
	assert.Equal(t, BackendX11, d.Backend)
	assert.False(t, d.Extras)
	assert.True(t, d.ServiceModeKnown)
	assert.True(t, d.BackendKnown)
	assert.True(t, d.ExtrasKnown)
	// X11 never reaches the preset question.
	assert.False(t, d.PresetKnown)
	assert.Equal(t, []string{
		messages.SeqServiceModePrompt,
		messages.SeqBackendPrompt,
		messages.SeqExtrasPrompt,
	}, ui.surfaced)
}

func TestResolveWaylandSurfacesPreset(t *testing.T) {
	ui := &scriptedUI{
		selections: map[string]string{
			messages.SeqBackendPrompt: string(BackendWayland),
			messages.SeqPresetPrompt:  string(PresetSxmo),
		},
		confirms: map[string]bool{messages.SeqExtrasPrompt: true},
	}
	seq := New(ui, envSystem{}, &bytes.Buffer{})

	d, err := seq.Resolve(Decisions{})
	require.NoError(t, err)

	assert.Equal(t, BackendWayland, d.Backend)
	assert.Equal(t, PresetSxmo, d.Preset)
	assert.True(t, d.PresetKnown)
	assert.True(t, d.Extras)
	assert.Contains(t, ui.surfaced, messages.SeqPresetPrompt)
	// The preset prompt carries its help text; the other selects none.
	assert.Equal(t, messages.SeqPresetSkipHint, ui.helpTexts[messages.SeqPresetPrompt])
	assert.Empty(t, ui.helpTexts[messages.SeqBackendPrompt])
}

func TestResolvePresetUnreachableWithoutWayland(t *testing.T) {
	tests := []struct {
		name string
		env  envSystem
		ui   *scriptedUI
	}{
		{
			name: "prompted backend stays X11",
			env:  envSystem{},
			ui:   &scriptedUI{selections: map[string]string{messages.SeqBackendPrompt: string(BackendX11)}},
		},
		{
			name: "backend overridden to x",
			env:  envSystem{EnvBackend: "x"},
			ui:   &scriptedUI{},
		},
		{
			name: "desktop mode skips backend entirely",
			env:  envSystem{EnvServiceMode: "desktop-app"},
			ui:   &scriptedUI{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := New(tt.ui, tt.env, &bytes.Buffer{})
			d, err := seq.Resolve(Decisions{})
			require.NoError(t, err)
			assert.False(t, d.PresetKnown)
			assert.NotContains(t, tt.ui.surfaced, messages.SeqPresetPrompt)
		})
	}
}

func TestResolveEnvOverridesSkipPrompts(t *testing.T) {
	env := envSystem{
		EnvServiceMode: "standalone-service",
		EnvBackend:     "W",
		EnvPreset:      "phosh",
		EnvExtras:      "yes",
	}
	ui := &scriptedUI{}
	var out bytes.Buffer
	seq := New(ui, env, &out)

	d, err := seq.Resolve(Decisions{})
	require.NoError(t, err)

	assert.Empty(t, ui.surfaced)
	assert.Equal(t, ServiceModeStandalone, d.ServiceMode)
	assert.Equal(t, BackendWayland, d.Backend)
	assert.Equal(t, PresetPhosh, d.Preset)
	assert.True(t, d.Extras)
	// Every reported decision names its override source.
	assert.Contains(t, out.String(), EnvBackend)
	assert.Contains(t, out.String(), EnvPreset)
}

func TestResolveInvalidOverride(t *testing.T) {
	seq := New(&scriptedUI{}, envSystem{EnvBackend: "cocoa"}, &bytes.Buffer{})

	_, err := seq.Resolve(Decisions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cocoa")
	assert.Contains(t, err.Error(), EnvBackend)
}

func TestResolveKnownDecisionsAreNotRevisited(t *testing.T) {
	ui := &scriptedUI{}
	seq := New(ui, envSystem{}, &bytes.Buffer{})

	seeded := Decisions{
		ServiceMode:      ServiceModeStandalone,
		ServiceModeKnown: true,
		Backend:          BackendWayland,
		BackendKnown:     true,
		Preset:           PresetPlasmaMobile,
		PresetKnown:      true,
		Extras:           true,
		ExtrasKnown:      true,
	}

	d, err := seq.Resolve(seeded)
	require.NoError(t, err)
	assert.Equal(t, seeded, d)
	assert.Empty(t, ui.surfaced)
}

func TestResolveWithoutTerminalFails(t *testing.T) {
	seq := New(silentUI{}, envSystem{}, &bytes.Buffer{})

	_, err := seq.Resolve(Decisions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvServiceMode)
}

func TestNonInteractiveTakesDefaults(t *testing.T) {
	seq := NewNonInteractive(envSystem{}, &bytes.Buffer{})

	d, err := seq.Resolve(Decisions{})
	require.NoError(t, err)
	assert.Equal(t, ServiceModeStandalone, d.ServiceMode)
	assert.Equal(t, BackendX11, d.Backend)
	assert.False(t, d.Extras)
	assert.False(t, d.PresetKnown)
}

func TestNonInteractiveHonorsOverrides(t *testing.T) {
	seq := NewNonInteractive(envSystem{EnvBackend: "wayland"}, &bytes.Buffer{})

	d, err := seq.Resolve(Decisions{})
	require.NoError(t, err)
	assert.Equal(t, BackendWayland, d.Backend)
	// No preset override: the unattended default skips presets.
	assert.Equal(t, PresetNone, d.Preset)
	assert.True(t, d.PresetKnown)
}

func TestParseServiceMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    ServiceMode
		wantErr bool
	}{
		{raw: "", want: ServiceModeStandalone},
		{raw: "standalone-service", want: ServiceModeStandalone},
		{raw: "Standalone", want: ServiceModeStandalone},
		{raw: "yes", want: ServiceModeStandalone},
		{raw: "1", want: ServiceModeStandalone},
		{raw: "desktop-app", want: ServiceModeDesktop},
		{raw: "Desktop", want: ServiceModeDesktop},
		{raw: "no", want: ServiceModeDesktop},
		{raw: "0", want: ServiceModeDesktop},
		{raw: "kiosk", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseServiceMode(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw %q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		raw     string
		want    Backend
		wantErr bool
	}{
		{raw: "", want: BackendX11},
		{raw: "x11", want: BackendX11},
		{raw: "X", want: BackendX11},
		{raw: "wayland", want: BackendWayland},
		{raw: "W", want: BackendWayland},
		{raw: " Wayland ", want: BackendWayland},
		{raw: "cocoa", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseBackend(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw %q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestParseBool(t *testing.T) {
	for _, raw := range []string{"1", "y", "YES", "true"} {
		got, err := parseBool(raw, false, EnvExtras)
		require.NoError(t, err, "raw %q", raw)
		assert.True(t, got, "raw %q", raw)
	}
	for _, raw := range []string{"0", "n", "No", "FALSE"} {
		got, err := parseBool(raw, true, EnvExtras)
		require.NoError(t, err, "raw %q", raw)
		assert.False(t, got, "raw %q", raw)
	}

	got, err := parseBool("", true, EnvExtras)
	require.NoError(t, err)
	assert.True(t, got, "empty answer keeps the fallback")

	_, err = parseBool("maybe", false, EnvExtras)
	assert.Error(t, err)
}
