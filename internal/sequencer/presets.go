package sequencer

import (
	"fmt"
	"sort"

	"github.com/printstack-dev/stackctl/internal/messages"
)

// Preset names a Wayland mobile shell whose session environment the
// touchscreen service must reproduce to come up on the right display.
type Preset string

const (
	PresetPhosh        Preset = "Phosh"
	PresetPlasmaMobile Preset = "PlasmaMobile"
	PresetSxmo         Preset = "Sxmo"
	// PresetNone skips preset-specific environment entirely.
	PresetNone Preset = "none"
)

// presetEnvironments carries the environment each mobile shell expects.
// Sxmo targets wlroots-based sessions on handsets and needs the wayland-egl
// Qt platform; the others use the stock wayland platforms.
var presetEnvironments = map[Preset]map[string]string{
	PresetPhosh: {
		"XDG_SESSION_TYPE":                    "wayland",
		"WAYLAND_DISPLAY":                     "wayland-0",
		"QT_QPA_PLATFORM":                     "wayland",
		"QT_WAYLAND_DISABLE_WINDOWDECORATION": "1",
		"GDK_BACKEND":                         "wayland",
		"SDL_VIDEODRIVER":                     "wayland",
		"MOZ_ENABLE_WAYLAND":                  "1",
		"CLUTTER_BACKEND":                     "wayland",
	},
	PresetPlasmaMobile: {
		"XDG_SESSION_TYPE":                    "wayland",
		"QT_QPA_PLATFORM":                     "wayland",
		"QT_WAYLAND_DISABLE_WINDOWDECORATION": "1",
		"GDK_BACKEND":                         "wayland",
		"SDL_VIDEODRIVER":                     "wayland",
		"MOZ_ENABLE_WAYLAND":                  "1",
	},
	PresetSxmo: {
		"XDG_SESSION_TYPE":                    "wayland",
		"WAYLAND_DISPLAY":                     "wayland-0",
		"QT_QPA_PLATFORM":                     "wayland-egl",
		"QT_WAYLAND_DISABLE_WINDOWDECORATION": "1",
		"GDK_BACKEND":                         "wayland,x11",
		"SDL_VIDEODRIVER":                     "wayland",
		"MOZ_ENABLE_WAYLAND":                  "1",
		"CLUTTER_BACKEND":                     "wayland",
	},
}

// Environment returns a copy of the environment the preset injects into the
// rendered service. Empty for PresetNone and unknown presets.
func (p Preset) Environment() map[string]string {
	env := make(map[string]string, len(presetEnvironments[p]))
	for key, value := range presetEnvironments[p] {
		env[key] = value
	}
	return env
}

func presetNames() []string {
	names := make([]string, 0, len(presetEnvironments))
	for preset := range presetEnvironments {
		names = append(names, string(preset))
	}
	sort.Strings(names)
	return names
}

func parsePreset(raw string) (Preset, error) {
	switch normalize(raw) {
	case "", "none", "skip", "0":
		return PresetNone, nil
	case "phosh":
		return PresetPhosh, nil
	case "plasmamobile", "plasma-mobile":
		return PresetPlasmaMobile, nil
	case "sxmo":
		return PresetSxmo, nil
	}
	return "", fmt.Errorf(messages.SeqInvalidAnswerFmt, raw, EnvPreset, "Phosh, PlasmaMobile, Sxmo, none")
}
