package sequencer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/printstack-dev/stackctl/internal/messages"
)

// stateRelPath locates the decision record under the XDG state directory.
const stateRelPath = "stackctl/install-state.toml"

// StatePath returns the path the resolved decisions are persisted to, so
// later installer stages can read the backend choice without re-prompting.
func StatePath() (string, error) {
	return xdg.StateFile(stateRelPath)
}

// SaveState persists the resolved decisions as TOML at path.
func SaveState(path string, d Decisions) error {
	data, err := toml.Marshal(d)
	if err != nil {
		return fmt.Errorf(messages.SeqStateWriteFailedFmt, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.SeqStateWriteFailedFmt, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.SeqStateWriteFailedFmt, path, err)
	}
	return nil
}

// LoadState reads a previously persisted decision record. A missing file is
// not an error; it yields an empty record with every decision unknown.
func LoadState(path string) (Decisions, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Decisions{}, nil
	}
	if err != nil {
		return Decisions{}, fmt.Errorf(messages.SeqStateReadFailedFmt, path, err)
	}
	var d Decisions
	if err := toml.Unmarshal(data, &d); err != nil {
		return Decisions{}, fmt.Errorf(messages.SeqStateReadFailedFmt, path, err)
	}
	if d.ServiceMode != "" {
		d.ServiceModeKnown = true
	}
	if d.Backend != "" {
		d.BackendKnown = true
	}
	if d.Preset != "" {
		d.PresetKnown = true
	}
	return d, nil
}
