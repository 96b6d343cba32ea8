package sequencer

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/printstack-dev/stackctl/internal/terminal"
)

// ErrCancelled reports that the user aborted a prompt. Callers treat it as
// "exit without changes", not as a failure.
var ErrCancelled = errors.New("installation cancelled")

// UI defines the interaction methods the sequencer needs. Tests substitute a
// scripted fake; production code uses HuhUI.
type UI interface {
	// Interactive reports whether prompting is possible at all.
	Interactive() bool
	// Select renders a single-choice prompt. description carries optional help
	// text; current holds the default and receives the answer.
	Select(title string, description string, options []string, current *string) error
	// Confirm renders a yes/no prompt. value holds the default and receives
	// the answer.
	Confirm(title string, value *bool) error
}

// silentUI is the UI of a non-interactive run: it never prompts, so the
// sequencer falls back to overrides and defaults.
type silentUI struct{}

func (silentUI) Interactive() bool { return false }

func (silentUI) Select(string, string, []string, *string) error { return ErrCancelled }

func (silentUI) Confirm(string, *bool) error { return ErrCancelled }

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// Interactive reports whether stdin and stdout are terminals.
func (ui *HuhUI) Interactive() bool {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	return checker()
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// runForm runs a single-field form, rendering to stderr so prompt output
// never mixes with pipeable stdout.
func (ui *HuhUI) runForm(form *huh.Form) error {
	form.WithProgramOptions(tea.WithOutput(os.Stderr))
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, description string, options []string, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(opts...).
				Value(current),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	))
}
