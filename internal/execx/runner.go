// Package execx runs the external commands the installer depends on:
// package managers, service control binaries and privileged writes.
package execx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/printstack-dev/stackctl/internal/messages"
)

// Runner executes external commands. Every invocation blocks until the
// command completes; failures carry the tool's exit status and stderr
// verbatim so operators see exactly what the underlying tool reported.
type Runner interface {
	// Run executes the command, streaming stdout to the user.
	Run(name string, args ...string) error
	// Output executes the command and returns its trimmed stdout.
	Output(name string, args ...string) (string, error)
	// RunInput executes the command with stdin fed from the given content.
	// Used for privileged writes via tee, which must stream directly rather
	// than go through a temp file (doas may tear the tmpdir down mid-rename).
	RunInput(stdin string, name string, args ...string) error
	// Succeeds reports whether the command exits zero, swallowing all output.
	// Used for status checks where a non-zero exit is an answer, not an error.
	Succeeds(name string, args ...string) bool
}

// Elevate prepends the privilege command to an argv when one was detected.
// With no privilege command the argv runs as-is, which is correct for a root
// shell and fails with the tool's own permission error otherwise.
func Elevate(privilege string, name string, args ...string) []string {
	if privilege == "" {
		return append([]string{name}, args...)
	}
	return append([]string{privilege, name}, args...)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Run executes the command, streaming stdout to the user.
func (ExecRunner) Run(name string, args ...string) error {
	logCommand(name, args)
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr
	return wrap(cmd.Run(), name, args, stderr.String())
}

// Output executes the command and returns its trimmed stdout.
func (ExecRunner) Output(name string, args ...string) (string, error) {
	logCommand(name, args)
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := wrap(cmd.Run(), name, args, stderr.String()); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunInput executes the command with stdin fed from content.
func (ExecRunner) RunInput(stdin string, name string, args ...string) error {
	logCommand(name, args)
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stderr = &stderr
	return wrap(cmd.Run(), name, args, stderr.String())
}

// Succeeds reports whether the command exits zero.
func (ExecRunner) Succeeds(name string, args ...string) bool {
	logCommand(name, args)
	cmd := exec.Command(name, args...)
	return cmd.Run() == nil
}

func logCommand(name string, args []string) {
	log.Debug().Str("cmd", shellquote.Join(append([]string{name}, args...)...)).Msg("exec")
}

// wrap attaches the rendered command line and captured stderr to a failure.
func wrap(err error, name string, args []string, stderr string) error {
	if err == nil {
		return nil
	}
	rendered := shellquote.Join(append([]string{name}, args...)...)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf(messages.RunnerCommandFailedFmt, rendered, exitErr.ProcessState.String(), strings.TrimSpace(stderr))
	}
	return fmt.Errorf(messages.RunnerStartFailedFmt, rendered, err)
}
