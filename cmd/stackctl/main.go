package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/printstack-dev/stackctl/internal/sequencer"
)

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// runMain executes the CLI, exiting non-zero on failure. A cancelled prompt
// exits cleanly: the user chose to stop, nothing failed.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := execute(args, stdout, stderr); err != nil {
		if errors.Is(err, sequencer.ErrCancelled) {
			fmt.Fprintln(stdout, err)
			exit(0)
			return
		}
		exit(1)
		return
	}
	exit(0)
}

func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = versionString()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func versionString() string {
	if Commit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
