// Package logging configures the process-wide zerolog logger: a console
// sink on stderr gated by verbosity, plus a best-effort debug log file under
// the XDG state directory for post-mortem reading of failed installs.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFileRelPath = "stackctl/stackctl.log"

// Setup configures the global logger for the given verbosity: 0 warnings
// only, 1 info, 2+ debug.
func Setup(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{console}
	logFile, err := openLogFile()
	if err == nil {
		writers = append(writers, logFile)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if err != nil {
		log.Debug().Err(err).Msg("log file unavailable, logging to console only")
	}
}

func openLogFile() (io.Writer, error) {
	path, err := xdg.StateFile(logFileRelPath)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
