package service

import (
	"errors"
	"sort"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/printstack-dev/stackctl/internal/messages"
)

var (
	errNameRequired = errors.New(messages.ServiceSpecNameRequired)
	errExecRequired = errors.New(messages.ServiceSpecExecRequired)
)

// Spec describes a long-running daemon independently of the init system that
// will supervise it. Specs are never mutated after creation; a reinstall
// re-renders the whole definition from a fresh Spec.
type Spec struct {
	// Name is the service name, without a .service suffix.
	Name string
	// Exec is the argv of the daemon.
	Exec []string
	// User the daemon runs as.
	User string
	// WorkingDir is the daemon working directory; a leading ~ is expanded.
	WorkingDir string
	// Environment is rendered as Environment= lines or exports.
	Environment map[string]string
	// WantedAfter names a service this one orders itself after, if any.
	WantedAfter string
}

type envPair struct {
	Key, Value string
}

func (s Spec) validate() error {
	if s.Name == "" {
		return errNameRequired
	}
	if len(s.Exec) == 0 {
		return errExecRequired
	}
	return nil
}

// sortedEnv returns the environment as deterministic key-ordered pairs so
// re-rendering an unchanged spec produces byte-identical output.
func (s Spec) sortedEnv() []envPair {
	keys := make([]string, 0, len(s.Environment))
	for key := range s.Environment {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]envPair, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, envPair{Key: key, Value: s.Environment[key]})
	}
	return pairs
}

// expandWorkingDir resolves a leading ~ against the current user's home.
func (s Spec) expandWorkingDir() (string, error) {
	if s.WorkingDir == "" {
		return "", nil
	}
	return homedir.Expand(s.WorkingDir)
}
