package pkgmgr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printstack-dev/stackctl/internal/sysenv"
)

// recordingRunner records every invocation and fails those listed in fail.
type recordingRunner struct {
	calls [][]string
	fail  map[string]error
}

func (r *recordingRunner) record(name string, args []string) error {
	argv := append([]string{name}, args...)
	r.calls = append(r.calls, argv)
	if err, ok := r.fail[strings.Join(argv, " ")]; ok {
		return err
	}
	return nil
}

func (r *recordingRunner) Run(name string, args ...string) error { return r.record(name, args) }

func (r *recordingRunner) Output(name string, args ...string) (string, error) {
	return "", r.record(name, args)
}

func (r *recordingRunner) RunInput(stdin string, name string, args ...string) error {
	return r.record(name, args)
}

func (r *recordingRunner) Succeeds(name string, args ...string) bool {
	return r.record(name, args) == nil
}

func aptProbe() sysenv.Probe {
	return sysenv.Probe{PackageManager: sysenv.PackageManagerApt, Privilege: "sudo", InitSystem: sysenv.InitSystemd}
}

func apkProbe() sysenv.Probe {
	return sysenv.Probe{PackageManager: sysenv.PackageManagerApk, Privilege: "doas", InitSystem: sysenv.InitOpenRC}
}

func TestInstallEmptyRequestIsNoOp(t *testing.T) {
	runner := &recordingRunner{}
	adapter := NewAdapter(aptProbe(), runner, DefaultTable(), &bytes.Buffer{})

	require.NoError(t, adapter.Install())
	assert.Empty(t, runner.calls)
}

func TestInstallAptPassesNamesThrough(t *testing.T) {
	runner := &recordingRunner{}
	adapter := NewAdapter(aptProbe(), runner, DefaultTable(), &bytes.Buffer{})

	require.NoError(t, adapter.Install("libgirepository1.0-dev", "git", "git"))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"sudo", "apt-get", "install", "-y", "libgirepository1.0-dev", "git"}, runner.calls[0])
}

func TestInstallApkTranslatesAndWarns(t *testing.T) {
	table := Table{
		"libgirepository1.0-dev": {"gobject-introspection-dev"},
		"fonts-nanum":            {},
	}
	runner := &recordingRunner{}
	var out bytes.Buffer
	adapter := NewAdapter(apkProbe(), runner, table, &out)

	require.NoError(t, adapter.Install("libgirepository1.0-dev", "fonts-nanum", "git"))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"doas", "apk", "add", "--no-cache", "gobject-introspection-dev", "git"}, runner.calls[0])
	assert.Equal(t, 1, strings.Count(out.String(), "fonts-nanum"))
}

func TestInstallAllUnavailableSkipsInstaller(t *testing.T) {
	table := Table{"fonts-nanum": {}}
	runner := &recordingRunner{}
	var out bytes.Buffer
	adapter := NewAdapter(apkProbe(), runner, table, &out)

	require.NoError(t, adapter.Install("fonts-nanum"))

	assert.Empty(t, runner.calls)
	assert.Contains(t, out.String(), "fonts-nanum")
	assert.Contains(t, out.String(), "Nothing to install")
}

func TestInstallUnknownManagerFailsFast(t *testing.T) {
	runner := &recordingRunner{}
	probe := sysenv.Probe{PackageManager: sysenv.PackageManagerUnknown}
	adapter := NewAdapter(probe, runner, DefaultTable(), &bytes.Buffer{})

	err := adapter.Install("git")
	assert.ErrorIs(t, err, ErrUnsupportedPackageManager)
	assert.Empty(t, runner.calls)
}

func TestInstallFailureNamesOriginalRequest(t *testing.T) {
	runner := &recordingRunner{fail: map[string]error{
		"doas apk add --no-cache gobject-introspection-dev": errors.New("mirror unreachable"),
	}}
	table := Table{"libgirepository1.0-dev": {"gobject-introspection-dev"}}
	adapter := NewAdapter(apkProbe(), runner, table, &bytes.Buffer{})

	err := adapter.Install("libgirepository1.0-dev")
	require.Error(t, err)
	// Failure correlates back to the untranslated request.
	assert.Contains(t, err.Error(), "libgirepository1.0-dev")
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name  string
		probe sysenv.Probe
		want  []string
	}{
		{name: "apt", probe: aptProbe(), want: []string{"sudo", "apt-get", "update"}},
		{name: "apk", probe: apkProbe(), want: []string{"doas", "apk", "update"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			adapter := NewAdapter(tt.probe, runner, DefaultTable(), &bytes.Buffer{})
			require.NoError(t, adapter.Update())
			require.Len(t, runner.calls, 1)
			assert.Equal(t, tt.want, runner.calls[0])
		})
	}
}

func TestUpdateUnknownManager(t *testing.T) {
	adapter := NewAdapter(sysenv.Probe{PackageManager: sysenv.PackageManagerUnknown}, &recordingRunner{}, DefaultTable(), &bytes.Buffer{})
	assert.ErrorIs(t, adapter.Update(), ErrUnsupportedPackageManager)
}

func TestUpdateSurfacesFailure(t *testing.T) {
	runner := &recordingRunner{fail: map[string]error{
		"sudo apt-get update": errors.New("mirror sync failed"),
	}}
	adapter := NewAdapter(aptProbe(), runner, DefaultTable(), &bytes.Buffer{})

	err := adapter.Update()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mirror sync failed")
	// No retry: exactly one invocation.
	assert.Len(t, runner.calls, 1)
}
