package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSpec() Spec {
	return Spec{
		Name:       "touchscreen-ui",
		Exec:       []string{"/home/pi/.env/bin/python", "/home/pi/touchscreen-ui/screen.py"},
		User:       "pi",
		WorkingDir: "/home/pi/touchscreen-ui",
		Environment: map[string]string{
			"XDG_SESSION_TYPE": "wayland",
			"GDK_BACKEND":      "wayland",
		},
		WantedAfter: "moonraker",
	}
}

func TestRenderUnit(t *testing.T) {
	content, err := renderUnit(sampleSpec())
	require.NoError(t, err)

	assert.Contains(t, content, "Description=touchscreen-ui")
	assert.Contains(t, content, "After=network-online.target moonraker.service")
	assert.Contains(t, content, "Wants=moonraker.service")
	assert.Contains(t, content, "User=pi")
	assert.Contains(t, content, "WorkingDirectory=/home/pi/touchscreen-ui")
	assert.Contains(t, content, "ExecStart=/home/pi/.env/bin/python /home/pi/touchscreen-ui/screen.py")
	assert.Contains(t, content, "WantedBy=multi-user.target")
	// Environment lines are key-sorted so re-rendering is byte-stable.
	assert.Less(t,
		strings.Index(content, "Environment=GDK_BACKEND=wayland"),
		strings.Index(content, "Environment=XDG_SESSION_TYPE=wayland"))
}

func TestRenderUnitMinimalSpec(t *testing.T) {
	content, err := renderUnit(Spec{Name: "camera-streamer", Exec: []string{"/usr/bin/camera-streamer"}})
	require.NoError(t, err)

	assert.Contains(t, content, "After=network-online.target\n")
	assert.NotContains(t, content, "Wants=")
	assert.NotContains(t, content, "User=")
	assert.NotContains(t, content, "WorkingDirectory=")
	assert.NotContains(t, content, "Environment=")
}

func TestRenderUnitIsDeterministic(t *testing.T) {
	first, err := renderUnit(sampleSpec())
	require.NoError(t, err)
	second, err := renderUnit(sampleSpec())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderInitScript(t *testing.T) {
	content, err := renderInitScript(sampleSpec())
	require.NoError(t, err)

	assert.Contains(t, content, "#!/sbin/openrc-run")
	assert.Contains(t, content, `name="touchscreen-ui"`)
	assert.Contains(t, content, "supervisor=supervise-daemon")
	assert.Contains(t, content, "command=/home/pi/.env/bin/python")
	assert.Contains(t, content, `command_user="pi"`)
	assert.Contains(t, content, `directory="/home/pi/touchscreen-ui"`)
	assert.Contains(t, content, "export GDK_BACKEND=wayland")
	assert.Contains(t, content, "need net")
	assert.Contains(t, content, "after moonraker")
}

func TestRenderQuotesArguments(t *testing.T) {
	spec := Spec{
		Name: "motion-daemon",
		Exec: []string{"/usr/bin/motiond", "-c", "/etc/motion dir/motion.cfg"},
	}

	unit, err := renderUnit(spec)
	require.NoError(t, err)
	assert.Contains(t, unit, `ExecStart=/usr/bin/motiond -c '/etc/motion dir/motion.cfg'`)

	script, err := renderInitScript(spec)
	require.NoError(t, err)
	assert.Contains(t, script, "command=/usr/bin/motiond")
	assert.Contains(t, script, "command_args=")
}

func TestSpecValidate(t *testing.T) {
	assert.ErrorIs(t, Spec{Exec: []string{"/bin/true"}}.validate(), errNameRequired)
	assert.ErrorIs(t, Spec{Name: "x"}.validate(), errExecRequired)
	assert.NoError(t, Spec{Name: "x", Exec: []string{"/bin/true"}}.validate())
}
