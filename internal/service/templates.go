package service

import (
	"strings"
	"text/template"

	"github.com/kballard/go-shellquote"
)

// unitTemplate renders a systemd unit for a supervised daemon. The key set is
// fixed: user, start command, working directory, environment lines and one
// optional ordering dependency.
var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description={{.Name}}
After=network-online.target{{if .WantedAfter}} {{.WantedAfter}}.service{{end}}
{{- if .WantedAfter}}
Wants={{.WantedAfter}}.service
{{- end}}

[Service]
Type=simple
{{- if .User}}
User={{.User}}
{{- end}}
{{- if .WorkingDir}}
WorkingDirectory={{.WorkingDir}}
{{- end}}
{{- range .Env}}
Environment={{.Key}}={{.Value}}
{{- end}}
ExecStart={{.ExecLine}}
Restart=always
RestartSec=10

[Install]
WantedBy=multi-user.target
`))

// initScriptTemplate renders an OpenRC service script with semantics
// equivalent to the systemd unit: same user, environment, working directory
// and ordering dependency, supervised so crashes restart the daemon.
var initScriptTemplate = template.Must(template.New("initscript").Parse(`#!/sbin/openrc-run

name="{{.Name}}"
description="{{.Name}}"
supervisor=supervise-daemon
command={{.Command}}
{{- if .CommandArgs}}
command_args={{.CommandArgs}}
{{- end}}
{{- if .User}}
command_user="{{.User}}"
{{- end}}
{{- if .WorkingDir}}
directory="{{.WorkingDir}}"
{{- end}}
respawn_delay=10
{{- range .Exports}}
export {{.Key}}={{.Value}}
{{- end}}

depend() {
	need net
{{- if .WantedAfter}}
	after {{.WantedAfter}}
{{- end}}
}
`))

type renderContext struct {
	Name        string
	User        string
	WorkingDir  string
	WantedAfter string
	Env         []envPair
	// Exports carries the same pairs with shell-quoted values for the
	// OpenRC script.
	Exports     []envPair
	ExecLine    string
	Command     string
	CommandArgs string
}

func newRenderContext(spec Spec) (renderContext, error) {
	workingDir, err := spec.expandWorkingDir()
	if err != nil {
		return renderContext{}, err
	}
	ctx := renderContext{
		Name:        spec.Name,
		User:        spec.User,
		WorkingDir:  workingDir,
		WantedAfter: spec.WantedAfter,
		Env:         spec.sortedEnv(),
		ExecLine:    shellquote.Join(spec.Exec...),
		Command:     shellquote.Join(spec.Exec[0]),
	}
	for _, pair := range ctx.Env {
		ctx.Exports = append(ctx.Exports, envPair{Key: pair.Key, Value: shellquote.Join(pair.Value)})
	}
	if len(spec.Exec) > 1 {
		ctx.CommandArgs = shellquote.Join(shellquote.Join(spec.Exec[1:]...))
	}
	return ctx, nil
}

func renderUnit(spec Spec) (string, error) {
	return render(unitTemplate, spec)
}

func renderInitScript(spec Spec) (string, error) {
	return render(initScriptTemplate, spec)
}

func render(tmpl *template.Template, spec Spec) (string, error) {
	ctx, err := newRenderContext(spec)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
