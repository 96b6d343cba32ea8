package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/printstack-dev/stackctl/internal/execx"
	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/service"
	"github.com/printstack-dev/stackctl/internal/sysenv"
	"github.com/printstack-dev/stackctl/internal/weblayout"
)

// siteTemplate is the nginx server block generated per dashboard. The
// dashboard's static files are served from /usr/share/<name> by convention.
var siteTemplate = template.Must(template.New("site").Parse(`server {
    listen {{.Port}};
    listen [::]:{{.Port}};

    server_name _;
    root /usr/share/{{.Name}};
    index index.html;

    gzip on;
    gzip_types text/css application/javascript application/json image/svg+xml;

    location / {
        try_files $uri $uri/ /index.html;
    }
}
`))

func newInstallDashboardCmd() *cobra.Command {
	var name string
	var port int

	cmd := &cobra.Command{
		Use:   messages.InstallDashboardUse,
		Short: messages.InstallDashboardShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstallDashboard(name, port, cmd.Flags().Changed("port"), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&name, "name", "dashboard", messages.DashboardFlagName)
	cmd.Flags().IntVar(&port, "port", 80, messages.DashboardFlagPort)
	return cmd
}

func runInstallDashboard(name string, port int, portExplicit bool, out io.Writer) error {
	sys := sysenv.RealSystem{}
	probe := sysenv.Detect(sys)
	runner := execx.ExecRunner{}

	resolver := weblayout.NewResolver(probe, sys, runner, out)
	if _, err := resolver.IncludeDir(); err != nil {
		return err
	}
	dirs, err := resolver.EnsureSitesDirs()
	if err != nil {
		return err
	}

	sitePath := filepath.Join(dirs.Available, name)
	port = effectivePort(resolver, sitePath, port, portExplicit)

	var content strings.Builder
	if err := siteTemplate.Execute(&content, struct {
		Name string
		Port int
	}{Name: name, Port: port}); err != nil {
		return err
	}
	if err := resolver.WriteSiteFile(sitePath, content.String()); err != nil {
		return err
	}

	link := execx.Elevate(probe.Privilege, "ln", "-sf", sitePath, filepath.Join(dirs.Enabled, name))
	if err := runner.Run(link[0], link[1:]...); err != nil {
		return err
	}

	// Only restart nginx when it was actually running; a stopped server on a
	// half-provisioned host is a state the user resolves, not an error.
	manager := service.NewManager(probe, sys, runner, out)
	if manager.IsRunning("nginx") {
		fmt.Fprintln(out, messages.InstallNginxRestart)
		if err := manager.Restart("nginx"); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, messages.InstallNginxNotUp)
	}

	fmt.Fprintf(out, messages.InstallDashboardOKFmt, name, port)
	return nil
}

// effectivePort keeps the port of an existing site file on a reinstall,
// unless one was chosen explicitly on the command line.
func effectivePort(resolver *weblayout.Resolver, sitePath string, port int, explicit bool) int {
	if explicit {
		return port
	}
	return resolver.PortOrDefault(sitePath, port)
}
