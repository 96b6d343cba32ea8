// Package weblayout discovers where nginx expects configuration drop-ins on
// the current host and provisions the Debian-style site directories when
// they are missing, so dashboards install the same way on both families.
package weblayout

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/printstack-dev/stackctl/internal/execx"
	"github.com/printstack-dev/stackctl/internal/messages"
	"github.com/printstack-dev/stackctl/internal/sysenv"
)

const (
	nginxConf     = "/etc/nginx/nginx.conf"
	confDDir      = "/etc/nginx/conf.d"
	httpDDir      = "/etc/nginx/http.d"
	sitesAvailDir = "/etc/nginx/sites-available"
	sitesEnabDir  = "/etc/nginx/sites-enabled"

	// sitesIncludeFile is the single generated drop-in that makes nginx load
	// the enabled-sites directory. Written once, preserved across reinstalls.
	sitesIncludeFile = "stackctl-sites.conf"
)

var listenRe = regexp.MustCompile(`(?m)^\s*listen\s+(?:\[::\]:)?(\d+)`)

// SiteDirs is the pair of conventional site directories.
type SiteDirs struct {
	Available string
	Enabled   string
}

// Resolver probes the nginx layout of the host. Probe results are cached for
// the lifetime of one installer invocation only.
type Resolver struct {
	probe  sysenv.Probe
	sys    sysenv.System
	runner execx.Runner
	out    io.Writer

	includeDir string
}

// NewResolver creates a Resolver for the probed environment.
func NewResolver(probe sysenv.Probe, sys sysenv.System, runner execx.Runner, out io.Writer) *Resolver {
	return &Resolver{probe: probe, sys: sys, runner: runner, out: out}
}

// IncludeDir returns the directory nginx loads extra configuration from,
// conf.d on Debian-family hosts or http.d on Alpine-family ones. The loaded
// configuration wins when it references exactly one of the two; when it
// references neither, the ecosystem-conventional directory is chosen rather
// than guessing from directory contents. A missing directory is created so
// first-boot systems without any nginx state still succeed.
func (r *Resolver) IncludeDir() (string, error) {
	if r.includeDir != "" {
		return r.includeDir, nil
	}

	dir := r.referencedIncludeDir()
	if dir == "" {
		dir = r.conventionalIncludeDir()
	}
	if err := r.ensureDir(dir); err != nil {
		return "", err
	}
	r.includeDir = dir
	return dir, nil
}

// EnsureSitesDirs creates the sites-available and sites-enabled directories
// when missing and wires sites-enabled into the include directory through a
// single guarded drop-in. Safe to call on every installer run.
func (r *Resolver) EnsureSitesDirs() (SiteDirs, error) {
	dirs := SiteDirs{Available: sitesAvailDir, Enabled: sitesEnabDir}
	for _, dir := range []string{dirs.Available, dirs.Enabled} {
		if err := r.ensureDir(dir); err != nil {
			return SiteDirs{}, err
		}
	}

	if r.hasSitesInclude() {
		return dirs, nil
	}

	includeDir, err := r.IncludeDir()
	if err != nil {
		return SiteDirs{}, err
	}
	dropIn := filepath.Join(includeDir, sitesIncludeFile)
	content := fmt.Sprintf("include %s/*;\n", sitesEnabDir)

	fmt.Fprintf(r.out, messages.LayoutIncludeStatusFmt+"\n", sitesEnabDir, sitesIncludeFile)
	tee := r.elevate("tee", dropIn)
	if err := r.runner.RunInput(content, tee[0], tee[1:]...); err != nil {
		return SiteDirs{}, fmt.Errorf(messages.LayoutIncludeFailedFmt, dropIn, err)
	}
	color.New(color.FgGreen).Fprintf(r.out, messages.LayoutIncludeOKFmt+"\n", sitesEnabDir, sitesIncludeFile)
	return dirs, nil
}

// WriteSiteFile streams content into the privileged destination through the
// elevation command. No temp file and rename: an alternate elevation tool may
// tear down the process tmpdir before a rename completes.
func (r *Resolver) WriteSiteFile(path string, content string) error {
	fmt.Fprintf(r.out, messages.LayoutSiteWriteStatusFmt+"\n", path)
	tee := r.elevate("tee", path)
	if err := r.runner.RunInput(content, tee[0], tee[1:]...); err != nil {
		return fmt.Errorf(messages.LayoutSiteWriteFailedFmt, path, err)
	}
	color.New(color.FgGreen).Fprintf(r.out, messages.LayoutSiteWriteOKFmt+"\n", path)
	return nil
}

// PortOrDefault parses the listening port out of the first site file matching
// the glob. A missing or unparsable file yields the fallback, never an error,
// so configuration menus stay navigable on half-provisioned hosts.
func (r *Resolver) PortOrDefault(siteFileGlob string, fallback int) int {
	matches, err := r.sys.Glob(siteFileGlob)
	if err != nil || len(matches) == 0 {
		return fallback
	}
	sort.Strings(matches)
	for _, match := range matches {
		content, err := r.sys.ReadFile(match)
		if err != nil {
			continue
		}
		if groups := listenRe.FindSubmatch(content); groups != nil {
			if port, err := strconv.Atoi(string(groups[1])); err == nil {
				return port
			}
		}
	}
	return fallback
}

// referencedIncludeDir inspects the loaded nginx configuration for an include
// directive naming one of the two well-known directories. Empty when the
// configuration is unreadable or references neither.
func (r *Resolver) referencedIncludeDir() string {
	content, err := r.sys.ReadFile(nginxConf)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "include ") {
			continue
		}
		if strings.Contains(line, confDDir) && r.dirExists(confDDir) {
			return confDDir
		}
		if strings.Contains(line, httpDDir) && r.dirExists(httpDDir) {
			return httpDDir
		}
	}
	return ""
}

func (r *Resolver) conventionalIncludeDir() string {
	if r.probe.PackageManager == sysenv.PackageManagerApk {
		return httpDDir
	}
	return confDDir
}

// hasSitesInclude reports whether the loaded configuration already includes
// sites-enabled, either directly or through an existing drop-in. The guard
// keeps repeated installer runs from duplicating the include line.
func (r *Resolver) hasSitesInclude() bool {
	candidates := []string{nginxConf}
	for _, dir := range []string{confDDir, httpDDir} {
		if matches, err := r.sys.Glob(filepath.Join(dir, "*.conf")); err == nil {
			sort.Strings(matches)
			candidates = append(candidates, matches...)
		}
	}
	for _, candidate := range candidates {
		content, err := r.sys.ReadFile(candidate)
		if err != nil {
			continue
		}
		if strings.Contains(string(content), "include "+sitesEnabDir+"/") {
			return true
		}
	}
	return false
}

func (r *Resolver) ensureDir(dir string) error {
	if r.dirExists(dir) {
		return nil
	}
	fmt.Fprintf(r.out, messages.LayoutCreateDirStatusFmt+"\n", dir)
	cmd := r.elevate("install", "-d", "-m", "755", dir)
	if err := r.runner.Run(cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf(messages.LayoutCreateDirFailedFmt, dir, err)
	}
	color.New(color.FgGreen).Fprintf(r.out, messages.LayoutCreateDirOKFmt+"\n", dir)
	return nil
}

func (r *Resolver) dirExists(dir string) bool {
	info, err := r.sys.Stat(dir)
	return err == nil && info.IsDir()
}

func (r *Resolver) elevate(name string, args ...string) []string {
	return execx.Elevate(r.probe.Privilege, name, args...)
}
