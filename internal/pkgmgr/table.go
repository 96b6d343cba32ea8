package pkgmgr

// Table maps Debian-ecosystem package names to their Alpine equivalents.
// Names without an entry translate to themselves; most identifiers are shared
// across ecosystems, so only the exceptions are listed. An entry with no
// targets means the package has no Alpine equivalent and is skipped with a
// warning. An entry with several targets means the Debian package was split.
type Table map[string][]string

// DefaultTable returns the built-in apt-to-apk translation table. Extending
// support for a new dependency means adding one entry here; call sites never
// change.
func DefaultTable() Table {
	return Table{
		"python3-virtualenv":     {"py3-virtualenv"},
		"python3-pip":            {"py3-pip"},
		"python3-setuptools":     {"py3-setuptools"},
		"python3-numpy":          {"py3-numpy"},
		"python3-matplotlib":     {"py3-matplotlib"},
		"libatlas-base-dev":      {"atlas-dev"},
		"libopenblas-dev":        {"openblas-dev"},
		"libyaml-dev":            {"yaml-dev"},
		"build-essential":        {"build-base"},
		"dpkg-dev":               {"dpkg"},
		"libgirepository1.0-dev": {"gobject-introspection-dev"},
		"libdbus-glib-1-dev":     {"dbus-glib-dev", "glib-dev"},
		"fonts-nanum":            {},
		"fonts-freefont-ttf":     {"font-freefont"},
	}
}

// Resolve translates the requested names through the table, dropping names
// with no target, expanding split packages and de-duplicating while keeping
// first-seen order. The second return value lists the dropped source names in
// request order.
func (t Table) Resolve(names []string) (resolved []string, dropped []string) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		targets, found := t[name]
		if !found {
			targets = []string{name}
		}
		if len(targets) == 0 {
			dropped = append(dropped, name)
			continue
		}
		for _, target := range targets {
			if seen[target] {
				continue
			}
			seen[target] = true
			resolved = append(resolved, target)
		}
	}
	return resolved, dropped
}
