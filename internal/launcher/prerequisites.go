package launcher

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Check is the result of checking one launcher.
type Check struct {
	Launcher string
	Command  string
	Path     string
	Err      error
}

// CheckLaunchers looks up every launcher's program. Commands containing
// template actions are resolved with placeholder values.
func CheckLaunchers(cfg Config) []Check {
	names := make([]string, 0, len(cfg.Launchers))
	for name := range cfg.Launchers {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make([]Check, 0, len(names))
	for _, name := range names {
		ls := cfg.Launchers[name]
		c := Check{Launcher: name, Command: ls.Command}
		argv, err := render(name, ls, Params{Item: "item", File: "item", Collection: "collection", Launcher: name})
		if err != nil {
			c.Err = err
			checks = append(checks, c)
			continue
		}
		path, err := exec.LookPath(argv[0])
		if err != nil {
			c.Err = &PrerequisiteError{Launcher: name, Command: argv[0], Err: err}
		}
		c.Path = path
		checks = append(checks, c)
	}
	if cfg.DefaultLauncher != "" {
		if _, ok := cfg.Launchers[cfg.DefaultLauncher]; !ok {
			checks = append(checks, Check{
				Launcher: cfg.DefaultLauncher,
				Err:      &NotFoundError{Launcher: cfg.DefaultLauncher, Item: "default"},
			})
		}
	}
	return checks
}

// FormatChecks formats check results for display.
func FormatChecks(checks []Check) string {
	if len(checks) == 0 {
		return "No launchers configured.\n"
	}
	var b strings.Builder
	for _, c := range checks {
		if c.Err != nil {
			fmt.Fprintf(&b, "✗ %s: %v\n", c.Launcher, c.Err)
			continue
		}
		fmt.Fprintf(&b, "✓ %s: %s\n", c.Launcher, c.Path)
	}
	return b.String()
}
