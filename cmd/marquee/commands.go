package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/discovery"
	"github.com/muurk/marquee/internal/input"
	"github.com/muurk/marquee/internal/launcher"
	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/nav"
	"github.com/muurk/marquee/internal/server"
	"github.com/muurk/marquee/internal/ui"
)

// checkCmd validates settings, library, launchers and the state graph
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate settings, library and launchers",
	Long: `Check that the cabinet can start.

Loads and validates the settings file, resolves every collection in the
library, looks up every launcher program in PATH and verifies that every
navigation state can still reach idle or quit.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	path := settingsPath
	if path == "" {
		path, _ = config.GetSettingsPath()
	}

	checks := ui.NewChecklist("Checking cabinet")
	settings, err := config.Load(settingsPath)
	if err != nil {
		checks.Fail("settings", err.Error())
		p.PrintHeader(ui.NewHeader("Configuration check", "marquee check", map[string]string{"Settings": path}))
		p.PrintChecklist(checks)
		p.PrintResult(ui.NewFailureResult("Settings are invalid", err, []string{
			"Run 'marquee init' to write a fresh settings file",
		}))
		return &exitError{code: exitFailure, err: errors.New("check failed")}
	}
	checks.Pass("settings", "")

	p.PrintHeader(ui.NewHeader("Configuration check", "marquee check", map[string]string{
		"Settings": path,
		"Library":  settings.Library.Path,
	}))

	if _, err := input.NewKeyMap(settings.Input.Bindings, settings.Input.Chords); err != nil {
		checks.Fail("key bindings", err.Error())
	} else if overlaps := settings.ChordOverlaps(input.DefaultBindings()); len(overlaps) > 0 {
		checks.Warn("key bindings", strings.Join(overlaps, "; "))
	} else {
		checks.Pass("key bindings", "")
	}

	lib, err := library.Load(settings.Library.Path)
	if err != nil {
		checks.Fail("library", err.Error())
	} else {
		errs := lib.Check()
		if _, ferr := lib.Resolve(settings.Navigation.FirstCollection); ferr != nil {
			checks.Fail("first collection", ferr.Error())
		} else {
			checks.Pass("first collection", settings.Navigation.FirstCollection)
		}
		if len(errs) > 0 {
			checks.Fail("library", errors.Join(errs...).Error())
		} else {
			checks.Pass("library", fmt.Sprintf("%d collections", len(lib.Names())))
		}
	}

	if _, err := library.OpenStats(settings.Library.StatsPath); err != nil {
		checks.Fail("statistics", err.Error())
	} else {
		checks.Pass("statistics", settings.Library.StatsPath)
	}

	for _, c := range launcher.CheckLaunchers(launcher.ConfigFromSettings(settings)) {
		name := "launcher " + c.Launcher
		if c.Err != nil {
			checks.Fail(name, c.Err.Error())
		} else {
			checks.Pass(name, c.Path)
		}
	}

	if stuck := stuckStates(); len(stuck) > 0 {
		names := make([]string, len(stuck))
		for i, s := range stuck {
			names[i] = s.String()
		}
		checks.Fail("state graph", "cannot reach idle or quit: "+strings.Join(names, ", "))
	} else {
		checks.Pass("state graph", fmt.Sprintf("%d states", len(nav.AllStates())))
	}

	switch {
	case !settings.Remote.Enabled:
		checks.Skip("remote", "disabled")
	case settings.Remote.CertFile != "":
		if _, err := server.NewTLSConfig(settings.Remote.CertFile, settings.Remote.KeyFile); err != nil {
			checks.Fail("remote", err.Error())
		} else {
			checks.Pass("remote", "TLS on "+settings.Remote.Addr)
		}
	default:
		checks.Pass("remote", settings.Remote.Addr)
	}

	p.PrintChecklist(checks)
	if checks.Failed() {
		p.PrintResult(ui.NewFailureResult("The cabinet will not start cleanly", nil, nil))
		return &exitError{code: exitFailure, err: errors.New("check failed")}
	}
	p.PrintResult(ui.NewSuccessResult("Ready", nil))
	return nil
}

// stuckStates explores the transition graph from Init.
func stuckStates() []nav.State {
	g := nav.Explore(nav.SampleContexts(), nav.SampleEvents())
	return g.Stuck(nav.StateInit, nav.StateIdle, nav.StateQuit)
}

// statesCmd prints the navigation state graph
var (
	statesDot bool
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Print the navigation state graph",
	Long: `Print every navigation state and the states that may follow it.

With --dot the graph is written in Graphviz format.`,
	Example: `  marquee states
  marquee states --dot | dot -Tsvg > states.svg`,
	Run: func(cmd *cobra.Command, args []string) {
		g := nav.Explore(nav.SampleContexts(), nav.SampleEvents())
		out := cmd.OutOrStdout()
		if statesDot {
			fmt.Fprintln(out, "digraph marquee {")
			for _, s := range nav.AllStates() {
				for _, next := range g.Successors(s) {
					fmt.Fprintf(out, "  %q -> %q;\n", s.String(), next.String())
				}
			}
			fmt.Fprintln(out, "}")
			return
		}
		for _, s := range nav.AllStates() {
			names := make([]string, 0, len(g[s]))
			for _, next := range g.Successors(s) {
				names = append(names, next.String())
			}
			fmt.Fprintf(out, "%-28s -> %s\n", s.String(), strings.Join(names, ", "))
		}
	},
}

func init() {
	statesCmd.Flags().BoolVar(&statesDot, "dot", false, "Write Graphviz output")
}

// cabinetsCmd discovers other cabinets on the network
var (
	scanTimeout int
	waitFor     string
)

var cabinetsCmd = &cobra.Command{
	Use:   "cabinets",
	Short: "Scan for cabinets on the network",
	Long: `Scan for marquee cabinets using mDNS/DNS-SD discovery.

Cabinets advertise themselves when remote.advertise is set. Each result
shows the websocket URL a remote client connects to.`,
	Example: `  # Scan for 5 seconds (default)
  marquee cabinets

  # Wait up to 30 seconds for one cabinet
  marquee cabinets --wait arcade --timeout 30`,
	RunE: runCabinets,
}

func init() {
	cabinetsCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
	cabinetsCmd.Flags().StringVar(&waitFor, "wait", "", "Wait for the named cabinet only")
}

func runCabinets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var cabinets []*discovery.Cabinet
	if waitFor != "" {
		c, err := scanner.WaitFor(ctx, waitFor)
		if err != nil {
			return err
		}
		cabinets = append(cabinets, c)
	} else {
		fmt.Fprintf(out, "Scanning for cabinets (timeout: %ds)...\n\n", scanTimeout)
		var err error
		cabinets, err = scanner.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	}

	if len(cabinets) == 0 {
		fmt.Fprintln(out, "No cabinets found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Ensure the cabinet runs with remote.enabled and remote.advertise set")
		fmt.Fprintln(out, "  - Check that both machines are on the same network segment")
		fmt.Fprintln(out, "  - Try increasing --timeout for slower networks")
		return nil
	}

	for i, c := range cabinets {
		fmt.Fprintf(out, "%d. %s\n", i+1, c.Name)
		fmt.Fprintf(out, "   Host:    %s\n", c.Hostname)
		fmt.Fprintf(out, "   URL:     %s\n", c.WebSocketURL())
		if v := c.GetMetadata("version"); v != "" {
			fmt.Fprintf(out, "   Version: %s\n", v)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// initCmd writes the default settings file
var (
	initForce bool
	initYes   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Long: `Write the default settings to the settings file.

An existing file is kept unless --force is given. --force asks for
confirmation first; --yes skips the question.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing settings file")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Do not ask for confirmation")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := settingsPath
	if path == "" {
		var err error
		if path, err = config.GetSettingsPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil {
		if !initForce {
			return fmt.Errorf("settings file already exists: %s (use --force to replace it)", path)
		}
		if !initYes && !ui.OverwriteConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), path) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove settings file: %w", err)
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	ui.NewPrinter(cmd.OutOrStdout()).PrintResult(ui.NewSuccessResult("Settings written", map[string]string{
		"Path":    path,
		"Version": strconv.Itoa(config.CurrentVersion),
	}))
	return nil
}
