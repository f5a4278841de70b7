// Marquee is a terminal front-end for arcade cabinets and game launchers.
//
// It shows collections of games as navigable menus, launches the selected
// game as an external program, and scrolls through the library on its own
// when the cabinet sits idle. A websocket server lets a phone or a second
// screen act as remote control and marquee display.
//
// Usage:
//
//	marquee [command] [flags]
//
// Running without a command starts the front-end.
// See 'marquee --help' for available commands.
//
// Exit codes: 0 normal exit, 1 configuration or library failure, 2 reboot
// requested by a launched program.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/logging"
	"github.com/muurk/marquee/internal/version"
)

const (
	exitFailure = 1
	exitReboot  = 2
)

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// errReboot is returned by run when a launched program asked for a reboot.
var errReboot = &exitError{code: exitReboot}

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err == nil {
		return
	}

	code := exitFailure
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	if code != exitReboot {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

// Global flags
var (
	settingsPath string
	logLevel     string
	logFile      string
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Arcade cabinet front-end",
	Long: `A terminal front-end for arcade cabinets and game launchers.

Browse collections and playlists, launch games with configurable
launchers, and let attract mode show off the library when nobody is
playing. Remote clients connect over websocket.

If no command is specified, the front-end starts.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeWithOptions(logging.Options{Level: logLevel, File: logFile})
	},
	RunE: runCabinet,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Settings file (default: $XDG_CONFIG_HOME/marquee/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(cabinetsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings loads the settings file and applies the log settings when
// no flag overrides them.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(settingsPath)
	if err != nil {
		return config.Settings{}, &exitError{code: exitFailure, err: err}
	}
	if logLevel == "" && settings.Log.Level != "" {
		file := logFile
		if file == "" {
			file = settings.Log.File
		}
		if err := logging.InitializeWithOptions(logging.Options{Level: settings.Log.Level, File: file}); err != nil {
			return config.Settings{}, &exitError{code: exitFailure, err: err}
		}
	}
	return settings, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "marquee %s\n", version.Full())
	},
}
