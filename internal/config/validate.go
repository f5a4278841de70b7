package config

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a Settings value.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid settings: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid settings (%d problems):\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Validate checks the settings for values the controller cannot run with.
func (s Settings) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	a := s.Attract
	if a.MinScrollTime.Duration <= 0 {
		add("attract.min_scroll_time must be positive")
	}
	if a.MaxScrollTime.Duration < a.MinScrollTime.Duration {
		add("attract.max_scroll_time (%s) is shorter than attract.min_scroll_time (%s)",
			a.MaxScrollTime.Duration, a.MinScrollTime.Duration)
	}
	if a.LaunchChance < 0 || a.LaunchChance > 1 {
		add("attract.launch_chance must be between 0 and 1, got %v", a.LaunchChance)
	}
	if a.Launch && a.LaunchRunTime.Duration <= 0 {
		add("attract.launch_run_time must be positive when attract.launch is enabled")
	}

	if s.Navigation.FirstCollection == "" {
		add("navigation.first_collection is required")
	}

	if s.Input.MinActionDelay.Duration < 0 {
		add("input.min_action_delay must not be negative")
	}
	if s.Input.HoldTimeout.Duration <= 0 {
		add("input.hold_timeout must be positive")
	}
	for name, keys := range s.Input.Chords {
		if len(keys) != 2 {
			add("input.chords.%s must list exactly two keys, got %d", name, len(keys))
		}
	}

	if s.Launch.DefaultLauncher != "" {
		if _, ok := s.Launch.Launchers[s.Launch.DefaultLauncher]; !ok {
			add("launch.default_launcher %q is not defined in launch.launchers", s.Launch.DefaultLauncher)
		}
	}
	for name, l := range s.Launch.Launchers {
		if l.Command == "" {
			add("launch.launchers.%s.command is required", name)
		}
	}
	if s.Launch.SecondaryRedrawInterval.Duration <= 0 {
		add("launch.secondary_redraw_interval must be positive")
	}

	if s.Remote.Enabled && s.Remote.Addr == "" {
		add("remote.addr is required when remote.enabled is set")
	}
	if (s.Remote.CertFile == "") != (s.Remote.KeyFile == "") {
		add("remote.cert_file and remote.key_file must be set together")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ChordOverlaps reports chords whose first key is also a single-key binding
// for another action. Such a chord can only be told apart from the single
// key by timing, so the sampler delays the single key by input.chord_window.
// The result is meant for a startup warning, not a hard error.
func (s Settings) ChordOverlaps(defaults map[string][]string) []string {
	single := make(map[string]string)
	for action, keys := range defaults {
		for _, k := range keys {
			single[k] = action
		}
	}
	for action, keys := range s.Input.Bindings {
		for _, k := range keys {
			single[k] = action
		}
	}

	var overlaps []string
	for chord, keys := range s.Input.Chords {
		for _, k := range keys {
			if action, ok := single[k]; ok && action != chord {
				overlaps = append(overlaps, fmt.Sprintf("chord %s shares key %q with %s", chord, k, action))
			}
		}
	}
	return overlaps
}
