package launcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/library"
)

// writeScript creates an executable shell script in dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to create script: %v", err)
	}
	return path
}

type playRecord struct {
	collection, item string
	played           time.Duration
}

type mockRecorder struct {
	plays []playRecord
}

func (m *mockRecorder) RecordPlay(collection, item string, started time.Time, played time.Duration) error {
	m.plays = append(m.plays, playRecord{collection, item, played})
	return nil
}

type mockSuspender struct {
	calls []string
}

func (m *mockSuspender) Suspend() error { m.calls = append(m.calls, "suspend"); return nil }
func (m *mockSuspender) Resume() error  { m.calls = append(m.calls, "resume"); return nil }

func game(name, launcher string) *library.Item {
	return &library.Item{Name: name, Launcher: launcher}
}

func TestConfigFromSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.Launch.DefaultLauncher = "mame"
	s.Launch.Timeout = config.Duration{Duration: time.Hour}

	cfg := ConfigFromSettings(s)
	if cfg.DefaultLauncher != "mame" || cfg.Timeout != time.Hour {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.AttractRunTime != 30*time.Second {
		t.Errorf("AttractRunTime = %v, want the attract launch_run_time", cfg.AttractRunTime)
	}
}

func TestExecutor_Run_RendersArguments(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := writeScript(t, dir, "emu", `echo "$@" > "$1"
echo "$MARQUEE_COLLECTION $MARQUEE_ITEM" >> "$1"
`)

	cfg := Config{Launchers: map[string]config.LauncherSettings{
		"emu": {Command: script, Args: []string{out, "{{.Collection}}", "{{.File}}", "{{.Title}}"}},
	}}
	e := NewExecutor(cfg, zap.NewNop())

	item := &library.Item{Name: "pacman", Title: "Pac-Man", File: "pacman.zip", Launcher: "emu"}
	reboot, err := e.Run(context.Background(), "Arcade", item, nil, false)
	if err != nil || reboot {
		t.Fatalf("Run() = %v, %v", reboot, err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := out + " Arcade pacman.zip Pac-Man\nArcade pacman\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestExecutor_Run_DefaultLauncher(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		DefaultLauncher: "ok",
		Launchers: map[string]config.LauncherSettings{
			"ok": {Command: writeScript(t, dir, "ok", "exit 0\n")},
		},
	}
	e := NewExecutor(cfg, zap.NewNop())
	if _, err := e.Run(context.Background(), "Main", game("tetris", ""), nil, false); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestExecutor_Run_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Launchers: map[string]config.LauncherSettings{
		"fail":     {Command: writeScript(t, dir, "fail", "echo broken >&2\nexit 3\n")},
		"badtmpl":  {Command: "true", Args: []string{"{{.Nope}}"}},
		"empty":    {Command: " "},
		"missing":  {Command: filepath.Join(dir, "does-not-exist")},
		"rebooter": {Command: writeScript(t, dir, "reboot", "exit 42\n"), RebootExitCode: 42},
	}}

	tests := []struct {
		name     string
		item     *library.Item
		check    func(t *testing.T, err error)
		rebootOK bool
	}{
		{
			name: "non-zero exit",
			item: game("pacman", "fail"),
			check: func(t *testing.T, err error) {
				var execErr *ExecutionError
				if !errors.As(err, &execErr) {
					t.Fatalf("expected ExecutionError, got %T: %v", err, err)
				}
				if execErr.ExitCode != 3 {
					t.Errorf("exit code = %d, want 3", execErr.ExitCode)
				}
				if !strings.Contains(execErr.Stderr, "broken") {
					t.Errorf("stderr = %q", execErr.Stderr)
				}
			},
		},
		{
			name: "unknown launcher",
			item: game("pacman", "nope"),
			check: func(t *testing.T, err error) {
				var nf *NotFoundError
				if !errors.As(err, &nf) || nf.Launcher != "nope" {
					t.Errorf("expected NotFoundError for nope, got %v", err)
				}
			},
		},
		{
			name: "bad template",
			item: game("pacman", "badtmpl"),
			check: func(t *testing.T, err error) {
				var te *TemplateError
				if !errors.As(err, &te) {
					t.Errorf("expected TemplateError, got %T: %v", err, err)
				}
			},
		},
		{
			name: "empty command",
			item: game("pacman", "empty"),
			check: func(t *testing.T, err error) {
				var te *TemplateError
				if !errors.As(err, &te) {
					t.Errorf("expected TemplateError, got %T: %v", err, err)
				}
			},
		},
		{
			name: "program missing",
			item: game("pacman", "missing"),
			check: func(t *testing.T, err error) {
				var execErr *ExecutionError
				if !errors.As(err, &execErr) || execErr.ExitCode != -1 {
					t.Errorf("expected ExecutionError with exit -1, got %v", err)
				}
			},
		},
		{
			name:     "reboot code",
			item:     game("pacman", "rebooter"),
			rebootOK: true,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("reboot exit should not be an error, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &mockRecorder{}
			e := NewExecutor(cfg, zap.NewNop(), WithStats(rec))
			reboot, err := e.Run(context.Background(), "Arcade", tt.item, nil, false)
			if reboot != tt.rebootOK {
				t.Errorf("reboot = %v, want %v", reboot, tt.rebootOK)
			}
			tt.check(t, err)
		})
	}

	if _, err := NewExecutor(cfg, zap.NewNop()).Run(context.Background(), "Arcade", nil, nil, false); !errors.Is(err, ErrNoItem) {
		t.Errorf("nil item error = %v", err)
	}
}

func TestExecutor_Run_Timeouts(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Launchers: map[string]config.LauncherSettings{
			"slow": {Command: writeScript(t, dir, "slow", "exec sleep 10\n")},
		},
		Timeout:        100 * time.Millisecond,
		AttractRunTime: 100 * time.Millisecond,
	}

	t.Run("user launch", func(t *testing.T) {
		rec := &mockRecorder{}
		e := NewExecutor(cfg, zap.NewNop(), WithStats(rec))
		start := time.Now()
		_, err := e.Run(context.Background(), "Arcade", game("pacman", "slow"), nil, false)
		var te *TimeoutError
		if !errors.As(err, &te) {
			t.Fatalf("expected TimeoutError, got %T: %v", err, err)
		}
		if time.Since(start) > 5*time.Second {
			t.Error("timeout did not kill the program")
		}
		if len(rec.plays) != 1 {
			t.Errorf("a started launch should be recorded, got %v", rec.plays)
		}
	})

	t.Run("attract cap", func(t *testing.T) {
		rec := &mockRecorder{}
		e := NewExecutor(cfg, zap.NewNop(), WithStats(rec))
		reboot, err := e.Run(context.Background(), "Arcade", game("pacman", "slow"), nil, true)
		if err != nil || reboot {
			t.Errorf("attract cap should end normally, got %v, %v", reboot, err)
		}
		if len(rec.plays) != 1 || rec.plays[0].item != "pacman" {
			t.Fatalf("attract launches are recorded, got %v", rec.plays)
		}
		if rec.plays[0].played < 100*time.Millisecond {
			t.Errorf("played = %v, want at least the attract cap", rec.plays[0].played)
		}
	})
}

func TestExecutor_Run_RecordsPlayAndSuspends(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Launchers: map[string]config.LauncherSettings{
		"ok": {Command: writeScript(t, dir, "ok", "exit 0\n")},
	}}

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(90 * time.Second)
		return clock
	}
	rec := &mockRecorder{}
	sus := &mockSuspender{}
	e := NewExecutor(cfg, zap.NewNop(), WithStats(rec), WithSuspender(sus), WithClock(now))

	if _, err := e.Run(context.Background(), "Arcade", game("pacman", "ok"), nil, false); err != nil {
		t.Fatal(err)
	}
	if len(rec.plays) != 1 || rec.plays[0] != (playRecord{"Arcade", "pacman", 90 * time.Second}) {
		t.Errorf("plays = %+v", rec.plays)
	}
	if strings.Join(sus.calls, ",") != "suspend,resume" {
		t.Errorf("suspender calls = %v", sus.calls)
	}
}

func TestExecutor_Run_MissingProgramNotRecorded(t *testing.T) {
	cfg := Config{Launchers: map[string]config.LauncherSettings{
		"missing": {Command: "/nonexistent/emulator"},
	}}
	rec := &mockRecorder{}
	e := NewExecutor(cfg, zap.NewNop(), WithStats(rec))
	if _, err := e.Run(context.Background(), "Arcade", game("pacman", "missing"), nil, false); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.plays) != 0 {
		t.Errorf("plays = %v, want none", rec.plays)
	}
}

func TestCheckLaunchers(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		DefaultLauncher: "gone",
		Launchers: map[string]config.LauncherSettings{
			"ok":      {Command: writeScript(t, dir, "ok", "exit 0\n")},
			"missing": {Command: "/nonexistent/emulator"},
		},
	}

	checks := CheckLaunchers(cfg)
	if len(checks) != 3 {
		t.Fatalf("checks = %+v", checks)
	}
	if checks[0].Launcher != "missing" || checks[0].Err == nil {
		t.Errorf("missing check = %+v", checks[0])
	}
	var pe *PrerequisiteError
	if !errors.As(checks[0].Err, &pe) {
		t.Errorf("expected PrerequisiteError, got %T", checks[0].Err)
	}
	if checks[1].Launcher != "ok" || checks[1].Err != nil || checks[1].Path == "" {
		t.Errorf("ok check = %+v", checks[1])
	}
	var nf *NotFoundError
	if !errors.As(checks[2].Err, &nf) {
		t.Errorf("default launcher check = %+v", checks[2])
	}

	report := FormatChecks(checks)
	if !strings.Contains(report, "✓ ok") || !strings.Contains(report, "✗ missing") {
		t.Errorf("report = %q", report)
	}
}
