package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testLibrary = `
collections:
  Main:
    items:
      - name: Arcade
        kind: collection
  Arcade:
    items:
      - {name: pacman}
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	settingsPath, logLevel, logFile = "", "", ""
	initForce, initYes, statesDot = false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCabinet(t *testing.T, settings string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "library.yaml"), []byte(testLibrary), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStatesCommand(t *testing.T) {
	out, err := execute(t, "", "states")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "idle") || !strings.Contains(out, "->") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "", "states", "--dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph marquee {") || !strings.Contains(out, `"quit_request" -> "quit";`) {
		t.Errorf("dot output = %q", out)
	}
}

func TestCheckCommand(t *testing.T) {
	path := writeCabinet(t, "version: 1\n")
	out, err := execute(t, "", "check", "--config", path)
	if err != nil {
		t.Fatalf("check error = %v\n%s", err, out)
	}
	for _, want := range []string{"settings", "first collection", "2 collections", "state graph", "Ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommand_Failures(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		want     string
	}{
		{
			name:     "invalid settings",
			settings: "version: 1\nattract:\n  launch_chance: 2\n",
			want:     "launch_chance",
		},
		{
			name:     "missing first collection",
			settings: "version: 1\nnavigation:\n  first_collection: Nowhere\n",
			want:     "first collection",
		},
		{
			name: "missing launcher program",
			settings: `version: 1
launch:
  launchers:
    emu:
      command: /nonexistent/emulator
`,
			want: "launcher emu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", "check", "--config", writeCabinet(t, tt.settings))
			var ee *exitError
			if !errors.As(err, &ee) || ee.code != exitFailure {
				t.Fatalf("error = %v, want exit %d", err, exitFailure)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee", "settings.yaml")

	if _, err := execute(t, "", "init", "--config", path); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("settings not written: %v", err)
	}

	if _, err := execute(t, "", "init", "--config", path); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("second init error = %v", err)
	}

	if err := os.WriteFile(path, []byte("custom"), 0600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "n\n", "init", "--config", path, "--force")
	if err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); string(data) != "custom" {
		t.Errorf("declined overwrite replaced the file; output:\n%s", out)
	}

	if _, err := execute(t, "", "init", "--config", path, "--force", "--yes"); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); string(data) == "custom" {
		t.Error("--force --yes did not replace the file")
	}
}

func TestRunCommand_ConfigFailure(t *testing.T) {
	path := writeCabinet(t, "version: 1\nnavigation:\n  first_collection: Nowhere\n")
	_, err := execute(t, "", "run", "--config", path, "--headless")
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != exitFailure {
		t.Errorf("error = %v, want exit %d", err, exitFailure)
	}
}

func TestExitError(t *testing.T) {
	if errReboot.Error() != "exit status 2" {
		t.Errorf("errReboot = %q", errReboot.Error())
	}
	inner := errors.New("boom")
	err := &exitError{code: exitFailure, err: inner}
	if !errors.Is(err, inner) || err.Error() != "boom" {
		t.Errorf("exitError = %v", err)
	}
}
