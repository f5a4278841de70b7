package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if !strings.Contains(dir, "marquee") {
		t.Errorf("GetConfigDir() = %v, should contain 'marquee'", dir)
	}
	if runtime.GOOS == "linux" && os.Getenv("XDG_CONFIG_HOME") == "" && !strings.Contains(dir, ".config") {
		t.Errorf("Linux config dir should contain '.config', got: %v", dir)
	}
}

func TestParse_EmbeddedDefaultsMatchDefaultSettings(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	d := DefaultSettings()

	if s.Attract.IdleTime != d.Attract.IdleTime {
		t.Errorf("IdleTime = %v, want %v", s.Attract.IdleTime, d.Attract.IdleTime)
	}
	if s.Attract.MaxScrollTime != d.Attract.MaxScrollTime {
		t.Errorf("MaxScrollTime = %v, want %v", s.Attract.MaxScrollTime, d.Attract.MaxScrollTime)
	}
	if s.Navigation.FirstCollection != d.Navigation.FirstCollection {
		t.Errorf("FirstCollection = %q, want %q", s.Navigation.FirstCollection, d.Navigation.FirstCollection)
	}
	if s.Input.HoldTimeout != d.Input.HoldTimeout {
		t.Errorf("HoldTimeout = %v, want %v", s.Input.HoldTimeout, d.Input.HoldTimeout)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestParse_Overlay(t *testing.T) {
	data := []byte(`
version: 1
attract:
  idle_time: 10s
  idle_next_time: 5s
  idle_playlist_time: 0
navigation:
  first_collection: Arcade
  playlist_cycle: [all, favorites]
  auto_playlists:
    Arcade: favorites
launch:
  default_launcher: mame
  launchers:
    mame:
      command: /usr/bin/mame
      args: ["{{.Item}}"]
      reboot_exit_code: 42
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Attract.IdleTime.Duration != 10*time.Second {
		t.Errorf("IdleTime = %v, want 10s", s.Attract.IdleTime)
	}
	if s.Attract.PlaylistTime.Duration != 0 {
		t.Errorf("PlaylistTime = %v, want 0", s.Attract.PlaylistTime)
	}
	// Untouched keys keep their defaults.
	if s.Attract.MinScrollTime.Duration != 3*time.Second {
		t.Errorf("MinScrollTime = %v, want default 3s", s.Attract.MinScrollTime)
	}
	if got := s.AutoPlaylist("Arcade"); got != "favorites" {
		t.Errorf("AutoPlaylist(Arcade) = %q, want favorites", got)
	}
	l, ok := s.Launcher("")
	if !ok {
		t.Fatal("default launcher not found")
	}
	if l.RebootExitCode != 42 {
		t.Errorf("RebootExitCode = %d, want 42", l.RebootExitCode)
	}
	if len(s.Navigation.PlaylistCycle) != 2 {
		t.Errorf("PlaylistCycle = %v, want 2 entries", s.Navigation.PlaylistCycle)
	}
}

func TestParse_RejectsVersion(t *testing.T) {
	if _, err := Parse([]byte("version: 7\n")); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MARQUEE_ATTRACT_IDLE_TIME", "45s")
	t.Setenv("MARQUEE_NAV_KIOSK", "true")
	t.Setenv("MARQUEE_NAV_COLLECTION_CYCLE", "Arcade,Consoles")
	t.Setenv("MARQUEE_REMOTE_ADDR", "127.0.0.1:9000")

	s := DefaultSettings()
	if err := ApplyEnv(&s); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if s.Attract.IdleTime.Duration != 45*time.Second {
		t.Errorf("IdleTime = %v, want 45s", s.Attract.IdleTime)
	}
	if !s.Navigation.Kiosk {
		t.Error("Kiosk should be true from env")
	}
	if len(s.Navigation.CollectionCycle) != 2 || s.Navigation.CollectionCycle[1] != "Consoles" {
		t.Errorf("CollectionCycle = %v", s.Navigation.CollectionCycle)
	}
	if s.Remote.Addr != "127.0.0.1:9000" {
		t.Errorf("Remote.Addr = %q", s.Remote.Addr)
	}
	// Unset variables leave values alone.
	if s.Navigation.FirstCollection != "Main" {
		t.Errorf("FirstCollection = %q, want Main", s.Navigation.FirstCollection)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Settings) {},
		},
		{
			name: "scroll range inverted",
			mutate: func(s *Settings) {
				s.Attract.MaxScrollTime = Duration{time.Second}
			},
			wantErr: "max_scroll_time",
		},
		{
			name: "launch chance out of range",
			mutate: func(s *Settings) {
				s.Attract.LaunchChance = 1.5
			},
			wantErr: "launch_chance",
		},
		{
			name: "unknown default launcher",
			mutate: func(s *Settings) {
				s.Launch.DefaultLauncher = "retroarch"
			},
			wantErr: "retroarch",
		},
		{
			name: "bad chord",
			mutate: func(s *Settings) {
				s.Input.Chords = map[string][]string{"quit_combo": {"q"}}
			},
			wantErr: "exactly two keys",
		},
		{
			name: "missing first collection",
			mutate: func(s *Settings) {
				s.Navigation.FirstCollection = ""
			},
			wantErr: "first_collection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestChordOverlaps(t *testing.T) {
	s := DefaultSettings()
	s.Input.Chords = map[string][]string{"quit_combo": {"c", "esc"}}
	defaults := map[string][]string{
		"collection_cycle_next": {"c"},
		"back":                  {"esc", "backspace"},
	}

	overlaps := s.ChordOverlaps(defaults)
	if len(overlaps) != 2 {
		t.Fatalf("ChordOverlaps() = %v, want 2 overlaps", overlaps)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, "settings.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Library.Path != filepath.Join(dir, "library.yaml") {
		t.Errorf("Library.Path = %q, want it resolved next to the settings file", s.Library.Path)
	}
	if s.Library.StatsPath != filepath.Join(dir, "stats.yaml") {
		t.Errorf("Library.StatsPath = %q", s.Library.StatsPath)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("second WriteDefault() should refuse to overwrite")
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load() of written defaults error = %v", err)
	}
}
