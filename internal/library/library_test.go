package library

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const testLibrary = `
version: 1
collections:
  Main:
    layout: wheel
    items:
      - name: Arcade
        kind: collection
      - name: Tools
        kind: menu
        collection: Settings
  Arcade:
    launcher: mame
    items:
      - name: pacman
        title: Pac-Man
      - name: galaga
      - name: dkong
        launcher: retroarch
    playlists:
      classics: [pacman, dkong]
  Empty:
    items: []
  Broken:
    items:
      - name: one
    playlists:
      bad: [missing]
  Nothing:
`

func mustParse(t *testing.T) *Library {
	t.Helper()
	lib, err := Parse([]byte(testLibrary))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return lib
}

func TestParse_Defaults(t *testing.T) {
	lib := mustParse(t)

	arcade := lib.Collections["Arcade"]
	if arcade.Name != "Arcade" {
		t.Errorf("Name = %q, want Arcade", arcade.Name)
	}
	if arcade.Layout != "default" {
		t.Errorf("Layout = %q, want default", arcade.Layout)
	}
	if got := arcade.Item("pacman").Launcher; got != "mame" {
		t.Errorf("inherited launcher = %q, want mame", got)
	}
	if got := arcade.Item("dkong").Launcher; got != "retroarch" {
		t.Errorf("explicit launcher = %q, want retroarch", got)
	}
	if got := lib.Collections["Main"].Items[1].Target(); got != "Settings" {
		t.Errorf("menu target = %q, want Settings", got)
	}
}

func TestParse_RejectsVersion(t *testing.T) {
	if _, err := Parse([]byte("version: 7\n")); err == nil {
		t.Error("Parse() should reject unknown versions")
	}
}

func TestParse_RejectsUnknownKind(t *testing.T) {
	data := "collections:\n  A:\n    items:\n      - name: x\n        kind: spaceship\n"
	if _, err := Parse([]byte(data)); err == nil {
		t.Error("Parse() should reject unknown item kinds")
	}
}

func TestResolve(t *testing.T) {
	lib := mustParse(t)

	tests := []struct {
		name    string
		wantErr error
	}{
		{"Arcade", nil},
		{"Empty", nil},
		{"Missing", ErrNotFound},
		{"Broken", ErrInvalid},
		{"Nothing", ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := lib.Resolve(tt.name)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Resolve() error = %v", err)
				}
				if c.Name != tt.name {
					t.Errorf("Name = %q", c.Name)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			var rerr *ResolveError
			if !errors.As(err, &rerr) || rerr.Collection != tt.name {
				t.Errorf("error should be a *ResolveError for %q, got %#v", tt.name, err)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	lib := mustParse(t)
	if errs := lib.Check(); len(errs) != 2 {
		t.Errorf("Check() returned %d errors, want 2: %v", len(errs), errs)
	}
}

func TestCollection_Playlists(t *testing.T) {
	arcade := mustParse(t).Collections["Arcade"]

	if got, want := arcade.PlaylistNames("favorites"), []string{"all", "classics", "favorites"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PlaylistNames() = %v, want %v", got, want)
	}
	if got := len(arcade.Playlist(AllPlaylist)); got != 3 {
		t.Errorf("all playlist has %d items, want 3", got)
	}

	classics := arcade.Playlist("classics")
	if len(classics) != 2 || classics[0].Name != "pacman" || classics[1].Name != "dkong" {
		t.Errorf("classics = %v", classics)
	}
	if got := arcade.Playlist("nope"); len(got) != 0 {
		t.Errorf("unknown playlist = %v, want empty", got)
	}
}

func TestItem_DisplayName(t *testing.T) {
	if got := (&Item{Name: "pacman", Title: "Pac-Man"}).DisplayName(); got != "Pac-Man" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (&Item{Name: "galaga"}).DisplayName(); got != "galaga" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestStatsStore_RecordPlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.yaml")
	store, err := OpenStats(path)
	if err != nil {
		t.Fatalf("OpenStats() error = %v", err)
	}

	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := store.RecordPlay("Arcade", "pacman", started, 90*time.Second); err != nil {
		t.Fatalf("RecordPlay() error = %v", err)
	}
	if err := store.RecordPlay("Arcade", "pacman", started.Add(time.Hour), 30*time.Second); err != nil {
		t.Fatalf("RecordPlay() error = %v", err)
	}

	reopened, err := OpenStats(path)
	if err != nil {
		t.Fatalf("OpenStats() reopen error = %v", err)
	}
	st := reopened.Get("Arcade", "pacman")
	if st.TimesPlayed != 2 || st.SecondsPlayed != 120 {
		t.Errorf("stats = %+v, want 2 plays / 120s", st)
	}
	if !st.LastPlayed.Equal(started.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v", st.LastPlayed)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestStatsStore_ToggleFavorite(t *testing.T) {
	store, err := OpenStats("")
	if err != nil {
		t.Fatalf("OpenStats() error = %v", err)
	}

	on, err := store.ToggleFavorite("Arcade", "galaga")
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v", on, err)
	}
	if !store.IsFavorite("Arcade", "galaga") {
		t.Error("galaga should be a favorite")
	}
	if got := store.Favorites("Arcade"); !reflect.DeepEqual(got, []string{"galaga"}) {
		t.Errorf("Favorites() = %v", got)
	}

	on, err = store.ToggleFavorite("Arcade", "galaga")
	if err != nil || on {
		t.Fatalf("second toggle = %v, %v", on, err)
	}
	if store.IsFavorite("Arcade", "galaga") {
		t.Error("galaga should no longer be a favorite")
	}
}
