package config

import "time"

// CurrentVersion is the settings file schema version.
const CurrentVersion = 1

// Settings is the immutable configuration snapshot handed to the navigation
// controller and its collaborators at construction. Nothing mutates a
// Settings value after Load returns it.
type Settings struct {
	Version    int                `yaml:"version"`
	Attract    AttractSettings    `yaml:"attract" envPrefix:"ATTRACT_"`
	Navigation NavigationSettings `yaml:"navigation" envPrefix:"NAV_"`
	Input      InputSettings      `yaml:"input" envPrefix:"INPUT_"`
	Launch     LaunchSettings     `yaml:"launch" envPrefix:"LAUNCH_"`
	Remote     RemoteSettings     `yaml:"remote" envPrefix:"REMOTE_"`
	Library    LibrarySettings    `yaml:"library" envPrefix:"LIBRARY_"`
	Log        LogSettings        `yaml:"log" envPrefix:"LOG_"`
}

// AttractSettings controls idle auto-demo behaviour.
type AttractSettings struct {
	// IdleTime is how long the UI must sit idle before the first scroll
	// burst. Zero disables attract mode entirely.
	IdleTime Duration `yaml:"idle_time" env:"IDLE_TIME"`

	// IdleNextTime is the idle gap between bursts once attract mode has
	// fired at least once.
	IdleNextTime Duration `yaml:"idle_next_time" env:"IDLE_NEXT_TIME"`

	// PlaylistTime switches to the next playlist after this much attract
	// time. Zero disables.
	PlaylistTime Duration `yaml:"idle_playlist_time" env:"IDLE_PLAYLIST_TIME"`

	// CollectionTime switches to the next collection after this much
	// attract time. Zero disables.
	CollectionTime Duration `yaml:"idle_collection_time" env:"IDLE_COLLECTION_TIME"`

	MinScrollTime Duration `yaml:"min_scroll_time" env:"MIN_SCROLL_TIME"`
	MaxScrollTime Duration `yaml:"max_scroll_time" env:"MAX_SCROLL_TIME"`

	// Launch enables random launches after a scroll burst.
	Launch         bool     `yaml:"launch" env:"LAUNCH"`
	LaunchChance   float64  `yaml:"launch_chance" env:"LAUNCH_CHANCE"`
	LaunchCooldown Duration `yaml:"launch_cooldown" env:"LAUNCH_COOLDOWN"`

	// LaunchRunTime caps how long an attract-mode launch may run before the
	// launcher terminates it.
	LaunchRunTime Duration `yaml:"launch_run_time" env:"LAUNCH_RUN_TIME"`

	SkipPlaylists   []string `yaml:"skip_playlists" env:"SKIP_PLAYLISTS"`
	SkipCollections []string `yaml:"skip_collections" env:"SKIP_COLLECTIONS"`
}

// NavigationSettings controls collection and menu traversal.
type NavigationSettings struct {
	FirstCollection string `yaml:"first_collection" env:"FIRST_COLLECTION"`

	// EnterOnCollection enters a collection immediately after a
	// collection up/down move lands on it.
	EnterOnCollection bool `yaml:"enter_on_collection" env:"ENTER_ON_COLLECTION"`

	// RememberMenu restores scroll offset and playlist when re-entering a
	// collection.
	RememberMenu bool `yaml:"remember_menu" env:"REMEMBER_MENU"`

	// BackOnEmpty goes back automatically after entering a collection with
	// no items.
	BackOnEmpty bool `yaml:"back_on_empty" env:"BACK_ON_EMPTY"`

	// ExitOnFirstPageBack quits when back is pressed on the first page.
	ExitOnFirstPageBack bool `yaml:"exit_on_first_page_back" env:"EXIT_ON_FIRST_PAGE_BACK"`

	// Kiosk starts with the kiosk lock engaged.
	Kiosk bool `yaml:"kiosk" env:"KIOSK"`

	// RandomizeStart selects a random item when the first page loads.
	RandomizeStart bool `yaml:"randomize_start" env:"RANDOMIZE_START"`

	PlaylistCycle   []string `yaml:"playlist_cycle" env:"PLAYLIST_CYCLE"`
	CollectionCycle []string `yaml:"collection_cycle" env:"COLLECTION_CYCLE"`

	// AutoPlaylists maps a collection name to the playlist selected when
	// the collection is entered.
	AutoPlaylists map[string]string `yaml:"auto_playlists"`

	FavoritesPlaylist string `yaml:"favorites_playlist" env:"FAVORITES_PLAYLIST"`

	// MenuCollection is entered by the menu key (menu mode).
	MenuCollection string `yaml:"menu_collection" env:"MENU_COLLECTION"`
}

// InputSettings controls key sampling.
type InputSettings struct {
	// MinActionDelay is the minimum gap between two accepted actions.
	MinActionDelay Duration `yaml:"min_action_delay" env:"MIN_ACTION_DELAY"`

	// HoldTimeout is how long a key counts as held after its last repeat.
	HoldTimeout Duration `yaml:"hold_timeout" env:"HOLD_TIMEOUT"`

	// ChordWindow is how long a chord prefix waits for its second key.
	ChordWindow Duration `yaml:"chord_window" env:"CHORD_WINDOW"`

	// Bindings maps logical keys to terminal key names. Entries replace the
	// defaults for that logical key.
	Bindings map[string][]string `yaml:"bindings"`

	// Chords maps logical keys to two-key combinations, for example
	// quit_combo: ["up", "back"].
	Chords map[string][]string `yaml:"chords"`
}

// LaunchSettings configures external program execution.
type LaunchSettings struct {
	DefaultLauncher string                      `yaml:"default_launcher" env:"DEFAULT_LAUNCHER"`
	Launchers       map[string]LauncherSettings `yaml:"launchers"`

	// Timeout caps any launch. Zero means unlimited.
	Timeout Duration `yaml:"timeout" env:"TIMEOUT"`

	// SecondaryRedrawInterval is the frame interval of the background redraw
	// task that keeps secondary displays alive during a launch.
	SecondaryRedrawInterval Duration `yaml:"secondary_redraw_interval" env:"SECONDARY_REDRAW_INTERVAL"`
}

// LauncherSettings is one named launcher.
type LauncherSettings struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	WorkDir string   `yaml:"workdir,omitempty"`

	// RebootExitCode is the exit code with which the program asks the
	// front-end to quit and be restarted. Zero disables.
	RebootExitCode int `yaml:"reboot_exit_code,omitempty"`
}

// RemoteSettings configures the websocket remote/secondary display.
type RemoteSettings struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	Addr      string `yaml:"addr" env:"ADDR"`
	Advertise bool   `yaml:"advertise" env:"ADVERTISE"`
	Name      string `yaml:"name" env:"NAME"`

	// CertFile and KeyFile enable TLS when both are set.
	CertFile string `yaml:"cert_file" env:"CERT_FILE"`
	KeyFile  string `yaml:"key_file" env:"KEY_FILE"`
}

// LibrarySettings locates the collection database.
type LibrarySettings struct {
	Path      string `yaml:"path" env:"PATH"`
	StatsPath string `yaml:"stats_path" env:"STATS_PATH"`
}

// LogSettings mirrors the logging package options.
type LogSettings struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

// Launcher returns the named launcher, falling back to the default launcher
// when name is empty.
func (s Settings) Launcher(name string) (LauncherSettings, bool) {
	if name == "" {
		name = s.Launch.DefaultLauncher
	}
	l, ok := s.Launch.Launchers[name]
	return l, ok
}

// AutoPlaylist returns the playlist selected on entry to collection.
func (s Settings) AutoPlaylist(collection string) string {
	if s.Navigation.AutoPlaylists == nil {
		return ""
	}
	return s.Navigation.AutoPlaylists[collection]
}

// DefaultSettings returns the built-in defaults. They match
// default_settings.yaml.
func DefaultSettings() Settings {
	return Settings{
		Version: CurrentVersion,
		Attract: AttractSettings{
			IdleTime:       Duration{30 * time.Second},
			IdleNextTime:   Duration{10 * time.Second},
			PlaylistTime:   Duration{0},
			CollectionTime: Duration{0},
			MinScrollTime:  Duration{3 * time.Second},
			MaxScrollTime:  Duration{5 * time.Second},
			Launch:         false,
			LaunchChance:   0.25,
			LaunchCooldown: Duration{2 * time.Second},
			LaunchRunTime:  Duration{30 * time.Second},
		},
		Navigation: NavigationSettings{
			FirstCollection:   "Main",
			RememberMenu:      true,
			BackOnEmpty:       true,
			FavoritesPlaylist: "favorites",
			AutoPlaylists:     map[string]string{},
		},
		Input: InputSettings{
			MinActionDelay: Duration{120 * time.Millisecond},
			HoldTimeout:    Duration{550 * time.Millisecond},
			ChordWindow:    Duration{250 * time.Millisecond},
			Bindings:       map[string][]string{},
			Chords:         map[string][]string{},
		},
		Launch: LaunchSettings{
			Launchers:               map[string]LauncherSettings{},
			SecondaryRedrawInterval: Duration{100 * time.Millisecond},
		},
		Remote: RemoteSettings{
			Addr: ":8765",
			Name: "marquee",
		},
		Library: LibrarySettings{
			Path: "library.yaml",
		},
	}
}
