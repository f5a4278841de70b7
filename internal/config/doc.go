// Package config loads the marquee settings snapshot.
//
// Settings are read from a YAML file layered on top of embedded defaults
// (default_settings.yaml), then overridden from MARQUEE_* environment
// variables. The result is an immutable Settings value that is passed to the
// navigation controller at construction; nothing in the process reads
// settings from global state.
//
// # Settings File Location
//
//   - Linux: $XDG_CONFIG_HOME/marquee/settings.yaml or $HOME/.config/marquee/settings.yaml
//   - macOS: $HOME/.config/marquee/settings.yaml
//   - Windows: %LOCALAPPDATA%\marquee\settings.yaml
//
// Relative library and stats paths are resolved against the directory of the
// settings file.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    var verr *config.ValidationError
//	    if errors.As(err, &verr) {
//	        for _, p := range verr.Problems {
//	            fmt.Fprintln(os.Stderr, p)
//	        }
//	    }
//	    os.Exit(1)
//	}
//
// # Environment Overrides
//
// Every scalar key has an environment name built from its section prefix:
//
//	MARQUEE_ATTRACT_IDLE_TIME=45s
//	MARQUEE_NAV_REMEMBER_MENU=false
//	MARQUEE_NAV_PLAYLIST_CYCLE=all,favorites,arcade
//	MARQUEE_REMOTE_ENABLED=true
//
// Maps (launchers, bindings, auto playlists) are file-only.
package config
