package input

// Key is a logical cabinet control.
type Key int

const (
	KeyNone Key = iota
	KeyScrollBack
	KeyScrollForward
	KeyPageUp
	KeyPageDown
	KeyLetterUp
	KeyLetterDown
	KeyRandom
	KeySelect
	KeyBack
	KeyQuit
	KeyQuitCombo
	KeyPlaylistNext
	KeyPlaylistPrev
	KeyCyclePlaylistNext
	KeyCyclePlaylistPrev
	KeyCollectionNext
	KeyCollectionPrev
	KeyCollectionUp
	KeyCollectionDown
	KeyFavorite
	KeyMenu
	KeyGameInfo
	KeyCollectionInfo
	KeyBuildInfo
	KeyKiosk
	KeyPause
	keyCount
)

var keyNames = [...]string{
	KeyNone:              "none",
	KeyScrollBack:        "up",
	KeyScrollForward:     "down",
	KeyPageUp:            "page_up",
	KeyPageDown:          "page_down",
	KeyLetterUp:          "letter_up",
	KeyLetterDown:        "letter_down",
	KeyRandom:            "random",
	KeySelect:            "select",
	KeyBack:              "back",
	KeyQuit:              "quit",
	KeyQuitCombo:         "quit_combo",
	KeyPlaylistNext:      "playlist_next",
	KeyPlaylistPrev:      "playlist_prev",
	KeyCyclePlaylistNext: "cycle_playlist_next",
	KeyCyclePlaylistPrev: "cycle_playlist_prev",
	KeyCollectionNext:    "collection_next",
	KeyCollectionPrev:    "collection_prev",
	KeyCollectionUp:      "collection_up",
	KeyCollectionDown:    "collection_down",
	KeyFavorite:          "favorite",
	KeyMenu:              "menu",
	KeyGameInfo:          "game_info",
	KeyCollectionInfo:    "collection_info",
	KeyBuildInfo:         "build_info",
	KeyKiosk:             "kiosk",
	KeyPause:             "pause",
}

// String returns the name used in settings bindings.
func (k Key) String() string {
	if k >= 0 && k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// ParseKey is the inverse of String.
func ParseKey(name string) (Key, bool) {
	for k := KeyNone + 1; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, true
		}
	}
	return KeyNone, false
}

// AllKeys returns every logical key except KeyNone.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// IsScroll reports whether k drives continuous scrolling.
func (k Key) IsScroll() bool {
	return k == KeyScrollBack || k == KeyScrollForward
}
