package nav

// State is a navigation state. The set is closed; every state appears in
// AllStates and has a name.
type State int

const (
	StateInit State = iota
	StateLoadArt
	StateEnter
	StateIdle

	StateScrollForward
	StateScrollBack

	StateHighlightRequest
	StateHighlightExit
	StateHighlightLoadArt
	StateHighlightEnter

	StateMenuJumpRequest
	StateMenuJumpExit
	StateMenuJumpLoadArt
	StateMenuJumpEnter

	StatePlaylistNext
	StatePlaylistPrev
	StatePlaylistNextCycle
	StatePlaylistPrevCycle
	StatePlaylistRequest
	StatePlaylistExit
	StatePlaylistLoadArt
	StatePlaylistEnter

	StateFavoriteToggle

	StateHandleMenuEntry
	StateNextPageRequest
	StateNextPageMenuExit
	StateNextPageMenuLoadArt
	StateNextPageMenuEnter

	StateCollectionNextCycle
	StateCollectionPrevCycle

	StateCollectionDownRequest
	StateCollectionDownExit
	StateCollectionDownMenuEnter
	StateCollectionDownEnter
	StateCollectionDownScroll
	StateCollectionUpRequest
	StateCollectionUpExit
	StateCollectionUpMenuEnter
	StateCollectionUpEnter
	StateCollectionUpScroll
	StateCollectionHighlightRequest
	StateCollectionHighlightExit
	StateCollectionHighlightLoadArt
	StateCollectionHighlightEnter

	StateBackRequest
	StateBackMenuExit
	StateBackMenuLoadArt
	StateBackMenuEnter

	StateMenuModeStartRequest
	StateMenuModeStartLoadArt
	StateMenuModeStartEnter

	StateLaunchEnter
	StateLaunchRequest
	StateLaunchExit

	StateAttractEnter
	StateAttract
	StateAttractExit
	StateAttractPlaylist
	StateAttractCollection
	StateAttractLaunchEnter
	StateAttractLaunchRequest

	StateGameInfoEnter
	StateGameInfo
	StateGameInfoExit
	StateCollectionInfoEnter
	StateCollectionInfo
	StateCollectionInfoExit
	StateBuildInfoEnter
	StateBuildInfo
	StateBuildInfoExit

	StateKioskToggle
	StatePaused
	StateUnpause

	StateQuitRequest
	StateQuit

	stateCount
)

var stateNames = [...]string{
	StateInit:     "init",
	StateLoadArt:  "load_art",
	StateEnter:    "enter",
	StateIdle:     "idle",

	StateScrollForward: "scroll_forward",
	StateScrollBack:    "scroll_back",

	StateHighlightRequest: "highlight_request",
	StateHighlightExit:    "highlight_exit",
	StateHighlightLoadArt: "highlight_load_art",
	StateHighlightEnter:   "highlight_enter",

	StateMenuJumpRequest: "menujump_request",
	StateMenuJumpExit:    "menujump_exit",
	StateMenuJumpLoadArt: "menujump_load_art",
	StateMenuJumpEnter:   "menujump_enter",

	StatePlaylistNext:      "playlist_next",
	StatePlaylistPrev:      "playlist_prev",
	StatePlaylistNextCycle: "playlist_next_cycle",
	StatePlaylistPrevCycle: "playlist_prev_cycle",
	StatePlaylistRequest:   "playlist_request",
	StatePlaylistExit:      "playlist_exit",
	StatePlaylistLoadArt:   "playlist_load_art",
	StatePlaylistEnter:     "playlist_enter",

	StateFavoriteToggle: "favorite_toggle",

	StateHandleMenuEntry:     "handle_menu_entry",
	StateNextPageRequest:     "next_page_request",
	StateNextPageMenuExit:    "next_page_menu_exit",
	StateNextPageMenuLoadArt: "next_page_menu_load_art",
	StateNextPageMenuEnter:   "next_page_menu_enter",

	StateCollectionNextCycle: "collection_next_cycle",
	StateCollectionPrevCycle: "collection_prev_cycle",

	StateCollectionDownRequest:      "collection_down_request",
	StateCollectionDownExit:         "collection_down_exit",
	StateCollectionDownMenuEnter:    "collection_down_menu_enter",
	StateCollectionDownEnter:        "collection_down_enter",
	StateCollectionDownScroll:       "collection_down_scroll",
	StateCollectionUpRequest:        "collection_up_request",
	StateCollectionUpExit:           "collection_up_exit",
	StateCollectionUpMenuEnter:      "collection_up_menu_enter",
	StateCollectionUpEnter:          "collection_up_enter",
	StateCollectionUpScroll:         "collection_up_scroll",
	StateCollectionHighlightRequest: "collection_highlight_request",
	StateCollectionHighlightExit:    "collection_highlight_exit",
	StateCollectionHighlightLoadArt: "collection_highlight_load_art",
	StateCollectionHighlightEnter:   "collection_highlight_enter",

	StateBackRequest:     "back_request",
	StateBackMenuExit:    "back_menu_exit",
	StateBackMenuLoadArt: "back_menu_load_art",
	StateBackMenuEnter:   "back_menu_enter",

	StateMenuModeStartRequest: "menumode_start_request",
	StateMenuModeStartLoadArt: "menumode_start_load_art",
	StateMenuModeStartEnter:   "menumode_start_enter",

	StateLaunchEnter:   "launch_enter",
	StateLaunchRequest: "launch_request",
	StateLaunchExit:    "launch_exit",

	StateAttractEnter:         "attract_enter",
	StateAttract:              "attract",
	StateAttractExit:          "attract_exit",
	StateAttractPlaylist:      "attract_playlist",
	StateAttractCollection:    "attract_collection",
	StateAttractLaunchEnter:   "attract_launch_enter",
	StateAttractLaunchRequest: "attract_launch_request",

	StateGameInfoEnter:       "game_info_enter",
	StateGameInfo:            "game_info",
	StateGameInfoExit:        "game_info_exit",
	StateCollectionInfoEnter: "collection_info_enter",
	StateCollectionInfo:      "collection_info",
	StateCollectionInfoExit:  "collection_info_exit",
	StateBuildInfoEnter:      "build_info_enter",
	StateBuildInfo:           "build_info",
	StateBuildInfoExit:       "build_info_exit",

	StateKioskToggle: "kiosk_toggle",
	StatePaused:      "paused",
	StateUnpause:     "unpause",

	StateQuitRequest: "quit_request",
	StateQuit:        "quit",
}

func (s State) String() string {
	if s >= 0 && s < stateCount {
		return stateNames[s]
	}
	return "unknown"
}

// AllStates returns every state in declaration order.
func AllStates() []State {
	out := make([]State, stateCount)
	for i := range out {
		out[i] = State(i)
	}
	return out
}

// ParseState is the inverse of String.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// AcceptsInput reports whether user key presses are consumed in s. Presses
// arriving in any other state stay queued until an accepting state is
// reached.
func (s State) AcceptsInput() bool {
	switch s {
	case StateIdle, StateAttractEnter, StateAttract,
		StateGameInfo, StateCollectionInfo, StateBuildInfo,
		StatePaused:
		return true
	}
	return false
}

// AcceptsAttract reports whether the attract timer is advanced in s.
func (s State) AcceptsAttract() bool {
	return s == StateIdle || s == StateAttract
}

// IsAttract reports whether s belongs to attract mode.
func (s State) IsAttract() bool {
	switch s {
	case StateAttractEnter, StateAttract, StateAttractExit,
		StateAttractPlaylist, StateAttractCollection,
		StateAttractLaunchEnter, StateAttractLaunchRequest:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the controller.
func (s State) IsTerminal() bool {
	return s == StateQuit
}

// InfoKind selects an information overlay.
type InfoKind int

const (
	InfoGame InfoKind = iota
	InfoCollection
	InfoBuild
)

func (k InfoKind) String() string {
	switch k {
	case InfoGame:
		return "game"
	case InfoCollection:
		return "collection"
	case InfoBuild:
		return "build"
	default:
		return "unknown"
	}
}

// infoStates maps each overlay to its enter, shown and exit states.
var infoStates = [...][3]State{
	InfoGame:       {StateGameInfoEnter, StateGameInfo, StateGameInfoExit},
	InfoCollection: {StateCollectionInfoEnter, StateCollectionInfo, StateCollectionInfoExit},
	InfoBuild:      {StateBuildInfoEnter, StateBuildInfo, StateBuildInfoExit},
}

// infoKindOf returns the overlay a state belongs to.
func infoKindOf(s State) (InfoKind, int, bool) {
	for kind, states := range infoStates {
		for stage, st := range states {
			if st == s {
				return InfoKind(kind), stage, true
			}
		}
	}
	return 0, 0, false
}
