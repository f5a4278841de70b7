package nav

import (
	"github.com/muurk/marquee/internal/attract"
	"github.com/muurk/marquee/internal/input"
)

// Phase is the current state plus the data it carries between ticks.
type Phase struct {
	State State

	// Collection is the target of a pending descent or menu-mode start.
	Collection string
	// Sibling replaces the current collection instead of stacking on it.
	Sibling bool
	// Playlist is the target of a pending playlist request.
	Playlist string
	// Jump is the pending menu jump.
	Jump Jump
	// Attract marks a launch started by attract mode.
	Attract bool
	// Reboot marks a quit requested by a launcher exit code.
	Reboot bool
}

// Jump is a discrete selection move inside the current list.
type Jump int

const (
	JumpNone Jump = iota
	JumpNext
	JumpPrev
	JumpPageDown
	JumpPageUp
	JumpLetterDown
	JumpLetterUp
	JumpRandom
)

func (j Jump) String() string {
	switch j {
	case JumpNext:
		return "next"
	case JumpPrev:
		return "prev"
	case JumpPageDown:
		return "page_down"
	case JumpPageUp:
		return "page_up"
	case JumpLetterDown:
		return "letter_down"
	case JumpLetterUp:
		return "letter_up"
	case JumpRandom:
		return "random"
	default:
		return "none"
	}
}

// EventKind tags an Event.
type EventKind int

const (
	// EventNone is a plain tick.
	EventNone EventKind = iota
	// EventKey is a user key press.
	EventKey
	// EventAttract carries an attract timer signal.
	EventAttract
	// EventLaunched reports that a launch returned.
	EventLaunched
	// EventResolutionFailed reports that a collection could not be entered.
	EventResolutionFailed
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventAttract:
		return "attract"
	case EventLaunched:
		return "launched"
	case EventResolutionFailed:
		return "resolution_failed"
	default:
		return "none"
	}
}

// Event is the single input to one Step.
type Event struct {
	Kind   EventKind
	Key    input.Key
	Signal attract.Signal
	Reboot bool
	Err    error
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return "key:" + e.Key.String()
	case EventAttract:
		return "attract:" + e.Signal.String()
	default:
		return e.Kind.String()
	}
}

// ItemClass is what the selected item is, as far as navigation cares.
type ItemClass int

const (
	ItemNone ItemClass = iota
	ItemLeaf
	ItemCollection
	ItemMenu
)

// ViewStatus is a snapshot of the CollectionView taken before a Step.
type ViewStatus struct {
	Idle         bool
	MenuIdle     bool
	GraphicsIdle bool
	AttractIdle  bool
	Scrolling    bool

	MenuDepth int
	ItemCount int

	Collection string
	Playlist   string

	Selected       ItemClass
	SelectedTarget string
}

// Neighbors are the precomputed playlist and collection targets for the
// current collection. An empty name means there is nowhere to go.
type Neighbors struct {
	NextPlaylist      string
	PrevPlaylist      string
	NextCyclePlaylist string
	PrevCyclePlaylist string
	NextCollection    string
	PrevCollection    string
	AttractPlaylist   string
	AttractCollection string
}

// Memory is the remembered position of the current collection.
type Memory struct {
	Has      bool
	Playlist string
	Offset   int
}

// Context is everything Step may read. It is built fresh for every tick.
type Context struct {
	View ViewStatus

	StackDepth int
	MenuMode   bool
	Kiosk      bool

	AttractEnabled bool
	// BurstOver reports that the attract timer has no scroll burst running.
	// Attract states leave as soon as it is set.
	BurstOver  bool
	ScrollHeld bool

	RememberMenu        bool
	BackOnEmpty         bool
	ExitOnFirstPageBack bool
	EnterOnCollection   bool
	RandomizeStart      bool
	FavoritesPlaylist   string
	MenuCollection      string

	AutoPlaylist string
	Memory       Memory
	Neighbors    Neighbors
}

// Effect is a side effect requested by Step. The controller executes
// effects in order after the state has been updated.
type Effect interface {
	effect()
}

type (
	// EnterMenu plays the menu enter animation.
	EnterMenu struct{}
	// ExitMenu plays the menu exit animation.
	ExitMenu struct{}
	// HighlightEnter plays the highlight enter animation.
	HighlightEnter struct{}
	// HighlightExit plays the highlight exit animation.
	HighlightExit struct{}
	// PlaylistEnter plays the playlist enter animation.
	PlaylistEnter struct{}
	// PlaylistExit plays the playlist exit animation.
	PlaylistExit struct{}
	// NewItemSelected loads art for the current selection.
	NewItemSelected struct{}
	// SelectPlaylist switches the view to a playlist.
	SelectPlaylist struct{ Name string }
	// Scroll starts continuous scrolling.
	Scroll struct{ Forward bool }
	// StopScroll ends continuous scrolling.
	StopScroll struct{}
	// MoveSelection performs a discrete jump.
	MoveSelection struct{ Jump Jump }
	// Remember records the current collection's position.
	Remember struct{}
	// Restore puts a remembered position back.
	Restore struct {
		Playlist string
		Offset   int
	}
	// Descend enters a collection. Failure is reported as an
	// EventResolutionFailed on the next tick.
	Descend struct {
		Collection string
		Sibling    bool
		MenuMode   bool
	}
	// Ascend leaves the current collection.
	Ascend struct{}
	// LaunchEnter plays the launch enter animation.
	LaunchEnter struct{}
	// LaunchExit plays the launch exit animation.
	LaunchExit struct{}
	// Launch runs the selected item. The result is reported as an
	// EventLaunched on the next tick.
	Launch struct{ Attract bool }
	// AttractEnter plays the attract enter animation.
	AttractEnter struct{}
	// AttractTick advances attract visuals.
	AttractTick struct{}
	// AttractExit plays the attract exit animation.
	AttractExit struct{}
	// ResetAttract clears the attract timer.
	ResetAttract struct{ KeepSet bool }
	// ActivateAttract forces attract mode on.
	ActivateAttract struct{}
	// InfoEnter shows an overlay.
	InfoEnter struct{ Kind InfoKind }
	// InfoExit hides an overlay.
	InfoExit struct{ Kind InfoKind }
	// ToggleFavorite flips the favorite flag of the selection.
	ToggleFavorite struct{}
	// SetKiosk turns the kiosk lock on or off.
	SetKiosk struct{ On bool }
	// ReleaseInput forgets held keys.
	ReleaseInput struct{}
)

func (EnterMenu) effect()       {}
func (ExitMenu) effect()        {}
func (HighlightEnter) effect()  {}
func (HighlightExit) effect()   {}
func (PlaylistEnter) effect()   {}
func (PlaylistExit) effect()    {}
func (NewItemSelected) effect() {}
func (SelectPlaylist) effect()  {}
func (Scroll) effect()          {}
func (StopScroll) effect()      {}
func (MoveSelection) effect()   {}
func (Remember) effect()        {}
func (Restore) effect()         {}
func (Descend) effect()         {}
func (Ascend) effect()          {}
func (LaunchEnter) effect()     {}
func (LaunchExit) effect()      {}
func (Launch) effect()          {}
func (AttractEnter) effect()    {}
func (AttractTick) effect()     {}
func (AttractExit) effect()     {}
func (ResetAttract) effect()    {}
func (ActivateAttract) effect() {}
func (InfoEnter) effect()       {}
func (InfoExit) effect()        {}
func (ToggleFavorite) effect()  {}
func (SetKiosk) effect()        {}
func (ReleaseInput) effect()    {}
