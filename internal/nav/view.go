package nav

import (
	"context"
	"time"

	"github.com/muurk/marquee/internal/input"
	"github.com/muurk/marquee/internal/library"
)

// CollectionView is the visual menu the controller drives. One view holds a
// stack of menu frames that share a layout; entering a collection with a
// different layout creates a new view.
type CollectionView interface {
	IsIdle() bool
	IsMenuIdle() bool
	IsGraphicsIdle() bool
	IsAttractIdle() bool
	IsScrolling() bool

	SelectedItem() *library.Item
	CollectionName() string
	PlaylistName() string
	PlaylistNames() []string
	ScrollOffsetIndex() int
	SetScrollOffsetIndex(i int)
	ItemCount() int
	MenuDepth() int
	Layout() string

	SelectPlaylist(name string) bool
	PushCollection(c *library.Collection)
	PopCollection() bool

	EnterMenu()
	ExitMenu()
	HighlightEnter()
	HighlightExit()
	PlaylistEnter()
	PlaylistExit()
	LaunchEnter()
	LaunchExit()
	AttractEnter()
	Attract()
	AttractExit()
	InfoEnter(kind InfoKind)
	InfoExit(kind InfoKind)

	OnNewItemSelected()
	Scroll(forward bool)
	StopScroll()
	Jump(j Jump)
	ToggleFavorite() error

	Update(dt time.Duration)
	Release()
}

// Resolver finds collections and builds views for them.
type Resolver interface {
	Resolve(name string) (*library.Collection, error)
	NewView(c *library.Collection, menuMode bool) (CollectionView, error)
}

// GameLauncher runs a selected item. It blocks until the external program
// exits. reboot reports that the program asked for a reboot.
type GameLauncher interface {
	Run(ctx context.Context, collection string, item *library.Item, view CollectionView, attractMode bool) (reboot bool, err error)
}

// InputSource supplies key presses and the held state of keys.
type InputSource interface {
	Poll(now time.Time) []input.Event
	Held(k input.Key) bool
	Reset()
}
