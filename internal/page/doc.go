// Package page provides the reference collection view driven by the
// navigation controller.
//
// A View holds a stack of menu frames that share one layout. Every frame
// remembers its collection, playlist and scroll offset. Animations are
// simulated with fixed durations so the controller's wait states behave as
// they would with real artwork, and the whole view can be rendered from a
// Snapshot by the terminal front-end or a websocket client.
//
// # Animations
//
// Every animation (menu enter/exit, highlight, playlist, launch, attract,
// info overlay) sets a countdown that Update drains. While a countdown runs
// the view is neither idle nor graphics idle. Scrolling is separate: a
// scrolling view moves one item every ScrollRate until StopScroll.
//
// # Favorites
//
// The favorites playlist is virtual. Its items come from a Stats store and
// are listed in the order they were added. Toggling a favorite while the
// favorites playlist is shown updates the list in place.
//
// # Concurrency
//
// The controller mutates a View from its tick goroutine. Snapshot may be
// called from any goroutine, which lets secondary displays redraw while a
// launch blocks the tick loop.
package page
