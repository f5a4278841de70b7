// Package library loads the collection database and the play statistics
// store.
//
// The library is a single YAML file:
//
//	version: 1
//	collections:
//	  Main:
//	    layout: wheel
//	    items:
//	      - name: Arcade
//	        kind: collection
//	      - name: Settings
//	        kind: menu
//	  Arcade:
//	    launcher: mame
//	    items:
//	      - name: pacman
//	        title: Pac-Man
//	        file: pacman.zip
//	    playlists:
//	      classics: [pacman]
//
// Resolve fails with a *ResolveError wrapping ErrNotFound or ErrInvalid; the
// navigation controller treats both as a recoverable resolution failure.
package library
