package page

import (
	"math/rand/v2"
	"time"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/library"
)

// Timings are the simulated animation durations.
type Timings struct {
	Menu      time.Duration
	Highlight time.Duration
	Playlist  time.Duration
	Launch    time.Duration
	Attract   time.Duration
	Info      time.Duration
}

// Options configure the views built by a Factory.
type Options struct {
	Timings Timings

	// ScrollRate is the time spent on each item while scrolling.
	ScrollRate time.Duration

	// PageSize is the number of items a page jump moves.
	PageSize int

	// FavoritesPlaylist names the virtual favorites playlist. Empty
	// disables it.
	FavoritesPlaylist string

	// Rand picks random jump targets. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// DefaultOptions returns the timings used by the terminal front-end.
func DefaultOptions() Options {
	return Options{
		Timings: Timings{
			Menu:      200 * time.Millisecond,
			Highlight: 80 * time.Millisecond,
			Playlist:  150 * time.Millisecond,
			Launch:    250 * time.Millisecond,
			Attract:   100 * time.Millisecond,
			Info:      120 * time.Millisecond,
		},
		ScrollRate:        60 * time.Millisecond,
		PageSize:          10,
		FavoritesPlaylist: "favorites",
	}
}

// OptionsFromSettings returns DefaultOptions adjusted by the settings.
func OptionsFromSettings(s config.Settings) Options {
	opts := DefaultOptions()
	opts.FavoritesPlaylist = s.Navigation.FavoritesPlaylist
	return opts
}

// Stats is the play history and favorites store a view reads. It is
// satisfied by *library.StatsStore.
type Stats interface {
	Get(collection, item string) library.ItemStats
	Favorites(collection string) []string
	ToggleFavorite(collection, item string) (bool, error)
}
