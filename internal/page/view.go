package page

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/nav"
	"github.com/muurk/marquee/internal/version"
)

// ErrNoSelection is returned by ToggleFavorite when nothing is selected.
var ErrNoSelection = errors.New("no item selected")

// ErrNoStats is returned by ToggleFavorite when the view has no store.
var ErrNoStats = errors.New("favorites are not available")

type frame struct {
	collection *library.Collection
	playlist   string
	offset     int
}

// View is an in-memory nav.CollectionView.
type View struct {
	mu sync.Mutex

	layout   string
	menuMode bool
	frames   []*frame
	stats    Stats
	opts     Options
	rand     *rand.Rand

	animation string
	remaining time.Duration

	scrolling bool
	forward   bool
	scrollAcc time.Duration

	attract   bool
	launching bool
	info      nav.InfoKind
	infoShown bool
	infoLines []string

	selections int
	released   bool
}

var _ nav.CollectionView = (*View)(nil)

// NewView creates a view showing c. stats may be nil.
func NewView(c *library.Collection, menuMode bool, stats Stats, opts Options) *View {
	r := opts.Rand
	if r == nil {
		now := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(now, now>>11))
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions().PageSize
	}
	if opts.ScrollRate <= 0 {
		opts.ScrollRate = DefaultOptions().ScrollRate
	}
	v := &View{
		layout:   c.Layout,
		menuMode: menuMode,
		stats:    stats,
		opts:     opts,
		rand:     r,
	}
	v.frames = []*frame{{collection: c, playlist: library.AllPlaylist}}
	return v
}

func (v *View) top() *frame {
	return v.frames[len(v.frames)-1]
}

// items returns the items of the current playlist. Callers hold mu.
func (v *View) items() []*library.Item {
	f := v.top()
	if fav := v.opts.FavoritesPlaylist; fav != "" && f.playlist == fav {
		if _, ok := f.collection.Playlists[fav]; !ok {
			if v.stats == nil {
				return nil
			}
			return f.collection.Select(v.stats.Favorites(f.collection.Name))
		}
	}
	return f.collection.Playlist(f.playlist)
}

func (v *View) selected() *library.Item {
	items := v.items()
	if len(items) == 0 {
		return nil
	}
	return items[v.clamp(v.top().offset, len(items))]
}

func (v *View) clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (v *View) move(delta int) {
	f := v.top()
	f.offset = v.clamp(f.offset+delta, len(v.items()))
}

func (v *View) animate(name string, d time.Duration) {
	v.animation = name
	v.remaining = d
}

func (v *View) graphicsIdle() bool {
	return v.remaining <= 0
}

// IsIdle reports that no animation or scroll is running.
func (v *View) IsIdle() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.graphicsIdle() && !v.scrolling
}

// IsMenuIdle reports that no menu animation is running.
func (v *View) IsMenuIdle() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.graphicsIdle()
}

// IsGraphicsIdle reports that no animation is running.
func (v *View) IsGraphicsIdle() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.graphicsIdle()
}

// IsAttractIdle reports that the view is idle and no overlay is shown.
func (v *View) IsAttractIdle() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.graphicsIdle() && !v.scrolling && !v.infoShown
}

// IsScrolling reports whether a scroll is running.
func (v *View) IsScrolling() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrolling
}

// SelectedItem returns the highlighted item, or nil for an empty playlist.
func (v *View) SelectedItem() *library.Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected()
}

func (v *View) CollectionName() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top().collection.Name
}

func (v *View) PlaylistName() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top().playlist
}

// PlaylistNames lists "all", the collection's playlists and the favorites
// playlist.
func (v *View) PlaylistNames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playlistNames()
}

func (v *View) playlistNames() []string {
	if v.stats == nil {
		return v.top().collection.PlaylistNames()
	}
	return v.top().collection.PlaylistNames(v.opts.FavoritesPlaylist)
}

func (v *View) ScrollOffsetIndex() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top().offset
}

// SetScrollOffsetIndex moves the selection, wrapping out-of-range values.
func (v *View) SetScrollOffsetIndex(i int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.top().offset = v.clamp(i, len(v.items()))
}

func (v *View) ItemCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items())
}

// MenuDepth is the number of frames in the view.
func (v *View) MenuDepth() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.frames)
}

func (v *View) Layout() string {
	return v.layout
}

// SelectPlaylist shows a playlist from the start. It returns false when the
// collection has no such playlist.
func (v *View) SelectPlaylist(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !slices.Contains(v.playlistNames(), name) {
		return false
	}
	f := v.top()
	f.playlist = name
	f.offset = 0
	return true
}

// PushCollection adds a frame for c on top of the current one.
func (v *View) PushCollection(c *library.Collection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frames = append(v.frames, &frame{collection: c, playlist: library.AllPlaylist})
}

// PopCollection drops the top frame. The last frame is never dropped.
func (v *View) PopCollection() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.frames) <= 1 {
		return false
	}
	v.frames[len(v.frames)-1] = nil
	v.frames = v.frames[:len(v.frames)-1]
	return true
}

func (v *View) EnterMenu() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animate("enter_menu", v.opts.Timings.Menu)
}

func (v *View) ExitMenu() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animate("exit_menu", v.opts.Timings.Menu)
}

func (v *View) HighlightEnter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animate("highlight_enter", v.opts.Timings.Highlight)
}

func (v *View) HighlightExit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animate("highlight_exit", v.opts.Timings.Highlight)
}

func (v *View) PlaylistEnter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animate("playlist_enter", v.opts.Timings.Playlist)
}

func (v *View) PlaylistExit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.animate("playlist_exit", v.opts.Timings.Playlist)
}

func (v *View) LaunchEnter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.launching = true
	v.animate("launch_enter", v.opts.Timings.Launch)
}

func (v *View) LaunchExit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.launching = false
	v.animate("launch_exit", v.opts.Timings.Launch)
}

func (v *View) AttractEnter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attract = true
	v.animate("attract_enter", v.opts.Timings.Attract)
}

// Attract is called every tick of a scroll burst.
func (v *View) Attract() {}

func (v *View) AttractExit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attract = false
	v.animate("attract_exit", v.opts.Timings.Attract)
}

// InfoEnter shows an overlay about the selection, the collection or the
// build.
func (v *View) InfoEnter(kind nav.InfoKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.info = kind
	v.infoShown = true
	v.infoLines = v.describe(kind)
	v.animate("info_enter", v.opts.Timings.Info)
}

func (v *View) InfoExit(kind nav.InfoKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.infoShown = false
	v.infoLines = nil
	v.animate("info_exit", v.opts.Timings.Info)
}

func (v *View) describe(kind nav.InfoKind) []string {
	f := v.top()
	switch kind {
	case nav.InfoGame:
		it := v.selected()
		if it == nil {
			return nil
		}
		lines := []string{it.DisplayName()}
		if it.Year != "" || it.Manufacturer != "" {
			lines = append(lines, fmt.Sprintf("%s %s", it.Year, it.Manufacturer))
		}
		if it.Genre != "" {
			lines = append(lines, it.Genre)
		}
		if v.stats != nil {
			st := v.stats.Get(f.collection.Name, it.Name)
			lines = append(lines, fmt.Sprintf("Played %d times, %s total", st.TimesPlayed,
				time.Duration(st.SecondsPlayed)*time.Second))
			if !st.LastPlayed.IsZero() {
				lines = append(lines, "Last played "+st.LastPlayed.Format("2006-01-02 15:04"))
			}
		}
		return lines
	case nav.InfoCollection:
		return []string{
			f.collection.Name,
			fmt.Sprintf("%d items in %s", len(v.items()), f.playlist),
			"Layout " + v.layout,
		}
	case nav.InfoBuild:
		info := version.Resolve()
		return []string{
			"marquee " + info.Version,
			"Commit " + info.Commit,
			"Built with " + info.GoVersion,
		}
	}
	return nil
}

// OnNewItemSelected counts selection changes; it stands in for loading the
// selection's artwork.
func (v *View) OnNewItemSelected() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selections++
}

// Scroll starts moving the selection one item every ScrollRate. The first
// step happens at once.
func (v *View) Scroll(forward bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolling = true
	v.forward = forward
	v.scrollAcc = 0
	v.step()
}

func (v *View) StopScroll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolling = false
	v.scrollAcc = 0
}

func (v *View) step() {
	if v.forward {
		v.move(1)
	} else {
		v.move(-1)
	}
}

// Jump moves the selection without animation.
func (v *View) Jump(j nav.Jump) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := len(v.items())
	if n == 0 {
		return
	}
	switch j {
	case nav.JumpNext:
		v.move(1)
	case nav.JumpPrev:
		v.move(-1)
	case nav.JumpPageDown:
		v.move(v.opts.PageSize)
	case nav.JumpPageUp:
		v.move(-v.opts.PageSize)
	case nav.JumpLetterDown:
		v.top().offset = v.letterDown()
	case nav.JumpLetterUp:
		v.top().offset = v.letterUp()
	case nav.JumpRandom:
		v.top().offset = v.rand.IntN(n)
	}
}

func initial(it *library.Item) rune {
	for _, r := range it.DisplayName() {
		return unicode.ToUpper(r)
	}
	return 0
}

// letterDown returns the first item after the selection whose initial
// differs from the selection's.
func (v *View) letterDown() int {
	items := v.items()
	n := len(items)
	cur := v.clamp(v.top().offset, n)
	letter := initial(items[cur])
	for i := 1; i < n; i++ {
		j := (cur + i) % n
		if initial(items[j]) != letter {
			return j
		}
	}
	return cur
}

// letterUp returns the first item of the letter group before the
// selection's.
func (v *View) letterUp() int {
	items := v.items()
	n := len(items)
	cur := v.clamp(v.top().offset, n)
	letter := initial(items[cur])

	prev := -1
	for i := 1; i < n; i++ {
		j := v.clamp(cur-i, n)
		if initial(items[j]) != letter {
			prev = j
			break
		}
	}
	if prev < 0 {
		return cur
	}
	target := initial(items[prev])
	for i := 1; i < n; i++ {
		j := v.clamp(prev-i, n)
		if initial(items[j]) != target {
			return v.clamp(j+1, n)
		}
	}
	return prev
}

// ToggleFavorite adds or removes the selection from the favorites.
func (v *View) ToggleFavorite() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stats == nil {
		return ErrNoStats
	}
	it := v.selected()
	if it == nil {
		return ErrNoSelection
	}
	if _, err := v.stats.ToggleFavorite(v.top().collection.Name, it.Name); err != nil {
		return fmt.Errorf("failed to toggle favorite %s: %w", it.Name, err)
	}
	f := v.top()
	f.offset = v.clamp(f.offset, len(v.items()))
	return nil
}

// Update advances animations and scrolling by dt.
func (v *View) Update(dt time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.remaining > 0 {
		v.remaining -= dt
		if v.remaining <= 0 {
			v.remaining = 0
			v.animation = ""
		}
	}
	if v.scrolling {
		v.scrollAcc += dt
		for v.scrollAcc >= v.opts.ScrollRate {
			v.scrollAcc -= v.opts.ScrollRate
			v.step()
		}
	}
}

// Release marks the view as discarded.
func (v *View) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.released = true
	v.scrolling = false
}
