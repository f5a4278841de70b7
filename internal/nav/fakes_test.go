package nav

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/attract"
	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/input"
	"github.com/muurk/marquee/internal/library"
)

const testLibrary = `
collections:
  Main:
    items:
      - name: Arcade
        kind: collection
      - name: Consoles
        kind: collection
        collection: Consoles
      - name: Empty
        kind: collection
      - name: Missing
        kind: collection
      - name: Settings
        kind: menu
      - name: tetris
  Arcade:
    launcher: mame
    items:
      - name: pacman
      - name: galaga
      - name: dkong
      - name: frogger
    playlists:
      classics: [pacman, dkong]
  Consoles:
    layout: grid
    items:
      - name: snes
      - name: genesis
  Empty:
    items: []
  Settings:
    layout: menu
    items:
      - name: volume
`

type fakeFrame struct {
	collection *library.Collection
	playlist   string
	offset     int
}

type fakeView struct {
	layout    string
	frames    []*fakeFrame
	favorites map[string]bool

	animTicks int
	busy      int
	scrolling bool
	forward   bool
	attract   bool
	info      []InfoKind

	calls    []string
	released bool
}

func newFakeView(c *library.Collection) *fakeView {
	v := &fakeView{layout: c.Layout, favorites: make(map[string]bool)}
	v.PushCollection(c)
	return v
}

func (v *fakeView) top() *fakeFrame { return v.frames[len(v.frames)-1] }

func (v *fakeView) items() []*library.Item {
	f := v.top()
	if f.playlist == "favorites" {
		var out []*library.Item
		for _, it := range f.collection.Items {
			if v.favorites[it.Name] {
				out = append(out, it)
			}
		}
		return out
	}
	return f.collection.Playlist(f.playlist)
}

func (v *fakeView) record(call string) { v.calls = append(v.calls, call) }

func (v *fakeView) animate(call string) {
	v.record(call)
	v.busy = v.animTicks
}

func (v *fakeView) IsIdle() bool         { return v.busy == 0 && !v.scrolling }
func (v *fakeView) IsMenuIdle() bool     { return v.busy == 0 }
func (v *fakeView) IsGraphicsIdle() bool { return v.busy == 0 }
func (v *fakeView) IsAttractIdle() bool  { return v.IsIdle() && len(v.info) == 0 }
func (v *fakeView) IsScrolling() bool    { return v.scrolling }

func (v *fakeView) SelectedItem() *library.Item {
	items := v.items()
	if len(items) == 0 {
		return nil
	}
	return items[v.top().offset]
}

func (v *fakeView) CollectionName() string { return v.top().collection.Name }
func (v *fakeView) PlaylistName() string   { return v.top().playlist }
func (v *fakeView) PlaylistNames() []string {
	return v.top().collection.PlaylistNames("favorites")
}
func (v *fakeView) ScrollOffsetIndex() int { return v.top().offset }
func (v *fakeView) SetScrollOffsetIndex(i int) {
	n := len(v.items())
	if n == 0 {
		v.top().offset = 0
		return
	}
	v.top().offset = ((i % n) + n) % n
}
func (v *fakeView) ItemCount() int { return len(v.items()) }
func (v *fakeView) MenuDepth() int { return len(v.frames) }
func (v *fakeView) Layout() string { return v.layout }

func (v *fakeView) SelectPlaylist(name string) bool {
	v.record("select_playlist:" + name)
	if !contains(v.PlaylistNames(), name) {
		return false
	}
	v.top().playlist = name
	v.top().offset = 0
	return true
}

func (v *fakeView) PushCollection(c *library.Collection) {
	v.frames = append(v.frames, &fakeFrame{collection: c, playlist: library.AllPlaylist})
}

func (v *fakeView) PopCollection() bool {
	if len(v.frames) <= 1 {
		return false
	}
	v.frames = v.frames[:len(v.frames)-1]
	return true
}

func (v *fakeView) EnterMenu()      { v.animate("enter_menu") }
func (v *fakeView) ExitMenu()       { v.animate("exit_menu") }
func (v *fakeView) HighlightEnter() { v.animate("highlight_enter") }
func (v *fakeView) HighlightExit()  { v.animate("highlight_exit") }
func (v *fakeView) PlaylistEnter()  { v.animate("playlist_enter") }
func (v *fakeView) PlaylistExit()   { v.animate("playlist_exit") }
func (v *fakeView) LaunchEnter()    { v.animate("launch_enter") }
func (v *fakeView) LaunchExit()     { v.animate("launch_exit") }
func (v *fakeView) AttractEnter()   { v.attract = true; v.animate("attract_enter") }
func (v *fakeView) Attract()        {}
func (v *fakeView) AttractExit()    { v.attract = false; v.animate("attract_exit") }
func (v *fakeView) InfoEnter(k InfoKind) {
	v.info = append(v.info, k)
	v.animate("info_enter:" + k.String())
}
func (v *fakeView) InfoExit(k InfoKind) {
	v.info = nil
	v.animate("info_exit:" + k.String())
}

func (v *fakeView) OnNewItemSelected() { v.record("new_item") }
func (v *fakeView) Scroll(forward bool) {
	v.record("scroll")
	v.scrolling = true
	v.forward = forward
}
func (v *fakeView) StopScroll() {
	v.record("stop_scroll")
	v.scrolling = false
}

func (v *fakeView) Jump(j Jump) {
	v.record("jump:" + j.String())
	switch j {
	case JumpNext:
		v.SetScrollOffsetIndex(v.top().offset + 1)
	case JumpPrev:
		v.SetScrollOffsetIndex(v.top().offset - 1)
	case JumpPageDown:
		v.SetScrollOffsetIndex(v.top().offset + 2)
	case JumpPageUp:
		v.SetScrollOffsetIndex(v.top().offset - 2)
	}
}

func (v *fakeView) ToggleFavorite() error {
	it := v.SelectedItem()
	if it == nil {
		return errors.New("nothing selected")
	}
	v.favorites[it.Name] = !v.favorites[it.Name]
	v.record("favorite:" + it.Name)
	return nil
}

func (v *fakeView) Update(dt time.Duration) {
	if v.busy > 0 {
		v.busy--
	}
	if v.scrolling {
		if v.forward {
			v.SetScrollOffsetIndex(v.top().offset + 1)
		} else {
			v.SetScrollOffsetIndex(v.top().offset - 1)
		}
	}
}

func (v *fakeView) Release() { v.released = true }

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

type fakeResolver struct {
	lib       *library.Library
	views     []*fakeView
	animTicks int
}

func (r *fakeResolver) Resolve(name string) (*library.Collection, error) {
	return r.lib.Resolve(name)
}

func (r *fakeResolver) NewView(c *library.Collection, menuMode bool) (CollectionView, error) {
	v := newFakeView(c)
	v.animTicks = r.animTicks
	r.views = append(r.views, v)
	return v, nil
}

type launchCall struct {
	collection string
	item       string
	attract    bool
}

type fakeLauncher struct {
	calls  []launchCall
	reboot bool
	err    error
}

func (l *fakeLauncher) Run(ctx context.Context, collection string, item *library.Item, view CollectionView, attractMode bool) (bool, error) {
	l.calls = append(l.calls, launchCall{collection, item.Name, attractMode})
	return l.reboot, l.err
}

type fakeInput struct {
	pending []input.Event
	held    map[input.Key]bool
	resets  int
}

func (in *fakeInput) Poll(now time.Time) []input.Event {
	out := in.pending
	in.pending = nil
	return out
}

func (in *fakeInput) Held(k input.Key) bool { return in.held[k] }

func (in *fakeInput) Reset() {
	in.held = nil
	in.resets++
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

const frame = 20 * time.Millisecond

type harness struct {
	t        *testing.T
	ctrl     *Controller
	resolver *fakeResolver
	launcher *fakeLauncher
	input    *fakeInput
	clock    *fakeClock
}

func testSettings() config.Settings {
	s := config.DefaultSettings()
	s.Attract.IdleTime = config.Duration{}
	s.Navigation.MenuCollection = "Settings"
	return s
}

func newHarness(t *testing.T, settings config.Settings, opts ...Option) *harness {
	t.Helper()
	lib, err := library.Parse([]byte(testLibrary))
	if err != nil {
		t.Fatalf("library.Parse() error = %v", err)
	}
	h := &harness{
		t:        t,
		resolver: &fakeResolver{lib: lib},
		launcher: &fakeLauncher{},
		input:    &fakeInput{},
		clock:    &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	opts = append([]Option{
		WithLogger(zap.NewNop()),
		WithClock(h.clock.now),
		WithAttractTimer(attract.New(attract.ConfigFromSettings(settings.Attract),
			attract.WithRand(rand.New(rand.NewPCG(7, 9))))),
	}, opts...)
	h.ctrl, err = NewController(settings, h.resolver, h.launcher, h.input, opts...)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	h.runUntil(StateIdle)
	return h
}

func (h *harness) view() *fakeView {
	return h.ctrl.View().(*fakeView)
}

func (h *harness) tick() {
	h.clock.t = h.clock.t.Add(frame)
	h.ctrl.Tick(frame)
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.tick()
	}
}

// press queues a key observed at the current time.
func (h *harness) press(k input.Key) {
	h.input.pending = append(h.input.pending, input.Event{Key: k, At: h.clock.t})
}

// settle presses k, then ticks past the min action delay and until idle.
func (h *harness) settle(k input.Key) {
	h.t.Helper()
	h.press(k)
	h.tick()
	h.runUntil(StateIdle)
	h.ticks(10)
}

func (h *harness) runUntil(want State) {
	h.t.Helper()
	for i := 0; i < 500; i++ {
		if h.ctrl.State() == want {
			return
		}
		h.tick()
	}
	h.t.Fatalf("state %v never reached, stuck in %v", want, h.ctrl.State())
}

func (h *harness) selectItem(name string) {
	h.t.Helper()
	v := h.view()
	for i, it := range v.items() {
		if it.Name == name {
			v.top().offset = i
			return
		}
	}
	h.t.Fatalf("item %q not in %s/%s", name, v.CollectionName(), v.PlaylistName())
}

func (h *harness) where() string {
	v := h.view()
	return fmt.Sprintf("%s/%s@%d", v.CollectionName(), v.PlaylistName(), v.ScrollOffsetIndex())
}
