package nav

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/attract"
	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/input"
	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/logging"
	"github.com/muurk/marquee/internal/redraw"
)

// maxQueuedKeys bounds the presses kept while the controller is busy.
const maxQueuedKeys = 8

// SecondaryDisplay is redrawn while a launch blocks the tick loop.
type SecondaryDisplay interface {
	Draw(view CollectionView, state State)
}

// Observer is told about every state change.
type Observer func(from, to Phase, ev Event)

// Controller owns the navigation state, the current view and the view
// stack. It is driven by Tick from a single goroutine.
type Controller struct {
	settings config.Settings
	resolver Resolver
	launcher GameLauncher
	input    InputSource
	timer    *attract.Timer
	logger   *zap.Logger
	now      func() time.Time
	ctx      context.Context

	secondary SecondaryDisplay
	observers []Observer

	view          CollectionView
	stack         CollectionStack
	memory        *MenuMemory
	playlistCycle *Cycle

	phase   Phase
	pending []Event
	queued  []input.Event

	menuMode      bool
	menuModeDepth int
	kiosk         bool
	lastAction    time.Time
	done          bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default is logging.Named("nav").
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithContext sets the context passed to launches.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// WithAttractTimer replaces the timer built from settings.
func WithAttractTimer(t *attract.Timer) Option {
	return func(c *Controller) { c.timer = t }
}

// WithSecondaryDisplay sets a display that keeps redrawing during launches.
func WithSecondaryDisplay(d SecondaryDisplay) Option {
	return func(c *Controller) { c.secondary = d }
}

// WithObserver registers a state change callback.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// NewController resolves the first collection and builds its view. Failure
// wraps ErrSplash.
func NewController(settings config.Settings, resolver Resolver, launcher GameLauncher, in InputSource, opts ...Option) (*Controller, error) {
	c := &Controller{
		settings:      settings,
		resolver:      resolver,
		launcher:      launcher,
		input:         in,
		now:           time.Now,
		ctx:           context.Background(),
		memory:        NewMenuMemory(),
		playlistCycle: NewCycle(settings.Navigation.PlaylistCycle),
		kiosk:         settings.Navigation.Kiosk,
		phase:         Phase{State: StateInit},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Named("nav")
	}
	if c.timer == nil {
		c.timer = attract.New(attract.ConfigFromSettings(settings.Attract))
	}

	first := settings.Navigation.FirstCollection
	col, err := resolver.Resolve(first)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSplash, err)
	}
	view, err := resolver.NewView(col, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSplash, err)
	}
	c.view = view
	return c, nil
}

// Tick runs one step: poll input, pick one event, transition, run effects,
// and advance the view by dt. It returns true once the controller reached
// Quit and the view finished its exit animation.
func (c *Controller) Tick(dt time.Duration) bool {
	if c.done {
		return true
	}
	now := c.now()

	c.pollInput(now)
	ev := c.nextEvent(dt)

	from := c.phase
	next, effects := Step(c.context(), from, ev)
	c.phase = next

	if next.State != from.State {
		if ev.Kind == EventKey {
			c.lastAction = now
		}
		logging.LogTransition(from.State.String(), next.State.String(), ev.String())
		for _, o := range c.observers {
			o(from, next, ev)
		}
	}

	for _, e := range effects {
		c.apply(e)
	}

	c.view.Update(dt)

	if c.phase.State.IsTerminal() && c.view.IsGraphicsIdle() {
		c.done = true
	}
	return c.done
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// State returns the current state.
func (c *Controller) State() State {
	return c.phase.State
}

// View returns the current view.
func (c *Controller) View() CollectionView {
	return c.view
}

// StackDepth returns the number of views below the current one.
func (c *Controller) StackDepth() int {
	return c.stack.Len()
}

// Kiosk reports whether the kiosk lock is on.
func (c *Controller) Kiosk() bool {
	return c.kiosk
}

// MenuMode reports whether a menu-mode collection is showing.
func (c *Controller) MenuMode() bool {
	return c.menuMode
}

// Attract returns the attract timer state.
func (c *Controller) Attract() attract.State {
	return c.timer.State()
}

// Done reports whether the controller has quit.
func (c *Controller) Done() bool {
	return c.done
}

// Reboot reports whether the quit was requested by a launcher exit code.
func (c *Controller) Reboot() bool {
	return c.phase.Reboot
}

// Close releases every view.
func (c *Controller) Close() {
	c.stack.Release()
	if c.view != nil {
		c.view.Release()
		c.view = nil
	}
}

// pollInput drains the input source. A press outside the min action delay
// counts as user activity and resets attract mode, whatever the state.
// Presses inside it are queued only to be dropped by nextEvent, so they
// must not touch the timer either.
func (c *Controller) pollInput(now time.Time) {
	for _, ev := range c.input.Poll(now) {
		if !c.debounced(ev.At) {
			if c.timer.IsActive() {
				logging.LogAttract("reset", c.view.CollectionName(), c.view.PlaylistName())
			}
			c.timer.Reset(true)
		}
		if len(c.queued) == maxQueuedKeys {
			c.queued = c.queued[1:]
		}
		c.queued = append(c.queued, ev)
	}
}

// nextEvent picks the single event for this tick. Outcomes of last tick's
// effects come first, then user input in accepting states, then attract.
func (c *Controller) nextEvent(dt time.Duration) Event {
	if len(c.pending) > 0 {
		ev := c.pending[0]
		c.pending = c.pending[1:]
		return ev
	}

	state := c.phase.State
	if state.AcceptsInput() {
		for len(c.queued) > 0 {
			key := c.queued[0]
			c.queued = c.queued[1:]
			if c.debounced(key.At) {
				c.logger.Debug("Dropped key inside min action delay", zap.Stringer("key", key.Key))
				continue
			}
			return Event{Kind: EventKey, Key: key.Key}
		}
	}

	if state.AcceptsAttract() {
		sig := c.timer.Update(dt, c.view.IsAttractIdle())
		if sig != attract.SignalNone {
			logging.LogAttract(sig.String(), c.view.CollectionName(), c.view.PlaylistName())
			return Event{Kind: EventAttract, Signal: sig}
		}
	}
	return Event{Kind: EventNone}
}

func (c *Controller) debounced(at time.Time) bool {
	if c.lastAction.IsZero() {
		return false
	}
	return at.Sub(c.lastAction) < c.settings.Input.MinActionDelay.Duration
}

func (c *Controller) context() Context {
	v := c.view
	ns := c.settings.Navigation
	collection := v.CollectionName()

	status := ViewStatus{
		Idle:         v.IsIdle(),
		MenuIdle:     v.IsMenuIdle(),
		GraphicsIdle: v.IsGraphicsIdle(),
		AttractIdle:  v.IsAttractIdle(),
		Scrolling:    v.IsScrolling(),
		MenuDepth:    v.MenuDepth(),
		ItemCount:    v.ItemCount(),
		Collection:   collection,
		Playlist:     v.PlaylistName(),
	}
	if item := v.SelectedItem(); item != nil {
		status.Selected = classify(item)
		status.SelectedTarget = item.Target()
	}

	var held bool
	switch c.phase.State {
	case StateScrollForward:
		held = c.input.Held(input.KeyScrollForward)
	case StateScrollBack:
		held = c.input.Held(input.KeyScrollBack)
	}

	return Context{
		View:                status,
		StackDepth:          c.stack.Len(),
		MenuMode:            c.menuMode,
		Kiosk:               c.kiosk,
		AttractEnabled:      c.timer.Enabled(),
		BurstOver:           !c.timer.IsScrolling(),
		ScrollHeld:          held,
		RememberMenu:        ns.RememberMenu,
		BackOnEmpty:         ns.BackOnEmpty,
		ExitOnFirstPageBack: ns.ExitOnFirstPageBack,
		EnterOnCollection:   ns.EnterOnCollection,
		RandomizeStart:      ns.RandomizeStart,
		FavoritesPlaylist:   ns.FavoritesPlaylist,
		MenuCollection:      ns.MenuCollection,
		AutoPlaylist:        c.settings.AutoPlaylist(collection),
		Memory:              c.memory.Lookup(collection),
		Neighbors:           c.neighbors(),
	}
}

func (c *Controller) neighbors() Neighbors {
	v := c.view
	playlist := v.PlaylistName()
	all := v.PlaylistNames()
	cycle := c.playlistCycle.Names(v.PlaylistNames)

	collection := v.CollectionName()
	collections := c.settings.Navigation.CollectionCycle
	skip := c.settings.Attract

	return Neighbors{
		NextPlaylist:      Neighbor(all, playlist, 1, nil),
		PrevPlaylist:      Neighbor(all, playlist, -1, nil),
		NextCyclePlaylist: Neighbor(cycle, playlist, 1, nil),
		PrevCyclePlaylist: Neighbor(cycle, playlist, -1, nil),
		NextCollection:    Neighbor(collections, collection, 1, nil),
		PrevCollection:    Neighbor(collections, collection, -1, nil),
		AttractPlaylist:   Neighbor(cycle, playlist, 1, skip.SkipPlaylists),
		AttractCollection: Neighbor(collections, collection, 1, skip.SkipCollections),
	}
}

func classify(item *library.Item) ItemClass {
	switch item.Kind {
	case library.ItemGame:
		return ItemLeaf
	case library.ItemCollection:
		return ItemCollection
	case library.ItemMenu:
		return ItemMenu
	}
	return ItemNone
}

func (c *Controller) apply(e Effect) {
	v := c.view
	switch e := e.(type) {
	case EnterMenu:
		v.EnterMenu()
	case ExitMenu:
		v.ExitMenu()
	case HighlightEnter:
		v.HighlightEnter()
	case HighlightExit:
		v.HighlightExit()
	case PlaylistEnter:
		v.PlaylistEnter()
	case PlaylistExit:
		v.PlaylistExit()
	case NewItemSelected:
		v.OnNewItemSelected()
	case SelectPlaylist:
		if !v.SelectPlaylist(e.Name) {
			c.logger.Warn("Playlist not available",
				zap.String("collection", v.CollectionName()),
				zap.String("playlist", e.Name))
		}
	case Scroll:
		v.Scroll(e.Forward)
	case StopScroll:
		v.StopScroll()
	case MoveSelection:
		v.Jump(e.Jump)
	case Remember:
		c.memory.Record(v.CollectionName(), v.PlaylistName(), v.ScrollOffsetIndex())
	case Restore:
		if e.Playlist != "" {
			v.SelectPlaylist(e.Playlist)
		}
		v.SetScrollOffsetIndex(e.Offset)
	case Descend:
		c.descend(e)
	case Ascend:
		c.ascend()
	case LaunchEnter:
		v.LaunchEnter()
	case LaunchExit:
		v.LaunchExit()
	case Launch:
		c.launch(e.Attract)
	case AttractEnter:
		v.AttractEnter()
	case AttractTick:
		v.Attract()
	case AttractExit:
		v.AttractExit()
	case ResetAttract:
		c.timer.Reset(e.KeepSet)
	case ActivateAttract:
		c.timer.Activate()
	case InfoEnter:
		v.InfoEnter(e.Kind)
	case InfoExit:
		v.InfoExit(e.Kind)
	case ToggleFavorite:
		if err := v.ToggleFavorite(); err != nil {
			c.logger.Error("Failed to toggle favorite", zap.Error(err))
		}
	case SetKiosk:
		c.kiosk = e.On
		c.logger.Info("Kiosk lock changed", zap.Bool("kiosk", e.On))
	case ReleaseInput:
		c.input.Reset()
		c.queued = nil
	default:
		c.logger.Warn("Unhandled effect", zap.String("effect", fmt.Sprintf("%T", e)))
	}
}

// descend enters a collection. Views are reused while the layout matches;
// menu mode and layout changes stack a new view.
func (c *Controller) descend(d Descend) {
	col, err := c.resolver.Resolve(d.Collection)
	if err != nil {
		c.fail(d.Collection, err)
		return
	}

	// A sibling replaces the current collection, so its frame or stacked
	// view goes first. From the root this is a no-op and the root stays one
	// back press away.
	if d.Sibling {
		c.ascend()
	}

	if d.MenuMode || col.Layout != c.view.Layout() {
		view, err := c.resolver.NewView(col, d.MenuMode)
		if err != nil {
			c.fail(d.Collection, err)
			return
		}
		c.stack.Push(c.view)
		c.view = view
		if d.MenuMode {
			c.menuMode = true
			c.menuModeDepth = c.stack.Len()
		}
	} else {
		c.view.PushCollection(col)
	}

	c.playlistCycle.Invalidate()
	c.logger.Debug("Entered collection",
		zap.String("collection", col.Name),
		zap.Int("stack_depth", c.stack.Len()),
		zap.Int("menu_depth", c.view.MenuDepth()))
}

// ascend leaves the current collection: first the view's own frames, then
// stacked views. Popped views are released.
func (c *Controller) ascend() {
	if c.view.MenuDepth() > 1 {
		c.view.PopCollection()
	} else if prev, ok := c.stack.Pop(); ok {
		c.view.Release()
		c.view = prev
		if c.menuMode && c.stack.Len() < c.menuModeDepth {
			c.menuMode = false
			c.menuModeDepth = 0
		}
	}
	c.playlistCycle.Invalidate()
}

func (c *Controller) fail(collection string, err error) {
	logging.LogResolution(collection, err)
	c.pending = append(c.pending, Event{Kind: EventResolutionFailed, Err: err})
}

// launch blocks until the selected item's program exits. A secondary
// display keeps being redrawn from a background task meanwhile.
func (c *Controller) launch(attractMode bool) {
	item := c.view.SelectedItem()
	if item == nil {
		c.pending = append(c.pending, Event{Kind: EventLaunched})
		return
	}
	collection := c.view.CollectionName()

	var task *redraw.Task
	if c.secondary != nil {
		view, state := c.view, c.phase.State
		task = redraw.Start(c.ctx, c.settings.Launch.SecondaryRedrawInterval.Duration, func() {
			c.secondary.Draw(view, state)
		})
	}

	started := c.now()
	reboot, err := c.launcher.Run(c.ctx, collection, item, c.view, attractMode)
	if task != nil {
		task.Stop()
	}

	logging.LogLaunch(collection, item.Name, attractMode, c.now().Sub(started), reboot, err)
	c.pending = append(c.pending, Event{Kind: EventLaunched, Reboot: reboot, Err: err})
}
