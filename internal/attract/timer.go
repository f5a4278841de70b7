package attract

import (
	"math/rand/v2"
	"time"

	"github.com/muurk/marquee/internal/config"
)

// Signal is the decision returned by Update.
type Signal int

const (
	// SignalNone means nothing to do this tick.
	SignalNone Signal = iota
	// SignalScroll starts a scroll burst. It fires once per burst.
	SignalScroll
	// SignalScrollStop ends the current scroll burst.
	SignalScrollStop
	// SignalSwitchPlaylist asks for the next playlist.
	SignalSwitchPlaylist
	// SignalSwitchCollection asks for the next collection.
	SignalSwitchCollection
	// SignalLaunchRandom asks for the current selection to be launched.
	SignalLaunchRandom
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalScroll:
		return "scroll"
	case SignalScrollStop:
		return "scroll_stop"
	case SignalSwitchPlaylist:
		return "switch_playlist"
	case SignalSwitchCollection:
		return "switch_collection"
	case SignalLaunchRandom:
		return "launch_random"
	default:
		return "unknown"
	}
}

// Config holds the attract timings. Zero IdleTime disables attract mode.
type Config struct {
	IdleTime       time.Duration
	IdleNextTime   time.Duration
	PlaylistTime   time.Duration
	CollectionTime time.Duration
	MinScrollTime  time.Duration
	MaxScrollTime  time.Duration
	Launch         bool
	LaunchChance   float64
	LaunchCooldown time.Duration
}

// ConfigFromSettings converts the settings section.
func ConfigFromSettings(s config.AttractSettings) Config {
	return Config{
		IdleTime:       s.IdleTime.Duration,
		IdleNextTime:   s.IdleNextTime.Duration,
		PlaylistTime:   s.PlaylistTime.Duration,
		CollectionTime: s.CollectionTime.Duration,
		MinScrollTime:  s.MinScrollTime.Duration,
		MaxScrollTime:  s.MaxScrollTime.Duration,
		Launch:         s.Launch,
		LaunchChance:   s.LaunchChance,
		LaunchCooldown: s.LaunchCooldown.Duration,
	}
}

// State is a copy of the timer counters.
type State struct {
	Idle          time.Duration
	Playlist      time.Duration
	Collection    time.Duration
	Burst         time.Duration
	BurstDuration time.Duration
	Cooldown      time.Duration
	Active        bool
	Set           bool
	Scrolling     bool
	LaunchPending bool
}

// Timer decides when attract mode scrolls, switches and launches. It does
// no I/O and is driven entirely by Update.
type Timer struct {
	cfg  Config
	rand *rand.Rand
	s    State
}

// Option configures a Timer.
type Option func(*Timer)

// WithRand sets the random source used for burst lengths and launch rolls.
func WithRand(r *rand.Rand) Option {
	return func(t *Timer) { t.rand = r }
}

// New creates a timer.
func New(cfg Config, opts ...Option) *Timer {
	t := &Timer{cfg: cfg}
	for _, opt := range opts {
		opt(t)
	}
	if t.rand == nil {
		now := uint64(time.Now().UnixNano())
		t.rand = rand.New(rand.NewPCG(now, now>>17))
	}
	return t
}

// Enabled reports whether attract mode is configured at all.
func (t *Timer) Enabled() bool {
	return t.cfg.IdleTime > 0
}

// IsActive reports whether attract mode has taken over since the last reset.
func (t *Timer) IsActive() bool {
	return t.s.Active
}

// IsScrolling reports whether a scroll burst is in progress.
func (t *Timer) IsScrolling() bool {
	return t.s.Scrolling
}

// State returns a copy of the counters.
func (t *Timer) State() State {
	return t.s
}

// Update advances the counters by dt. uiIdle reports whether the view has
// finished all animations; idle time only accumulates while it is true.
func (t *Timer) Update(dt time.Duration, uiIdle bool) Signal {
	if !t.Enabled() {
		return SignalNone
	}

	if t.s.Scrolling {
		t.s.Burst += dt
		t.s.Playlist += dt
		t.s.Collection += dt
		if t.s.Burst < t.s.BurstDuration {
			return SignalNone
		}
		t.s.Scrolling = false
		t.s.Burst = 0
		t.s.Idle = 0
		t.s.Cooldown = 0
		t.s.LaunchPending = t.cfg.Launch
		return SignalScrollStop
	}

	if !uiIdle {
		return SignalNone
	}

	if t.s.Active {
		t.s.Playlist += dt
		t.s.Collection += dt

		if t.cfg.CollectionTime > 0 && t.s.Collection >= t.cfg.CollectionTime {
			t.s.Collection = 0
			t.s.Playlist = 0
			t.clearBurst()
			return SignalSwitchCollection
		}
		if t.cfg.PlaylistTime > 0 && t.s.Playlist >= t.cfg.PlaylistTime {
			t.s.Playlist = 0
			t.clearBurst()
			return SignalSwitchPlaylist
		}
	}

	if t.s.LaunchPending {
		t.s.Cooldown += dt
		if t.s.Cooldown >= t.cfg.LaunchCooldown {
			t.s.LaunchPending = false
			t.s.Cooldown = 0
			if t.rand.Float64() < t.cfg.LaunchChance {
				t.s.Idle = 0
				return SignalLaunchRandom
			}
		}
	}

	t.s.Idle += dt
	threshold := t.cfg.IdleTime
	if t.s.Set && t.cfg.IdleNextTime > 0 {
		threshold = t.cfg.IdleNextTime
	}
	if t.s.Idle < threshold {
		return SignalNone
	}

	t.startBurst()
	return SignalScroll
}

// Reset zeroes the counters and leaves attract mode. With keepSet the timer
// remembers that attract mode already fired, so the next burst uses the
// shorter IdleNextTime. Calling Reset twice is the same as calling it once.
func (t *Timer) Reset(keepSet bool) {
	set := t.s.Set && keepSet
	t.s = State{Set: set}
}

// Activate forces attract mode on and starts a burst immediately.
func (t *Timer) Activate() {
	if !t.Enabled() {
		return
	}
	t.startBurst()
}

func (t *Timer) startBurst() {
	t.s.Active = true
	t.s.Set = true
	t.s.Scrolling = true
	t.s.Idle = 0
	t.s.Burst = 0
	t.s.LaunchPending = false
	t.s.Cooldown = 0
	t.s.BurstDuration = t.burstLength()
}

// clearBurst is applied on every playlist or collection switch.
func (t *Timer) clearBurst() {
	t.s.Idle = 0
	t.s.Burst = 0
	t.s.Scrolling = false
	t.s.LaunchPending = false
	t.s.Cooldown = 0
}

func (t *Timer) burstLength() time.Duration {
	lo, hi := t.cfg.MinScrollTime, t.cfg.MaxScrollTime
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(t.rand.Int64N(int64(hi-lo)+1))
}
