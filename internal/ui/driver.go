package ui

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/attract"
	"github.com/muurk/marquee/internal/nav"
	"github.com/muurk/marquee/internal/page"
)

// DefaultFrameInterval paces the controller at 30 ticks per second.
const DefaultFrameInterval = time.Second / 30

// Frame is what one controller tick leaves on screen.
type Frame struct {
	State   nav.State
	View    page.Snapshot
	HasView bool
	Kiosk   bool
	Attract attract.State
}

// Driver ticks the navigation controller at a fixed rate. It owns the
// controller: nothing else may call into it while Run is active.
type Driver struct {
	ctrl     *nav.Controller
	display  nav.SecondaryDisplay
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithDisplay draws every frame on d as well.
func WithDisplay(d nav.SecondaryDisplay) DriverOption {
	return func(dr *Driver) { dr.display = d }
}

// WithInterval sets the tick interval.
func WithInterval(interval time.Duration) DriverOption {
	return func(dr *Driver) {
		if interval > 0 {
			dr.interval = interval
		}
	}
}

// WithDriverLogger sets the logger.
func WithDriverLogger(l *zap.Logger) DriverOption {
	return func(dr *Driver) { dr.logger = l }
}

// NewDriver creates a driver for ctrl.
func NewDriver(ctrl *nav.Controller, opts ...DriverOption) *Driver {
	d := &Driver{
		ctrl:     ctrl,
		interval: DefaultFrameInterval,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Frame captures the controller's current output.
func (d *Driver) Frame() Frame {
	f := Frame{
		State:   d.ctrl.State(),
		Kiosk:   d.ctrl.Kiosk(),
		Attract: d.ctrl.Attract(),
	}
	f.View, f.HasView = page.SnapshotOf(d.ctrl.View())
	return f
}

// Step runs one tick of dt and publishes the frame.
func (d *Driver) Step(dt time.Duration, publish func(Frame)) bool {
	done := d.ctrl.Tick(dt)
	if d.display != nil && d.ctrl.View() != nil {
		d.display.Draw(d.ctrl.View(), d.ctrl.State())
	}
	if publish != nil {
		publish(d.Frame())
	}
	return done
}

// Run ticks until the controller is done or ctx is cancelled. publish
// receives every frame and may be nil for a headless cabinet.
func (d *Driver) Run(ctx context.Context, publish func(Frame)) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := d.now()
	d.logger.Debug("Driver started", zap.Duration("interval", d.interval))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := d.now()
		dt := now.Sub(last)
		last = now
		// A launch blocks Tick for as long as the program runs. That time
		// must not count as UI time for animations or the attract timer.
		if dt > maxFrameGap {
			dt = d.interval
		}
		if d.Step(dt, publish) {
			d.logger.Debug("Driver finished", zap.Bool("reboot", d.ctrl.Reboot()))
			return nil
		}
	}
}

const maxFrameGap = time.Second
