package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/discovery"
	"github.com/muurk/marquee/internal/input"
	"github.com/muurk/marquee/internal/launcher"
	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/logging"
	"github.com/muurk/marquee/internal/nav"
	"github.com/muurk/marquee/internal/page"
	"github.com/muurk/marquee/internal/server"
	"github.com/muurk/marquee/internal/ui"
	"github.com/muurk/marquee/internal/version"
)

// Run command flags
var (
	headless  bool
	fps       int
	remote    bool
	noRemote  bool
	advertise bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the front-end",
	Long: `Start the cabinet front-end.

The front-end takes over the terminal. When stdout is not a terminal, or
with --headless, it runs without one and takes input only from remote
clients.`,
	Example: `  # Start with the default settings file
  marquee run

  # Start with the remote server on and log to a file
  marquee run --remote --log-level debug --log-file /tmp/marquee.log

  # Run on a cabinet without a terminal, controlled from a phone
  marquee run --headless --remote --advertise`,
	RunE: runCabinet,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		flags := cmd.Flags()
		flags.BoolVar(&headless, "headless", false, "Run without a terminal UI")
		flags.IntVar(&fps, "fps", 30, "Ticks per second")
		flags.BoolVar(&remote, "remote", false, "Enable the remote server (overrides remote.enabled)")
		flags.BoolVar(&noRemote, "no-remote", false, "Disable the remote server")
		flags.BoolVar(&advertise, "advertise", false, "Advertise the cabinet with mDNS (overrides remote.advertise)")
	}
}

func runCabinet(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if remote {
		settings.Remote.Enabled = true
	}
	if noRemote {
		settings.Remote.Enabled = false
	}
	if advertise {
		settings.Remote.Advertise = true
	}
	if fps <= 0 {
		return &exitError{code: exitFailure, err: fmt.Errorf("--fps must be positive, got %d", fps)}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := newCabinet(ctx, settings, headless || !ui.IsTerminal())
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	defer c.close()

	if err := c.run(ctx); err != nil {
		return err
	}
	if c.ctrl.Reboot() {
		return errReboot
	}
	return nil
}

// cabinet is everything one front-end session wires together.
type cabinet struct {
	settings config.Settings
	logger   *zap.Logger
	headless bool

	sampler  *input.Sampler
	stats    *library.StatsStore
	frontend *ui.Frontend
	server   *server.Server
	advert   *discovery.Advertisement
	ctrl     *nav.Controller
	driver   *ui.Driver
}

func newCabinet(ctx context.Context, settings config.Settings, headless bool) (*cabinet, error) {
	c := &cabinet{
		settings: settings,
		logger:   logging.Named("run"),
		headless: headless,
	}

	lib, err := library.Load(settings.Library.Path)
	if err != nil {
		return nil, err
	}
	c.stats, err = library.OpenStats(settings.Library.StatsPath)
	if err != nil {
		return nil, err
	}

	km, err := input.NewKeyMap(settings.Input.Bindings, settings.Input.Chords)
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}
	for _, overlap := range settings.ChordOverlaps(input.DefaultBindings()) {
		c.logger.Warn("Chord overlaps a single-key binding", zap.String("detail", overlap))
	}
	c.sampler = input.NewSampler(km, settings.Input.HoldTimeout.Duration, settings.Input.ChordWindow.Duration)

	execOpts := []launcher.Option{launcher.WithStats(c.stats)}
	if !headless {
		c.frontend = ui.NewFrontend(c.sampler, km, logging.Named("ui"))
		execOpts = append(execOpts, launcher.WithSuspender(c.frontend))
	}
	executor := launcher.NewExecutor(launcher.ConfigFromSettings(settings), logging.Named("launcher"), execOpts...)

	navOpts := []nav.Option{nav.WithLogger(logging.Named("nav")), nav.WithContext(ctx)}
	driverOpts := []ui.DriverOption{ui.WithInterval(tickInterval()), ui.WithDriverLogger(logging.Named("driver"))}

	if settings.Remote.Enabled {
		c.server, err = server.New(server.ConfigFromSettings(settings.Remote), c.sampler, km, logging.Named("server"))
		if err != nil {
			return nil, err
		}
		if err := c.server.Listen(); err != nil {
			return nil, err
		}
		navOpts = append(navOpts, nav.WithSecondaryDisplay(c.server))
		driverOpts = append(driverOpts, ui.WithDisplay(c.server))
	}

	factory := page.NewFactory(lib, c.stats, page.OptionsFromSettings(settings), logging.Named("page"))
	c.ctrl, err = nav.NewController(settings, factory, executor, c.sampler, navOpts...)
	if err != nil {
		if c.server != nil {
			_ = c.server.Shutdown(context.Background())
		}
		return nil, err
	}
	c.driver = ui.NewDriver(c.ctrl, driverOpts...)
	return c, nil
}

func tickInterval() time.Duration {
	return time.Second / time.Duration(fps)
}

// run serves remote clients and drives the controller until it quits.
func (c *cabinet) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverDone := make(chan error, 1)
	if c.server != nil {
		go func() { serverDone <- c.server.Serve(ctx) }()

		if c.settings.Remote.Advertise {
			advert, err := discovery.Advertise(discovery.Info{
				Name:    c.settings.Remote.Name,
				Port:    c.server.Port(),
				Version: version.Version,
				TLS:     c.settings.Remote.CertFile != "",
			}, logging.Named("discovery"))
			if err != nil {
				c.logger.Warn("Failed to advertise cabinet", zap.Error(err))
			} else {
				c.advert = advert
			}
		}
	}

	c.logger.Info("Cabinet starting",
		zap.String("first_collection", c.settings.Navigation.FirstCollection),
		zap.Bool("headless", c.headless),
		zap.Bool("remote", c.server != nil),
	)

	var err error
	if c.headless {
		err = ui.RunHeadless(ctx, c.driver, os.Stderr)
	} else {
		err = c.frontend.Run(ctx, c.driver)
		if errors.Is(err, ui.ErrAborted) {
			err = nil
		}
	}

	cancel()
	if c.server != nil {
		if serr := <-serverDone; serr != nil {
			c.logger.Warn("Remote server stopped with error", zap.Error(serr))
		}
	}
	return err
}

func (c *cabinet) close() {
	c.advert.Shutdown()
	if c.ctrl != nil {
		c.ctrl.Close()
	}
}
