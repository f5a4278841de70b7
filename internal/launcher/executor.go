package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/nav"
)

// maxStderr bounds the stderr kept for error reports.
const maxStderr = 4096

// waitDelay bounds the wait for output pipes after a killed program.
const waitDelay = 2 * time.Second

// Config holds the launchers and run-time caps.
type Config struct {
	Launchers       map[string]config.LauncherSettings
	DefaultLauncher string

	// Timeout caps user launches. Zero means unlimited.
	Timeout time.Duration

	// AttractRunTime caps attract-mode launches. Reaching it is a normal
	// end, not an error. Zero means unlimited.
	AttractRunTime time.Duration
}

// ConfigFromSettings builds a Config from the settings snapshot.
func ConfigFromSettings(s config.Settings) Config {
	return Config{
		Launchers:       s.Launch.Launchers,
		DefaultLauncher: s.Launch.DefaultLauncher,
		Timeout:         s.Launch.Timeout.Duration,
		AttractRunTime:  s.Attract.LaunchRunTime.Duration,
	}
}

// Params are the values available to command and argument templates.
type Params struct {
	Item       string
	Title      string
	File       string
	Collection string
	Playlist   string
	Launcher   string
}

// Suspender hands the terminal to the launched program and takes it back.
type Suspender interface {
	Suspend() error
	Resume() error
}

// Recorder stores play statistics. *library.StatsStore satisfies it.
type Recorder interface {
	RecordPlay(collection, item string, started time.Time, played time.Duration) error
}

// Executor runs items with their configured launcher. It implements
// nav.GameLauncher.
type Executor struct {
	config    Config
	logger    *zap.Logger
	stats     Recorder
	suspender Suspender
	stdout    io.Writer
	stderr    io.Writer
	now       func() time.Time
}

var _ nav.GameLauncher = (*Executor)(nil)

// Option configures an Executor.
type Option func(*Executor)

// WithStats records every user launch.
func WithStats(r Recorder) Option {
	return func(e *Executor) { e.stats = r }
}

// WithSuspender releases the terminal for the duration of each launch.
func WithSuspender(s Suspender) Option {
	return func(e *Executor) { e.suspender = s }
}

// WithOutput sends the program's stdout and stderr to w. The default
// discards them.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// NewExecutor creates an executor.
func NewExecutor(cfg Config, logger *zap.Logger, opts ...Option) *Executor {
	e := &Executor{
		config: cfg,
		logger: logger,
		stdout: io.Discard,
		stderr: io.Discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run launches item and blocks until the program exits or its run-time cap
// is reached. reboot is true when the program exited with its launcher's
// reboot code.
func (e *Executor) Run(ctx context.Context, collection string, item *library.Item, view nav.CollectionView, attractMode bool) (bool, error) {
	if item == nil {
		return false, ErrNoItem
	}

	name := item.Launcher
	if name == "" {
		name = e.config.DefaultLauncher
	}
	ls, ok := e.config.Launchers[name]
	if !ok {
		return false, &NotFoundError{Launcher: name, Item: item.Name}
	}

	params := Params{
		Item:       item.Name,
		Title:      item.DisplayName(),
		File:       item.File,
		Collection: collection,
		Launcher:   name,
	}
	if view != nil {
		params.Playlist = view.PlaylistName()
	}
	if params.File == "" {
		params.File = item.Name
	}

	argv, err := render(name, ls, params)
	if err != nil {
		return false, err
	}

	limit := e.config.Timeout
	if attractMode && e.config.AttractRunTime > 0 {
		limit = e.config.AttractRunTime
	}

	e.logger.Info("Launching",
		zap.String("launcher", name),
		zap.String("collection", collection),
		zap.String("item", item.Name),
		zap.Strings("argv", argv),
		zap.Bool("attract", attractMode),
		zap.Duration("limit", limit),
	)

	if e.suspender != nil {
		if err := e.suspender.Suspend(); err != nil {
			e.logger.Warn("Failed to release terminal", zap.Error(err))
		}
		defer func() {
			if err := e.suspender.Resume(); err != nil {
				e.logger.Warn("Failed to restore terminal", zap.Error(err))
			}
		}()
	}

	started := e.now()
	out := e.execute(ctx, limit, argv, ls.WorkDir, params)
	played := e.now().Sub(started)

	e.logger.Debug("Launch finished",
		zap.String("item", item.Name),
		zap.Int("exit_code", out.exitCode),
		zap.Duration("played", played),
		zap.Bool("timed_out", out.timedOut),
	)

	if out.ran && e.stats != nil {
		if err := e.stats.RecordPlay(collection, item.Name, started, played); err != nil {
			e.logger.Warn("Failed to record play", zap.String("item", item.Name), zap.Error(err))
		}
	}

	switch {
	case out.timedOut && attractMode:
		return false, nil
	case out.timedOut:
		return false, &TimeoutError{Item: item.Name, Timeout: limit.String()}
	case ls.RebootExitCode != 0 && out.exitCode == ls.RebootExitCode:
		e.logger.Info("Program requested reboot", zap.String("item", item.Name), zap.Int("exit_code", out.exitCode))
		return true, nil
	case out.err != nil:
		return false, &ExecutionError{
			Launcher: name,
			Item:     item.Name,
			ExitCode: out.exitCode,
			Stderr:   out.stderr,
			Err:      out.err,
		}
	}
	return false, nil
}

// render expands the command and each argument as text templates.
func render(name string, ls config.LauncherSettings, p Params) ([]string, error) {
	if strings.TrimSpace(ls.Command) == "" {
		return nil, &TemplateError{Launcher: name, Err: errors.New("empty command")}
	}
	parts := append([]string{ls.Command}, ls.Args...)
	argv := make([]string, 0, len(parts))
	for i, part := range parts {
		tmpl, err := template.New(fmt.Sprintf("%s-%d", name, i)).Option("missingkey=error").Parse(part)
		if err != nil {
			return nil, &TemplateError{Launcher: name, Err: fmt.Errorf("failed to parse %q: %w", part, err)}
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, p); err != nil {
			return nil, &TemplateError{Launcher: name, Err: fmt.Errorf("failed to execute %q: %w", part, err)}
		}
		argv = append(argv, buf.String())
	}
	return argv, nil
}

type outcome struct {
	// exitCode is -1 when the program did not start or was killed.
	exitCode int
	stderr   string
	ran      bool
	timedOut bool
	err      error
}

// execute runs argv with an optional time limit.
func (e *Executor) execute(ctx context.Context, limit time.Duration, argv []string, dir string, p Params) outcome {
	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if limit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, limit)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	cmd.Env = append(os.Environ(),
		"MARQUEE_COLLECTION="+p.Collection,
		"MARQUEE_PLAYLIST="+p.Playlist,
		"MARQUEE_ITEM="+p.Item,
	)
	if e.suspender != nil {
		cmd.Stdin = os.Stdin
	}
	var errBuf tailBuffer
	cmd.Stdout = e.stdout
	cmd.Stderr = io.MultiWriter(&errBuf, e.stderr)

	out := outcome{err: cmd.Run()}
	out.ran = cmd.ProcessState != nil
	if out.err != nil {
		out.exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(out.err, &exitErr) {
			out.exitCode = exitErr.ExitCode()
		}
	}
	out.timedOut = limit > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded)
	out.stderr = errBuf.String()
	return out
}

// tailBuffer keeps the last maxStderr bytes written to it.
type tailBuffer struct {
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - maxStderr; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
