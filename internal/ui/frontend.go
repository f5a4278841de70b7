package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/input"
)

// ErrAborted is returned by Run when the user pressed ctrl+c.
var ErrAborted = errors.New("aborted")

// Frontend hosts a driver inside a full-screen terminal program.
type Frontend struct {
	injector Injector
	keymap   *input.KeyMap
	logger   *zap.Logger
	opts     []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
}

// NewFrontend creates a front-end. It exists before the controller so the
// launcher can use it as its Suspender. Extra program options are passed
// to tea.NewProgram, which tests use to replace the terminal.
func NewFrontend(injector Injector, keymap *input.KeyMap, logger *zap.Logger, opts ...tea.ProgramOption) *Frontend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Frontend{
		injector: injector,
		keymap:   keymap,
		logger:   logger,
		opts:     opts,
	}
}

// Run shows the front-end while driver runs, until the controller quits,
// ctx is cancelled or the user aborts.
func (f *Frontend) Run(ctx context.Context, driver *Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, f.opts...)
	p := tea.NewProgram(NewModel(f.injector, f.keymap), opts...)
	f.mu.Lock()
	f.program = p
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.program = nil
		f.mu.Unlock()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := driver.Run(ctx, func(fr Frame) { p.Send(frameMsg(fr)) })
		if errors.Is(err, context.Canceled) {
			return
		}
		p.Send(doneMsg{err: err})
	}()

	final, err := p.Run()
	cancel()
	wg.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("front-end failed: %w", err)
	}
	if m, ok := final.(Model); ok {
		if m.Aborted() {
			return ErrAborted
		}
		return m.err
	}
	return nil
}

// Suspend releases the terminal for a launched program. It implements
// launcher.Suspender together with Resume.
func (f *Frontend) Suspend() error {
	f.mu.Lock()
	p := f.program
	f.mu.Unlock()
	if p == nil {
		return nil
	}
	f.logger.Debug("Releasing terminal")
	return p.ReleaseTerminal()
}

// Resume takes the terminal back after a launch.
func (f *Frontend) Resume() error {
	f.mu.Lock()
	p := f.program
	f.mu.Unlock()
	if p == nil {
		return nil
	}
	f.logger.Debug("Restoring terminal")
	return p.RestoreTerminal()
}

// RunHeadless drives the controller without a terminal. Input then comes
// only from remote clients. Frames are written to out as a status line
// when out is not nil.
func RunHeadless(ctx context.Context, driver *Driver, out io.Writer) error {
	var last string
	err := driver.Run(ctx, func(fr Frame) {
		if out == nil || !fr.HasView {
			return
		}
		line := fmt.Sprintf("%s %s/%s", fr.State, fr.View.Collection, fr.View.Playlist)
		if n := len(fr.View.Items); n > 0 {
			line += " " + fr.View.Items[fr.View.Selected].Title
		}
		if line != last {
			last = line
			_, _ = fmt.Fprintln(out, line)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
