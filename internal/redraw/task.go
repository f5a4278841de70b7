package redraw

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is used when Start is given a non-positive interval.
const DefaultInterval = 100 * time.Millisecond

// Task calls a draw function at a fixed interval on its own goroutine until
// stopped.
type Task struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	frames int
	mu     sync.Mutex
}

// Start begins redrawing. draw is called once immediately and then every
// interval. The task ends when Stop is called or parent is cancelled.
func Start(parent context.Context, interval time.Duration, draw func()) *Task {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(parent)
	t := &Task{cancel: cancel}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		t.draw(draw)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.draw(draw)
			}
		}
	}()
	return t
}

func (t *Task) draw(fn func()) {
	fn()
	t.mu.Lock()
	t.frames++
	t.mu.Unlock()
}

// Stop cancels the task and waits for the goroutine to exit. No draw call
// is in flight once Stop returns. Calling Stop more than once is safe.
func (t *Task) Stop() {
	t.once.Do(t.cancel)
	t.wg.Wait()
}

// Frames returns how many times draw has run.
func (t *Task) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}
