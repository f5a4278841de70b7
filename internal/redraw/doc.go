// Package redraw keeps secondary displays alive while the tick loop is
// blocked in a launch.
//
// The controller starts a Task right before handing the terminal to the
// launched program and stops it right after. Stop cancels and joins, so the
// tick goroutine never races the redraw goroutine once it resumes. Draw
// functions must take the renderer's own lock.
package redraw
