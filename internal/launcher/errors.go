package launcher

import (
	"errors"
	"fmt"
)

// ErrNoItem is returned when Run is called without an item.
var ErrNoItem = errors.New("no item to launch")

// NotFoundError means the item names a launcher that is not configured.
type NotFoundError struct {
	// Launcher is the missing launcher name. Empty means no launcher was
	// named and no default is set.
	Launcher string
	Item     string
}

func (e *NotFoundError) Error() string {
	if e.Launcher == "" {
		return fmt.Sprintf("no launcher for %q and no default launcher configured", e.Item)
	}
	return fmt.Sprintf("launcher %q for %q is not configured", e.Launcher, e.Item)
}

// TemplateError represents a failure to render a launcher's command line.
type TemplateError struct {
	Launcher string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to render command for launcher %q: %v", e.Launcher, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// ExecutionError represents a launched program that could not start or
// exited with a non-zero code.
type ExecutionError struct {
	Launcher string
	Item     string
	// ExitCode is -1 when the program never started.
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("launch of %q with %q failed (exit code %d): %v",
			e.Item, e.Launcher, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("launch of %q with %q failed (exit code %d)", e.Item, e.Launcher, e.ExitCode)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError represents a user launch killed by launch.timeout.
type TimeoutError struct {
	Item    string
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("launch of %q timed out after %s", e.Item, e.Timeout)
}

// PrerequisiteError represents a launcher whose program cannot be found.
type PrerequisiteError struct {
	Launcher string
	Command  string
	Err      error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("launcher %q: command %q not found: %v", e.Launcher, e.Command, e.Err)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}
