package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType selects the colour and marker of a result box.
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result is the box at the end of command output.
type Result struct {
	Type    ResultType
	Title   string
	Details map[string]string
	Error   error
	Notes   []string // Warnings or troubleshooting tips
	Width   int
}

// NewSuccessResult reports a finished command.
func NewSuccessResult(title string, details map[string]string) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult reports a failed command with its error and follow-up notes.
func NewFailureResult(title string, err error, notes []string) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Notes: notes, Width: GetTerminalWidth()}
}

// NewWarningResult reports a command that finished with caveats.
func NewWarningResult(title string, notes []string) *Result {
	return &Result{Type: ResultWarning, Title: title, Notes: notes, Width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width.
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail adds one key/value line under the title.
func (r *Result) AddDetail(key, value string) *Result {
	if r.Details == nil {
		r.Details = make(map[string]string)
	}
	r.Details[key] = value
	return r
}

// Render draws the result box.
func (r *Result) Render() string {
	width := clampWidth(r.Width)

	marker, label, titleStyle, color := SuccessMarker, "OK", SuccessTitleStyle, SuccessColor
	switch r.Type {
	case ResultFailure:
		marker, label, titleStyle, color = FailureMarker, "FAILED", ErrorTitleStyle, ErrorColor
	case ResultWarning:
		marker, label, titleStyle, color = WarningMarker, "WARNING", WarningTitleStyle, WarningColor
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("%s  %s  ─  %s", marker, label, r.Title)), ""}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("Error: "+r.Error.Error()), "")
	}

	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, ResultKeyStyle.Render(k+":")+" "+ResultValueStyle.Render(r.Details[k]))
	}

	for _, note := range r.Notes {
		lines = append(lines, StepNoteStyle.Render("• "+note))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2).
		Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}

// String renders the box.
func (r *Result) String() string {
	return r.Render()
}
