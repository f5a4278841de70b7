package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus is the outcome of one checklist step.
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepFailed
	StepWarning
	StepSkipped
)

// Step is one line of a checklist.
type Step struct {
	Name    string
	Status  StepStatus
	Message string // Optional detail, e.g. "12 collections"
}

// Checklist renders a list of checks with a bar showing how many passed.
type Checklist struct {
	Label string
	Steps []Step
	Width int
	bar   progress.Model
}

// NewChecklist creates an empty checklist.
func NewChecklist(label string) *Checklist {
	c := &Checklist{Label: label}
	return c.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (c *Checklist) SetWidth(width int) *Checklist {
	c.Width = width
	barWidth := min(max(width-20, 20), 50)
	c.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return c
}

// Pass records a passed step.
func (c *Checklist) Pass(name, message string) {
	c.Steps = append(c.Steps, Step{Name: name, Status: StepPassed, Message: message})
}

// Fail records a failed step.
func (c *Checklist) Fail(name, message string) {
	c.Steps = append(c.Steps, Step{Name: name, Status: StepFailed, Message: message})
}

// Warn records a step that passed with a warning.
func (c *Checklist) Warn(name, message string) {
	c.Steps = append(c.Steps, Step{Name: name, Status: StepWarning, Message: message})
}

// Skip records a step that did not run.
func (c *Checklist) Skip(name, message string) {
	c.Steps = append(c.Steps, Step{Name: name, Status: StepSkipped, Message: message})
}

// Failed reports whether any step failed.
func (c *Checklist) Failed() bool {
	for _, s := range c.Steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}

// Percent is the share of steps that passed, warnings included.
func (c *Checklist) Percent() float64 {
	if len(c.Steps) == 0 {
		return 0
	}
	ok := 0
	for _, s := range c.Steps {
		if s.Status == StepPassed || s.Status == StepWarning {
			ok++
		}
	}
	return float64(ok) / float64(len(c.Steps))
}

// Render returns the styled checklist as a string
func (c *Checklist) Render() string {
	var b strings.Builder

	if c.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(TextColor).PaddingLeft(2).Render(c.Label))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(
		fmt.Sprintf("%s %3.0f%%", c.bar.ViewAs(c.Percent()), c.Percent()*100)))
	b.WriteString("\n\n")

	for _, s := range c.Steps {
		b.WriteString("  ")
		b.WriteString(renderStep(s))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStep(s Step) string {
	var line string
	switch s.Status {
	case StepPassed:
		line = StepCompleteStyle.Render(SuccessMarker + " " + s.Name)
	case StepFailed:
		line = StepFailedStyle.Render(FailureMarker + " " + s.Name)
	case StepWarning:
		line = StepWarningStyle.Render(WarningMarker + " " + s.Name)
	default:
		line = StepNoteStyle.Render("· " + s.Name)
	}
	if s.Message != "" {
		line += " " + StepNoteStyle.Render("("+s.Message+")")
	}
	return line
}
