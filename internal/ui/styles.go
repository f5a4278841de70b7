package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings, attract mode
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
	AccentColor  = lipgloss.Color("#F4D03F") // Yellow - favorites
)

// Layout constants
const (
	MinTerminalWidth = 40  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	DefaultHeight    = 24
)

// Menu styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			PaddingLeft(1)

	PlaylistStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingRight(1)

	ActivePlaylistStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 1)

	ItemStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				PaddingLeft(1)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(1)

	AttractStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	KioskStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			PaddingLeft(2)
)

// Command output styles
var (
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	StepCompleteStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	StepFailedStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StepWarningStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	StepNoteStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningTitleStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)
)

// Status markers
const (
	SuccessMarker  = "✓"
	FailureMarker  = "✗"
	WarningMarker  = "⚠"
	FavoriteMarker = "★"
	FolderMarker   = "▸"
	KioskMarker    = "🔒"
)

// IsTerminal reports whether stdout is a terminal. The run command falls
// back to headless mode when it is not.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _ := GetTerminalSize()
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth * 2, DefaultHeight
	}
	return clampWidth(width), height
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// RenderHorizontalDivider creates a horizontal line of the specified width
func RenderHorizontalDivider(width int, char string) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat(char, width))
}
