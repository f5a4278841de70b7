package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/marquee/internal/page"
)

// Renderer draws frames as text.
type Renderer struct {
	Width  int
	Height int
	bar    progress.Model
}

// NewRenderer creates a renderer for a width x height terminal.
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())}
	r.Resize(width, height)
	return r
}

// Resize changes the terminal size.
func (r *Renderer) Resize(width, height int) {
	r.Width = clampWidth(width)
	if height < 6 {
		height = 6
	}
	r.Height = height
	r.bar.Width = r.Width / 3
}

// Render returns the frame. reserved lines at the bottom are left for the
// caller, which puts help there.
func (r *Renderer) Render(f Frame, reserved int) string {
	if !f.HasView {
		return StatusStyle.Render("starting…")
	}
	v := f.View

	header := r.header(f)
	tabs := r.playlists(v)
	status := r.status(f)

	rows := r.Height - reserved - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(status) - 1
	body := r.items(v, rows)
	if len(v.Info) > 0 {
		body = r.info(v.Info)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		tabs,
		RenderHorizontalDivider(r.Width, "─"),
		body,
		status,
	)
}

func (r *Renderer) header(f Frame) string {
	title := f.View.Collection
	if f.View.Depth > 1 {
		title = fmt.Sprintf("%s (%d)", title, f.View.Depth)
	}
	parts := []string{TitleStyle.Render(title)}
	if f.Kiosk {
		parts = append(parts, KioskStyle.Render(" "+KioskMarker+" kiosk"))
	}
	if f.Attract.Active {
		label := " attract"
		if f.Attract.LaunchPending {
			label = " attract launch"
		}
		parts = append(parts, AttractStyle.Render(label))
		if f.Attract.Scrolling && f.Attract.BurstDuration > 0 {
			ratio := float64(f.Attract.Burst) / float64(f.Attract.BurstDuration)
			parts = append(parts, " "+r.bar.ViewAs(ratio))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *Renderer) playlists(v page.Snapshot) string {
	if len(v.Playlists) < 2 {
		return ""
	}
	tabs := make([]string, 0, len(v.Playlists))
	for _, name := range v.Playlists {
		if name == v.Playlist {
			tabs = append(tabs, ActivePlaylistStyle.Render(name))
		} else {
			tabs = append(tabs, PlaylistStyle.Render(" "+name))
		}
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (r *Renderer) items(v page.Snapshot, rows int) string {
	if rows < 1 {
		rows = 1
	}
	window, selected := v.Window(rows)
	if len(window) == 0 {
		return EmptyStyle.Render("(empty)")
	}

	lines := make([]string, 0, len(window))
	for i, it := range window {
		marker := " "
		if it.Kind != "game" {
			marker = FolderMarker
		}
		label := marker + " " + it.Title
		if it.Favorite {
			label += " " + FavoriteStyle.Render(FavoriteMarker)
		}
		if i == selected {
			lines = append(lines, SelectedItemStyle.Width(r.Width-1).Render(label))
		} else {
			lines = append(lines, ItemStyle.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) info(lines []string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(r.Width-4).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (r *Renderer) status(f Frame) string {
	v := f.View
	pos := "0/0"
	if n := len(v.Items); n > 0 {
		pos = fmt.Sprintf("%d/%d", v.Selected+1, n)
	}
	parts := []string{pos, f.State.String()}
	if v.Animation != "" {
		parts = append(parts, v.Animation)
	}
	if v.MenuMode {
		parts = append(parts, "menu")
	}
	return StatusStyle.Render(strings.Join(parts, " · "))
}
