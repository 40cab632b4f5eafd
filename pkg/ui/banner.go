package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// BannerInfo is shown when the chat starts.
type BannerInfo struct {
	Version     string
	Model       string
	Offline     bool
	Restaurants int
}

var examples = []string{
	"show Italian restaurants",
	"book a table for 4 at Taco Loco",
	"recommend a place for 6 downtown",
	"cancel reservation 3",
}

func (u *UI) DrawBanner(info BannerInfo) {
	fmt.Fprintln(u.out, renderBanner(info))
}

func renderBanner(info BannerInfo) string {
	title := lipgloss.NewStyle().Foreground(muted).Render("dinebot " + info.Version)

	model := info.Model
	if info.Offline {
		model = "offline (no API key; cuisine and booking phrases still work)"
	}
	status := fmt.Sprintf("%s\n%d restaurants loaded", model, info.Restaurants)

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Welcome to dinebot!"),
		lipgloss.NewStyle().Foreground(muted).MarginTop(1).Render(status),
	)

	tips := lipgloss.NewStyle().Foreground(accent).Render("Try asking")
	for _, ex := range examples {
		tips += "\n  " + ex
	}
	tips += "\n" + lipgloss.NewStyle().Foreground(muted).Render("/help for commands, exit to quit")

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent).
			Margin(0, 2).
			Padding(0, 2).
			Render(tips),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(content)

	return title + "\n" + box
}
