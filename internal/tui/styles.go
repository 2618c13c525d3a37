package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = "39"  // blue
	colorText   = "252" // body text
	colorMuted  = "244" // secondary text
	colorBorder = "238" // pane borders
	colorError  = "203"
)

type styles struct {
	Tree      lipgloss.Style
	Content   lipgloss.Style
	Section   lipgloss.Style
	Page      lipgloss.Style
	Active    lipgloss.Style
	Cursor    lipgloss.Style
	Title     lipgloss.Style
	Level     lipgloss.Style
	LevelOn   lipgloss.Style
	LevelMiss lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
}

func defaultStyles() styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(0, 1)

	return styles{
		Tree:      pane,
		Content:   pane,
		Section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorText)),
		Page:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
		Level:     lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(colorText)),
		LevelOn:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color(colorAccent)).Foreground(lipgloss.Color("0")),
		LevelMiss: lipgloss.NewStyle().Padding(0, 1).Faint(true).Foreground(lipgloss.Color(colorMuted)),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
	}
}
