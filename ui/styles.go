package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	bannerReadyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	bannerWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	bannerMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	paneBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	paneFocusedStyle = paneBorderStyle.
				BorderForeground(lipgloss.Color("205"))

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	voiceMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236"))

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("160"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("42"))

	playerBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// hasDarkBackground is read once; lipgloss colors above are chosen to be
// legible either way, this only tweaks the filter prompt.
var hasDarkBackground = termenv.HasDarkBackground()
