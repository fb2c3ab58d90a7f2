package tui

import "github.com/charmbracelet/lipgloss"

const (
	feltGreen = lipgloss.Color("#04B575")
	ivory     = lipgloss.Color("#FAFAFA")
	gold      = lipgloss.Color("#FFD700")
	cardRed   = lipgloss.Color("#FF6B6B")
	dimGrey   = lipgloss.Color("#626262")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ivory).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	CreditsStyle = lipgloss.NewStyle().
			Foreground(gold).
			Bold(true)

	TableNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	RevealStyle = lipgloss.NewStyle().
			Foreground(gold).
			Bold(true)

	RedSuitStyle = lipgloss.NewStyle().
			Foreground(cardRed).
			Bold(true)

	SidebarTextStyle = lipgloss.NewStyle().
				Foreground(ivory)

	RejectedStyle = lipgloss.NewStyle().
			Foreground(cardRed)

	HintStyle = lipgloss.NewStyle().
			Foreground(dimGrey)
)
