package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#EE5956") // Festival red
	secondaryColor = lipgloss.Color("#10B981") // Green
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	fgColor        = lipgloss.Color("#F9FAFB") // Light
	pastColor      = lipgloss.Color("#52525B")

	// Layout styles
	AppStyle    = lipgloss.NewStyle().Padding(1, 2)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)

	// List panel (left side)
	ListPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)

	// Detail panel (right side)
	DetailPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(1, 2)

	// Event list item styles
	SelectedItemStyle = lipgloss.NewStyle().Background(primaryColor).Foreground(fgColor).Bold(true).Padding(0, 1)
	SelectedPastStyle = lipgloss.NewStyle().Background(lipgloss.Color("#374151")).Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	NormalItemStyle   = lipgloss.NewStyle().Foreground(fgColor).Padding(0, 1)
	PastItemStyle     = lipgloss.NewStyle().Foreground(pastColor).Faint(true).Padding(0, 1)
	DateStyle         = lipgloss.NewStyle().Foreground(secondaryColor).Width(14)
	PastDateStyle     = lipgloss.NewStyle().Foreground(pastColor).Faint(true).Width(14)

	// Detail panel styles
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Width(14)
	ValueStyle  = lipgloss.NewStyle().Foreground(fgColor)
	LinkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Underline(true)
	EndedStyle  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	SoonStyle   = lipgloss.NewStyle().Foreground(accentColor)
	StatusStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// Loading and empty states
	SpinnerStyle = lipgloss.NewStyle().Foreground(primaryColor)
	LoadingStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	EmptyStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(errorColor)

	// Filter dialog
	DialogStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(1, 2)
	DialogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)

	// Help bar
	HelpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	// In progress indicator
	InProgressStyle = lipgloss.NewStyle().Background(secondaryColor).Foreground(fgColor).Bold(true).Padding(0, 1)
)
