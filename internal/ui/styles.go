package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#D62728")
	ColorGreen   = lipgloss.Color("#2CA02C")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#7F7F7F")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan).
			Underline(true).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	VerseStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true).
			PaddingLeft(2)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	NegativeStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Bold(true)

	PositiveStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)
)
