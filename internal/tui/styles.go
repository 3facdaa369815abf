package tui

import (
	huh "github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorPurple = lipgloss.Color("#7D56F4")
	colorGreen  = lipgloss.Color("#04B575")
	colorGray   = lipgloss.Color("#888888")
	colorDim    = lipgloss.Color("#666666")
	colorRed    = lipgloss.Color("#FF0000")
	colorWhite  = lipgloss.Color("#FFFFFF")
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple).
			MarginBottom(1)

	// Selected item styling, also used for classification markers
	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	// Help text styling
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	// Border styling for the generate summary box
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(1, 2)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// NewHuhTheme returns the purple/green form theme shared by every
// interactive page.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Bold(true).Foreground(colorPurple)
	t.Focused.Description = t.Focused.Description.Foreground(colorGray)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(colorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(colorRed)

	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(colorPurple)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(colorPurple)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(colorPurple)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(colorGreen)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(colorGray)

	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(colorWhite).Background(colorPurple)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(colorWhite).Background(colorDim)

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(colorPurple)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(colorPurple)

	t.Blurred.Title = t.Blurred.Title.Foreground(colorGray)

	return t
}
