// Package styles provides shared lipgloss styles for CLI and TUI
// components.
package styles

import "github.com/charmbracelet/lipgloss"

// Semantic palette.
var (
	ColorPrimary    = lipgloss.Color("#7aa2f7")
	ColorSecondary  = lipgloss.Color("#7dcfff")
	ColorForeground = lipgloss.Color("#c0caf5")
	ColorMuted      = lipgloss.Color("#565f89")
	ColorSurface    = lipgloss.Color("#3b4261")
	ColorSuccess    = lipgloss.Color("#9ece6a")
	ColorWarning    = lipgloss.Color("#e0af68")
	ColorError      = lipgloss.Color("#f7768e")
)

// Shared text styles.
var (
	TextPrimaryStyle     = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextMutedStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSuccessStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle     = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle       = lipgloss.NewStyle().Foreground(ColorError)
)

// Section and badge styles for the checklist view.
var (
	SectionTitleStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	// Counter badges follow the completion of the section.
	BadgeDoneStyle    = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	BadgePartialStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	BadgeEmptyStyle   = lipgloss.NewStyle().Foreground(ColorMuted)

	FieldValidStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	FieldInvalidStyle = lipgloss.NewStyle().Foreground(ColorError)

	SelectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
)

// Modal styles.
var (
	ModalBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	ConfirmMessageStyle = lipgloss.NewStyle().Foreground(ColorForeground)
)

// Toast styles by notification level.
var (
	ToastInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	ToastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 1)

	ToastWarningStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorWarning).
				Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)
)

// BadgeStyle picks the counter style from a completion percentage.
func BadgeStyle(percent int) lipgloss.Style {
	switch {
	case percent >= 100:
		return BadgeDoneStyle
	case percent >= 50:
		return BadgePartialStyle
	default:
		return BadgeEmptyStyle
	}
}
