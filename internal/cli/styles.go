// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Kashikuroni/wb-abc/internal/model"
)

var (
	// PrimaryColor is the main theme color (Wildberries magenta).
	PrimaryColor = lipgloss.Color("#CB11AB")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// CategoryAColor marks top revenue contributors.
	CategoryAColor = SuccessColor
	// CategoryBColor marks moderate contributors.
	CategoryBColor = WarningColor
	// CategoryCColor marks the long tail.
	CategoryCColor = SubtleColor

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SubtleColor)

	categoryAStyle = lipgloss.NewStyle().Bold(true).Foreground(CategoryAColor)
	categoryBStyle = lipgloss.NewStyle().Bold(true).Foreground(CategoryBColor)
	categoryCStyle = lipgloss.NewStyle().Foreground(CategoryCColor)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	ChartIcon    = "📊"
	BoxIcon      = "📦"
	MoneyIcon    = "💰"
	CalendarIcon = "📅"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a report title with the chart icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(ChartIcon + " " + title)
}

// CategoryStyle returns the display style for an ABC tier.
func CategoryStyle(category model.ABCCategory) lipgloss.Style {
	switch category {
	case model.CategoryA:
		return categoryAStyle
	case model.CategoryB:
		return categoryBStyle
	case model.CategoryC:
		return categoryCStyle
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCategory renders a tier letter in its color.
func FormatCategory(category model.ABCCategory) string {
	return CategoryStyle(category).Render(string(category))
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
